package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventtrack/server/internal/apperr"
	"github.com/eventtrack/server/internal/models"
)

func TestSearchUsersShortQuerySkipsStore(t *testing.T) {
	store := newFakeStore()
	us := NewUserService(store, store)
	caller := seedUser(t, store, "caller", "Ca", "Ller", models.RoleParticipant)

	// One character is one character regardless of how many bytes encode it.
	for _, q := range []string{"", "a", "日"} {
		results, err := us.SearchUsers(context.Background(), q, caller.ID, 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
	assert.Equal(t, 0, store.searchCalls)

	_, err := us.SearchUsers(context.Background(), "日本", caller.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, store.searchCalls)
}

func TestSearchUsersExcludesCaller(t *testing.T) {
	store := newFakeStore()
	us := NewUserService(store, store)
	caller := seedUser(t, store, "amamensah", "Ama", "Mensah", models.RoleParticipant)
	other := seedUser(t, store, "amaowusu", "Ama", "Owusu", models.RoleParticipant)

	results, err := us.SearchUsers(context.Background(), "ama", caller.ID, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, other.ID, results[0].ID)
	assert.Equal(t, "Ama Owusu", results[0].Name)
	assert.Equal(t, "amaowusu", results[0].Username)
	assert.Equal(t, 1, store.searchCalls)
}

func TestSearchUsersDefaultLimit(t *testing.T) {
	store := newFakeStore()
	us := NewUserService(store, store)
	caller := seedUser(t, store, "caller", "Ca", "Ller", models.RoleParticipant)

	for i := 0; i < 15; i++ {
		seedUser(t, store, "match"+string(rune('a'+i)), "Match", "User", models.RoleParticipant)
	}

	results, err := us.SearchUsers(context.Background(), "match", caller.ID, 0)
	require.NoError(t, err)
	assert.Len(t, results, defaultUserLimit)
}

func TestGetUserProfile(t *testing.T) {
	store := newFakeStore()
	us := NewUserService(store, store)
	es := NewEventService(store, store)
	host := seedUser(t, store, "hosta", "A", "B", models.RoleHost)
	other := seedUser(t, store, "hostb", "C", "D", models.RoleHost)

	mine := createEvent(t, es, host.ID, sampleEvent())
	theirs := createEvent(t, es, other.ID, sampleEvent())
	_, err := es.SaveEvent(context.Background(), host.ID, theirs.ID)
	require.NoError(t, err)

	profile, err := us.GetUserProfile(context.Background(), host.ID)
	require.NoError(t, err)
	assert.Equal(t, host.ID, profile.User.ID)
	require.Len(t, profile.CreatedEvents, 1)
	assert.Equal(t, mine.ID, profile.CreatedEvents[0].ID)
	require.Len(t, profile.SavedEvents, 1)
	assert.Equal(t, theirs.ID, profile.SavedEvents[0].ID)
}

func TestGetUserProfileUnknownUser(t *testing.T) {
	store := newFakeStore()
	us := NewUserService(store, store)

	_, err := us.GetUserProfile(context.Background(), primitive.NewObjectID())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGetSavedEventsSkipsDanglingReferences(t *testing.T) {
	store := newFakeStore()
	us := NewUserService(store, store)
	es := NewEventService(store, store)
	host := seedUser(t, store, "hosta", "A", "B", models.RoleHost)
	user := seedUser(t, store, "saver", "Sa", "Ver", models.RoleParticipant)

	kept := createEvent(t, es, host.ID, sampleEvent())
	_, err := es.SaveEvent(context.Background(), user.ID, kept.ID)
	require.NoError(t, err)

	// A reference to an event that no longer exists is dropped, not an error.
	require.NoError(t, store.AddSavedEvent(context.Background(), user.ID, primitive.NewObjectID()))

	saved, err := us.GetSavedEvents(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, kept.ID, saved[0].ID)
}

func TestUpdateHobbiesReplacesWholesale(t *testing.T) {
	store := newFakeStore()
	us := NewUserService(store, store)
	user := seedUser(t, store, "amamensah", "Ama", "Mensah", models.RoleParticipant)

	updated, err := us.UpdateHobbies(context.Background(), user.ID, []string{"music", "hiking"})
	require.NoError(t, err)
	assert.Equal(t, []string{"music", "hiking"}, updated.Hobbies)

	updated, err = us.UpdateHobbies(context.Background(), user.ID, []string{"chess"})
	require.NoError(t, err)
	assert.Equal(t, []string{"chess"}, updated.Hobbies)

	updated, err = us.UpdateHobbies(context.Background(), user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, updated.Hobbies)
}
