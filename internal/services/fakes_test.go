package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventtrack/server/internal/apperr"
	"github.com/eventtrack/server/internal/models"
)

// fakeStore is an in-memory stand-in for the Mongo repositories. It mirrors
// the repo contracts, including the conditional-update semantics of
// RegisterAttendee, so service behavior can be tested without a database.
type fakeStore struct {
	mu          sync.Mutex
	users       map[primitive.ObjectID]*models.User
	events      map[primitive.ObjectID]*models.Event
	eventOrder  []primitive.ObjectID
	searchCalls int
}

var (
	_ models.UserRepo  = (*fakeStore)(nil)
	_ models.EventRepo = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[primitive.ObjectID]*models.User{},
		events: map[primitive.ObjectID]*models.Event{},
	}
}

func (f *fakeStore) InsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, apperr.New(apperr.KindConflict, "Email or username already registered")
		}
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.SavedEvents == nil {
		user.SavedEvents = []primitive.ObjectID{}
	}
	if user.CreatedEvents == nil {
		user.CreatedEvents = []primitive.ObjectID{}
	}
	if user.Hobbies == nil {
		user.Hobbies = []string{}
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeStore) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "User not found")
	}
	return user, nil
}

func (f *fakeStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindUserByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email || u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdateUserFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "User not found")
	}

	for key, value := range fields {
		switch key {
		case "first_name":
			user.FirstName = value.(string)
		case "last_name":
			user.LastName = value.(string)
		case "bio":
			user.Bio = value.(string)
		case "avatar":
			user.Avatar = value.(string)
		case "hobbies":
			user.Hobbies = value.([]string)
		}
	}
	user.UpdatedAt = time.Now().UTC()
	return user, nil
}

func (f *fakeStore) SearchUsers(ctx context.Context, query string, exclude primitive.ObjectID, limit int) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.searchCalls++
	q := strings.ToLower(query)

	var matches []*models.User
	for _, u := range f.users {
		if u.ID == exclude {
			continue
		}
		haystack := strings.ToLower(u.FirstName + " " + u.LastName + " " + u.Username + " " + u.Email)
		if strings.Contains(haystack, q) {
			matches = append(matches, u)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches, nil
}

func (f *fakeStore) AddCreatedEvent(ctx context.Context, userID, eventID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return nil
	}
	for _, id := range user.CreatedEvents {
		if id == eventID {
			return nil
		}
	}
	user.CreatedEvents = append(user.CreatedEvents, eventID)
	return nil
}

func (f *fakeStore) AddSavedEvent(ctx context.Context, userID, eventID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return nil
	}
	for _, id := range user.SavedEvents {
		if id == eventID {
			return nil
		}
	}
	user.SavedEvents = append(user.SavedEvents, eventID)
	return nil
}

func (f *fakeStore) PullSavedEvent(ctx context.Context, userID, eventID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return nil
	}
	kept := user.SavedEvents[:0]
	for _, id := range user.SavedEvents {
		if id != eventID {
			kept = append(kept, id)
		}
	}
	user.SavedEvents = kept
	return nil
}

func (f *fakeStore) InsertEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.Attendees == nil {
		event.Attendees = []primitive.ObjectID{}
	}
	if event.CoHosts == nil {
		event.CoHosts = []models.CoHost{}
	}
	if event.Tags == nil {
		event.Tags = []string{}
	}
	f.events[event.ID] = event
	f.eventOrder = append(f.eventOrder, event.ID)
	return event, nil
}

func (f *fakeStore) FindEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event, ok := f.events[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "Event not found")
	}
	return event, nil
}

func (f *fakeStore) FindEventsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	events := make([]*models.Event, 0, len(ids))
	for _, id := range ids {
		if e, ok := f.events[id]; ok {
			events = append(events, e)
		}
	}
	return events, nil
}

func (f *fakeStore) matchesFilter(e *models.Event, filter models.EventFilter) bool {
	if !e.IsActive {
		return false
	}
	if filter.Visibility == "" || filter.Visibility == models.VisibilityPublic {
		if e.Visibility != models.VisibilityPublic || e.Status != models.StatusPublished {
			return false
		}
	}
	if filter.Category != "" && filter.Category != "All" {
		if filter.Category == models.CategoryTrending {
			if !e.IsFeatured {
				return false
			}
		} else if e.Category != filter.Category {
			return false
		}
	}
	if filter.Search != "" {
		q := strings.ToLower(filter.Search)
		haystack := strings.ToLower(e.Title + " " + e.Description + " " + e.Location)
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

func (f *fakeStore) ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Newest first.
	var matched []*models.Event
	for i := len(f.eventOrder) - 1; i >= 0; i-- {
		e := f.events[f.eventOrder[i]]
		if e != nil && f.matchesFilter(e, filter) {
			matched = append(matched, e)
		}
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []*models.Event{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeStore) ListEventsByOrganizer(ctx context.Context, userID primitive.ObjectID) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	events := []*models.Event{}
	for i := len(f.eventOrder) - 1; i >= 0; i-- {
		e := f.events[f.eventOrder[i]]
		if e != nil && e.Organizer.UserID == userID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (f *fakeStore) UpdateEventFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event, ok := f.events[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "Event not found")
	}

	for key, value := range fields {
		switch key {
		case "title":
			event.Title = value.(string)
		case "description":
			event.Description = value.(string)
		case "image":
			event.Image = value.(string)
		case "poster":
			event.Poster = value.(string)
		case "date":
			event.Date = value.(string)
		case "time":
			event.Time = value.(string)
		case "location":
			event.Location = value.(string)
		case "venue":
			event.Venue = value.(string)
		case "price":
			event.Price = value.(string)
		case "ticket_type":
			event.TicketType = value.(string)
		case "ticket_price":
			event.TicketPrice = value.(float64)
		case "ticket_details":
			event.TicketDetails = value.(string)
		case "category":
			event.Category = value.(string)
		case "visibility":
			event.Visibility = models.EventVisibility(value.(string))
		case "max_attendees":
			event.MaxAttendees = value.(int)
		case "tags":
			event.Tags = value.([]string)
		case "status":
			event.Status = models.EventStatus(value.(string))
		case "is_featured":
			event.IsFeatured = value.(bool)
		}
	}
	event.UpdatedAt = time.Now().UTC()
	return event, nil
}

func (f *fakeStore) DeleteEventCascade(ctx context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.events, event.ID)
	for i, id := range f.eventOrder {
		if id == event.ID {
			f.eventOrder = append(f.eventOrder[:i], f.eventOrder[i+1:]...)
			break
		}
	}

	if organizer, ok := f.users[event.Organizer.UserID]; ok {
		kept := organizer.CreatedEvents[:0]
		for _, id := range organizer.CreatedEvents {
			if id != event.ID {
				kept = append(kept, id)
			}
		}
		organizer.CreatedEvents = kept
	}

	for _, u := range f.users {
		kept := u.SavedEvents[:0]
		for _, id := range u.SavedEvents {
			if id != event.ID {
				kept = append(kept, id)
			}
		}
		u.SavedEvents = kept
	}
	return nil
}

func (f *fakeStore) RegisterAttendee(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event, ok := f.events[eventID]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "Event not found")
	}
	if event.HasAttendee(userID) {
		return nil, apperr.New(apperr.KindConflict, "You are already registered for this event")
	}
	if event.MaxAttendees > 0 && len(event.Attendees) >= event.MaxAttendees {
		return nil, apperr.New(apperr.KindConflict, "Event is at full capacity")
	}
	event.Attendees = append(event.Attendees, userID)
	return event, nil
}
