package services

import (
	"context"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventtrack/server/internal/models"
)

const (
	minSearchLength  = 2
	defaultUserLimit = 10
)

type UserService struct {
	userRepo  models.UserRepo
	eventRepo models.EventRepo
}

func NewUserService(userRepo models.UserRepo, eventRepo models.EventRepo) *UserService {
	return &UserService{
		userRepo:  userRepo,
		eventRepo: eventRepo,
	}
}

// SearchUsers matches the query against names, username and email,
// excluding the caller. Queries shorter than two characters return empty
// without touching the store.
func (us *UserService) SearchUsers(ctx context.Context, query string, excludeUserID primitive.ObjectID, limit int) ([]models.UserSummary, error) {
	if utf8.RuneCountInString(query) < minSearchLength {
		return []models.UserSummary{}, nil
	}
	if limit <= 0 {
		limit = defaultUserLimit
	}

	users, err := us.userRepo.SearchUsers(ctx, query, excludeUserID, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.Summary())
	}
	return summaries, nil
}

type UserProfile struct {
	User          *models.User    `json:"user"`
	CreatedEvents []*models.Event `json:"createdEvents"`
	SavedEvents   []*models.Event `json:"savedEvents"`
}

func (us *UserService) GetUserProfile(ctx context.Context, id primitive.ObjectID) (*UserProfile, error) {
	user, err := us.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	createdEvents, err := us.eventRepo.FindEventsByIDs(ctx, user.CreatedEvents)
	if err != nil {
		return nil, err
	}
	savedEvents, err := us.eventRepo.FindEventsByIDs(ctx, user.SavedEvents)
	if err != nil {
		return nil, err
	}

	return &UserProfile{
		User:          user,
		CreatedEvents: createdEvents,
		SavedEvents:   savedEvents,
	}, nil
}

func (us *UserService) GetSavedEvents(ctx context.Context, id primitive.ObjectID) ([]*models.Event, error) {
	user, err := us.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return us.eventRepo.FindEventsByIDs(ctx, user.SavedEvents)
}

func (us *UserService) UpdateHobbies(ctx context.Context, id primitive.ObjectID, hobbies []string) (*models.User, error) {
	if hobbies == nil {
		hobbies = []string{}
	}
	return us.userRepo.UpdateUserFields(ctx, id, map[string]interface{}{"hobbies": hobbies})
}
