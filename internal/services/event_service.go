package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"context"
	"encoding/json"
	"fmt"

	"github.com/eventtrack/server/internal/apperr"
	"github.com/eventtrack/server/internal/models"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 100
)

type EventService struct {
	eventRepo models.EventRepo
	userRepo  models.UserRepo
}

func NewEventService(eventRepo models.EventRepo, userRepo models.UserRepo) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

type EventList struct {
	Events     []*models.Event   `json:"events"`
	Pagination models.Pagination `json:"pagination"`
}

func (es *EventService) GetEvents(ctx context.Context, filter models.EventFilter) (*EventList, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultEventLimit
	}
	if filter.Limit > maxEventLimit {
		filter.Limit = maxEventLimit
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	events, total, err := es.eventRepo.ListEvents(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &EventList{
		Events: events,
		Pagination: models.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (es *EventService) GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	return es.eventRepo.FindEventByID(ctx, id)
}

// GetHostEvents returns every event organized by the user, drafts and
// private events included.
func (es *EventService) GetHostEvents(ctx context.Context, userID primitive.ObjectID) ([]*models.Event, error) {
	return es.eventRepo.ListEventsByOrganizer(ctx, userID)
}

func (es *EventService) CreateEvent(ctx context.Context, userID primitive.ObjectID, event *models.Event) (*models.Event, error) {
	user, err := es.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleHost {
		return nil, apperr.New(apperr.KindForbidden, "Only hosts can create events")
	}

	if event.Image == "" {
		event.Image = models.DefaultEventImage
	}
	if event.Time == "" {
		event.Time = "10:00 AM"
	}
	if event.Price == "" {
		event.Price = "0"
	}
	if event.TicketType == "" {
		event.TicketType = models.TicketFree
	}
	if event.Visibility == "" {
		event.Visibility = models.VisibilityPublic
	}
	if event.Status == "" {
		event.Status = models.StatusPublished
	}
	event.IsActive = true

	// Point-in-time copy of the creator's display info.
	event.Organizer = models.Organizer{
		UserID: user.ID,
		Name:   user.FullName(),
		Avatar: user.Avatar,
	}

	if !models.ValidCategory(event.Category) {
		return nil, apperr.Newf(apperr.KindValidation, "Unknown event category: %s", event.Category)
	}
	if err := models.Validate.Struct(event); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Invalid event data", err)
	}

	created, err := es.eventRepo.InsertEvent(ctx, event)
	if err != nil {
		return nil, err
	}

	if err := es.userRepo.AddCreatedEvent(ctx, userID, created.ID); err != nil {
		return nil, err
	}

	return created, nil
}

// eventUpdateFields maps the mutable event keys to their stored names.
var eventUpdateFields = map[string]string{
	"title":         "title",
	"description":   "description",
	"image":         "image",
	"poster":        "poster",
	"date":          "date",
	"time":          "time",
	"location":      "location",
	"venue":         "venue",
	"price":         "price",
	"ticketType":    "ticket_type",
	"ticketPrice":   "ticket_price",
	"ticketDetails": "ticket_details",
	"category":      "category",
	"visibility":    "visibility",
	"maxAttendees":  "max_attendees",
	"tags":          "tags",
	"status":        "status",
	"isFeatured":    "is_featured",
}

// mergeEventUpdates applies the whitelisted updates onto a copy of the
// stored event so the full schema can be re-validated before anything is
// persisted.
func mergeEventUpdates(event *models.Event, updates map[string]interface{}) (*models.Event, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	doc := map[string]interface{}{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}

	for key := range eventUpdateFields {
		if value, ok := updates[key]; ok {
			doc[key] = value
		}
	}

	raw, err = json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal merged event: %w", err)
	}
	var merged models.Event
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Invalid event data", err)
	}
	return &merged, nil
}

func (es *EventService) UpdateEvent(ctx context.Context, id, userID primitive.ObjectID, updates map[string]interface{}) (*models.Event, error) {
	event, err := es.eventRepo.FindEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !event.IsOrganizer(userID) && !event.CoHostCanEdit(userID) {
		return nil, apperr.New(apperr.KindForbidden, "You do not have permission to edit this event")
	}

	if category, ok := updates["category"].(string); ok && !models.ValidCategory(category) {
		return nil, apperr.Newf(apperr.KindValidation, "Unknown event category: %s", category)
	}

	fields := map[string]interface{}{}
	for key, value := range updates {
		if stored, ok := eventUpdateFields[key]; ok {
			fields[stored] = value
		}
	}
	if len(fields) == 0 {
		return event, nil
	}

	merged, err := mergeEventUpdates(event, updates)
	if err != nil {
		return nil, err
	}
	if err := models.Validate.Struct(merged); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Invalid event data", err)
	}

	return es.eventRepo.UpdateEventFields(ctx, id, fields)
}

func (es *EventService) DeleteEvent(ctx context.Context, id, userID primitive.ObjectID) error {
	event, err := es.eventRepo.FindEventByID(ctx, id)
	if err != nil {
		return err
	}

	if !event.IsOrganizer(userID) && !event.CoHostCanCancel(userID) {
		return apperr.New(apperr.KindForbidden, "You do not have permission to delete this event")
	}

	return es.eventRepo.DeleteEventCascade(ctx, event)
}

type SaveResult struct {
	Saved   bool   `json:"saved"`
	Message string `json:"message"`
}

// ToggleSaveEvent flips membership in the caller's saved list. Saving an
// already-saved event removes it; no duplicates are ever produced.
func (es *EventService) ToggleSaveEvent(ctx context.Context, userID, eventID primitive.ObjectID) (*SaveResult, error) {
	user, err := es.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := es.eventRepo.FindEventByID(ctx, eventID); err != nil {
		return nil, err
	}

	if user.HasSaved(eventID) {
		if err := es.userRepo.PullSavedEvent(ctx, userID, eventID); err != nil {
			return nil, err
		}
		return &SaveResult{Saved: false, Message: "Event removed from saved"}, nil
	}

	if err := es.userRepo.AddSavedEvent(ctx, userID, eventID); err != nil {
		return nil, err
	}
	return &SaveResult{Saved: true, Message: "Event saved successfully"}, nil
}

// SaveEvent is the idempotent form: saving an already-saved event keeps it
// saved and never duplicates the reference.
func (es *EventService) SaveEvent(ctx context.Context, userID, eventID primitive.ObjectID) (*SaveResult, error) {
	user, err := es.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := es.eventRepo.FindEventByID(ctx, eventID); err != nil {
		return nil, err
	}

	if user.HasSaved(eventID) {
		return &SaveResult{Saved: true, Message: "Event already saved"}, nil
	}
	if err := es.userRepo.AddSavedEvent(ctx, userID, eventID); err != nil {
		return nil, err
	}
	return &SaveResult{Saved: true, Message: "Event saved successfully"}, nil
}

// UnsaveEvent is idempotent: removing an event that is not saved is a no-op.
func (es *EventService) UnsaveEvent(ctx context.Context, userID, eventID primitive.ObjectID) (*SaveResult, error) {
	if _, err := es.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := es.eventRepo.FindEventByID(ctx, eventID); err != nil {
		return nil, err
	}

	if err := es.userRepo.PullSavedEvent(ctx, userID, eventID); err != nil {
		return nil, err
	}
	return &SaveResult{Saved: false, Message: "Event removed from saved"}, nil
}

type RegistrationResult struct {
	Event         models.EventBrief `json:"event"`
	AttendeeCount int               `json:"attendeeCount"`
}

func (es *EventService) RegisterUserForEvent(ctx context.Context, eventID, userID primitive.ObjectID) (*RegistrationResult, error) {
	if _, err := es.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	event, err := es.eventRepo.RegisterAttendee(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	return &RegistrationResult{
		Event:         event.Brief(),
		AttendeeCount: len(event.Attendees),
	}, nil
}
