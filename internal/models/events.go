package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusCancelled EventStatus = "cancelled"
	StatusCompleted EventStatus = "completed"
)

type EventVisibility string

const (
	VisibilityPublic     EventVisibility = "public"
	VisibilityPrivate    EventVisibility = "private"
	VisibilityInviteOnly EventVisibility = "invite-only"
)

const (
	TicketFree = "free"
	TicketPaid = "paid"
)

// CategoryTrending is not a real category: listing treats it as a filter
// for featured events.
const CategoryTrending = "Trending"

var EventCategories = []string{
	"Technology",
	"Music",
	"Art",
	"Sports",
	"Gaming",
	"Business",
	"Food & Drink",
	"General",
	CategoryTrending,
}

const DefaultEventImage = "https://images.pexels.com/photos/2747449/pexels-photo-2747449.jpeg"

// Organizer is a point-in-time copy of the host's display info taken at
// event creation. It is not re-synced when the host edits their profile.
type Organizer struct {
	UserID primitive.ObjectID `bson:"user_id" json:"userId"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
}

type CoHostPermissions struct {
	CanEdit            bool `bson:"can_edit" json:"canEdit"`
	CanManageAttendees bool `bson:"can_manage_attendees" json:"canManageAttendees"`
	CanCancel          bool `bson:"can_cancel" json:"canCancel"`
}

type CoHost struct {
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Avatar      string             `bson:"avatar" json:"avatar"`
	Permissions CoHostPermissions  `bson:"permissions" json:"permissions"`
}

type Event struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title         string               `bson:"title" json:"title" validate:"required,max=100"`
	Description   string               `bson:"description" json:"description" validate:"required,max=1000"`
	Image         string               `bson:"image" json:"image" validate:"required"`
	Poster        string               `bson:"poster,omitempty" json:"poster,omitempty"`
	Date          string               `bson:"date" json:"date" validate:"required"`
	Time          string               `bson:"time" json:"time"`
	Location      string               `bson:"location" json:"location" validate:"required"`
	Venue         string               `bson:"venue" json:"venue" validate:"required"`
	Price         string               `bson:"price" json:"price"`
	TicketType    string               `bson:"ticket_type" json:"ticketType" validate:"omitempty,oneof=free paid"`
	TicketPrice   float64              `bson:"ticket_price" json:"ticketPrice"`
	TicketDetails string               `bson:"ticket_details,omitempty" json:"ticketDetails,omitempty" validate:"max=500"`
	Category      string               `bson:"category" json:"category" validate:"required"`
	Visibility    EventVisibility      `bson:"visibility" json:"visibility" validate:"omitempty,oneof=public private invite-only"`
	Organizer     Organizer            `bson:"organizer" json:"organizer"`
	CoHosts       []CoHost             `bson:"co_hosts" json:"coHosts"`
	Attendees     []primitive.ObjectID `bson:"attendees" json:"attendees"`
	InvitedUsers  []primitive.ObjectID `bson:"invited_users,omitempty" json:"invitedUsers,omitempty"`
	MaxAttendees  int                  `bson:"max_attendees" json:"maxAttendees"` // 0 means uncapped
	Tags          []string             `bson:"tags" json:"tags"`
	Status        EventStatus          `bson:"status" json:"status" validate:"omitempty,oneof=draft published cancelled completed"`
	IsActive      bool                 `bson:"is_active" json:"isActive"`
	IsFeatured    bool                 `bson:"is_featured" json:"isFeatured"`
	CreatedAt     time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updated_at" json:"updatedAt"`
}

// EventBrief is the confirmation payload returned after registering.
type EventBrief struct {
	ID    primitive.ObjectID `json:"id"`
	Title string             `json:"title"`
	Date  string             `json:"date"`
	Venue string             `json:"venue"`
}

func (e *Event) Brief() EventBrief {
	return EventBrief{
		ID:    e.ID,
		Title: e.Title,
		Date:  e.Date,
		Venue: e.Venue,
	}
}

func (e *Event) IsOrganizer(userID primitive.ObjectID) bool {
	return e.Organizer.UserID == userID
}

// CoHostCanEdit reports whether userID is a co-host holding edit rights.
func (e *Event) CoHostCanEdit(userID primitive.ObjectID) bool {
	for _, ch := range e.CoHosts {
		if ch.UserID == userID && ch.Permissions.CanEdit {
			return true
		}
	}
	return false
}

// CoHostCanCancel reports whether userID is a co-host holding cancel rights.
func (e *Event) CoHostCanCancel(userID primitive.ObjectID) bool {
	for _, ch := range e.CoHosts {
		if ch.UserID == userID && ch.Permissions.CanCancel {
			return true
		}
	}
	return false
}

func (e *Event) HasAttendee(userID primitive.ObjectID) bool {
	for _, id := range e.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}

func ValidCategory(category string) bool {
	for _, c := range EventCategories {
		if c == category {
			return true
		}
	}
	return false
}
