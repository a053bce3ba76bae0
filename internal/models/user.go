package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleParticipant = "participant"
	RoleHost        = "host"
)

const DefaultAvatar = "https://images.pexels.com/photos/736716/pexels-photo-736716.jpeg"

type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username      string               `bson:"username" json:"username" validate:"required,min=3,max=20"`
	Email         string               `bson:"email" json:"email" validate:"required,email"`
	FirstName     string               `bson:"first_name" json:"firstName" validate:"required,max=50"`
	LastName      string               `bson:"last_name" json:"lastName" validate:"required,max=50"`
	Password      string               `bson:"password" json:"-" validate:"required,min=6"`
	Avatar        string               `bson:"avatar" json:"avatar"`
	Bio           string               `bson:"bio" json:"bio" validate:"max=500"`
	SavedEvents   []primitive.ObjectID `bson:"saved_events" json:"savedEvents"`
	CreatedEvents []primitive.ObjectID `bson:"created_events" json:"createdEvents"`
	Hobbies       []string             `bson:"hobbies" json:"hobbies"`
	Role          string               `bson:"role" json:"role" validate:"required,oneof=participant host"`
	IsActive      bool                 `bson:"is_active" json:"isActive"`
	CreatedAt     time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updated_at" json:"updatedAt"`
}

// UserSummary is the shape returned by user search, nothing sensitive.
type UserSummary struct {
	ID       primitive.ObjectID `json:"id"`
	Name     string             `json:"name"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
	Avatar   string             `json:"avatar"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Name:     u.FullName(),
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
	}
}

// HasSaved reports whether the event id is already in the user's saved list.
func (u *User) HasSaved(eventID primitive.ObjectID) bool {
	for _, id := range u.SavedEvents {
		if id == eventID {
			return true
		}
	}
	return false
}
