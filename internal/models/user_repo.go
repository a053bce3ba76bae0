package models

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventtrack/server/internal/apperr"
)

type UserRepo interface {
	InsertUser(ctx context.Context, user *User) (*User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	// FindUserByEmail returns (nil, nil) when no user matches so callers
	// can respond without revealing whether the email exists.
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByEmailOrUsername(ctx context.Context, email, username string) (*User, error)
	UpdateUserFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*User, error)
	SearchUsers(ctx context.Context, query string, exclude primitive.ObjectID, limit int) ([]*User, error)
	AddCreatedEvent(ctx context.Context, userID, eventID primitive.ObjectID) error
	AddSavedEvent(ctx context.Context, userID, eventID primitive.ObjectID) error
	PullSavedEvent(ctx context.Context, userID, eventID primitive.ObjectID) error
}

func (mdb *MongodbRepo) InsertUser(ctx context.Context, user *User) (*User, error) {
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

	res, err := mdb.users().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.New(apperr.KindConflict, "Email or username already registered")
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (mdb *MongodbRepo) FindUserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var user User
	err := mdb.users().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.KindNotFound, "User not found")
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := mdb.users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) FindUserByEmailOrUsername(ctx context.Context, email, username string) (*User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}}

	var user User
	err := mdb.users().FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email or username: %w", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) UpdateUserFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*User, error) {
	update := bson.M{"$set": bson.M(fields)}
	update["$set"].(bson.M)["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user User
	err := mdb.users().FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.KindNotFound, "User not found")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) SearchUsers(ctx context.Context, query string, exclude primitive.ObjectID, limit int) ([]*User, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"_id": bson.M{"$ne": exclude},
		"$or": bson.A{
			bson.M{"first_name": pattern},
			bson.M{"last_name": pattern},
			bson.M{"username": pattern},
			bson.M{"email": pattern},
		},
	}

	cursor, err := mdb.users().Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*User
	for cursor.Next(ctx) {
		var u User
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, &u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("search users cursor: %w", err)
	}
	return users, nil
}

func (mdb *MongodbRepo) AddCreatedEvent(ctx context.Context, userID, eventID primitive.ObjectID) error {
	_, err := mdb.users().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$addToSet": bson.M{"created_events": eventID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("add created event: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) AddSavedEvent(ctx context.Context, userID, eventID primitive.ObjectID) error {
	_, err := mdb.users().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$addToSet": bson.M{"saved_events": eventID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("add saved event: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) PullSavedEvent(ctx context.Context, userID, eventID primitive.ObjectID) error {
	_, err := mdb.users().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$pull": bson.M{"saved_events": eventID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("pull saved event: %w", err)
	}
	return nil
}
