package models

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Validate = validator.New()

const (
	UsersColName  = "users"
	EventsColName = "events"
)

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) users() *mongo.Collection {
	return mdb.mongodbClient.Database(mdb.dbName).Collection(UsersColName)
}

func (mdb *MongodbRepo) events() *mongo.Collection {
	return mdb.mongodbClient.Database(mdb.dbName).Collection(EventsColName)
}

// EnsureIndexes creates the unique and query indexes both collections rely
// on. Uniqueness of username and email is enforced here, not in code.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	_, err := mdb.users().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("users_email_unique"),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("users_username_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = mdb.events().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("events_category"),
		},
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "location", Value: "text"},
			},
			Options: options.Index().SetName("events_text_search"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("events_created_at"),
		},
		{
			Keys:    bson.D{{Key: "organizer.user_id", Value: 1}},
			Options: options.Index().SetName("events_organizer"),
		},
	})
	if err != nil {
		return fmt.Errorf("events indexes: %w", err)
	}
	return nil
}
