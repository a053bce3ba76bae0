package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventtrack/server/internal/apperr"
)

// EventFilter drives the public listing query. The zero visibility means
// public, which also restricts the listing to published, active events.
type EventFilter struct {
	Category   string
	Search     string
	Visibility EventVisibility
	Limit      int
	Page       int
}

type EventRepo interface {
	InsertEvent(ctx context.Context, event *Event) (*Event, error)
	FindEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	FindEventsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, int64, error)
	ListEventsByOrganizer(ctx context.Context, userID primitive.ObjectID) ([]*Event, error)
	UpdateEventFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Event, error)
	// DeleteEventCascade removes the event and every reference to it
	// (organizer's created_events, all users' saved_events) in a single
	// multi-document transaction.
	DeleteEventCascade(ctx context.Context, event *Event) error
	// RegisterAttendee appends userID to the attendee list only if the user
	// is not already registered and the capacity allows it, as one
	// conditional update. Returns the updated event.
	RegisterAttendee(ctx context.Context, eventID, userID primitive.ObjectID) (*Event, error)
}

// BuildEventQuery translates an EventFilter into the Mongo query document.
func BuildEventQuery(f EventFilter) bson.M {
	query := bson.M{"is_active": true}

	if f.Visibility == "" || f.Visibility == VisibilityPublic {
		query["visibility"] = VisibilityPublic
		query["status"] = StatusPublished
	}

	if f.Category != "" && f.Category != "All" {
		if f.Category == CategoryTrending {
			query["is_featured"] = true
		} else {
			query["category"] = f.Category
		}
	}

	if f.Search != "" {
		query["$text"] = bson.M{"$search": f.Search}
	}

	return query
}

func (mdb *MongodbRepo) InsertEvent(ctx context.Context, event *Event) (*Event, error) {
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.Attendees == nil {
		event.Attendees = []primitive.ObjectID{}
	}
	if event.CoHosts == nil {
		event.CoHosts = []CoHost{}
	}
	if event.Tags == nil {
		event.Tags = []string{}
	}

	res, err := mdb.events().InsertOne(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	event.ID = res.InsertedID.(primitive.ObjectID)
	return event, nil
}

func (mdb *MongodbRepo) FindEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	var event Event
	err := mdb.events().FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.KindNotFound, "Event not found")
		}
		return nil, fmt.Errorf("find event by id: %w", err)
	}
	return &event, nil
}

func (mdb *MongodbRepo) FindEventsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*Event, error) {
	if len(ids) == 0 {
		return []*Event{}, nil
	}

	cursor, err := mdb.events().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find events by ids: %w", err)
	}
	defer cursor.Close(ctx)

	byID := make(map[primitive.ObjectID]*Event, len(ids))
	for cursor.Next(ctx) {
		var e Event
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		byID[e.ID] = &e
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find events cursor: %w", err)
	}

	// Preserve the caller's ordering, skipping dangling references.
	events := make([]*Event, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			events = append(events, e)
		}
	}
	return events, nil
}

func (mdb *MongodbRepo) ListEvents(ctx context.Context, filter EventFilter) ([]*Event, int64, error) {
	query := BuildEventQuery(filter)

	skip := int64((filter.Page - 1) * filter.Limit)
	findOpts := options.Find().SetSkip(skip).SetLimit(int64(filter.Limit))
	if filter.Search != "" {
		// Text search results are ordered by relevance, not recency.
		findOpts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
		findOpts.SetSort(bson.M{"score": bson.M{"$meta": "textScore"}})
	} else {
		findOpts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	cursor, err := mdb.events().Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []*Event{}
	for cursor.Next(ctx) {
		var e Event
		if err := cursor.Decode(&e); err != nil {
			return nil, 0, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, &e)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list events cursor: %w", err)
	}

	total, err := mdb.events().CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}

func (mdb *MongodbRepo) ListEventsByOrganizer(ctx context.Context, userID primitive.ObjectID) ([]*Event, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := mdb.events().Find(ctx, bson.M{"organizer.user_id": userID}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list host events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []*Event{}
	for cursor.Next(ctx) {
		var e Event
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, &e)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list host events cursor: %w", err)
	}
	return events, nil
}

func (mdb *MongodbRepo) UpdateEventFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Event, error) {
	update := bson.M{"$set": bson.M(fields)}
	update["$set"].(bson.M)["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var event Event
	err := mdb.events().FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.KindNotFound, "Event not found")
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return &event, nil
}

func (mdb *MongodbRepo) DeleteEventCascade(ctx context.Context, event *Event) error {
	session, err := mdb.mongodbClient.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := mdb.events().DeleteOne(sc, bson.M{"_id": event.ID}); err != nil {
			return nil, fmt.Errorf("delete event: %w", err)
		}
		if _, err := mdb.users().UpdateOne(sc,
			bson.M{"_id": event.Organizer.UserID},
			bson.M{"$pull": bson.M{"created_events": event.ID}},
		); err != nil {
			return nil, fmt.Errorf("pull created event: %w", err)
		}
		if _, err := mdb.users().UpdateMany(sc,
			bson.M{"saved_events": event.ID},
			bson.M{"$pull": bson.M{"saved_events": event.ID}},
		); err != nil {
			return nil, fmt.Errorf("pull saved events: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("delete event cascade: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) RegisterAttendee(ctx context.Context, eventID, userID primitive.ObjectID) (*Event, error) {
	filter := bson.M{
		"_id":       eventID,
		"attendees": bson.M{"$ne": userID},
		"$expr": bson.M{"$or": bson.A{
			bson.M{"$lte": bson.A{"$max_attendees", 0}},
			bson.M{"$lt": bson.A{bson.M{"$size": "$attendees"}, "$max_attendees"}},
		}},
	}
	update := bson.M{
		"$addToSet": bson.M{"attendees": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var event Event
	err := mdb.events().FindOneAndUpdate(ctx, filter, update, opts).Decode(&event)
	if err == nil {
		return &event, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("register attendee: %w", err)
	}

	// No document matched: distinguish why.
	current, ferr := mdb.FindEventByID(ctx, eventID)
	if ferr != nil {
		return nil, ferr
	}
	if current.HasAttendee(userID) {
		return nil, apperr.New(apperr.KindConflict, "You are already registered for this event")
	}
	return nil, apperr.New(apperr.KindConflict, "Event is at full capacity")
}
