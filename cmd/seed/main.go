// Seeds the database with sample users and events for local development.
// Wipes both collections first, so never point it at real data.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventtrack/server/internal/config"
	"github.com/eventtrack/server/internal/connect"
	"github.com/eventtrack/server/internal/models"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.IsProduction() {
		slog.Error("Refusing to seed a production database")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	mongoClient, err := connect.MongoDBConnect(cfg.MongoDBURI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer connect.MongoDBDisconnect()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := mongoClient.Database(cfg.MongoDBName)
	if _, err := db.Collection(models.UsersColName).DeleteMany(ctx, bson.M{}); err != nil {
		logger.Error("Failed to clear users", "error", err)
		os.Exit(1)
	}
	if _, err := db.Collection(models.EventsColName).DeleteMany(ctx, bson.M{}); err != nil {
		logger.Error("Failed to clear events", "error", err)
		os.Exit(1)
	}
	logger.Info("Cleared existing data")

	repo := models.MongodbNewRepo(mongoClient, cfg.MongoDBName)
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash seed password", "error", err)
		os.Exit(1)
	}

	seedUsers := []*models.User{
		{
			Username:  "jinendra",
			Email:     "jinendra@eventtrack.com",
			FirstName: "Jinendra",
			LastName:  "Sharma",
			Password:  string(hashed),
			Avatar:    models.DefaultAvatar,
			Bio:       "Event organizer and tech enthusiast",
			Hobbies:   []string{"Technology", "Music", "Sports"},
			Role:      models.RoleHost,
			IsActive:  true,
		},
		{
			Username:  "techevents",
			Email:     "tech@events.com",
			FirstName: "Tech",
			LastName:  "Events",
			Password:  string(hashed),
			Avatar:    models.DefaultAvatar,
			Bio:       "Professional event organizers since 2010",
			Hobbies:   []string{"Technology", "Business"},
			Role:      models.RoleHost,
			IsActive:  true,
		},
		{
			Username:  "musicmaker",
			Email:     "music@events.com",
			FirstName: "Music",
			LastName:  "Maker",
			Password:  string(hashed),
			Avatar:    models.DefaultAvatar,
			Bio:       "Creating amazing musical experiences",
			Hobbies:   []string{"Music", "Art"},
			Role:      models.RoleParticipant,
			IsActive:  true,
		},
	}

	for _, u := range seedUsers {
		if _, err := repo.InsertUser(ctx, u); err != nil {
			logger.Error("Failed to insert user", "username", u.Username, "error", err)
			os.Exit(1)
		}
	}
	logger.Info("Created sample users", "count", len(seedUsers))

	seedEvents := []*models.Event{
		{
			Title:       "Go Meetup: Building Web Services",
			Description: "Monthly meetup covering practical web service patterns.",
			Image:       models.DefaultEventImage,
			Date:        "2026-09-15",
			Time:        "6:00 PM",
			Location:    "Bengaluru",
			Venue:       "Tech Hub Auditorium",
			Price:       "0",
			TicketType:  models.TicketFree,
			Category:    "Technology",
			Visibility:  models.VisibilityPublic,
			Status:      models.StatusPublished,
			IsActive:    true,
			IsFeatured:  true,
			Tags:        []string{"golang", "meetup"},
		},
		{
			Title:        "Indie Night Live",
			Description:  "An evening of live indie performances.",
			Image:        models.DefaultEventImage,
			Date:         "2026-10-02",
			Time:         "8:00 PM",
			Location:     "Mumbai",
			Venue:        "Blue Note Stage",
			Price:        "499",
			TicketType:   models.TicketPaid,
			TicketPrice:  499,
			Category:     "Music",
			Visibility:   models.VisibilityPublic,
			Status:       models.StatusPublished,
			MaxAttendees: 120,
			IsActive:     true,
			Tags:         []string{"live", "indie"},
		},
	}

	for i, e := range seedEvents {
		host := seedUsers[i%2]
		e.Organizer = models.Organizer{
			UserID: host.ID,
			Name:   host.FullName(),
			Avatar: host.Avatar,
		}
		created, err := repo.InsertEvent(ctx, e)
		if err != nil {
			logger.Error("Failed to insert event", "title", e.Title, "error", err)
			os.Exit(1)
		}
		if err := repo.AddCreatedEvent(ctx, host.ID, created.ID); err != nil {
			logger.Error("Failed to link created event", "title", e.Title, "error", err)
			os.Exit(1)
		}
	}
	logger.Info("Created sample events", "count", len(seedEvents))
}
