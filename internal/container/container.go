package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventtrack/server/internal/config"
	"github.com/eventtrack/server/internal/models"
	"github.com/eventtrack/server/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger        *slog.Logger
	Config        *config.Config
	MongoDBClient *mongo.Client
	Repo          *models.MongodbRepo
	AuthService   *services.AuthService
	EventService  *services.EventService
	UserService   *services.UserService
	UploadService *services.UploadService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
	cld *cloudinary.Cloudinary,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBName)
	authService := services.NewAuthService(repo, cfg.JWTSecret)
	eventService := services.NewEventService(repo, repo)
	userService := services.NewUserService(repo, repo)
	uploadService := services.NewUploadService(cld)

	return &Container{
		Logger:        logger,
		Config:        cfg,
		MongoDBClient: mongoDBClient,
		Repo:          repo,
		AuthService:   authService,
		EventService:  eventService,
		UserService:   userService,
		UploadService: uploadService,
	}
}
