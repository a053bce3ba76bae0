package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/eventtrack/server/internal/container"
	"github.com/eventtrack/server/internal/handlers"
	"github.com/eventtrack/server/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "eventtrack-api",
			})
		})

		// public routes
		v1.POST("/auth/register", handlers.Register(container.AuthService))
		v1.POST("/auth/login", handlers.Login(container.AuthService))
		v1.GET("/events", handlers.GetEvents(container.EventService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.AuthService, container.Config.JWTSecret, container.Logger))

	authRoutes := protected.Group("/auth")
	{
		authRoutes.GET("/me", handlers.GetCurrentUser(container.AuthService))
		authRoutes.PATCH("/profile", handlers.UpdateProfile(container.AuthService))
	}

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("/", middleware.RequireHost(), handlers.CreateEvent(container.EventService))
		eventRoutes.GET("/host", middleware.RequireHost(), handlers.GetHostEvents(container.EventService))
		eventRoutes.PUT("/:id", handlers.UpdateEvent(container.EventService))
		eventRoutes.DELETE("/:id", handlers.DeleteEvent(container.EventService))
		eventRoutes.POST("/:id/register", handlers.RegisterForEvent(container.EventService))
	}

	userRoutes := protected.Group("/users")
	{
		userRoutes.GET("/search", handlers.SearchUsers(container.UserService))
		userRoutes.GET("/profile", handlers.GetUserProfile(container.UserService))
		userRoutes.GET("/saved", handlers.GetSavedEvents(container.UserService))
		userRoutes.POST("/saved", handlers.ToggleSaveEvent(container.EventService))
		userRoutes.PUT("/hobbies", handlers.UpdateHobbies(container.UserService))
	}

	protected.POST("/uploads", handlers.UploadImages(container.UploadService))

	// Event detail stays public so listings can deep-link without a session.
	v1.GET("/events/:id", handlers.GetEventByID(container.EventService))

	return r
}
