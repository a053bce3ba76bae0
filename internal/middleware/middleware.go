package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventtrack/server/internal/apperr"
	"github.com/eventtrack/server/internal/helpers"
	"github.com/eventtrack/server/internal/models"
	"github.com/eventtrack/server/internal/services"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Process request
		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler logs errors attached to the gin context and returns a
// redacted envelope for anything no handler responded to.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			if !c.Writer.Written() {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse("Internal server error"))
			}
		}
	}
}

// AuthMiddleware verifies the bearer token and loads the stored user so
// downstream handlers see the current role, not a stale claim.
func AuthMiddleware(authService *services.AuthService, jwtSecret string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("No token provided"))
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := helpers.ValidateToken(token, jwtSecret)
		if err != nil {
			c.JSON(apperr.StatusOf(err), models.ErrorResponse(apperr.MessageOf(err)))
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Invalid token"))
			c.Abort()
			return
		}

		user, err := authService.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			logger.Info("Token user lookup failed", "user_id", claims.UserID, "error", err)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Invalid token"))
			c.Abort()
			return
		}

		c.Set("user", &helpers.AuthClaims{
			UserID:   user.ID,
			Role:     user.Role,
			Username: user.Username,
			Email:    user.Email,
			Name:     user.FullName(),
			Avatar:   user.Avatar,
		})
		c.Next()
	}
}

// RequireHost gates a route on the stored host role. Must run after
// AuthMiddleware.
func RequireHost() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized"))
			c.Abort()
			return
		}
		userClaims, ok := claims.(*helpers.AuthClaims)
		if !ok || !userClaims.IsHost() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("Only hosts can perform this action"))
			c.Abort()
			return
		}
		c.Next()
	}
}
