package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventtrack/server/internal/helpers"
	"github.com/eventtrack/server/internal/models"
	"github.com/eventtrack/server/internal/services"
)

func SearchUsers(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentUser(c)
		if !ok {
			return
		}

		query := c.Query("q")
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

		users, err := u.SearchUsers(c.Request.Context(), query, claims.UserID, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"users": users}, "Users retrieved successfully"))
	}
}

func GetUserProfile(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentUser(c)
		if !ok {
			return
		}

		profile, err := u.GetUserProfile(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, "User profile retrieved successfully"))
	}
}

func GetSavedEvents(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentUser(c)
		if !ok {
			return
		}

		events, err := u.GetSavedEvents(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"events": events}, "Saved events retrieved successfully"))
	}
}

func ToggleSaveEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentUser(c)
		if !ok {
			return
		}

		var req struct {
			EventID string `json:"eventId" binding:"required"`
			Action  string `json:"action" binding:"omitempty,oneof=save unsave"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		eventID, err := primitive.ObjectIDFromHex(helpers.StringTrim(req.EventID))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid event ID format"))
			return
		}

		var result *services.SaveResult
		switch req.Action {
		case "save":
			result, err = e.SaveEvent(c.Request.Context(), claims.UserID, eventID)
		case "unsave":
			result, err = e.UnsaveEvent(c.Request.Context(), claims.UserID, eventID)
		default:
			result, err = e.ToggleSaveEvent(c.Request.Context(), claims.UserID, eventID)
		}
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result, result.Message))
	}
}

func UpdateHobbies(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentUser(c)
		if !ok {
			return
		}

		var req struct {
			Hobbies []string `json:"hobbies" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		user, err := u.UpdateHobbies(c.Request.Context(), claims.UserID, req.Hobbies)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"user": user}, "Hobbies updated successfully"))
	}
}
