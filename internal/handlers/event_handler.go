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

func eventIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	raw := helpers.StringTrim(c.Param("id"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("Event ID is required"))
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid event ID format"))
		return primitive.NilObjectID, false
	}
	return id, true
}

func GetEvents(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))

		filter := models.EventFilter{
			Category: c.Query("category"),
			Search:   c.Query("search"),
			Limit:    limit,
			Page:     page,
		}

		result, err := e.GetEvents(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result, "Events retrieved successfully"))
	}
}

func GetEventByID(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := eventIDParam(c)
		if !ok {
			return
		}

		event, err := e.GetEventByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"event": event}, "Event retrieved successfully"))
	}
}

func CreateEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentUser(c)
		if !ok {
			return
		}

		var event models.Event
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := e.CreateEvent(c.Request.Context(), claims.UserID, &event)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{"event": created}, "Event created successfully"))
	}
}

func UpdateEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := eventIDParam(c)
		if !ok {
			return
		}
		claims, ok := currentUser(c)
		if !ok {
			return
		}

		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		event, err := e.UpdateEvent(c.Request.Context(), id, claims.UserID, updates)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"event": event}, "Event updated successfully"))
	}
}

func DeleteEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := eventIDParam(c)
		if !ok {
			return
		}
		claims, ok := currentUser(c)
		if !ok {
			return
		}

		if err := e.DeleteEvent(c.Request.Context(), id, claims.UserID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event deleted successfully"))
	}
}

func RegisterForEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := eventIDParam(c)
		if !ok {
			return
		}
		claims, ok := currentUser(c)
		if !ok {
			return
		}

		result, err := e.RegisterUserForEvent(c.Request.Context(), id, claims.UserID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result, "Registered for event successfully"))
	}
}

func GetHostEvents(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentUser(c)
		if !ok {
			return
		}

		events, err := e.GetHostEvents(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"events": events}, "Host events retrieved successfully"))
	}
}
