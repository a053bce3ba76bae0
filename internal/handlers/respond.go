package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventtrack/server/internal/apperr"
	"github.com/eventtrack/server/internal/helpers"
	"github.com/eventtrack/server/internal/models"
)

// currentUser pulls the authenticated claims set by the auth middleware.
// Writes the error response itself when they are missing.
func currentUser(c *gin.Context) (*helpers.AuthClaims, bool) {
	claims, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized"))
		return nil, false
	}
	userClaims, ok := claims.(*helpers.AuthClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("Invalid user claims"))
		return nil, false
	}
	return userClaims, true
}

// respondError maps a service error to its HTTP status via the error kind.
func respondError(c *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		_ = c.Error(err)
	}
	c.JSON(apperr.StatusOf(err), models.ErrorResponse(apperr.MessageOf(err)))
}
