package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventtrack/server/internal/models"
	"github.com/eventtrack/server/internal/services"
)

func UploadImages(u *services.UploadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); !ok {
			return
		}

		var req struct {
			Images []string `json:"images" binding:"required"`
			Folder string   `json:"folder" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		urls, err := u.UploadImages(c.Request.Context(), req.Images, req.Folder)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"urls": urls}, "Images uploaded successfully"))
	}
}
