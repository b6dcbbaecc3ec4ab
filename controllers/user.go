package controllers

import (
	"errors"
	"net/http"

	"garagepro-backend/config"
	"garagepro-backend/models"
	"garagepro-backend/services"
	"garagepro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetUsers lists all users (admin only).
func GetUsers(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := services.RequireAdmin(actor); err != nil {
		respondServiceError(c, err)
		return
	}

	var users []models.User
	if err := config.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser returns a single user (admin only).
func GetUser(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := services.RequireAdmin(actor); err != nil {
		respondServiceError(c, err)
		return
	}

	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
