// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"garagepro-backend/config"
	"garagepro-backend/models"
	"garagepro-backend/services"
	"garagepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	ServiceName string          `json:"service_name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	ServiceName *string          `json:"service_name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// CreateService adds a catalog entry (admin only).
func CreateService(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := services.RequireAdmin(actor); err != nil {
		respondServiceError(c, err)
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !input.Price.IsPositive() {
		utils.RespondWithError(c, http.StatusBadRequest, "Price must be greater than zero")
		return
	}

	service := models.Service{
		ServiceName: input.ServiceName,
		Description: input.Description,
		Price:       input.Price,
	}
	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices lists the catalog (any authenticated user).
func GetServices(c *gin.Context) {
	var catalog []models.Service
	if err := config.DB.Order("service_name").Find(&catalog).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, catalog)
}

// GetService retrieves a catalog entry (any authenticated user).
func GetService(c *gin.Context) {
	serviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService edits a catalog entry (admin only).
func UpdateService(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := services.RequireAdmin(actor); err != nil {
		respondServiceError(c, err)
		return
	}
	serviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ServiceName != nil {
		service.ServiceName = *input.ServiceName
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		if !input.Price.IsPositive() {
			utils.RespondWithError(c, http.StatusBadRequest, "Price must be greater than zero")
			return
		}
		service.Price = *input.Price
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService removes a catalog entry (admin only).
func DeleteService(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := services.RequireAdmin(actor); err != nil {
		respondServiceError(c, err)
		return
	}
	serviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
