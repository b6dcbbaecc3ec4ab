// controllers/vehicle.go
package controllers

import (
	"errors"
	"net/http"

	"garagepro-backend/config"
	"garagepro-backend/models"
	"garagepro-backend/services"
	"garagepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateVehicleInput defines the expected JSON structure for creating a vehicle
type CreateVehicleInput struct {
	VehicleNumber string `json:"vehicle_number" binding:"required"`
	VehicleType   string `json:"vehicle_type" binding:"required"`
	// CustomerID is required when an admin adds a vehicle on behalf of
	// a customer.
	CustomerID *uuid.UUID `json:"customer_id"`
}

// UpdateVehicleInput defines the expected JSON structure for updating a vehicle.
// The owning customer is never reassigned.
type UpdateVehicleInput struct {
	VehicleNumber *string `json:"vehicle_number"`
	VehicleType   *string `json:"vehicle_type"`
}

// CreateVehicle registers a vehicle for the acting customer, or for an
// explicitly named customer when the actor is an admin.
func CreateVehicle(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input CreateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customerID uuid.UUID
	switch {
	case actor.IsAdmin():
		if input.CustomerID == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "customer_id is required")
			return
		}
		customerID = *input.CustomerID
	case actor.CustomerID != nil:
		customerID = *actor.CustomerID
	default:
		utils.RespondWithError(c, http.StatusForbidden, "No customer profile")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	vehicle := models.Vehicle{
		CustomerID:    customerID,
		VehicleNumber: input.VehicleNumber,
		VehicleType:   input.VehicleType,
	}
	if err := config.DB.Create(&vehicle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// GetVehicles lists vehicles, role-scoped.
func GetVehicles(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var vehicles []models.Vehicle
	if err := services.ScopeToOwner(config.DB, actor, "customer_id").
		Order("created_at DESC").Find(&vehicles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve vehicles")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetVehicle retrieves a specific vehicle (owner or admin).
func GetVehicle(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	vehicleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var vehicle models.Vehicle
	err := services.ScopeToOwner(config.DB, actor, "customer_id").
		First(&vehicle, "id = ?", vehicleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicle updates a vehicle's number or type (owner or admin).
func UpdateVehicle(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	vehicleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", vehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := services.RequireOwnerOrAdmin(actor, services.OwnerOfVehicle(vehicle)); err != nil {
		respondServiceError(c, err)
		return
	}

	if input.VehicleNumber != nil {
		vehicle.VehicleNumber = *input.VehicleNumber
	}
	if input.VehicleType != nil {
		vehicle.VehicleType = *input.VehicleType
	}

	if err := config.DB.Save(&vehicle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle removes a vehicle (owner or admin).
func DeleteVehicle(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	vehicleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", vehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := services.RequireOwnerOrAdmin(actor, services.OwnerOfVehicle(vehicle)); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := config.DB.Delete(&vehicle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}
