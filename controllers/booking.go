// controllers/booking.go
package controllers

import (
	"net/http"
	"time"

	"garagepro-backend/config"
	"garagepro-backend/services"
	"garagepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateBookingInput defines the expected JSON structure for creating a booking
type CreateBookingInput struct {
	VehicleID     uuid.UUID  `json:"vehicle_id" binding:"required"`
	ServiceID     uuid.UUID  `json:"service_id" binding:"required"`
	PreferredDate *time.Time `json:"preferred_date"`
	CustomerID    *uuid.UUID `json:"customer_id"` // admin booking on behalf of a customer
}

// ApproveBookingInput carries the admin-chosen service date.
type ApproveBookingInput struct {
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
}

// CreateBooking opens a new booking in PENDING.
func CreateBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := services.NewBookingService(config.DB).CreateBooking(actor, services.CreateBookingInput{
		VehicleID:     input.VehicleID,
		ServiceID:     input.ServiceID,
		PreferredDate: input.PreferredDate,
		CustomerID:    input.CustomerID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBookings lists bookings, role-scoped.
func GetBookings(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	bookings, err := services.NewBookingService(config.DB).ListBookings(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking retrieves a specific booking (owner or admin).
func GetBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := services.NewBookingService(config.DB).GetBooking(actor, bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ApproveBooking moves a booking to APPROVED with a scheduled date.
func ApproveBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input ApproveBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := services.NewBookingService(config.DB).ApproveBooking(actor, bookingID, input.ScheduledDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// RejectBooking moves a booking to REJECTED.
func RejectBooking(c *gin.Context) {
	transitionHandler(c, func(actor services.Actor, id uuid.UUID) (interface{}, error) {
		return services.NewBookingService(config.DB).RejectBooking(actor, id)
	})
}

// StartBooking moves a booking to IN_PROGRESS.
func StartBooking(c *gin.Context) {
	transitionHandler(c, func(actor services.Actor, id uuid.UUID) (interface{}, error) {
		return services.NewBookingService(config.DB).StartBooking(actor, id)
	})
}

// CompleteBooking moves a booking to COMPLETED.
func CompleteBooking(c *gin.Context) {
	transitionHandler(c, func(actor services.Actor, id uuid.UUID) (interface{}, error) {
		return services.NewBookingService(config.DB).CompleteBooking(actor, id)
	})
}

// CancelBooking moves a booking to CANCELLED.
func CancelBooking(c *gin.Context) {
	transitionHandler(c, func(actor services.Actor, id uuid.UUID) (interface{}, error) {
		return services.NewBookingService(config.DB).CancelBooking(actor, id)
	})
}

func transitionHandler(c *gin.Context, apply func(services.Actor, uuid.UUID) (interface{}, error)) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := apply(actor, bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}
