// services/booking_service.go
package services

import (
	"errors"
	"time"

	"garagepro-backend/models"
	"garagepro-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

type CreateBookingInput struct {
	VehicleID     uuid.UUID
	ServiceID     uuid.UUID
	PreferredDate *time.Time
	// CustomerID is required when an admin books on behalf of a
	// customer; ignored for customer actors, who always book for
	// themselves.
	CustomerID *uuid.UUID
}

// CreateBooking opens a new PENDING booking. The vehicle must belong to
// the booking customer and the preferred date must not be in the past.
func (s *BookingService) CreateBooking(actor Actor, in CreateBookingInput) (*models.Booking, error) {
	var customerID uuid.UUID
	switch {
	case actor.IsAdmin():
		if in.CustomerID == nil {
			return nil, validationErr("customer_id", "required when booking on behalf of a customer")
		}
		customerID = *in.CustomerID
	case actor.CustomerID != nil:
		customerID = *actor.CustomerID
	default:
		return nil, unauthorizedErr("no customer profile")
	}

	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("customer")
		}
		return nil, internalErr(err)
	}

	var vehicle models.Vehicle
	if err := s.db.First(&vehicle, "id = ?", in.VehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("vehicle")
		}
		return nil, internalErr(err)
	}
	if OwnerOfVehicle(vehicle) != customerID {
		return nil, unauthorizedErr("vehicle does not belong to this customer")
	}

	var service models.Service
	if err := s.db.First(&service, "id = ?", in.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("service")
		}
		return nil, internalErr(err)
	}

	now := time.Now()
	if in.PreferredDate != nil && in.PreferredDate.Before(utils.BeginningOfDay(now)) {
		return nil, validationErr("preferred_date", "must not be in the past")
	}

	booking := models.Booking{
		CustomerID:    customerID,
		VehicleID:     vehicle.ID,
		ServiceID:     service.ID,
		BookingDate:   now,
		PreferredDate: in.PreferredDate,
		Status:        models.StatusPending,
	}
	if err := s.db.Create(&booking).Error; err != nil {
		return nil, internalErr(err)
	}

	return s.load(booking.ID)
}

// ApproveBooking moves PENDING -> APPROVED and records the scheduled
// date. The date must not be in the past nor precede the customer's
// preferred date.
func (s *BookingService) ApproveBooking(actor Actor, bookingID uuid.UUID, scheduledDate time.Time) (*models.Booking, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.transition(bookingID, models.StatusPending, models.StatusApproved, func(b *models.Booking) (map[string]interface{}, error) {
		if scheduledDate.Before(utils.BeginningOfDay(time.Now())) {
			return nil, validationErr("scheduled_date", "must not be in the past")
		}
		// Dates are compared at day granularity, same as every other
		// date guard.
		if b.PreferredDate != nil && scheduledDate.Before(utils.BeginningOfDay(*b.PreferredDate)) {
			return nil, validationErr("scheduled_date", "must not precede the preferred date")
		}
		return map[string]interface{}{"scheduled_date": scheduledDate}, nil
	})
}

// RejectBooking moves PENDING -> REJECTED.
func (s *BookingService) RejectBooking(actor Actor, bookingID uuid.UUID) (*models.Booking, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.transition(bookingID, models.StatusPending, models.StatusRejected, nil)
}

// StartBooking moves APPROVED -> IN_PROGRESS.
func (s *BookingService) StartBooking(actor Actor, bookingID uuid.UUID) (*models.Booking, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.transition(bookingID, models.StatusApproved, models.StatusInProgress, nil)
}

// CompleteBooking moves IN_PROGRESS -> COMPLETED.
func (s *BookingService) CompleteBooking(actor Actor, bookingID uuid.UUID) (*models.Booking, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.transition(bookingID, models.StatusInProgress, models.StatusCompleted, nil)
}

// CancelBooking moves a PENDING or APPROVED booking to CANCELLED. The
// owning customer may cancel their own booking; admins may cancel any.
func (s *BookingService) CancelBooking(actor Actor, bookingID uuid.UUID) (*models.Booking, error) {
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("booking")
			}
			return internalErr(err)
		}
		if err := RequireOwnerOrAdmin(actor, OwnerOfBooking(booking)); err != nil {
			return err
		}
		if !models.CanTransition(booking.Status, models.StatusCancelled) {
			return invalidTransitionErr(models.StatusPending+" or "+models.StatusApproved, booking.Status)
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, booking.Status).
			Update("status", models.StatusCancelled)
		if res.Error != nil {
			return internalErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return conflictErr("booking was modified concurrently")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.load(bookingID)
}

// GetBooking returns a single booking, owner-or-admin gated.
func (s *BookingService) GetBooking(actor Actor, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := ScopeToOwner(s.db, actor, "customer_id").
		Preload("Customer.User").Preload("Vehicle").Preload("Service").
		First(&booking, "id = ?", bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("booking")
		}
		return nil, internalErr(err)
	}
	return &booking, nil
}

// ListBookings returns the actor's bookings; admins see all of them.
func (s *BookingService) ListBookings(actor Actor) ([]models.Booking, error) {
	var bookings []models.Booking
	err := ScopeToOwner(s.db, actor, "customer_id").
		Preload("Customer.User").Preload("Vehicle").Preload("Service").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, internalErr(err)
	}
	return bookings, nil
}

// transition applies from -> to as a read-validate-conditional-write
// inside one transaction. extra may validate and contribute additional
// column updates. A guard that no longer holds at write time surfaces
// as Conflict; a failed guard mutates nothing.
func (s *BookingService) transition(bookingID uuid.UUID, from, to string, extra func(*models.Booking) (map[string]interface{}, error)) (*models.Booking, error) {
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("booking")
			}
			return internalErr(err)
		}
		if booking.Status != from {
			return invalidTransitionErr(from, booking.Status)
		}

		updates := map[string]interface{}{"status": to}
		if extra != nil {
			more, err := extra(&booking)
			if err != nil {
				return err
			}
			for k, v := range more {
				updates[k] = v
			}
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", bookingID, from).
			Updates(updates)
		if res.Error != nil {
			return internalErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return conflictErr("booking was modified concurrently")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.load(bookingID)
}

func (s *BookingService) load(bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.
		Preload("Customer.User").Preload("Vehicle").Preload("Service").
		First(&booking, "id = ?", bookingID).Error
	if err != nil {
		return nil, internalErr(err)
	}
	return &booking, nil
}
