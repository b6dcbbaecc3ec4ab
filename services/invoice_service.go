// services/invoice_service.go
package services

import (
	"errors"
	"time"

	"garagepro-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// GenerateInvoice creates the invoice for a COMPLETED booking. The
// total is service price + additional charge, computed in exact
// decimals. At most one invoice ever exists per booking; the unique
// index on booking_id catches races the pre-check misses.
func (s *InvoiceService) GenerateInvoice(actor Actor, bookingID uuid.UUID, additionalCharge decimal.Decimal, description string) (*models.Invoice, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	if additionalCharge.IsNegative() {
		return nil, validationErr("additional_charge", "must not be negative")
	}

	var invoice models.Invoice
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Preload("Service").First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("booking")
			}
			return internalErr(err)
		}
		if booking.Status != models.StatusCompleted {
			return invalidStateErr(models.StatusCompleted, booking.Status)
		}

		var existing models.Invoice
		err := tx.First(&existing, "booking_id = ?", bookingID).Error
		if err == nil {
			return alreadyExistsErr("invoice already exists for this booking")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return internalErr(err)
		}

		invoice = models.Invoice{
			BookingID:                    booking.ID,
			TotalAmount:                  booking.Service.Price.Add(additionalCharge),
			AdditionalCharges:            additionalCharge,
			AdditionalChargesDescription: description,
			PaymentStatus:                models.PaymentPending,
			InvoiceDate:                  time.Now(),
		}
		if err := tx.Create(&invoice).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return alreadyExistsErr("invoice already exists for this booking")
			}
			return internalErr(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.load(invoice.ID)
}

// MarkPaid flips the payment status to PAID exactly once.
func (s *InvoiceService) MarkPaid(actor Actor, invoiceID uuid.UUID) (*models.Invoice, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, "id = ?", invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("invoice")
			}
			return internalErr(err)
		}
		if invoice.PaymentStatus == models.PaymentPaid {
			return &Error{Kind: KindAlreadyPaid, Field: "payment_status", Message: "invoice is already paid"}
		}

		res := tx.Model(&models.Invoice{}).
			Where("id = ? AND payment_status <> ?", invoiceID, models.PaymentPaid).
			Update("payment_status", models.PaymentPaid)
		if res.Error != nil {
			return internalErr(res.Error)
		}
		// A concurrent writer that slips in between the read and the
		// guarded update can only have marked the invoice paid, so the
		// raced caller gets the same answer as a sequential retry.
		if res.RowsAffected == 0 {
			return &Error{Kind: KindAlreadyPaid, Field: "payment_status", Message: "invoice is already paid"}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.load(invoiceID)
}

type UpdateChargesInput struct {
	AdditionalCharge *decimal.Decimal
	Description      *string
}

// UpdateCharges replaces the additional charge and recomputes the total
// from the booking's service price. Recomputing from scratch keeps
// repeated updates from drifting.
func (s *InvoiceService) UpdateCharges(actor Actor, invoiceID uuid.UUID, in UpdateChargesInput) (*models.Invoice, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	if in.AdditionalCharge != nil && in.AdditionalCharge.IsNegative() {
		return nil, validationErr("additional_charge", "must not be negative")
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.Preload("Booking.Service").First(&invoice, "id = ?", invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("invoice")
			}
			return internalErr(err)
		}

		updates := map[string]interface{}{}
		if in.AdditionalCharge != nil {
			updates["additional_charges"] = *in.AdditionalCharge
			updates["total_amount"] = invoice.Booking.Service.Price.Add(*in.AdditionalCharge)
		}
		if in.Description != nil {
			updates["additional_charges_description"] = *in.Description
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&models.Invoice{}).Where("id = ?", invoiceID).Updates(updates).Error; err != nil {
			return internalErr(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.load(invoiceID)
}

// GetInvoice returns one invoice; customers only reach invoices of
// their own bookings.
func (s *InvoiceService) GetInvoice(actor Actor, invoiceID uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.scoped(actor).First(&invoice, "invoices.id = ?", invoiceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("invoice")
		}
		return nil, internalErr(err)
	}
	return &invoice, nil
}

// ListInvoices returns the actor's invoices; admins see all of them.
func (s *InvoiceService) ListInvoices(actor Actor) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.scoped(actor).Order("invoices.created_at DESC").Find(&invoices).Error; err != nil {
		return nil, internalErr(err)
	}
	return invoices, nil
}

func (s *InvoiceService) scoped(actor Actor) *gorm.DB {
	q := s.db.Model(&models.Invoice{}).
		Preload("Booking.Customer.User").Preload("Booking.Vehicle").Preload("Booking.Service")
	if actor.IsAdmin() {
		return q
	}
	if actor.CustomerID == nil {
		return q.Where("1 = 0")
	}
	return q.Joins("JOIN bookings ON bookings.id = invoices.booking_id").
		Where("bookings.customer_id = ?", *actor.CustomerID)
}

func (s *InvoiceService) load(invoiceID uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.
		Preload("Booking.Customer.User").Preload("Booking.Vehicle").Preload("Booking.Service").
		First(&invoice, "id = ?", invoiceID).Error
	if err != nil {
		return nil, internalErr(err)
	}
	return &invoice, nil
}
