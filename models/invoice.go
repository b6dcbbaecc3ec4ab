package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
	PaymentFailed  = "FAILED"
)

// Invoice is 1:1 with a completed booking. The unique index on
// booking_id backs the one-invoice-per-booking invariant under
// concurrent creates.
type Invoice struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`
	Booking   Booking   `gorm:"foreignKey:BookingID" json:"booking,omitempty"`

	// TotalAmount is always recomputed as service price + additional
	// charges, never set directly.
	TotalAmount                  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	AdditionalCharges            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"additional_charges"`
	AdditionalChargesDescription string          `json:"additional_charges_description"`

	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'PENDING'" json:"payment_status"`
	InvoiceDate   time.Time `gorm:"not null" json:"invoice_date"` // set at creation, immutable

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
