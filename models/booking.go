package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending    = "PENDING"
	StatusApproved   = "APPROVED"
	StatusRejected   = "REJECTED"
	StatusCancelled  = "CANCELLED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// AllowedTransitions is the booking workflow graph. REJECTED, CANCELLED
// and COMPLETED are terminal.
var AllowedTransitions = map[string][]string{
	StatusPending:    {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusRejected:   {},
	StatusCancelled:  {},
	StatusCompleted:  {},
}

// CanTransition reports whether from -> to is an edge of the workflow graph.
func CanTransition(from, to string) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Booking tracks a service request on a vehicle through its workflow.
type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer   Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	VehicleID  uuid.UUID `gorm:"type:uuid;index;not null" json:"vehicle_id"`
	Vehicle    Vehicle   `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	ServiceID  uuid.UUID `gorm:"type:uuid;index;not null" json:"service_id"`
	Service    Service   `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	BookingDate   time.Time  `gorm:"not null" json:"booking_date"` // set at creation, immutable
	PreferredDate *time.Time `json:"preferred_date"`
	ScheduledDate *time.Time `json:"scheduled_date"` // set on approval
	Status        string     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
