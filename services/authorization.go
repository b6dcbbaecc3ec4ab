// services/authorization.go
package services

import (
	"garagepro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor is the authenticated principal behind every core operation.
// CustomerID is nil for admins and for users without a customer profile.
type Actor struct {
	UserID     uuid.UUID
	CustomerID *uuid.UUID
	Role       string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// OwnerOfVehicle, OwnerOfBooking and OwnerOfInvoice resolve the owning
// customer of a record. Invoices are owned through their booking.
func OwnerOfVehicle(v models.Vehicle) uuid.UUID   { return v.CustomerID }
func OwnerOfBooking(b models.Booking) uuid.UUID   { return b.CustomerID }
func OwnerOfInvoice(i models.Invoice) uuid.UUID   { return i.Booking.CustomerID }
func OwnerOfCustomer(c models.Customer) uuid.UUID { return c.ID }

// RequireAdmin gates admin-only operations: service catalog writes,
// user listing, booking workflow transitions, invoice management.
func RequireAdmin(actor Actor) error {
	if !actor.IsAdmin() {
		return unauthorizedErr("admin role required")
	}
	return nil
}

// RequireOwnerOrAdmin allows admins to act on any record and customers
// only on records owned by their own profile.
func RequireOwnerOrAdmin(actor Actor, owner uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.CustomerID != nil && *actor.CustomerID == owner {
		return nil
	}
	return unauthorizedErr("you do not own this record")
}

// ScopeToOwner narrows a query to the actor's own records. Admins see
// everything; customers only rows matching their profile on the given
// column. Applying the scope before loading keeps non-owned records
// out of candidate sets entirely.
func ScopeToOwner(db *gorm.DB, actor Actor, column string) *gorm.DB {
	if actor.IsAdmin() {
		return db
	}
	if actor.CustomerID == nil {
		// no profile, no owned records
		return db.Where("1 = 0")
	}
	return db.Where(column+" = ?", *actor.CustomerID)
}
