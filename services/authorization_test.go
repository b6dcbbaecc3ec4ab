package services

import (
	"testing"

	"garagepro-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(Actor{Role: models.RoleAdmin}))

	err := RequireAdmin(Actor{Role: models.RoleCustomer})
	require.Error(t, err)
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	assert.NoError(t, RequireOwnerOrAdmin(Actor{Role: models.RoleAdmin}, owner))
	assert.NoError(t, RequireOwnerOrAdmin(Actor{Role: models.RoleCustomer, CustomerID: &owner}, owner))

	err := RequireOwnerOrAdmin(Actor{Role: models.RoleCustomer, CustomerID: &other}, owner)
	require.Error(t, err)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	// No profile, no ownership.
	err = RequireOwnerOrAdmin(Actor{Role: models.RoleCustomer}, owner)
	require.Error(t, err)
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestOwnerResolution(t *testing.T) {
	customerID := uuid.New()

	vehicle := models.Vehicle{CustomerID: customerID}
	assert.Equal(t, customerID, OwnerOfVehicle(vehicle))

	booking := models.Booking{CustomerID: customerID}
	assert.Equal(t, customerID, OwnerOfBooking(booking))

	// Invoices are owned through their booking.
	invoice := models.Invoice{Booking: booking}
	assert.Equal(t, customerID, OwnerOfInvoice(invoice))

	customer := models.Customer{ID: customerID}
	assert.Equal(t, customerID, OwnerOfCustomer(customer))
}

func TestScopeToOwner(t *testing.T) {
	db := setupTestDB(t)
	_, customerA := seedCustomer(t, db)
	_, customerB := seedCustomer(t, db)
	seedVehicle(t, db, customerA.ID)
	seedVehicle(t, db, customerA.ID)
	seedVehicle(t, db, customerB.ID)

	var vehicles []models.Vehicle
	admin := Actor{Role: models.RoleAdmin}
	require.NoError(t, ScopeToOwner(db, admin, "customer_id").Find(&vehicles).Error)
	assert.Len(t, vehicles, 3)

	actorA := Actor{Role: models.RoleCustomer, CustomerID: &customerA.ID}
	require.NoError(t, ScopeToOwner(db, actorA, "customer_id").Find(&vehicles).Error)
	assert.Len(t, vehicles, 2)

	noProfile := Actor{Role: models.RoleCustomer}
	require.NoError(t, ScopeToOwner(db, noProfile, "customer_id").Find(&vehicles).Error)
	assert.Empty(t, vehicles)
}
