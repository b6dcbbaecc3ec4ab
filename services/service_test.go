package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"garagepro-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var userSeq atomic.Int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory
	// database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Vehicle{},
		&models.Service{},
		&models.Booking{},
		&models.Invoice{},
	))
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB) Actor {
	t.Helper()

	n := userSeq.Add(1)
	user := models.User{
		Username: fmt.Sprintf("admin%d", n),
		Email:    fmt.Sprintf("admin%d@garage.test", n),
		Password: "admin-password",
		Role:     models.RoleAdmin,
	}
	require.NoError(t, db.Create(&user).Error)
	return Actor{UserID: user.ID, Role: models.RoleAdmin}
}

func seedCustomer(t *testing.T, db *gorm.DB) (Actor, models.Customer) {
	t.Helper()

	n := userSeq.Add(1)
	user := models.User{
		Username:  fmt.Sprintf("customer%d", n),
		FirstName: "Test",
		LastName:  "Customer",
		Email:     fmt.Sprintf("customer%d@garage.test", n),
		Password:  "customer-password",
		Role:      models.RoleCustomer,
	}
	require.NoError(t, db.Create(&user).Error)

	customer := models.Customer{UserID: user.ID, Phone: "9876543210"}
	require.NoError(t, db.Create(&customer).Error)

	actor := Actor{UserID: user.ID, CustomerID: &customer.ID, Role: models.RoleCustomer}
	return actor, customer
}

func seedVehicle(t *testing.T, db *gorm.DB, customerID uuid.UUID) models.Vehicle {
	t.Helper()

	vehicle := models.Vehicle{
		CustomerID:    customerID,
		VehicleNumber: "KA01AB1234",
		VehicleType:   "Sedan",
	}
	require.NoError(t, db.Create(&vehicle).Error)
	return vehicle
}

func seedService(t *testing.T, db *gorm.DB, price string) models.Service {
	t.Helper()

	service := models.Service{
		ServiceName: "Full Service",
		Description: "Oil change, filters, inspection",
		Price:       decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(&service).Error)
	return service
}

func tomorrow() time.Time {
	return time.Now().AddDate(0, 0, 1)
}

func yesterday() time.Time {
	return time.Now().AddDate(0, 0, -1)
}

// seedBooking creates a booking directly in the given status, bypassing
// the workflow, for transition tests.
func seedBooking(t *testing.T, db *gorm.DB, customer models.Customer, status string) models.Booking {
	t.Helper()

	vehicle := seedVehicle(t, db, customer.ID)
	service := seedService(t, db, "500.00")
	booking := models.Booking{
		CustomerID:  customer.ID,
		VehicleID:   vehicle.ID,
		ServiceID:   service.ID,
		BookingDate: time.Now(),
		Status:      status,
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}
