package services

import (
	"testing"
	"time"

	"garagepro-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateBooking(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	actor, customer := seedCustomer(t, db)
	vehicle := seedVehicle(t, db, customer.ID)
	service := seedService(t, db, "500.00")

	t.Run("customer books own vehicle", func(t *testing.T) {
		preferred := tomorrow()
		booking, err := svc.CreateBooking(actor, CreateBookingInput{
			VehicleID:     vehicle.ID,
			ServiceID:     service.ID,
			PreferredDate: &preferred,
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, booking.Status)
		assert.Equal(t, customer.ID, booking.CustomerID)
		assert.False(t, booking.BookingDate.IsZero())
		assert.Nil(t, booking.ScheduledDate)
	})

	t.Run("preferred date in the past", func(t *testing.T) {
		preferred := yesterday()
		_, err := svc.CreateBooking(actor, CreateBookingInput{
			VehicleID:     vehicle.ID,
			ServiceID:     service.ID,
			PreferredDate: &preferred,
		})
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("vehicle owned by another customer", func(t *testing.T) {
		otherActor, _ := seedCustomer(t, db)
		_, err := svc.CreateBooking(otherActor, CreateBookingInput{
			VehicleID: vehicle.ID,
			ServiceID: service.ID,
		})
		require.Error(t, err)
		assert.Equal(t, KindUnauthorized, KindOf(err))
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := svc.CreateBooking(actor, CreateBookingInput{
			VehicleID: vehicle.ID,
			ServiceID: uuid.New(),
		})
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("admin must name the customer", func(t *testing.T) {
		admin := seedAdmin(t, db)
		_, err := svc.CreateBooking(admin, CreateBookingInput{
			VehicleID: vehicle.ID,
			ServiceID: service.ID,
		})
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))

		booking, err := svc.CreateBooking(admin, CreateBookingInput{
			VehicleID:  vehicle.ID,
			ServiceID:  service.ID,
			CustomerID: &customer.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, customer.ID, booking.CustomerID)
	})
}

func TestBookingWorkflowHappyPath(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	admin := seedAdmin(t, db)
	actor, customer := seedCustomer(t, db)
	vehicle := seedVehicle(t, db, customer.ID)
	service := seedService(t, db, "500.00")

	preferred := tomorrow()
	booking, err := svc.CreateBooking(actor, CreateBookingInput{
		VehicleID:     vehicle.ID,
		ServiceID:     service.ID,
		PreferredDate: &preferred,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, booking.Status)

	booking, err = svc.ApproveBooking(admin, booking.ID, preferred)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, booking.Status)
	require.NotNil(t, booking.ScheduledDate)

	booking, err = svc.StartBooking(admin, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, booking.Status)

	booking, err = svc.CompleteBooking(admin, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, booking.Status)
}

func TestApproveBookingGuards(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	admin := seedAdmin(t, db)
	actor, customer := seedCustomer(t, db)

	t.Run("customer may not approve their own booking", func(t *testing.T) {
		booking := seedBooking(t, db, customer, models.StatusPending)
		_, err := svc.ApproveBooking(actor, booking.ID, tomorrow())
		require.Error(t, err)
		assert.Equal(t, KindUnauthorized, KindOf(err))
	})

	t.Run("scheduled date in the past", func(t *testing.T) {
		booking := seedBooking(t, db, customer, models.StatusPending)
		_, err := svc.ApproveBooking(admin, booking.ID, yesterday())
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
		assertBookingUnchanged(t, db, booking)
	})

	t.Run("scheduled date before preferred date", func(t *testing.T) {
		booking := seedBooking(t, db, customer, models.StatusPending)
		preferred := time.Now().AddDate(0, 0, 5)
		require.NoError(t, db.Model(&booking).Update("preferred_date", preferred).Error)

		_, err := svc.ApproveBooking(admin, booking.ID, tomorrow())
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))

		var after models.Booking
		require.NoError(t, db.First(&after, "id = ?", booking.ID).Error)
		assert.Equal(t, models.StatusPending, after.Status)
		assert.Nil(t, after.ScheduledDate)
	})

	t.Run("scheduled date on the preferred day at an earlier hour", func(t *testing.T) {
		booking := seedBooking(t, db, customer, models.StatusPending)
		preferred := time.Date(2099, 6, 10, 15, 0, 0, 0, time.UTC)
		require.NoError(t, db.Model(&booking).Update("preferred_date", preferred).Error)

		scheduled := time.Date(2099, 6, 10, 9, 0, 0, 0, time.UTC)
		approved, err := svc.ApproveBooking(admin, booking.ID, scheduled)
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, approved.Status)
		require.NotNil(t, approved.ScheduledDate)
		assert.True(t, approved.ScheduledDate.Equal(scheduled))
	})

	t.Run("approve from APPROVED is an invalid transition", func(t *testing.T) {
		booking := seedBooking(t, db, customer, models.StatusApproved)
		_, err := svc.ApproveBooking(admin, booking.ID, tomorrow())
		require.Error(t, err)
		assert.Equal(t, KindInvalidTransition, KindOf(err))
		assertBookingUnchanged(t, db, booking)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := svc.ApproveBooking(admin, uuid.New(), tomorrow())
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestTransitionGraphEnforced(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	admin := seedAdmin(t, db)
	_, customer := seedCustomer(t, db)

	cases := []struct {
		name string
		from string
		call func(uuid.UUID) error
	}{
		{"reject from APPROVED", models.StatusApproved, func(id uuid.UUID) error {
			_, err := svc.RejectBooking(admin, id)
			return err
		}},
		{"start from PENDING", models.StatusPending, func(id uuid.UUID) error {
			_, err := svc.StartBooking(admin, id)
			return err
		}},
		{"start from COMPLETED", models.StatusCompleted, func(id uuid.UUID) error {
			_, err := svc.StartBooking(admin, id)
			return err
		}},
		{"complete from PENDING", models.StatusPending, func(id uuid.UUID) error {
			_, err := svc.CompleteBooking(admin, id)
			return err
		}},
		{"complete from REJECTED", models.StatusRejected, func(id uuid.UUID) error {
			_, err := svc.CompleteBooking(admin, id)
			return err
		}},
		{"approve from CANCELLED", models.StatusCancelled, func(id uuid.UUID) error {
			_, err := svc.ApproveBooking(admin, id, tomorrow())
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			booking := seedBooking(t, db, customer, tc.from)
			err := tc.call(booking.ID)
			require.Error(t, err)
			assert.Equal(t, KindInvalidTransition, KindOf(err))
			assertBookingUnchanged(t, db, booking)
		})
	}
}

func TestCancelBooking(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	admin := seedAdmin(t, db)
	actor, customer := seedCustomer(t, db)

	t.Run("customer cancels own pending booking", func(t *testing.T) {
		booking := seedBooking(t, db, customer, models.StatusPending)
		cancelled, err := svc.CancelBooking(actor, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, cancelled.Status)
	})

	t.Run("admin cancels approved booking", func(t *testing.T) {
		booking := seedBooking(t, db, customer, models.StatusApproved)
		cancelled, err := svc.CancelBooking(admin, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, cancelled.Status)
	})

	t.Run("cancel from IN_PROGRESS is an invalid transition", func(t *testing.T) {
		booking := seedBooking(t, db, customer, models.StatusInProgress)
		_, err := svc.CancelBooking(admin, booking.ID)
		require.Error(t, err)
		assert.Equal(t, KindInvalidTransition, KindOf(err))
		assertBookingUnchanged(t, db, booking)
	})

	t.Run("other customers may not cancel", func(t *testing.T) {
		otherActor, _ := seedCustomer(t, db)
		booking := seedBooking(t, db, customer, models.StatusPending)
		_, err := svc.CancelBooking(otherActor, booking.ID)
		require.Error(t, err)
		assert.Equal(t, KindUnauthorized, KindOf(err))
		assertBookingUnchanged(t, db, booking)
	})
}

func TestListBookingsScoped(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	admin := seedAdmin(t, db)
	actorA, customerA := seedCustomer(t, db)
	actorB, customerB := seedCustomer(t, db)

	seedBooking(t, db, customerA, models.StatusPending)
	seedBooking(t, db, customerA, models.StatusApproved)
	seedBooking(t, db, customerB, models.StatusPending)

	all, err := svc.ListBookings(admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	own, err := svc.ListBookings(actorA)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	own, err = svc.ListBookings(actorB)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	// Non-owned bookings are absent, not merely forbidden.
	foreign := all[0]
	for _, b := range all {
		if b.CustomerID == customerB.ID {
			foreign = b
		}
	}
	_, err = svc.GetBooking(actorA, foreign.ID)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

// assertBookingUnchanged verifies a failed transition mutated nothing.
func assertBookingUnchanged(t *testing.T, db *gorm.DB, booking models.Booking) {
	t.Helper()

	var after models.Booking
	require.NoError(t, db.First(&after, "id = ?", booking.ID).Error)
	assert.Equal(t, booking.Status, after.Status)
	if booking.ScheduledDate == nil {
		assert.Nil(t, after.ScheduledDate)
	}
}
