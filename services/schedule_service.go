// services/schedule_service.go
package services

import (
	"log"
	"time"

	"garagepro-backend/models"
	"garagepro-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ScheduleService logs the garage's work list for the day: bookings
// scheduled for today that are still waiting to be started or finished.
type ScheduleService struct {
	db *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

func (s *ScheduleService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.LogDailySchedule(time.Now())
	})

	c.Start()
	log.Println("Schedule digest started")
}

func (s *ScheduleService) LogDailySchedule(now time.Time) {
	dayStart := utils.BeginningOfDay(now)
	dayEnd := dayStart.Add(24 * time.Hour)

	var bookings []models.Booking
	err := s.db.
		Preload("Customer.User").Preload("Vehicle").Preload("Service").
		Where("scheduled_date >= ? AND scheduled_date < ?", dayStart, dayEnd).
		Where("status IN ?", []string{models.StatusApproved, models.StatusInProgress}).
		Order("scheduled_date").
		Find(&bookings).Error
	if err != nil {
		log.Printf("Failed to fetch today's bookings: %v", err)
		return
	}

	log.Printf("Schedule for %s: %d booking(s)", dayStart.Format("2006-01-02"), len(bookings))
	for _, b := range bookings {
		log.Printf("  [%s] %s - %s (%s) for %s %s",
			b.Status,
			b.Vehicle.VehicleNumber,
			b.Service.ServiceName,
			b.Vehicle.VehicleType,
			b.Customer.User.FirstName,
			b.Customer.User.LastName,
		)
	}
}
