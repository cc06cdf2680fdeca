package db

import (
	"log"

	"github.com/bookwell/bookwell-api/models"
)

// Migrate runs AutoMigrate plus the raw indexes GORM tags cannot
// express. Called explicitly, never as part of Init.
func Migrate() {
	Init()

	err := DB.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Availability{},
		&models.Appointment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// Covering indexes for the two hot lookups: a provider's day
	// (slot generation, conflict checks) and a user's history.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_appointments_provider_date_start
			ON appointments (provider_id, date, start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_user_date
			ON appointments (user_id, date)`,
		// Storage-level guard against double booking: at most one
		// booked appointment per provider, date and start time. A
		// concurrent insert losing the race gets a unique violation.
		`CREATE UNIQUE INDEX IF NOT EXISTS uix_appointments_provider_slot
			ON appointments (provider_id, date, start_time)
			WHERE status = 'booked'`,
	}
	for _, stmt := range indexes {
		if err := DB.Exec(stmt).Error; err != nil {
			log.Fatal("Failed to create index: ", err)
		}
	}

	log.Println("Migrations applied")
}
