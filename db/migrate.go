package db

import (
	"fmt"
	"log"

	"github.com/sahtee/clinic-booking/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Child{},
		&models.ProviderProfile{},
		&models.ProviderSchedule{},
		&models.ProviderAvailability{},
		&models.Appointment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// The availability check in the booking handler is advisory only;
	// this partial unique index is what actually prevents two
	// non-cancelled appointments from holding the same slot.
	err = DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_provider_slot
		ON appointments (provider_profile_id, appointment_date, start_time)
		WHERE status IN ('pending', 'confirmed') AND deleted_at IS NULL
	`).Error
	if err != nil {
		log.Fatal("Failed to create booking uniqueness index: ", err)
	}

	// One override row per provider, date, window and direction, so a
	// duplicate added window is rejected by storage as well.
	err = DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_availability_provider_window
		ON provider_availabilities (provider_profile_id, date, start_time, end_time, is_available)
		WHERE deleted_at IS NULL
	`).Error
	if err != nil {
		log.Fatal("Failed to create availability uniqueness index: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
