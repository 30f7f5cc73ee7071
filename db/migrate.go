package db

import (
	"fmt"
	"log"

	"github.com/meditrack/clinic-server/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.DoctorProfile{},
		&models.PatientProfile{},
		&models.StaffProfile{},
		&models.Appointment{},
		&models.Prescription{},
		&models.Feedback{},
		&models.SpamFeedback{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
