package db

import (
	"fmt"
	"log"

	"github.com/clinicore/clinic-backend/models"
)

// Partial unique index: at most one non-cancelled regular appointment per
// (doctor, timestamp). Emergency rows are excluded so a forced emergency
// walk-in can share an occupied slot; unforced emergencies are still
// rejected by the in-transaction conflict probe.
const bookingSlotIndexSQL = `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_doctor_slot
	ON appointments (doctor_id, schedule_time)
	WHERE status <> 'Cancelled' AND deleted_at IS NULL AND is_emergency = false
`

func Migrate() {
	// Initialize DB connection
	Init()

	err := DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Branch{},
		&models.Specialty{},
		&models.Patient{},
		&models.Treatment{},
		&models.AvailabilityRule{},
		&models.Appointment{},
		&models.ConsultationRecord{},
		&models.TreatmentLineItem{},
		&models.Invoice{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// Database-level guarantee behind claim/reschedule; the handlers'
	// check-then-write runs inside a transaction on top of it.
	err = DB.Exec(bookingSlotIndexSQL).Error
	if err != nil {
		log.Fatal("Failed to create booking index: ", err)
	}

	ensureRoles()

	fmt.Println("✅ Migrations applied successfully!")
}

func ensureRoles() {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Administrator with full access"},
		{Name: models.RoleDoctor, Description: "Doctor who manages availability and consultations"},
		{Name: models.RoleReceptionist, Description: "Front desk staff who books appointments and handles billing"},
		{Name: models.RolePatient, Description: "Patient who books appointments"},
	}

	for _, role := range roles {
		var existing models.Role
		if DB.Where("name = ?", role.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&role)
		}
	}
}
