package db

import (
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/clinic-backend/models"
)

// Seed fills an empty database with demo branches, doctors, patients and a
// treatment catalogue. Run with `go run . seed`.
func Seed() {
	Migrate()

	gofakeit.Seed(time.Now().UnixNano())

	branches := seedBranches()
	specialties := seedSpecialties()
	seedTreatments()
	seedDoctors(branches, specialties, 8)
	seedPatients(40)

	fmt.Println("✅ Seed data created!")
}

func seedBranches() []models.Branch {
	branches := []models.Branch{
		{Name: "Downtown Clinic", Address: gofakeit.Street(), City: gofakeit.City(), PhoneNumber: gofakeit.Phone()},
		{Name: "Riverside Clinic", Address: gofakeit.Street(), City: gofakeit.City(), PhoneNumber: gofakeit.Phone()},
	}
	for i := range branches {
		if err := DB.Where("name = ?", branches[i].Name).FirstOrCreate(&branches[i]).Error; err != nil {
			log.Fatal("seed branches: ", err)
		}
	}
	return branches
}

func seedSpecialties() []models.Specialty {
	names := []string{"General Practice", "Dentistry", "Dermatology", "Cardiology", "Pediatrics"}
	specialties := make([]models.Specialty, 0, len(names))
	for _, name := range names {
		s := models.Specialty{Name: name, Description: gofakeit.Sentence(8)}
		if err := DB.Where("name = ?", name).FirstOrCreate(&s).Error; err != nil {
			log.Fatal("seed specialties: ", err)
		}
		specialties = append(specialties, s)
	}
	return specialties
}

func seedTreatments() {
	treatments := []models.Treatment{
		{ServiceCode: "CONS-GEN", Name: "General Consultation", Price: 500},
		{ServiceCode: "CONS-SPC", Name: "Specialist Consultation", Price: 900},
		{ServiceCode: "XRAY-CH", Name: "Chest X-Ray", Price: 1200},
		{ServiceCode: "LAB-CBC", Name: "Complete Blood Count", Price: 450},
		{ServiceCode: "DENT-CLN", Name: "Dental Cleaning", Price: 1500},
		{ServiceCode: "DENT-FIL", Name: "Dental Filling", Price: 800},
		{ServiceCode: "ECG-STD", Name: "Electrocardiogram", Price: 700},
	}
	for i := range treatments {
		if err := DB.Where("service_code = ?", treatments[i].ServiceCode).FirstOrCreate(&treatments[i]).Error; err != nil {
			log.Fatal("seed treatments: ", err)
		}
	}
}

func seedDoctors(branches []models.Branch, specialties []models.Specialty, count int) {
	var doctorRole models.Role
	if err := DB.Where("name = ?", models.RoleDoctor).First(&doctorRole).Error; err != nil {
		log.Fatal("doctor role missing, run migrations first: ", err)
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	for i := 0; i < count; i++ {
		branch := branches[gofakeit.Number(0, len(branches)-1)]
		specialty := specialties[gofakeit.Number(0, len(specialties)-1)]

		doctor := models.User{
			Name:        "Dr. " + gofakeit.Name(),
			Email:       fmt.Sprintf("doctor%d@clinic.test", i+1),
			Password:    string(hashed),
			RoleID:      doctorRole.ID,
			BranchID:    &branch.ID,
			SpecialtyID: &specialty.ID,
		}
		if err := DB.Where("email = ?", doctor.Email).FirstOrCreate(&doctor).Error; err != nil {
			log.Fatal("seed doctors: ", err)
		}

		// Weekday availability, weekends off.
		for day := models.Sunday; day <= models.Saturday; day++ {
			rule := models.DefaultRule(doctor.ID, day)
			if day == models.Sunday || day == models.Saturday {
				rule.IsAvailable = false
			}
			DB.Where("doctor_id = ? AND day_of_week = ?", doctor.ID, day).FirstOrCreate(&rule)
		}
	}
	log.Printf("seeded %d doctors", count)
}

func seedPatients(count int) {
	for i := 0; i < count; i++ {
		patient := models.Patient{
			Name:        gofakeit.Name(),
			Email:       fmt.Sprintf("patient%d@example.test", i+1),
			PhoneNumber: gofakeit.Phone(),
			Address:     gofakeit.Street(),
		}
		// Roughly half the patients carry insurance.
		if gofakeit.Bool() {
			provider := uint(gofakeit.Number(1, 5))
			patient.InsuranceProviderID = &provider
			patient.InsuranceNumber = gofakeit.UUID()
		}
		if err := DB.Where("email = ?", patient.Email).FirstOrCreate(&patient).Error; err != nil {
			log.Fatal("seed patients: ", err)
		}
	}
	log.Printf("seeded %d patients", count)
}
