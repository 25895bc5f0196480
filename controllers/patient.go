package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/models"
)

// Patient directory: plain record storage. Billing reads the insurance
// fields from here.

func GetAllPatients(c *fiber.Ctx) error {
	var patients []models.Patient
	if err := db.DB.Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get patients",
		})
	}
	return c.JSON(patients)
}

func GetPatient(c *fiber.Ctx) error {
	patientID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	patient, ok := loadPatient(c, patientID)
	if !ok {
		return nil
	}
	return c.JSON(patient)
}

func CreatePatient(c *fiber.Ctx) error {
	patient := new(models.Patient)
	if err := c.BodyParser(patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if patient.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}
	if err := db.DB.Create(patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create patient",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(patient)
}

func UpdatePatient(c *fiber.Ctx) error {
	patientID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	patient, ok := loadPatient(c, patientID)
	if !ok {
		return nil
	}
	if err := c.BodyParser(patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := db.DB.Save(patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update patient",
		})
	}
	return c.JSON(patient)
}

func DeletePatient(c *fiber.Ctx) error {
	patientID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if err := db.DB.Delete(&models.Patient{}, patientID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete patient",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
