package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/models"
)

// Plain record storage for reference data: treatments, branches and
// specialties. No temporal or consistency concerns here.

func GetAllTreatments(c *fiber.Ctx) error {
	var treatments []models.Treatment
	if err := db.DB.Find(&treatments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get treatments",
		})
	}
	return c.JSON(treatments)
}

func GetTreatment(c *fiber.Ctx) error {
	id := c.Params("id")
	var treatment models.Treatment
	if err := db.DB.First(&treatment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Treatment not found",
		})
	}
	return c.JSON(treatment)
}

func CreateTreatment(c *fiber.Ctx) error {
	treatment := new(models.Treatment)
	if err := c.BodyParser(treatment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if treatment.ServiceCode == "" || treatment.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "service_code is required and price cannot be negative",
		})
	}
	if err := db.DB.Create(treatment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create treatment",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(treatment)
}

func UpdateTreatment(c *fiber.Ctx) error {
	id := c.Params("id")
	var treatment models.Treatment
	if err := db.DB.First(&treatment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Treatment not found",
		})
	}
	if err := c.BodyParser(&treatment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := db.DB.Save(&treatment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update treatment",
		})
	}
	return c.JSON(treatment)
}

func DeleteTreatment(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Delete(&models.Treatment{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete treatment",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func GetAllBranches(c *fiber.Ctx) error {
	var branches []models.Branch
	if err := db.DB.Find(&branches).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get branches",
		})
	}
	return c.JSON(branches)
}

func CreateBranch(c *fiber.Ctx) error {
	branch := new(models.Branch)
	if err := c.BodyParser(branch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := db.DB.Create(branch).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create branch",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(branch)
}

func UpdateBranch(c *fiber.Ctx) error {
	id := c.Params("id")
	var branch models.Branch
	if err := db.DB.First(&branch, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Branch not found",
		})
	}
	if err := c.BodyParser(&branch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := db.DB.Save(&branch).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update branch",
		})
	}
	return c.JSON(branch)
}

func DeleteBranch(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Delete(&models.Branch{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete branch",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func GetAllSpecialties(c *fiber.Ctx) error {
	var specialties []models.Specialty
	if err := db.DB.Find(&specialties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get specialties",
		})
	}
	return c.JSON(specialties)
}

func CreateSpecialty(c *fiber.Ctx) error {
	specialty := new(models.Specialty)
	if err := c.BodyParser(specialty); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := db.DB.Create(specialty).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create specialty",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(specialty)
}

func DeleteSpecialty(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Delete(&models.Specialty{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete specialty",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
