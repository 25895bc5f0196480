package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/redis"
	"github.com/clinicore/clinic-backend/scheduling"
	"github.com/clinicore/clinic-backend/utils"
)

type availabilitySlotInput struct {
	DayOfWeek   int    `json:"dayOfWeek"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

type setAvailabilityInput struct {
	AvailabilitySlots []availabilitySlotInput `json:"availabilitySlots"`
}

// GetAvailabilityRules returns the doctor's weekly rule set, filling in the
// 09:00-17:00 default for any weekday that was never saved.
func GetAvailabilityRules(c *fiber.Ctx) error {
	doctorID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if _, ok := loadDoctor(c, doctorID); !ok {
		return nil
	}

	var stored []models.AvailabilityRule
	if err := db.DB.Where("doctor_id = ?", doctorID).Find(&stored).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability rules",
			Error:   err.Error(),
		})
	}

	byDay := make(map[models.DayOfWeek]models.AvailabilityRule, len(stored))
	for _, r := range stored {
		byDay[r.DayOfWeek] = r
	}

	rules := make([]models.AvailabilityRule, 0, 7)
	for day := models.Sunday; day <= models.Saturday; day++ {
		if r, ok := byDay[day]; ok {
			rules = append(rules, r)
		} else {
			rules = append(rules, models.DefaultRule(doctorID, day))
		}
	}

	return c.JSON(fiber.Map{"availability_rules": rules})
}

// SetAvailability replaces the doctor's whole weekly rule set. Only the
// doctor themself (or an admin) may save it, and all seven weekdays must be
// present exactly once.
func SetAvailability(c *fiber.Ctx) error {
	doctorID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if _, ok := loadDoctor(c, doctorID); !ok {
		return nil
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	if role != models.RoleAdmin && userID != doctorID {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Doctors can only set their own availability",
		})
	}

	var input setAvailabilityInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if len(input.AvailabilitySlots) != 7 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "availabilitySlots must contain exactly 7 entries, one per weekday",
		})
	}

	rules := make([]models.AvailabilityRule, 0, 7)
	seen := make(map[models.DayOfWeek]bool, 7)
	for _, slot := range input.AvailabilitySlots {
		rule := models.AvailabilityRule{
			DoctorID:    doctorID,
			DayOfWeek:   models.DayOfWeek(slot.DayOfWeek),
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			IsAvailable: slot.IsAvailable,
		}
		if err := rule.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid availability rule",
				Error:   err.Error(),
			})
		}
		if seen[rule.DayOfWeek] {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Duplicate weekday in availabilitySlots",
			})
		}
		seen[rule.DayOfWeek] = true
		rules = append(rules, rule)
	}

	// Replace wholesale: a save overwrites whatever was there before.
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("doctor_id = ?", doctorID).Delete(&models.AvailabilityRule{}).Error; err != nil {
			return err
		}
		return tx.Create(&rules).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save availability rules",
			Error:   err.Error(),
		})
	}

	// New rules change every future day's free-slot list at once.
	redis.InvalidateDoctorSlots(doctorID)

	return c.JSON(fiber.Map{"availability_rules": rules})
}

// GetFreeSlots lists the doctor's open 30-minute slots for one date, in
// chronological order, as "HH:MM" strings.
func GetFreeSlots(c *fiber.Ctx) error {
	doctorID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if _, ok := loadDoctor(c, doctorID); !ok {
		return nil
	}

	dateParam := c.Query("date")
	if dateParam == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "date query parameter is required",
		})
	}
	date, err := utils.ParseDate(dateParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	if cached, ok := redis.GetCachedFreeSlots(doctorID, dateParam); ok {
		c.Set("Content-Type", "application/json")
		return c.Send(cached)
	}

	slots, err := freeSlotsForDate(doctorID, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to compute free slots",
			Error:   err.Error(),
		})
	}

	payload, err := json.Marshal(fiber.Map{
		"doctor_id": doctorID,
		"date":      dateParam,
		"slots":     scheduling.FormatSlots(slots),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to encode free slots",
			Error:   err.Error(),
		})
	}
	redis.CacheFreeSlots(doctorID, dateParam, payload)

	c.Set("Content-Type", "application/json")
	return c.Send(payload)
}
