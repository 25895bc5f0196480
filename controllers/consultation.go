package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/utils"
)

type treatmentLineInput struct {
	ServiceCode string   `json:"service_code"`
	ActualPrice *float64 `json:"actual_price"`
	Notes       string   `json:"notes"`
}

type completeAppointmentInput struct {
	ConsultationNotes string               `json:"consultation_notes"`
	Treatments        []treatmentLineInput `json:"treatments"`
}

// CompleteAppointment closes out an appointment with a consultation record.
// Only the appointment's own doctor (or an admin) may complete it, only on
// the appointment's calendar day, and only once. Line prices are frozen at
// whatever the doctor charged, never re-read from the catalogue afterwards.
func CompleteAppointment(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}

	var input completeAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := models.ValidateNotes(input.ConsultationNotes); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid consultation notes",
			Error:   err.Error(),
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	if role != models.RoleAdmin && appointment.DoctorID != userID {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Doctors can only complete their own appointments",
		})
	}

	if !appointment.IsActionable() {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: fmt.Sprintf("Cannot complete a %s appointment", appointment.Status),
		})
	}

	// Completion is only valid on the appointment's day: not in advance,
	// not retroactively.
	if !utils.SameDay(appointment.ScheduleTime, time.Now()) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Appointments can only be completed on their scheduled day",
		})
	}

	items, ok := buildLineItems(c, input.Treatments)
	if !ok {
		return nil
	}

	record := models.ConsultationRecord{
		AppointmentID: appointment.ID,
		Notes:         input.ConsultationNotes,
		Items:         items,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// Re-read under lock so two concurrent completions cannot both
		// pass the status check.
		var locked models.Appointment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, appointment.ID).Error; err != nil {
			return err
		}
		if err := locked.UpdateStatus(tx, models.StatusCompleted); err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		// Only a losing status race is a conflict; anything else is a
		// plain datastore failure.
		if errors.Is(err, models.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Cannot complete this appointment",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to complete appointment",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// UploadConsultationAttachment attaches a scanned report or X-ray to a
// completed appointment's consultation record.
func UploadConsultationAttachment(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}

	var record models.ConsultationRecord
	if err := db.DB.Where("appointment_id = ?", id).First(&record).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "No consultation record for this appointment",
			Error:   err.Error(),
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "file form field is required",
			Error:   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to read uploaded file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadAttachment(file, fmt.Sprintf("consultation-%d", record.ID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload attachment",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&record).Update("attachment_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save attachment URL",
			Error:   err.Error(),
		})
	}

	record.AttachmentURL = url
	return c.JSON(record)
}

// buildLineItems resolves prescribed treatments against the catalogue and
// freezes each line's price. A missing actual_price falls back to the
// catalogue price at prescription time.
func buildLineItems(c *fiber.Ctx, inputs []treatmentLineInput) ([]models.TreatmentLineItem, bool) {
	items := make([]models.TreatmentLineItem, 0, len(inputs))
	for _, line := range inputs {
		var treatment models.Treatment
		if err := db.DB.Where("service_code = ?", line.ServiceCode).First(&treatment).Error; err != nil {
			c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: fmt.Sprintf("Unknown service code %q", line.ServiceCode),
			})
			return nil, false
		}

		price := treatment.Price
		if line.ActualPrice != nil {
			if *line.ActualPrice < 0 {
				c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
					Message: "actual_price cannot be negative",
				})
				return nil, false
			}
			price = *line.ActualPrice
		}

		items = append(items, models.TreatmentLineItem{
			ServiceCode: treatment.ServiceCode,
			Name:        treatment.Name,
			ActualPrice: price,
			Notes:       line.Notes,
		})
	}
	return items, true
}
