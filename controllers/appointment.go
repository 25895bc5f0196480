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
	"github.com/clinicore/clinic-backend/redis"
	"github.com/clinicore/clinic-backend/scheduling"
	"github.com/clinicore/clinic-backend/utils"
)

var errSlotTaken = errors.New("slot unavailable")

type bookAppointmentInput struct {
	PatientID    uint   `json:"patient_id"`
	DoctorID     uint   `json:"doctor_id"`
	BranchID     uint   `json:"branch_id"`
	ScheduleDate string `json:"schedule_date"`
	ScheduleTime string `json:"schedule_time"`
	IsEmergency  bool   `json:"is_emergency"`
	// Force lets an emergency walk-in displace the uniqueness check and
	// share an occupied slot. Ignored for regular bookings.
	Force bool `json:"force"`
}

type rescheduleInput struct {
	Status           string `json:"status"`
	ScheduleDate     string `json:"schedule_date"`
	ScheduleTime     string `json:"schedule_time"`
	RescheduleReason string `json:"reschedule_reason"`
}

// BookAppointment claims a slot for a patient. The claim is one atomic
// unit: a per-slot Redis lock serializes concurrent bookers, the conflict
// check and insert run in one transaction, and the partial unique index is
// the final word if anything slips through.
func BookAppointment(c *fiber.Ctx) error {
	var input bookAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if _, ok := loadDoctor(c, input.DoctorID); !ok {
		return nil
	}
	patient, ok := loadPatient(c, input.PatientID)
	if !ok {
		return nil
	}

	scheduleTime, ok := parseSlotTime(c, input.ScheduleDate, input.ScheduleTime)
	if !ok {
		return nil
	}

	// Regular bookings must land on a free, in-window slot. Emergencies
	// skip this and may be forced into off-hours or occupied slots.
	if !input.IsEmergency {
		if ok := validateSlotInWindow(c, input.DoctorID, scheduleTime); !ok {
			return nil
		}
	}

	appointment := models.Appointment{
		PatientID:    input.PatientID,
		DoctorID:     input.DoctorID,
		BranchID:     input.BranchID,
		ScheduleTime: scheduleTime,
		Status:       models.StatusScheduled,
		IsEmergency:  input.IsEmergency,
	}

	allowOccupied := input.IsEmergency && input.Force
	err := scheduling.WithSlotLock(redis.Ctx, redis.Client, input.DoctorID, scheduleTime, func() error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			if !allowOccupied {
				if err := ensureSlotFree(tx, input.DoctorID, scheduleTime, 0); err != nil {
					return err
				}
			}
			return tx.Create(&appointment).Error
		})
	})
	if err != nil {
		// The unique-violation branch catches a racer that slipped past
		// the redis lock (e.g. after TTL expiry) and lost at the index.
		if errors.Is(err, errSlotTaken) || errors.Is(err, scheduling.ErrSlotLocked) || isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "SlotUnavailable",
				Error:   "the requested slot is already booked",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateFreeSlots(input.DoctorID, input.ScheduleDate)
	sendBookingEmail(patient, &appointment, "Your appointment is booked")

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// RescheduleAppointment moves an appointment to a new slot on the same
// record. The target slot is validated exactly like a fresh claim, except
// the appointment being moved does not conflict with itself.
func RescheduleAppointment(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}

	var input rescheduleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if models.AppointmentStatus(input.Status) != models.StatusRescheduled {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Only status=Rescheduled is accepted on this endpoint",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	if !appointment.IsActionable() {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: fmt.Sprintf("Cannot reschedule a %s appointment", appointment.Status),
		})
	}

	newTime, ok := parseSlotTime(c, input.ScheduleDate, input.ScheduleTime)
	if !ok {
		return nil
	}
	if !appointment.IsEmergency {
		if ok := validateSlotInWindow(c, appointment.DoctorID, newTime); !ok {
			return nil
		}
	}

	oldDate := appointment.ScheduleTime.Format(utils.DateLayout)

	err := scheduling.WithSlotLock(redis.Ctx, redis.Client, appointment.DoctorID, newTime, func() error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			if err := ensureSlotFree(tx, appointment.DoctorID, newTime, appointment.ID); err != nil {
				return err
			}
			appointment.ScheduleTime = newTime
			appointment.Status = models.StatusRescheduled
			appointment.RescheduleReason = input.RescheduleReason
			return tx.Model(&appointment).Updates(map[string]interface{}{
				"schedule_time":     newTime,
				"status":            models.StatusRescheduled,
				"reschedule_reason": input.RescheduleReason,
			}).Error
		})
	})
	if err != nil {
		if errors.Is(err, errSlotTaken) || errors.Is(err, scheduling.ErrSlotLocked) || isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "SlotUnavailable",
				Error:   "the requested slot is already booked",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reschedule appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateFreeSlots(appointment.DoctorID, oldDate)
	redis.InvalidateFreeSlots(appointment.DoctorID, input.ScheduleDate)

	return c.JSON(appointment)
}

// CancelAppointment cancels a scheduled or rescheduled appointment and
// frees its slot immediately. Completed appointments cannot be cancelled.
func CancelAppointment(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := appointment.UpdateStatus(db.DB, models.StatusCancelled); err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Cannot cancel this appointment",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to cancel appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateFreeSlots(appointment.DoctorID, appointment.ScheduleTime.Format(utils.DateLayout))

	return c.JSON(appointment)
}

// GetAppointment returns one appointment with its related records.
func GetAppointment(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}

	var appointment models.Appointment
	err := db.DB.
		Preload("Patient").
		Preload("Doctor").
		Preload("Consultation.Items").
		Preload("Invoice.Payments").
		First(&appointment, id).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// GetDoctorUpcomingAppointments returns upcoming appointments for the
// logged-in doctor, newest range filters in the query string.
func GetDoctorUpcomingAppointments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	limit := 10
	if c.Query("limit") != "" {
		if parsed := c.QueryInt("limit"); parsed > 0 {
			limit = parsed
		}
	}

	now := time.Now()
	startDate := now
	endDate := now.AddDate(0, 1, 0)

	dateFilter := c.Query("filter", "month")
	switch dateFilter {
	case "today":
		startDate, endDate = utils.DayBounds(now)
	case "tomorrow":
		startDate, endDate = utils.DayBounds(now.AddDate(0, 0, 1))
	case "week":
		endDate = now.AddDate(0, 0, 7)
	}

	var appointments []models.Appointment
	err := db.DB.
		Preload("Patient").
		Where("doctor_id = ?", userID).
		Where("schedule_time >= ? AND schedule_time < ?", startDate, endDate).
		Where("status IN ?", []models.AppointmentStatus{models.StatusScheduled, models.StatusRescheduled}).
		Order("schedule_time asc").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
		"filter":       dateFilter,
	})
}

// GetDoctorAppointmentHistory returns completed and cancelled appointments
// for the logged-in doctor with pagination.
func GetDoctorAppointmentHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	page := 1
	limit := 10
	if parsed := c.QueryInt("page"); parsed > 0 {
		page = parsed
	}
	if parsed := c.QueryInt("limit"); parsed > 0 {
		limit = parsed
	}
	offset := (page - 1) * limit

	statuses := []models.AppointmentStatus{models.StatusCompleted, models.StatusCancelled}
	switch models.AppointmentStatus(c.Query("status")) {
	case models.StatusCompleted:
		statuses = []models.AppointmentStatus{models.StatusCompleted}
	case models.StatusCancelled:
		statuses = []models.AppointmentStatus{models.StatusCancelled}
	}

	var total int64
	db.DB.Model(&models.Appointment{}).
		Where("doctor_id = ?", userID).
		Where("status IN ?", statuses).
		Count(&total)

	var appointments []models.Appointment
	err := db.DB.
		Preload("Patient").
		Where("doctor_id = ?", userID).
		Where("status IN ?", statuses).
		Order("schedule_time desc").
		Offset(offset).
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"limit":        limit,
		"pages":        (total + int64(limit) - 1) / int64(limit),
	})
}

// parseSlotTime combines the date and time fields and enforces 30-minute
// alignment.
func parseSlotTime(c *fiber.Ctx, dateStr, timeStr string) (time.Time, bool) {
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: err.Error()})
		return time.Time{}, false
	}
	if _, err := utils.ParseClock(timeStr); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: err.Error()})
		return time.Time{}, false
	}
	ts, err := scheduling.ClockOn(date, timeStr)
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: err.Error()})
		return time.Time{}, false
	}
	if ts.Minute()%30 != 0 {
		c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "schedule_time must be aligned to 30-minute slots",
		})
		return time.Time{}, false
	}
	return ts, true
}

// validateSlotInWindow rejects slots outside the doctor's availability
// window for that weekday.
func validateSlotInWindow(c *fiber.Ctx, doctorID uint, ts time.Time) bool {
	var rules []models.AvailabilityRule
	if err := db.DB.Where("doctor_id = ?", doctorID).Find(&rules).Error; err != nil {
		c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability rules",
			Error:   err.Error(),
		})
		return false
	}

	window, available, err := scheduling.WindowForDate(rules, doctorID, ts)
	if err != nil {
		c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to resolve availability window",
			Error:   err.Error(),
		})
		return false
	}
	if !available || !scheduling.Contains(window, ts) {
		c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "SlotUnavailable",
			Error:   "the requested time is outside the doctor's availability",
		})
		return false
	}
	return true
}

// ensureSlotFree locks and checks for a conflicting non-cancelled
// appointment at the exact (doctor, timestamp). excludeID skips the
// appointment being rescheduled.
func ensureSlotFree(tx *gorm.DB, doctorID uint, ts time.Time, excludeID uint) error {
	var conflict models.Appointment
	query := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doctor_id = ?", doctorID).
		Where("schedule_time = ?", ts).
		Where("status <> ?", models.StatusCancelled)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	err := query.First(&conflict).Error
	if err == nil {
		return errSlotTaken
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func sendBookingEmail(patient *models.Patient, appointment *models.Appointment, subject string) {
	if patient.Email == "" {
		return
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been booked.</p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>The Clinic Team</p>
	`, patient.Name,
		appointment.ScheduleTime.Format(utils.DateLayout),
		appointment.ScheduleTime.Format(utils.ClockLayout),
		appointment.Status)

	utils.SendEmailAsync(patient.Email, subject, body)
}
