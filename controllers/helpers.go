package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/scheduling"
	"github.com/clinicore/clinic-backend/utils"
)

// Helpers shared by the scheduling and billing controllers. Each one writes
// the error response itself and reports success through the bool, so
// handlers bail out with `return nil` once a helper has answered.

// isUniqueViolation reports whether err is postgres rejecting a row that
// would duplicate a unique index entry. Racing writers that slip past the
// application-level checks land here and get mapped to a 409 instead of
// surfacing the raw constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}

func loadDoctor(c *fiber.Ctx, doctorID uint) (*models.User, bool) {
	var doctor models.User
	if err := db.DB.Preload("Role").First(&doctor, doctorID).Error; err != nil {
		c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
		return nil, false
	}
	if !doctor.IsDoctor() {
		c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
		})
		return nil, false
	}
	return &doctor, true
}

func loadPatient(c *fiber.Ctx, patientID uint) (*models.Patient, bool) {
	var patient models.Patient
	if err := db.DB.First(&patient, patientID).Error; err != nil {
		c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
		return nil, false
	}
	return &patient, true
}

// bookedTimes returns the schedule times of all non-cancelled appointments
// for a doctor on one calendar day.
func bookedTimes(doctorID uint, date time.Time) ([]time.Time, error) {
	dayStart, dayEnd := utils.DayBounds(date)

	var appointments []models.Appointment
	err := db.DB.
		Where("doctor_id = ?", doctorID).
		Where("status <> ?", models.StatusCancelled).
		Where("schedule_time >= ? AND schedule_time < ?", dayStart, dayEnd).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}

	times := make([]time.Time, 0, len(appointments))
	for _, a := range appointments {
		times = append(times, a.ScheduleTime)
	}
	return times, nil
}

// freeSlotsForDate resolves the availability window and subtracts existing
// bookings. An unavailable day yields an empty list.
func freeSlotsForDate(doctorID uint, date time.Time) ([]time.Time, error) {
	var rules []models.AvailabilityRule
	if err := db.DB.Where("doctor_id = ?", doctorID).Find(&rules).Error; err != nil {
		return nil, err
	}

	window, ok, err := scheduling.WindowForDate(rules, doctorID, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []time.Time{}, nil
	}

	booked, err := bookedTimes(doctorID, date)
	if err != nil {
		return nil, err
	}
	return scheduling.FreeSlots(window, booked), nil
}
