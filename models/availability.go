package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Defaults applied when a doctor has never saved rules for a weekday.
const (
	DefaultStartTime = "09:00"
	DefaultEndTime   = "17:00"
)

// AvailabilityRule is a doctor's recurring weekly window for one weekday.
// One row per (doctor, weekday); saving availability replaces all seven rows.
type AvailabilityRule struct {
	gorm.Model
	DoctorID    uint      `json:"doctor_id" gorm:"uniqueIndex:idx_doctor_day"`
	DayOfWeek   DayOfWeek `json:"day_of_week" gorm:"uniqueIndex:idx_doctor_day"`
	StartTime   string    `json:"start_time"` // "HH:MM" 24h
	EndTime     string    `json:"end_time"`   // "HH:MM" 24h
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
}

// DefaultRule returns the window used when a doctor never saved a rule for
// the given weekday.
func DefaultRule(doctorID uint, day DayOfWeek) AvailabilityRule {
	return AvailabilityRule{
		DoctorID:    doctorID,
		DayOfWeek:   day,
		StartTime:   DefaultStartTime,
		EndTime:     DefaultEndTime,
		IsAvailable: true,
	}
}

// Validate checks the rule's weekday range and time window. An unavailable
// day carries no window so its times are not inspected.
func (r *AvailabilityRule) Validate() error {
	if r.DayOfWeek < Sunday || r.DayOfWeek > Saturday {
		return fmt.Errorf("day_of_week must be between 0 and 6, got %d", r.DayOfWeek)
	}
	if !r.IsAvailable {
		return nil
	}
	start, err := time.Parse("15:04", r.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start_time %q: must be HH:MM", r.StartTime)
	}
	end, err := time.Parse("15:04", r.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end_time %q: must be HH:MM", r.EndTime)
	}
	if !start.Before(end) {
		return fmt.Errorf("start_time %s must be before end_time %s", r.StartTime, r.EndTime)
	}
	return nil
}
