package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidTransition marks a status change the state machine forbids, as
// opposed to a datastore failure while persisting a legal one.
var ErrInvalidTransition = errors.New("invalid status transition")

type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "Scheduled"
	StatusCompleted   AppointmentStatus = "Completed"
	StatusCancelled   AppointmentStatus = "Cancelled"
	StatusRescheduled AppointmentStatus = "Rescheduled"
)

// SlotDuration is the fixed length of every appointment.
const SlotDuration = 30 * time.Minute

// Appointment occupies one 30-minute slot on a doctor's calendar. A partial
// unique index on (doctor_id, schedule_time) excluding cancelled and
// emergency rows keeps two regular appointments out of the same slot; see
// db.Migrate. A reschedule moves this row to a new timestamp rather than
// creating a second one.
type Appointment struct {
	gorm.Model
	PatientID        uint              `json:"patient_id"`
	Patient          Patient           `json:"patient" gorm:"foreignKey:PatientID"`
	DoctorID         uint              `json:"doctor_id"`
	Doctor           User              `json:"doctor" gorm:"foreignKey:DoctorID"`
	BranchID         uint              `json:"branch_id"`
	ScheduleTime     time.Time         `json:"schedule_time"`
	Status           AppointmentStatus `json:"status"`
	IsEmergency      bool              `json:"is_emergency"`
	RescheduleReason string            `json:"reschedule_reason,omitempty"`

	Consultation *ConsultationRecord `json:"consultation,omitempty" gorm:"foreignKey:AppointmentID"`
	Invoice      *Invoice            `json:"invoice,omitempty" gorm:"foreignKey:AppointmentID"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return nil
}

// IsActionable reports whether the appointment can still be completed,
// cancelled or rescheduled. Rescheduled behaves exactly like Scheduled for
// every later transition; only the label differs.
func (a *Appointment) IsActionable() bool {
	return a.Status == StatusScheduled || a.Status == StatusRescheduled
}

// CanTransition reports whether moving to newStatus is legal from the
// current status. Completed and Cancelled are terminal.
func (a *Appointment) CanTransition(newStatus AppointmentStatus) bool {
	switch a.Status {
	case StatusScheduled, StatusRescheduled:
		return newStatus == StatusCompleted || newStatus == StatusCancelled || newStatus == StatusRescheduled
	default:
		return false
	}
}

// UpdateStatus applies a transition and persists it, rejecting anything the
// state machine does not allow.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if !a.CanTransition(newStatus) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, a.Status, newStatus)
	}
	a.Status = newStatus
	return tx.Model(a).Update("status", newStatus).Error
}
