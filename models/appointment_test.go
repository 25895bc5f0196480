package models

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{StatusScheduled, StatusCompleted, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusRescheduled, true},
		// Rescheduled stays fully actionable.
		{StatusRescheduled, StatusCompleted, true},
		{StatusRescheduled, StatusCancelled, true},
		{StatusRescheduled, StatusRescheduled, true},
		// Completed is terminal and irreversible.
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusRescheduled, false},
		{StatusCompleted, StatusScheduled, false},
		// Cancelled is terminal.
		{StatusCancelled, StatusCompleted, false},
		{StatusCancelled, StatusRescheduled, false},
		{StatusCancelled, StatusScheduled, false},
	}

	for _, tt := range tests {
		a := Appointment{Status: tt.from}
		if got := a.CanTransition(tt.to); got != tt.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	a := &Appointment{Status: StatusCompleted}

	err := a.UpdateStatus(nil, StatusCancelled)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if a.Status != StatusCompleted {
		t.Errorf("status changed to %s on a rejected transition", a.Status)
	}
}

func TestIsActionable(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   bool
	}{
		{StatusScheduled, true},
		{StatusRescheduled, true},
		{StatusCompleted, false},
		{StatusCancelled, false},
	}

	for _, tt := range tests {
		a := Appointment{Status: tt.status}
		if got := a.IsActionable(); got != tt.want {
			t.Errorf("IsActionable(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
