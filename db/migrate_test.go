package db

import (
	"strings"
	"testing"
)

// The booking index must keep excluding cancelled, soft-deleted and
// emergency rows: emergency walk-ins may legitimately share an occupied
// slot when forced, so they cannot participate in slot uniqueness.
func TestBookingSlotIndexPredicate(t *testing.T) {
	for _, fragment := range []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_doctor_slot",
		"ON appointments (doctor_id, schedule_time)",
		"status <> 'Cancelled'",
		"deleted_at IS NULL",
		"is_emergency = false",
	} {
		if !strings.Contains(bookingSlotIndexSQL, fragment) {
			t.Errorf("booking index SQL missing %q", fragment)
		}
	}
}
