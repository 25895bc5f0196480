package scheduling

import (
	"reflect"
	"testing"
	"time"

	"github.com/clinicore/clinic-backend/models"
)

// 2025-06-02 is a Monday.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)

func mondayRule(start, end string, available bool) models.AvailabilityRule {
	return models.AvailabilityRule{
		DoctorID:    1,
		DayOfWeek:   models.Monday,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: available,
	}
}

func TestWindowForDate(t *testing.T) {
	tests := []struct {
		name      string
		rules     []models.AvailabilityRule
		wantOK    bool
		wantStart string
		wantEnd   string
	}{
		{
			name:      "explicit rule",
			rules:     []models.AvailabilityRule{mondayRule("09:00", "12:00", true)},
			wantOK:    true,
			wantStart: "09:00",
			wantEnd:   "12:00",
		},
		{
			name:   "unavailable day has no window",
			rules:  []models.AvailabilityRule{mondayRule("09:00", "12:00", false)},
			wantOK: false,
		},
		{
			name:      "missing rule falls back to default",
			rules:     nil,
			wantOK:    true,
			wantStart: models.DefaultStartTime,
			wantEnd:   models.DefaultEndTime,
		},
		{
			name: "rule for another weekday is ignored",
			rules: []models.AvailabilityRule{{
				DoctorID: 1, DayOfWeek: models.Tuesday,
				StartTime: "10:00", EndTime: "11:00", IsAvailable: true,
			}},
			wantOK:    true,
			wantStart: models.DefaultStartTime,
			wantEnd:   models.DefaultEndTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, ok, err := WindowForDate(tt.rules, 1, monday)
			if err != nil {
				t.Fatalf("WindowForDate returned error: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got := window.Start.Format("15:04"); got != tt.wantStart {
				t.Errorf("window start = %s, want %s", got, tt.wantStart)
			}
			if got := window.End.Format("15:04"); got != tt.wantEnd {
				t.Errorf("window end = %s, want %s", got, tt.wantEnd)
			}
			if window.Start.Year() != monday.Year() || window.Start.YearDay() != monday.YearDay() {
				t.Errorf("window not anchored to the requested date: %v", window.Start)
			}
		})
	}
}

func TestSlotTimesMondayMorning(t *testing.T) {
	window, ok, err := WindowForDate([]models.AvailabilityRule{mondayRule("09:00", "12:00", true)}, 1, monday)
	if err != nil || !ok {
		t.Fatalf("window not resolved: ok=%v err=%v", ok, err)
	}

	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	got := FormatSlots(SlotTimes(window))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SlotTimes = %v, want %v", got, want)
	}
}

func TestSlotTimesAlignment(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{
			name:  "window start off the half hour rounds up",
			start: "09:15",
			end:   "11:00",
			want:  []string{"09:30", "10:00", "10:30"},
		},
		{
			name:  "slot must fit entirely inside the window",
			start: "09:00",
			end:   "11:50",
			want:  []string{"09:00", "09:30", "10:00", "10:30", "11:00"},
		},
		{
			name:  "window too small for any slot",
			start: "09:10",
			end:   "09:35",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, ok, err := WindowForDate([]models.AvailabilityRule{mondayRule(tt.start, tt.end, true)}, 1, monday)
			if err != nil || !ok {
				t.Fatalf("window not resolved: ok=%v err=%v", ok, err)
			}
			got := FormatSlots(SlotTimes(window))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SlotTimes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFreeSlotsExcludesBooked(t *testing.T) {
	window, _, err := WindowForDate([]models.AvailabilityRule{mondayRule("09:00", "12:00", true)}, 1, monday)
	if err != nil {
		t.Fatal(err)
	}

	tenAM, err := ClockOn(monday, "10:00")
	if err != nil {
		t.Fatal(err)
	}

	got := FormatSlots(FreeSlots(window, []time.Time{tenAM}))
	want := []string{"09:00", "09:30", "10:30", "11:00", "11:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FreeSlots = %v, want %v", got, want)
	}

	// Cancelling (removing the booking) restores the slot.
	got = FormatSlots(FreeSlots(window, nil))
	if len(got) != 6 || got[2] != "10:00" {
		t.Fatalf("expected 10:00 back in free slots, got %v", got)
	}
}

func TestFreeSlotsIgnoresBookingsOutsideWindow(t *testing.T) {
	window, _, err := WindowForDate([]models.AvailabilityRule{mondayRule("09:00", "10:00", true)}, 1, monday)
	if err != nil {
		t.Fatal(err)
	}

	// An emergency booking forced off-hours must not disturb in-window slots.
	offHours, _ := ClockOn(monday, "18:00")
	got := FormatSlots(FreeSlots(window, []time.Time{offHours}))
	want := []string{"09:00", "09:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FreeSlots = %v, want %v", got, want)
	}
}

func TestContains(t *testing.T) {
	window, _, err := WindowForDate([]models.AvailabilityRule{mondayRule("09:00", "12:00", true)}, 1, monday)
	if err != nil {
		t.Fatal(err)
	}

	in, _ := ClockOn(monday, "10:30")
	if !Contains(window, in) {
		t.Error("10:30 should be inside a 09:00-12:00 window")
	}

	last, _ := ClockOn(monday, "11:30")
	if !Contains(window, last) {
		t.Error("11:30 should be the last bookable slot of a 09:00-12:00 window")
	}

	edge, _ := ClockOn(monday, "12:00")
	if Contains(window, edge) {
		t.Error("12:00 slot does not fit inside a window ending at 12:00")
	}

	misaligned, _ := ClockOn(monday, "10:15")
	if Contains(window, misaligned) {
		t.Error("10:15 is not a 30-minute-aligned slot start")
	}
}

func TestClockOn(t *testing.T) {
	got, err := ClockOn(monday, "14:30")
	if err != nil {
		t.Fatal(err)
	}
	if got.Hour() != 14 || got.Minute() != 30 || got.Day() != monday.Day() {
		t.Fatalf("ClockOn = %v", got)
	}

	if _, err := ClockOn(monday, "25:00"); err == nil {
		t.Error("expected error for invalid clock value")
	}
}
