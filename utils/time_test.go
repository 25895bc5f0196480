package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-06-02")
	if err != nil {
		t.Fatal(err)
	}
	if got.Year() != 2025 || got.Month() != time.June || got.Day() != 2 {
		t.Errorf("ParseDate = %v", got)
	}

	for _, bad := range []string{"", "02-06-2025", "2025/06/02", "tomorrow"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestParseClock(t *testing.T) {
	if _, err := ParseClock("09:30"); err != nil {
		t.Errorf("ParseClock(09:30) failed: %v", err)
	}
	for _, bad := range []string{"", "9:3", "24:00", "09:60", "930"} {
		if _, err := ParseClock(bad); err == nil {
			t.Errorf("ParseClock(%q) should fail", bad)
		}
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2025, 6, 2, 8, 0, 0, 0, time.Local)
	evening := time.Date(2025, 6, 2, 23, 59, 0, 0, time.Local)
	nextDay := time.Date(2025, 6, 3, 0, 0, 0, 0, time.Local)

	if !SameDay(morning, evening) {
		t.Error("same calendar day expected")
	}
	if SameDay(evening, nextDay) {
		t.Error("different days reported as same")
	}
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2025, 6, 2, 15, 45, 12, 0, time.Local)
	start, end := DayBounds(at)

	if start.Hour() != 0 || start.Minute() != 0 || start.Day() != 2 {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("end = %v, want start+24h", end)
	}
	if at.Before(start) || !at.Before(end) {
		t.Error("the instant should fall inside its own day bounds")
	}
}
