package scheduling

import (
	"time"

	"github.com/clinicore/clinic-backend/models"
)

// Window is a doctor's bookable range on one concrete date, both ends
// anchored to that date.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowForDate resolves the availability window for a doctor on a concrete
// date from their weekly rules. Missing weekdays fall back to the default
// 09:00-17:00 rule; an unavailable weekday yields no window.
func WindowForDate(rules []models.AvailabilityRule, doctorID uint, date time.Time) (Window, bool, error) {
	day := models.DayOfWeek(date.Weekday())

	rule := models.DefaultRule(doctorID, day)
	for _, r := range rules {
		if r.DayOfWeek == day {
			rule = r
			break
		}
	}
	if !rule.IsAvailable {
		return Window{}, false, nil
	}

	start, err := ClockOn(date, rule.StartTime)
	if err != nil {
		return Window{}, false, err
	}
	end, err := ClockOn(date, rule.EndTime)
	if err != nil {
		return Window{}, false, err
	}
	return Window{Start: start, End: end}, true, nil
}

// SlotTimes generates every 30-minute-aligned start time whose full slot
// fits inside the window. Alignment is to :00/:30 of the hour, so a window
// starting 09:15 produces its first slot at 09:30.
func SlotTimes(w Window) []time.Time {
	slots := []time.Time{}
	t := alignUp(w.Start)
	for !t.Add(models.SlotDuration).After(w.End) {
		slots = append(slots, t)
		t = t.Add(models.SlotDuration)
	}
	return slots
}

// FreeSlots removes slot starts that coincide with an existing booking.
// Output order follows SlotTimes, so results are deterministic.
func FreeSlots(w Window, booked []time.Time) []time.Time {
	taken := make(map[time.Time]bool, len(booked))
	for _, b := range booked {
		taken[b.Truncate(time.Minute)] = true
	}

	free := []time.Time{}
	for _, s := range SlotTimes(w) {
		if !taken[s] {
			free = append(free, s)
		}
	}
	return free
}

// FormatSlots renders slot starts as "HH:MM" strings for API responses.
func FormatSlots(slots []time.Time) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format("15:04"))
	}
	return out
}

// Contains reports whether t is one of the window's aligned slot starts.
func Contains(w Window, t time.Time) bool {
	t = t.Truncate(time.Minute)
	for _, s := range SlotTimes(w) {
		if s.Equal(t) {
			return true
		}
	}
	return false
}

// ClockOn places an "HH:MM" clock value onto a concrete date, in the
// date's location.
func ClockOn(date time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}

// alignUp rounds t up to the next half-hour boundary.
func alignUp(t time.Time) time.Time {
	t = t.Truncate(time.Minute)
	rem := time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second
	rem = rem % models.SlotDuration
	if rem == 0 {
		return t
	}
	return t.Add(models.SlotDuration - rem)
}
