package allocation

import (
	"time"

	"clinic-room-allocation/internal/models"
)

// Shift boundaries, in local hours. Morning is [6,13), afternoon [13,19).
const (
	morningStartHour   = 6
	afternoonStartHour = 13
	nightStartHour     = 19
)

// Period is a weekday/shift pair
type Period struct {
	Weekday string `json:"weekday"`
	Shift   string `json:"shift"`
}

// CurrentPeriod maps a wall-clock time onto a weekday label and shift bucket
func CurrentPeriod(now time.Time) Period {
	// time.Weekday counts from Sunday; the labels count from Monday
	idx := (int(now.Weekday()) + 6) % 7

	var shift string
	switch h := now.Hour(); {
	case h >= morningStartHour && h < afternoonStartHour:
		shift = models.ShiftMorning
	case h >= afternoonStartHour && h < nightStartHour:
		shift = models.ShiftAfternoon
	default:
		shift = models.ShiftNight
	}

	return Period{Weekday: models.CalendarWeekdays[idx], Shift: shift}
}

// ResolvePeriod is CurrentPeriod with optional explicit overrides
func ResolvePeriod(now time.Time, weekday, shift string) Period {
	p := CurrentPeriod(now)
	if weekday != "" {
		p.Weekday = weekday
	}
	if shift != "" {
		p.Shift = shift
	}
	return p
}

// ClockTime formats a wall-clock "HH:MM" entry time
func ClockTime(t time.Time) string {
	return t.Format("15:04")
}
