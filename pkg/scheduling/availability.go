package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hustlee-be/internal/entity"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday maps a lowercase weekday name to time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("invalid weekday %q", name)
	}
	return day, nil
}

// WeekdayName returns the lowercase name used on the wire.
func WeekdayName(day time.Weekday) string {
	return strings.ToLower(day.String())
}

// ParseClock converts a zero-padded 24h "HH:MM" string to minutes since
// midnight. Comparisons always happen on the numeric form.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock time %q, want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q, want HH:MM", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q, want HH:MM", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

// WithinAvailability reports whether some window on the candidate weekday fully
// contains [startMinute, endMinute). A weekday with no windows yields false.
func WithinAvailability(windows []entity.AvailabilityWindow, weekday time.Weekday, startMinute, endMinute int) bool {
	if startMinute >= endMinute {
		return false
	}
	for _, w := range windows {
		if w.Weekday != weekday {
			continue
		}
		if w.Contains(startMinute, endMinute) {
			return true
		}
	}
	return false
}
