package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidFormat is returned when a date string cannot be parsed.
	ErrInvalidFormat = errors.New("invalid date, use YYYY-MM-DD or one of: today, tomorrow, yesterday, day-after")

	// ErrConflictingArguments is returned when an explicit date and a relative-day
	// shortcut are supplied together.
	ErrConflictingArguments = errors.New("give either an explicit date or a relative-day flag, not both")
)

// Shortcut selects a calendar date relative to the current day.
type Shortcut int

const (
	ShortcutNone Shortcut = iota
	ShortcutTomorrow
	ShortcutYesterday
	ShortcutDayAfter
)

// Date is a plain calendar date with no time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime extracts the calendar date from t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// In returns midnight of the date in the given time zone.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Resolve turns an explicit date string or a shortcut into a concrete date.
// The explicit string may be YYYY-MM-DD or one of the relative keywords the
// shortcuts also cover. With neither given, the date is today relative to now.
func Resolve(explicit string, shortcut Shortcut, now time.Time) (Date, error) {
	if explicit != "" && shortcut != ShortcutNone {
		return Date{}, ErrConflictingArguments
	}

	today := FromTime(now)

	if explicit != "" {
		switch strings.ToLower(explicit) {
		case "today":
			return today, nil
		case "tomorrow":
			return addDays(today, 1), nil
		case "yesterday":
			return addDays(today, -1), nil
		case "day-after":
			return addDays(today, 2), nil
		}

		t, err := time.Parse("2006-01-02", explicit)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidFormat, explicit)
		}
		return FromTime(t), nil
	}

	switch shortcut {
	case ShortcutTomorrow:
		return addDays(today, 1), nil
	case ShortcutYesterday:
		return addDays(today, -1), nil
	case ShortcutDayAfter:
		return addDays(today, 2), nil
	default:
		return today, nil
	}
}

func addDays(d Date, n int) Date {
	return FromTime(d.In(time.UTC).AddDate(0, 0, n))
}
