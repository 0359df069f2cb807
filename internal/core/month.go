package core

import (
	"fmt"
	"time"
)

// Month is a calendar month, the reference period for every projection.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a "YYYY-MM" month key.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q: %w", s, ErrInvalidDate)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Key returns the canonical "YYYY-MM" form used as storage key suffix.
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) Validate() error {
	if m.Year < 1 || m.Month < time.January || m.Month > time.December {
		return ErrInvalidDate
	}
	return nil
}

// Start returns midnight on the first day of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Days returns the calendar length of the month (28-31), leap years included.
func (m Month) Days() int {
	// Day zero of the next month is the last day of this one.
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths steps the month forward (or backward for negative n) with
// year carry handled by time.Date normalization.
func (m Month) AddMonths(n int) Month {
	t := time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Contains reports whether t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Compare orders months chronologically: -1 before, 0 equal, +1 after.
func (m Month) Compare(other Month) int {
	if m.Year != other.Year {
		if m.Year < other.Year {
			return -1
		}
		return 1
	}
	if m.Month != other.Month {
		if m.Month < other.Month {
			return -1
		}
		return 1
	}
	return 0
}
