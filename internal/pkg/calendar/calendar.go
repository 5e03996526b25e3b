package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for date-only values.
const DateLayout = "2006-01-02"

var (
	ErrInvalidClock   = errors.New("time must be in HH:mm 24-hour format")
	ErrInvalidWeekday = errors.New("invalid weekday name")
)

// ParseClock converts an "HH:mm" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

// IsValidClock reports whether s parses as "HH:mm".
func IsValidClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthRange returns the first and last calendar day of the month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

func DaysInMonth(year int, month time.Month) int {
	_, last := MonthRange(year, month)
	return last.Day()
}

// WeekendSet holds the weekday names that are not worked.
type WeekendSet map[time.Weekday]struct{}

// ParseWeekdayName accepts English weekday names, case-insensitively.
func ParseWeekdayName(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == n {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
}

func NewWeekendSet(names ...string) (WeekendSet, error) {
	set := make(WeekendSet, len(names))
	for _, name := range names {
		d, err := ParseWeekdayName(name)
		if err != nil {
			return nil, err
		}
		set[d] = struct{}{}
	}
	return set, nil
}

func (w WeekendSet) Contains(d time.Weekday) bool {
	_, ok := w[d]
	return ok
}

func (w WeekendSet) IsWeekend(date time.Time) bool {
	return w.Contains(date.Weekday())
}

// Names returns the set's day names in Sunday-first order.
func (w WeekendSet) Names() []string {
	names := make([]string, 0, len(w))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if w.Contains(d) {
			names = append(names, d.String())
		}
	}
	return names
}

// WorkingDays counts the days of the month whose weekday is not in the weekend set.
// Official holidays are not subtracted.
func WorkingDays(year int, month time.Month, weekend WeekendSet) int {
	first, last := MonthRange(year, month)
	count := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if !weekend.IsWeekend(d) {
			count++
		}
	}
	return count
}
