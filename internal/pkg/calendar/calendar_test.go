package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:20", 560, false},
		{"17:45", 1065, false},
		{"7:05", 425, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12", 0, true},
		{"", 0, true},
		{"1:2:3", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWeekendSet(t *testing.T) {
	set, err := NewWeekendSet("Friday", "saturday")
	require.NoError(t, err)
	assert.True(t, set.Contains(time.Friday))
	assert.True(t, set.Contains(time.Saturday))
	assert.False(t, set.Contains(time.Sunday))
	assert.Equal(t, []string{"Friday", "Saturday"}, set.Names())

	_, err = NewWeekendSet("Funday")
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestWorkingDays(t *testing.T) {
	friSat, err := NewWeekendSet("Friday", "Saturday")
	require.NoError(t, err)

	t.Run("30 day month with eight weekend days", func(t *testing.T) {
		// September 2024 starts on a Sunday: four Fridays and four Saturdays.
		assert.Equal(t, 30, DaysInMonth(2024, time.September))
		assert.Equal(t, 22, WorkingDays(2024, time.September, friSat))
	})

	t.Run("no weekend counts every day", func(t *testing.T) {
		assert.Equal(t, 29, WorkingDays(2024, time.February, WeekendSet{}))
	})

	t.Run("full week weekend counts nothing", func(t *testing.T) {
		all, err := NewWeekendSet("Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday")
		require.NoError(t, err)
		assert.Equal(t, 0, WorkingDays(2024, time.March, all))
	})

	t.Run("idempotent and bounded for every month", func(t *testing.T) {
		for year := 2008; year <= 2030; year++ {
			for m := time.January; m <= time.December; m++ {
				first := WorkingDays(year, m, friSat)
				second := WorkingDays(year, m, friSat)
				assert.Equal(t, first, second)
				assert.GreaterOrEqual(t, first, 0)
				assert.LessOrEqual(t, first, DaysInMonth(year, m))
			}
		}
	})
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2024, time.February)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), last)
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, time.September, 6, 13, 45, 10, 99, time.UTC)
	assert.Equal(t, time.Date(2024, time.September, 6, 0, 0, 0, 0, time.UTC), DateOnly(in))
}
