package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalendar_IsHoliday_MatchesMonthDay(t *testing.T) {
	cal := NewCalendar([]OfficialHoliday{
		{Name: "Revolution Day", Date: time.Date(2015, time.July, 23, 0, 0, 0, 0, time.UTC), IsRecurring: true},
		{Name: "Eid", Date: time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC), Year: 2024},
	})

	assert.True(t, cal.IsHoliday(time.Date(2024, time.July, 23, 0, 0, 0, 0, time.UTC)))
	assert.True(t, cal.IsHoliday(time.Date(2024, time.April, 10, 15, 30, 0, 0, time.UTC)))
	assert.False(t, cal.IsHoliday(time.Date(2024, time.April, 11, 0, 0, 0, 0, time.UTC)))

	name, ok := cal.Name(time.Date(2024, time.July, 23, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, "Revolution Day", name)
	assert.Equal(t, 2, cal.Len())
}

func TestCalendar_Empty(t *testing.T) {
	var cal Calendar
	assert.False(t, cal.IsHoliday(time.Now()))
}

func TestCreateHolidayRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateHolidayRequest
		wantErr bool
	}{
		{"valid", CreateHolidayRequest{Name: "New Year", Date: "2024-01-01", Year: 2024}, false},
		{"year before founding", CreateHolidayRequest{Name: "Old", Date: "2007-01-01", Year: 2007}, true},
		{"date outside year", CreateHolidayRequest{Name: "Mismatch", Date: "2023-01-01", Year: 2024}, true},
		{"bad date", CreateHolidayRequest{Name: "Bad", Date: "01/01/2024", Year: 2024}, true},
		{"missing name", CreateHolidayRequest{Date: "2024-01-01", Year: 2024}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
