package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

type ResolveInput struct {
	Date      time.Time
	Schedule  employee.Schedule
	CheckIn   *string
	CheckOut  *string
	Requested Status
	Weekend   calendar.WeekendSet
	Holidays  holiday.Calendar
}

type Resolution struct {
	Status        Status
	LateHours     decimal.Decimal
	OvertimeHours decimal.Decimal
}

// Resolve decides the final status of a day and its late and overtime hours.
//
// Weekends and official holidays always resolve to Holiday with no hours.
// Otherwise a day with neither time supplied is Absent, and any other day
// takes the requested status, Present when none was given. Absent and
// SickLeave days carry no hours even when times were recorded. Early
// arrival and early departure clamp to zero.
func Resolve(in ResolveInput) (Resolution, error) {
	if in.Weekend.IsWeekend(in.Date) || in.Holidays.IsHoliday(in.Date) {
		return Resolution{Status: StatusHoliday, LateHours: decimal.Zero, OvertimeHours: decimal.Zero}, nil
	}

	late, err := hoursPast(in.CheckIn, in.Schedule.CheckInTime)
	if err != nil {
		return Resolution{}, err
	}
	overtime, err := hoursPast(in.CheckOut, in.Schedule.CheckOutTime)
	if err != nil {
		return Resolution{}, err
	}

	res := Resolution{LateHours: late, OvertimeHours: overtime}
	switch {
	case in.CheckIn == nil && in.CheckOut == nil:
		res.Status = StatusAbsent
	case in.Requested == "":
		res.Status = StatusPresent
	default:
		res.Status = in.Requested
	}

	if res.Status == StatusPresent && in.CheckIn == nil {
		return Resolution{}, ErrCheckInRequired
	}
	if res.Status == StatusAbsent || res.Status == StatusSickLeave {
		res.LateHours, res.OvertimeHours = decimal.Zero, decimal.Zero
	}
	return res, nil
}

// hoursPast returns max(0, actual-scheduled) in hours rounded to 2 places.
// A nil actual yields zero.
func hoursPast(actual *string, scheduled string) (decimal.Decimal, error) {
	if actual == nil {
		return decimal.Zero, nil
	}
	a, err := calendar.ParseClock(*actual)
	if err != nil {
		return decimal.Zero, err
	}
	s, err := calendar.ParseClock(scheduled)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	diff := max(0, a-s)
	return decimal.NewFromInt(int64(diff)).Div(minutesPerHour).Round(2), nil
}
