package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func defaultRules(t *testing.T) Rules {
	t.Helper()
	weekend, err := calendar.NewWeekendSet("Friday", "Saturday")
	require.NoError(t, err)
	return Rules{
		Weekend:             weekend,
		WorkingHoursPerDay:  decimal.NewFromInt(8),
		OvertimeMultiplier:  dec("1.5"),
		DeductionMultiplier: decimal.NewFromInt(2),
	}
}

func record(status attendance.Status, late, overtime string) attendance.Attendance {
	return attendance.Attendance{Status: status, LateHours: dec(late), OvertimeHours: dec(overtime)}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestTally(t *testing.T) {
	b := Tally([]attendance.Attendance{
		record(attendance.StatusPresent, "0.33", "0.75"),
		record(attendance.StatusPresent, "0", "1.25"),
		record(attendance.StatusAbsent, "0", "0"),
		record(attendance.StatusHoliday, "0", "0"),
		record(attendance.StatusSickLeave, "0", "0"),
	})

	assert.Equal(t, 2, b.DaysPresent)
	assert.Equal(t, 1, b.DaysAbsent)
	assert.Equal(t, 1, b.Holidays)
	assert.Equal(t, 1, b.SickLeave)
	assertDecimal(t, "2", b.OvertimeHours)
	assertDecimal(t, "0.33", b.LateHours)
}

// September 2024 has 22 working days with a Friday and Saturday weekend.
func TestCalculate_OvertimeAmount(t *testing.T) {
	b := Calculate(2024, time.September, decimal.NewFromInt(3000), []attendance.Attendance{
		record(attendance.StatusPresent, "0", "4"),
	}, defaultRules(t))

	assert.Equal(t, 22, b.WorkingDays)
	assertDecimal(t, "17.05", b.HourlyRate.Round(2))
	assertDecimal(t, "102.27", b.OvertimeAmount)
	assertDecimal(t, "0", b.DeductionAmount)
	assertDecimal(t, "3102.27", b.NetSalary)
}

func TestCalculate_AbsentPenaltyAndDeduction(t *testing.T) {
	b := Calculate(2024, time.September, decimal.NewFromInt(3000), []attendance.Attendance{
		record(attendance.StatusPresent, "1.47", "4"),
		record(attendance.StatusAbsent, "0", "0"),
		record(attendance.StatusAbsent, "0", "0"),
		record(attendance.StatusAbsent, "0", "0"),
		record(attendance.StatusHoliday, "0", "0"),
		record(attendance.StatusSickLeave, "0", "0"),
	}, defaultRules(t))

	assertDecimal(t, "136.36", b.DailyRate.Round(2))
	assertDecimal(t, "409.09", b.AbsentPenalty.Round(2))
	assertDecimal(t, "102.27", b.OvertimeAmount)
	assertDecimal(t, "50.11", b.DeductionAmount)
	assertDecimal(t, "2643.07", b.NetSalary)
}

func TestNetSalary_UsesUnroundedPenalty(t *testing.T) {
	penalty := decimal.NewFromInt(3000).Div(decimal.NewFromInt(22)).Mul(decimal.NewFromInt(3))
	got := netSalary(decimal.NewFromInt(3000), dec("102.27"), dec("50"), penalty)
	assertDecimal(t, "2643.18", got)
}

func TestCalculate_NetNeverNegative(t *testing.T) {
	records := make([]attendance.Attendance, 0, 30)
	for i := 0; i < 30; i++ {
		records = append(records, record(attendance.StatusAbsent, "8", "0"))
	}
	for _, base := range []int64{0, 1, 500, 3000, 100000} {
		b := Calculate(2024, time.February, decimal.NewFromInt(base), records, defaultRules(t))
		assert.False(t, b.NetSalary.IsNegative(), "base %d", base)
	}
}

func TestCalculate_NoWorkingDays(t *testing.T) {
	rules := defaultRules(t)
	all, err := calendar.NewWeekendSet("Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday")
	require.NoError(t, err)
	rules.Weekend = all

	b := Calculate(2024, time.March, decimal.NewFromInt(3000), []attendance.Attendance{
		record(attendance.StatusPresent, "2", "3"),
	}, rules)

	assert.Equal(t, 0, b.WorkingDays)
	assert.True(t, b.HourlyRate.IsZero())
	assertDecimal(t, "3000", b.NetSalary)
}

func TestCalculate_HolidaysAndSickLeaveNotPenalised(t *testing.T) {
	b := Calculate(2024, time.September, decimal.NewFromInt(2200), []attendance.Attendance{
		record(attendance.StatusHoliday, "0", "0"),
		record(attendance.StatusSickLeave, "0", "0"),
		record(attendance.StatusSickLeave, "0", "0"),
	}, defaultRules(t))

	assertDecimal(t, "2200", b.NetSalary)
}
