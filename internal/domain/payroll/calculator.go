package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// Rules are the settings a salary calculation depends on.
type Rules struct {
	Weekend             calendar.WeekendSet
	WorkingHoursPerDay  decimal.Decimal
	OvertimeMultiplier  decimal.Decimal
	DeductionMultiplier decimal.Decimal
}

// Breakdown is the result of a salary calculation.
type Breakdown struct {
	WorkingDays     int
	DaysPresent     int
	DaysAbsent      int
	Holidays        int
	SickLeave       int
	OvertimeHours   decimal.Decimal
	LateHours       decimal.Decimal
	HourlyRate      decimal.Decimal
	DailyRate       decimal.Decimal
	OvertimeAmount  decimal.Decimal
	DeductionAmount decimal.Decimal
	AbsentPenalty   decimal.Decimal
	NetSalary       decimal.Decimal
}

// Tally counts attendance records by status and sums their hours.
func Tally(records []attendance.Attendance) Breakdown {
	b := Breakdown{OvertimeHours: decimal.Zero, LateHours: decimal.Zero}
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			b.DaysPresent++
		case attendance.StatusAbsent:
			b.DaysAbsent++
		case attendance.StatusHoliday:
			b.Holidays++
		case attendance.StatusSickLeave:
			b.SickLeave++
		}
		b.OvertimeHours = b.OvertimeHours.Add(rec.OvertimeHours)
		b.LateHours = b.LateHours.Add(rec.LateHours)
	}
	return b
}

// Calculate computes the salary of one month from its attendance records.
//
//	hourlyRate      = base / (workingDays * hoursPerDay)
//	overtimeAmount  = round2(hourlyRate * overtimeHours * overtimeMultiplier)
//	deductionAmount = round2(hourlyRate * lateHours * deductionMultiplier)
//	absentPenalty   = base / workingDays * daysAbsent
//	netSalary       = round2(max(0, base + overtime - deduction - absentPenalty))
//
// Holidays and sick leave are not penalised. A month without working days
// yields zero rates.
func Calculate(year int, month time.Month, baseSalary decimal.Decimal, records []attendance.Attendance, rules Rules) Breakdown {
	b := Tally(records)
	b.WorkingDays = calendar.WorkingDays(year, month, rules.Weekend)

	b.HourlyRate = decimal.Zero
	b.DailyRate = decimal.Zero
	if b.WorkingDays > 0 {
		days := decimal.NewFromInt(int64(b.WorkingDays))
		b.DailyRate = baseSalary.Div(days)
		if hours := days.Mul(rules.WorkingHoursPerDay); hours.IsPositive() {
			b.HourlyRate = baseSalary.Div(hours)
		}
	}

	b.OvertimeAmount = b.HourlyRate.Mul(b.OvertimeHours).Mul(rules.OvertimeMultiplier).Round(2)
	b.DeductionAmount = b.HourlyRate.Mul(b.LateHours).Mul(rules.DeductionMultiplier).Round(2)
	b.AbsentPenalty = b.DailyRate.Mul(decimal.NewFromInt(int64(b.DaysAbsent)))

	b.NetSalary = netSalary(baseSalary, b.OvertimeAmount, b.DeductionAmount, b.AbsentPenalty)
	b.OvertimeHours = b.OvertimeHours.Round(2)
	b.LateHours = b.LateHours.Round(2)
	return b
}

func netSalary(base, overtimeAmount, deductionAmount, absentPenalty decimal.Decimal) decimal.Decimal {
	net := base.Add(overtimeAmount).Sub(deductionAmount).Sub(absentPenalty)
	return decimal.Max(decimal.Zero, net).Round(2)
}
