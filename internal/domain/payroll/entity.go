package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryReport is the salary of one employee for one month. It is generated
// once and never recomputed; regeneration requires deleting it first.
type SalaryReport struct {
	ID              string
	EmployeeID      string
	Month           int
	Year            int
	BaseSalary      decimal.Decimal
	DaysPresent     int
	DaysAbsent      int
	Holidays        int
	SickLeave       int
	OvertimeHours   decimal.Decimal
	LateHours       decimal.Decimal
	OvertimeAmount  decimal.Decimal
	DeductionAmount decimal.Decimal
	NetSalary       decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time

	// Join
	EmployeeName       *string
	EmployeeNationalID *string
	DepartmentName     *string
}

// ApplyBreakdown copies computed figures into the report.
func (r *SalaryReport) ApplyBreakdown(b Breakdown) {
	r.DaysPresent = b.DaysPresent
	r.DaysAbsent = b.DaysAbsent
	r.Holidays = b.Holidays
	r.SickLeave = b.SickLeave
	r.OvertimeHours = b.OvertimeHours
	r.LateHours = b.LateHours
	r.OvertimeAmount = b.OvertimeAmount
	r.DeductionAmount = b.DeductionAmount
	r.NetSalary = b.NetSalary
}

// Summary aggregates the live reports of one month.
type Summary struct {
	Month                int
	Year                 int
	EmployeeCount        int
	TotalBaseSalary      decimal.Decimal
	TotalOvertimeAmount  decimal.Decimal
	TotalDeductionAmount decimal.Decimal
	TotalNetSalary       decimal.Decimal
	TotalOvertimeHours   decimal.Decimal
	TotalLateHours       decimal.Decimal
	TotalDaysPresent     int
	TotalDaysAbsent      int
}
