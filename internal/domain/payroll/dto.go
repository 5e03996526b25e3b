package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GenerateReportRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

// Validate checks shape only; the year floor is a business rule enforced by the service.
func (r *GenerateReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", ErrInvalidMonth.Error())
	}

	return errs.Err()
}

type SearchReportRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      *int   `json:"month,omitempty"`
	Year       *int   `json:"year,omitempty"`
	pagination.Params
}

func (r *SearchReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if r.Month != nil && !validator.IsValidMonth(*r.Month) {
		errs.Add("month", ErrInvalidMonth.Error())
	}
	r.Params.Validate(&errs)

	return errs.Err()
}

type SummaryRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", ErrInvalidMonth.Error())
	}
	if !validator.IsValidYear(r.Year) {
		errs.Add("year", ErrInvalidYear.Error())
	}

	return errs.Err()
}

type SalaryReportResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       *string         `json:"employee_name,omitempty"`
	EmployeeNationalID *string         `json:"employee_national_id,omitempty"`
	DepartmentName     *string         `json:"department_name,omitempty"`
	Month              int             `json:"month"`
	Year               int             `json:"year"`
	BaseSalary         decimal.Decimal `json:"base_salary"`
	DaysPresent        int             `json:"days_present"`
	DaysAbsent         int             `json:"days_absent"`
	Holidays           int             `json:"holidays"`
	SickLeave          int             `json:"sick_leave"`
	OvertimeHours      decimal.Decimal `json:"overtime_hours"`
	LateHours          decimal.Decimal `json:"late_hours"`
	OvertimeAmount     decimal.Decimal `json:"overtime_amount"`
	DeductionAmount    decimal.Decimal `json:"deduction_amount"`
	NetSalary          decimal.Decimal `json:"net_salary"`
	CreatedAt          string          `json:"created_at"`
	DeletedAt          *string         `json:"deleted_at,omitempty"`
}

func NewSalaryReportResponse(r SalaryReport) SalaryReportResponse {
	resp := SalaryReportResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		EmployeeName:       r.EmployeeName,
		EmployeeNationalID: r.EmployeeNationalID,
		DepartmentName:     r.DepartmentName,
		Month:              r.Month,
		Year:               r.Year,
		BaseSalary:         r.BaseSalary,
		DaysPresent:        r.DaysPresent,
		DaysAbsent:         r.DaysAbsent,
		Holidays:           r.Holidays,
		SickLeave:          r.SickLeave,
		OvertimeHours:      r.OvertimeHours,
		LateHours:          r.LateHours,
		OvertimeAmount:     r.OvertimeAmount,
		DeductionAmount:    r.DeductionAmount,
		NetSalary:          r.NetSalary,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
	}
	if r.DeletedAt != nil {
		s := r.DeletedAt.Format(time.RFC3339)
		resp.DeletedAt = &s
	}
	return resp
}

type SummaryResponse struct {
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	EmployeeCount        int             `json:"employee_count"`
	TotalBaseSalary      decimal.Decimal `json:"total_base_salary"`
	TotalOvertimeAmount  decimal.Decimal `json:"total_overtime_amount"`
	TotalDeductionAmount decimal.Decimal `json:"total_deduction_amount"`
	TotalNetSalary       decimal.Decimal `json:"total_net_salary"`
	TotalOvertimeHours   decimal.Decimal `json:"total_overtime_hours"`
	TotalLateHours       decimal.Decimal `json:"total_late_hours"`
	TotalDaysPresent     int             `json:"total_days_present"`
	TotalDaysAbsent      int             `json:"total_days_absent"`
}

func NewSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse(s)
}
