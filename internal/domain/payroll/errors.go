package payroll

import "errors"

var (
	ErrSalaryReportNotFound = errors.New("salary report not found")
	ErrSalaryReportExists   = errors.New("salary report already exists for this month and year")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrInvalidYear          = errors.New("year must be 2008 or later")
	ErrInvalidMonth         = errors.New("month must be between 1 and 12")
)
