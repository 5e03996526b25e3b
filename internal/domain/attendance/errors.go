package attendance

import "errors"

var (
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrAttendanceExists      = errors.New("attendance already recorded for this employee on this date")
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrCheckInRequired       = errors.New("check_in is required when status is present")
	ErrInvalidSchedule       = errors.New("employee schedule is not a valid HH:mm pair")
	ErrInvalidDateRange      = errors.New("date_from must not be after date_to")
	ErrSearchFilterRequired  = errors.New("at least one search filter is required")
	ErrNoEmployeesMatchName  = errors.New("no employees match the given name")
	ErrImportFileRequired    = errors.New("an .xlsx file is required")
	ErrImportFileUnreadable  = errors.New("uploaded file is not a readable .xlsx workbook")
	ErrImportRowMissingField = errors.New("employee id and date are required")
)
