package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrNationalIDExists       = errors.New("national id already registered")
	ErrDepartmentNotFound     = errors.New("department not found")
	ErrMinimumAge             = errors.New("employee must be at least 20 years old")
	ErrCheckOutBeforeCheckIn  = errors.New("check_out_time must be after check_in_time")
	ErrEmployeeSearchRequired = errors.New("search query is required")
)
