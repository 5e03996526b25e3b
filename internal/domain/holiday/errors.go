package holiday

import "errors"

var (
	ErrHolidayNotFound     = errors.New("official holiday not found")
	ErrHolidayNameExists   = errors.New("an official holiday with this name already exists for the year")
	ErrHolidayYearMismatch = errors.New("holiday date must fall in the given year")
)
