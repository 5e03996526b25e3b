package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Status     *Status `json:"status,omitempty"`
	Notes      *string `json:"notes,omitempty"`

	DateParsed time.Time `json:"-"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if d, ok := validateDate(&errs, "date", r.Date); ok {
		r.DateParsed = d
	}
	r.CheckIn = normalizeClock(&errs, "check_in", r.CheckIn)
	r.CheckOut = normalizeClock(&errs, "check_out", r.CheckOut)
	if r.Status != nil && !r.Status.IsValid() {
		errs.Add("status", "status must be one of present, absent, holiday, sick_leave")
	}
	if r.Notes != nil && len(*r.Notes) > 500 {
		errs.Add("notes", "notes must not exceed 500 characters")
	}

	return errs.Err()
}

// RequestedStatus returns the explicit status or the empty status when none was sent.
func (r CreateAttendanceRequest) RequestedStatus() Status {
	if r.Status == nil {
		return ""
	}
	return *r.Status
}

type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	Date     *string `json:"date,omitempty"`
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
	Status   *Status `json:"status,omitempty"`
	Notes    *string `json:"notes,omitempty"`

	DateParsed *time.Time `json:"-"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.Date != nil {
		if d, ok := validateDate(&errs, "date", *r.Date); ok {
			r.DateParsed = &d
		}
	}
	r.CheckIn = normalizeClock(&errs, "check_in", r.CheckIn)
	r.CheckOut = normalizeClock(&errs, "check_out", r.CheckOut)
	if r.Status != nil && !r.Status.IsValid() {
		errs.Add("status", "status must be one of present, absent, holiday, sick_leave")
	}
	if r.Notes != nil && len(*r.Notes) > 500 {
		errs.Add("notes", "notes must not exceed 500 characters")
	}

	return errs.Err()
}

type ListAttendanceRequest struct {
	Status         *Status
	IncludeDeleted bool
	pagination.Params
}

func (r *ListAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !r.Status.IsValid() {
		errs.Add("status", "status must be one of present, absent, holiday, sick_leave")
	}
	r.Params.Validate(&errs)

	return errs.Err()
}

type SearchAttendanceRequest struct {
	EmployeeName string `json:"employee_name"`
	EmployeeID   string `json:"employee_id"`
	DepartmentID string `json:"department_id"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
	pagination.Params

	DateFromParsed *time.Time `json:"-"`
	DateToParsed   *time.Time `json:"-"`
}

func (r *SearchAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeName = strings.TrimSpace(r.EmployeeName)
	if r.EmployeeName == "" && r.EmployeeID == "" && r.DepartmentID == "" && r.DateFrom == "" && r.DateTo == "" {
		return ErrSearchFilterRequired
	}
	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if r.DepartmentID != "" && !validator.IsValidUUID(r.DepartmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}
	if r.DateFrom != "" {
		if d, ok := validateDate(&errs, "date_from", r.DateFrom); ok {
			r.DateFromParsed = &d
		}
	}
	if r.DateTo != "" {
		if d, ok := validateDate(&errs, "date_to", r.DateTo); ok {
			r.DateToParsed = &d
		}
	}
	r.Params.Validate(&errs)
	if err := errs.Err(); err != nil {
		return err
	}

	if r.DateFromParsed != nil && r.DateToParsed != nil && r.DateFromParsed.After(*r.DateToParsed) {
		return ErrInvalidDateRange
	}
	return nil
}

type StatisticsRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *StatisticsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if !validator.IsValidYear(r.Year) {
		errs.Add("year", "year must be 2008 or later")
	}

	return errs.Err()
}

func validateDate(errs *validator.ValidationErrors, field, s string) (time.Time, bool) {
	if validator.IsEmpty(s) {
		errs.Add(field, field+" is required")
		return time.Time{}, false
	}
	d, ok := validator.IsValidDate(s)
	if !ok {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	if d.Year() < validator.FoundingYear {
		errs.Add(field, field+" must not be before 2008")
		return time.Time{}, false
	}
	return d, true
}

// normalizeClock treats a blank time as absent and checks the HH:mm format.
func normalizeClock(errs *validator.ValidationErrors, field string, v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	if !validator.IsValidClock(s) {
		errs.Add(field, field+" must be in HH:mm format")
	}
	return &s
}

type AttendanceResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   *string         `json:"employee_name,omitempty"`
	DepartmentID   *string         `json:"department_id,omitempty"`
	DepartmentName *string         `json:"department_name,omitempty"`
	Date           string          `json:"date"`
	CheckIn        *string         `json:"check_in,omitempty"`
	CheckOut       *string         `json:"check_out,omitempty"`
	LateHours      decimal.Decimal `json:"late_hours"`
	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	Status         Status          `json:"status"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
	DeletedAt      *string         `json:"deleted_at,omitempty"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		DepartmentID:   a.DepartmentID,
		DepartmentName: a.DepartmentName,
		Date:           a.Date.Format(calendar.DateLayout),
		CheckIn:        a.CheckIn,
		CheckOut:       a.CheckOut,
		LateHours:      a.LateHours,
		OvertimeHours:  a.OvertimeHours,
		Status:         a.Status,
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
	if a.DeletedAt != nil {
		s := a.DeletedAt.Format(time.RFC3339)
		resp.DeletedAt = &s
	}
	return resp
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []ImportRowError `json:"errors"`
}

type StatisticsResponse struct {
	EmployeeID         string          `json:"employee_id"`
	Month              int             `json:"month"`
	Year               int             `json:"year"`
	TotalDays          int             `json:"total_days"`
	PresentDays        int             `json:"present_days"`
	AbsentDays         int             `json:"absent_days"`
	HolidayDays        int             `json:"holiday_days"`
	SickLeaveDays      int             `json:"sick_leave_days"`
	TotalLateHours     decimal.Decimal `json:"total_late_hours"`
	TotalOvertimeHours decimal.Decimal `json:"total_overtime_hours"`
}
