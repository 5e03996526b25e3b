package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MinimumAge is the youngest age at which an employee may be registered.
const MinimumAge = 20

var contractFloor = time.Date(validator.FoundingYear, time.January, 1, 0, 0, 0, 0, time.UTC)

type CreateEmployeeRequest struct {
	FullName     string          `json:"full_name"`
	NationalID   string          `json:"national_id"`
	Phone        string          `json:"phone"`
	Address      *string         `json:"address,omitempty"`
	BirthDate    string          `json:"birth_date"`
	Gender       Gender          `json:"gender"`
	Nationality  string          `json:"nationality"`
	ContractDate string          `json:"contract_date"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	CheckInTime  string          `json:"check_in_time"`
	CheckOutTime string          `json:"check_out_time"`
	DepartmentID string          `json:"department_id"`

	// Parsed by Validate
	BirthDateParsed    time.Time `json:"-"`
	ContractDateParsed time.Time `json:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.FullName = strings.TrimSpace(r.FullName)
	r.Nationality = strings.TrimSpace(r.Nationality)
	r.Gender = Gender(strings.ToLower(string(r.Gender)))

	validateFullName(&errs, r.FullName)
	if !validator.IsValidNationalID(r.NationalID) {
		errs.Add("national_id", "national_id must be exactly 14 digits")
	}
	if !validator.IsValidPhoneNumber(r.Phone) {
		errs.Add("phone", "phone must be exactly 11 digits")
	}
	if t, ok := validateBirthDate(&errs, r.BirthDate); ok {
		r.BirthDateParsed = t
	}
	if !r.Gender.IsValid() {
		errs.Add("gender", "gender must be male or female")
	}
	if validator.IsEmpty(r.Nationality) {
		errs.Add("nationality", "nationality is required")
	}
	if t, ok := validateContractDate(&errs, r.ContractDate); ok {
		r.ContractDateParsed = t
	}
	if r.BaseSalary.IsNegative() {
		errs.Add("base_salary", "base_salary must not be negative")
	}
	validateSchedule(&errs, r.CheckInTime, r.CheckOutTime)
	if !validator.IsValidUUID(r.DepartmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID           string           `json:"-"`
	FullName     *string          `json:"full_name,omitempty"`
	NationalID   *string          `json:"national_id,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	Address      *string          `json:"address,omitempty"`
	BirthDate    *string          `json:"birth_date,omitempty"`
	Gender       *Gender          `json:"gender,omitempty"`
	Nationality  *string          `json:"nationality,omitempty"`
	ContractDate *string          `json:"contract_date,omitempty"`
	BaseSalary   *decimal.Decimal `json:"base_salary,omitempty"`
	CheckInTime  *string          `json:"check_in_time,omitempty"`
	CheckOutTime *string          `json:"check_out_time,omitempty"`
	DepartmentID *string          `json:"department_id,omitempty"`

	BirthDateParsed    *time.Time `json:"-"`
	ContractDateParsed *time.Time `json:"-"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.FullName != nil {
		v := strings.TrimSpace(*r.FullName)
		r.FullName = &v
		validateFullName(&errs, v)
	}
	if r.NationalID != nil && !validator.IsValidNationalID(*r.NationalID) {
		errs.Add("national_id", "national_id must be exactly 14 digits")
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "phone must be exactly 11 digits")
	}
	if r.BirthDate != nil {
		if t, ok := validateBirthDate(&errs, *r.BirthDate); ok {
			r.BirthDateParsed = &t
		}
	}
	if r.Gender != nil {
		g := Gender(strings.ToLower(string(*r.Gender)))
		r.Gender = &g
		if !g.IsValid() {
			errs.Add("gender", "gender must be male or female")
		}
	}
	if r.Nationality != nil && validator.IsEmpty(*r.Nationality) {
		errs.Add("nationality", "nationality must not be empty")
	}
	if r.ContractDate != nil {
		if t, ok := validateContractDate(&errs, *r.ContractDate); ok {
			r.ContractDateParsed = &t
		}
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs.Add("base_salary", "base_salary must not be negative")
	}
	if r.CheckInTime != nil && !validator.IsValidClock(*r.CheckInTime) {
		errs.Add("check_in_time", "check_in_time must be in HH:mm format")
	}
	if r.CheckOutTime != nil && !validator.IsValidClock(*r.CheckOutTime) {
		errs.Add("check_out_time", "check_out_time must be in HH:mm format")
	}
	if r.DepartmentID != nil && !validator.IsValidUUID(*r.DepartmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}

	return errs.Err()
}

func validateFullName(errs *validator.ValidationErrors, name string) {
	if validator.IsEmpty(name) {
		errs.Add("full_name", "full_name is required")
	} else if len(name) < 2 || len(name) > 100 {
		errs.Add("full_name", "full_name must be between 2 and 100 characters")
	}
}

func validateBirthDate(errs *validator.ValidationErrors, s string) (time.Time, bool) {
	t, ok := validator.IsValidDate(s)
	if !ok {
		errs.Add("birth_date", "birth_date must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	if validator.AgeAt(t, time.Now()) < MinimumAge {
		errs.Add("birth_date", ErrMinimumAge.Error())
		return time.Time{}, false
	}
	return t, true
}

func validateContractDate(errs *validator.ValidationErrors, s string) (time.Time, bool) {
	t, ok := validator.IsValidDate(s)
	if !ok {
		errs.Add("contract_date", "contract_date must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	if t.Before(contractFloor) {
		errs.Add("contract_date", "contract_date must not be before 2008-01-01")
		return time.Time{}, false
	}
	return t, true
}

func validateSchedule(errs *validator.ValidationErrors, checkIn, checkOut string) {
	in, inErr := calendar.ParseClock(checkIn)
	if inErr != nil {
		errs.Add("check_in_time", "check_in_time must be in HH:mm format")
	}
	out, outErr := calendar.ParseClock(checkOut)
	if outErr != nil {
		errs.Add("check_out_time", "check_out_time must be in HH:mm format")
	}
	if inErr == nil && outErr == nil && out <= in {
		errs.Add("check_out_time", ErrCheckOutBeforeCheckIn.Error())
	}
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	FullName       string          `json:"full_name"`
	NationalID     string          `json:"national_id"`
	Phone          string          `json:"phone"`
	Address        *string         `json:"address,omitempty"`
	BirthDate      string          `json:"birth_date"`
	Gender         Gender          `json:"gender"`
	Nationality    string          `json:"nationality"`
	ContractDate   string          `json:"contract_date"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	CheckInTime    string          `json:"check_in_time"`
	CheckOutTime   string          `json:"check_out_time"`
	DepartmentID   string          `json:"department_id"`
	DepartmentName *string         `json:"department_name,omitempty"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
	DeletedAt      *string         `json:"deleted_at,omitempty"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             e.ID,
		FullName:       e.FullName,
		NationalID:     e.NationalID,
		Phone:          e.Phone,
		Address:        e.Address,
		BirthDate:      e.BirthDate.Format(calendar.DateLayout),
		Gender:         e.Gender,
		Nationality:    e.Nationality,
		ContractDate:   e.ContractDate.Format(calendar.DateLayout),
		BaseSalary:     e.BaseSalary,
		CheckInTime:    e.CheckInTime,
		CheckOutTime:   e.CheckOutTime,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.Format(time.RFC3339),
	}
	if e.DeletedAt != nil {
		s := e.DeletedAt.Format(time.RFC3339)
		resp.DeletedAt = &s
	}
	return resp
}
