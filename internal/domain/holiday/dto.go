package holiday

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Year        int     `json:"year"`
	IsRecurring bool    `json:"is_recurring"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}
	if !validator.IsValidYear(r.Year) {
		errs.Add("year", "year must be 2008 or later")
	}
	validateDate(&errs, r.Date, r.Year)

	return errs.Err()
}

type UpdateHolidayRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Date        *string `json:"date,omitempty"`
	Year        *int    `json:"year,omitempty"`
	IsRecurring *bool   `json:"is_recurring,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
		if name == "" {
			errs.Add("name", "name must not be empty")
		}
	}
	if r.Year != nil && !validator.IsValidYear(*r.Year) {
		errs.Add("year", "year must be 2008 or later")
	}
	if r.Date != nil {
		year := 0
		if r.Year != nil {
			year = *r.Year
		}
		validateDate(&errs, *r.Date, year)
	}

	return errs.Err()
}

// validateDate checks the date format and, when year is set, that the date lies in it.
func validateDate(errs *validator.ValidationErrors, date string, year int) {
	if validator.IsEmpty(date) {
		errs.Add("date", "date is required")
		return
	}
	d, ok := validator.IsValidDate(date)
	if !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
		return
	}
	if d.Year() < validator.FoundingYear {
		errs.Add("date", "date must not be before 2008")
	} else if year != 0 && d.Year() != year {
		errs.Add("date", ErrHolidayYearMismatch.Error())
	}
}

type HolidayResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Year        int     `json:"year"`
	IsRecurring bool    `json:"is_recurring"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	DeletedAt   *string `json:"deleted_at,omitempty"`
}

func NewHolidayResponse(h OfficialHoliday) HolidayResponse {
	resp := HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date.Format(calendar.DateLayout),
		Year:        h.Year,
		IsRecurring: h.IsRecurring,
		Description: h.Description,
		CreatedAt:   h.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   h.UpdatedAt.Format(time.RFC3339),
	}
	if h.DeletedAt != nil {
		s := h.DeletedAt.Format(time.RFC3339)
		resp.DeletedAt = &s
	}
	return resp
}
