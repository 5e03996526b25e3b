package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/google/uuid"
)

// FoundingYear is the earliest year any business date may carry.
const FoundingYear = 2008

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when no errors were collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(calendar.DateLayout, dateStr)
	return date, err == nil
}

// IsValidNationalID checks a 14 digit national identity number.
func IsValidNationalID(id string) bool {
	return len(id) == 14 && IsNumeric(id)
}

// IsValidPhoneNumber checks an 11 digit local mobile number.
func IsValidPhoneNumber(phone string) bool {
	return len(phone) == 11 && IsNumeric(phone)
}

// IsValidClock checks an "HH:mm" 24-hour time.
func IsValidClock(s string) bool {
	return calendar.IsValidClock(s)
}

func IsValidYear(year int) bool {
	return year >= FoundingYear
}

func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{7,20}$`)

// IsValidUsername allows 7-20 chars of A-Z, a-z, 0-9, ., _, -
func IsValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// AgeAt returns the number of full years between birth and at.
func AgeAt(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age
}
