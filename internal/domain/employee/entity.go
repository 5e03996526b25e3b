package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	FullName     string
	NationalID   string
	Phone        string
	Address      *string
	BirthDate    time.Time
	Gender       Gender
	Nationality  string
	ContractDate time.Time
	BaseSalary   decimal.Decimal
	CheckInTime  string
	CheckOutTime string
	DepartmentID string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time

	// Join
	DepartmentName *string
}

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

func (g Gender) IsValid() bool {
	return g == Male || g == Female
}

// Schedule is the part of an employee the attendance and salary calculations read.
type Schedule struct {
	CheckInTime  string
	CheckOutTime string
}

func (e Employee) Schedule() Schedule {
	return Schedule{CheckInTime: e.CheckInTime, CheckOutTime: e.CheckOutTime}
}
