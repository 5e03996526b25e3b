package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent   Status = "present"
	StatusAbsent    Status = "absent"
	StatusHoliday   Status = "holiday"
	StatusSickLeave Status = "sick_leave"
)

var Statuses = []Status{StatusPresent, StatusAbsent, StatusHoliday, StatusSickLeave}

func (s Status) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Attendance is one employee's record for one calendar day.
type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	CheckIn       *string
	CheckOut      *string
	LateHours     decimal.Decimal
	OvertimeHours decimal.Decimal
	Status        Status
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time

	// Join
	EmployeeName   *string
	DepartmentID   *string
	DepartmentName *string
}
