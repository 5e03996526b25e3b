package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
)

type AttendanceFilter struct {
	EmployeeIDs    []string
	DepartmentID   *string
	DateFrom       *time.Time
	DateTo         *time.Time
	Status         *Status
	IncludeDeleted bool
	pagination.Params
}

type AttendanceRepository interface {
	Create(ctx context.Context, a Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string, includeDeleted bool) (Attendance, error)
	FindAll(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	// FindByEmployeeAndRange returns the live records of an employee with from <= date <= to.
	FindByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	ExistsForDay(ctx context.Context, employeeID string, date time.Time, excludeID string) (bool, error)
	Update(ctx context.Context, a Attendance) (Attendance, error)
	SoftDelete(ctx context.Context, id string) error
}
