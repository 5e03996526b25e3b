package employee

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
)

type EmployeeFilter struct {
	Query          string
	DepartmentID   *string
	IsActive       *bool
	IncludeDeleted bool
	pagination.Params
}

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string, includeDeleted bool) (Employee, error)
	// FindIDsByName returns ids of employees whose name contains name, case-insensitively.
	FindIDsByName(ctx context.Context, name string) ([]string, error)
	FindAll(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	SetActive(ctx context.Context, id string, active bool) error
	SoftDelete(ctx context.Context, id string) error
}
