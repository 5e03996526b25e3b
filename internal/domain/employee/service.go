package employee

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
)

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	FindAll(ctx context.Context, filter EmployeeFilter) (pagination.Page[EmployeeResponse], error)
	FindByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	SoftDelete(ctx context.Context, id string) error
	Search(ctx context.Context, filter EmployeeFilter) (pagination.Page[EmployeeResponse], error)
	ListByDepartment(ctx context.Context, departmentID string) ([]EmployeeResponse, error)
	ToggleStatus(ctx context.Context, id string) (EmployeeResponse, error)
}
