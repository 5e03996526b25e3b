package payroll

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
)

type SalaryReportFilter struct {
	EmployeeID     *string
	Month          *int
	Year           *int
	IncludeDeleted bool
	pagination.Params
}

type SalaryReportRepository interface {
	Create(ctx context.Context, r SalaryReport) (SalaryReport, error)
	GetByID(ctx context.Context, id string, includeDeleted bool) (SalaryReport, error)
	ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error)
	FindAll(ctx context.Context, filter SalaryReportFilter) ([]SalaryReport, int64, error)
	SoftDelete(ctx context.Context, id string) error
	Summary(ctx context.Context, month, year int) (Summary, error)
}
