package payroll

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
)

type SalaryReportService interface {
	Generate(ctx context.Context, req GenerateReportRequest) (SalaryReportResponse, error)
	FindAll(ctx context.Context, filter SalaryReportFilter) (pagination.Page[SalaryReportResponse], error)
	FindByID(ctx context.Context, id string) (SalaryReportResponse, error)
	Search(ctx context.Context, req SearchReportRequest) (pagination.Page[SalaryReportResponse], error)
	SoftDelete(ctx context.Context, id string) error
	Summary(ctx context.Context, req SummaryRequest) (SummaryResponse, error)
}

// RulesSource supplies the payroll rules in effect.
type RulesSource interface {
	PayrollRules(ctx context.Context) (Rules, error)
}
