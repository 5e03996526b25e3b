package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type SalaryReportServiceImpl struct {
	reportRepo     payroll.SalaryReportRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	rules          payroll.RulesSource
}

func NewSalaryReportService(
	reportRepo payroll.SalaryReportRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	rules payroll.RulesSource,
) payroll.SalaryReportService {
	return &SalaryReportServiceImpl{
		reportRepo:     reportRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		rules:          rules,
	}
}

// Generate implements payroll.SalaryReportService. The base salary is copied
// into the report so later salary changes leave it untouched.
func (s *SalaryReportServiceImpl) Generate(ctx context.Context, req payroll.GenerateReportRequest) (payroll.SalaryReportResponse, error) {
	if !validator.IsValidYear(req.Year) {
		return payroll.SalaryReportResponse{}, payroll.ErrInvalidYear
	}

	exists, err := s.reportRepo.ExistsForPeriod(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return payroll.SalaryReportResponse{}, err
	}
	if exists {
		return payroll.SalaryReportResponse{}, payroll.ErrSalaryReportExists
	}

	var (
		emp     employee.Employee
		records []attendance.Attendance
		rules   payroll.Rules
	)
	month := time.Month(req.Month)
	from, to := calendar.MonthRange(req.Year, month)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		emp, err = s.employeeRepo.GetByID(gctx, req.EmployeeID, false)
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.ErrEmployeeNotFound
		}
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.FindByEmployeeAndRange(gctx, req.EmployeeID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = s.rules.PayrollRules(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return payroll.SalaryReportResponse{}, err
	}

	breakdown := payroll.Calculate(req.Year, month, emp.BaseSalary, records, rules)
	if breakdown.WorkingDays == 0 {
		slog.Warn("salary generated for a month without working days", "employee_id", emp.ID, "month", req.Month, "year", req.Year)
	}

	report := payroll.SalaryReport{
		EmployeeID: emp.ID,
		Month:      req.Month,
		Year:       req.Year,
		BaseSalary: emp.BaseSalary,
	}
	report.ApplyBreakdown(breakdown)

	created, err := s.reportRepo.Create(ctx, report)
	if err != nil {
		return payroll.SalaryReportResponse{}, err
	}

	metrics.SalaryReportsGenerated.Inc()
	return payroll.NewSalaryReportResponse(created), nil
}

// FindAll implements payroll.SalaryReportService.
func (s *SalaryReportServiceImpl) FindAll(ctx context.Context, filter payroll.SalaryReportFilter) (pagination.Page[payroll.SalaryReportResponse], error) {
	reports, total, err := s.reportRepo.FindAll(ctx, filter)
	if err != nil {
		return pagination.Page[payroll.SalaryReportResponse]{}, fmt.Errorf("failed to list salary reports: %w", err)
	}

	responses := make([]payroll.SalaryReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, payroll.NewSalaryReportResponse(r))
	}
	return pagination.NewPage(responses, total, filter.Params), nil
}

// FindByID implements payroll.SalaryReportService.
func (s *SalaryReportServiceImpl) FindByID(ctx context.Context, id string) (payroll.SalaryReportResponse, error) {
	r, err := s.reportRepo.GetByID(ctx, id, false)
	if err != nil {
		return payroll.SalaryReportResponse{}, err
	}
	return payroll.NewSalaryReportResponse(r), nil
}

// Search implements payroll.SalaryReportService.
func (s *SalaryReportServiceImpl) Search(ctx context.Context, req payroll.SearchReportRequest) (pagination.Page[payroll.SalaryReportResponse], error) {
	if req.Year != nil && !validator.IsValidYear(*req.Year) {
		return pagination.Page[payroll.SalaryReportResponse]{}, payroll.ErrInvalidYear
	}

	filter := payroll.SalaryReportFilter{Month: req.Month, Year: req.Year, Params: req.Params}
	if req.EmployeeID != "" {
		if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, true); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return pagination.Page[payroll.SalaryReportResponse]{}, payroll.ErrEmployeeNotFound
			}
			return pagination.Page[payroll.SalaryReportResponse]{}, err
		}
		filter.EmployeeID = &req.EmployeeID
	}
	return s.FindAll(ctx, filter)
}

// SoftDelete implements payroll.SalaryReportService.
func (s *SalaryReportServiceImpl) SoftDelete(ctx context.Context, id string) error {
	return s.reportRepo.SoftDelete(ctx, id)
}

// Summary implements payroll.SalaryReportService.
func (s *SalaryReportServiceImpl) Summary(ctx context.Context, req payroll.SummaryRequest) (payroll.SummaryResponse, error) {
	summary, err := s.reportRepo.Summary(ctx, req.Month, req.Year)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}
	return payroll.NewSummaryResponse(summary), nil
}
