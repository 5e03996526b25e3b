package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type salaryReportRepository struct {
	db *database.DB
}

func NewSalaryReportRepository(db *database.DB) payroll.SalaryReportRepository {
	return &salaryReportRepository{db: db}
}

const salaryReportColumns = `
	r.id, r.employee_id, r.month, r.year, r.base_salary, r.days_present, r.days_absent,
	r.holidays, r.sick_leave, r.overtime_hours, r.late_hours, r.overtime_amount,
	r.deduction_amount, r.net_salary, r.created_at, r.updated_at, r.deleted_at,
	e.full_name, e.national_id, d.name
`

const salaryReportFrom = `
	FROM salary_reports r
	JOIN employees e ON e.id = r.employee_id
	LEFT JOIN departments d ON d.id = e.department_id
`

func scanSalaryReport(row pgx.Row) (payroll.SalaryReport, error) {
	var sr payroll.SalaryReport
	err := row.Scan(
		&sr.ID, &sr.EmployeeID, &sr.Month, &sr.Year, &sr.BaseSalary, &sr.DaysPresent, &sr.DaysAbsent,
		&sr.Holidays, &sr.SickLeave, &sr.OvertimeHours, &sr.LateHours, &sr.OvertimeAmount,
		&sr.DeductionAmount, &sr.NetSalary, &sr.CreatedAt, &sr.UpdatedAt, &sr.DeletedAt,
		&sr.EmployeeName, &sr.EmployeeNationalID, &sr.DepartmentName,
	)
	return sr, err
}

func translateSalaryReportError(err error, op string) error {
	if isNoRows(err) {
		return payroll.ErrSalaryReportNotFound
	}
	if _, ok := uniqueViolation(err); ok {
		return payroll.ErrSalaryReportExists
	}
	if _, ok := foreignKeyViolation(err); ok {
		return payroll.ErrEmployeeNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// Create implements payroll.SalaryReportRepository.
func (r *salaryReportRepository) Create(ctx context.Context, report payroll.SalaryReport) (payroll.SalaryReport, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.SalaryReport{}, fmt.Errorf("failed to generate salary report id: %w", err)
	}

	query := `
		INSERT INTO salary_reports (
			id, employee_id, month, year, base_salary, days_present, days_absent, holidays, sick_leave,
			overtime_hours, late_hours, overtime_amount, deduction_amount, net_salary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = q.Exec(ctx, query,
		id.String(), report.EmployeeID, report.Month, report.Year, report.BaseSalary,
		report.DaysPresent, report.DaysAbsent, report.Holidays, report.SickLeave,
		report.OvertimeHours, report.LateHours, report.OvertimeAmount, report.DeductionAmount, report.NetSalary,
	)
	if err != nil {
		return payroll.SalaryReport{}, translateSalaryReportError(err, "create salary report")
	}
	return r.GetByID(ctx, id.String(), false)
}

// GetByID implements payroll.SalaryReportRepository.
func (r *salaryReportRepository) GetByID(ctx context.Context, id string, includeDeleted bool) (payroll.SalaryReport, error) {
	q := GetQuerier(ctx, r.db)

	var where whereClause
	where.add("r.id = ?", id)
	where.live("r", includeDeleted)
	sr, err := scanSalaryReport(q.QueryRow(ctx, "SELECT "+salaryReportColumns+salaryReportFrom+where.String(), where.args...))
	if err != nil {
		return payroll.SalaryReport{}, translateSalaryReportError(err, "get salary report")
	}
	return sr, nil
}

// ExistsForPeriod implements payroll.SalaryReportRepository.
func (r *salaryReportRepository) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM salary_reports
			WHERE employee_id = $1 AND month = $2 AND year = $3 AND deleted_at IS NULL
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, month, year).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check salary report existence: %w", err)
	}
	return exists, nil
}

// FindAll implements payroll.SalaryReportRepository.
func (r *salaryReportRepository) FindAll(ctx context.Context, filter payroll.SalaryReportFilter) ([]payroll.SalaryReport, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where whereClause
	where.live("r", filter.IncludeDeleted)
	if filter.EmployeeID != nil {
		where.add("r.employee_id = ?", *filter.EmployeeID)
	}
	if filter.Month != nil {
		where.add("r.month = ?", *filter.Month)
	}
	if filter.Year != nil {
		where.add("r.year = ?", *filter.Year)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+salaryReportFrom+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary reports: %w", err)
	}

	query := fmt.Sprintf("SELECT %s %s %s ORDER BY r.year DESC, r.month DESC, e.full_name LIMIT %s OFFSET %s",
		salaryReportColumns, salaryReportFrom, where.String(), where.placeholder(filter.Limit), where.placeholder(filter.Offset()))
	rows, err := q.Query(ctx, query, where.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salary reports: %w", err)
	}
	defer rows.Close()

	reports := make([]payroll.SalaryReport, 0)
	for rows.Next() {
		sr, err := scanSalaryReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary report: %w", err)
		}
		reports = append(reports, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate salary reports: %w", err)
	}
	return reports, total, nil
}

// SoftDelete implements payroll.SalaryReportRepository.
func (r *salaryReportRepository) SoftDelete(ctx context.Context, id string) error {
	return softDelete(ctx, GetQuerier(ctx, r.db), "salary_reports", "id", id, payroll.ErrSalaryReportNotFound)
}

// Summary implements payroll.SalaryReportRepository.
func (r *salaryReportRepository) Summary(ctx context.Context, month, year int) (payroll.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT employee_id),
			COALESCE(SUM(base_salary), 0), COALESCE(SUM(overtime_amount), 0),
			COALESCE(SUM(deduction_amount), 0), COALESCE(SUM(net_salary), 0),
			COALESCE(SUM(overtime_hours), 0), COALESCE(SUM(late_hours), 0),
			COALESCE(SUM(days_present), 0), COALESCE(SUM(days_absent), 0)
		FROM salary_reports
		WHERE month = $1 AND year = $2 AND deleted_at IS NULL
	`
	s := payroll.Summary{Month: month, Year: year}
	err := q.QueryRow(ctx, query, month, year).Scan(
		&s.EmployeeCount,
		&s.TotalBaseSalary, &s.TotalOvertimeAmount,
		&s.TotalDeductionAmount, &s.TotalNetSalary,
		&s.TotalOvertimeHours, &s.TotalLateHours,
		&s.TotalDaysPresent, &s.TotalDaysAbsent,
	)
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to summarize salary reports: %w", err)
	}
	return s, nil
}
