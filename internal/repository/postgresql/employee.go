package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.full_name, e.national_id, e.phone, e.address, e.birth_date, e.gender, e.nationality,
	e.contract_date, e.base_salary, e.check_in_time, e.check_out_time, e.department_id, e.is_active,
	e.created_at, e.updated_at, e.deleted_at, d.name
`

const employeeFrom = `
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.FullName, &e.NationalID, &e.Phone, &e.Address, &e.BirthDate, &e.Gender, &e.Nationality,
		&e.ContractDate, &e.BaseSalary, &e.CheckInTime, &e.CheckOutTime, &e.DepartmentID, &e.IsActive,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt, &e.DepartmentName,
	)
	return e, err
}

func translateEmployeeError(err error, op string) error {
	if isNoRows(err) {
		return employee.ErrEmployeeNotFound
	}
	if _, ok := uniqueViolation(err); ok {
		return employee.ErrNationalIDExists
	}
	if _, ok := foreignKeyViolation(err); ok {
		return employee.ErrDepartmentNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to generate employee id: %w", err)
	}

	query := `
		INSERT INTO employees (
			id, full_name, national_id, phone, address, birth_date, gender, nationality,
			contract_date, base_salary, check_in_time, check_out_time, department_id, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = q.Exec(ctx, query,
		id.String(), e.FullName, e.NationalID, e.Phone, e.Address, e.BirthDate, e.Gender, e.Nationality,
		e.ContractDate, e.BaseSalary, e.CheckInTime, e.CheckOutTime, e.DepartmentID, e.IsActive,
	)
	if err != nil {
		return employee.Employee{}, translateEmployeeError(err, "create employee")
	}
	return r.GetByID(ctx, id.String(), false)
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, includeDeleted bool) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var where whereClause
	where.add("e.id = ?", id)
	where.live("e", includeDeleted)
	e, err := scanEmployee(q.QueryRow(ctx, "SELECT "+employeeColumns+employeeFrom+where.String(), where.args...))
	if err != nil {
		return employee.Employee{}, translateEmployeeError(err, "get employee")
	}
	return e, nil
}

// FindIDsByName implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) FindIDsByName(ctx context.Context, name string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM employees WHERE full_name ILIKE $1 AND deleted_at IS NULL`, "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to find employees by name: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect employee ids: %w", err)
	}
	return ids, nil
}

// FindAll implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) FindAll(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where whereClause
	where.live("e", filter.IncludeDeleted)
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		where.add("(e.full_name ILIKE ? OR e.national_id LIKE ? OR e.phone LIKE ?)", pattern, pattern, pattern)
	}
	if filter.DepartmentID != nil {
		where.add("e.department_id = ?", *filter.DepartmentID)
	}
	if filter.IsActive != nil {
		where.add("e.is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+employeeFrom+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf("SELECT %s %s %s ORDER BY e.full_name LIMIT %s OFFSET %s",
		employeeColumns, employeeFrom, where.String(), where.placeholder(filter.Limit), where.placeholder(filter.Offset()))
	rows, err := q.Query(ctx, query, where.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListByDepartment implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByDepartment(ctx context.Context, departmentID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + employeeColumns + employeeFrom + " WHERE e.department_id = $1 AND " + liveRows("e") + " ORDER BY e.full_name"
	rows, err := q.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by department: %w", err)
	}
	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $1, national_id = $2, phone = $3, address = $4, birth_date = $5, gender = $6,
			nationality = $7, contract_date = $8, base_salary = $9, check_in_time = $10, check_out_time = $11,
			department_id = $12, updated_at = NOW()
		WHERE id = $13 AND deleted_at IS NULL
	`
	tag, err := q.Exec(ctx, query,
		e.FullName, e.NationalID, e.Phone, e.Address, e.BirthDate, e.Gender,
		e.Nationality, e.ContractDate, e.BaseSalary, e.CheckInTime, e.CheckOutTime,
		e.DepartmentID, e.ID,
	)
	if err != nil {
		return employee.Employee{}, translateEmployeeError(err, "update employee")
	}
	if tag.RowsAffected() == 0 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.GetByID(ctx, e.ID, false)
}

// SetActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET is_active = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`, active, id)
	if err != nil {
		return fmt.Errorf("failed to set employee status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SoftDelete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	return softDelete(ctx, GetQuerier(ctx, r.db), "employees", "id", id, employee.ErrEmployeeNotFound)
}
