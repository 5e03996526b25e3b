package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out, a.late_hours, a.overtime_hours,
	a.status, a.notes, a.created_at, a.updated_at, a.deleted_at,
	e.full_name, e.department_id, d.name
`

const attendanceFrom = `
	FROM attendances a
	JOIN employees e ON e.id = a.employee_id
	LEFT JOIN departments d ON d.id = e.department_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut, &att.LateHours, &att.OvertimeHours,
		&att.Status, &att.Notes, &att.CreatedAt, &att.UpdatedAt, &att.DeletedAt,
		&att.EmployeeName, &att.DepartmentID, &att.DepartmentName,
	)
	return att, err
}

func translateAttendanceError(err error, op string) error {
	if isNoRows(err) {
		return attendance.ErrAttendanceNotFound
	}
	if _, ok := uniqueViolation(err); ok {
		return attendance.ErrAttendanceExists
	}
	if _, ok := foreignKeyViolation(err); ok {
		return attendance.ErrEmployeeNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendances (id, employee_id, date, check_in, check_out, late_hours, overtime_hours, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = q.Exec(ctx, query,
		id.String(), newAttendance.EmployeeID, newAttendance.Date, newAttendance.CheckIn, newAttendance.CheckOut,
		newAttendance.LateHours, newAttendance.OvertimeHours, newAttendance.Status, newAttendance.Notes,
	)
	if err != nil {
		return attendance.Attendance{}, translateAttendanceError(err, "create attendance")
	}
	return a.GetByID(ctx, id.String(), false)
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, includeDeleted bool) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	var where whereClause
	where.add("a.id = ?", id)
	where.live("a", includeDeleted)
	att, err := scanAttendance(q.QueryRow(ctx, "SELECT "+attendanceColumns+attendanceFrom+where.String(), where.args...))
	if err != nil {
		return attendance.Attendance{}, translateAttendanceError(err, "get attendance")
	}
	return att, nil
}

// FindAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) FindAll(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	var where whereClause
	where.live("a", filter.IncludeDeleted)
	if len(filter.EmployeeIDs) > 0 {
		where.add("a.employee_id = ANY(?::uuid[])", filter.EmployeeIDs)
	}
	if filter.DepartmentID != nil {
		where.add("e.department_id = ?", *filter.DepartmentID)
	}
	if filter.DateFrom != nil {
		where.add("a.date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where.add("a.date <= ?", *filter.DateTo)
	}
	if filter.Status != nil {
		where.add("a.status = ?", *filter.Status)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+attendanceFrom+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := fmt.Sprintf("SELECT %s %s %s ORDER BY a.date DESC, e.full_name LIMIT %s OFFSET %s",
		attendanceColumns, attendanceFrom, where.String(), where.placeholder(filter.Limit), where.placeholder(filter.Offset()))
	rows, err := q.Query(ctx, query, where.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	records, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// FindByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) FindByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := "SELECT " + attendanceColumns + attendanceFrom + `
		WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3 AND ` + liveRows("a") + `
		ORDER BY a.date
	`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee attendances: %w", err)
	}
	return collectAttendances(rows)
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return records, nil
}

// ExistsForDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) ExistsForDay(ctx context.Context, employeeID string, date time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendances
			WHERE employee_id = $1 AND date = $2 AND deleted_at IS NULL
			  AND ($3 = '' OR id::text <> $3)
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance existence: %w", err)
	}
	return exists, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET date = $1, check_in = $2, check_out = $3, late_hours = $4, overtime_hours = $5,
			status = $6, notes = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
	`
	tag, err := q.Exec(ctx, query,
		att.Date, att.CheckIn, att.CheckOut, att.LateHours, att.OvertimeHours,
		att.Status, att.Notes, att.ID,
	)
	if err != nil {
		return attendance.Attendance{}, translateAttendanceError(err, "update attendance")
	}
	if tag.RowsAffected() == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a.GetByID(ctx, att.ID, false)
}

// SoftDelete implements attendance.AttendanceRepository.
func (a *attendanceRepository) SoftDelete(ctx context.Context, id string) error {
	return softDelete(ctx, GetQuerier(ctx, a.db), "attendances", "id", id, attendance.ErrAttendanceNotFound)
}
