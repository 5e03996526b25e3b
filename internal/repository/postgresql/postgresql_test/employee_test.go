package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createEmployee(t *testing.T, repo employee.EmployeeRepository, departmentID, nationalID string) employee.Employee {
	t.Helper()

	e, err := repo.Create(context.Background(), employee.Employee{
		FullName:     "Ahmed Salem",
		NationalID:   nationalID,
		Phone:        "01012345678",
		BirthDate:    time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		Gender:       employee.Male,
		Nationality:  "Egyptian",
		ContractDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		BaseSalary:   decimal.NewFromInt(3000),
		CheckInTime:  "09:00",
		CheckOutTime: "17:00",
		DepartmentID: departmentID,
		IsActive:     true,
	})
	require.NoError(t, err)
	return e
}

func TestEmployeeRepository_SoftDeleteHidesRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	dept, err := postgresql.NewDepartmentRepository(db).Create(ctx, department.Department{Name: "Engineering"})
	require.NoError(t, err)

	repo := postgresql.NewEmployeeRepository(db)
	e := createEmployee(t, repo, dept.ID, "29001011234567")
	assert.Equal(t, "Engineering", *e.DepartmentName)

	require.NoError(t, repo.SoftDelete(ctx, e.ID))

	_, err = repo.GetByID(ctx, e.ID, false)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	deleted, err := repo.GetByID(ctx, e.ID, true)
	require.NoError(t, err)
	assert.NotNil(t, deleted.DeletedAt)

	// deleting twice reports not found
	assert.ErrorIs(t, repo.SoftDelete(ctx, e.ID), employee.ErrEmployeeNotFound)

	// the national id is free again once the holder is deleted
	createEmployee(t, repo, dept.ID, "29001011234567")
}

func TestEmployeeRepository_DuplicateNationalID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	dept, err := postgresql.NewDepartmentRepository(db).Create(ctx, department.Department{Name: "Finance"})
	require.NoError(t, err)

	repo := postgresql.NewEmployeeRepository(db)
	e := createEmployee(t, repo, dept.ID, "29001011234568")

	e.ID = ""
	_, err = repo.Create(ctx, e)
	assert.ErrorIs(t, err, employee.ErrNationalIDExists)
}

func TestDepartmentRepository_DeleteInUse(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	departments := postgresql.NewDepartmentRepository(db)
	dept, err := departments.Create(ctx, department.Department{Name: "Sales"})
	require.NoError(t, err)

	createEmployee(t, postgresql.NewEmployeeRepository(db), dept.ID, "29001011234569")

	count, err := departments.CountEmployees(ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.ErrorIs(t, departments.Delete(ctx, dept.ID), department.ErrDepartmentInUse)
}

func TestAttendanceRepository_OneRecordPerDay(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	dept, err := postgresql.NewDepartmentRepository(db).Create(ctx, department.Department{Name: "Support"})
	require.NoError(t, err)
	e := createEmployee(t, postgresql.NewEmployeeRepository(db), dept.ID, "29001011234570")

	repo := postgresql.NewAttendanceRepository(db)
	checkIn := "09:20"
	record := attendance.Attendance{
		EmployeeID:    e.ID,
		Date:          time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC),
		CheckIn:       &checkIn,
		LateHours:     decimal.RequireFromString("0.33"),
		OvertimeHours: decimal.Zero,
		Status:        attendance.StatusPresent,
	}
	created, err := repo.Create(ctx, record)
	require.NoError(t, err)
	assert.True(t, created.LateHours.Equal(decimal.RequireFromString("0.33")))

	exists, err := repo.ExistsForDay(ctx, e.ID, record.Date, "")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Create(ctx, record)
	assert.ErrorIs(t, err, attendance.ErrAttendanceExists)

	records, err := repo.FindByEmployeeAndRange(ctx, e.ID, record.Date, record.Date)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
