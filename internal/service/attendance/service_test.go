package attendance

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/spreadsheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const employeeID = "0190a6f0-1c2d-7a3b-8c4d-5e6f7a8b9c0d"

type mockAttendanceRepository struct {
	mock.Mock
}

func (m *mockAttendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(attendance.Attendance), args.Error(1)
}

func (m *mockAttendanceRepository) GetByID(ctx context.Context, id string, includeDeleted bool) (attendance.Attendance, error) {
	args := m.Called(ctx, id, includeDeleted)
	return args.Get(0).(attendance.Attendance), args.Error(1)
}

func (m *mockAttendanceRepository) FindAll(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]attendance.Attendance), args.Get(1).(int64), args.Error(2)
}

func (m *mockAttendanceRepository) FindByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	args := m.Called(ctx, employeeID, from, to)
	return args.Get(0).([]attendance.Attendance), args.Error(1)
}

func (m *mockAttendanceRepository) ExistsForDay(ctx context.Context, employeeID string, date time.Time, excludeID string) (bool, error) {
	args := m.Called(ctx, employeeID, date, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockAttendanceRepository) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(attendance.Attendance), args.Error(1)
}

func (m *mockAttendanceRepository) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockEmployeeRepository struct {
	employee.EmployeeRepository
	mock.Mock
}

func (m *mockEmployeeRepository) GetByID(ctx context.Context, id string, includeDeleted bool) (employee.Employee, error) {
	args := m.Called(ctx, id, includeDeleted)
	return args.Get(0).(employee.Employee), args.Error(1)
}

func (m *mockEmployeeRepository) FindIDsByName(ctx context.Context, name string) ([]string, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]string), args.Error(1)
}

type fixedWeekend struct{}

func (fixedWeekend) WeekendDays(ctx context.Context) (calendar.WeekendSet, error) {
	return calendar.NewWeekendSet("Friday", "Saturday")
}

type fixedHolidays []holiday.OfficialHoliday

func (f fixedHolidays) Calendar(ctx context.Context, year int) (holiday.Calendar, error) {
	return holiday.NewCalendar(f), nil
}

func strPtr(s string) *string { return &s }

// 2024-09-02 is a Monday and 2024-09-06 a Friday.
var (
	monday = time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC)
	friday = time.Date(2024, time.September, 6, 0, 0, 0, 0, time.UTC)
)

func newService(att *mockAttendanceRepository, emp *mockEmployeeRepository, holidays fixedHolidays) attendance.AttendanceService {
	return NewAttendanceService(att, emp, fixedWeekend{}, holidays)
}

func nineToFiveEmployee() employee.Employee {
	return employee.Employee{ID: employeeID, FullName: "Omar Nabil", CheckInTime: "09:00", CheckOutTime: "17:00", IsActive: true}
}

func TestCreate_ComputesLateAndOvertime(t *testing.T) {
	att := new(mockAttendanceRepository)
	emp := new(mockEmployeeRepository)
	emp.On("GetByID", mock.Anything, employeeID, false).Return(nineToFiveEmployee(), nil)
	att.On("ExistsForDay", mock.Anything, employeeID, monday, "").Return(false, nil)
	att.On("Create", mock.Anything, mock.MatchedBy(func(a attendance.Attendance) bool {
		return a.Status == attendance.StatusPresent &&
			a.LateHours.Equal(decimal.RequireFromString("0.33")) &&
			a.OvertimeHours.Equal(decimal.RequireFromString("0.75"))
	})).Return(attendance.Attendance{ID: "a1", EmployeeID: employeeID, Date: monday, Status: attendance.StatusPresent}, nil)

	req := attendance.CreateAttendanceRequest{EmployeeID: employeeID, DateParsed: monday, CheckIn: strPtr("09:20"), CheckOut: strPtr("17:45")}
	resp, err := newService(att, emp, nil).Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "a1", resp.ID)
	assert.Equal(t, "2024-09-02", resp.Date)
	att.AssertExpectations(t)
}

func TestCreate_WeekendIsHoliday(t *testing.T) {
	att := new(mockAttendanceRepository)
	emp := new(mockEmployeeRepository)
	emp.On("GetByID", mock.Anything, employeeID, false).Return(nineToFiveEmployee(), nil)
	att.On("ExistsForDay", mock.Anything, employeeID, friday, "").Return(false, nil)
	att.On("Create", mock.Anything, mock.MatchedBy(func(a attendance.Attendance) bool {
		return a.Status == attendance.StatusHoliday && a.LateHours.IsZero() && a.OvertimeHours.IsZero()
	})).Return(attendance.Attendance{ID: "a2", Status: attendance.StatusHoliday}, nil)

	req := attendance.CreateAttendanceRequest{EmployeeID: employeeID, DateParsed: friday, CheckIn: strPtr("10:00")}
	_, err := newService(att, emp, nil).Create(context.Background(), req)
	require.NoError(t, err)
	att.AssertExpectations(t)
}

func TestCreate_OfficialHoliday(t *testing.T) {
	att := new(mockAttendanceRepository)
	emp := new(mockEmployeeRepository)
	emp.On("GetByID", mock.Anything, employeeID, false).Return(nineToFiveEmployee(), nil)
	att.On("ExistsForDay", mock.Anything, employeeID, monday, "").Return(false, nil)
	att.On("Create", mock.Anything, mock.MatchedBy(func(a attendance.Attendance) bool {
		return a.Status == attendance.StatusHoliday
	})).Return(attendance.Attendance{ID: "a3", Status: attendance.StatusHoliday}, nil)

	holidays := fixedHolidays{{Name: "Company Day", Date: monday, Year: 2024}}
	req := attendance.CreateAttendanceRequest{EmployeeID: employeeID, DateParsed: monday}
	_, err := newService(att, emp, holidays).Create(context.Background(), req)
	require.NoError(t, err)
	att.AssertExpectations(t)
}

func TestCreate_Duplicate(t *testing.T) {
	att := new(mockAttendanceRepository)
	emp := new(mockEmployeeRepository)
	emp.On("GetByID", mock.Anything, employeeID, false).Return(nineToFiveEmployee(), nil)
	att.On("ExistsForDay", mock.Anything, employeeID, monday, "").Return(true, nil)

	req := attendance.CreateAttendanceRequest{EmployeeID: employeeID, DateParsed: monday, CheckIn: strPtr("09:00")}
	_, err := newService(att, emp, nil).Create(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrAttendanceExists)
	att.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_UnknownEmployee(t *testing.T) {
	att := new(mockAttendanceRepository)
	emp := new(mockEmployeeRepository)
	emp.On("GetByID", mock.Anything, employeeID, false).Return(employee.Employee{}, employee.ErrEmployeeNotFound)

	req := attendance.CreateAttendanceRequest{EmployeeID: employeeID, DateParsed: monday}
	_, err := newService(att, emp, nil).Create(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotFound)
}

func TestUpdate_AddingCheckInClearsDerivedAbsence(t *testing.T) {
	att := new(mockAttendanceRepository)
	emp := new(mockEmployeeRepository)
	att.On("GetByID", mock.Anything, "a1", false).Return(attendance.Attendance{
		ID: "a1", EmployeeID: employeeID, Date: monday, Status: attendance.StatusAbsent,
		LateHours: decimal.Zero, OvertimeHours: decimal.Zero,
	}, nil)
	emp.On("GetByID", mock.Anything, employeeID, true).Return(nineToFiveEmployee(), nil)
	att.On("Update", mock.Anything, mock.MatchedBy(func(a attendance.Attendance) bool {
		return a.Status == attendance.StatusPresent && a.LateHours.Equal(decimal.RequireFromString("0.5"))
	})).Return(attendance.Attendance{ID: "a1", Status: attendance.StatusPresent}, nil)

	_, err := newService(att, emp, nil).Update(context.Background(), attendance.UpdateAttendanceRequest{ID: "a1", CheckIn: strPtr("09:30")})
	require.NoError(t, err)
	att.AssertExpectations(t)
}

func TestSearch_NameWithoutMatches(t *testing.T) {
	att := new(mockAttendanceRepository)
	emp := new(mockEmployeeRepository)
	emp.On("FindIDsByName", mock.Anything, "nobody").Return([]string{}, nil)

	_, err := newService(att, emp, nil).Search(context.Background(), attendance.SearchAttendanceRequest{EmployeeName: "nobody"})
	assert.ErrorIs(t, err, attendance.ErrNoEmployeesMatchName)
}

func TestSearch_ByNameFiltersOnMatchedIDs(t *testing.T) {
	att := new(mockAttendanceRepository)
	emp := new(mockEmployeeRepository)
	emp.On("FindIDsByName", mock.Anything, "omar").Return([]string{employeeID}, nil)
	att.On("FindAll", mock.Anything, mock.MatchedBy(func(f attendance.AttendanceFilter) bool {
		return len(f.EmployeeIDs) == 1 && f.EmployeeIDs[0] == employeeID
	})).Return([]attendance.Attendance{{ID: "a1", EmployeeID: employeeID, Date: monday}}, int64(1), nil)

	req := attendance.SearchAttendanceRequest{EmployeeName: "omar"}
	req.Page, req.Limit = 1, 20
	page, err := newService(att, emp, nil).Search(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, "1-1 of 1", page.Showing)
}

func TestImport_ReportsRowErrors(t *testing.T) {
	att := new(mockAttendanceRepository)
	emp := new(mockEmployeeRepository)
	emp.On("GetByID", mock.Anything, employeeID, false).Return(nineToFiveEmployee(), nil)
	att.On("ExistsForDay", mock.Anything, employeeID, monday, "").Return(false, nil)
	att.On("Create", mock.Anything, mock.Anything).Return(attendance.Attendance{ID: "a1", Status: attendance.StatusPresent}, nil)

	workbook, err := spreadsheet.Write("Sheet1",
		[]string{"Employee ID", "Date", "Check In", "Check Out", "Status", "Notes"},
		[][]any{
			{employeeID, "2024-09-02", "09:00", "17:00", "Present", ""},
			{employeeID, "", "09:00", "17:00", "", ""},
		})
	require.NoError(t, err)

	result, err := newService(att, emp, nil).Import(context.Background(), bytes.NewReader(workbook))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
}

func TestImport_ArabicHeaders(t *testing.T) {
	att := new(mockAttendanceRepository)
	emp := new(mockEmployeeRepository)
	emp.On("GetByID", mock.Anything, employeeID, false).Return(nineToFiveEmployee(), nil)
	att.On("ExistsForDay", mock.Anything, employeeID, monday, "").Return(false, nil)
	att.On("Create", mock.Anything, mock.MatchedBy(func(a attendance.Attendance) bool {
		return a.EmployeeID == employeeID && a.Date.Equal(monday) &&
			a.CheckIn != nil && *a.CheckIn == "09:30" &&
			a.CheckOut != nil && *a.CheckOut == "17:00" &&
			a.Notes != nil && *a.Notes == "traffic"
	})).Return(attendance.Attendance{ID: "a1", Status: attendance.StatusPresent}, nil)

	workbook, err := spreadsheet.Write("Sheet1",
		[]string{"معرف الموظف", "التاريخ", "الحضور", "الانصراف", "ملاحظات"},
		[][]any{{employeeID, "2024-09-02", "09:30", "17:00", "traffic"}})
	require.NoError(t, err)

	result, err := newService(att, emp, nil).Import(context.Background(), bytes.NewReader(workbook))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Zero(t, result.Failed)
	att.AssertExpectations(t)
}

func TestImport_UnreadableFile(t *testing.T) {
	_, err := newService(new(mockAttendanceRepository), new(mockEmployeeRepository), nil).
		Import(context.Background(), bytes.NewReader([]byte("not a workbook")))
	assert.ErrorIs(t, err, attendance.ErrImportFileUnreadable)
}

func TestStatistics(t *testing.T) {
	att := new(mockAttendanceRepository)
	emp := new(mockEmployeeRepository)
	emp.On("GetByID", mock.Anything, employeeID, true).Return(nineToFiveEmployee(), nil)
	from, to := calendar.MonthRange(2024, time.September)
	att.On("FindByEmployeeAndRange", mock.Anything, employeeID, from, to).Return([]attendance.Attendance{
		{Status: attendance.StatusPresent, LateHours: decimal.RequireFromString("0.33"), OvertimeHours: decimal.RequireFromString("0.75")},
		{Status: attendance.StatusPresent, LateHours: decimal.RequireFromString("1.00"), OvertimeHours: decimal.Zero},
		{Status: attendance.StatusAbsent, LateHours: decimal.Zero, OvertimeHours: decimal.Zero},
		{Status: attendance.StatusSickLeave, LateHours: decimal.Zero, OvertimeHours: decimal.Zero},
	}, nil)

	stats, err := newService(att, emp, nil).Statistics(context.Background(), attendance.StatisticsRequest{EmployeeID: employeeID, Month: 9, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalDays)
	assert.Equal(t, 2, stats.PresentDays)
	assert.Equal(t, 1, stats.AbsentDays)
	assert.Equal(t, 1, stats.SickLeaveDays)
	assert.True(t, stats.TotalLateHours.Equal(decimal.RequireFromString("1.33")))
	assert.True(t, stats.TotalOvertimeHours.Equal(decimal.RequireFromString("0.75")))
}
