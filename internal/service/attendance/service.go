package attendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
)

// WeekendSource supplies the configured weekend days.
type WeekendSource interface {
	WeekendDays(ctx context.Context) (calendar.WeekendSet, error)
}

// HolidayCalendar supplies the official holidays of a year.
type HolidayCalendar interface {
	Calendar(ctx context.Context, year int) (holiday.Calendar, error)
}

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	weekend        WeekendSource
	holidays       HolidayCalendar
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	weekend WeekendSource,
	holidays HolidayCalendar,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		weekend:        weekend,
		holidays:       holidays,
	}
}

// Create implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	emp, err := s.employee(ctx, req.EmployeeID, false)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	exists, err := s.attendanceRepo.ExistsForDay(ctx, emp.ID, req.DateParsed, "")
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if exists {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceExists
	}

	res, err := s.resolve(ctx, emp, req.DateParsed, req.CheckIn, req.CheckOut, req.RequestedStatus())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID:    emp.ID,
		Date:          req.DateParsed,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		LateHours:     res.LateHours,
		OvertimeHours: res.OvertimeHours,
		Status:        res.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	metrics.AttendanceRecorded.WithLabelValues(string(created.Status)).Inc()
	return attendance.NewAttendanceResponse(created), nil
}

// FindAll implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FindAll(ctx context.Context, req attendance.ListAttendanceRequest) (pagination.Page[attendance.AttendanceResponse], error) {
	return s.page(ctx, attendance.AttendanceFilter{
		Status:         req.Status,
		IncludeDeleted: req.IncludeDeleted,
		Params:         req.Params,
	})
}

// FindByID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FindByID(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	a, err := s.attendanceRepo.GetByID(ctx, id, false)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(a), nil
}

// Update implements attendance.AttendanceService. The status and hours are
// resolved again from the merged record.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	existing, err := s.attendanceRepo.GetByID(ctx, req.ID, false)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.DateParsed != nil && !req.DateParsed.Equal(existing.Date) {
		exists, err := s.attendanceRepo.ExistsForDay(ctx, existing.EmployeeID, *req.DateParsed, existing.ID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if exists {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceExists
		}
		existing.Date = *req.DateParsed
	}
	if req.CheckIn != nil {
		existing.CheckIn = req.CheckIn
	}
	if req.CheckOut != nil {
		existing.CheckOut = req.CheckOut
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}

	// Absent and Holiday are derived, so they are not carried over as a request.
	requested := existing.Status
	if requested == attendance.StatusAbsent || requested == attendance.StatusHoliday {
		requested = ""
	}
	if req.Status != nil {
		requested = *req.Status
	}

	emp, err := s.employee(ctx, existing.EmployeeID, true)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	res, err := s.resolve(ctx, emp, existing.Date, existing.CheckIn, existing.CheckOut, requested)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	existing.Status = res.Status
	existing.LateHours = res.LateHours
	existing.OvertimeHours = res.OvertimeHours

	updated, err := s.attendanceRepo.Update(ctx, existing)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(updated), nil
}

// SoftDelete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SoftDelete(ctx context.Context, id string) error {
	return s.attendanceRepo.SoftDelete(ctx, id)
}

// Search implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Search(ctx context.Context, req attendance.SearchAttendanceRequest) (pagination.Page[attendance.AttendanceResponse], error) {
	filter, err := s.searchFilter(ctx, req)
	if err != nil {
		return pagination.Page[attendance.AttendanceResponse]{}, err
	}
	return s.page(ctx, filter)
}

// Statistics implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Statistics(ctx context.Context, req attendance.StatisticsRequest) (attendance.StatisticsResponse, error) {
	if _, err := s.employee(ctx, req.EmployeeID, true); err != nil {
		return attendance.StatisticsResponse{}, err
	}

	from, to := calendar.MonthRange(req.Year, time.Month(req.Month))
	records, err := s.attendanceRepo.FindByEmployeeAndRange(ctx, req.EmployeeID, from, to)
	if err != nil {
		return attendance.StatisticsResponse{}, err
	}

	tally := payroll.Tally(records)
	return attendance.StatisticsResponse{
		EmployeeID:         req.EmployeeID,
		Month:              req.Month,
		Year:               req.Year,
		TotalDays:          len(records),
		PresentDays:        tally.DaysPresent,
		AbsentDays:         tally.DaysAbsent,
		HolidayDays:        tally.Holidays,
		SickLeaveDays:      tally.SickLeave,
		TotalLateHours:     tally.LateHours,
		TotalOvertimeHours: tally.OvertimeHours,
	}, nil
}

func (s *AttendanceServiceImpl) page(ctx context.Context, filter attendance.AttendanceFilter) (pagination.Page[attendance.AttendanceResponse], error) {
	records, total, err := s.attendanceRepo.FindAll(ctx, filter)
	if err != nil {
		return pagination.Page[attendance.AttendanceResponse]{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, attendance.NewAttendanceResponse(a))
	}
	return pagination.NewPage(responses, total, filter.Params), nil
}

// searchFilter turns a search request into a repository filter. A name
// matching no employee is an error rather than an empty result.
func (s *AttendanceServiceImpl) searchFilter(ctx context.Context, req attendance.SearchAttendanceRequest) (attendance.AttendanceFilter, error) {
	filter := attendance.AttendanceFilter{
		DateFrom: req.DateFromParsed,
		DateTo:   req.DateToParsed,
		Params:   req.Params,
	}
	if req.DepartmentID != "" {
		filter.DepartmentID = &req.DepartmentID
	}

	if req.EmployeeName != "" {
		ids, err := s.employeeRepo.FindIDsByName(ctx, req.EmployeeName)
		if err != nil {
			return attendance.AttendanceFilter{}, err
		}
		if len(ids) == 0 {
			return attendance.AttendanceFilter{}, attendance.ErrNoEmployeesMatchName
		}
		if req.EmployeeID != "" {
			if !slices.Contains(ids, req.EmployeeID) {
				return attendance.AttendanceFilter{}, attendance.ErrNoEmployeesMatchName
			}
			ids = []string{req.EmployeeID}
		}
		filter.EmployeeIDs = ids
	} else if req.EmployeeID != "" {
		filter.EmployeeIDs = []string{req.EmployeeID}
	}
	return filter, nil
}

// employee loads the employee a record belongs to.
func (s *AttendanceServiceImpl) employee(ctx context.Context, id string, includeDeleted bool) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id, includeDeleted)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.Employee{}, attendance.ErrEmployeeNotFound
	}
	return emp, err
}

func (s *AttendanceServiceImpl) resolve(ctx context.Context, emp employee.Employee, date time.Time, checkIn, checkOut *string, requested attendance.Status) (attendance.Resolution, error) {
	weekend, err := s.weekend.WeekendDays(ctx)
	if err != nil {
		return attendance.Resolution{}, err
	}
	holidays, err := s.holidays.Calendar(ctx, date.Year())
	if err != nil {
		return attendance.Resolution{}, err
	}

	res, err := attendance.Resolve(attendance.ResolveInput{
		Date:      date,
		Schedule:  emp.Schedule(),
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Requested: requested,
		Weekend:   weekend,
		Holidays:  holidays,
	})
	if errors.Is(err, attendance.ErrInvalidSchedule) {
		slog.Error("employee has an invalid schedule", "employee_id", emp.ID, "error", err)
	}
	return res, err
}

// Import reads attendance rows from an xlsx workbook and creates each one
// independently. Failing rows are reported with their sheet row number.
func (s *AttendanceServiceImpl) Import(ctx context.Context, file io.Reader) (attendance.ImportResult, error) {
	return s.importRecords(ctx, file)
}

// Export implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Export(ctx context.Context, req attendance.SearchAttendanceRequest) ([]byte, error) {
	return s.exportRecords(ctx, req)
}
