package attendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/spreadsheet"
)

var exportHeader = []string{
	"Employee ID", "Employee Name", "Department", "Date", "Check In", "Check Out",
	"Status", "Late Hours", "Overtime Hours", "Notes",
}

// importDateLayouts are the date renderings accepted in an uploaded sheet.
var importDateLayouts = []string{calendar.DateLayout, "01-02-06", "1/2/2006", "2006/01/02"}

func (s *AttendanceServiceImpl) importRecords(ctx context.Context, file io.Reader) (attendance.ImportResult, error) {
	if file == nil {
		return attendance.ImportResult{}, attendance.ErrImportFileRequired
	}

	records, err := spreadsheet.ReadRecords(file)
	if errors.Is(err, spreadsheet.ErrEmptyWorkbook) {
		return attendance.ImportResult{Errors: []attendance.ImportRowError{}}, nil
	}
	if err != nil {
		return attendance.ImportResult{}, fmt.Errorf("%w: %v", attendance.ErrImportFileUnreadable, err)
	}

	result := attendance.ImportResult{Errors: []attendance.ImportRowError{}}
	for _, rec := range records {
		if err := s.importRow(ctx, rec); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, attendance.ImportRowError{Row: rec.Row, Message: err.Error()})
			continue
		}
		result.Imported++
	}
	return result, nil
}

func (s *AttendanceServiceImpl) importRow(ctx context.Context, rec spreadsheet.Record) error {
	req := attendance.CreateAttendanceRequest{
		EmployeeID: rec.Get("Employee ID", "employeeId", "employee_id", "معرف الموظف"),
		Date:       normalizeImportDate(rec.Get("Date", "date", "التاريخ")),
		CheckIn:    optional(rec.Get("Check In", "checkIn", "check_in", "الحضور")),
		CheckOut:   optional(rec.Get("Check Out", "checkOut", "check_out", "الانصراف")),
		Notes:      optional(rec.Get("Notes", "notes", "ملاحظات")),
	}
	if req.EmployeeID == "" || req.Date == "" {
		return attendance.ErrImportRowMissingField
	}
	if status := rec.Get("Status", "status"); status != "" {
		st := attendance.Status(strings.ToLower(strings.ReplaceAll(status, " ", "_")))
		req.Status = &st
	}

	if err := req.Validate(); err != nil {
		return err
	}
	_, err := s.Create(ctx, req)
	return err
}

func (s *AttendanceServiceImpl) exportRecords(ctx context.Context, req attendance.SearchAttendanceRequest) ([]byte, error) {
	filter, err := s.searchFilter(ctx, req)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0)
	filter.Params = pagination.Params{Page: 1, Limit: pagination.MaxLimit}
	for {
		records, total, err := s.attendanceRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list attendances for export: %w", err)
		}
		for _, a := range records {
			rows = append(rows, exportRow(a))
		}
		if len(records) == 0 || int64(len(rows)) >= total {
			break
		}
		filter.Page++
	}

	return spreadsheet.Write("Attendance", exportHeader, rows)
}

func exportRow(a attendance.Attendance) []any {
	return []any{
		a.EmployeeID,
		deref(a.EmployeeName),
		deref(a.DepartmentName),
		a.Date.Format(calendar.DateLayout),
		deref(a.CheckIn),
		deref(a.CheckOut),
		string(a.Status),
		a.LateHours.InexactFloat64(),
		a.OvertimeHours.InexactFloat64(),
		deref(a.Notes),
	}
}

func normalizeImportDate(s string) string {
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(calendar.DateLayout)
		}
	}
	return s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
