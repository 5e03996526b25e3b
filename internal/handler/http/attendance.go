package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

const (
	maxImportSize = 10 << 20
	xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Statistics(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func searchRequest(r *http.Request) attendance.SearchAttendanceRequest {
	q := r.URL.Query()
	return attendance.SearchAttendanceRequest{
		EmployeeName: q.Get("employee_name"),
		EmployeeID:   q.Get("employee_id"),
		DepartmentID: q.Get("department_id"),
		DateFrom:     q.Get("date_from"),
		DateTo:       q.Get("date_to"),
		Params:       pagination.FromRequest(r),
	}
}

func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req := attendance.ListAttendanceRequest{
		IncludeDeleted: includeDeleted(r),
		Params:         pagination.FromRequest(r),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := attendance.Status(s)
		req.Status = &status
	}
	if !validate(w, "ListAttendance", &req) {
		return
	}

	page, err := h.attendanceService.FindAll(r.Context(), req)
	if err != nil {
		serviceError(w, "ListAttendance", err)
		return
	}
	response.Paginated(w, page)
}

func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.attendanceService.FindByID(r.Context(), id)
	if err != nil {
		serviceError(w, "GetAttendance", err)
		return
	}
	response.Success(w, result)
}

func (h *attendanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateAttendanceRequest
	if !decodeAndValidate(w, r, "CreateAttendance", &req) {
		return
	}

	result, err := h.attendanceService.Create(r.Context(), req)
	if err != nil {
		serviceError(w, "CreateAttendance", err)
		return
	}
	response.Created(w, "Attendance recorded successfully", result)
}

func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	req := attendance.UpdateAttendanceRequest{ID: chi.URLParam(r, "id")}
	if !decodeAndValidate(w, r, "UpdateAttendance", &req) {
		return
	}

	result, err := h.attendanceService.Update(r.Context(), req)
	if err != nil {
		serviceError(w, "UpdateAttendance", err)
		return
	}
	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.attendanceService.SoftDelete(r.Context(), id); err != nil {
		serviceError(w, "DeleteAttendance", err)
		return
	}
	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}

func (h *attendanceHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	req := searchRequest(r)
	if !validate(w, "SearchAttendance", &req) {
		return
	}

	page, err := h.attendanceService.Search(r.Context(), req)
	if err != nil {
		serviceError(w, "SearchAttendance", err)
		return
	}
	response.Paginated(w, page)
}

// Import reads the "file" field of a multipart form.
func (h *attendanceHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		response.HandleError(w, attendance.ErrImportFileRequired)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		response.HandleError(w, attendance.ErrImportFileRequired)
		return
	}
	defer file.Close()

	result, err := h.attendanceService.Import(r.Context(), file)
	if err != nil {
		serviceError(w, "ImportAttendance", err)
		return
	}
	response.SuccessWithMessage(w, fmt.Sprintf("Imported %d of %d rows", result.Imported, result.Imported+result.Failed), result)
}

// Export accepts the search filters; without any it exports every live record.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := searchRequest(r)
	if err := req.Validate(); err != nil && !errors.Is(err, attendance.ErrSearchFilterRequired) {
		response.HandleError(w, err)
		return
	}

	data, err := h.attendanceService.Export(r.Context(), req)
	if err != nil {
		serviceError(w, "ExportAttendance", err)
		return
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", xlsxMediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Statistics reads employee_id, month and year from the query.
func (h *attendanceHandlerImpl) Statistics(w http.ResponseWriter, r *http.Request) {
	req := attendance.StatisticsRequest{EmployeeID: r.URL.Query().Get("employee_id")}
	if v := queryInt(r, "month"); v != nil {
		req.Month = *v
	}
	if v := queryInt(r, "year"); v != nil {
		req.Year = *v
	}
	if !validate(w, "AttendanceStatistics", &req) {
		return
	}

	result, err := h.attendanceService.Statistics(r.Context(), req)
	if err != nil {
		serviceError(w, "AttendanceStatistics", err)
		return
	}
	response.Success(w, result)
}
