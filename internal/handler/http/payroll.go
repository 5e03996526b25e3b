package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type SalaryReportHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type salaryReportHandlerImpl struct {
	reportService payroll.SalaryReportService
}

func NewSalaryReportHandler(reportService payroll.SalaryReportService) SalaryReportHandler {
	return &salaryReportHandlerImpl{reportService: reportService}
}

// Generate implements SalaryReportHandler
func (h *salaryReportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateReportRequest
	if !decodeAndValidate(w, r, "GenerateSalaryReport", &req) {
		return
	}

	result, err := h.reportService.Generate(r.Context(), req)
	if err != nil {
		serviceError(w, "GenerateSalaryReport", err)
		return
	}
	response.Created(w, "Salary report generated successfully", result)
}

// List implements SalaryReportHandler
func (h *salaryReportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	params, err := pageParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter := payroll.SalaryReportFilter{
		EmployeeID:     queryString(r, "employee_id"),
		Month:          queryInt(r, "month"),
		Year:           queryInt(r, "year"),
		IncludeDeleted: includeDeleted(r),
		Params:         params,
	}

	page, err := h.reportService.FindAll(r.Context(), filter)
	if err != nil {
		serviceError(w, "ListSalaryReports", err)
		return
	}
	response.Paginated(w, page)
}

// Get implements SalaryReportHandler
func (h *salaryReportHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.reportService.FindByID(r.Context(), id)
	if err != nil {
		serviceError(w, "GetSalaryReport", err)
		return
	}
	response.Success(w, result)
}

// Search implements SalaryReportHandler
func (h *salaryReportHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	params, _ := pageParams(r)
	req := payroll.SearchReportRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Month:      queryInt(r, "month"),
		Year:       queryInt(r, "year"),
		Params:     params,
	}
	if !validate(w, "SearchSalaryReports", &req) {
		return
	}

	page, err := h.reportService.Search(r.Context(), req)
	if err != nil {
		serviceError(w, "SearchSalaryReports", err)
		return
	}
	response.Paginated(w, page)
}

// Delete implements SalaryReportHandler
func (h *salaryReportHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.reportService.SoftDelete(r.Context(), id); err != nil {
		serviceError(w, "DeleteSalaryReport", err)
		return
	}
	response.SuccessWithMessage(w, "Salary report deleted successfully", nil)
}

// Summary implements SalaryReportHandler
func (h *salaryReportHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	var req payroll.SummaryRequest
	if v := queryInt(r, "month"); v != nil {
		req.Month = *v
	}
	if v := queryInt(r, "year"); v != nil {
		req.Year = *v
	}
	if !validate(w, "SalaryReportSummary", &req) {
		return
	}

	result, err := h.reportService.Summary(r.Context(), req)
	if err != nil {
		serviceError(w, "SalaryReportSummary", err)
		return
	}
	response.Success(w, result)
}
