package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ToggleStatus(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// filter reads the list query: q, department_id, is_active, include_deleted, page, limit.
func (h *employeeHandlerImpl) filter(r *http.Request) (employee.EmployeeFilter, error) {
	params, err := pageParams(r)
	if err != nil {
		return employee.EmployeeFilter{}, err
	}
	return employee.EmployeeFilter{
		Query:          r.URL.Query().Get("q"),
		DepartmentID:   queryString(r, "department_id"),
		IsActive:       queryBool(r, "is_active"),
		IncludeDeleted: includeDeleted(r),
		Params:         params,
	}, nil
}

// List implements EmployeeHandler
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.employeeService.FindAll(r.Context(), filter)
	if err != nil {
		serviceError(w, "ListEmployees", err)
		return
	}
	response.Paginated(w, page)
}

// Search implements EmployeeHandler
func (h *employeeHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.employeeService.Search(r.Context(), filter)
	if err != nil {
		serviceError(w, "SearchEmployees", err)
		return
	}
	response.Paginated(w, page)
}

// Get implements EmployeeHandler
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.employeeService.FindByID(r.Context(), id)
	if err != nil {
		serviceError(w, "GetEmployee", err)
		return
	}
	response.Success(w, result)
}

// Create implements EmployeeHandler
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeAndValidate(w, r, "CreateEmployee", &req) {
		return
	}

	result, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		serviceError(w, "CreateEmployee", err)
		return
	}
	response.Created(w, "Employee created successfully", result)
}

// Update implements EmployeeHandler
func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	req := employee.UpdateEmployeeRequest{ID: chi.URLParam(r, "id")}
	if !decodeAndValidate(w, r, "UpdateEmployee", &req) {
		return
	}

	result, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		serviceError(w, "UpdateEmployee", err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated successfully", result)
}

// Delete implements EmployeeHandler
func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.employeeService.SoftDelete(r.Context(), id); err != nil {
		serviceError(w, "DeleteEmployee", err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// ToggleStatus implements EmployeeHandler
func (h *employeeHandlerImpl) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.employeeService.ToggleStatus(r.Context(), id)
	if err != nil {
		serviceError(w, "ToggleEmployeeStatus", err)
		return
	}
	response.SuccessWithMessage(w, "Employee status updated", result)
}
