package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DepartmentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Employees(w http.ResponseWriter, r *http.Request)
}

type departmentHandlerImpl struct {
	departmentService department.DepartmentService
	employeeService   employee.EmployeeService
}

func NewDepartmentHandler(departmentService department.DepartmentService, employeeService employee.EmployeeService) DepartmentHandler {
	return &departmentHandlerImpl{
		departmentService: departmentService,
		employeeService:   employeeService,
	}
}

func (h *departmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.departmentService.FindAll(r.Context())
	if err != nil {
		serviceError(w, "ListDepartments", err)
		return
	}
	response.Success(w, result)
}

func (h *departmentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.departmentService.FindByID(r.Context(), id)
	if err != nil {
		serviceError(w, "GetDepartment", err)
		return
	}
	response.Success(w, result)
}

func (h *departmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req department.CreateDepartmentRequest
	if !decodeAndValidate(w, r, "CreateDepartment", &req) {
		return
	}

	result, err := h.departmentService.Create(r.Context(), req)
	if err != nil {
		serviceError(w, "CreateDepartment", err)
		return
	}
	response.Created(w, "Department created successfully", result)
}

func (h *departmentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	req := department.UpdateDepartmentRequest{ID: chi.URLParam(r, "id")}
	if !decodeAndValidate(w, r, "UpdateDepartment", &req) {
		return
	}

	result, err := h.departmentService.Update(r.Context(), req)
	if err != nil {
		serviceError(w, "UpdateDepartment", err)
		return
	}
	response.SuccessWithMessage(w, "Department updated successfully", result)
}

func (h *departmentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.departmentService.Delete(r.Context(), id); err != nil {
		serviceError(w, "DeleteDepartment", err)
		return
	}
	response.SuccessWithMessage(w, "Department deleted successfully", nil)
}

// Employees lists the live employees of a department.
func (h *departmentHandlerImpl) Employees(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.employeeService.ListByDepartment(r.Context(), id)
	if err != nil {
		serviceError(w, "ListDepartmentEmployees", err)
		return
	}
	response.Success(w, result)
}
