package employee

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	cache        *cache.Cache
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, c *cache.Cache) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo, cache: c}
}

// Create implements employee.EmployeeService. New employees start active.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		FullName:     req.FullName,
		NationalID:   req.NationalID,
		Phone:        req.Phone,
		Address:      req.Address,
		BirthDate:    req.BirthDateParsed,
		Gender:       req.Gender,
		Nationality:  req.Nationality,
		ContractDate: req.ContractDateParsed,
		BaseSalary:   req.BaseSalary,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
		DepartmentID: req.DepartmentID,
		IsActive:     true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.cache.Invalidate(ctx, department.ListCacheKey)
	return employee.NewEmployeeResponse(created), nil
}

// FindAll implements employee.EmployeeService.
func (s *EmployeeServiceImpl) FindAll(ctx context.Context, filter employee.EmployeeFilter) (pagination.Page[employee.EmployeeResponse], error) {
	employees, total, err := s.employeeRepo.FindAll(ctx, filter)
	if err != nil {
		return pagination.Page[employee.EmployeeResponse]{}, fmt.Errorf("failed to list employees: %w", err)
	}
	return pagination.NewPage(toResponses(employees), total, filter.Params), nil
}

// FindByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) FindByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id, false)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, req.ID, false)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	previousDepartment := e.DepartmentID

	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.NationalID != nil {
		e.NationalID = *req.NationalID
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.Address != nil {
		e.Address = req.Address
	}
	if req.BirthDateParsed != nil {
		e.BirthDate = *req.BirthDateParsed
	}
	if req.Gender != nil {
		e.Gender = *req.Gender
	}
	if req.Nationality != nil {
		e.Nationality = strings.TrimSpace(*req.Nationality)
	}
	if req.ContractDateParsed != nil {
		e.ContractDate = *req.ContractDateParsed
	}
	if req.BaseSalary != nil {
		e.BaseSalary = *req.BaseSalary
	}
	if req.CheckInTime != nil {
		e.CheckInTime = *req.CheckInTime
	}
	if req.CheckOutTime != nil {
		e.CheckOutTime = *req.CheckOutTime
	}
	if req.DepartmentID != nil {
		e.DepartmentID = *req.DepartmentID
	}

	// Only one side of the schedule may have changed.
	in, err := calendar.ParseClock(e.CheckInTime)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	out, err := calendar.ParseClock(e.CheckOutTime)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if out <= in {
		return employee.EmployeeResponse{}, employee.ErrCheckOutBeforeCheckIn
	}

	updated, err := s.employeeRepo.Update(ctx, e)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if updated.DepartmentID != previousDepartment {
		s.cache.Invalidate(ctx, department.ListCacheKey)
	}
	return employee.NewEmployeeResponse(updated), nil
}

// SoftDelete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SoftDelete(ctx context.Context, id string) error {
	if err := s.employeeRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, department.ListCacheKey)
	return nil
}

// Search implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Search(ctx context.Context, filter employee.EmployeeFilter) (pagination.Page[employee.EmployeeResponse], error) {
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.Query == "" {
		return pagination.Page[employee.EmployeeResponse]{}, employee.ErrEmployeeSearchRequired
	}
	return s.FindAll(ctx, filter)
}

// ListByDepartment implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListByDepartment(ctx context.Context, departmentID string) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list department employees: %w", err)
	}
	return toResponses(employees), nil
}

// ToggleStatus implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ToggleStatus(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id, false)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.SetActive(ctx, id, !e.IsActive); err != nil {
		return employee.EmployeeResponse{}, err
	}
	e.IsActive = !e.IsActive
	return employee.NewEmployeeResponse(e), nil
}

func toResponses(employees []employee.Employee) []employee.EmployeeResponse {
	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses
}
