package department

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
)

type DepartmentServiceImpl struct {
	departmentRepo department.DepartmentRepository
	cache          *cache.Cache
}

func NewDepartmentService(departmentRepo department.DepartmentRepository, c *cache.Cache) department.DepartmentService {
	return &DepartmentServiceImpl{departmentRepo: departmentRepo, cache: c}
}

// Create implements department.DepartmentService.
func (s *DepartmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	created, err := s.departmentRepo.Create(ctx, department.Department{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	s.cache.Invalidate(ctx, department.ListCacheKey)
	return department.NewDepartmentResponse(created), nil
}

// FindAll implements department.DepartmentService.
func (s *DepartmentServiceImpl) FindAll(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := cache.Remember(ctx, s.cache, department.ListCacheKey, s.departmentRepo.FindAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.NewDepartmentResponse(d))
	}
	return responses, nil
}

// FindByID implements department.DepartmentService.
func (s *DepartmentServiceImpl) FindByID(ctx context.Context, id string) (department.DepartmentResponse, error) {
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(d), nil
}

// Update implements department.DepartmentService.
func (s *DepartmentServiceImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	existing, err := s.departmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = req.Description
	}

	updated, err := s.departmentRepo.Update(ctx, existing)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	s.cache.Invalidate(ctx, department.ListCacheKey)
	return department.NewDepartmentResponse(updated), nil
}

// Delete implements department.DepartmentService. A department that any
// employee record still references, deleted or not, cannot be removed.
func (s *DepartmentServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.departmentRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.departmentRepo.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return department.ErrDepartmentInUse
	}

	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, department.ListCacheKey)
	return nil
}
