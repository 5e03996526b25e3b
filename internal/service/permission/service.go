package permission

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
)

type PermissionServiceImpl struct {
	permissionRepo permission.PermissionRepository
}

func NewPermissionService(permissionRepo permission.PermissionRepository) permission.PermissionService {
	return &PermissionServiceImpl{permissionRepo: permissionRepo}
}

// Create implements permission.PermissionService.
func (s *PermissionServiceImpl) Create(ctx context.Context, req permission.CreatePermissionRequest) (permission.PermissionResponse, error) {
	created, err := s.permissionRepo.Create(ctx, permission.Permission{
		Name:        req.Name,
		Resource:    req.Resource,
		Action:      req.Action,
		Description: req.Description,
	})
	if err != nil {
		return permission.PermissionResponse{}, err
	}
	return permission.NewPermissionResponse(created), nil
}

// FindAll implements permission.PermissionService.
func (s *PermissionServiceImpl) FindAll(ctx context.Context) ([]permission.PermissionResponse, error) {
	permissions, err := s.permissionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return toResponses(permissions), nil
}

// FindByID implements permission.PermissionService.
func (s *PermissionServiceImpl) FindByID(ctx context.Context, id string) (permission.PermissionResponse, error) {
	p, err := s.permissionRepo.GetByID(ctx, id)
	if err != nil {
		return permission.PermissionResponse{}, err
	}
	return permission.NewPermissionResponse(p), nil
}

// FindByResource implements permission.PermissionService.
func (s *PermissionServiceImpl) FindByResource(ctx context.Context, resource string) ([]permission.PermissionResponse, error) {
	permissions, err := s.permissionRepo.FindByResource(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions for %s: %w", resource, err)
	}
	return toResponses(permissions), nil
}

// Update implements permission.PermissionService.
func (s *PermissionServiceImpl) Update(ctx context.Context, req permission.UpdatePermissionRequest) (permission.PermissionResponse, error) {
	p, err := s.permissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return permission.PermissionResponse{}, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Resource != nil {
		p.Resource = *req.Resource
	}
	if req.Action != nil {
		p.Action = *req.Action
	}
	if req.Description != nil {
		p.Description = req.Description
	}

	updated, err := s.permissionRepo.Update(ctx, p)
	if err != nil {
		return permission.PermissionResponse{}, err
	}
	return permission.NewPermissionResponse(updated), nil
}

// Delete implements permission.PermissionService. Permissions still held by
// a group cannot be deleted.
func (s *PermissionServiceImpl) Delete(ctx context.Context, id string) error {
	return s.permissionRepo.Delete(ctx, id)
}

func toResponses(permissions []permission.Permission) []permission.PermissionResponse {
	responses := make([]permission.PermissionResponse, 0, len(permissions))
	for _, p := range permissions {
		responses = append(responses, permission.NewPermissionResponse(p))
	}
	return responses
}
