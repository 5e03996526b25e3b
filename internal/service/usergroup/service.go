package usergroup

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/usergroup"
)

type UserGroupServiceImpl struct {
	groupRepo usergroup.UserGroupRepository
	userRepo  user.UserRepository
}

func NewUserGroupService(groupRepo usergroup.UserGroupRepository, userRepo user.UserRepository) usergroup.UserGroupService {
	return &UserGroupServiceImpl{groupRepo: groupRepo, userRepo: userRepo}
}

// Create implements usergroup.UserGroupService.
func (s *UserGroupServiceImpl) Create(ctx context.Context, req usergroup.CreateUserGroupRequest) (usergroup.UserGroupResponse, error) {
	created, err := s.groupRepo.Create(ctx, usergroup.UserGroup{
		Name:        req.Name,
		Description: req.Description,
	}, req.PermissionIDs)
	if err != nil {
		return usergroup.UserGroupResponse{}, err
	}
	return usergroup.NewUserGroupResponse(created), nil
}

// FindAll implements usergroup.UserGroupService.
func (s *UserGroupServiceImpl) FindAll(ctx context.Context) ([]usergroup.UserGroupResponse, error) {
	groups, err := s.groupRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]usergroup.UserGroupResponse, 0, len(groups))
	for _, g := range groups {
		responses = append(responses, usergroup.NewUserGroupResponse(g))
	}
	return responses, nil
}

// FindByID implements usergroup.UserGroupService. The response lists the
// group's members.
func (s *UserGroupServiceImpl) FindByID(ctx context.Context, id string) (usergroup.UserGroupResponse, error) {
	g, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return usergroup.UserGroupResponse{}, err
	}
	return s.withMembers(ctx, g)
}

// Update implements usergroup.UserGroupService.
func (s *UserGroupServiceImpl) Update(ctx context.Context, req usergroup.UpdateUserGroupRequest) (usergroup.UserGroupResponse, error) {
	g, err := s.groupRepo.GetByID(ctx, req.ID)
	if err != nil {
		return usergroup.UserGroupResponse{}, err
	}
	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Description != nil {
		g.Description = req.Description
	}

	updated, err := s.groupRepo.Update(ctx, g, req.PermissionIDs)
	if err != nil {
		return usergroup.UserGroupResponse{}, err
	}
	return usergroup.NewUserGroupResponse(updated), nil
}

// Delete implements usergroup.UserGroupService.
func (s *UserGroupServiceImpl) Delete(ctx context.Context, id string) error {
	return s.groupRepo.Delete(ctx, id)
}

// AddUsers moves every listed user into the group. Users keep a single
// group, so members of another group leave it.
func (s *UserGroupServiceImpl) AddUsers(ctx context.Context, req usergroup.MembershipRequest) (usergroup.UserGroupResponse, error) {
	g, err := s.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		return usergroup.UserGroupResponse{}, err
	}
	if _, err := s.users(ctx, req.UserIDs); err != nil {
		return usergroup.UserGroupResponse{}, err
	}

	groupID := g.ID
	if _, err := s.userRepo.AssignGroup(ctx, &groupID, req.UserIDs); err != nil {
		return usergroup.UserGroupResponse{}, fmt.Errorf("failed to add users to group: %w", err)
	}
	return s.reload(ctx, g.ID)
}

// RemoveUsers clears the group of the listed users that are members of it.
// Users in other groups are left untouched.
func (s *UserGroupServiceImpl) RemoveUsers(ctx context.Context, req usergroup.MembershipRequest) (usergroup.UserGroupResponse, error) {
	g, err := s.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		return usergroup.UserGroupResponse{}, err
	}
	users, err := s.users(ctx, req.UserIDs)
	if err != nil {
		return usergroup.UserGroupResponse{}, err
	}

	var members []string
	for _, u := range users {
		if u.UserGroupID != nil && *u.UserGroupID == g.ID {
			members = append(members, u.ID)
		}
	}
	if len(members) > 0 {
		if _, err := s.userRepo.AssignGroup(ctx, nil, members); err != nil {
			return usergroup.UserGroupResponse{}, fmt.Errorf("failed to remove users from group: %w", err)
		}
	}
	return s.reload(ctx, g.ID)
}

// AddPermissions implements usergroup.UserGroupService.
func (s *UserGroupServiceImpl) AddPermissions(ctx context.Context, req usergroup.GroupPermissionsRequest) (usergroup.UserGroupResponse, error) {
	if _, err := s.groupRepo.GetByID(ctx, req.GroupID); err != nil {
		return usergroup.UserGroupResponse{}, err
	}
	if err := s.groupRepo.AddPermissions(ctx, req.GroupID, req.PermissionIDs); err != nil {
		return usergroup.UserGroupResponse{}, err
	}
	return s.reload(ctx, req.GroupID)
}

// RemovePermissions implements usergroup.UserGroupService.
func (s *UserGroupServiceImpl) RemovePermissions(ctx context.Context, req usergroup.GroupPermissionsRequest) (usergroup.UserGroupResponse, error) {
	if _, err := s.groupRepo.GetByID(ctx, req.GroupID); err != nil {
		return usergroup.UserGroupResponse{}, err
	}
	if err := s.groupRepo.RemovePermissions(ctx, req.GroupID, req.PermissionIDs); err != nil {
		return usergroup.UserGroupResponse{}, err
	}
	return s.reload(ctx, req.GroupID)
}

// users loads every id, failing when any of them is unknown.
func (s *UserGroupServiceImpl) users(ctx context.Context, ids []string) ([]user.User, error) {
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(users) != len(ids) {
		return nil, usergroup.ErrUserNotFound
	}
	return users, nil
}

func (s *UserGroupServiceImpl) reload(ctx context.Context, id string) (usergroup.UserGroupResponse, error) {
	g, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return usergroup.UserGroupResponse{}, err
	}
	return s.withMembers(ctx, g)
}

func (s *UserGroupServiceImpl) withMembers(ctx context.Context, g usergroup.UserGroup) (usergroup.UserGroupResponse, error) {
	members, err := s.userRepo.ListByGroup(ctx, g.ID)
	if err != nil {
		return usergroup.UserGroupResponse{}, err
	}
	resp := usergroup.NewUserGroupResponse(g)
	resp.Members = make([]user.UserResponse, 0, len(members))
	for _, m := range members {
		resp.Members = append(resp.Members, user.NewUserResponse(m))
	}
	return resp, nil
}
