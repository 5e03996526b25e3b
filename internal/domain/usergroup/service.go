package usergroup

import "context"

type UserGroupService interface {
	Create(ctx context.Context, req CreateUserGroupRequest) (UserGroupResponse, error)
	FindAll(ctx context.Context) ([]UserGroupResponse, error)
	FindByID(ctx context.Context, id string) (UserGroupResponse, error)
	Update(ctx context.Context, req UpdateUserGroupRequest) (UserGroupResponse, error)
	Delete(ctx context.Context, id string) error
	AddUsers(ctx context.Context, req MembershipRequest) (UserGroupResponse, error)
	RemoveUsers(ctx context.Context, req MembershipRequest) (UserGroupResponse, error)
	AddPermissions(ctx context.Context, req GroupPermissionsRequest) (UserGroupResponse, error)
	RemovePermissions(ctx context.Context, req GroupPermissionsRequest) (UserGroupResponse, error)
}
