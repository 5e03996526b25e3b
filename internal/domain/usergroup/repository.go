package usergroup

import "context"

type UserGroupRepository interface {
	// Create inserts the group and links permissionIDs in one transaction.
	Create(ctx context.Context, g UserGroup, permissionIDs []string) (UserGroup, error)
	GetByID(ctx context.Context, id string) (UserGroup, error)
	FindAll(ctx context.Context) ([]UserGroup, error)
	// Update saves name and description and, when permissionIDs is non-nil,
	// replaces the linked permissions, all in one transaction.
	Update(ctx context.Context, g UserGroup, permissionIDs *[]string) (UserGroup, error)
	// Delete removes the group; members are left without a group.
	Delete(ctx context.Context, id string) error
	// AddPermissions links permissions, ignoring ones already linked.
	AddPermissions(ctx context.Context, groupID string, permissionIDs []string) error
	RemovePermissions(ctx context.Context, groupID string, permissionIDs []string) error
}
