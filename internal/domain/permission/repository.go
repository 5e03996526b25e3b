package permission

import "context"

type PermissionRepository interface {
	Create(ctx context.Context, p Permission) (Permission, error)
	GetByID(ctx context.Context, id string) (Permission, error)
	GetByIDs(ctx context.Context, ids []string) ([]Permission, error)
	FindAll(ctx context.Context) ([]Permission, error)
	FindByResource(ctx context.Context, resource string) ([]Permission, error)
	Update(ctx context.Context, p Permission) (Permission, error)
	Delete(ctx context.Context, id string) error
}
