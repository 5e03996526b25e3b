package permission

import "context"

type PermissionService interface {
	Create(ctx context.Context, req CreatePermissionRequest) (PermissionResponse, error)
	FindAll(ctx context.Context) ([]PermissionResponse, error)
	FindByID(ctx context.Context, id string) (PermissionResponse, error)
	FindByResource(ctx context.Context, resource string) ([]PermissionResponse, error)
	Update(ctx context.Context, req UpdatePermissionRequest) (PermissionResponse, error)
	Delete(ctx context.Context, id string) error
}

// AccessChecker authorizes a user against required grants, loading the user's
// group and permissions fresh on every call.
type AccessChecker interface {
	Check(ctx context.Context, userID string, required Grant) error
	CheckAny(ctx context.Context, userID string, required ...Grant) error
	CheckAll(ctx context.Context, userID string, required ...Grant) error
}
