package user

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
)

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	FindAll(ctx context.Context, filter UserFilter) (pagination.Page[UserResponse], error)
	FindByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	ToggleStatus(ctx context.Context, actorID, id string) (UserResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	Search(ctx context.Context, filter UserFilter) (pagination.Page[UserResponse], error)
	ListByGroup(ctx context.Context, groupID string) ([]UserResponse, error)
}
