package user

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
)

type UserFilter struct {
	Query       string
	UserGroupID *string
	IsActive    *bool
	pagination.Params
}

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByIDs(ctx context.Context, ids []string) ([]User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (User, error)
	ExistsByUsername(ctx context.Context, username string, excludeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error)
	FindAll(ctx context.Context, filter UserFilter) ([]User, int64, error)
	ListByGroup(ctx context.Context, groupID string) ([]User, error)
	Update(ctx context.Context, u User) (User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetActive(ctx context.Context, id string, active bool) error
	// AssignGroup sets the group of every listed user; a nil groupID clears it.
	AssignGroup(ctx context.Context, groupID *string, userIDs []string) (int64, error)
	Delete(ctx context.Context, id string) error
	GetAccess(ctx context.Context, userID string) (Access, error)
}
