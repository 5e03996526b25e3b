package permission

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

type AccessCheckerImpl struct {
	userRepo user.UserRepository
}

func NewAccessChecker(userRepo user.UserRepository) permission.AccessChecker {
	return &AccessCheckerImpl{userRepo: userRepo}
}

// Check implements permission.AccessChecker.
func (c *AccessCheckerImpl) Check(ctx context.Context, userID string, required permission.Grant) error {
	access, err := c.access(ctx, userID)
	if err != nil {
		return err
	}
	return Evaluate(access, required)
}

// CheckAny implements permission.AccessChecker.
func (c *AccessCheckerImpl) CheckAny(ctx context.Context, userID string, required ...permission.Grant) error {
	access, err := c.access(ctx, userID)
	if err != nil {
		return err
	}
	return EvaluateAny(access, required...)
}

// CheckAll implements permission.AccessChecker.
func (c *AccessCheckerImpl) CheckAll(ctx context.Context, userID string, required ...permission.Grant) error {
	access, err := c.access(ctx, userID)
	if err != nil {
		return err
	}
	return EvaluateAll(access, required...)
}

func (c *AccessCheckerImpl) access(ctx context.Context, userID string) (user.Access, error) {
	access, err := c.userRepo.GetAccess(ctx, userID)
	if errors.Is(err, user.ErrUserNotFound) {
		return user.Access{}, permission.ErrUnknownSubject
	}
	if err != nil {
		return user.Access{}, err
	}
	if !access.IsActive {
		return user.Access{}, permission.ErrUnknownSubject
	}
	return access, nil
}
