package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	userRepo user.UserRepository
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// HashPassword hashes a plain password with the default bcrypt cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := s.checkUnique(ctx, req.UserName, req.Email, ""); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, err
	}

	created, err := s.userRepo.Create(ctx, user.User{
		FullName:     req.FullName,
		Username:     req.UserName,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
		UserGroupID:  req.UserGroupID,
	})
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(created), nil
}

// FindAll implements user.UserService.
func (s *UserServiceImpl) FindAll(ctx context.Context, filter user.UserFilter) (pagination.Page[user.UserResponse], error) {
	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return pagination.Page[user.UserResponse]{}, err
	}
	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}
	return pagination.NewPage(responses, total, filter.Params), nil
}

// FindByID implements user.UserService.
func (s *UserServiceImpl) FindByID(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	username, email := "", ""
	if req.UserName != nil && *req.UserName != u.Username {
		username = *req.UserName
	}
	if req.Email != nil && *req.Email != u.Email {
		email = *req.Email
	}
	if err := s.checkUnique(ctx, username, email, u.ID); err != nil {
		return user.UserResponse{}, err
	}

	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.UserName != nil {
		u.Username = *req.UserName
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.UserGroupID != nil {
		u.UserGroupID = req.UserGroupID
	}

	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(updated), nil
}

// Delete implements user.UserService. Users cannot delete themselves.
func (s *UserServiceImpl) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return user.ErrCannotDeleteSelf
	}
	return s.userRepo.Delete(ctx, id)
}

// ToggleStatus flips the active flag of a user other than the actor.
func (s *UserServiceImpl) ToggleStatus(ctx context.Context, actorID, id string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	if actorID == id && u.IsActive {
		return user.UserResponse{}, user.ErrCannotDeactivateSelf
	}

	if err := s.userRepo.SetActive(ctx, id, !u.IsActive); err != nil {
		return user.UserResponse{}, err
	}
	u.IsActive = !u.IsActive
	return user.NewUserResponse(u), nil
}

// ChangePassword implements user.UserService.
func (s *UserServiceImpl) ChangePassword(ctx context.Context, req user.ChangePasswordRequest) error {
	u, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.OldPassword)); err != nil {
		return user.ErrInvalidOldPassword
	}
	if req.OldPassword == req.NewPassword {
		return user.ErrSamePassword
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, u.ID, hash)
}

// Search implements user.UserService.
func (s *UserServiceImpl) Search(ctx context.Context, filter user.UserFilter) (pagination.Page[user.UserResponse], error) {
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.Query == "" {
		return pagination.Page[user.UserResponse]{}, user.ErrUserSearchQueryNeeded
	}
	return s.FindAll(ctx, filter)
}

// ListByGroup implements user.UserService.
func (s *UserServiceImpl) ListByGroup(ctx context.Context, groupID string) ([]user.UserResponse, error) {
	users, err := s.userRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}
	return responses, nil
}

// checkUnique rejects a username or email already held by another user.
// Empty values are not checked.
func (s *UserServiceImpl) checkUnique(ctx context.Context, username, email, excludeID string) error {
	var errs []error
	if username != "" {
		taken, err := s.userRepo.ExistsByUsername(ctx, username, excludeID)
		if err != nil {
			return err
		}
		if taken {
			errs = append(errs, user.ErrUsernameExists)
		}
	}
	if email != "" {
		taken, err := s.userRepo.ExistsByEmail(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			errs = append(errs, user.ErrUserEmailExists)
		}
	}
	return errors.Join(errs...)
}
