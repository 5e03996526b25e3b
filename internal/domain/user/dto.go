package user

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type UserResponse struct {
	ID            string  `json:"id"`
	FullName      string  `json:"full_name"`
	UserName      string  `json:"user_name"`
	Email         string  `json:"email"`
	IsActive      bool    `json:"is_active"`
	UserGroupID   *string `json:"user_group_id,omitempty"`
	UserGroupName *string `json:"user_group_name,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// CurrentUserResponse is the authenticated user with the group's grants.
type CurrentUserResponse struct {
	UserResponse
	Permissions []permission.Grant `json:"permissions"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		FullName:      u.FullName,
		UserName:      u.Username,
		Email:         u.Email,
		IsActive:      u.IsActive,
		UserGroupID:   u.UserGroupID,
		UserGroupName: u.UserGroupName,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}

// ValidatePassword checks length and confirmation of a new password.
func ValidatePassword(errs *validator.ValidationErrors, field, password, confirmField, confirm string) {
	if validator.IsEmpty(password) {
		errs.Add(field, field+" is required")
	} else if len(password) < 8 {
		errs.Add(field, field+" must be at least 8 characters long")
	} else if len(password) > 72 {
		errs.Add(field, field+" must not exceed 72 characters")
	}
	if validator.IsEmpty(confirm) {
		errs.Add(confirmField, confirmField+" is required")
	} else if confirm != password {
		errs.Add(confirmField, field+" and "+confirmField+" do not match")
	}
}

func validateFullName(errs *validator.ValidationErrors, name string) {
	if validator.IsEmpty(name) {
		errs.Add("full_name", "full_name is required")
	} else if len(name) < 2 || len(name) > 50 {
		errs.Add("full_name", "full_name must be between 2 and 50 characters")
	}
}

func validateUserName(errs *validator.ValidationErrors, name string) {
	if validator.IsEmpty(name) {
		errs.Add("user_name", "user_name is required")
	} else if !validator.IsValidUsername(name) {
		errs.Add("user_name", "user_name must be 7-20 characters of letters, numbers, dots, underscores or hyphens")
	}
}

func validateEmail(errs *validator.ValidationErrors, email string) {
	if validator.IsEmpty(email) {
		errs.Add("email", "email is required")
	} else if len(email) > 254 || !validator.IsValidEmail(email) {
		errs.Add("email", "email must be a valid email address")
	}
}

type CreateUserRequest struct {
	FullName        string  `json:"full_name"`
	UserName        string  `json:"user_name"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
	UserGroupID     *string `json:"user_group_id,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	r.FullName = strings.TrimSpace(r.FullName)
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	validateFullName(&errs, r.FullName)
	validateUserName(&errs, r.UserName)
	validateEmail(&errs, r.Email)
	ValidatePassword(&errs, "password", r.Password, "confirm_password", r.ConfirmPassword)
	if r.UserGroupID != nil && !validator.IsValidUUID(*r.UserGroupID) {
		errs.Add("user_group_id", "user_group_id must be a valid UUID")
	}

	return errs.Err()
}

type UpdateUserRequest struct {
	ID          string  `json:"-"`
	FullName    *string `json:"full_name,omitempty"`
	UserName    *string `json:"user_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	UserGroupID *string `json:"user_group_id,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.FullName != nil {
		v := strings.TrimSpace(*r.FullName)
		r.FullName = &v
		validateFullName(&errs, v)
	}
	if r.UserName != nil {
		v := strings.TrimSpace(*r.UserName)
		r.UserName = &v
		validateUserName(&errs, v)
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
		validateEmail(&errs, v)
	}
	if r.UserGroupID != nil && !validator.IsValidUUID(*r.UserGroupID) {
		errs.Add("user_group_id", "user_group_id must be a valid UUID")
	}

	return errs.Err()
}

type ChangePasswordRequest struct {
	ID              string `json:"-"`
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if validator.IsEmpty(r.OldPassword) {
		errs.Add("old_password", "old_password is required")
	}
	ValidatePassword(&errs, "new_password", r.NewPassword, "confirm_password", r.ConfirmPassword)

	return errs.Err()
}
