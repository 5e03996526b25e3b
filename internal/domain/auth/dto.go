package auth

import (
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type SignupRequest struct {
	FullName        string `json:"full_name"`
	UserName        string `json:"user_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *SignupRequest) Validate() error {
	var errs validator.ValidationErrors

	r.FullName = strings.TrimSpace(r.FullName)
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if validator.IsEmpty(r.FullName) {
		errs.Add("full_name", "full_name is required")
	} else if len(r.FullName) < 2 || len(r.FullName) > 50 {
		errs.Add("full_name", "full_name must be between 2 and 50 characters")
	}

	if validator.IsEmpty(r.UserName) {
		errs.Add("user_name", "user_name is required")
	} else if !validator.IsValidUsername(r.UserName) {
		errs.Add("user_name", "user_name must be 7-20 characters of letters, numbers, dots, underscores or hyphens")
	}

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if len(r.Email) > 254 || !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	user.ValidatePassword(&errs, "password", r.Password, "confirm_password", r.ConfirmPassword)

	return errs.Err()
}

type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.UsernameOrEmail = strings.TrimSpace(r.UsernameOrEmail)
	if validator.IsEmpty(r.UsernameOrEmail) {
		errs.Add("username_or_email", "username_or_email is required")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) < 6 {
		errs.Add("password", "password must be at least 6 characters long")
	}

	return errs.Err()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refresh_token", "refresh_token is required")
	}
	return errs.Err()
}

// LogoutRequest carries the credentials to revoke.
type LogoutRequest struct {
	RefreshToken         string
	AccessToken          string
	AccessTokenExpiresAt int64
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}
