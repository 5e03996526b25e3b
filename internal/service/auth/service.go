package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	usersvc "github.com/cmlabs-hris/payroll-backend-go/internal/service/user"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo  user.UserRepository
	tokenRepo auth.TokenRepository
	jwt       jwt.Service
}

func NewAuthService(userRepo user.UserRepository, tokenRepo auth.TokenRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwt:       jwtService,
	}
}

// Signup registers an active account without a group; an administrator
// assigns the group afterwards.
func (a *AuthServiceImpl) Signup(ctx context.Context, req auth.SignupRequest) (user.UserResponse, error) {
	taken, err := a.userRepo.ExistsByUsername(ctx, req.UserName, "")
	if err != nil {
		return user.UserResponse{}, err
	}
	if taken {
		return user.UserResponse{}, auth.ErrUsernameAlreadyExists
	}
	taken, err = a.userRepo.ExistsByEmail(ctx, req.Email, "")
	if err != nil {
		return user.UserResponse{}, err
	}
	if taken {
		return user.UserResponse{}, auth.ErrEmailAlreadyExists
	}

	hash, err := usersvc.HashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, err
	}

	created, err := a.userRepo.Create(ctx, user.User{
		FullName:     req.FullName,
		Username:     req.UserName,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(created), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.userRepo.GetByUsernameOrEmail(ctx, req.UsernameOrEmail)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	var tokenResponse auth.TokenResponse
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(userData.ID, userData.Username, userData.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwt.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	err = a.tokenRepo.Create(ctx, auth.RefreshToken{
		UserID:    userData.ID,
		Token:     tokenResponse.RefreshToken,
		ExpiresAt: time.Unix(tokenResponse.RefreshTokenExpiresIn, 0),
		UserAgent: session.UserAgent,
		IPAddress: session.IPAddress,
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}

	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	// 1. Verify signature, expiry and token type
	token, err := jwtauth.VerifyToken(a.jwt.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, _ := token.Get("type")
	if t, ok := tokenType.(string); !ok || t != jwt.TokenTypeRefresh {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 2. The stored copy decides revocation
	stored, err := a.tokenRepo.GetByToken(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}
	if stored.RevokedAt != nil {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	if !stored.Usable(time.Now()) {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 3. The owner must still be active
	userData, err := a.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, err
	}
	if !userData.IsActive {
		return auth.AccessTokenResponse{}, auth.ErrAccountInactive
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(userData.ID, userData.Username, userData.Email)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return resp, nil
}

// Logout revokes the refresh token and blacklists the access token until
// it expires.
func (a *AuthServiceImpl) Logout(ctx context.Context, req auth.LogoutRequest) error {
	if req.RefreshToken != "" {
		if err := a.tokenRepo.Revoke(ctx, req.RefreshToken); err != nil {
			return err
		}
	}
	if req.AccessToken != "" {
		a.jwt.RevokeToken(req.AccessToken, req.AccessTokenExpiresAt)
	}
	return nil
}

// CurrentUser implements auth.AuthService.
func (a *AuthServiceImpl) CurrentUser(ctx context.Context, userID string) (user.CurrentUserResponse, error) {
	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.CurrentUserResponse{}, auth.ErrUserNotFound
		}
		return user.CurrentUserResponse{}, err
	}

	access, err := a.userRepo.GetAccess(ctx, userID)
	if err != nil {
		return user.CurrentUserResponse{}, err
	}

	resp := user.CurrentUserResponse{UserResponse: user.NewUserResponse(userData)}
	if access.Group != nil {
		resp.Permissions = access.Group.Grants
	}
	if resp.Permissions == nil {
		resp.Permissions = []permission.Grant{}
	}
	return resp, nil
}
