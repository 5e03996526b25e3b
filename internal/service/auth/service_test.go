package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

type mockUserRepository struct {
	user.UserRepository
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepository) GetByUsernameOrEmail(ctx context.Context, identifier string) (user.User, error) {
	args := m.Called(ctx, identifier)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error) {
	args := m.Called(ctx, username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) GetAccess(ctx context.Context, userID string) (user.Access, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(user.Access), args.Error(1)
}

type mockTokenRepository struct {
	mock.Mock
}

func (m *mockTokenRepository) Create(ctx context.Context, token auth.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenRepository) GetByToken(ctx context.Context, token string) (auth.RefreshToken, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(auth.RefreshToken), args.Error(1)
}

func (m *mockTokenRepository) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenRepository) DeleteStale(ctx context.Context, expiredBefore, revokedBefore time.Time) (int64, error) {
	args := m.Called(ctx, expiredBefore, revokedBefore)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService() (*AuthServiceImpl, *mockUserRepository, *mockTokenRepository, jwt.Service) {
	users := new(mockUserRepository)
	tokens := new(mockTokenRepository)
	jwtService := jwt.NewJWTService(testSecret, time.Hour, 24*time.Hour)
	return NewAuthService(users, tokens, jwtService).(*AuthServiceImpl), users, tokens, jwtService
}

func activeUser(t *testing.T) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	return user.User{ID: "u1", Username: "jane.doe", Email: "jane@example.com", PasswordHash: string(hash), IsActive: true}
}

func TestLogin_Success(t *testing.T) {
	svc, users, tokens, _ := newTestService()
	ctx := context.Background()

	users.On("GetByUsernameOrEmail", ctx, "jane.doe").Return(activeUser(t), nil)
	tokens.On("Create", ctx, mock.MatchedBy(func(rt auth.RefreshToken) bool {
		return rt.UserID == "u1" && rt.Token != "" && rt.IPAddress == "127.0.0.1"
	})).Return(nil)

	resp, err := svc.Login(ctx, auth.LoginRequest{UsernameOrEmail: "jane.doe", Password: "password123"},
		auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.RefreshTokenExpiresIn, resp.AccessTokenExpiresIn)
	tokens.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()

	users.On("GetByUsernameOrEmail", ctx, "jane.doe").Return(activeUser(t), nil)
	users.On("GetByUsernameOrEmail", ctx, "nobody").Return(user.User{}, user.ErrUserNotFound)

	_, err := svc.Login(ctx, auth.LoginRequest{UsernameOrEmail: "jane.doe", Password: "wrongpass"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{UsernameOrEmail: "nobody", Password: "password123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()

	u := activeUser(t)
	u.IsActive = false
	users.On("GetByUsernameOrEmail", ctx, "jane.doe").Return(u, nil)

	_, err := svc.Login(ctx, auth.LoginRequest{UsernameOrEmail: "jane.doe", Password: "password123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestSignup_UsernameTaken(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()

	users.On("ExistsByUsername", ctx, "jane.doe", "").Return(true, nil)

	_, err := svc.Signup(ctx, auth.SignupRequest{UserName: "jane.doe", Email: "jane@example.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrUsernameAlreadyExists)
}

func TestSignup_CreatesActiveUserWithoutGroup(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()

	users.On("ExistsByUsername", ctx, "jane.doe", "").Return(false, nil)
	users.On("ExistsByEmail", ctx, "jane@example.com", "").Return(false, nil)
	users.On("Create", ctx, mock.MatchedBy(func(u user.User) bool {
		return u.IsActive && u.UserGroupID == nil && u.PasswordHash != "password123"
	})).Return(user.User{ID: "u1", Username: "jane.doe", IsActive: true}, nil)

	resp, err := svc.Signup(ctx, auth.SignupRequest{FullName: "Jane", UserName: "jane.doe", Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.ID)
}

func TestRefreshToken(t *testing.T) {
	svc, users, tokens, jwtService := newTestService()
	ctx := context.Background()

	refresh, exp, err := jwtService.GenerateRefreshToken("u1")
	require.NoError(t, err)
	access, _, err := jwtService.GenerateAccessToken("u1", "jane.doe", "jane@example.com")
	require.NoError(t, err)

	tokens.On("GetByToken", ctx, refresh).Return(auth.RefreshToken{UserID: "u1", ExpiresAt: time.Unix(exp, 0)}, nil)
	users.On("GetByID", ctx, "u1").Return(activeUser(t), nil)

	resp, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: refresh})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: access})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "not-a-jwt"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshToken_Revoked(t *testing.T) {
	svc, _, tokens, jwtService := newTestService()
	ctx := context.Background()

	refresh, exp, err := jwtService.GenerateRefreshToken("u1")
	require.NoError(t, err)
	revokedAt := time.Now()
	tokens.On("GetByToken", ctx, refresh).Return(auth.RefreshToken{UserID: "u1", ExpiresAt: time.Unix(exp, 0), RevokedAt: &revokedAt}, nil)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: refresh})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLogout_RevokesBothTokens(t *testing.T) {
	svc, _, tokens, jwtService := newTestService()
	ctx := context.Background()

	access, exp, err := jwtService.GenerateAccessToken("u1", "jane.doe", "jane@example.com")
	require.NoError(t, err)
	tokens.On("Revoke", ctx, "refresh-token").Return(nil)

	err = svc.Logout(ctx, auth.LogoutRequest{RefreshToken: "refresh-token", AccessToken: access, AccessTokenExpiresAt: exp})
	require.NoError(t, err)
	assert.True(t, jwtService.IsTokenRevoked(access))
	tokens.AssertExpectations(t)
}

func TestCurrentUser_IncludesGrants(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()

	grant := permission.NewGrant(permission.ResourceEmployees, permission.ActionRead)
	users.On("GetByID", ctx, "u1").Return(activeUser(t), nil)
	users.On("GetAccess", ctx, "u1").Return(user.Access{UserID: "u1", IsActive: true, Group: &user.GroupAccess{ID: "g1", Grants: []permission.Grant{grant}}}, nil)
	users.On("GetByID", ctx, "u2").Return(user.User{ID: "u2"}, nil)
	users.On("GetAccess", ctx, "u2").Return(user.Access{UserID: "u2"}, nil)

	resp, err := svc.CurrentUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []permission.Grant{grant}, resp.Permissions)

	resp, err = svc.CurrentUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, resp.Permissions)
	assert.NotNil(t, resp.Permissions)
}
