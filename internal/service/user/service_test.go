package user

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

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

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error) {
	args := m.Called(ctx, username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) FindAll(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]user.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestCreate_HashesPassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc := NewUserService(repo)
	ctx := context.Background()

	repo.On("ExistsByUsername", ctx, "jane.doe", "").Return(false, nil)
	repo.On("ExistsByEmail", ctx, "jane@example.com", "").Return(false, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(u user.User) bool {
		return u.IsActive && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
	})).Return(user.User{ID: "u1", Username: "jane.doe", Email: "jane@example.com", IsActive: true}, nil)

	resp, err := svc.Create(ctx, user.CreateUserRequest{
		FullName: "Jane Doe", UserName: "jane.doe", Email: "jane@example.com",
		Password: "secret123", ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.ID)
	assert.True(t, resp.IsActive)
}

func TestCreate_ReportsBothConflicts(t *testing.T) {
	repo := new(mockUserRepository)
	svc := NewUserService(repo)
	ctx := context.Background()

	repo.On("ExistsByUsername", ctx, "jane.doe", "").Return(true, nil)
	repo.On("ExistsByEmail", ctx, "jane@example.com", "").Return(true, nil)

	_, err := svc.Create(ctx, user.CreateUserRequest{UserName: "jane.doe", Email: "jane@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, user.ErrUsernameExists)
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDelete_Self(t *testing.T) {
	svc := NewUserService(new(mockUserRepository))
	err := svc.Delete(context.Background(), "u1", "u1")
	assert.ErrorIs(t, err, user.ErrCannotDeleteSelf)
}

func TestToggleStatus(t *testing.T) {
	repo := new(mockUserRepository)
	svc := NewUserService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "u1").Return(user.User{ID: "u1", IsActive: true}, nil)
	repo.On("GetByID", ctx, "u2").Return(user.User{ID: "u2", IsActive: true}, nil)
	repo.On("SetActive", ctx, "u2", false).Return(nil)

	_, err := svc.ToggleStatus(ctx, "u1", "u1")
	assert.ErrorIs(t, err, user.ErrCannotDeactivateSelf)

	resp, err := svc.ToggleStatus(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
}

func TestChangePassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc := NewUserService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "u1").Return(user.User{ID: "u1", PasswordHash: hashed(t, "oldpass123")}, nil)
	repo.On("UpdatePassword", ctx, "u1", mock.AnythingOfType("string")).Return(nil)

	err := svc.ChangePassword(ctx, user.ChangePasswordRequest{ID: "u1", OldPassword: "wrongpass", NewPassword: "newpass123"})
	assert.ErrorIs(t, err, user.ErrInvalidOldPassword)

	err = svc.ChangePassword(ctx, user.ChangePasswordRequest{ID: "u1", OldPassword: "oldpass123", NewPassword: "oldpass123"})
	assert.ErrorIs(t, err, user.ErrSamePassword)

	err = svc.ChangePassword(ctx, user.ChangePasswordRequest{ID: "u1", OldPassword: "oldpass123", NewPassword: "newpass123"})
	require.NoError(t, err)
	repo.AssertCalled(t, "UpdatePassword", ctx, "u1", mock.AnythingOfType("string"))
}

func TestSearch_RequiresQuery(t *testing.T) {
	repo := new(mockUserRepository)
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.Search(ctx, user.UserFilter{Query: "   "})
	assert.ErrorIs(t, err, user.ErrUserSearchQueryNeeded)

	filter := user.UserFilter{Query: "jane", Params: pagination.Params{Page: 1, Limit: 10}}
	repo.On("FindAll", ctx, filter).Return([]user.User{{ID: "u1"}}, int64(1), nil)

	page, err := svc.Search(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}
