package usergroup

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/usergroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGroupRepository struct {
	mock.Mock
}

func (m *mockGroupRepository) Create(ctx context.Context, g usergroup.UserGroup, permissionIDs []string) (usergroup.UserGroup, error) {
	args := m.Called(ctx, g, permissionIDs)
	return args.Get(0).(usergroup.UserGroup), args.Error(1)
}

func (m *mockGroupRepository) GetByID(ctx context.Context, id string) (usergroup.UserGroup, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(usergroup.UserGroup), args.Error(1)
}

func (m *mockGroupRepository) FindAll(ctx context.Context) ([]usergroup.UserGroup, error) {
	args := m.Called(ctx)
	return args.Get(0).([]usergroup.UserGroup), args.Error(1)
}

func (m *mockGroupRepository) Update(ctx context.Context, g usergroup.UserGroup, permissionIDs *[]string) (usergroup.UserGroup, error) {
	args := m.Called(ctx, g, permissionIDs)
	return args.Get(0).(usergroup.UserGroup), args.Error(1)
}

func (m *mockGroupRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockGroupRepository) AddPermissions(ctx context.Context, groupID string, permissionIDs []string) error {
	return m.Called(ctx, groupID, permissionIDs).Error(0)
}

func (m *mockGroupRepository) RemovePermissions(ctx context.Context, groupID string, permissionIDs []string) error {
	return m.Called(ctx, groupID, permissionIDs).Error(0)
}

type mockUserRepository struct {
	user.UserRepository
	mock.Mock
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *mockUserRepository) ListByGroup(ctx context.Context, groupID string) ([]user.User, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *mockUserRepository) AssignGroup(ctx context.Context, groupID *string, userIDs []string) (int64, error) {
	args := m.Called(ctx, groupID, userIDs)
	return args.Get(0).(int64), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestAddUsers_AssignsGroup(t *testing.T) {
	groups := new(mockGroupRepository)
	users := new(mockUserRepository)
	svc := NewUserGroupService(groups, users)
	ctx := context.Background()

	g := usergroup.UserGroup{ID: "g1", Name: "HR"}
	groups.On("GetByID", ctx, "g1").Return(g, nil)
	users.On("GetByIDs", ctx, []string{"u1", "u2"}).Return([]user.User{{ID: "u1"}, {ID: "u2"}}, nil)
	users.On("AssignGroup", ctx, mock.MatchedBy(func(id *string) bool { return id != nil && *id == "g1" }), []string{"u1", "u2"}).Return(int64(2), nil)
	users.On("ListByGroup", ctx, "g1").Return([]user.User{{ID: "u1"}, {ID: "u2"}}, nil)

	resp, err := svc.AddUsers(ctx, usergroup.MembershipRequest{GroupID: "g1", UserIDs: []string{"u1", "u2"}})
	require.NoError(t, err)
	assert.Len(t, resp.Members, 2)
	users.AssertExpectations(t)
}

func TestAddUsers_UnknownUser(t *testing.T) {
	groups := new(mockGroupRepository)
	users := new(mockUserRepository)
	svc := NewUserGroupService(groups, users)
	ctx := context.Background()

	groups.On("GetByID", ctx, "g1").Return(usergroup.UserGroup{ID: "g1"}, nil)
	users.On("GetByIDs", ctx, []string{"u1", "u9"}).Return([]user.User{{ID: "u1"}}, nil)

	_, err := svc.AddUsers(ctx, usergroup.MembershipRequest{GroupID: "g1", UserIDs: []string{"u1", "u9"}})
	assert.ErrorIs(t, err, usergroup.ErrUserNotFound)
	users.AssertNotCalled(t, "AssignGroup", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveUsers_OnlyClearsMembers(t *testing.T) {
	groups := new(mockGroupRepository)
	users := new(mockUserRepository)
	svc := NewUserGroupService(groups, users)
	ctx := context.Background()

	groups.On("GetByID", ctx, "g1").Return(usergroup.UserGroup{ID: "g1"}, nil)
	users.On("GetByIDs", ctx, []string{"u1", "u2"}).Return([]user.User{
		{ID: "u1", UserGroupID: strPtr("g1")},
		{ID: "u2", UserGroupID: strPtr("g2")},
	}, nil)
	users.On("AssignGroup", ctx, (*string)(nil), []string{"u1"}).Return(int64(1), nil)
	users.On("ListByGroup", ctx, "g1").Return([]user.User{}, nil)

	resp, err := svc.RemoveUsers(ctx, usergroup.MembershipRequest{GroupID: "g1", UserIDs: []string{"u1", "u2"}})
	require.NoError(t, err)
	assert.Empty(t, resp.Members)
	users.AssertExpectations(t)
}

func TestUpdate_MergesFields(t *testing.T) {
	groups := new(mockGroupRepository)
	svc := NewUserGroupService(groups, new(mockUserRepository))
	ctx := context.Background()

	existing := usergroup.UserGroup{ID: "g1", Name: "HR", Description: strPtr("people")}
	groups.On("GetByID", ctx, "g1").Return(existing, nil)
	groups.On("Update", ctx, mock.MatchedBy(func(g usergroup.UserGroup) bool {
		return g.Name == "Finance" && *g.Description == "people"
	}), (*[]string)(nil)).Return(usergroup.UserGroup{ID: "g1", Name: "Finance", Description: strPtr("people")}, nil)

	resp, err := svc.Update(ctx, usergroup.UpdateUserGroupRequest{ID: "g1", Name: strPtr("Finance")})
	require.NoError(t, err)
	assert.Equal(t, "Finance", resp.Name)
}

func TestAddPermissions_UnknownGroup(t *testing.T) {
	groups := new(mockGroupRepository)
	svc := NewUserGroupService(groups, new(mockUserRepository))
	ctx := context.Background()

	groups.On("GetByID", ctx, "g9").Return(usergroup.UserGroup{}, usergroup.ErrUserGroupNotFound)

	_, err := svc.AddPermissions(ctx, usergroup.GroupPermissionsRequest{GroupID: "g9", PermissionIDs: []string{"p1"}})
	assert.ErrorIs(t, err, usergroup.ErrUserGroupNotFound)
	groups.AssertNotCalled(t, "AddPermissions", mock.Anything, mock.Anything, mock.Anything)
}
