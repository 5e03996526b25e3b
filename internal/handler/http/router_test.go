package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, req auth.SignupRequest) (user.UserResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(user.UserResponse), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	args := m.Called(ctx, req, session)
	return args.Get(0).(auth.TokenResponse), args.Error(1)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(auth.AccessTokenResponse), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, req auth.LogoutRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthService) CurrentUser(ctx context.Context, userID string) (user.CurrentUserResponse, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(user.CurrentUserResponse), args.Error(1)
}

type mockEmployeeService struct {
	employee.EmployeeService
	mock.Mock
}

func (m *mockEmployeeService) FindAll(ctx context.Context, filter employee.EmployeeFilter) (pagination.Page[employee.EmployeeResponse], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(pagination.Page[employee.EmployeeResponse]), args.Error(1)
}

func (m *mockEmployeeService) FindByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(employee.EmployeeResponse), args.Error(1)
}

// grantChecker allows exactly the listed grants.
type grantChecker struct {
	grants []permission.Grant
}

func (g grantChecker) Check(_ context.Context, _ string, required permission.Grant) error {
	for _, grant := range g.grants {
		if grant == required {
			return nil
		}
	}
	return permission.ErrPermissionDenied
}

func (g grantChecker) CheckAny(ctx context.Context, userID string, required ...permission.Grant) error {
	for _, r := range required {
		if g.Check(ctx, userID, r) == nil {
			return nil
		}
	}
	return permission.ErrPermissionDenied
}

func (g grantChecker) CheckAll(ctx context.Context, userID string, required ...permission.Grant) error {
	for _, r := range required {
		if err := g.Check(ctx, userID, r); err != nil {
			return err
		}
	}
	return nil
}

type testServer struct {
	handler   http.Handler
	jwt       jwt.Service
	auth      *mockAuthService
	employees *mockEmployeeService
}

func newTestServer(grants ...permission.Grant) testServer {
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", time.Hour, 24*time.Hour)
	authSvc := new(mockAuthService)
	employeeSvc := new(mockEmployeeService)

	handlers := Handlers{
		Auth:         NewAuthHandler(jwtService, authSvc),
		Employee:     NewEmployeeHandler(employeeSvc),
		Department:   NewDepartmentHandler(nil, employeeSvc),
		Attendance:   NewAttendanceHandler(nil),
		SalaryReport: NewSalaryReportHandler(nil),
		Holiday:      NewHolidayHandler(nil),
		Setting:      NewSettingHandler(nil),
		User:         NewUserHandler(nil),
		UserGroup:    NewUserGroupHandler(nil, nil),
		Permission:   NewPermissionHandler(nil),
	}
	router := NewRouter(RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}}, jwtService, grantChecker{grants: grants}, handlers)
	return testServer{handler: router, jwt: jwtService, auth: authSvc, employees: employeeSvc}
}

func (s testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s testServer) token(t *testing.T) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken("u1", "jane.doe", "jane@example.com")
	require.NoError(t, err)
	return token
}

func TestRouter_Heartbeat(t *testing.T) {
	s := newTestServer()
	rec := s.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Metrics(t *testing.T) {
	s := newTestServer()
	rec := s.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	s := newTestServer()
	rec := s.do(t, http.MethodGet, "/api/v1/employees", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RequiresPermission(t *testing.T) {
	s := newTestServer(permission.NewGrant(permission.ResourceEmployees, permission.ActionCreate))
	rec := s.do(t, http.MethodGet, "/api/v1/employees/0190a0b4-1111-7000-8000-000000000001", nil, s.token(t))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEmployeeHandler_Get(t *testing.T) {
	s := newTestServer(permission.NewGrant(permission.ResourceEmployees, permission.ActionRead))
	id := "0190a0b4-1111-7000-8000-000000000001"
	s.employees.On("FindByID", mock.Anything, id).Return(employee.EmployeeResponse{ID: id, FullName: "Jane Doe"}, nil)
	s.employees.On("FindByID", mock.Anything, "0190a0b4-1111-7000-8000-0000000000ff").Return(employee.EmployeeResponse{}, employee.ErrEmployeeNotFound)

	rec := s.do(t, http.MethodGet, "/api/v1/employees/"+id, nil, s.token(t))
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool                      `json:"success"`
		Data    employee.EmployeeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Jane Doe", body.Data.FullName)

	rec = s.do(t, http.MethodGet, "/api/v1/employees/0190a0b4-1111-7000-8000-0000000000ff", nil, s.token(t))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmployeeHandler_List_PassesFilter(t *testing.T) {
	s := newTestServer(permission.NewGrant(permission.ResourceEmployees, permission.ActionRead))
	s.employees.On("FindAll", mock.Anything, mock.MatchedBy(func(f employee.EmployeeFilter) bool {
		return f.Query == "jane" && f.IsActive != nil && *f.IsActive && f.Page == 2 && f.Limit == 5
	})).Return(pagination.NewPage([]employee.EmployeeResponse{{ID: "e1"}}, 6, pagination.Params{Page: 2, Limit: 5}), nil)

	rec := s.do(t, http.MethodGet, "/api/v1/employees?q=jane&is_active=true&page=2&limit=5", nil, s.token(t))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"showing":"6-6 of 6"`)
}

func TestEmployeeHandler_List_RejectsLargeLimit(t *testing.T) {
	s := newTestServer(permission.NewGrant(permission.ResourceEmployees, permission.ActionRead))
	rec := s.do(t, http.MethodGet, "/api/v1/employees?limit=500", nil, s.token(t))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestEmployeeHandler_Create_ValidationError(t *testing.T) {
	s := newTestServer(permission.NewGrant(permission.ResourceEmployees, permission.ActionCreate))
	rec := s.do(t, http.MethodPost, "/api/v1/employees", map[string]any{"full_name": ""}, s.token(t))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error.Details, "full_name")
}

func TestAuthHandler_LoginSetsRefreshCookie(t *testing.T) {
	s := newTestServer()
	s.auth.On("Login", mock.Anything, auth.LoginRequest{UsernameOrEmail: "jane.doe", Password: "password123"}, mock.Anything).
		Return(auth.TokenResponse{AccessToken: "a", RefreshToken: "r", RefreshTokenExpiresIn: time.Now().Add(time.Hour).Unix()}, nil)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"username_or_email": "jane.doe", "password": "password123"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "refresh_token", cookies[0].Name)
	assert.Equal(t, "r", cookies[0].Value)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	s := newTestServer()
	s.auth.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(auth.TokenResponse{}, auth.ErrInvalidCredentials)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"username_or_email": "jane.doe", "password": "wrongpass"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_LogoutRevokesAccessToken(t *testing.T) {
	s := newTestServer()
	token := s.token(t)
	s.auth.On("Logout", mock.Anything, mock.MatchedBy(func(req auth.LogoutRequest) bool {
		return req.RefreshToken == "refresh" && req.AccessToken == token && req.AccessTokenExpiresAt > 0
	})).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "refresh"})
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	s.auth.AssertExpectations(t)
}

func TestRouter_RevokedTokenRejectedFromAnySource(t *testing.T) {
	s := newTestServer(permission.NewGrant(permission.ResourceEmployees, permission.ActionRead))
	token, exp, err := s.jwt.GenerateAccessToken("u1", "jane.doe", "jane@example.com")
	require.NoError(t, err)
	s.jwt.RevokeToken(token, exp)

	rec := s.do(t, http.MethodGet, "/api/v1/employees/0190a0b4-1111-7000-8000-000000000001", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/0190a0b4-1111-7000-8000-000000000001", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	s.employees.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestRouter_MalformedIDIsValidationError(t *testing.T) {
	s := newTestServer(
		permission.NewGrant(permission.ResourceEmployees, permission.ActionRead),
		permission.NewGrant(permission.ResourceEmployees, permission.ActionDelete),
		permission.NewGrant(permission.ResourceAttendance, permission.ActionRead),
		permission.NewGrant(permission.ResourceSalaryReports, permission.ActionRead),
	)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/attendance/not-a-uuid"},
		{http.MethodGet, "/api/v1/employees/abc"},
		{http.MethodDelete, "/api/v1/employees/abc"},
		{http.MethodGet, "/api/v1/salary-reports/123"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := s.do(t, p.method, p.path, nil, s.token(t))
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var body response.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body.Error.Details, "id")
		})
	}
	s.employees.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
