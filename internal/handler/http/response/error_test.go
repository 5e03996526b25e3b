package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusCodes(t *testing.T) {
	var validation validator.ValidationErrors
	validation.Add("name", "name is required")

	tests := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"validation", validation, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"not found", payroll.ErrSalaryReportNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("load: %w", department.ErrDepartmentNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", attendance.ErrAttendanceExists, http.StatusConflict, "CONFLICT"},
		{"department in use", department.ErrDepartmentInUse, http.StatusConflict, "CONFLICT"},
		{"bad request", payroll.ErrInvalidYear, http.StatusBadRequest, "BAD_REQUEST"},
		{"report for unknown employee", payroll.ErrEmployeeNotFound, http.StatusBadRequest, "BAD_REQUEST"},
		{"bad clock", fmt.Errorf("%w: %q", calendar.ErrInvalidClock, "25:00"), http.StatusBadRequest, "BAD_REQUEST"},
		{"forbidden", permission.ErrPermissionDenied, http.StatusForbidden, "FORBIDDEN"},
		{"no group", permission.ErrNoGroupAssigned, http.StatusForbidden, "FORBIDDEN"},
		{"unauthorized", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: password authentication failed"))
	assert.NotContains(t, rec.Body.String(), "password authentication")
}

func TestHandleError_KeepsBadRequestDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("%w: %q", calendar.ErrInvalidClock, "25:00"))
	assert.Contains(t, rec.Body.String(), "25:00")
}
