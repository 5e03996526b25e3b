package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/setting"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/usergroup"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

var (
	notFoundErrors = []error{
		attendance.ErrAttendanceNotFound,
		attendance.ErrEmployeeNotFound,
		department.ErrDepartmentNotFound,
		employee.ErrEmployeeNotFound,
		holiday.ErrHolidayNotFound,
		payroll.ErrSalaryReportNotFound,
		setting.ErrSettingNotFound,
		permission.ErrPermissionNotFound,
		user.ErrUserNotFound,
		user.ErrUserGroupNotFound,
		usergroup.ErrUserGroupNotFound,
		usergroup.ErrPermissionNotFound,
		usergroup.ErrUserNotFound,
		auth.ErrUserNotFound,
	}

	conflictErrors = []error{
		attendance.ErrAttendanceExists,
		department.ErrDepartmentNameExists,
		department.ErrDepartmentInUse,
		employee.ErrNationalIDExists,
		holiday.ErrHolidayNameExists,
		payroll.ErrSalaryReportExists,
		permission.ErrPermissionNameExists,
		permission.ErrPermissionGrantExists,
		permission.ErrPermissionInUse,
		user.ErrUserEmailExists,
		user.ErrUsernameExists,
		usergroup.ErrUserGroupNameExists,
		auth.ErrEmailAlreadyExists,
		auth.ErrUsernameAlreadyExists,
	}

	badRequestErrors = []error{
		attendance.ErrCheckInRequired,
		attendance.ErrInvalidSchedule,
		attendance.ErrInvalidDateRange,
		attendance.ErrSearchFilterRequired,
		attendance.ErrNoEmployeesMatchName,
		attendance.ErrImportFileRequired,
		attendance.ErrImportFileUnreadable,
		attendance.ErrImportRowMissingField,
		employee.ErrDepartmentNotFound,
		employee.ErrMinimumAge,
		employee.ErrCheckOutBeforeCheckIn,
		employee.ErrEmployeeSearchRequired,
		holiday.ErrHolidayYearMismatch,
		payroll.ErrEmployeeNotFound,
		payroll.ErrInvalidYear,
		payroll.ErrInvalidMonth,
		setting.ErrInvalidDataType,
		setting.ErrValueTypeMismatch,
		setting.ErrInvalidRuleValue,
		permission.ErrNoGrantsRequired,
		user.ErrInvalidOldPassword,
		user.ErrSamePassword,
		user.ErrCannotDeleteSelf,
		user.ErrCannotDeactivateSelf,
		user.ErrUserSearchQueryNeeded,
		usergroup.ErrEmptyIDList,
		auth.ErrRefreshTokenCookieNotFound,
		auth.ErrRefreshTokenCookieEmpty,
		calendar.ErrInvalidClock,
	}

	forbiddenErrors = []error{
		permission.ErrPermissionDenied,
		permission.ErrNoGroupAssigned,
	}

	unauthorizedErrors = []error{
		auth.ErrInvalidCredentials,
		auth.ErrAccountInactive,
		auth.ErrInvalidToken,
		auth.ErrRefreshTokenRevoked,
		permission.ErrUnknownSubject,
	}
)

func matches(err error, targets []error) (error, bool) {
	for _, target := range targets {
		if errors.Is(err, target) {
			return target, true
		}
	}
	return nil, false
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	if target, ok := matches(err, notFoundErrors); ok {
		NotFound(w, capitalize(target.Error()))
		return
	}
	if target, ok := matches(err, conflictErrors); ok {
		Conflict(w, capitalize(target.Error()))
		return
	}
	if _, ok := matches(err, badRequestErrors); ok {
		// Keeps wrapped detail such as the offending clock value
		BadRequest(w, capitalize(err.Error()), nil)
		return
	}
	if target, ok := matches(err, forbiddenErrors); ok {
		Forbidden(w, capitalize(target.Error()))
		return
	}
	if target, ok := matches(err, unauthorizedErrors); ok {
		Unauthorized(w, capitalize(target.Error()))
		return
	}

	slog.Error("unhandled error", "error", err)
	InternalServerError(w, "An unexpected error occurred")
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
