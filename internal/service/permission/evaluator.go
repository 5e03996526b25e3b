package permission

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

// Evaluate grants access when the user's group holds exactly the required
// (resource, action) pair. A user without a group is always denied.
func Evaluate(access user.Access, required permission.Grant) error {
	return EvaluateAny(access, required)
}

// EvaluateAny grants access when the group holds at least one of required.
func EvaluateAny(access user.Access, required ...permission.Grant) error {
	if len(required) == 0 {
		return permission.ErrNoGrantsRequired
	}
	if access.Group == nil {
		return permission.ErrNoGroupAssigned
	}
	for _, g := range required {
		if holds(access.Group, g) {
			return nil
		}
	}
	return permission.ErrPermissionDenied
}

// EvaluateAll grants access when the group holds every one of required.
func EvaluateAll(access user.Access, required ...permission.Grant) error {
	if len(required) == 0 {
		return permission.ErrNoGrantsRequired
	}
	if access.Group == nil {
		return permission.ErrNoGroupAssigned
	}
	for _, g := range required {
		if !holds(access.Group, g) {
			return permission.ErrPermissionDenied
		}
	}
	return nil
}

func holds(group *user.GroupAccess, required permission.Grant) bool {
	for _, g := range group.Grants {
		if g == required {
			return true
		}
	}
	return false
}
