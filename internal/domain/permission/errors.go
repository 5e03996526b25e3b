package permission

import "errors"

var (
	ErrPermissionNotFound    = errors.New("permission not found")
	ErrPermissionNameExists  = errors.New("permission name already exists")
	ErrPermissionGrantExists = errors.New("permission for this resource and action already exists")
	ErrPermissionInUse       = errors.New("permission is assigned to one or more user groups")

	ErrNoGroupAssigned  = errors.New("no group assigned to user")
	ErrPermissionDenied = errors.New("you do not have permission to perform this action")
	ErrUnknownSubject   = errors.New("user not found or inactive")
	ErrNoGrantsRequired = errors.New("at least one permission must be requested")
)
