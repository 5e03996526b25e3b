package usergroup

import "errors"

var (
	ErrUserGroupNotFound   = errors.New("user group not found")
	ErrUserGroupNameExists = errors.New("user group name already exists")
	ErrPermissionNotFound  = errors.New("one or more permissions not found")
	ErrUserNotFound        = errors.New("one or more users not found")
	ErrEmptyIDList         = errors.New("at least one id is required")
)
