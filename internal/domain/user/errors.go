package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserEmailExists       = errors.New("email already registered")
	ErrUsernameExists        = errors.New("username already taken")
	ErrUserGroupNotFound     = errors.New("user group not found")
	ErrInvalidOldPassword    = errors.New("old password is incorrect")
	ErrSamePassword          = errors.New("new password must differ from the old password")
	ErrCannotDeleteSelf      = errors.New("you cannot delete your own account")
	ErrCannotDeactivateSelf  = errors.New("you cannot deactivate your own account")
	ErrUserSearchQueryNeeded = errors.New("search query is required")
)
