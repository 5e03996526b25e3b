package user

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
)

type User struct {
	ID           string
	FullName     string
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	UserGroupID  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	UserGroupName *string
}

// Access is the authorization read model of a user: the user's single group
// and that group's permission grants, loaded in one query.
type Access struct {
	UserID   string
	IsActive bool
	Group    *GroupAccess
}

type GroupAccess struct {
	ID     string
	Name   string
	Grants []permission.Grant
}
