package usergroup

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
)

// UserGroup bundles permissions. Every user belongs to at most one group.
type UserGroup struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Aggregate
	Permissions []permission.Permission
	MemberCount int
}
