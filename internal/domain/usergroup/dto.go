package usergroup

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type CreateUserGroupRequest struct {
	Name          string   `json:"name"`
	Description   *string  `json:"description,omitempty"`
	PermissionIDs []string `json:"permission_ids"`
}

func (r *CreateUserGroupRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}
	r.PermissionIDs = validateIDs(&errs, "permission_ids", r.PermissionIDs, false)

	return errs.Err()
}

type UpdateUserGroupRequest struct {
	ID            string    `json:"-"`
	Name          *string   `json:"name,omitempty"`
	Description   *string   `json:"description,omitempty"`
	PermissionIDs *[]string `json:"permission_ids,omitempty"`
}

func (r *UpdateUserGroupRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
		if name == "" {
			errs.Add("name", "name must not be empty")
		}
	}
	if r.PermissionIDs != nil {
		ids := validateIDs(&errs, "permission_ids", *r.PermissionIDs, false)
		r.PermissionIDs = &ids
	}

	return errs.Err()
}

type MembershipRequest struct {
	GroupID string   `json:"-"`
	UserIDs []string `json:"user_ids"`
}

func (r *MembershipRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.GroupID) {
		errs.Add("id", "id must be a valid UUID")
	}
	r.UserIDs = validateIDs(&errs, "user_ids", r.UserIDs, true)

	return errs.Err()
}

type GroupPermissionsRequest struct {
	GroupID       string   `json:"-"`
	PermissionIDs []string `json:"permission_ids"`
}

func (r *GroupPermissionsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.GroupID) {
		errs.Add("id", "id must be a valid UUID")
	}
	r.PermissionIDs = validateIDs(&errs, "permission_ids", r.PermissionIDs, true)

	return errs.Err()
}

// validateIDs checks each id is a UUID and returns the list without duplicates.
func validateIDs(errs *validator.ValidationErrors, field string, ids []string, required bool) []string {
	if required && len(ids) == 0 {
		errs.Add(field, ErrEmptyIDList.Error())
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !validator.IsValidUUID(id) {
			errs.Add(field, "each id must be a valid UUID")
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

type UserGroupResponse struct {
	ID          string                          `json:"id"`
	Name        string                          `json:"name"`
	Description *string                         `json:"description,omitempty"`
	Permissions []permission.PermissionResponse `json:"permissions"`
	MemberCount int                             `json:"member_count"`
	Members     []user.UserResponse             `json:"members,omitempty"`
	CreatedAt   string                          `json:"created_at"`
	UpdatedAt   string                          `json:"updated_at"`
}

func NewUserGroupResponse(g UserGroup) UserGroupResponse {
	perms := make([]permission.PermissionResponse, 0, len(g.Permissions))
	for _, p := range g.Permissions {
		perms = append(perms, permission.NewPermissionResponse(p))
	}
	return UserGroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Permissions: perms,
		MemberCount: g.MemberCount,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   g.UpdatedAt.Format(time.RFC3339),
	}
}
