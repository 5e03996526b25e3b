package permission

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type CreatePermissionRequest struct {
	Name        string  `json:"name"`
	Resource    string  `json:"resource"`
	Action      string  `json:"action"`
	Description *string `json:"description,omitempty"`
}

func (r *CreatePermissionRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}
	validateGrant(&errs, r.Resource, r.Action)

	return errs.Err()
}

type UpdatePermissionRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Resource    *string `json:"resource,omitempty"`
	Action      *string `json:"action,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdatePermissionRequest) Validate() error {
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
	if r.Resource != nil && !IsKnownResource(*r.Resource) {
		errs.Add("resource", "resource is not a known resource")
	}
	if r.Action != nil && !IsKnownAction(*r.Action) {
		errs.Add("action", "action must be one of create, read, update, delete")
	}

	return errs.Err()
}

func validateGrant(errs *validator.ValidationErrors, resource, action string) {
	if validator.IsEmpty(resource) {
		errs.Add("resource", "resource is required")
	} else if !IsKnownResource(resource) {
		errs.Add("resource", "resource is not a known resource")
	}
	if validator.IsEmpty(action) {
		errs.Add("action", "action is required")
	} else if !IsKnownAction(action) {
		errs.Add("action", "action must be one of create, read, update, delete")
	}
}

type PermissionResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Resource    string  `json:"resource"`
	Action      string  `json:"action"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewPermissionResponse(p Permission) PermissionResponse {
	return PermissionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Resource:    p.Resource,
		Action:      p.Action,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}
