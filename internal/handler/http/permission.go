package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PermissionHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type permissionHandlerImpl struct {
	permissionService permission.PermissionService
}

func NewPermissionHandler(permissionService permission.PermissionService) PermissionHandler {
	return &permissionHandlerImpl{permissionService: permissionService}
}

// List returns every permission, or only those of ?resource= when given.
func (h *permissionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var (
		result []permission.PermissionResponse
		err    error
	)
	if resource := r.URL.Query().Get("resource"); resource != "" {
		result, err = h.permissionService.FindByResource(r.Context(), resource)
	} else {
		result, err = h.permissionService.FindAll(r.Context())
	}
	if err != nil {
		serviceError(w, "ListPermissions", err)
		return
	}
	response.Success(w, result)
}

func (h *permissionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.permissionService.FindByID(r.Context(), id)
	if err != nil {
		serviceError(w, "GetPermission", err)
		return
	}
	response.Success(w, result)
}

func (h *permissionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req permission.CreatePermissionRequest
	if !decodeAndValidate(w, r, "CreatePermission", &req) {
		return
	}

	result, err := h.permissionService.Create(r.Context(), req)
	if err != nil {
		serviceError(w, "CreatePermission", err)
		return
	}
	response.Created(w, "Permission created successfully", result)
}

func (h *permissionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	req := permission.UpdatePermissionRequest{ID: chi.URLParam(r, "id")}
	if !decodeAndValidate(w, r, "UpdatePermission", &req) {
		return
	}

	result, err := h.permissionService.Update(r.Context(), req)
	if err != nil {
		serviceError(w, "UpdatePermission", err)
		return
	}
	response.SuccessWithMessage(w, "Permission updated successfully", result)
}

func (h *permissionHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.permissionService.Delete(r.Context(), id); err != nil {
		serviceError(w, "DeletePermission", err)
		return
	}
	response.SuccessWithMessage(w, "Permission deleted successfully", nil)
}
