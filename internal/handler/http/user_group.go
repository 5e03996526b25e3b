package http

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/usergroup"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UserGroupHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Members(w http.ResponseWriter, r *http.Request)
	AddUsers(w http.ResponseWriter, r *http.Request)
	RemoveUsers(w http.ResponseWriter, r *http.Request)
	AddPermissions(w http.ResponseWriter, r *http.Request)
	RemovePermissions(w http.ResponseWriter, r *http.Request)
}

type userGroupHandlerImpl struct {
	groupService usergroup.UserGroupService
	userService  user.UserService
}

func NewUserGroupHandler(groupService usergroup.UserGroupService, userService user.UserService) UserGroupHandler {
	return &userGroupHandlerImpl{groupService: groupService, userService: userService}
}

func (h *userGroupHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.groupService.FindAll(r.Context())
	if err != nil {
		serviceError(w, "ListUserGroups", err)
		return
	}
	response.Success(w, result)
}

func (h *userGroupHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.groupService.FindByID(r.Context(), id)
	if err != nil {
		serviceError(w, "GetUserGroup", err)
		return
	}
	response.Success(w, result)
}

func (h *userGroupHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req usergroup.CreateUserGroupRequest
	if !decodeAndValidate(w, r, "CreateUserGroup", &req) {
		return
	}

	result, err := h.groupService.Create(r.Context(), req)
	if err != nil {
		serviceError(w, "CreateUserGroup", err)
		return
	}
	response.Created(w, "User group created successfully", result)
}

func (h *userGroupHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	req := usergroup.UpdateUserGroupRequest{ID: chi.URLParam(r, "id")}
	if !decodeAndValidate(w, r, "UpdateUserGroup", &req) {
		return
	}

	result, err := h.groupService.Update(r.Context(), req)
	if err != nil {
		serviceError(w, "UpdateUserGroup", err)
		return
	}
	response.SuccessWithMessage(w, "User group updated successfully", result)
}

func (h *userGroupHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.groupService.Delete(r.Context(), id); err != nil {
		serviceError(w, "DeleteUserGroup", err)
		return
	}
	response.SuccessWithMessage(w, "User group deleted successfully", nil)
}

func (h *userGroupHandlerImpl) Members(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.userService.ListByGroup(r.Context(), id)
	if err != nil {
		serviceError(w, "ListGroupMembers", err)
		return
	}
	response.Success(w, result)
}

func (h *userGroupHandlerImpl) AddUsers(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, "AddGroupUsers", h.groupService.AddUsers)
}

func (h *userGroupHandlerImpl) RemoveUsers(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, "RemoveGroupUsers", h.groupService.RemoveUsers)
}

func (h *userGroupHandlerImpl) AddPermissions(w http.ResponseWriter, r *http.Request) {
	h.permissions(w, r, "AddGroupPermissions", h.groupService.AddPermissions)
}

func (h *userGroupHandlerImpl) RemovePermissions(w http.ResponseWriter, r *http.Request) {
	h.permissions(w, r, "RemoveGroupPermissions", h.groupService.RemovePermissions)
}

func (h *userGroupHandlerImpl) membership(w http.ResponseWriter, r *http.Request, op string,
	fn func(context.Context, usergroup.MembershipRequest) (usergroup.UserGroupResponse, error)) {
	req := usergroup.MembershipRequest{GroupID: chi.URLParam(r, "id")}
	if !decodeAndValidate(w, r, op, &req) {
		return
	}

	result, err := fn(r.Context(), req)
	if err != nil {
		serviceError(w, op, err)
		return
	}
	response.SuccessWithMessage(w, "Group members updated", result)
}

func (h *userGroupHandlerImpl) permissions(w http.ResponseWriter, r *http.Request, op string,
	fn func(context.Context, usergroup.GroupPermissionsRequest) (usergroup.UserGroupResponse, error)) {
	req := usergroup.GroupPermissionsRequest{GroupID: chi.URLParam(r, "id")}
	if !decodeAndValidate(w, r, op, &req) {
		return
	}

	result, err := fn(r.Context(), req)
	if err != nil {
		serviceError(w, op, err)
		return
	}
	response.SuccessWithMessage(w, "Group permissions updated", result)
}
