package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ToggleStatus(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{userService: userService}
}

func (h *userHandlerImpl) filter(r *http.Request) (user.UserFilter, error) {
	params, err := pageParams(r)
	if err != nil {
		return user.UserFilter{}, err
	}
	return user.UserFilter{
		Query:       r.URL.Query().Get("q"),
		UserGroupID: queryString(r, "user_group_id"),
		IsActive:    queryBool(r, "is_active"),
		Params:      params,
	}, nil
}

func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	page, err := h.userService.FindAll(r.Context(), filter)
	if err != nil {
		serviceError(w, "ListUsers", err)
		return
	}
	response.Paginated(w, page)
}

func (h *userHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	page, err := h.userService.Search(r.Context(), filter)
	if err != nil {
		serviceError(w, "SearchUsers", err)
		return
	}
	response.Paginated(w, page)
}

func (h *userHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.userService.FindByID(r.Context(), id)
	if err != nil {
		serviceError(w, "GetUser", err)
		return
	}
	response.Success(w, result)
}

func (h *userHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if !decodeAndValidate(w, r, "CreateUser", &req) {
		return
	}

	result, err := h.userService.Create(r.Context(), req)
	if err != nil {
		serviceError(w, "CreateUser", err)
		return
	}
	response.Created(w, "User created successfully", result)
}

func (h *userHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	req := user.UpdateUserRequest{ID: chi.URLParam(r, "id")}
	if !decodeAndValidate(w, r, "UpdateUser", &req) {
		return
	}

	result, err := h.userService.Update(r.Context(), req)
	if err != nil {
		serviceError(w, "UpdateUser", err)
		return
	}
	response.SuccessWithMessage(w, "User updated successfully", result)
}

func (h *userHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	err := h.userService.Delete(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		serviceError(w, "DeleteUser", err)
		return
	}
	response.SuccessWithMessage(w, "User deleted successfully", nil)
}

func (h *userHandlerImpl) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.userService.ToggleStatus(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		serviceError(w, "ToggleUserStatus", err)
		return
	}
	response.SuccessWithMessage(w, "User status updated", result)
}

// ChangePassword changes the authenticated user's own password.
func (h *userHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	req := user.ChangePasswordRequest{ID: middleware.UserID(r.Context())}
	if !decodeAndValidate(w, r, "ChangePassword", &req) {
		return
	}

	if err := h.userService.ChangePassword(r.Context(), req); err != nil {
		serviceError(w, "ChangePassword", err)
		return
	}
	response.SuccessWithMessage(w, "Password changed successfully", nil)
}
