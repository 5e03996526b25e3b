package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// validatable is implemented by every request DTO.
type validatable interface {
	Validate() error
}

// decodeAndValidate reads a JSON body into req and validates it, writing the
// error response itself. It reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, op string, req validatable) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return validate(w, op, req)
}

func validate(w http.ResponseWriter, op string, req validatable) bool {
	if err := req.Validate(); err != nil {
		slog.Error(op+" validate error", "error", err)
		response.HandleError(w, err)
		return false
	}
	return true
}

// pageParams reads page and limit, rejecting values outside the allowed range.
func pageParams(r *http.Request) (pagination.Params, error) {
	var errs validator.ValidationErrors
	p := pagination.FromRequest(r)
	p.Validate(&errs)
	return p, errs.Err()
}

func queryBool(r *http.Request, key string) *bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	if err != nil {
		return nil
	}
	return &v
}

func queryInt(r *http.Request, key string) *int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return nil
	}
	return &v
}

func queryString(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func includeDeleted(r *http.Request) bool {
	v := queryBool(r, "include_deleted")
	return v != nil && *v
}

func serviceError(w http.ResponseWriter, op string, err error) {
	slog.Error(op+" service error", "error", err)
	response.HandleError(w, err)
}

// idParam reads the {id} path parameter, answering 422 itself when it is
// not a UUID.
func idParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		var errs validator.ValidationErrors
		errs.Add("id", "id must be a valid UUID")
		response.HandleError(w, errs)
		return "", false
	}
	return id, true
}
