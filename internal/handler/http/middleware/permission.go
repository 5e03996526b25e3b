package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/metrics"
)

// RequirePermission lets the request through only when the authenticated
// user's group holds (resource, action).
func RequirePermission(checker permission.AccessChecker, resource permission.Resource, action permission.Action) func(http.Handler) http.Handler {
	required := permission.NewGrant(resource, action)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := UserID(r.Context())
			if err := checker.Check(r.Context(), userID, required); err != nil {
				if isDenial(err) {
					metrics.PermissionDenials.WithLabelValues(required.Resource, required.Action).Inc()
					slog.Warn("permission denied", "user_id", userID, "grant", required.String(), "error", err)
				} else {
					slog.Error("permission check failed", "user_id", userID, "grant", required.String(), "error", err)
				}
				response.HandleError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isDenial(err error) bool {
	return errors.Is(err, permission.ErrPermissionDenied) || errors.Is(err, permission.ErrNoGroupAssigned)
}
