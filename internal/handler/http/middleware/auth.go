package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type ctxKey string

const (
	userIDKey       ctxKey = "user_id"
	accessTokenKey  ctxKey = "access_token"
	accessExpiryKey ctxKey = "access_token_exp"
)

// AuthRequired accepts only access tokens that verify, have not been
// revoked and carry a user id. It must run after a jwtauth verifier
// restricted to the Authorization header.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			raw := jwtauth.TokenFromHeader(r)
			if raw == "" || jwtService.IsTokenRevoked(raw) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, accessTokenKey, raw)
			ctx = context.WithValue(ctx, accessExpiryKey, token.Expiration().Unix())
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// UserID returns the authenticated user's id, or "" outside AuthRequired.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// AccessToken returns the raw bearer token and its expiry in unix seconds.
func AccessToken(ctx context.Context) (string, int64) {
	token, _ := ctx.Value(accessTokenKey).(string)
	exp, _ := ctx.Value(accessExpiryKey).(int64)
	return strings.TrimSpace(token), exp
}
