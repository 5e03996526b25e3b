package auth

import (
	"context"
	"time"
)

// RefreshToken is a persisted refresh token, stored by hash.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string // raw value, only set when issuing
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	UserAgent string
	IPAddress string
	CreatedAt time.Time
}

// Usable reports whether the token is neither revoked nor expired at now.
func (t RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && t.ExpiresAt.After(now)
}

type TokenRepository interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByToken(ctx context.Context, token string) (RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	// DeleteStale removes tokens expired before expiredBefore or revoked before revokedBefore.
	DeleteStale(ctx context.Context, expiredBefore, revokedBefore time.Time) (int64, error)
}
