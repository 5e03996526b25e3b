package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
)

const (
	TokenCleanupJob             = "token_cleanup"
	DefaultTokenCleanupSchedule = "0 */6 * * *"

	revokedRetention = 24 * time.Hour
)

type TokenJobs struct {
	tokenRepo  auth.TokenRepository
	jwtService jwt.Service
	now        func() time.Time
}

func NewTokenJobs(tokenRepo auth.TokenRepository, jwtService jwt.Service) *TokenJobs {
	return &TokenJobs{
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		now:        time.Now,
	}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler, schedule string) error {
	if schedule == "" {
		schedule = DefaultTokenCleanupSchedule
	}
	return scheduler.AddJob(TokenCleanupJob, schedule, j.CleanupTokens)
}

// CleanupTokens deletes refresh tokens that expired or were revoked more than a day ago,
// and forgets revoked access tokens that have expired.
func (j *TokenJobs) CleanupTokens(ctx context.Context) error {
	now := j.now()

	deleted, err := j.tokenRepo.DeleteStale(ctx, now, now.Add(-revokedRetention))
	if err != nil {
		return fmt.Errorf("failed to delete stale refresh tokens: %w", err)
	}
	pruned := j.jwtService.PruneRevoked(now)

	slog.Info("Cron: token cleanup finished", "refresh_tokens_deleted", deleted, "revoked_access_tokens_pruned", pruned)
	return nil
}
