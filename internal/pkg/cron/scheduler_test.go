package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokenRepository struct {
	mock.Mock
}

func (m *mockTokenRepository) Create(ctx context.Context, token auth.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenRepository) GetByToken(ctx context.Context, token string) (auth.RefreshToken, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(auth.RefreshToken), args.Error(1)
}

func (m *mockTokenRepository) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenRepository) DeleteStale(ctx context.Context, expiredBefore, revokedBefore time.Time) (int64, error) {
	args := m.Called(ctx, expiredBefore, revokedBefore)
	return args.Get(0).(int64), args.Error(1)
}

func TestScheduler_AddJob_RejectsBadSchedule(t *testing.T) {
	s := NewScheduler()
	err := s.AddJob("bad", "not a schedule", func(ctx context.Context) error { return nil })
	assert.Error(t, err)
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	var ran []string
	require.NoError(t, s.AddJob("first", "@every 1h", func(ctx context.Context) error {
		ran = append(ran, "first")
		return nil
	}))
	require.NoError(t, s.AddJob("second", "0 */6 * * *", func(ctx context.Context) error {
		ran = append(ran, "second")
		return errors.New("boom")
	}))

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"first", "second"}, ran)

	s.Start()
	s.Stop()
}

func TestTokenJobs_CleanupTokens(t *testing.T) {
	repo := new(mockTokenRepository)
	jwtSvc := jwt.NewJWTService("secret", time.Hour, 24*time.Hour)
	now := time.Date(2024, time.September, 6, 12, 0, 0, 0, time.UTC)

	jwtSvc.RevokeToken("old", now.Add(-time.Minute).Unix())
	jwtSvc.RevokeToken("fresh", now.Add(time.Minute).Unix())

	jobs := NewTokenJobs(repo, jwtSvc)
	jobs.now = func() time.Time { return now }

	repo.On("DeleteStale", mock.Anything, now, now.Add(-24*time.Hour)).Return(int64(3), nil)

	require.NoError(t, jobs.CleanupTokens(context.Background()))
	assert.False(t, jwtSvc.IsTokenRevoked("old"))
	assert.True(t, jwtSvc.IsTokenRevoked("fresh"))
	repo.AssertExpectations(t)
}

func TestTokenJobs_CleanupTokens_RepositoryError(t *testing.T) {
	repo := new(mockTokenRepository)
	jobs := NewTokenJobs(repo, jwt.NewJWTService("secret", time.Hour, time.Hour))
	repo.On("DeleteStale", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	err := jobs.CleanupTokens(context.Background())
	assert.ErrorContains(t, err, "db down")
}
