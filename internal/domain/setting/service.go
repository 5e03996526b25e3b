package setting

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

type SettingService interface {
	Upsert(ctx context.Context, req UpsertSettingRequest) (SettingResponse, error)
	FindAll(ctx context.Context, includeDeleted bool) ([]SettingResponse, error)
	FindByKey(ctx context.Context, key string) (SettingResponse, error)
	SoftDelete(ctx context.Context, key string) error
	SaveOvertimeDeductionSettings(ctx context.Context, req OvertimeDeductionSettingsRequest) (OvertimeDeductionSettingsResponse, error)
	GetOvertimeDeductionSettings(ctx context.Context) (OvertimeDeductionSettingsResponse, error)
	SaveWeekendSettings(ctx context.Context, req WeekendSettingsRequest) (WeekendSettingsResponse, error)
	GetWeekendSettings(ctx context.Context) (WeekendSettingsResponse, error)
	GetGeneralSettings(ctx context.Context) (GeneralSettingsResponse, error)
}

// Provider gives typed access to business rules. Missing keys resolve to
// the package defaults.
type Provider interface {
	WeekendDays(ctx context.Context) (calendar.WeekendSet, error)
	WorkingHoursPerDay(ctx context.Context) (decimal.Decimal, error)
	OvertimeMultiplier(ctx context.Context) (decimal.Decimal, error)
	DeductionMultiplier(ctx context.Context) (decimal.Decimal, error)
}
