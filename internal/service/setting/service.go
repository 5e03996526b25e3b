package setting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/setting"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

var ruleKeys = []string{
	setting.KeyWeekendDays,
	setting.KeyWorkingHoursPerDay,
	setting.KeyOvertimeHoursMultiplier,
	setting.KeyDeductionHoursMultiplier,
}

type SettingServiceImpl struct {
	settingRepo setting.SettingRepository
}

func NewSettingService(settingRepo setting.SettingRepository) *SettingServiceImpl {
	return &SettingServiceImpl{settingRepo: settingRepo}
}

var (
	_ setting.SettingService = (*SettingServiceImpl)(nil)
	_ setting.Provider       = (*SettingServiceImpl)(nil)
	_ payroll.RulesSource    = (*SettingServiceImpl)(nil)
)

// Upsert implements setting.SettingService.
func (s *SettingServiceImpl) Upsert(ctx context.Context, req setting.UpsertSettingRequest) (setting.SettingResponse, error) {
	value, err := setting.EncodeValue(req.Value, req.DataType)
	if err != nil {
		return setting.SettingResponse{}, err
	}
	value, err = setting.NormalizeRuleValue(req.Key, value, req.DataType)
	if err != nil {
		return setting.SettingResponse{}, err
	}

	saved, err := s.settingRepo.Upsert(ctx, setting.Setting{
		Key:         req.Key,
		Value:       value,
		DataType:    req.DataType,
		Description: req.Description,
	})
	if err != nil {
		return setting.SettingResponse{}, fmt.Errorf("failed to save setting %s: %w", req.Key, err)
	}
	return setting.NewSettingResponse(saved), nil
}

// FindAll implements setting.SettingService.
func (s *SettingServiceImpl) FindAll(ctx context.Context, includeDeleted bool) ([]setting.SettingResponse, error) {
	settings, err := s.settingRepo.FindAll(ctx, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	responses := make([]setting.SettingResponse, 0, len(settings))
	for _, st := range settings {
		responses = append(responses, setting.NewSettingResponse(st))
	}
	return responses, nil
}

// FindByKey implements setting.SettingService.
func (s *SettingServiceImpl) FindByKey(ctx context.Context, key string) (setting.SettingResponse, error) {
	st, err := s.settingRepo.GetByKey(ctx, key)
	if err != nil {
		return setting.SettingResponse{}, err
	}
	return setting.NewSettingResponse(st), nil
}

// SoftDelete implements setting.SettingService.
func (s *SettingServiceImpl) SoftDelete(ctx context.Context, key string) error {
	return s.settingRepo.SoftDelete(ctx, key)
}

// SaveOvertimeDeductionSettings implements setting.SettingService. The three
// values are written together or not at all.
func (s *SettingServiceImpl) SaveOvertimeDeductionSettings(ctx context.Context, req setting.OvertimeDeductionSettingsRequest) (setting.OvertimeDeductionSettingsResponse, error) {
	values := []struct {
		key         string
		value       decimal.Decimal
		description string
	}{
		{setting.KeyOvertimeHoursMultiplier, req.OvertimeHoursMultiplier, "Multiplier applied to the hourly rate for overtime hours"},
		{setting.KeyDeductionHoursMultiplier, req.DeductionHoursMultiplier, "Multiplier applied to the hourly rate for late hours"},
		{setting.KeyWorkingHoursPerDay, req.WorkingHoursPerDay, "Working hours in one day"},
	}

	settings := make([]setting.Setting, 0, len(values))
	for _, v := range values {
		encoded, err := setting.EncodeValue(v.value, setting.DataTypeNumber)
		if err != nil {
			return setting.OvertimeDeductionSettingsResponse{}, err
		}
		description := v.description
		settings = append(settings, setting.Setting{
			Key:         v.key,
			Value:       encoded,
			DataType:    setting.DataTypeNumber,
			Description: &description,
		})
	}

	if _, err := s.settingRepo.UpsertMany(ctx, settings); err != nil {
		return setting.OvertimeDeductionSettingsResponse{}, fmt.Errorf("failed to save overtime and deduction settings: %w", err)
	}
	return setting.OvertimeDeductionSettingsResponse(req), nil
}

// GetOvertimeDeductionSettings implements setting.SettingService.
func (s *SettingServiceImpl) GetOvertimeDeductionSettings(ctx context.Context) (setting.OvertimeDeductionSettingsResponse, error) {
	rules, err := s.PayrollRules(ctx)
	if err != nil {
		return setting.OvertimeDeductionSettingsResponse{}, err
	}
	return setting.OvertimeDeductionSettingsResponse{
		OvertimeHoursMultiplier:  rules.OvertimeMultiplier,
		DeductionHoursMultiplier: rules.DeductionMultiplier,
		WorkingHoursPerDay:       rules.WorkingHoursPerDay,
	}, nil
}

// SaveWeekendSettings implements setting.SettingService.
func (s *SettingServiceImpl) SaveWeekendSettings(ctx context.Context, req setting.WeekendSettingsRequest) (setting.WeekendSettingsResponse, error) {
	encoded, err := setting.EncodeValue(req.WeekendDays, setting.DataTypeArray)
	if err != nil {
		return setting.WeekendSettingsResponse{}, err
	}
	description := "Days of the week that are not working days"

	saved, err := s.settingRepo.Upsert(ctx, setting.Setting{
		Key:         setting.KeyWeekendDays,
		Value:       encoded,
		DataType:    setting.DataTypeArray,
		Description: &description,
	})
	if err != nil {
		return setting.WeekendSettingsResponse{}, fmt.Errorf("failed to save weekend settings: %w", err)
	}

	days, err := saved.Strings()
	if err != nil {
		return setting.WeekendSettingsResponse{}, err
	}
	return setting.WeekendSettingsResponse{WeekendDays: days}, nil
}

// GetWeekendSettings implements setting.SettingService.
func (s *SettingServiceImpl) GetWeekendSettings(ctx context.Context) (setting.WeekendSettingsResponse, error) {
	weekend, err := s.WeekendDays(ctx)
	if err != nil {
		return setting.WeekendSettingsResponse{}, err
	}
	return setting.WeekendSettingsResponse{WeekendDays: weekend.Names()}, nil
}

// GetGeneralSettings implements setting.SettingService.
func (s *SettingServiceImpl) GetGeneralSettings(ctx context.Context) (setting.GeneralSettingsResponse, error) {
	rules, err := s.PayrollRules(ctx)
	if err != nil {
		return setting.GeneralSettingsResponse{}, err
	}
	return setting.GeneralSettingsResponse{
		OvertimeDeductionSettingsResponse: setting.OvertimeDeductionSettingsResponse{
			OvertimeHoursMultiplier:  rules.OvertimeMultiplier,
			DeductionHoursMultiplier: rules.DeductionMultiplier,
			WorkingHoursPerDay:       rules.WorkingHoursPerDay,
		},
		WeekendSettingsResponse: setting.WeekendSettingsResponse{WeekendDays: rules.Weekend.Names()},
	}, nil
}

// PayrollRules implements payroll.RulesSource, reading all rule keys at once.
func (s *SettingServiceImpl) PayrollRules(ctx context.Context) (payroll.Rules, error) {
	settings, err := s.settingRepo.GetByKeys(ctx, ruleKeys)
	if err != nil {
		return payroll.Rules{}, fmt.Errorf("failed to load payroll rules: %w", err)
	}

	weekend, err := weekendFrom(settings)
	if err != nil {
		return payroll.Rules{}, err
	}
	workingHours, err := numberFrom(settings, setting.KeyWorkingHoursPerDay, setting.DefaultWorkingHoursPerDay)
	if err != nil {
		return payroll.Rules{}, err
	}
	overtime, err := numberFrom(settings, setting.KeyOvertimeHoursMultiplier, setting.DefaultOvertimeMultiplier)
	if err != nil {
		return payroll.Rules{}, err
	}
	deduction, err := numberFrom(settings, setting.KeyDeductionHoursMultiplier, setting.DefaultDeductionMultiplier)
	if err != nil {
		return payroll.Rules{}, err
	}

	return payroll.Rules{
		Weekend:             weekend,
		WorkingHoursPerDay:  workingHours,
		OvertimeMultiplier:  overtime,
		DeductionMultiplier: deduction,
	}, nil
}

// WeekendDays implements setting.Provider.
func (s *SettingServiceImpl) WeekendDays(ctx context.Context) (calendar.WeekendSet, error) {
	settings, err := s.settingRepo.GetByKeys(ctx, []string{setting.KeyWeekendDays})
	if err != nil {
		return nil, fmt.Errorf("failed to load weekend days: %w", err)
	}
	return weekendFrom(settings)
}

// WorkingHoursPerDay implements setting.Provider.
func (s *SettingServiceImpl) WorkingHoursPerDay(ctx context.Context) (decimal.Decimal, error) {
	return s.number(ctx, setting.KeyWorkingHoursPerDay, setting.DefaultWorkingHoursPerDay)
}

// OvertimeMultiplier implements setting.Provider.
func (s *SettingServiceImpl) OvertimeMultiplier(ctx context.Context) (decimal.Decimal, error) {
	return s.number(ctx, setting.KeyOvertimeHoursMultiplier, setting.DefaultOvertimeMultiplier)
}

// DeductionMultiplier implements setting.Provider.
func (s *SettingServiceImpl) DeductionMultiplier(ctx context.Context) (decimal.Decimal, error) {
	return s.number(ctx, setting.KeyDeductionHoursMultiplier, setting.DefaultDeductionMultiplier)
}

func (s *SettingServiceImpl) number(ctx context.Context, key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	settings, err := s.settingRepo.GetByKeys(ctx, []string{key})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	return numberFrom(settings, key, fallback)
}

func numberFrom(settings map[string]setting.Setting, key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	st, ok := settings[key]
	if !ok {
		return fallback, nil
	}
	n, err := st.Number()
	if err != nil {
		slog.Error("setting has unexpected value", "key", key, "error", err)
		return decimal.Zero, err
	}
	return n, nil
}

func weekendFrom(settings map[string]setting.Setting) (calendar.WeekendSet, error) {
	names := setting.DefaultWeekendDays
	if st, ok := settings[setting.KeyWeekendDays]; ok {
		stored, err := st.Strings()
		if err != nil {
			slog.Error("setting has unexpected value", "key", setting.KeyWeekendDays, "error", err)
			return nil, err
		}
		names = stored
	}

	weekend, err := calendar.NewWeekendSet(names...)
	if err != nil {
		return nil, errors.Join(setting.ErrValueTypeMismatch, err)
	}
	return weekend, nil
}
