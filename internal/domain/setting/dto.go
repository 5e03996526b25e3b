package setting

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var keyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{1,99}$`)

type UpsertSettingRequest struct {
	Key         string   `json:"key"`
	Value       any      `json:"value"`
	DataType    DataType `json:"data_type"`
	Description *string  `json:"description,omitempty"`
}

func (r *UpsertSettingRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Key = strings.TrimSpace(r.Key)
	if validator.IsEmpty(r.Key) {
		errs.Add("key", "key is required")
	} else if !keyRegex.MatchString(r.Key) {
		errs.Add("key", "key must be lowercase snake_case")
	}
	if !r.DataType.IsValid() {
		errs.Add("data_type", ErrInvalidDataType.Error())
	} else if r.Value == nil {
		errs.Add("value", "value is required")
	} else if encoded, err := EncodeValue(r.Value, r.DataType); err != nil {
		errs.Add("value", "value must be a "+string(r.DataType))
	} else if _, err := NormalizeRuleValue(r.Key, encoded, r.DataType); err != nil {
		errs.Add("value", err.Error())
	}

	return errs.Err()
}

type OvertimeDeductionSettingsRequest struct {
	OvertimeHoursMultiplier  decimal.Decimal `json:"overtime_hours_multiplier"`
	DeductionHoursMultiplier decimal.Decimal `json:"deduction_hours_multiplier"`
	WorkingHoursPerDay       decimal.Decimal `json:"working_hours_per_day"`
}

func (r *OvertimeDeductionSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OvertimeHoursMultiplier.IsNegative() {
		errs.Add("overtime_hours_multiplier", "overtime_hours_multiplier must not be negative")
	}
	if r.DeductionHoursMultiplier.IsNegative() {
		errs.Add("deduction_hours_multiplier", "deduction_hours_multiplier must not be negative")
	}
	if !r.WorkingHoursPerDay.IsPositive() {
		errs.Add("working_hours_per_day", "working_hours_per_day must be greater than zero")
	} else if r.WorkingHoursPerDay.GreaterThan(decimal.NewFromInt(24)) {
		errs.Add("working_hours_per_day", "working_hours_per_day must not exceed 24")
	}

	return errs.Err()
}

type WeekendSettingsRequest struct {
	WeekendDays []string `json:"weekend_days"`
}

// Validate normalises day names and removes duplicates.
func (r *WeekendSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.WeekendDays) == 0 {
		errs.Add("weekend_days", "weekend_days must contain at least one day")
		return errs.Err()
	}

	seen := make(map[string]struct{}, len(r.WeekendDays))
	days := make([]string, 0, len(r.WeekendDays))
	for _, d := range r.WeekendDays {
		d = strings.TrimSpace(d)
		if !validator.IsInSlice(d, AllowedWeekendDays) {
			errs.Add("weekend_days", "each weekend day must be one of "+strings.Join(AllowedWeekendDays, ", "))
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	r.WeekendDays = days

	return errs.Err()
}

type SettingResponse struct {
	ID          string          `json:"id"`
	Key         string          `json:"key"`
	Value       json.RawMessage `json:"value"`
	DataType    DataType        `json:"data_type"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	DeletedAt   *string         `json:"deleted_at,omitempty"`
}

func NewSettingResponse(s Setting) SettingResponse {
	resp := SettingResponse{
		ID:          s.ID,
		Key:         s.Key,
		Value:       s.Value,
		DataType:    s.DataType,
		Description: s.Description,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
	if s.DeletedAt != nil {
		deletedAt := s.DeletedAt.Format(time.RFC3339)
		resp.DeletedAt = &deletedAt
	}
	return resp
}

type OvertimeDeductionSettingsResponse struct {
	OvertimeHoursMultiplier  decimal.Decimal `json:"overtime_hours_multiplier"`
	DeductionHoursMultiplier decimal.Decimal `json:"deduction_hours_multiplier"`
	WorkingHoursPerDay       decimal.Decimal `json:"working_hours_per_day"`
}

type WeekendSettingsResponse struct {
	WeekendDays []string `json:"weekend_days"`
}

type GeneralSettingsResponse struct {
	OvertimeDeductionSettingsResponse
	WeekendSettingsResponse
}
