package setting

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type DataType string

const (
	DataTypeNumber DataType = "number"
	DataTypeString DataType = "string"
	DataTypeArray  DataType = "array"
)

func (d DataType) IsValid() bool {
	switch d {
	case DataTypeNumber, DataTypeString, DataTypeArray:
		return true
	}
	return false
}

const (
	KeyWeekendDays              = "weekend_days"
	KeyOvertimeHoursMultiplier  = "overtime_hours_multiplier"
	KeyDeductionHoursMultiplier = "deduction_hours_multiplier"
	KeyWorkingHoursPerDay       = "working_hours_per_day"
)

var (
	DefaultWeekendDays         = []string{"Friday", "Saturday"}
	DefaultWorkingHoursPerDay  = decimal.NewFromInt(8)
	DefaultOvertimeMultiplier  = decimal.NewFromFloat(1.5)
	DefaultDeductionMultiplier = decimal.NewFromInt(2)
)

// AllowedWeekendDays are the day names that may be configured as weekend.
var AllowedWeekendDays = []string{"Friday", "Saturday"}

// Setting is a keyed configuration value. Value holds the JSON encoding of
// a number, a string or a list of strings, as tagged by DataType.
type Setting struct {
	ID          string
	Key         string
	Value       json.RawMessage
	DataType    DataType
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Number decodes a number setting.
func (s Setting) Number() (decimal.Decimal, error) {
	if s.DataType != DataTypeNumber {
		return decimal.Zero, fmt.Errorf("%w: %s is %s", ErrValueTypeMismatch, s.Key, s.DataType)
	}
	var d decimal.Decimal
	if err := json.Unmarshal(s.Value, &d); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrValueTypeMismatch, s.Key)
	}
	return d, nil
}

// Strings decodes an array setting.
func (s Setting) Strings() ([]string, error) {
	if s.DataType != DataTypeArray {
		return nil, fmt.Errorf("%w: %s is %s", ErrValueTypeMismatch, s.Key, s.DataType)
	}
	var out []string
	if err := json.Unmarshal(s.Value, &out); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValueTypeMismatch, s.Key)
	}
	return out, nil
}

// EncodeValue checks that v matches dataType and returns its JSON encoding.
func EncodeValue(v any, dataType DataType) (json.RawMessage, error) {
	switch dataType {
	case DataTypeNumber:
		switch n := v.(type) {
		case float64:
			return json.Marshal(n)
		case decimal.Decimal:
			return json.RawMessage(n.String()), nil
		case json.Number:
			if _, err := decimal.NewFromString(n.String()); err != nil {
				return nil, ErrValueTypeMismatch
			}
			return json.RawMessage(n.String()), nil
		case int:
			return json.Marshal(n)
		}
	case DataTypeString:
		if s, ok := v.(string); ok {
			return json.Marshal(s)
		}
	case DataTypeArray:
		switch a := v.(type) {
		case []string:
			return json.Marshal(a)
		case []any:
			out := make([]string, 0, len(a))
			for _, item := range a {
				s, ok := item.(string)
				if !ok {
					return nil, ErrValueTypeMismatch
				}
				out = append(out, s)
			}
			return json.Marshal(out)
		}
	default:
		return nil, ErrInvalidDataType
	}
	return nil, ErrValueTypeMismatch
}

// NormalizeRuleValue holds the payroll rule keys to the same limits as the
// typed settings endpoints and returns the value to store. Values of other
// keys are returned unchanged.
func NormalizeRuleValue(key string, value json.RawMessage, dataType DataType) (json.RawMessage, error) {
	st := Setting{Key: key, Value: value, DataType: dataType}

	switch key {
	case KeyWeekendDays:
		days, err := st.Strings()
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an array of day names", ErrInvalidRuleValue, key)
		}
		req := WeekendSettingsRequest{WeekendDays: days}
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRuleValue, err)
		}
		return json.Marshal(req.WeekendDays)

	case KeyOvertimeHoursMultiplier, KeyDeductionHoursMultiplier, KeyWorkingHoursPerDay:
		n, err := st.Number()
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidRuleValue, key)
		}
		req := OvertimeDeductionSettingsRequest{
			OvertimeHoursMultiplier:  DefaultOvertimeMultiplier,
			DeductionHoursMultiplier: DefaultDeductionMultiplier,
			WorkingHoursPerDay:       DefaultWorkingHoursPerDay,
		}
		switch key {
		case KeyOvertimeHoursMultiplier:
			req.OvertimeHoursMultiplier = n
		case KeyDeductionHoursMultiplier:
			req.DeductionHoursMultiplier = n
		default:
			req.WorkingHoursPerDay = n
		}
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRuleValue, err)
		}
	}
	return value, nil
}
