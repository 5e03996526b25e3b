package setting

import "errors"

var (
	ErrSettingNotFound   = errors.New("setting not found")
	ErrInvalidDataType   = errors.New("data_type must be one of number, string, array")
	ErrValueTypeMismatch = errors.New("setting value does not match its data type")
	ErrInvalidRuleValue  = errors.New("invalid value for a payroll rule setting")
)
