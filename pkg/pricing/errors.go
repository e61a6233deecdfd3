package pricing

import "errors"

var (
	ErrInvalidFeatureRules = errors.New("pricing: invalid feature rules")
	ErrInvalidLocale       = errors.New("pricing: invalid display locale")
)
