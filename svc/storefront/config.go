package storefront

import "time"

// Config holds the page-level settings of the storefront.
type Config struct {
	DefaultYearlyDiscount int           `env:"DEFAULT_YEARLY_DISCOUNT" envDefault:"16"`
	PopularPlanID         string        `env:"POPULAR_PLAN_ID"`
	VisitorTTL            time.Duration `env:"VISITOR_COOKIE_TTL" envDefault:"720h"`
	ReadinessTimeout      time.Duration `env:"READINESS_TIMEOUT" envDefault:"3s"`
}
