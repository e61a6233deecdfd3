package main

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/identity"
	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/svc/storefront"
)

const (
	storeMemory = "memory"
	storeRedis  = "redis"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"storefront"`

	Locale           string        `env:"DISPLAY_LOCALE" envDefault:"de-DE"`
	FeatureRulesFile string        `env:"FEATURE_RULES_FILE"`
	CatalogRefresh   time.Duration `env:"CATALOG_REFRESH_INTERVAL" envDefault:"0s"` // 0 loads once

	CheckoutStore      string        `env:"CHECKOUT_STORE" envDefault:"memory"`
	CheckoutStateTTL   time.Duration `env:"CHECKOUT_STATE_TTL" envDefault:"24h"`
	PendingStaleAfter  time.Duration `env:"CHECKOUT_PENDING_STALE_AFTER" envDefault:"2m"`
	IdentityResolution string        `env:"IDENTITY_RESOLUTION" envDefault:"per_field"`
	RateLimitEnabled   bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	HTTP       httpserver.Config
	Backend    backend.Config
	Cookie     cookie.Config
	Redis      redis.Config
	RateLimit  ratelimiter.Config
	Storefront storefront.Config
}

func (c appConfig) identityMode() (identity.Mode, error) {
	switch m := identity.Mode(c.IdentityResolution); m {
	case identity.PerField, identity.Atomic:
		return m, nil
	default:
		return "", fmt.Errorf("unknown IDENTITY_RESOLUTION %q", c.IdentityResolution)
	}
}

func (c appConfig) validate() error {
	switch c.CheckoutStore {
	case storeMemory, storeRedis:
	default:
		return fmt.Errorf("unknown CHECKOUT_STORE %q", c.CheckoutStore)
	}
	if c.CheckoutStateTTL <= 0 {
		return fmt.Errorf("CHECKOUT_STATE_TTL must be positive")
	}
	_, err := c.identityMode()
	return err
}
