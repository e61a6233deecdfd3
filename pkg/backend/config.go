package backend

import (
	"slices"
	"time"
)

// Config selects and configures the backend implementation.
type Config struct {
	BaseURL string        `env:"BACKEND_URL" envDefault:"http://localhost:8080/api/v1"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"0s"` // 0 keeps the transport default
	UseMock bool          `env:"USE_MOCK_BACKEND" envDefault:"false"`
}

// NewFromConfig returns the in-memory Mock when UseMock is set and an HTTP Client otherwise.
func NewFromConfig(cfg Config, opts ...Option) API {
	if cfg.UseMock {
		return NewMock()
	}
	if cfg.Timeout > 0 {
		opts = append(slices.Clone(opts), WithTimeout(cfg.Timeout))
	}
	return NewClient(cfg.BaseURL, opts...)
}
