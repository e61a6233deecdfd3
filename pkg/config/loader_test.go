package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/config"
)

type sample struct {
	Addr     string        `env:"ADDR" envDefault:":8080"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"5s"`
	Secret   string        `env:"SECRET,required"`
	Features []string      `env:"FEATURES" envSeparator:","`
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("defaults and values", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Load[sample](config.WithEnvironment(map[string]string{
			"SECRET":   "s3cr3t",
			"FEATURES": "a,b",
		}))
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, "s3cr3t", cfg.Secret)
		assert.Equal(t, []string{"a", "b"}, cfg.Features)
	})

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load[sample](config.WithEnvironment(map[string]string{}))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load[sample](config.WithEnvironment(map[string]string{
			"SECRET":  "x",
			"TIMEOUT": "soon",
		}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Load[sample](
			config.WithPrefix("APP_"),
			config.WithEnvironment(map[string]string{"APP_SECRET": "p", "SECRET": "ignored"}),
		)
		require.NoError(t, err)
		assert.Equal(t, "p", cfg.Secret)
	})
}

func TestLoadEnvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte("STOREFRONT_TEST_SECRET=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("STOREFRONT_TEST_SECRET") })

	cfg, err := config.Load[sample](
		config.WithPrefix("STOREFRONT_TEST_"),
		config.WithEnvFiles(file, filepath.Join(t.TempDir(), "missing.env")),
	)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Secret)
}

func TestMustLoadPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		config.MustLoad[sample](config.WithEnvironment(map[string]string{}))
	})
}
