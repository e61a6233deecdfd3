package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by Load unless other files are given.
const DefaultEnvFile = ".env"

type options struct {
	files       []string
	prefix      string
	environment map[string]string
}

// Option configures Load.
type Option func(*options)

// WithEnvFiles replaces the dotenv files read before parsing.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.files = files }
}

// WithPrefix prepends prefix to every variable name.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvironment parses vars instead of the process environment.
// Dotenv files are not read.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) { o.environment = vars }
}

var dotenvMu sync.Mutex

// Load parses the environment into a new T.
func Load[T any](opts ...Option) (T, error) {
	var cfg T
	err := LoadInto(&cfg, opts...)
	return cfg, err
}

// LoadInto parses the environment into v, keeping values the environment does not set.
func LoadInto[T any](v *T, opts ...Option) error {
	o := options{files: []string{DefaultEnvFile}}
	for _, opt := range opts {
		opt(&o)
	}

	if o.environment == nil {
		if err := loadEnvFiles(o.files); err != nil {
			return err
		}
	}

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:      o.prefix,
		Environment: o.environment,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

func loadEnvFiles(files []string) error {
	dotenvMu.Lock()
	defer dotenvMu.Unlock()

	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return errors.Join(ErrLoadingEnv, fmt.Errorf("%s: %w", f, err))
		}
	}
	return nil
}
