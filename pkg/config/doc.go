// Package config loads typed configuration from the process environment.
//
// It reads optional dotenv files with github.com/joho/godotenv and parses the
// environment into a struct with github.com/caarlos0/env/v11, so every
// component declares its settings as an annotated struct:
//
//	type Config struct {
//		Addr    string        `env:"HTTP_ADDR" envDefault:":8080"`
//		Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
//	}
//
//	cfg, err := config.Load[Config]()
//
// Dotenv files never override variables that are already set. Missing files
// are skipped, which keeps production deployments free of them.
//
// Tests pass variables explicitly with WithEnvironment instead of touching
// the process environment.
package config
