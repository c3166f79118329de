// Package config loads the service configuration from an optional config.yml
// and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	Environment         string `mapstructure:"APP_ENV"`
	Port                string `mapstructure:"PORT"`
	APIPrefix           string `mapstructure:"API_PREFIX"`
	StoreDriver         string `mapstructure:"STORE_DRIVER"`
	DatabaseURL         string `mapstructure:"DATABASE_URL"`
	RedisURL            string `mapstructure:"REDIS_URL"`
	IdentityURL         string `mapstructure:"IDENTITY_URL"`
	IdentityServiceKey  string `mapstructure:"IDENTITY_SERVICE_KEY"`
	IdentityJWTSecret   string `mapstructure:"IDENTITY_JWT_SECRET"`
	RateLimitRPS        int    `mapstructure:"RATE_LIMIT_RPS"`
	AllowedOrigins      string `mapstructure:"ALLOWED_ORIGINS"`
	AbstractEmailAPIKey string `mapstructure:"ABSTRACT_EMAIL_API_KEY"`
}

var defaults = map[string]any{
	"APP_ENV":                "development",
	"PORT":                   "8080",
	"API_PREFIX":             "/make-server",
	"STORE_DRIVER":           DriverMemory,
	"DATABASE_URL":           "",
	"REDIS_URL":              "localhost:6379",
	"IDENTITY_URL":           "",
	"IDENTITY_SERVICE_KEY":   "",
	"IDENTITY_JWT_SECRET":    "",
	"RATE_LIMIT_RPS":         100,
	"ALLOWED_ORIGINS":        "*",
	"ABSTRACT_EMAIL_API_KEY": "",
}

// Load reads config.yml from the working directory or its parent, if
// present, with environment variables taking precedence.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.APIPrefix = "/" + strings.Trim(cfg.APIPrefix, "/")
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverRedis:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.RateLimitRPS <= 0 {
		return errors.New("RATE_LIMIT_RPS must be positive")
	}
	if c.IsProduction() {
		if c.IdentityURL == "" {
			return errors.New("IDENTITY_URL is required in production")
		}
		if len(c.IdentityJWTSecret) < 32 {
			return errors.New("IDENTITY_JWT_SECRET must be at least 32 characters in production")
		}
	}
	return nil
}
