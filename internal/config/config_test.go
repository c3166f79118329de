package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/make-server", cfg.APIPrefix)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 100, cfg.RateLimitRPS)
	assert.Equal(t, []string{"*"}, cfg.Origins())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("API_PREFIX", "api/v1/")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 5, cfg.RateLimitRPS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
}

func TestValidate(t *testing.T) {
	base := Config{Environment: "development", StoreDriver: DriverMemory, RateLimitRPS: 10}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.StoreDriver = "mongo" }, "unknown STORE_DRIVER"},
		{"postgres needs url", func(c *Config) { c.StoreDriver = DriverPostgres }, "DATABASE_URL"},
		{"rate limit", func(c *Config) { c.RateLimitRPS = 0 }, "RATE_LIMIT_RPS"},
		{"production identity", func(c *Config) { c.Environment = "production" }, "IDENTITY_URL"},
		{"production secret", func(c *Config) {
			c.Environment = "production"
			c.IdentityURL = "https://id.example"
			c.IdentityJWTSecret = "short"
		}, "IDENTITY_JWT_SECRET"},
		{"production ok", func(c *Config) {
			c.Environment = "production"
			c.IdentityURL = "https://id.example"
			c.IdentityJWTSecret = strings.Repeat("s", 32)
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
