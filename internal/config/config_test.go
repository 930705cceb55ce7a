package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, 300, cfg.Redis.CacheTTL)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.HTTPPort)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			DB: DatabaseConfig{
				Host: "localhost", Port: "5432", Name: "users",
				MaxOpenConns: 25, MaxIdleConns: 5,
			},
			App: AppConfig{HTTPPort: "8080", ShutdownTimeoutSeconds: 15},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := base()
		cfg.App.HTTPPort = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("idle conns above open conns", func(t *testing.T) {
		cfg := base()
		cfg.DB.MaxIdleConns = 50
		assert.Error(t, cfg.Validate())
	})

	t.Run("redis enabled without host", func(t *testing.T) {
		cfg := base()
		cfg.Redis.Enabled = true
		assert.Error(t, cfg.Validate())
	})

	t.Run("rate limit enabled without rate", func(t *testing.T) {
		cfg := base()
		cfg.RateLimit.Enabled = true
		assert.Error(t, cfg.Validate())
	})
}

func TestIsProduction(t *testing.T) {
	for env, want := range map[string]bool{
		"production":  true,
		"staging":     true,
		"development": false,
		"test":        false,
	} {
		cfg := &Config{App: AppConfig{Environment: env}}
		assert.Equal(t, want, cfg.IsProduction(), "env %s", env)
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "db.internal", Port: "5433", User: "svc",
		Password: "secret", Name: "users", SSLMode: "require",
	}
	assert.Equal(t,
		"host=db.internal user=svc password=secret dbname=users port=5433 sslmode=require",
		db.DSN(),
	)
}
