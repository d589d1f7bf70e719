package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 500, cfg.Cache.ScheduleSize)
	assert.Equal(t, 1000, cfg.Cache.ProjectionSize)
	assert.Equal(t, 10*time.Minute, cfg.GetProjectionTTL())
	assert.Equal(t, 5*time.Second, cfg.GetHealthTimeout())
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("SCHEDULE_CACHE_SIZE", "42")
	t.Setenv("PROJECTION_CACHE_TTL", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
	assert.Equal(t, 42, cfg.Cache.ScheduleSize)
	assert.Equal(t, time.Minute, cfg.GetProjectionTTL())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8080", ReadTimeout: "1s", WriteTimeout: "1s"},
			Cache:   CacheConfig{ScheduleSize: 10, ProjectionTTL: "1m", ProjectionSize: 10, PurgeCron: "0 0 * * * *"},
			Logging: LoggingConfig{Level: "info", Format: "json"},
			Health:  HealthConfig{Timeout: "5s"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "SERVER_PORT"},
		{name: "negative cache size", mutate: func(c *Config) { c.Cache.ScheduleSize = -1 }, wantErr: "SCHEDULE_CACHE_SIZE"},
		{name: "zero projection cache size", mutate: func(c *Config) { c.Cache.ProjectionSize = 0 }, wantErr: "PROJECTION_CACHE_SIZE"},
		{name: "bad ttl", mutate: func(c *Config) { c.Cache.ProjectionTTL = "soon" }, wantErr: "PROJECTION_CACHE_TTL"},
		{name: "bad cron", mutate: func(c *Config) { c.Cache.PurgeCron = "every hour" }, wantErr: "CACHE_PURGE_CRON"},
		{name: "redis without host", mutate: func(c *Config) { c.Redis.Enabled = true }, wantErr: "REDIS_HOST"},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

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
