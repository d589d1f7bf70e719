package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server  ServerConfig  `mapstructure:",squash"`
	Redis   RedisConfig   `mapstructure:",squash"`
	Cache   CacheConfig   `mapstructure:",squash"`
	Logging LoggingConfig `mapstructure:",squash"`
	Health  HealthConfig  `mapstructure:",squash"`
}

type ServerConfig struct {
	Port         string `mapstructure:"SERVER_PORT"`
	Host         string `mapstructure:"SERVER_HOST"`
	Env          string `mapstructure:"ENV"`
	ReadTimeout  string `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout string `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"REDIS_ENABLED"`
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type CacheConfig struct {
	ScheduleSize   int    `mapstructure:"SCHEDULE_CACHE_SIZE"`
	ProjectionTTL  string `mapstructure:"PROJECTION_CACHE_TTL"`
	ProjectionSize int    `mapstructure:"PROJECTION_CACHE_SIZE"`
	PurgeCron      string `mapstructure:"CACHE_PURGE_CRON"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

var keys = []string{
	"SERVER_PORT", "SERVER_HOST", "ENV", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
	"REDIS_ENABLED", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
	"SCHEDULE_CACHE_SIZE", "PROJECTION_CACHE_TTL", "PROJECTION_CACHE_SIZE", "CACHE_PURGE_CRON",
	"LOG_LEVEL", "LOG_FORMAT", "HEALTH_CHECK_TIMEOUT",
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Populate the process environment from .env when present
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "10s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SCHEDULE_CACHE_SIZE", 500)
	v.SetDefault("PROJECTION_CACHE_TTL", "10m")
	v.SetDefault("PROJECTION_CACHE_SIZE", 1000)
	v.SetDefault("CACHE_PURGE_CRON", "0 0 * * * *")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	v.AutomaticEnv()
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	// Try to read from .env file (optional)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Redis.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required when REDIS_ENABLED is set")
	}

	if c.Cache.ScheduleSize < 0 {
		return fmt.Errorf("SCHEDULE_CACHE_SIZE must not be negative")
	}

	if c.Cache.ProjectionSize <= 0 {
		return fmt.Errorf("PROJECTION_CACHE_SIZE must be positive")
	}

	durations := map[string]string{
		"SERVER_READ_TIMEOUT":  c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT": c.Server.WriteTimeout,
		"PROJECTION_CACHE_TTL": c.Cache.ProjectionTTL,
		"HEALTH_CHECK_TIMEOUT": c.Health.Timeout,
	}
	for key, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s must be a valid duration: %w", key, err)
		}
	}

	if c.Cache.PurgeCron != "" {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(c.Cache.PurgeCron); err != nil {
			return fmt.Errorf("CACHE_PURGE_CRON must be a valid cron expression: %w", err)
		}
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// RedisAddr returns the Redis host:port
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

// GetReadTimeout returns the server read timeout as duration
func (c *Config) GetReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ReadTimeout)
	return d
}

// GetWriteTimeout returns the server write timeout as duration
func (c *Config) GetWriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.WriteTimeout)
	return d
}

// GetProjectionTTL returns the projection cache ttl as duration
func (c *Config) GetProjectionTTL() time.Duration {
	d, _ := time.ParseDuration(c.Cache.ProjectionTTL)
	return d
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
