// Package config provides application configuration management.
// Configuration is loaded from environment variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv string `env:"APP_ENV" envDefault:"development"`
	Port   int    `env:"PORT" envDefault:"3001"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// CORS configuration
	// Comma-separated list of allowed origins. "*" allows any origin.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Request body size limit in bytes (default 100KB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"102400"`

	// Redis is optional. Rate limiting is skipped when it is empty.
	RedisURL         string `env:"REDIS_URL"`
	RateLimitEnabled bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int    `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst   int    `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// Billing placeholders
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
	CheckoutURL         string `env:"CHECKOUT_URL" envDefault:"https://checkout.stripe.com/pay/..."`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// RateLimitActive reports whether the Redis-backed limiter should be installed.
func (c *Config) RateLimitActive() bool {
	return c.RateLimitEnabled && c.RedisURL != ""
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load reads an optional .env file and parses environment variables into a Config.
// Variables already present in the environment take precedence over .env values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
