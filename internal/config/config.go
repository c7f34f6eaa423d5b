package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	// Database
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Redis
	RedisURL string `env:"REDIS_URL,required"`

	// JWT Configuration
	JWTSecret     string `env:"JWT_SECRET,required"`
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"pqr-api"`
	JWTTTLMinutes int    `env:"JWT_TTL_MINUTES" envDefault:"480"`

	// OpenTelemetry
	OTELEnabled          bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELExporterEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTELServiceName      string  `env:"OTEL_SERVICE_NAME" envDefault:"pqr-api"`
	OTELSamplingRatio    float64 `env:"OTEL_SAMPLING_RATIO" envDefault:"0.1"`

	// Server
	Port   string `env:"PORT" envDefault:"8001"`
	AppEnv string `env:"APP_ENV" envDefault:"dev"`

	// Rate Limiting
	RateLimitPerMin         int `env:"RATE_LIMIT_PER_MIN" envDefault:"300"`
	RateLimitEmbeddedPerMin int `env:"RATE_LIMIT_EMBEDDED_PER_MIN" envDefault:"60"`

	// SLA sweep window for open cases, in days
	SLADias int `env:"SLA_DIAS" envDefault:"5"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.JWTTTLMinutes <= 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must be positive")
	}

	if c.OTELSamplingRatio < 0 || c.OTELSamplingRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLING_RATIO must be between 0 and 1")
	}

	if c.RateLimitPerMin <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MIN must be positive")
	}

	if c.RateLimitEmbeddedPerMin <= 0 {
		return fmt.Errorf("RATE_LIMIT_EMBEDDED_PER_MIN must be positive")
	}

	if c.SLADias <= 0 {
		return fmt.Errorf("SLA_DIAS must be positive")
	}

	return nil
}
