package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds process-level configuration. It is loaded once at startup and
// passed by reference into the components that need it; business logic never
// reads the environment directly.
type Config struct {
	// Database
	PostgresDSN string

	// Token issuance
	JWTSecret     string
	JWTExpiration time.Duration // validity window end: now + JWTExpiration
	JWTNotBefore  time.Duration // validity window start: now - JWTNotBefore

	// Server
	Host string
	Port int

	// Logging
	LogFormat string
	LogLevel  string

	// Rate limiting
	RateLimitRPS     int
	RateLimitBurst   int
	RateLimitEnabled bool

	// Object gateway (DeOSS), optional
	DeossURL     string
	DeossAccount string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		PostgresDSN:      getEnv("POSTGRES_DSN", os.Getenv("DATABASE_URL")),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTExpiration:    time.Duration(getEnvInt("JWT_EXPIRATION_TIME", 3600)) * time.Second,
		JWTNotBefore:     time.Duration(getEnvInt("JWT_NOT_BEFORE", 0)) * time.Second,
		Host:             getEnv("SERVER_HOST", "0.0.0.0"),
		Port:             getEnvInt("SERVER_PORT", 8799),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		RateLimitRPS:     getEnvInt("RATE_LIMIT_RPS", 50),
		RateLimitBurst:   getEnvInt("RATE_LIMIT_BURST", 100),
		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", false),
		DeossURL:         getEnv("DEOSS_URL", ""),
		DeossAccount:     getEnv("DEOSS_ACCOUNT", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.JWTExpiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_TIME must be positive, got: %s", c.JWTExpiration)
	}

	if c.JWTNotBefore < 0 {
		return fmt.Errorf("JWT_NOT_BEFORE must not be negative, got: %s", c.JWTNotBefore)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("SERVER_PORT out of range: %d", c.Port)
	}

	return nil
}

// Addr returns the host:port the server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}
