package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service
	HTTPPort int `env:"HTTP_PORT" default:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" required:"true"`

	// Authentication
	JWTSecret string        `env:"JWT_SECRET" required:"true"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" default:"24h"`

	// Redis Cache
	RedisURL      string        `env:"REDIS_URL" default:"redis://localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" default:"10m"`

	// File Storage
	WebRoot string `env:"WEB_ROOT" default:"./data/www"`

	// Auth endpoint rate limiting (requests per minute per client IP)
	AuthRatePerMinute int `env:"AUTH_RATE_PER_MINUTE" default:"10"`
	AuthRateBurst     int `env:"AUTH_RATE_BURST" default:"5"`

	// Development
	LogLevel    string   `env:"LOG_LEVEL" default:"info"`
	LogFormat   string   `env:"LOG_FORMAT" default:"text"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	// a missing .env file is fine, system env vars still apply
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if err := loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}
	if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.JWTExpiry, "JWT_EXPIRY", 24*time.Hour); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisURL, "REDIS_URL", "redis://localhost:6379"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", ""); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.CacheTTL, "CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.WebRoot, "WEB_ROOT", "./data/www"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.AuthRatePerMinute, "AUTH_RATE_PER_MINUTE", 10); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.AuthRateBurst, "AUTH_RATE_BURST", 5); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}
	if err := loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:3000"}); err != nil {
		return nil, err
	}

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) error {
	if value := os.Getenv(key); value != "" {
		*target = strings.Split(value, ",")
		for i, v := range *target {
			(*target)[i] = strings.TrimSpace(v)
		}
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration.
func (c *Config) Validate() error {
	var errs []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if len(c.JWTSecret) < 32 {
		errs = append(errs, "JWT_SECRET should be at least 32 characters long")
	}

	if c.AuthRatePerMinute < 1 {
		errs = append(errs, "AUTH_RATE_PER_MINUTE must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
