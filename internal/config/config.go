package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort      int
	DatabasePath    string
	JWTSecretKey    string
	JWTAlgorithm    string
	JWTExpiresHours int
	JWTIssuer       string
	JWTAudience     string
	LogLevel        string
	LogFile         string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	expiresHours, err := strconv.Atoi(getEnv("JWT_EXPIRES_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_HOURS: %w", err)
	}

	return &Config{
		ServerPort:      port,
		DatabasePath:    getEnv("DATABASE_PATH", "asset.db"),
		JWTSecretKey:    getEnv("JWT_SECRET_KEY", "change-me"),
		JWTAlgorithm:    getEnv("JWT_ALGORITHM", "HS256"),
		JWTExpiresHours: expiresHours,
		JWTIssuer:       getEnv("JWT_ISSUER", "metcal-api"),
		JWTAudience:     getEnv("JWT_AUDIENCE", "metcal-clients"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", "logs/api.log"),
	}, nil
}

// ExpiresIn returns the configured token lifetime in seconds.
func (c *Config) ExpiresIn() int {
	return c.JWTExpiresHours * 3600
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
