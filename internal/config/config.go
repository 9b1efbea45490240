package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultPort       = "8080"
	defaultRedisAddr  = "localhost:6379"
	defaultSessionTTL = "168h" // one week, same as the cookie lifetime
	defaultUploadsDir = "./uploads"
)

type Config struct {
	Port          string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string

	SessionSecret string
	SessionTTL    time.Duration

	UploadsDir string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// Load reads configuration from the environment and fails fast on anything
// the server cannot run without.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", defaultPort),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisAddr:          getEnv("REDIS_ADDRESS", defaultRedisAddr),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		UploadsDir:         getEnv("UPLOADS_DIR", defaultUploadsDir),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_CALLBACK_URL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is empty")
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", defaultSessionTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = ttl

	return cfg, nil
}

// GoogleOAuthEnabled reports whether the Google login flow is configured.
func (c *Config) GoogleOAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRedirectURL != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
