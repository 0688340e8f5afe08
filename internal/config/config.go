// Package config loads server configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the server.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string

	// DBPath is the filesystem path of the SQLite database.
	DBPath string

	// JWTSecret signs and verifies bearer tokens. Must be overridden in
	// any real deployment.
	JWTSecret string

	// TokenTTL is how long issued tokens remain valid.
	TokenTTL time.Duration

	// CORSOrigin is the allowed browser origin for cross-site requests.
	CORSOrigin string
}

// Load reads configuration from the environment, consulting a .env file in
// the working directory if present. Unset variables fall back to
// development defaults.
func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:       getEnv("PORT", "8080"),
		DBPath:     getEnv("DB_PATH", "./data/habitual.db"),
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:   getDuration("TOKEN_TTL", 24*time.Hour),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
