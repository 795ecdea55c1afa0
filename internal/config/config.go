package config

import (
	"os"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	JWKSURL     string
	CORSOrigins string
	TablePrefix string
	// Storage configuration
	StorageRoot string // root directory for finalized blobs
	ScratchRoot string // root directory for in-flight upload chunks
	// Upload session lifecycle
	SessionTTL    time.Duration // inactivity threshold before a session is reclaimed
	SweepInterval time.Duration // how often the background sweep runs
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   env,
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		JWKSURL:       getEnv("JWKS_URL", ""),
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:   getTablePrefix(env),
		StorageRoot:   getEnv("STORAGE_ROOT", "./data/blobs"),
		ScratchRoot:   getEnv("SCRATCH_ROOT", "./data/chunks"),
		SessionTTL:    getEnvAsDuration("UPLOAD_SESSION_TTL", 2*time.Hour),
		SweepInterval: getEnvAsDuration("UPLOAD_SWEEP_INTERVAL", 30*time.Minute),
		Debug:         getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
