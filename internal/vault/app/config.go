package app

import (
	"os"
	"strconv"
	"time"

	"github.com/quillworks/promptvault/internal/vault/service"
	"github.com/quillworks/promptvault/internal/vault/session"
	"github.com/quillworks/promptvault/internal/vault/titlegen"
)

type Config struct {
	DatabaseFile string // Optional: path to SQLite database file (default: ./vault.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	SessionTTL time.Duration // Optional: idle session lifetime (default: 24h)

	TitleAPIBaseURL string        // Optional: completion-service base URL; empty disables title generation
	TitleAPIKey     string        // Optional: bearer key for the completion service
	TitleModel      string        // Optional: completion model name (default: gpt-4o-mini)
	TitleTimeout    time.Duration // Optional: upstream call timeout (default: 10s)
	MigrationDelay  time.Duration // Optional: inter-item delay in a backfill batch (default: 500ms)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired-session purge interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		DatabaseFile: getEnvOrDefault("VAULT_DATABASE_FILE", "vault.db"),
		PepperFile:   getEnvOrDefault("VAULT_PEPPER_FILE", "pepper"),

		SessionTTL: getEnvDurationOrDefault("VAULT_SESSION_TTL", session.DefaultTTL),

		TitleAPIBaseURL: os.Getenv("VAULT_TITLE_API_BASE_URL"),
		TitleAPIKey:     os.Getenv("VAULT_TITLE_API_KEY"),
		TitleModel:      getEnvOrDefault("VAULT_TITLE_MODEL", "gpt-4o-mini"),
		TitleTimeout:    getEnvDurationOrDefault("VAULT_TITLE_TIMEOUT", titlegen.DefaultTimeout),
		MigrationDelay:  getEnvDurationOrDefault("VAULT_MIGRATION_DELAY", service.DefaultMigrationDelay),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
