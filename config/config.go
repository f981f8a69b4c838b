package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// placeholderKey is the value the original deployment seeded unset API keys
// with; it must be treated as "not configured".
const placeholderKey = "test"

// Config holds all application configuration. It is built once at startup
// and injected into every component; nothing reads environment variables
// after Load returns.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// NewsSource selects the source adapter: "guardian" or "nytimes".
	NewsSource string

	GuardianAPIKey  string
	NYTimesAPIKey   string
	AnthropicAPIKey string
	ReplicateAPIKey string

	// FetchSchedule is a robfig/cron expression for the pipeline timer.
	FetchSchedule string

	JWTSecret         []byte
	JWTExpiration     time.Duration
	AdminPasswordHash string
}

// Load reads configuration from the environment (and a .env file if one
// exists).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		DBHost:            getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:            getEnvOrDefault("DB_PORT", "5432"),
		DBUser:            getEnvOrDefault("DB_USER", "postgres"),
		DBPassword:        getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:            getEnvOrDefault("DB_NAME", "comic_news"),
		NewsSource:        getEnvOrDefault("NEWS_SOURCE", "guardian"),
		GuardianAPIKey:    getEnvOrDefault("GUARDIAN_API_KEY", placeholderKey),
		NYTimesAPIKey:     getEnvOrDefault("NYTIMES_API_KEY", placeholderKey),
		AnthropicAPIKey:   getEnvOrDefault("CLAUDE_API_KEY", placeholderKey),
		ReplicateAPIKey:   getEnvOrDefault("REPLICATE_API_KEY", placeholderKey),
		FetchSchedule:     getEnvOrDefault("FETCH_SCHEDULE", "@every 30m"),
		JWTSecret:         []byte(getEnvOrDefault("JWT_SECRET", "change-this-in-production")),
		JWTExpiration:     24 * time.Hour,
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// KeyConfigured reports whether an API key is usable: non-empty and not the
// known placeholder value.
func KeyConfigured(key string) bool {
	return key != "" && key != placeholderKey
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
