package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Storage backends for session state.
const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
	BackendRedis    = "redis"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration values.
type Config struct {
	HTTPPort string
	LogLevel slog.Level

	AppName        string
	AppDescription string
	ContactEmail   string

	AppsScriptURL string
	SheetsAPIKey  string
	SheetID       string
	SheetName     string
	SheetsTimeout time.Duration

	StripeURL string
	PayPalURL string
	MatbiaURL string
	OJCURL    string

	StorageBackend      string
	SessionTTL          time.Duration
	SessionsTableName   string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	SessionCookieName   string
	SessionCookieSecure bool

	SQSQueueURL string
}

// Load reads the environment, after an optional .env file, and returns a populated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		LogLevel:       parseLevel(getEnv("LOG_LEVEL", "info")),
		AppName:        getEnv("APP_NAME", "Kapparot Online"),
		AppDescription: getEnv("APP_DESCRIPTION", "Digital Tzedakah for Atonement"),
		ContactEmail:   getEnv("CONTACT_EMAIL", "yishuveypushka@gmail.com"),

		AppsScriptURL: getEnv("GOOGLE_APPS_SCRIPT_URL", ""),
		SheetsAPIKey:  getEnv("GOOGLE_SHEETS_API_KEY", ""),
		SheetID:       getEnv("GOOGLE_SHEETS_SHEET_ID", ""),
		SheetName:     getEnv("GOOGLE_SHEETS_SHEET_NAME", "Donations"),
		SheetsTimeout: getEnvDuration("SHEETS_TIMEOUT", 10*time.Second),

		StripeURL: getEnv("NEXT_PUBLIC_STRIPE_DONATION_URL", getEnv("STRIPE_DONATION_URL", "")),
		PayPalURL: getEnv("PAYPAL_URL", ""),
		MatbiaURL: getEnv("MATBIA_URL", ""),
		OJCURL:    getEnv("OJC_URL", ""),

		StorageBackend:      strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		SessionTTL:          getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionsTableName:   getEnv("DYNAMODB_SESSIONS_TABLE_NAME", ""),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             cast.ToInt(getEnv("REDIS_DB", "0")),
		SessionCookieName:   getEnv("SESSION_COOKIE_NAME", "kapparot_session"),
		SessionCookieSecure: cast.ToBool(getEnv("SESSION_COOKIE_SECURE", "false")),

		SQSQueueURL: getEnv("SQS_QUEUE_URL", ""),
	}

	if cfg.HTTPPort == "" {
		return nil, fmt.Errorf("%w: HTTP_PORT must be set", ErrInvalidConfig)
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendRedis:
	case BackendDynamoDB:
		if cfg.SessionsTableName == "" {
			return nil, fmt.Errorf("%w: DYNAMODB_SESSIONS_TABLE_NAME must be set for the dynamodb backend", ErrInvalidConfig)
		}
	default:
		return nil, fmt.Errorf("%w: unknown STORAGE_BACKEND %q", ErrInvalidConfig, cfg.StorageBackend)
	}

	return cfg, nil
}

// SheetsConfigured reports whether any remote logging variant is configured.
func (c *Config) SheetsConfigured() bool {
	return c.AppsScriptURL != "" || (c.SheetsAPIKey != "" && c.SheetID != "")
}

// MissingRecommended lists unset variables the site runs without but should not.
func (c *Config) MissingRecommended() []string {
	var missing []string
	if !c.SheetsConfigured() {
		missing = append(missing, "GOOGLE_APPS_SCRIPT_URL")
	}
	for _, v := range []struct {
		name, value string
	}{
		{"NEXT_PUBLIC_STRIPE_DONATION_URL", c.StripeURL},
		{"PAYPAL_URL", c.PayPalURL},
		{"MATBIA_URL", c.MatbiaURL},
		{"OJC_URL", c.OJCURL},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	return missing
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := cast.ToDurationE(value); err == nil && parsed > 0 {
			if !strings.ContainsAny(value, "nsuµmh") {
				return parsed * time.Second
			}
			return parsed
		}
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
