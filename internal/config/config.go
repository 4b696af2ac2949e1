package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/govalues/decimal"
	"github.com/joho/godotenv"
)

// Config holds application configuration read from the environment.
type Config struct {
	Addr        string
	DatabaseURL string
	LogLevel    string
	LogFormat   string
	// Currency is the reporting currency code used for display strings.
	Currency string
	// OpeningBalance is the fixed historical constant representing the
	// ledger's genesis point. It is configuration, not derived data.
	OpeningBalance decimal.Decimal
	// ReconcileSchedule is the cron expression for the nightly
	// reconciliation check.
	ReconcileSchedule string
	DevSeed           bool
}

// Load reads configuration from environment variables, loading a .env file
// first if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:              getEnv("ADDR", ":8080"),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		Currency:          getEnv("CURRENCY", "BDT"),
		ReconcileSchedule: getEnv("RECONCILE_SCHEDULE", "0 0 2 * * *"),
		DevSeed:           getEnvAsBool("DEV_SEED", false),
	}

	raw := getEnv("OPENING_BALANCE", "0")
	ob, err := decimal.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("OPENING_BALANCE %q: %w", raw, err)
	}
	cfg.OpeningBalance = ob
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return fallback
	}
}
