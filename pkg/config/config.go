package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// DailyTransferCap is the maximum total a single account may send per
	// rolling 24h window. Zero disables the cap.
	DailyTransferCap decimal.Decimal

	// GhostLockMaxAge is the safety window: locks younger than this are never
	// touched by reconciliation even when their reference looks terminal.
	GhostLockMaxAge time.Duration

	// GhostLockBatchSize bounds how many candidate locks one reconciliation
	// run inspects.
	GhostLockBatchSize int

	// CommissionRoundPlaces is the decimal precision commission payouts are
	// rounded to before crediting.
	CommissionRoundPlaces int32

	// IdempotencyRetention is how long committed idempotency records are kept
	// before garbage collection.
	IdempotencyRetention time.Duration

	// LockRetryAttempts and LockRetryBackoff bound the automatic retry of
	// ledger writes that hit a row lock wait timeout.
	LockRetryAttempts int
	LockRetryBackoff  time.Duration

	// RateLimitPeriod and RateLimitRequests configure the per-IP limiter.
	RateLimitPeriod   time.Duration
	RateLimitRequests int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("DAILY_TRANSFER_CAP", "0")
	viper.SetDefault("GHOST_LOCK_MAX_AGE", "24h")
	viper.SetDefault("GHOST_LOCK_BATCH_SIZE", 100)
	viper.SetDefault("COMMISSION_ROUND_PLACES", 8)
	viper.SetDefault("IDEMPOTENCY_RETENTION", "168h")
	viper.SetDefault("LOCK_RETRY_ATTEMPTS", 3)
	viper.SetDefault("LOCK_RETRY_BACKOFF", "50ms")
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 120)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	capStr := viper.GetString("DAILY_TRANSFER_CAP")
	dailyCap, err := decimal.NewFromString(capStr)
	if err != nil {
		log.Printf("Warning: Invalid value for DAILY_TRANSFER_CAP ('%s'). Defaulting to 0 (disabled).\n", capStr)
		dailyCap = decimal.Zero
	}
	cfg.DailyTransferCap = dailyCap

	cfg.GhostLockMaxAge = parseDurationOr("GHOST_LOCK_MAX_AGE", 24*time.Hour)
	cfg.GhostLockBatchSize = viper.GetInt("GHOST_LOCK_BATCH_SIZE")
	cfg.CommissionRoundPlaces = viper.GetInt32("COMMISSION_ROUND_PLACES")
	cfg.IdempotencyRetention = parseDurationOr("IDEMPOTENCY_RETENTION", 7*24*time.Hour)
	cfg.LockRetryAttempts = viper.GetInt("LOCK_RETRY_ATTEMPTS")
	cfg.LockRetryBackoff = parseDurationOr("LOCK_RETRY_BACKOFF", 50*time.Millisecond)
	cfg.RateLimitPeriod = parseDurationOr("RATE_LIMIT_PERIOD", time.Minute)
	cfg.RateLimitRequests = viper.GetInt64("RATE_LIMIT_REQUESTS")

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		return fallback
	}
	return d
}
