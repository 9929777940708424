package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	Environment string
	TokenTTL    time.Duration

	RunMigrations       bool
	RunSeed             bool
	SeedManagerEmail    string
	SeedManagerPassword string

	MaxBodyBytes       int64
	RateLimitPerMinute int
	MetricsEnabled     bool

	// Attendance policy.
	WorkdayStart string
	WorkdayHours float64

	// Payslip policy, whole VND per day.
	LatePenaltyPerDay       int64
	AbsentPenaltyPerDay     int64
	IncompletePenaltyPerDay int64
	LeavePenaltyThreshold   int
	OvertimeHourlyRate      int64
}

func Load() Config {
	return Config{
		Addr:                    getEnv("APP_ADDR", ":8080"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		Environment:             getEnv("APP_ENV", "development"),
		TokenTTL:                getEnvDuration("TOKEN_TTL", 12*time.Hour),
		RunMigrations:           getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:                 getEnvBool("RUN_SEED", true),
		SeedManagerEmail:        getEnv("SEED_MANAGER_EMAIL", ""),
		SeedManagerPassword:     getEnv("SEED_MANAGER_PASSWORD", ""),
		MaxBodyBytes:            int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute:      getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:          getEnvBool("METRICS_ENABLED", true),
		WorkdayStart:            getEnv("WORKDAY_START", "08:00"),
		WorkdayHours:            getEnvFloat("WORKDAY_HOURS", 8),
		LatePenaltyPerDay:       getEnvInt64("LATE_PENALTY_PER_DAY", 100000),
		AbsentPenaltyPerDay:     getEnvInt64("ABSENT_PENALTY_PER_DAY", 100000),
		IncompletePenaltyPerDay: getEnvInt64("INCOMPLETE_PENALTY_PER_DAY", 50000),
		LeavePenaltyThreshold:   getEnvInt("LEAVE_PENALTY_THRESHOLD", 4),
		OvertimeHourlyRate:      getEnvInt64("OVERTIME_HOURLY_RATE", 50000),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedManagerPassword) == "" {
			return fmt.Errorf("SEED_MANAGER_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if _, err := time.Parse("15:04", c.WorkdayStart); err != nil {
		return fmt.Errorf("WORKDAY_START must be HH:MM: %w", err)
	}
	if c.WorkdayHours <= 0 || c.WorkdayHours > 24 {
		return fmt.Errorf("WORKDAY_HOURS must be between 0 and 24")
	}
	if c.LatePenaltyPerDay < 0 || c.AbsentPenaltyPerDay < 0 || c.IncompletePenaltyPerDay < 0 {
		return fmt.Errorf("penalty amounts must not be negative")
	}
	if c.LeavePenaltyThreshold < 0 {
		return fmt.Errorf("LEAVE_PENALTY_THRESHOLD must not be negative")
	}
	return nil
}
