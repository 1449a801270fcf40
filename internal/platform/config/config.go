package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                 string
	DatabaseURL          string
	JWTSecret            string
	DataEncryptionKey    string
	Environment          string
	SeedManagerEmail     string
	SeedManagerPassword  string
	EmailFrom            string
	EmailEnabled         bool
	SMTPHost             string
	SMTPPort             int
	SMTPUser             string
	SMTPPassword         string
	SMTPUseTLS           bool
	ManagerNotifyEmail   string
	DailyEmailHour       int
	DailyEmailTimeZone   string
	DefaultYearlyLeaves  float64
	AttendanceBreakMins  int
	PayslipDir           string
	RunMigrations        bool
	RunSeed              bool
	RateLimitPerMinute   int
	MetricsEnabled       bool
	ShutdownGraceTimeout time.Duration
}

func Load() Config {
	return Config{
		Addr:                 getEnv("APP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		DataEncryptionKey:    getEnv("DATA_ENCRYPTION_KEY", ""),
		Environment:          getEnv("APP_ENV", "development"),
		SeedManagerEmail:     getEnv("SEED_MANAGER_EMAIL", ""),
		SeedManagerPassword:  getEnv("SEED_MANAGER_PASSWORD", ""),
		EmailFrom:            getEnv("EMAIL_FROM", "no-reply@example.com"),
		EmailEnabled:         getEnvBool("EMAIL_ENABLED", false),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             getEnvInt("SMTP_PORT", 587),
		SMTPUser:             getEnv("SMTP_USER", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:           getEnvBool("SMTP_USE_TLS", true),
		ManagerNotifyEmail:   getEnv("MANAGER_NOTIFY_EMAIL", ""),
		DailyEmailHour:       getEnvInt("DAILY_EMAIL_HOUR", 9),
		DailyEmailTimeZone:   getEnv("DAILY_EMAIL_TZ", "UTC"),
		DefaultYearlyLeaves:  getEnvFloat("DEFAULT_YEARLY_FREE_LEAVES", 12),
		AttendanceBreakMins:  getEnvInt("ATTENDANCE_BREAK_MINUTES", 45),
		PayslipDir:           getEnv("PAYSLIP_DIR", "storage/payslips"),
		RunMigrations:        getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:              getEnvBool("RUN_SEED", true),
		RateLimitPerMinute:   getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:       getEnvBool("METRICS_ENABLED", true),
		ShutdownGraceTimeout: getEnvDuration("SHUTDOWN_GRACE_TIMEOUT", 10*time.Second),
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
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedManagerPassword) == "" {
			return fmt.Errorf("SEED_MANAGER_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.DailyEmailHour < 0 || c.DailyEmailHour > 23 {
		return fmt.Errorf("DAILY_EMAIL_HOUR must be between 0 and 23")
	}
	if _, err := time.LoadLocation(c.DailyEmailTimeZone); err != nil {
		return fmt.Errorf("DAILY_EMAIL_TZ is not a valid time zone: %w", err)
	}
	if c.DefaultYearlyLeaves < 0 {
		return fmt.Errorf("DEFAULT_YEARLY_FREE_LEAVES must not be negative")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	return nil
}
