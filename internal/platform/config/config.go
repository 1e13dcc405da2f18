package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret      = "a-very-secret-key-should-be-longer-and-random"
	defaultRateAPIURL     = "https://open.er-api.com/v6/latest/USD"
	defaultTimezone       = "Asia/Seoul"
	defaultWarmupSchedule = "5 0 * * *"
)

// Rate cache backends.
const (
	RateCacheMemory = "memory"
	RateCacheRedis  = "redis"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	GoogleClientID  string
	FrontendBaseURL string

	// Location is the calendar used for rate days and monthly periods.
	Location *time.Location

	RateAPIURL         string
	RateAPITimeout     time.Duration
	RateCacheBackend   string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	RateWarmupEnabled  bool
	RateWarmupSchedule string

	PosthogAPIKey string

	// GradeSelfServiceEnabled allows PUT /users/me/grade to upgrade to pro.
	GradeSelfServiceEnabled bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "vintage-note")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("TIMEZONE", defaultTimezone)
	viper.SetDefault("RATE_API_URL", defaultRateAPIURL)
	viper.SetDefault("RATE_API_TIMEOUT", "10s")
	viper.SetDefault("RATE_CACHE_BACKEND", RateCacheMemory)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_WARMUP_ENABLED", true)
	viper.SetDefault("RATE_WARMUP_SCHEDULE", defaultWarmupSchedule)
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("GRADE_SELF_SERVICE", false)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:     viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		JWTIssuer:          viper.GetString("JWT_ISSUER"),
		GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
		FrontendBaseURL:    viper.GetString("FRONTEND_BASE_URL"),
		RateAPIURL:         viper.GetString("RATE_API_URL"),
		RateCacheBackend:   viper.GetString("RATE_CACHE_BACKEND"),
		RedisAddr:          viper.GetString("REDIS_ADDR"),
		RedisPassword:      viper.GetString("REDIS_PASSWORD"),
		RedisDB:            viper.GetInt("REDIS_DB"),
		RateWarmupEnabled:  viper.GetBool("RATE_WARMUP_ENABLED"),
		RateWarmupSchedule: viper.GetString("RATE_WARMUP_SCHEDULE"),
		PosthogAPIKey:      viper.GetString("POSTHOG_API_KEY"),

		GradeSelfServiceEnabled: viper.GetBool("GRADE_SELF_SERVICE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.RateAPITimeout = durationOrDefault("RATE_API_TIMEOUT", 10*time.Second)

	tz := viper.GetString("TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	switch cfg.RateCacheBackend {
	case RateCacheMemory, RateCacheRedis:
	default:
		return nil, fmt.Errorf("invalid RATE_CACHE_BACKEND %q, expected %q or %q", cfg.RateCacheBackend, RateCacheMemory, RateCacheRedis)
	}

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}
