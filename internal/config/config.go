package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	apperrors "profitflow/internal/errors"
)

// devJWTSecret signs tokens outside production when JWT_SECRET is unset.
const devJWTSecret = "fallback-secret-key-for-dev-only"

// UnknownPlanPolicy decides what happens when an investment references a plan
// that has no allocation entry.
type UnknownPlanPolicy string

const (
	// PlanPolicyFallback silently uses the "starter" allocation.
	PlanPolicyFallback UnknownPlanPolicy = "fallback"
	// PlanPolicyStrict rejects the run with UNKNOWN_PLAN.
	PlanPolicyStrict UnknownPlanPolicy = "strict"
)

// Config holds application configuration
type Config struct {
	// Server
	Port               string
	Env                string
	CORSAllowedOrigins []string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Distribution
	PlatformFeePct    decimal.Decimal
	UnknownPlanPolicy UnknownPlanPolicy
	DefaultCurrency   string
	AllocationsFile   string

	// Live events and outbox relay
	RedisURL           string
	KafkaBrokers       []string
	KafkaTopic         string
	OutboxPollInterval time.Duration

	// External cron trigger. More than one key may be active while a key is
	// being rotated.
	PipelineAPIKeys []string
}

var appConfig *Config

// Load loads configuration from environment variables. A malformed fee or
// plan policy, or a production deployment without its own JWT secret, fails
// with server_configuration_error instead of running on a default.
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "profitflow"),
		DBPassword: getEnv("DB_PASSWORD", "profitflow"),
		DBName:     getEnv("DB_NAME", "profitflow"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", devJWTSecret),

		DefaultCurrency: strings.ToUpper(getEnv("DEFAULT_CURRENCY", "USD")),
		AllocationsFile: getEnv("ALLOCATIONS_FILE", ""),

		RedisURL:     getEnv("REDIS_URL", ""),
		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "profitflow.events"),

		PipelineAPIKeys: splitList(getEnv("PIPELINE_API_KEYS", getEnv("PIPELINE_API_KEY", ""))),
	}

	config.JWTExpirationDur = getDuration("JWT_EXPIRES_IN", 24*time.Hour)
	config.OutboxPollInterval = getDuration("OUTBOX_POLL_INTERVAL", 5*time.Second)

	feeStr := getEnv("PLATFORM_FEE_PCT", "7")
	fee, err := decimal.NewFromString(feeStr)
	if err != nil || fee.IsNegative() || fee.GreaterThan(decimal.NewFromInt(100)) {
		return nil, configError("PLATFORM_FEE_PCT must be a number between 0 and 100, got %q", feeStr)
	}
	config.PlatformFeePct = fee

	switch policy := UnknownPlanPolicy(strings.ToLower(getEnv("UNKNOWN_PLAN_POLICY", string(PlanPolicyFallback)))); policy {
	case PlanPolicyFallback, PlanPolicyStrict:
		config.UnknownPlanPolicy = policy
	default:
		return nil, configError("UNKNOWN_PLAN_POLICY must be fallback or strict, got %q", policy)
	}

	if config.IsProduction() && config.JWTSecret == devJWTSecret {
		return nil, configError("JWT_SECRET must be set in production")
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func configError(format string, args ...interface{}) error {
	return apperrors.WithMessage(apperrors.ErrServerConfiguration, fmt.Sprintf(format, args...))
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

// splitList parses a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
