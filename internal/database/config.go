package database

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "profitflow/internal/errors"
)

// Config holds database configuration
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns       int
	MaxIdleConns       int
	SlowQueryThreshold time.Duration
}

// NewConfig creates a new database configuration. Outside production the
// local defaults are used for anything unset; in production every credential
// must be provided explicitly.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, we'll use defaults or environment variables
		fmt.Println("Warning: .env file not found")
	}

	if os.Getenv("ENV") == "production" {
		var missing []string
		for _, key := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
			if _, ok := os.LookupEnv(key); !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			return nil, apperrors.Wrap(apperrors.ErrServerConfiguration,
				fmt.Errorf("missing database settings: %s", strings.Join(missing, ", ")))
		}
	}

	return &Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "profitflow"),
		Password: getEnv("DB_PASSWORD", "profitflow"),
		DBName:   getEnv("DB_NAME", "profitflow"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),

		MaxOpenConns:       getInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:       getInt("DB_MAX_IDLE_CONNS", 10),
		SlowQueryThreshold: getDuration("DB_SLOW_QUERY_THRESHOLD", 500*time.Millisecond),
	}, nil
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the postgres:// form used by golang-migrate.
func (c *Config) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}
