package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

const defaultJWTSecret = "your-secret-key-change-me"

// Config holds environment driven settings for the API server.
type Config struct {
	Env            string
	Host           string
	Port           string
	AllowedOrigins []string
	LogLevel       string
	LogDir         string

	RequestTimeout     time.Duration
	RateLimitPerMinute int

	SubscriptionSweepInterval time.Duration

	JWTSecret string
	JWTExpiry time.Duration

	Database DatabaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // seconds
	ConnMaxIdleTime int // seconds
	RunMigrations   bool

	urlDSN string
}

// RedisConfig configures the lesson catalog cache. An empty Addr selects the in-memory cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// AdminConfig describes the default administrator ensured at startup.
type AdminConfig struct {
	Email    string
	Password string
	Username string
}

// Load builds a Config from environment variables with sensible defaults.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Env:                getEnv("LANGSWAP_SERVER_ENV", "development"),
		Host:               getEnv("LANGSWAP_SERVER_HOST", "0.0.0.0"),
		Port:               getEnv("LANGSWAP_SERVER_PORT", "8080"),
		LogLevel:           getEnv("LANGSWAP_LOG_LEVEL", "info"),
		LogDir:             getEnv("LANGSWAP_LOG_DIR", "logs"),
		RequestTimeout:     getEnvAsDuration("LANGSWAP_REQUEST_TIMEOUT", 10*time.Second),
		RateLimitPerMinute: getEnvAsInt("LANGSWAP_RATE_LIMIT_PER_MINUTE", 100),
		JWTSecret:          getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiry:          getEnvAsDuration("JWT_EXPIRY", 7*24*time.Hour),
	}

	cfg.SubscriptionSweepInterval = getEnvAsDuration("LANGSWAP_SUBSCRIPTION_SWEEP_INTERVAL", time.Hour)
	cfg.AllowedOrigins = splitAndTrim(os.Getenv("LANGSWAP_ALLOWED_ORIGINS"))

	database, err := loadDatabaseConfig()
	if err != nil {
		return nil, err
	}
	cfg.Database = database
	cfg.Redis = loadRedisConfig()
	cfg.Admin = AdminConfig{
		Email:    strings.TrimSpace(os.Getenv("LANGSWAP_ADMIN_EMAIL")),
		Password: os.Getenv("LANGSWAP_ADMIN_PASSWORD"),
		Username: getEnv("LANGSWAP_ADMIN_USERNAME", "admin"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings that must not reach production.
func (c *Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.JWTExpiry <= 0 {
		return errors.New("JWT_EXPIRY must be positive")
	}
	if c.Admin.Email != "" && len(c.Admin.Password) < 8 {
		return errors.New("LANGSWAP_ADMIN_PASSWORD must be at least 8 characters when LANGSWAP_ADMIN_EMAIL is set")
	}
	return nil
}

// ServerAddress joins the host and port into a listen address.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsProduction reports whether the app is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// DSN builds a PostgreSQL DSN for gorm. A DATABASE_URL wins over the individual settings.
func (d DatabaseConfig) DSN() string {
	if d.urlDSN != "" {
		return d.urlDSN
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
		d.TimeZone,
	)
}

func loadDatabaseConfig() (DatabaseConfig, error) {
	cfg := DatabaseConfig{
		URL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Host:            getEnv("LANGSWAP_DB_HOST", "127.0.0.1"),
		Port:            getEnv("LANGSWAP_DB_PORT", "5432"),
		User:            getEnv("LANGSWAP_DB_USER", "postgres"),
		Password:        os.Getenv("LANGSWAP_DB_PASSWORD"),
		Name:            getEnv("LANGSWAP_DB_NAME", "langswap"),
		SSLMode:         getEnv("LANGSWAP_DB_SSLMODE", "disable"),
		TimeZone:        getEnv("LANGSWAP_DB_TIMEZONE", "UTC"),
		MaxIdleConns:    getEnvAsInt("LANGSWAP_DB_MAX_IDLE_CONNS", 5),
		MaxOpenConns:    getEnvAsInt("LANGSWAP_DB_MAX_OPEN_CONNS", 20),
		ConnMaxLifetime: getEnvAsInt("LANGSWAP_DB_CONN_MAX_LIFETIME", 1800),
		ConnMaxIdleTime: getEnvAsInt("LANGSWAP_DB_CONN_MAX_IDLE_TIME", 300),
		RunMigrations:   getEnvAsBool("LANGSWAP_DB_RUN_MIGRATIONS", false),
	}

	if cfg.URL != "" {
		dsn, err := pq.ParseURL(cfg.URL)
		if err != nil {
			return cfg, fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		cfg.urlDSN = dsn
	}

	return cfg, nil
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvAsInt("REDIS_DB", 0),
		TTL:      getEnvAsDuration("LANGSWAP_CATALOG_CACHE_TTL", 10*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.FieldsFunc(value, func(r rune) bool {
		switch r {
		case ',', ';':
			return true
		default:
			return false
		}
	})

	var cleaned []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	if len(cleaned) == 0 {
		return nil
	}

	return cleaned
}
