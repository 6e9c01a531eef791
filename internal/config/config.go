package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "change-me-in-env"

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

var ErrMissingSecret = errors.New("JWT_SECRET is required in production")

type Config struct {
	Env string

	// Server
	Port        string
	CORSOrigins string

	// Storage
	DatabaseURL string
	Store       string

	// Auth
	JWTSecret  string
	BcryptCost int

	// Directory cache
	RedisURL          string
	DirectoryCacheTTL time.Duration

	// Rate limits (requests per minute per IP, 0 disables)
	RateLimit     int
	AuthRateLimit int

	SentryDSN    string
	LogRetention time.Duration
}

// Load reads the process environment (and a .env file if present) once.
// The returned Config is treated as read-only for the lifetime of the process.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env: strings.ToLower(getEnv("APP_ENV", getEnv("NODE_ENV", "development"))),

		Port:        getEnv("PORT", "4000"),
		CORSOrigins: getEnv("CORS_ORIGIN", "*"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		Store:       strings.ToLower(getEnv("STORE", StorePostgres)),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		BcryptCost: getInt("BCRYPT_COST", bcrypt.DefaultCost),

		RedisURL:          os.Getenv("REDIS_URL"),
		DirectoryCacheTTL: parseDuration(getEnv("DIRECTORY_CACHE_TTL", "5m"), 5*time.Minute),

		RateLimit:     getInt("RATE_LIMIT_PER_MIN", 60),
		AuthRateLimit: getInt("AUTH_RATE_LIMIT_PER_MIN", 10),

		SentryDSN:    os.Getenv("SENTRY_DSN"),
		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingSecret
		}
		slog.Warn("JWT_SECRET not set, using insecure default")
		cfg.JWTSecret = DefaultJWTSecret
	}

	switch cfg.Store {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			slog.Warn("DATABASE_URL not set")
		}
	case StoreMemory:
	default:
		return nil, errors.New("STORE must be postgres or memory")
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", val)
		return fallback
	}
	return n
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
