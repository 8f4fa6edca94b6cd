package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings resolved from the environment.
type Config struct {
	Port      string
	DSN       string
	RedisAddr string
	JWTSecret string
	TokenTTL  time.Duration
}

// Load reads configuration from environment variables, applying
// defaults suitable for local development. JWT_SECRET is required.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			envOr("DB_HOST", "localhost"),
			envOr("DB_USER", "user"),
			envOr("DB_PASSWORD", "password"),
			envOr("DB_NAME", "pgportaldb"),
			envOr("DB_PORT", "5432"),
		)
	}

	ttl := DefaultTokenTTL
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		ttl = parsed
	}

	return &Config{
		Port:      envOr("PORT", "8080"),
		DSN:       dsn,
		RedisAddr: envOr("REDIS_ADDR", "localhost:6379"),
		JWTSecret: secret,
		TokenTTL:  ttl,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
