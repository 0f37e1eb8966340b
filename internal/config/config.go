// Package config loads the immutable application configuration.
//
// Configuration is read once at startup from environment variables
// (optionally seeded from a .env file) and injected into each component.
// Nothing reads the environment after Load returns.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	CORS   CORSConfig
	Seed   SeedConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// DBConfig holds storage settings.
type DBConfig struct {
	Path string
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SeedConfig optionally names a development user created at startup
// if it does not already exist. Both fields empty disables seeding.
type SeedConfig struct {
	Email    string
	Password string
}

// Load reads configuration from the environment. A .env file in the
// current directory is applied first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("skipping .env file", "error", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttl := 24 * time.Hour
	if raw := os.Getenv("JWT_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_TTL %q: %w", raw, err)
		}
		ttl = parsed
	}

	origins := []string{"*"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:              getEnv("SERVER_PORT", "8080"),
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
		DB: DBConfig{
			Path: getEnv("DB_PATH", "./data/invoices.db"),
		},
		JWT: JWTConfig{
			Secret: secret,
			TTL:    ttl,
		},
		CORS: CORSConfig{
			AllowedOrigins: origins,
		},
		Seed: SeedConfig{
			Email:    os.Getenv("SEED_EMAIL"),
			Password: os.Getenv("SEED_PASSWORD"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
