// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Storage backends.
const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config is the full service configuration.
type Config struct {
	ListenAddr string
	LogLevel   string

	Backend            string
	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseTimeout    time.Duration
	DatabaseURL        string

	JWTSecret string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads the environment and fails fast on anything the chosen backend
// cannot run without.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:         getEnv("LISTEN_ADDR", ":8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Backend:            getEnv("ANALYSIS_BACKEND", BackendSupabase),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		SupabaseTimeout:    getDuration("SUPABASE_TIMEOUT", 10*time.Second),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("SUPABASE_JWT_SECRET"),
		RateLimitRPS:       getFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getInt("RATE_LIMIT_BURST", 20),
	}

	switch cfg.Backend {
	case BackendSupabase:
		if cfg.SupabaseURL == "" {
			return Config{}, fmt.Errorf("SUPABASE_URL is required for the supabase backend")
		}
		if cfg.SupabaseServiceKey == "" {
			return Config{}, fmt.Errorf("SUPABASE_SERVICE_KEY is required for the supabase backend")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown ANALYSIS_BACKEND: %q", cfg.Backend)
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
