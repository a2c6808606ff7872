package config

import (
	"testing"
	"time"
)

func setCommon(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_JWT_SECRET", "secret")
}

func TestLoadMemoryBackendDefaults(t *testing.T) {
	setCommon(t)
	t.Setenv("ANALYSIS_BACKEND", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":8080" || cfg.LogLevel != "info" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Fatalf("rate limit defaults not applied: %+v", cfg)
	}
}

func TestSupabaseBackendRequiresCredentials(t *testing.T) {
	setCommon(t)
	t.Setenv("ANALYSIS_BACKEND", "supabase")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected failure without supabase credentials")
	}

	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SupabaseTimeout != 10*time.Second {
		t.Fatalf("timeout default not applied: %v", cfg.SupabaseTimeout)
	}
}

func TestPostgresBackendRequiresDSN(t *testing.T) {
	setCommon(t)
	t.Setenv("ANALYSIS_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected failure without DATABASE_URL")
	}
}

func TestUnknownBackendRejected(t *testing.T) {
	setCommon(t)
	t.Setenv("ANALYSIS_BACKEND", "redis")

	if _, err := Load(); err == nil {
		t.Fatalf("expected failure for unknown backend")
	}
}

func TestJWTSecretRequired(t *testing.T) {
	t.Setenv("ANALYSIS_BACKEND", "memory")
	t.Setenv("SUPABASE_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected failure without jwt secret")
	}
}
