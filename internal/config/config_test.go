package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("missing JWT_SECRET fails", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		if _, err := Load(); err == nil {
			t.Error("expected error without JWT_SECRET")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("JWT_TTL", "")
		t.Setenv("SERVER_PORT", "")
		t.Setenv("DB_PATH", "")
		t.Setenv("CORS_ORIGINS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Server.Port != "8080" {
			t.Errorf("port: got %s", cfg.Server.Port)
		}
		if cfg.DB.Path != "./data/invoices.db" {
			t.Errorf("db path: got %s", cfg.DB.Path)
		}
		if cfg.JWT.TTL != 24*time.Hour {
			t.Errorf("ttl: got %v", cfg.JWT.TTL)
		}
		if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
			t.Errorf("origins: got %v", cfg.CORS.AllowedOrigins)
		}
	})

	t.Run("explicit values", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("JWT_TTL", "2h")
		t.Setenv("SERVER_PORT", "9999")
		t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.JWT.TTL != 2*time.Hour {
			t.Errorf("ttl: got %v", cfg.JWT.TTL)
		}
		if cfg.Server.Port != "9999" {
			t.Errorf("port: got %s", cfg.Server.Port)
		}
		want := []string{"https://a.example", "https://b.example"}
		if len(cfg.CORS.AllowedOrigins) != 2 {
			t.Fatalf("origins: got %v", cfg.CORS.AllowedOrigins)
		}
		for i := range want {
			if cfg.CORS.AllowedOrigins[i] != want[i] {
				t.Errorf("origin %d: got %s, want %s", i, cfg.CORS.AllowedOrigins[i], want[i])
			}
		}
	})

	t.Run("invalid JWT_TTL fails", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("JWT_TTL", "soon")
		if _, err := Load(); err == nil {
			t.Error("expected error for invalid JWT_TTL")
		}
	})
}
