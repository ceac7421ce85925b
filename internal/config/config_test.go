package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"APP_ENV", "PORT", "DB_PATH", "LOG_LEVEL", "LOG_FORMAT", "SEED_DEMO", "GENAI_API_KEY", "GENAI_MODEL", "CHAT_MAX_CHARS", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.IsDev() {
		t.Fatalf("expected dev environment by default, got %q", cfg.AppEnv)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("Addr=%q, want %q", cfg.Addr(), ":8080")
	}
	if cfg.DBPath != "./dev.db" {
		t.Fatalf("DBPath=%q, want %q", cfg.DBPath, "./dev.db")
	}
	if cfg.ChatEnabled() {
		t.Fatalf("expected chat disabled without API key")
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("ShutdownTimeout=%v, want 10s", cfg.ShutdownTimeout)
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("SEED_DEMO", "true")
	t.Setenv("GENAI_API_KEY", "secret")
	t.Setenv("CHAT_MAX_CHARS", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.IsDev() {
		t.Fatalf("expected non-dev environment")
	}
	if cfg.Addr() != ":9090" {
		t.Fatalf("Addr=%q, want %q", cfg.Addr(), ":9090")
	}
	if !cfg.SeedDemo || !cfg.ChatEnabled() || cfg.ChatMaxChars != 120 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_RejectsMalformedValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CHAT_MAX_CHARS", "many")

	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}
