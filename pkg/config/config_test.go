package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" {
		t.Fatalf("expected App.Env to default to dev, got %q", cfg.App.Env)
	}
	if !cfg.App.IsDev() {
		t.Fatalf("expected IsDev() for default env")
	}
	if cfg.Storage.Backend != StorageBackendFile {
		t.Fatalf("expected file storage backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Password.BcryptCost != 12 {
		t.Fatalf("expected bcrypt cost 12, got %d", cfg.Password.BcryptCost)
	}
	if cfg.Auth.ErrorClearAfter != 5*time.Second {
		t.Fatalf("expected 5s error clear window, got %v", cfg.Auth.ErrorClearAfter)
	}
}

func TestLoad_OverridesAndNormalization(t *testing.T) {
	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvStorageBackend, "REDIS")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.App.IsProd() {
		t.Fatalf("expected IsProd() for env %q", cfg.App.Env)
	}
	if cfg.Storage.Backend != StorageBackendRedis {
		t.Fatalf("expected normalized redis backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv(EnvStorageBackend, "cassandra")

	if _, err := Load(); err == nil {
		t.Fatal("expected unsupported backend to return an error")
	}
}
