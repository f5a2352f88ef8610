package config_test

import (
	"testing"

	"questhunt/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("QUESTHUNT_HOST", "")
	t.Setenv("QUESTHUNT_PORT", "")
	t.Setenv("QUESTHUNT_STORE", "")
	t.Setenv("QUESTHUNT_DATA_PATH", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.StoreEngine != "json" {
		t.Errorf("StoreEngine = %q, want json", cfg.StoreEngine)
	}
	if cfg.DataPath != "data" {
		t.Errorf("DataPath = %q, want data", cfg.DataPath)
	}
	if got := cfg.ListenAddr(); got != ":8080" {
		t.Errorf("ListenAddr() = %q, want :8080", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("QUESTHUNT_HOST", "127.0.0.1")
	t.Setenv("QUESTHUNT_PORT", "9090")
	t.Setenv("QUESTHUNT_STORE", "SQLite")
	t.Setenv("QUESTHUNT_DATA_PATH", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StoreEngine != "sqlite" {
		t.Errorf("StoreEngine = %q, want sqlite", cfg.StoreEngine)
	}
	if cfg.DataPath != "data/questhunt.db" {
		t.Errorf("DataPath = %q, want sqlite default file", cfg.DataPath)
	}
	if got := cfg.ListenAddr(); got != "127.0.0.1:9090" {
		t.Errorf("ListenAddr() = %q, want 127.0.0.1:9090", got)
	}
}
