package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 8090 {
		t.Errorf("expected default port 8090, got %d", cfg.Server.Port)
	}

	if cfg.Predictor.StaleThreshold != 0.20 {
		t.Errorf("expected default stale threshold 0.20, got %f", cfg.Predictor.StaleThreshold)
	}

	if cfg.Predictor.Regressor != "tree" {
		t.Errorf("expected default regressor tree, got %s", cfg.Predictor.Regressor)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	content := `
server:
  host: "127.0.0.1"
  port: 9090

predictor:
  stale_threshold: 0.35
  regressor: linear

logging:
  level: "debug"
  format: "text"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected host 127.0.0.1, got %s", cfg.Server.Host)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}

	if cfg.Predictor.StaleThreshold != 0.35 {
		t.Errorf("expected stale threshold 0.35, got %f", cfg.Predictor.StaleThreshold)
	}

	if cfg.Predictor.Regressor != "linear" {
		t.Errorf("expected regressor linear, got %s", cfg.Predictor.Regressor)
	}

	// Defaults preserved for unspecified values
	if cfg.Store.Path != "./paycast.db" {
		t.Errorf("expected default store path, got %s", cfg.Store.Path)
	}

	if cfg.Predictor.Tree.MaxDepth != 12 {
		t.Errorf("expected default tree max depth 12, got %d", cfg.Predictor.Tree.MaxDepth)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("server: [not a map"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadOrDefaultEmptyPath(t *testing.T) {
	cfg := LoadOrDefault("")
	if cfg.Server.Port != 8090 {
		t.Errorf("expected default config, got port %d", cfg.Server.Port)
	}
}
