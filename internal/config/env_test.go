package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSubstituteEnvVars(t *testing.T) {
	os.Setenv("TEST_VAR", "test_value")
	defer os.Unsetenv("TEST_VAR")

	input := []byte("value: ${TEST_VAR}")
	expected := []byte("value: test_value")

	result := substituteEnvVars(input)

	if string(result) != string(expected) {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestSubstituteEnvVarsNotSet(t *testing.T) {
	os.Unsetenv("NONEXISTENT_VAR")

	input := []byte("value: ${NONEXISTENT_VAR}")

	result := substituteEnvVars(input)

	if string(result) != string(input) {
		t.Errorf("expected %q unchanged, got %q", input, result)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	os.Setenv("PAYCAST_DB_PATH", "/tmp/jobs.db")
	defer os.Unsetenv("PAYCAST_DB_PATH")

	content := `
store:
  path: "${PAYCAST_DB_PATH}"
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

	if cfg.Store.Path != "/tmp/jobs.db" {
		t.Errorf("expected substituted path, got %s", cfg.Store.Path)
	}
}
