package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/paycast/paycast/internal/predictor"
)

const modelFileName = "model.json"

// ModelFile persists the trained model artifact to disk.
// Implements predictor.ModelStore.
type ModelFile struct {
	dataDir string
	logger  *slog.Logger
}

func NewModelFile(dataDir string, logger *slog.Logger) *ModelFile {
	return &ModelFile{dataDir: dataDir, logger: logger}
}

func (m *ModelFile) path() string {
	return filepath.Join(m.dataDir, modelFileName)
}

// Save writes the model artifact atomically.
func (m *ModelFile) Save(model predictor.Persistable) error {
	if err := os.MkdirAll(m.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tempPath := m.path() + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := model.Save(file); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to save model: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, m.path()); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	m.logger.Debug("saved model artifact", "path", m.path())
	return nil
}

// Load restores the model artifact into model. The caller decides what a
// failed load means; typically it falls back to retraining.
func (m *ModelFile) Load(model predictor.Persistable) error {
	file, err := os.Open(m.path())
	if err != nil {
		return fmt.Errorf("failed to open model file: %w", err)
	}
	defer file.Close()

	if err := model.Load(file); err != nil {
		return err
	}

	m.logger.Info("loaded model artifact", "path", m.path())
	return nil
}

// Exists reports whether a saved artifact is present.
func (m *ModelFile) Exists() bool {
	_, err := os.Stat(m.path())
	return err == nil
}

// Delete removes the saved artifact. Missing file is fine.
func (m *ModelFile) Delete() error {
	if err := os.Remove(m.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete model file: %w", err)
	}
	return nil
}

// Info describes the saved artifact for status reporting.
type Info struct {
	Exists    bool      `json:"exists"`
	Path      string    `json:"path"`
	Size      int64     `json:"size,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func (m *ModelFile) Info() Info {
	info := Info{Path: m.path()}

	stat, err := os.Stat(m.path())
	if err != nil {
		return info
	}

	info.Exists = true
	info.Size = stat.Size()
	info.UpdatedAt = stat.ModTime()
	return info
}
