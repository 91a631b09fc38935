// Package storage provides the file-backed persistence for the predictor:
// the training-state document and the model artifact, each written with a
// temp-file-and-rename so a crash never leaves a half-written file.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/paycast/paycast/internal/predictor"
)

const stateFileName = "training_state.json"

// StateFile persists the training state as a small JSON document.
// Implements predictor.StateStore.
type StateFile struct {
	dataDir string
	logger  *slog.Logger
}

func NewStateFile(dataDir string, logger *slog.Logger) *StateFile {
	return &StateFile{dataDir: dataDir, logger: logger}
}

func (s *StateFile) path() string {
	return filepath.Join(s.dataDir, stateFileName)
}

// Read returns the persisted state. A missing file is a normal cold start:
// a zeroed state is created, persisted and returned. A file that exists but
// cannot be parsed is an error; treating it as zero could mask a storage
// fault and silently retrain from scratch.
func (s *StateFile) Read() (predictor.TrainingState, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("no training state file, starting fresh", "path", s.path())
			zero := predictor.TrainingState{}
			if err := s.Write(zero); err != nil {
				return zero, err
			}
			return zero, nil
		}
		return predictor.TrainingState{}, fmt.Errorf("failed to read training state: %w", err)
	}

	var state predictor.TrainingState
	if err := json.Unmarshal(data, &state); err != nil {
		return predictor.TrainingState{}, fmt.Errorf("corrupt training state file %s: %w", s.path(), err)
	}

	return state, nil
}

// Write atomically replaces the persisted state. Counter and row count
// always land together.
func (s *StateFile) Write(state predictor.TrainingState) error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tempPath := s.path() + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(state); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode training state: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, s.path()); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.logger.Debug("saved training state",
		"path", s.path(),
		"change_counter", state.ChangeCounter,
		"last_trained_row_count", state.LastTrainedRowCount,
	)

	return nil
}

// Clear removes the persisted state entirely. Missing file is fine.
func (s *StateFile) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove training state: %w", err)
	}
	return nil
}
