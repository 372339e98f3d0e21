package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tracklift/tracklift/internal/models"
	"github.com/tracklift/tracklift/internal/shared"
)

// FileProgressStore persists a single transfer state record as a JSON file.
//
// Writes go through a temp file in the same directory followed by a rename,
// so a crash mid-write never leaves a truncated record behind.
type FileProgressStore struct {
	path string
}

// NewFileProgressStore creates a store backed by the file at path.
func NewFileProgressStore(path string) *FileProgressStore {
	return &FileProgressStore{path: path}
}

// Path returns the backing file location.
func (s *FileProgressStore) Path() string {
	return s.path
}

// Save overwrites the persisted record with state.
func (s *FileProgressStore) Save(state *models.TransferState) error {
	if state == nil {
		return fmt.Errorf("%w: nil transfer state", shared.ErrInvalidInput)
	}

	data, err := shared.MarshalJSON(state, true)
	if err != nil {
		return fmt.Errorf("failed to encode transfer state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write transfer state: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace progress file: %w", err)
	}

	return nil
}

// Load reads the persisted record. A missing file returns nil with no error.
func (s *FileProgressStore) Load() (*models.TransferState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read progress file: %w", err)
	}

	var state models.TransferState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode progress file: %w", err)
	}

	if state.PlaylistID == "" {
		return nil, fmt.Errorf("%w: progress file has no playlist ID", shared.ErrInvalidInput)
	}

	return &state, nil
}

// Clear removes the persisted record. A missing file is not an error.
func (s *FileProgressStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove progress file: %w", err)
	}
	return nil
}
