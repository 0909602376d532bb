package usage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists exactly one snapshot at a fixed path. Writes go through a
// temp file and rename so a concurrent reader sees either the old snapshot or
// the new one, never a partial file.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) Read() (*Snapshot, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading usage cache: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing usage cache %s: %w", s.Path, err)
	}

	return &snap, nil
}

func (s *Store) Write(snap Snapshot) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling usage cache: %w", err)
	}
	data = append(data, '\n')

	tmpPath := s.Path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing usage cache: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("replacing usage cache: %w", err)
	}
	return nil
}
