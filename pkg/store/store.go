// Package store persists the reconciled movement set as a flat YAML file.
// The engine itself never writes state; the CLI and the server use this
// store as the caller-side persistence the engine is seeded from.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mwinkler/spesen/pkg/models"
)

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted movements. A missing file is an empty set, not
// an error; first imports start from nothing.
func (s *Store) Load() ([]*models.Movement, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read store %s: %w", s.path, err)
	}
	var movements []*models.Movement
	if err := yaml.Unmarshal(data, &movements); err != nil {
		return nil, fmt.Errorf("failed to parse store %s: %w", s.path, err)
	}
	return movements, nil
}

// Save replaces the whole record set atomically: write to a temp file in
// the same directory, then rename over the old one. Upserts happen upstream
// in the reconciler, keyed by id, so a plain replace is all-or-nothing.
func (s *Store) Save(movements []*models.Movement) error {
	data, err := yaml.Marshal(movements)
	if err != nil {
		return fmt.Errorf("failed to marshal movements: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".movements-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace store %s: %w", s.path, err)
	}
	return nil
}
