package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/folio/internal/filter"
)

// Storage persists the project filter selection between runs.
type Storage interface {
	Load() (filter.State, error)
	Save(state filter.State) error
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// persisted wraps the state the way it is stored on disk.
type persisted struct {
	Filters filter.State `json:"filters"`
}

// Load reads the filter state from the JSON file.
// Returns the cleared state if the file doesn't exist.
func (s *JSONStorage) Load() (filter.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return filter.DefaultState(), nil
		}
		return filter.State{}, err
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return filter.State{}, fmt.Errorf("parse %s: %w", s.path, err)
	}

	return withDefaults(p.Filters), nil
}

// Save writes the filter state to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(state filter.State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(persisted{Filters: withDefaults(state)}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// withDefaults fills fields an older or hand-edited file may lack.
func withDefaults(st filter.State) filter.State {
	st = st.Clone()
	if st.Status == "" {
		st.Status = filter.StatusAll
	}
	if st.Sort == "" {
		st.Sort = filter.SortDefault
	}
	return st
}

// DefaultDir returns the folio config directory: ~/.config/folio
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "folio"), nil
}

// DefaultStatePath returns the default JSON state path: ~/.config/folio/filters.json
func DefaultStatePath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "filters.json"), nil
}

// OpenStorage opens the appropriate storage backend.
// Prefers SQLite if the database file exists, otherwise falls back to JSON.
func OpenStorage() (Storage, error) {
	sqlitePath, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteStorage(sqlitePath)
	}

	jsonPath, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewJSONStorage(jsonPath), nil
}
