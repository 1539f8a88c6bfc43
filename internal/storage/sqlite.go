package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/folio/internal/filter"
)

const currentSchemaVersion = 2

const (
	dimensionTechnology = "technology"
	dimensionCategory   = "category"
)

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the migrated schema version.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema: one filter_state row plus the
// selected values of the set-valued dimensions.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS filter_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			status TEXT NOT NULL DEFAULT 'all',
			search_query TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS filter_values (
			dimension TEXT NOT NULL CHECK (dimension IN ('technology', 'category')),
			value TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (dimension, value)
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds the sort mode.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		ALTER TABLE filter_state ADD COLUMN sort TEXT NOT NULL DEFAULT 'default';
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Load reads the filter state from the database.
// Returns the cleared state if nothing has been saved yet.
func (s *SQLiteStorage) Load() (filter.State, error) {
	state := filter.DefaultState()

	var status, sortMode string
	err := s.db.QueryRow(`
		SELECT status, search_query, sort
		FROM filter_state
		WHERE id = 1
	`).Scan(&status, &state.SearchQuery, &sortMode)
	if errors.Is(err, sql.ErrNoRows) {
		return state, nil
	}
	if err != nil {
		return filter.State{}, err
	}
	state.Status = filter.Status(status)
	state.Sort = filter.SortMode(sortMode)

	rows, err := s.db.Query(`
		SELECT dimension, value
		FROM filter_values
		ORDER BY dimension, position
	`)
	if err != nil {
		return filter.State{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var dimension, value string
		if err := rows.Scan(&dimension, &value); err != nil {
			return filter.State{}, err
		}
		switch dimension {
		case dimensionTechnology:
			state.Technologies = append(state.Technologies, value)
		case dimensionCategory:
			state.Categories = append(state.Categories, value)
		}
	}

	if err := rows.Err(); err != nil {
		return filter.State{}, err
	}

	return withDefaults(state), nil
}

// Save writes the filter state to the database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(state filter.State) error {
	state = withDefaults(state)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO filter_state (id, status, search_query, sort, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			search_query = excluded.search_query,
			sort = excluded.sort,
			updated_at = excluded.updated_at
	`, string(state.Status), state.SearchQuery, string(state.Sort), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM filter_values"); err != nil {
		return err
	}

	valueStmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO filter_values (dimension, value, position)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer valueStmt.Close()

	for i, tech := range state.Technologies {
		if _, err := valueStmt.Exec(dimensionTechnology, tech, i); err != nil {
			return err
		}
	}
	for i, cat := range state.Categories {
		if _, err := valueStmt.Exec(dimensionCategory, cat, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DefaultSQLitePath returns the default SQLite database path: ~/.config/folio/folio.db
func DefaultSQLitePath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "folio.db"), nil
}
