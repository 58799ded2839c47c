package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vsukhanov/tracker/internal/storage"
)

const currentVersion = 1

// Store is the SQLite-backed entity store. A single connection with WAL
// keeps each statement atomic with respect to concurrent scans.
type Store struct {
	path string
	db   *sql.DB
	hub  *storage.Hub
}

// New creates a store for the database at path. Call Init or Load before
// using it.
func New(path string) *Store {
	return &Store{path: path, hub: storage.NewHub()}
}

// NewMemory creates an initialized in-memory store for testing.
func NewMemory() (*Store, error) {
	s := New(":memory:")
	if err := s.open(); err != nil {
		return nil, err
	}
	if err := s.migrate(); err != nil {
		s.db.Close()
		return nil, err
	}
	return s, nil
}

// Init creates the database file (and its directory) and runs migrations.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := s.open(); err != nil {
		return err
	}
	if err := s.migrate(); err != nil {
		s.db.Close()
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Load opens an existing database, failing if it was never initialized.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tracker init' first")
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.migrate()
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// Subscribe registers a change callback; see storage.Provider.
func (s *Store) Subscribe(fn func()) func() {
	return s.hub.Subscribe(fn)
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS categories (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS habits (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		color       TEXT NOT NULL,
		emoji       TEXT NOT NULL,
		schedule    TEXT NOT NULL,
		category_id TEXT NOT NULL REFERENCES categories(id),
		created_at  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_habits_category ON habits(category_id);

	CREATE TABLE IF NOT EXISTS completion_records (
		habit_id    TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		day         TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		PRIMARY KEY (habit_id, day)
	);

	CREATE INDEX IF NOT EXISTS idx_records_day ON completion_records(day);
	`
	_, err := s.db.Exec(ddl)
	return err
}
