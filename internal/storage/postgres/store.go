package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq"

	"github.com/vsukhanov/tracker/internal/storage"
)

const currentVersion = 1

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// Store is the PostgreSQL-backed entity store. It mirrors the SQLite
// schema with $n placeholders and relies on transactional DDL for
// migrations.
type Store struct {
	connStr string
	db      *sql.DB
	hub     *storage.Hub
}

// New creates a store for the given connection string. Credentials must
// come from the environment, .pgpass, or the OS keyring.
func New(connStr string) (*Store, error) {
	if strings.TrimSpace(connStr) == "" {
		return nil, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if storage.HasEmbeddedCredentials(connStr) {
		return nil, ErrEmbeddedCredentials
	}
	return &Store{connStr: ensureSSLMode(connStr), hub: storage.NewHub()}, nil
}

// Subscribe registers a change callback; see storage.Provider.
func (s *Store) Subscribe(fn func()) func() {
	return s.hub.Subscribe(fn)
}

// ensureSSLMode appends sslmode=require unless the caller already chose one.
func ensureSSLMode(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return connStr
		}
		q := u.Query()
		if q.Get("sslmode") == "" {
			q.Set("sslmode", "require")
			u.RawQuery = q.Encode()
		}
		return u.String()
	}
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "sslmode") {
			return connStr
		}
	}
	return strings.TrimSpace(connStr) + " sslmode=require"
}

func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	return s.migrate()
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.migrate()
}

func (s *Store) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("connect to database: %w", err)
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
	return s.connStr
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema_version table: %w", err)
	}

	var version int
	err = s.db.QueryRow(`SELECT version FROM schema_version`).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version >= currentVersion {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if version < 1 {
		if _, err := tx.Exec(schemaV1); err != nil {
			return fmt.Errorf("apply schema v1: %w", err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM schema_version`); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES ($1)`, currentVersion); err != nil {
		return err
	}
	return tx.Commit()
}

const schemaV1 = `
CREATE TABLE IF NOT EXISTS categories (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS habits (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	color       TEXT NOT NULL,
	emoji       TEXT NOT NULL,
	schedule    TEXT NOT NULL,
	category_id TEXT NOT NULL REFERENCES categories(id),
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_habits_category ON habits(category_id);

CREATE TABLE IF NOT EXISTS completion_records (
	habit_id    TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
	day         TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (habit_id, day)
);

CREATE INDEX IF NOT EXISTS idx_records_day ON completion_records(day);
`
