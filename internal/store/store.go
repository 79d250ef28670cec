package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// memoryDSN keeps the whole journal inside the process. Nothing is written
// to disk and everything is gone when the store is closed.
const memoryDSN = ":memory:"

type Store struct {
	db      *sql.DB
	version atomic.Uint64
	now     func() time.Time
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != memoryDSN {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A second connection to :memory: would see an empty database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates the in-memory store the application runs on.
func NewMemory() (*Store, error) {
	return New(memoryDSN)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Version is bumped by every mutation that changed the journal. Derived
// views compare it to decide whether they are stale.
func (s *Store) Version() uint64 {
	return s.version.Load()
}

func (s *Store) bump() {
	s.version.Add(1)
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
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

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS entries (
		seq               INTEGER PRIMARY KEY AUTOINCREMENT,
		id                TEXT NOT NULL UNIQUE,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL,
		gefuehle          TEXT NOT NULL DEFAULT '',
		gut               TEXT NOT NULL DEFAULT '',
		dankbarkeit       TEXT NOT NULL DEFAULT '',
		herausforderungen TEXT NOT NULL DEFAULT '',
		lernen            TEXT NOT NULL DEFAULT '',
		body              TEXT NOT NULL DEFAULT '',
		favorite          INTEGER NOT NULL DEFAULT 0,
		mood              INTEGER CHECK (mood BETWEEN 1 AND 5)
	);

	CREATE TABLE IF NOT EXISTS entry_tags (
		entry_id  TEXT NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
		position  INTEGER NOT NULL,
		tag       TEXT NOT NULL,
		PRIMARY KEY (entry_id, tag)
	);

	CREATE INDEX IF NOT EXISTS idx_entry_tags_tag ON entry_tags(tag);
	`
	_, err := s.db.Exec(ddl)
	return err
}
