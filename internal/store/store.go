// Package store is the persistence layer for proficiency tracking: a local
// SQLite database holding one running-statistics row per topic, an
// append-only log of answered questions, and an LLM request log.
//
// The store is built for a host it does not control. Initialization can
// happen after first use, so every operation tolerates an absent handle:
// reads degrade to empty results and writes are dropped with a warning.
// Errors never cross the store boundary to the learner-facing flow.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite handle and serializes proficiency writes.
type Store struct {
	db  *sql.DB
	log *zap.Logger

	// mu serializes the read-modify-write in UpdateProficiency. The
	// running means are only correct if same-topic updates never
	// interleave; a single mutex is enough for a single-learner tool.
	mu sync.Mutex
}

// Open creates a Store over the SQLite database at path. It configures
// the connection pragmas, ensures the meta table exists, and runs
// migrations.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := ensureMetaTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure meta table: %w", err)
	}

	ApplyMigrations(db, logger)

	return &Store{db: db, log: logger}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ready reports whether the store has a usable handle.
func (s *Store) ready() bool {
	return s != nil && s.db != nil
}

// dsn builds the connection string for single-user interactive use. The
// pragmas ride on the DSN so every connection the pool opens gets them;
// a pragma set via Exec only holds on whichever pooled connection ran it.
// Foreign keys stay at the SQLite default (off): the quiz_entries topic
// column is a loose reference to proficiency, and clearing proficiency
// must never cascade into the answer log.
func dsn(path string) string {
	return "file:" + path +
		"?_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)"
}

// DefaultDBPath resolves the database file path in priority order:
// 1. EPISTEMIQ_DB environment variable
// 2. $XDG_DATA_HOME/epistemiq/proficiency.db
// 3. ~/.local/share/epistemiq/proficiency.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("EPISTEMIQ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "epistemiq", "proficiency.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
