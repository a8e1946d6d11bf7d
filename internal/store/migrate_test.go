package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func openBareDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := ensureMetaTable(db); err != nil {
		t.Fatalf("meta table: %v", err)
	}
	return db
}

func TestApplyMigrations_NilDBIsNoOp(t *testing.T) {
	ApplyMigrations(nil, zap.NewNop()) // must not panic
}

func TestApplyMigrations_SecondRunWritesNothing(t *testing.T) {
	db := openBareDB(t)

	ApplyMigrations(db, zap.NewNop())
	if got := readSchemaVersion(db); got != 3 {
		t.Fatalf("version after first run = %d, want 3", got)
	}

	// A second run on a current schema must leave the marker untouched.
	ApplyMigrations(db, zap.NewNop())
	if got := readSchemaVersion(db); got != 3 {
		t.Errorf("version after second run = %d, want 3", got)
	}
}

func TestApplyMigrations_FailureDoesNotAdvanceMarkerButContinues(t *testing.T) {
	db := openBareDB(t)

	saved := migrations
	t.Cleanup(func() { migrations = saved })
	migrations = []migration{
		{version: 1, query: `CREATE TABLE IF NOT EXISTS one (id INTEGER PRIMARY KEY)`},
		{version: 2, query: `THIS IS NOT SQL`},
		{version: 3, query: `CREATE TABLE IF NOT EXISTS three (id INTEGER PRIMARY KEY)`},
	}

	ApplyMigrations(db, zap.NewNop())

	// v3 ran despite v2 failing, so the marker points at v3.
	if got := readSchemaVersion(db); got != 3 {
		t.Errorf("version = %d, want 3 (later migrations still attempted)", got)
	}
	var name string
	if err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'three'`,
	).Scan(&name); err != nil {
		t.Errorf("migration after the failing one did not run: %v", err)
	}
}

func TestReadSchemaVersion_DefaultsToZero(t *testing.T) {
	db := openBareDB(t)
	if got := readSchemaVersion(db); got != 0 {
		t.Errorf("version on empty meta = %d, want 0", got)
	}
}
