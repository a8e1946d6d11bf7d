package store

import (
	"database/sql"
	"strconv"

	"go.uber.org/zap"
)

// schemaVersionKey is the meta-table key holding the applied schema version.
const schemaVersionKey = "schema_version"

// migration is a single versioned, idempotent DDL step.
type migration struct {
	version int
	query   string
}

// migrations are applied in ascending version order. Append only; never
// edit an entry that has shipped; existing databases identify applied
// steps solely by version number.
var migrations = []migration{
	{
		version: 1,
		query: `
			CREATE TABLE IF NOT EXISTS proficiency (
				topic TEXT PRIMARY KEY,
				accuracy REAL DEFAULT 0,
				total_questions INTEGER DEFAULT 0,
				average_time REAL DEFAULT 0,
				last_tested TEXT DEFAULT NULL
			)`,
	},
	{
		// The topic clause is declarative only. Enforcement stays off at
		// the connection level so clearing proficiency cannot cascade
		// into the answer log.
		version: 2,
		query: `
			CREATE TABLE IF NOT EXISTS quiz_entries (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				topic TEXT,
				is_correct INTEGER,
				response_time INTEGER,
				timestamp TEXT DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (topic) REFERENCES proficiency(topic) ON DELETE CASCADE
			)`,
	},
	{
		version: 3,
		query: `
			CREATE TABLE IF NOT EXISTS llm_requests (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				provider TEXT,
				model TEXT,
				purpose TEXT,
				input_tokens INTEGER DEFAULT 0,
				output_tokens INTEGER DEFAULT 0,
				latency_ms INTEGER DEFAULT 0,
				success INTEGER,
				error_message TEXT DEFAULT '',
				timestamp TEXT DEFAULT CURRENT_TIMESTAMP
			)`,
	},
}

// ensureMetaTable creates the key/value metadata table that holds the
// schema version marker.
func ensureMetaTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT
		)`)
	return err
}

// ApplyMigrations applies, in ascending order, every migration whose
// version exceeds the stored schema version. Each successful step advances
// the version marker before the next step runs. A failing step is logged
// and its marker is not advanced, but later steps are still attempted.
// Migration is best effort, not all-or-nothing. No-op when db is nil.
func ApplyMigrations(db *sql.DB, logger *zap.Logger) {
	if db == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	current := readSchemaVersion(db)

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if _, err := db.Exec(m.query); err != nil {
			logger.Warn("migration failed",
				zap.Int("version", m.version),
				zap.Error(err))
			continue
		}
		if _, err := db.Exec(
			`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`,
			schemaVersionKey, strconv.Itoa(m.version),
		); err != nil {
			logger.Warn("updating schema version marker failed",
				zap.Int("version", m.version),
				zap.Error(err))
			continue
		}
		logger.Info("applied migration", zap.Int("version", m.version))
	}
}

// readSchemaVersion returns the stored schema version, or 0 when absent.
func readSchemaVersion(db *sql.DB) int {
	var value string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = ?`, schemaVersionKey).Scan(&value)
	if err != nil {
		return 0
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return v
}

// SchemaVersion reports the applied schema version, 0 when uninitialized.
func (s *Store) SchemaVersion() int {
	if !s.ready() {
		return 0
	}
	return readSchemaVersion(s.db)
}
