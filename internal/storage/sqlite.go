package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/af/internal/model"
)

const currentSchemaVersion = 2

// SQLiteFileName is the database file name inside the data directory.
const SQLiteFileName = "af.db"

// ErrDatabaseExists is returned when migrating into an existing database.
var ErrDatabaseExists = errors.New("database already exists")

// SQLiteStorage keeps both bookmark kinds in a single SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
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

// ForKind returns a Storage view over the rows of one kind.
func (s *SQLiteStorage) ForKind(kind model.Kind) *SQLiteKindStorage {
	return &SQLiteKindStorage{db: s, kind: kind}
}

// SchemaVersion returns the migrated schema version.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < currentSchemaVersion {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS entries (
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			position INTEGER NOT NULL,
			pinned INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (kind, name)
		);

		CREATE TABLE IF NOT EXISTS recents (
			kind TEXT NOT NULL,
			position INTEGER NOT NULL,
			path TEXT NOT NULL,
			PRIMARY KEY (kind, position)
		);

		CREATE TABLE IF NOT EXISTS settings (
			kind TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (kind, key)
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds the auto-open folder list.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		CREATE TABLE IF NOT EXISTS auto_open (
			position INTEGER PRIMARY KEY,
			path TEXT NOT NULL
		);
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// SQLiteKindStorage implements Storage for one kind inside a SQLiteStorage.
type SQLiteKindStorage struct {
	db   *SQLiteStorage
	kind model.Kind
}

// Close closes the underlying database.
func (k *SQLiteKindStorage) Close() error {
	return k.db.Close()
}

// Load reads the store for this kind.
func (k *SQLiteKindStorage) Load() (*model.Store, error) {
	db := k.db.db
	kind := k.kind.String()
	store := model.NewStore(k.kind)

	rows, err := db.Query(`
		SELECT name, path, pinned
		FROM entries
		WHERE kind = ?
		ORDER BY position
	`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, path string
		var pinned int
		if err := rows.Scan(&name, &path, &pinned); err != nil {
			return nil, err
		}
		store.Entries[name] = path
		store.Order = append(store.Order, name)
		if pinned == 1 {
			store.Pinned[name] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	store.Recent, err = k.loadPaths(`SELECT path FROM recents WHERE kind = ? ORDER BY position`, kind)
	if err != nil {
		return nil, err
	}

	settings, err := k.loadSettings(kind)
	if err != nil {
		return nil, err
	}
	store.SortMode = model.ParseSortMode(settings["sortMode"])
	store.ShowPath = settings["showPath"] == "1"

	if k.kind == model.KindFolder {
		store.AutoLoadLastFolder = settings["autoLoadLastFolder"] == "1"
		if v, ok := settings["lastSystemUptime"]; ok {
			store.LastSystemUptime, _ = strconv.ParseInt(v, 10, 64)
		}
		store.LastOpenedFolders, err = k.loadPaths(`SELECT path FROM auto_open ORDER BY position`)
		if err != nil {
			return nil, err
		}
	}

	store.Normalize()
	return store, nil
}

func (k *SQLiteKindStorage) loadPaths(query string, args ...any) ([]string, error) {
	rows, err := k.db.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (k *SQLiteKindStorage) loadSettings(kind string) (map[string]string, error) {
	rows, err := k.db.db.Query(`SELECT key, value FROM settings WHERE kind = ?`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// Save writes the store for this kind.
// Uses a transaction for atomicity - all or nothing.
func (k *SQLiteKindStorage) Save(store *model.Store) error {
	kind := k.kind.String()

	tx, err := k.db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Clear existing rows for this kind
	for _, q := range []string{
		"DELETE FROM entries WHERE kind = ?",
		"DELETE FROM recents WHERE kind = ?",
		"DELETE FROM settings WHERE kind = ?",
	} {
		if _, err := tx.Exec(q, kind); err != nil {
			return err
		}
	}

	entryStmt, err := tx.Prepare(`
		INSERT INTO entries (kind, name, path, position, pinned)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer entryStmt.Close()

	for i, name := range store.Order {
		path, ok := store.Entries[name]
		if !ok {
			continue
		}
		pinned := 0
		if store.Pinned[name] {
			pinned = 1
		}
		if _, err := entryStmt.Exec(kind, name, path, i, pinned); err != nil {
			return err
		}
	}

	for i, p := range store.Recent {
		if _, err := tx.Exec(`INSERT INTO recents (kind, position, path) VALUES (?, ?, ?)`, kind, i, p); err != nil {
			return err
		}
	}

	settings := map[string]string{
		"sortMode": string(store.SortMode),
		"showPath": boolString(store.ShowPath),
	}
	if k.kind == model.KindFolder {
		settings["autoLoadLastFolder"] = boolString(store.AutoLoadLastFolder)
		settings["lastSystemUptime"] = strconv.FormatInt(store.LastSystemUptime, 10)

		if _, err := tx.Exec("DELETE FROM auto_open"); err != nil {
			return err
		}
		for i, p := range store.LastOpenedFolders {
			if _, err := tx.Exec(`INSERT INTO auto_open (position, path) VALUES (?, ?)`, i, p); err != nil {
				return err
			}
		}
	}
	for key, value := range settings {
		if _, err := tx.Exec(`INSERT INTO settings (kind, key, value) VALUES (?, ?, ?)`, kind, key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// DefaultSQLitePath returns the default SQLite database path: ~/.config/af/af.db
func DefaultSQLitePath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SQLiteFileName), nil
}

// MigrateJSON copies both JSON stores into the database. Missing JSON files
// produce empty stores. Both files are read before anything is written.
func (s *SQLiteStorage) MigrateJSON(files, folders *JSONStorage) error {
	sources := []*JSONStorage{files, folders}
	stores := make([]*model.Store, len(sources))
	for i, src := range sources {
		store, err := src.Load()
		if err != nil {
			return fmt.Errorf("reading %s: %w", src.Path(), err)
		}
		stores[i] = store
	}

	for i, src := range sources {
		if err := s.ForKind(src.Kind()).Save(stores[i]); err != nil {
			return err
		}
	}
	return nil
}

// MigrateJSONFile builds the database at path from both JSON stores. The
// database is written under a temporary name and moved into place only once
// the migration succeeded, so a failed run leaves no database behind.
func MigrateJSONFile(path string, files, folders *JSONStorage) (err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		return fmt.Errorf("%s: %w", path, ErrDatabaseExists)
	}

	tmpPath := path + ".tmp"
	removeTemp := func() {
		for _, suffix := range []string{"", "-wal", "-shm"} {
			_ = os.Remove(tmpPath + suffix)
		}
	}
	removeTemp()
	defer func() {
		if err != nil {
			removeTemp()
		}
	}()

	db, err := NewSQLiteStorage(tmpPath)
	if err != nil {
		return err
	}
	if err := db.MigrateJSON(files, folders); err != nil {
		_ = db.Close()
		return err
	}
	// Fold the WAL back into the main file before it is renamed.
	if _, err := db.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		_ = db.Close()
		return err
	}
	if err := db.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(tmpPath + suffix)
	}
	return nil
}
