package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/shoplist/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/shoplist/internal/core/domain"
	"github.com/custodia-labs/shoplist/internal/core/ports/driven"
)

// DBFileName is the database file inside the data directory.
const DBFileName = "shoplist.db"

// Ensure Store implements the interface.
var _ driven.CredentialStore = (*Store)(nil)

// Store keeps the credential record in a local SQLite database.
type Store struct {
	db         *sql.DB
	path       string
	recordPath string
}

// NewStore opens (creating if needed) the database in dataDir and runs
// pending migrations. If dataDir is empty, defaults to ~/.shoplist.
// recordPath is the logical key of the record.
func NewStore(dataDir, recordPath string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".shoplist")
	}
	if recordPath == "" {
		recordPath = domain.DefaultAppSettings().Store.RecordPath
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:         db,
		path:       dbPath,
		recordPath: recordPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save upserts the record at the store's record path.
func (s *Store) Save(ctx context.Context, record domain.CredentialRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshalling credentials: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO credential_records (path, record, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			record = excluded.record,
			updated_at = excluded.updated_at
	`, s.recordPath, string(data), now, now)
	if err != nil {
		return fmt.Errorf("%w: saving credentials: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Load returns the record, or nil if none is stored.
func (s *Store) Load(ctx context.Context) (*domain.CredentialRecord, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT record FROM credential_records WHERE path = ?", s.recordPath,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loading credentials: %w", domain.ErrStoreUnavailable, err)
	}

	var record domain.CredentialRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("unmarshalling credentials: %w", err)
	}
	return &record, nil
}

// Delete removes the record. Deleting nothing is not an error.
func (s *Store) Delete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM credential_records WHERE path = ?", s.recordPath)
	if err != nil {
		return fmt.Errorf("%w: deleting credentials: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_credentials.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, stmt string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(stmt); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
