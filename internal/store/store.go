package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/franz/tnt-search/internal/util"
	"github.com/jmoiron/sqlx"
)

const (
	currentSchemaVersion = 2

	// DriverName is the database/sql driver registered by modernc.org/sqlite
	DriverName = "sqlite"
)

// Store is the release catalog persisted in a single SQLite file
type Store struct {
	db       *sqlx.DB
	path     string
	readOnly bool
}

// Open opens an existing store for searching.
//
// The path is checked before any connection is made: a missing file is
// ErrStoreNotFound, a file SQLite cannot read is ErrStoreUnreadable, and a
// database without the releases table is ErrSchemaMissing.
func Open(ctx context.Context, path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", util.ErrStoreNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", util.ErrStoreUnreadable, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", util.ErrStoreUnreadable, path)
	}

	db, err := sqlx.Open(DriverName, dsn(path, true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", util.ErrStoreUnreadable, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &Store{db: db, path: path, readOnly: true}

	exists, err := store.hasTable(ctx, releasesTable)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %w", util.ErrStoreUnreadable, path, err)
	}
	if !exists {
		db.Close()
		return nil, fmt.Errorf("%w: %s has no %s table", util.ErrSchemaMissing, path, releasesTable)
	}

	return store, nil
}

// Create opens or creates a writable store at path and applies migrations.
// It is used by the import step only.
func Create(ctx context.Context, path string) (*Store, error) {
	db, err := sqlx.Open(DriverName, dsn(path, false))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &Store{db: db, path: path}

	if err := store.applyBulkPragmas(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply import pragmas: %w", err)
	}

	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return store, nil
}

// uriPath escapes the characters that end or alter the path part of an
// SQLite file: URI. SQLite decodes %HH escapes before opening the file.
var uriPath = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// dsn builds the modernc connection string. Pragmas passed as _pragma are
// applied to every new connection of the pool.
func dsn(path string, readOnly bool) string {
	mode := "rwc"
	if readOnly {
		mode = "ro"
	}
	return fmt.Sprintf("file:%s?mode=%s&_pragma=busy_timeout(5000)&_pragma=case_sensitive_like(1)",
		uriPath.Replace(path), mode)
}

// applyBulkPragmas trades durability for speed; an interrupted import is
// simply re-run with --force.
func (s *Store) applyBulkPragmas(ctx context.Context) error {
	pragmas := []string{
		"PRAGMA synchronous = OFF",
		"PRAGMA temp_store = MEMORY",
		// Negative value = KB (64000 KB = ~64 MB)
		"PRAGMA cache_size = -64000",
	}

	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the file backing the store
func (s *Store) Path() string {
	return s.path
}

// SQLiteVersion returns the SQLite version string
func SQLiteVersion() string {
	db, err := sqlx.Open(DriverName, ":memory:")
	if err != nil {
		return ""
	}
	defer db.Close()

	var version string
	if err := db.Get(&version, "SELECT sqlite_version()"); err != nil {
		return ""
	}
	return version
}

// CheckIntegrity runs PRAGMA integrity_check on the database
func (s *Store) CheckIntegrity(ctx context.Context) error {
	var result string
	err := s.db.GetContext(ctx, &result, "PRAGMA integrity_check")
	if err != nil {
		return fmt.Errorf("integrity check query failed: %w", err)
	}

	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}

	return nil
}

func (s *Store) hasTable(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name=?
	`, name)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// migrate applies database migrations
func (s *Store) migrate(ctx context.Context) error {
	version, err := s.getSchemaVersion(ctx)
	if err != nil {
		return err
	}

	if version >= currentSchemaVersion {
		return nil
	}

	return s.Transaction(ctx, func(tx *sqlx.Tx) error {
		// Schema v1 - releases table
		if version < 1 {
			if _, err := tx.ExecContext(ctx, schemaV1); err != nil {
				return fmt.Errorf("failed to apply schema v1: %w", err)
			}
			if err := setSchemaVersion(ctx, tx, 1); err != nil {
				return fmt.Errorf("failed to set schema version: %w", err)
			}
		}

		// Schema v2 - title ordering index
		if version < 2 {
			if _, err := tx.ExecContext(ctx, schemaV2); err != nil {
				return fmt.Errorf("failed to apply schema v2: %w", err)
			}
			if err := setSchemaVersion(ctx, tx, 2); err != nil {
				return fmt.Errorf("failed to set schema version: %w", err)
			}
		}

		return nil
	})
}

// getSchemaVersion returns the current schema version, 0 for an empty database
func (s *Store) getSchemaVersion(ctx context.Context) (int, error) {
	exists, err := s.hasTable(ctx, "schema_version")
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}

	var version int
	err = s.db.GetContext(ctx, &version, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err != nil {
		return 0, err
	}

	return version, nil
}

func setSchemaVersion(ctx context.Context, tx *sqlx.Tx, version int) error {
	_, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", version)
	return err
}

// Transaction executes a function within a transaction
func (s *Store) Transaction(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if s.readOnly {
		return fmt.Errorf("store %s is opened read-only", s.path)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
