package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/franz/tnt-search/internal/store"
)

func TestCheckSQLite(t *testing.T) {
	result := checkSQLite()

	if result.error {
		t.Errorf("SQLite check failed: %s", result.message)
	}

	if result.message == "" {
		t.Error("expected version information in message")
	}
}

func TestCheckStore_NonExistent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nonexistent.db")

	result := checkStore(context.Background(), dbPath)

	if !result.error {
		t.Error("expected error for a missing store")
	}
	if !strings.Contains(result.message, "import") {
		t.Errorf("expected a hint to run import, got %q", result.message)
	}

	// The check must not create the store
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Error("doctor created the store file")
	}
}

func TestCheckStore_Existing(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := store.Create(ctx, dbPath)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	err = db.InsertReleases(ctx, []store.Release{{
		Timestamp: time.Now(),
		Hash:      "ABCD1234",
		Title:     "Test",
		Size:      1024,
	}})
	if err != nil {
		t.Fatalf("failed to insert test release: %v", err)
	}
	db.Close()

	result := checkStore(ctx, dbPath)

	if result.error || result.warning {
		t.Errorf("store check failed: %s", result.message)
	}
	if !strings.Contains(result.message, "1 releases") {
		t.Errorf("expected release count in message, got %q", result.message)
	}
}

func TestCheckStore_EmptyStore(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	db, err := store.Create(ctx, dbPath)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	db.Close()

	result := checkStore(ctx, dbPath)

	if !result.warning {
		t.Errorf("expected warning for a store without releases, got %+v", result)
	}
}

func TestCheckStore_NotADatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(dbPath, []byte(strings.Repeat("garbage ", 512)), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	result := checkStore(context.Background(), dbPath)

	if !result.error {
		t.Error("expected error for a file that is not a database")
	}
}

func TestCheckStore_EmptyPath(t *testing.T) {
	result := checkStore(context.Background(), "")

	if !result.warning {
		t.Error("expected warning for empty store path")
	}
}
