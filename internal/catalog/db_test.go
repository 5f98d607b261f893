// Package catalog tests for database opening and configuration.
package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_createsSchema(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	defer db.Close()

	var count int
	err = db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('folders','items','activity_log')`).
		Scan(&count)
	if err != nil {
		t.Fatalf("Schema query failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 tables, got %d", count)
	}
}

func TestOpen_badDataDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "occupied")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0644); err != nil {
		t.Fatalf("Failed to write blocker file: %v", err)
	}

	if _, err := Open(blocker); err == nil {
		t.Error("Open() should fail when the data dir path is a regular file")
	}
}

// TestOpen_corruptFile verifies a failed configuration run releases the
// handle so the caller can retry against a repaired file.
func TestOpen_corruptFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "scanbench.db")
	if err := os.WriteFile(dbPath, []byte("this is not an sqlite file"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	if _, err := Open(dir); err == nil {
		t.Fatal("Open() should fail on a corrupt database file")
	}

	// With the stale handle closed, replacing the file and reopening works.
	if err := os.Remove(dbPath); err != nil {
		t.Fatalf("Failed to remove corrupt file: %v", err)
	}
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() after repair returned error: %v", err)
	}
	db.Close()
}
