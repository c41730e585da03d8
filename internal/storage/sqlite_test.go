package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its directory were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestRecordAndListReloads(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.RecordReload("comfywars", "/tmp/a.so", nil); err != nil {
		t.Fatalf("RecordReload() failed: %v", err)
	}
	if _, err := store.RecordReload("comfywars", "/tmp/a.so", errors.New("plugin was built with a different version")); err != nil {
		t.Fatalf("RecordReload() failed: %v", err)
	}
	if _, err := store.RecordReload("other", "/tmp/b.so", nil); err != nil {
		t.Fatalf("RecordReload() failed: %v", err)
	}

	entries, err := store.RecentReloads(2)
	if err != nil {
		t.Fatalf("RecentReloads() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	// Newest first
	if entries[0].Unit != "other" || entries[0].Outcome != OutcomeLoaded {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Outcome != OutcomeFailed || entries[1].Error == "" {
		t.Errorf("entries[1] = %+v, want a failure with its error", entries[1])
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestFaults(t *testing.T) {
	store := openTestStore(t)

	for _, msg := range []string{"index out of range", "nil map"} {
		if _, err := store.RecordFault("comfywars", msg); err != nil {
			t.Fatalf("RecordFault() failed: %v", err)
		}
	}

	n, err := store.FaultCount("comfywars")
	if err != nil {
		t.Fatalf("FaultCount() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("FaultCount = %d, want 2", n)
	}
	if n, _ := store.FaultCount("nothing"); n != 0 {
		t.Errorf("FaultCount(nothing) = %d, want 0", n)
	}

	faults, err := store.RecentFaults(0)
	if err != nil {
		t.Fatalf("RecentFaults() failed: %v", err)
	}
	if len(faults) != 2 || faults[0].Message != "nil map" {
		t.Errorf("faults = %+v", faults)
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats("comfywars")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Reloads != 0 || !stats.LastReload.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.RecordReload("comfywars", "a.so", nil)
	store.RecordReload("comfywars", "a.so", errors.New("boom"))
	store.RecordFault("comfywars", "panic")

	stats, err = store.Stats("comfywars")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Reloads != 2 || stats.Failed != 1 || stats.Faults != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastReload.IsZero() {
		t.Error("LastReload was not parsed")
	}
}
