package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorePutGet(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	if _, err := store.Get(t.Context(), DefaultTasksSlot); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Put(t.Context(), DefaultTasksSlot, "[1]"); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.Get(t.Context(), DefaultTasksSlot)
	if err != nil || got != "[1]" {
		t.Fatalf("unexpected get %q %v", got, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || filepath.Ext(entries[0].Name()) != ".json" {
		t.Fatalf("expected a single slot file without temp leftovers, got %v", entries)
	}
}

func TestFileStoreRequiresDir(t *testing.T) {
	if _, err := NewFileStore("  "); err == nil {
		t.Fatal("expected error for blank dir")
	}
}
