package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/alekspetrov/clawban/internal/core"
)

func testItemStore(t *testing.T) *ItemStore {
	t.Helper()
	return NewItemStore(filepath.Join(t.TempDir(), "tick-state.json"))
}

func TestItemStoreLoadMissingFile(t *testing.T) {
	store := testItemStore(t)

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap) != 0 {
		t.Errorf("missing file loaded %d items, want 0", len(snap))
	}
}

func TestItemStoreRoundTrip(t *testing.T) {
	store := testItemStore(t)

	stage, err := core.StageFromAny("in progress")
	if err != nil {
		t.Fatalf("StageFromAny error = %v", err)
	}
	snap := core.Snapshot{
		"12": {
			ID:        "12",
			Title:     "Wire the adapter",
			Stage:     stage,
			URL:       "https://example.com/12",
			Labels:    []string{"stage:in-progress", "bug"},
			UpdatedAt: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
			Raw:       map[string]any{"state": "open"},
		},
		"13": {
			ID:    "13",
			Title: "No timestamp",
			Stage: core.StageBacklog,
		},
	}

	if err := store.Save(snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, snap) {
		t.Errorf("round-trip = %#v, want %#v", loaded, snap)
	}
}

func TestItemStoreLoadCorrupt(t *testing.T) {
	store := testItemStore(t)
	if err := os.WriteFile(store.Path(), []byte("[]"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := store.Load()
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("error = %v, want *CorruptError", err)
	}
}

func TestItemStoreLoadUnknownStage(t *testing.T) {
	store := testItemStore(t)
	doc := `{"9": {"id": "9", "title": "bad", "stage": "stage:done"}}`
	if err := os.WriteFile(store.Path(), []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := store.Load()
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("error = %v, want *CorruptError", err)
	}
	var unrecognized *core.UnrecognizedStageError
	if !errors.As(err, &unrecognized) {
		t.Errorf("corrupt error does not wrap *UnrecognizedStageError: %v", err)
	}
}
