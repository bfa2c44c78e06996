// Package journal persists emitted events to SQLite for audit and
// later inspection. It is an append-only sink: nothing in the diff or
// poll engines ever reads it back.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/alekspetrov/clawban/internal/core"
	"github.com/alekspetrov/clawban/internal/poll"
)

// Journal is an append-only event log backed by SQLite.
type Journal struct {
	db *sql.DB
}

// Open opens (or creates) a journal database at the given path and runs
// migrations. Use ":memory:" for tests.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		return nil, fmt.Errorf("failed to set journal pragmas: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		return nil, fmt.Errorf("journal migration failed: %w", err)
	}
	return j, nil
}

func (j *Journal) migrate() error {
	_, err := j.db.Exec(`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		adapter TEXT NOT NULL,
		kind TEXT NOT NULL,
		item_id TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL
	)`)
	return err
}

// Close closes the underlying database.
func (j *Journal) Close() error { return j.db.Close() }

// RecordTick appends the canonical events from one tick run under a
// fresh run id, which it returns.
func (j *Journal) RecordTick(result *core.TickResult) (string, error) {
	runID := uuid.NewString()
	for _, ev := range result.Events {
		itemID, detail := describeEvent(ev)
		if err := j.insert(runID, result.AdapterName, ev.Kind(), itemID, detail); err != nil {
			return runID, err
		}
	}
	return runID, nil
}

// RecordPoll appends synthesized poll events under a fresh run id.
func (j *Journal) RecordPoll(adapter string, events []poll.Event) (string, error) {
	runID := uuid.NewString()
	for _, ev := range events {
		detail := map[string]any{}
		switch ev.Kind {
		case poll.KindCreated:
			detail["title"] = ev.Title
			detail["labels"] = ev.Labels
		case poll.KindLabelsChanged:
			detail["added"] = ev.Added
			detail["removed"] = ev.Removed
		}
		if err := j.insert(runID, adapter, string(ev.Kind), ev.ItemID, detail); err != nil {
			return runID, err
		}
	}
	return runID, nil
}

func (j *Journal) insert(runID, adapter, kind, itemID string, detail map[string]any) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to marshal event detail: %w", err)
	}
	_, err = j.db.Exec(
		`INSERT INTO events (id, run_id, adapter, kind, item_id, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), runID, adapter, kind, itemID, string(payload),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// describeEvent flattens a canonical event into an item id and a detail
// payload for storage.
func describeEvent(ev core.Event) (string, map[string]any) {
	switch e := ev.(type) {
	case core.WorkItemCreated:
		return e.WorkItem.ID, map[string]any{
			"title":  e.WorkItem.Title,
			"stage":  e.WorkItem.Stage.Key(),
			"labels": e.WorkItem.Labels,
		}
	case core.WorkItemDeleted:
		return e.WorkItemID, map[string]any{}
	case core.StageChanged:
		return e.WorkItemID, map[string]any{
			"old": e.Old.Key(),
			"new": e.New.Key(),
		}
	case core.WorkItemUpdated:
		return e.WorkItemID, map[string]any{}
	default:
		return "", map[string]any{}
	}
}

// Entry is one journaled event row.
type Entry struct {
	ID        string
	RunID     string
	Adapter   string
	Kind      string
	ItemID    string
	Detail    string
	CreatedAt time.Time
}

// Recent returns the newest n entries, newest first.
func (j *Journal) Recent(n int) ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT id, run_id, adapter, kind, item_id, detail, created_at
		 FROM events ORDER BY created_at DESC, id LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.RunID, &e.Adapter, &e.Kind, &e.ItemID, &e.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
