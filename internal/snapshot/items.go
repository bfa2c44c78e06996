package snapshot

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/alekspetrov/clawban/internal/core"
)

// itemRecord is the on-disk form of a canonical work item. The stage is
// stored as its canonical key and re-parsed on load.
type itemRecord struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Stage     string         `json:"stage"`
	URL       string         `json:"url,omitempty"`
	Labels    []string       `json:"labels,omitempty"`
	UpdatedAt *Time          `json:"updatedAt,omitempty"`
	Raw       map[string]any `json:"raw,omitempty"`
}

// ItemStore persists the full tick snapshot (id to work item) between
// reconciliation runs.
type ItemStore struct {
	path string
}

// NewItemStore creates a store for the given tick-state file path.
func NewItemStore(path string) *ItemStore {
	return &ItemStore{path: path}
}

// Path returns the tick-state file path.
func (s *ItemStore) Path() string { return s.path }

// Load reads the previous tick snapshot. A missing file loads as an
// empty snapshot (first run); an unparsable file returns *CorruptError.
func (s *ItemStore) Load() (core.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return core.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tick state %s: %w", s.path, err)
	}

	var records map[string]itemRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}

	snap := make(core.Snapshot, len(records))
	for id, rec := range records {
		stage, err := core.StageFromAny(rec.Stage)
		if err != nil {
			return nil, &CorruptError{Path: s.path, Err: fmt.Errorf("item %s: %w", id, err)}
		}
		item := core.WorkItem{
			ID:     rec.ID,
			Title:  rec.Title,
			Stage:  stage,
			URL:    rec.URL,
			Labels: rec.Labels,
			Raw:    rec.Raw,
		}
		if rec.UpdatedAt != nil {
			item.UpdatedAt = rec.UpdatedAt.Time
		}
		snap[id] = item
	}
	return snap, nil
}

// Save rewrites the tick snapshot atomically with sorted keys.
func (s *ItemStore) Save(snap core.Snapshot) error {
	records := make(map[string]itemRecord, len(snap))
	for id, item := range snap {
		rec := itemRecord{
			ID:     item.ID,
			Title:  item.Title,
			Stage:  item.Stage.Key(),
			URL:    item.URL,
			Labels: item.Labels,
			Raw:    item.Raw,
		}
		if !item.UpdatedAt.IsZero() {
			rec.UpdatedAt = &Time{Time: item.UpdatedAt}
		}
		records[id] = rec
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tick state: %w", err)
	}
	data = append(data, '\n')

	return writeFileAtomic(s.path, data)
}
