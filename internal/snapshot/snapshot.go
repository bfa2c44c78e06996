// Package snapshot persists poll and tick state between runs as JSON
// documents with stable key ordering, so snapshot files diff cleanly.
package snapshot

import (
	"time"

	"github.com/goccy/go-json"
)

// MetaKey is the reserved snapshot key carrying poll metadata.
const MetaKey = "_meta"

// Time marshals as ISO-8601 UTC with a literal Z suffix, matching the
// on-disk snapshot format.
type Time struct {
	time.Time
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	t.Time = parsed.UTC()
	return nil
}

// Record is the persisted observation for one tracked item.
type Record struct {
	UpdatedAt Time     `json:"updatedAt"`
	Labels    []string `json:"labels"`
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	State     string   `json:"state"`
}

// Meta describes the poll run that last wrote the snapshot.
type Meta struct {
	Repo         string `json:"repo"`
	LastPolledAt Time   `json:"lastPolledAt"`
}

// Snapshot is the in-memory form of the persisted poll state: one record
// per previously observed item, plus run metadata.
type Snapshot struct {
	Items map[string]Record
	Meta  Meta
}

// New returns an empty snapshot, the state of a first run.
func New() *Snapshot {
	return &Snapshot{Items: make(map[string]Record)}
}

// Get returns the persisted record for an item id.
func (s *Snapshot) Get(id string) (Record, bool) {
	rec, ok := s.Items[id]
	return rec, ok
}

// Put overwrites the persisted record for an item id.
func (s *Snapshot) Put(id string, rec Record) {
	s.Items[id] = rec
}

// Len returns the number of tracked items, excluding metadata.
func (s *Snapshot) Len() int { return len(s.Items) }
