package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// CorruptError reports a snapshot file that exists but cannot be parsed.
// It is fatal for the poll call: falling back to an empty snapshot would
// resynthesize every tracked item as newly created.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("snapshot %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// Store loads and saves poll snapshots at a fixed path. Concurrent use
// of the same path is unsafe; callers serialize polls per repository.
type Store struct {
	path string
}

// NewStore creates a store for the given snapshot file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file path.
func (s *Store) Path() string { return s.path }

// Load reads the snapshot. A missing file is a first run and loads as an
// empty snapshot; an unparsable file returns *CorruptError.
func (s *Store) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}

	snap := New()
	for key, msg := range raw {
		if key == MetaKey {
			if err := json.Unmarshal(msg, &snap.Meta); err != nil {
				return nil, &CorruptError{Path: s.path, Err: err}
			}
			continue
		}
		var rec Record
		if err := json.Unmarshal(msg, &rec); err != nil {
			return nil, &CorruptError{Path: s.path, Err: fmt.Errorf("item %s: %w", key, err)}
		}
		snap.Items[key] = rec
	}
	return snap, nil
}

// Save rewrites the snapshot atomically. The document is marshaled with
// sorted keys and written through a temp file plus rename, so a
// concurrent reader never observes partial content.
func (s *Store) Save(snap *Snapshot) error {
	doc := make(map[string]any, len(snap.Items)+1)
	for id, rec := range snap.Items {
		doc[id] = rec
	}
	doc[MetaKey] = snap.Meta

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	return writeFileAtomic(s.path, data)
}

// writeFileAtomic writes data to path via a temp file in the same
// directory followed by a rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
