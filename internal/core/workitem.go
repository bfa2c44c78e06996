package core

import "time"

// WorkItem is a canonical, platform-agnostic unit of tracked work.
// It is a value object: updates are represented by replacement, never
// by mutation.
type WorkItem struct {
	// ID is unique within one snapshot and stable across polls for the
	// same underlying tracked item.
	ID     string
	Title  string
	Stage  Stage
	URL    string
	Labels []string // adapter-defined ordering

	// UpdatedAt is zero when the tracker did not report one.
	UpdatedAt time.Time

	// Raw preserves adapter-specific extras. The core never interprets it.
	Raw map[string]any
}

// Snapshot is a complete point-in-time mapping of work-item id to item.
type Snapshot map[string]WorkItem
