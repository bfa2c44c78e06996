// Package poll implements the incremental poll/reconcile engine. It
// merges freshly fetched tracker items into a persisted snapshot and
// synthesizes only the changes that actually occurred since the last
// poll, without refetching the full board.
package poll

import (
	"context"
	"time"
)

// Item is one raw tracker record returned by a fetch-since capability.
type Item struct {
	ID        string
	Title     string
	URL       string
	State     string
	UpdatedAt time.Time
	Labels    []string
}

// Fetcher is the capability the engine polls against. Implementations
// may filter server-side at a coarser granularity than the requested
// timestamp (whole days, typically) but must return a superset of the
// items that actually changed.
type Fetcher interface {
	FetchUpdatedSince(ctx context.Context, since time.Time) ([]Item, error)

	// Name identifies the fetcher in logs and errors.
	Name() string
}

// Kind tags a synthesized poll event.
type Kind string

const (
	KindCreated       Kind = "created"
	KindUpdated       Kind = "updated"
	KindLabelsChanged Kind = "labels_changed"
)

// Event is one change synthesized from a poll cycle. An item reported in
// one cycle yields at most one event.
type Event struct {
	Kind      Kind
	ItemID    string
	UpdatedAt time.Time

	// Created events carry the observed title and label set.
	Title  string
	Labels []string

	// Label-change events carry the set delta, each side sorted ascending.
	Added   []string
	Removed []string
}
