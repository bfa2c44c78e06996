package poll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/alekspetrov/clawban/internal/logging"
	"github.com/alekspetrov/clawban/internal/snapshot"
)

// Reconciler runs poll cycles for one tracked repository against one
// snapshot store. Concurrent cycles over the same store are unsafe
// (last writer wins on the snapshot file); callers serialize polls per
// repository.
type Reconciler struct {
	fetcher Fetcher
	store   *snapshot.Store
	repo    string
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger for the reconciler.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// WithClock overrides wall-clock time, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		r.now = now
	}
}

// NewReconciler creates a reconciler for one repository identifier.
func NewReconciler(fetcher Fetcher, store *snapshot.Store, repo string, opts ...Option) *Reconciler {
	r := &Reconciler{
		fetcher: fetcher,
		store:   store,
		repo:    repo,
		logger:  logging.WithComponent("poll"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PollSince fetches items updated at or after since, synthesizes events
// against the persisted snapshot, and rewrites the snapshot. Either the
// whole cycle succeeds (all items processed, snapshot rewritten) or the
// call fails before any persisted write occurs.
func (r *Reconciler) PollSince(ctx context.Context, since time.Time) ([]Event, error) {
	snap, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	items, err := r.fetcher.FetchUpdatedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("fetch updates from %s: %w", r.fetcher.Name(), err)
	}

	var events []Event
	for _, item := range items {
		// The server-side filter may be day-granular; enforce the exact
		// cutoff here.
		if item.UpdatedAt.Before(since) {
			continue
		}

		if ev, ok := r.reconcile(snap, item); ok {
			events = append(events, ev)
		}

		// Upsert regardless of whether an event was emitted, so the
		// snapshot always reflects the latest observation.
		snap.Put(item.ID, snapshot.Record{
			UpdatedAt: snapshot.Time{Time: item.UpdatedAt},
			Labels:    append([]string(nil), item.Labels...),
			Title:     item.Title,
			URL:       item.URL,
			State:     item.State,
		})
	}

	snap.Meta = snapshot.Meta{
		Repo:         r.repo,
		LastPolledAt: snapshot.Time{Time: r.now().UTC()},
	}
	if err := r.store.Save(snap); err != nil {
		return nil, err
	}

	r.logger.Info("Poll cycle complete",
		slog.String("repo", r.repo),
		slog.Int("fetched", len(items)),
		slog.Int("events", len(events)),
	)
	return events, nil
}

// reconcile decides which single event, if any, an observed item yields.
// The branches are mutually exclusive: created, then labels_changed,
// then updated-by-timestamp.
func (r *Reconciler) reconcile(snap *snapshot.Snapshot, item Item) (Event, bool) {
	prev, known := snap.Get(item.ID)
	if !known {
		return Event{
			Kind:      KindCreated,
			ItemID:    item.ID,
			UpdatedAt: item.UpdatedAt,
			Title:     item.Title,
			Labels:    append([]string(nil), item.Labels...),
		}, true
	}

	added, removed := labelSetDiff(prev.Labels, item.Labels)
	if len(added) > 0 || len(removed) > 0 {
		// A label edit does not reliably bump the remote update timestamp
		// across event sources, so the set delta is authoritative here
		// regardless of timestamps.
		return Event{
			Kind:      KindLabelsChanged,
			ItemID:    item.ID,
			UpdatedAt: item.UpdatedAt,
			Added:     added,
			Removed:   removed,
		}, true
	}

	if item.UpdatedAt.After(prev.UpdatedAt.Time) {
		return Event{
			Kind:      KindUpdated,
			ItemID:    item.ID,
			UpdatedAt: item.UpdatedAt,
		}, true
	}

	return Event{}, false
}

// labelSetDiff compares two label lists with set semantics and returns
// additions and removals, each sorted ascending.
func labelSetDiff(prev, curr []string) (added, removed []string) {
	prevSet := make(map[string]struct{}, len(prev))
	for _, l := range prev {
		prevSet[l] = struct{}{}
	}
	currSet := make(map[string]struct{}, len(curr))
	for _, l := range curr {
		currSet[l] = struct{}{}
	}

	for l := range currSet {
		if _, ok := prevSet[l]; !ok {
			added = append(added, l)
		}
	}
	for l := range prevSet {
		if _, ok := currSet[l]; !ok {
			removed = append(removed, l)
		}
	}

	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}
