package core

import (
	"context"
	"fmt"
)

// Adapter is the capability a tracker integration provides for full
// reconciliation ticks.
type Adapter interface {
	// FetchSnapshot returns the complete current mapping of tracked work
	// items. Implementations must fail rather than return a partial
	// snapshot: missing items would be misread as deletions.
	FetchSnapshot(ctx context.Context) (Snapshot, error)

	// Name identifies the adapter in logs and results.
	Name() string
}

// FetchError wraps a failure of the adapter fetch capability.
type FetchError struct {
	Adapter string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("adapter %s: fetch snapshot: %v", e.Adapter, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// TickResult bundles the outcome of one reconciliation pass. The caller
// persists Snapshot and dispatches Events.
type TickResult struct {
	AdapterName string
	Snapshot    Snapshot
	Events      []Event
}

// Tick runs one observe/diff/emit pass against the adapter. A nil
// previous snapshot means a first run: every fetched item appears as
// created. Fetch failures abort the pass; no partial snapshot is diffed.
func Tick(ctx context.Context, adapter Adapter, previous Snapshot) (*TickResult, error) {
	if previous == nil {
		previous = Snapshot{}
	}

	current, err := adapter.FetchSnapshot(ctx)
	if err != nil {
		return nil, &FetchError{Adapter: adapter.Name(), Err: err}
	}

	return &TickResult{
		AdapterName: adapter.Name(),
		Snapshot:    current,
		Events:      Diff(previous, current),
	}, nil
}
