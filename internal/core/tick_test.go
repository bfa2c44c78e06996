package core

import (
	"context"
	"errors"
	"testing"
)

type fakeAdapter struct {
	name     string
	snapshot Snapshot
	err      error
	calls    int
}

func (f *fakeAdapter) FetchSnapshot(ctx context.Context) (Snapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func (f *fakeAdapter) Name() string { return f.name }

func TestTickFirstRunEmitsCreated(t *testing.T) {
	adapter := &fakeAdapter{
		name: "fake",
		snapshot: Snapshot{
			"1": {ID: "1", Title: "First", Stage: StageBacklog},
			"2": {ID: "2", Title: "Second", Stage: StageQueued},
		},
	}

	result, err := Tick(context.Background(), adapter, nil)
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	if result.AdapterName != "fake" {
		t.Errorf("AdapterName = %q, want %q", result.AdapterName, "fake")
	}
	if len(result.Snapshot) != 2 {
		t.Errorf("len(Snapshot) = %d, want 2", len(result.Snapshot))
	}
	if len(result.Events) != 2 {
		t.Fatalf("len(Events) = %d, want 2", len(result.Events))
	}
	for _, ev := range result.Events {
		if _, ok := ev.(WorkItemCreated); !ok {
			t.Errorf("first-run event = %#v, want WorkItemCreated", ev)
		}
	}
}

func TestTickDiffsAgainstPrevious(t *testing.T) {
	previous := Snapshot{"1": {ID: "1", Title: "First", Stage: StageBacklog}}
	adapter := &fakeAdapter{
		name:     "fake",
		snapshot: Snapshot{"1": {ID: "1", Title: "First", Stage: StageInProgress}},
	}

	result, err := Tick(context.Background(), adapter, previous)
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	if len(result.Events) != 1 {
		t.Fatalf("len(Events) = %d, want 1", len(result.Events))
	}
	change, ok := result.Events[0].(StageChanged)
	if !ok {
		t.Fatalf("event = %#v, want StageChanged", result.Events[0])
	}
	if change.Old != StageBacklog || change.New != StageInProgress {
		t.Errorf("StageChanged = %v -> %v, want backlog -> in-progress", change.Old, change.New)
	}
}

func TestTickFetchFailure(t *testing.T) {
	fetchErr := errors.New("connection refused")
	adapter := &fakeAdapter{name: "fake", err: fetchErr}

	result, err := Tick(context.Background(), adapter, nil)
	if result != nil {
		t.Errorf("result = %#v, want nil on fetch failure", result)
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want *FetchError", err)
	}
	if fe.Adapter != "fake" {
		t.Errorf("FetchError.Adapter = %q, want %q", fe.Adapter, "fake")
	}
	if !errors.Is(err, fetchErr) {
		t.Error("FetchError does not wrap the underlying error")
	}
}
