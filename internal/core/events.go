package core

// Event is a canonical change notification produced by the diff engine.
// The set of implementations is closed; consumers can switch over the
// four variants exhaustively.
type Event interface {
	// Kind returns a stable tag for logging and journaling.
	Kind() string

	isEvent()
}

// WorkItemCreated reports an item present in the current snapshot but
// not the previous one. It carries the full current item.
type WorkItemCreated struct {
	WorkItem WorkItem
}

// WorkItemDeleted reports an item that disappeared from the snapshot.
type WorkItemDeleted struct {
	WorkItemID string
}

// StageChanged reports a stage transition for an item present in both
// snapshots.
type StageChanged struct {
	WorkItemID string
	Old        Stage
	New        Stage
}

// WorkItemUpdated reports a non-stage change (title or labels).
type WorkItemUpdated struct {
	WorkItemID string
}

func (WorkItemCreated) Kind() string { return "created" }
func (WorkItemDeleted) Kind() string { return "deleted" }
func (StageChanged) Kind() string    { return "stage_changed" }
func (WorkItemUpdated) Kind() string { return "updated" }

func (WorkItemCreated) isEvent() {}
func (WorkItemDeleted) isEvent() {}
func (StageChanged) isEvent()    {}
func (WorkItemUpdated) isEvent() {}
