package core

import (
	"slices"
	"sort"
)

// Diff compares two snapshots and returns canonical events in a
// deterministic order: deletions first, then creations, then per-item
// changes, each group in ascending id order. Lexicographic ordering
// makes the output independent of map iteration order, so replays and
// tests are reproducible.
func Diff(previous, current Snapshot) []Event {
	var events []Event

	prevIDs := sortedIDs(previous)
	currIDs := sortedIDs(current)

	for _, id := range prevIDs {
		if _, ok := current[id]; !ok {
			events = append(events, WorkItemDeleted{WorkItemID: id})
		}
	}

	for _, id := range currIDs {
		if _, ok := previous[id]; !ok {
			events = append(events, WorkItemCreated{WorkItem: current[id]})
		}
	}

	for _, id := range prevIDs {
		curr, ok := current[id]
		if !ok {
			continue
		}
		prev := previous[id]

		if prev.Stage != curr.Stage {
			// A stage transition is the primary signal consumers act on.
			// It suppresses the generic update for the same item even when
			// title or labels also changed in the same pass.
			events = append(events, StageChanged{
				WorkItemID: id,
				Old:        prev.Stage,
				New:        curr.Stage,
			})
			continue
		}

		if prev.Title != curr.Title || !slices.Equal(prev.Labels, curr.Labels) {
			events = append(events, WorkItemUpdated{WorkItemID: id})
		}
	}

	return events
}

func sortedIDs(s Snapshot) []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
