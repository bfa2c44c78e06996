package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/alekspetrov/clawban/internal/core"
	"github.com/alekspetrov/clawban/internal/poll"
)

func TestRenderEvents(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	renderEvents(&buf, []core.Event{
		core.WorkItemDeleted{WorkItemID: "1"},
		core.WorkItemCreated{WorkItem: core.WorkItem{ID: "2", Title: "New thing", Stage: core.StageQueued}},
		core.StageChanged{WorkItemID: "3", Old: core.StageQueued, New: core.StageInProgress},
		core.WorkItemUpdated{WorkItemID: "4"},
	})

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("rendered %d lines, want 4:\n%s", len(lines), out)
	}
	wants := []string{
		"deleted  #1",
		"created  #2 New thing [queued]",
		"stage  #3 queued -> in-progress",
		"updated  #4",
	}
	for i, want := range wants {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestRenderPollEvents(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	renderPollEvents(&buf, []poll.Event{
		{Kind: poll.KindCreated, ItemID: "42", Title: "Brand new"},
		{Kind: poll.KindLabelsChanged, ItemID: "101", Added: []string{"stage:in-progress"}, Removed: []string{"stage:queued"}},
		{Kind: poll.KindUpdated, ItemID: "7"},
	})

	out := buf.String()
	for _, want := range []string{
		"created  #42 Brand new",
		"labels  #101 +[stage:in-progress] -[stage:queued]",
		"updated  #7",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
