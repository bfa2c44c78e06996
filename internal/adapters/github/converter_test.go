package github

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/alekspetrov/clawban/internal/core"
)

func TestConvertIssue(t *testing.T) {
	updated := time.Date(2026, 2, 26, 8, 30, 0, 0, time.UTC)
	issue := &Issue{
		Number:    42,
		Title:     "Ship the widget",
		State:     "open",
		HTMLURL:   "https://example.com/42",
		UpdatedAt: updated,
		Labels: []Label{
			{Name: "ux"},
			{Name: "stage:in-progress"},
			{Name: "bug"},
		},
	}

	item, err := ConvertIssue(issue)
	if err != nil {
		t.Fatalf("ConvertIssue() error = %v", err)
	}

	if item.ID != "42" {
		t.Errorf("ID = %q, want 42", item.ID)
	}
	if item.Stage != core.StageInProgress {
		t.Errorf("Stage = %v, want in-progress", item.Stage)
	}
	wantLabels := []string{"stage:in-progress", "bug", "ux"}
	if !reflect.DeepEqual(item.Labels, wantLabels) {
		t.Errorf("Labels = %v, want stage labels first then sorted rest %v", item.Labels, wantLabels)
	}
	if !item.UpdatedAt.Equal(updated) {
		t.Errorf("UpdatedAt = %v, want %v", item.UpdatedAt, updated)
	}
	if item.Raw["state"] != "open" {
		t.Errorf("Raw = %#v, missing state", item.Raw)
	}
}

func TestConvertIssueMultipleStageLabels(t *testing.T) {
	issue := &Issue{
		Number: 9,
		Title:  "Two stages",
		Labels: []Label{
			{Name: "stage:in-review"},
			{Name: "stage:blocked"},
		},
	}

	item, err := ConvertIssue(issue)
	if err != nil {
		t.Fatalf("ConvertIssue() error = %v", err)
	}
	// First stage label in sorted order wins.
	if item.Stage != core.StageBlocked {
		t.Errorf("Stage = %v, want blocked", item.Stage)
	}
}

func TestConvertIssueNoStageLabel(t *testing.T) {
	issue := &Issue{Number: 5, Title: "Untracked", Labels: []Label{{Name: "bug"}}}

	_, err := ConvertIssue(issue)
	if err == nil {
		t.Fatal("ConvertIssue() = nil error, want missing stage label error")
	}
}

func TestConvertIssueUnrecognizedStage(t *testing.T) {
	issue := &Issue{Number: 6, Title: "Bad stage", Labels: []Label{{Name: "stage:done"}}}

	_, err := ConvertIssue(issue)
	var unrecognized *core.UnrecognizedStageError
	if !errors.As(err, &unrecognized) {
		t.Fatalf("error = %v, want *core.UnrecognizedStageError", err)
	}
	if unrecognized.Value != "stage:done" {
		t.Errorf("error value = %q, want stage:done", unrecognized.Value)
	}
}

func TestHasStageLabel(t *testing.T) {
	with := &Issue{Labels: []Label{{Name: "bug"}, {Name: "stage:queued"}}}
	without := &Issue{Labels: []Label{{Name: "bug"}}}

	if !HasStageLabel(with) {
		t.Error("HasStageLabel = false for issue with stage label")
	}
	if HasStageLabel(without) {
		t.Error("HasStageLabel = true for issue without stage label")
	}
}
