package core

import (
	"errors"
	"testing"
)

func TestStageFromAny(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "canonical key", input: "stage:backlog", want: "stage:backlog"},
		{name: "uppercase shorthand", input: "BACKLOG", want: "stage:backlog"},
		{name: "slash namespace", input: "stage/backlog", want: "stage:backlog"},
		{name: "spaces", input: "in progress", want: "stage:in-progress"},
		{name: "underscores", input: "in_progress", want: "stage:in-progress"},
		{name: "uppercase hyphens", input: "IN-PROGRESS", want: "stage:in-progress"},
		{name: "mixed case canonical", input: "Stage:In-Review", want: "stage:in-review"},
		{name: "surrounding whitespace", input: "  queued  ", want: "stage:queued"},
		{name: "needs clarification shorthand", input: "needs clarification", want: "stage:needs-clarification"},
		{name: "unknown stage", input: "triage", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "namespaced unknown", input: "stage:done", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, err := StageFromAny(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("StageFromAny(%q) = %v, want error", tt.input, stage)
				}
				var unrecognized *UnrecognizedStageError
				if !errors.As(err, &unrecognized) {
					t.Fatalf("error = %v, want *UnrecognizedStageError", err)
				}
				if unrecognized.Value != tt.input {
					t.Errorf("error value = %q, want %q", unrecognized.Value, tt.input)
				}
				return
			}

			if err != nil {
				t.Fatalf("StageFromAny(%q) error = %v", tt.input, err)
			}
			if stage.Key() != tt.want {
				t.Errorf("StageFromAny(%q) = %q, want %q", tt.input, stage.Key(), tt.want)
			}
		})
	}
}

func TestStageEquality(t *testing.T) {
	a, err := StageFromAny("in progress")
	if err != nil {
		t.Fatalf("StageFromAny error = %v", err)
	}
	b, err := StageFromAny("stage:in-progress")
	if err != nil {
		t.Fatalf("StageFromAny error = %v", err)
	}

	if a != b {
		t.Errorf("stages %v and %v not equal", a, b)
	}
	if a == StageBacklog {
		t.Error("distinct stages compare equal")
	}
}

func TestStageShort(t *testing.T) {
	if got := StageInReview.Short(); got != "in-review" {
		t.Errorf("Short() = %q, want %q", got, "in-review")
	}
}

func TestStagesAreCanonical(t *testing.T) {
	stages := Stages()
	if len(stages) != 7 {
		t.Fatalf("len(Stages()) = %d, want 7", len(stages))
	}
	for _, stage := range stages {
		parsed, err := StageFromAny(stage.Key())
		if err != nil {
			t.Errorf("canonical stage %q failed to re-parse: %v", stage.Key(), err)
		}
		if parsed != stage {
			t.Errorf("re-parsed stage %v != %v", parsed, stage)
		}
	}
}

func TestStageZeroValue(t *testing.T) {
	var zero Stage
	if !zero.IsZero() {
		t.Error("zero stage should report IsZero")
	}
	if StageBlocked.IsZero() {
		t.Error("constructed stage should not report IsZero")
	}
}
