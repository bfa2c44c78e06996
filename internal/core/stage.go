// Package core defines the canonical, platform-agnostic work-item model
// and the snapshot diff engine. Adapters normalize tracker data into
// these types; everything downstream consumes canonical events.
package core

import (
	"fmt"
	"slices"
	"strings"
)

// StagePrefix is the namespace every canonical stage key carries.
const StagePrefix = "stage:"

// Canonical stages, in lifecycle order.
var (
	StageBacklog            = Stage{key: "stage:backlog"}
	StageQueued             = Stage{key: "stage:queued"}
	StageNeedsClarification = Stage{key: "stage:needs-clarification"}
	StageReadyToImplement   = Stage{key: "stage:ready-to-implement"}
	StageInProgress         = Stage{key: "stage:in-progress"}
	StageInReview           = Stage{key: "stage:in-review"}
	StageBlocked            = Stage{key: "stage:blocked"}
)

var canonicalStages = []Stage{
	StageBacklog,
	StageQueued,
	StageNeedsClarification,
	StageReadyToImplement,
	StageInProgress,
	StageInReview,
	StageBlocked,
}

// Stage is a canonical lifecycle stage. The canonical form is always the
// full namespaced key (e.g. "stage:in-progress"). The zero value is not a
// valid stage; construct stages with StageFromAny.
type Stage struct {
	key string
}

// UnrecognizedStageError reports a stage string that could not be
// normalized to one of the canonical keys.
type UnrecognizedStageError struct {
	Value string
}

func (e *UnrecognizedStageError) Error() string {
	return fmt.Sprintf("unrecognized stage: %q", e.Value)
}

// StageFromAny parses a stage from a canonical key or a common shorthand
// like "in progress", "IN_PROGRESS" or "stage/in-progress". The result
// must match a canonical key exactly; anything else fails with
// *UnrecognizedStageError.
func StageFromAny(value string) (Stage, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))

	var key string
	if strings.HasPrefix(trimmed, StagePrefix) {
		key = trimmed
	} else {
		slug := strings.ReplaceAll(trimmed, "stage:", "")
		slug = strings.ReplaceAll(slug, "stage/", "")
		slug = strings.ReplaceAll(slug, "_", "-")
		slug = strings.ReplaceAll(slug, " ", "-")
		key = StagePrefix + slug
	}

	for _, stage := range canonicalStages {
		if stage.key == key {
			return stage, nil
		}
	}
	return Stage{}, &UnrecognizedStageError{Value: value}
}

// Key returns the canonical namespaced key.
func (s Stage) Key() string { return s.key }

func (s Stage) String() string { return s.key }

// Short returns the key without the namespace prefix, for compact display.
func (s Stage) Short() string { return strings.TrimPrefix(s.key, StagePrefix) }

// IsZero reports whether the stage was never constructed.
func (s Stage) IsZero() bool { return s.key == "" }

// Stages returns the canonical stages in lifecycle order.
func Stages() []Stage { return slices.Clone(canonicalStages) }
