package github

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alekspetrov/clawban/internal/core"
)

// ConvertIssue converts a GitHub issue into a canonical work item. The
// stage is parsed from the first stage-namespaced label; stage labels
// sort ahead of the rest so downstream consumers see them first.
// Fails if the issue carries no stage label or the stage label does not
// normalize to a canonical stage.
func ConvertIssue(issue *Issue) (core.WorkItem, error) {
	stageLabels, otherLabels := splitStageLabels(labelNames(issue.Labels))
	if len(stageLabels) == 0 {
		return core.WorkItem{}, fmt.Errorf("issue #%d has no %s label", issue.Number, core.StagePrefix)
	}

	stage, err := core.StageFromAny(stageLabels[0])
	if err != nil {
		return core.WorkItem{}, fmt.Errorf("issue #%d: %w", issue.Number, err)
	}

	return core.WorkItem{
		ID:        strconv.Itoa(issue.Number),
		Title:     issue.Title,
		Stage:     stage,
		URL:       issue.HTMLURL,
		Labels:    append(stageLabels, otherLabels...),
		UpdatedAt: issue.UpdatedAt,
		Raw: map[string]any{
			"number": issue.Number,
			"state":  issue.State,
		},
	}, nil
}

// labelNames extracts label names from API labels.
func labelNames(labels []Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return names
}

// splitStageLabels partitions labels into stage-namespaced and other
// labels, each sorted ascending.
func splitStageLabels(labels []string) (stage, other []string) {
	for _, l := range labels {
		if strings.HasPrefix(l, core.StagePrefix) {
			stage = append(stage, l)
		} else {
			other = append(other, l)
		}
	}
	sort.Strings(stage)
	sort.Strings(other)
	return stage, other
}

// HasStageLabel reports whether an issue carries any stage-namespaced label.
func HasStageLabel(issue *Issue) bool {
	for _, l := range issue.Labels {
		if strings.HasPrefix(l.Name, core.StagePrefix) {
			return true
		}
	}
	return false
}
