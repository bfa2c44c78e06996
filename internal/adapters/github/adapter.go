package github

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alekspetrov/clawban/internal/core"
	"github.com/alekspetrov/clawban/internal/logging"
	"github.com/alekspetrov/clawban/internal/poll"
)

// Adapter exposes one GitHub repository as a core.Adapter (full
// snapshots) and a poll.Fetcher (incremental updates).
type Adapter struct {
	client *Client
	owner  string
	repo   string
	limit  int
	logger *slog.Logger
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithIssueLimit caps how many issues one fetch requests.
func WithIssueLimit(limit int) AdapterOption {
	return func(a *Adapter) {
		a.limit = limit
	}
}

// WithAdapterLogger sets the logger for the adapter.
func WithAdapterLogger(logger *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// NewAdapter creates an adapter for a repo in owner/repo form.
func NewAdapter(client *Client, repo string, opts ...AdapterOption) (*Adapter, error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid repo format, expected owner/repo: %s", repo)
	}

	a := &Adapter{
		client: client,
		owner:  parts[0],
		repo:   parts[1],
		limit:  100,
		logger: logging.WithComponent("github-adapter"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Name implements core.Adapter and poll.Fetcher.
func (a *Adapter) Name() string { return "github" }

// Repo returns the owner/repo identifier the adapter tracks.
func (a *Adapter) Repo() string { return a.owner + "/" + a.repo }

// FetchSnapshot lists open issues and returns the complete snapshot of
// those carrying a stage label. Issues without any stage label are not
// tracked and are skipped; an unrecognizable stage label is an error,
// never coerced. Transport failures propagate so a partial result is
// never mistaken for deletions.
func (a *Adapter) FetchSnapshot(ctx context.Context) (core.Snapshot, error) {
	issues, err := a.client.ListIssues(ctx, a.owner, a.repo, &ListIssuesOptions{
		State: StateOpen,
		Limit: a.limit,
	})
	if err != nil {
		return nil, err
	}

	snap := core.Snapshot{}
	for _, issue := range issues {
		if !HasStageLabel(issue) {
			continue
		}
		item, err := ConvertIssue(issue)
		if err != nil {
			return nil, err
		}
		snap[item.ID] = item
	}

	a.logger.Debug("Fetched snapshot",
		slog.String("repo", a.Repo()),
		slog.Int("issues", len(issues)),
		slog.Int("tracked", len(snap)),
	)
	return snap, nil
}

// FetchUpdatedSince implements poll.Fetcher via the issue search API.
// The updated:>= qualifier only supports day granularity, so the result
// is a superset of the truly changed items; the poll engine re-filters
// to the exact timestamp.
func (a *Adapter) FetchUpdatedSince(ctx context.Context, since time.Time) ([]poll.Item, error) {
	query := fmt.Sprintf("repo:%s/%s is:issue is:open updated:>=%s",
		a.owner, a.repo, since.UTC().Format("2006-01-02"))

	issues, err := a.client.SearchIssues(ctx, query, a.limit)
	if err != nil {
		return nil, err
	}

	items := make([]poll.Item, 0, len(issues))
	for _, issue := range issues {
		labels := labelNames(issue.Labels)
		sort.Strings(labels)
		items = append(items, poll.Item{
			ID:        strconv.Itoa(issue.Number),
			Title:     issue.Title,
			URL:       issue.HTMLURL,
			State:     issue.State,
			UpdatedAt: issue.UpdatedAt,
			Labels:    labels,
		})
	}
	return items, nil
}
