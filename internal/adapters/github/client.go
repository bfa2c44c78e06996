// Package github integrates the GitHub issue tracker: a minimal REST
// client plus the snapshot and fetch-since capabilities the core
// engines consume. Auth is a bearer token supplied by the caller; this
// package never manages credentials itself.
package github

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const githubAPIURL = "https://api.github.com"

// Client is a minimal GitHub REST API client.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string // For testing - defaults to githubAPIURL
}

// NewClient creates a new GitHub client.
func NewClient(token string) *Client {
	return &Client{
		token:   token,
		baseURL: githubAPIURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL creates a new GitHub client with a custom base URL (for testing).
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// Issue represents a GitHub issue.
type Issue struct {
	ID          int64     `json:"id"`
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	State       string    `json:"state"`
	Labels      []Label   `json:"labels"`
	HTMLURL     string    `json:"html_url"`
	UpdatedAt   time.Time `json:"updated_at"`
	PullRequest *struct{} `json:"pull_request,omitempty"` // set when the "issue" is actually a PR
}

// Label represents a GitHub label.
type Label struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Issue states.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// doRequest performs an HTTP request to the GitHub API.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GitHub API error (%d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ListIssuesOptions filters ListIssues.
type ListIssuesOptions struct {
	State  string
	Labels []string
	Limit  int
}

// ListIssues fetches issues for a repository. Pull requests, which the
// REST endpoint mixes in, are filtered out.
func (c *Client) ListIssues(ctx context.Context, owner, repo string, opts *ListIssuesOptions) ([]*Issue, error) {
	if opts == nil {
		opts = &ListIssuesOptions{}
	}

	params := url.Values{}
	if opts.State != "" {
		params.Set("state", opts.State)
	}
	if len(opts.Labels) > 0 {
		params.Set("labels", strings.Join(opts.Labels, ","))
	}
	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	params.Set("per_page", strconv.Itoa(limit))

	path := fmt.Sprintf("/repos/%s/%s/issues?%s", owner, repo, params.Encode())

	var issues []*Issue
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &issues); err != nil {
		return nil, err
	}

	out := make([]*Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.PullRequest != nil {
			continue
		}
		out = append(out, issue)
	}
	return out, nil
}

// SearchIssues runs an issue search query against the search API.
// GitHub's updated:>= qualifier is day-granular; callers needing exact
// timestamp precision re-filter the results.
func (c *Client) SearchIssues(ctx context.Context, query string, limit int) ([]*Issue, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("per_page", strconv.Itoa(limit))

	var result struct {
		Items []*Issue `json:"items"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/search/issues?"+params.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// AddComment posts a comment on an issue.
func (c *Client) AddComment(ctx context.Context, owner, repo string, number int, body string) error {
	path := fmt.Sprintf("/repos/%s/%s/issues/%d/comments", owner, repo, number)
	return c.doRequest(ctx, http.MethodPost, path, map[string]string{"body": body}, nil)
}

// AddLabels adds labels to an issue.
func (c *Client) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	path := fmt.Sprintf("/repos/%s/%s/issues/%d/labels", owner, repo, number)
	return c.doRequest(ctx, http.MethodPost, path, map[string][]string{"labels": labels}, nil)
}

// RemoveLabel removes a label from an issue.
func (c *Client) RemoveLabel(ctx context.Context, owner, repo string, number int, label string) error {
	path := fmt.Sprintf("/repos/%s/%s/issues/%d/labels/%s", owner, repo, number, url.PathEscape(label))
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil)
}
