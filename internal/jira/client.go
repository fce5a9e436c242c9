package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/teemow/jirafewer/internal/logging"
	"github.com/teemow/jirafewer/internal/staleness"
)

const (
	// defaultPageSize is the page size for paginated endpoints.
	defaultPageSize = 50

	// retryMaxElapsed bounds the total time spent retrying a single
	// request on transient failures.
	retryMaxElapsed = 30 * time.Second

	defaultHTTPTimeout = 60 * time.Second
)

// Client provides access to a JIRA-compatible tracker's REST API
type Client struct {
	baseURL  string
	token    string
	httpc    *http.Client
	pageSize int
}

// NewClient creates a new tracker client authenticating with a personal
// access token. baseURL is the tracker's root URL (e.g.,
// "https://jira.example.com").
func NewClient(baseURL, token string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	if token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("baseURL must start with http:// or https:// (got %q)", baseURL)
	}

	slog.Debug("tracker client created",
		slog.String("url", baseURL),
		slog.String("token", logging.SanitizeToken(token)))

	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		httpc:    &http.Client{Timeout: defaultHTTPTimeout},
		pageSize: defaultPageSize,
	}, nil
}

// BrowseURL returns the web URL for an issue.
func (c *Client) BrowseURL(key string) string {
	return c.baseURL + "/browse/" + key
}

// SetPageSize overrides the search page size. Values <= 0 keep the default.
func (c *Client) SetPageSize(n int) {
	if n > 0 {
		c.pageSize = n
	}
}

func newRequestBackoff() backoff.BackOff {
	// BackOff implementations are stateful; always return a fresh instance.
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = retryMaxElapsed
	return bo
}

// isRetryableStatus returns true for HTTP statuses worth retrying:
// rate limiting and server-side failures.
func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// do performs one API request with retry on transient failures. A non-nil
// out is filled from the response body. Non-2xx responses become errors
// carrying the status code; callers wrap them in *APIError with operation
// context.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	op := func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		res, err := c.httpc.Do(req)
		if err != nil {
			// Network errors are transient until the backoff gives up.
			return err
		}
		defer res.Body.Close()

		if res.StatusCode < 200 || res.StatusCode > 299 {
			slurp, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
			err := &statusError{code: res.StatusCode, body: strings.TrimSpace(string(slurp))}
			if isRetryableStatus(res.StatusCode) {
				slog.LogAttrs(ctx, slog.LevelDebug, "retrying tracker request",
					slog.String("method", method),
					slog.String("path", path),
					logging.Err(err))
				return err
			}
			return backoff.Permanent(err)
		}

		if out != nil {
			if err := json.NewDecoder(res.Body).Decode(out); err != nil {
				return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
			}
		}
		return nil
	}

	return backoff.Retry(op, backoff.WithContext(newRequestBackoff(), ctx))
}

// statusError carries a non-2xx HTTP status through the retry loop.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body != "" {
		return fmt.Sprintf("http status %d: %s", e.code, e.body)
	}
	return fmt.Sprintf("http status %d", e.code)
}

// statusCode extracts the HTTP status from an error chain, or 0.
func statusCode(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.code
	}
	return 0
}

// issueFields is the field list requested for issue payloads.
const issueFields = "summary,status,assignee,created,updated,labels"

// SearchIssues returns all issues matching the JQL query, each with its
// complete change history. Both the search itself and each issue's
// changelog are paginated exhaustively: a truncated history would be a
// correctness bug, not a performance trade-off.
func (c *Client) SearchIssues(ctx context.Context, jql string) ([]Issue, error) {
	if jql == "" {
		return nil, &APIError{Op: "search", Err: fmt.Errorf("jql cannot be empty")}
	}

	var issues []Issue
	startAt := 0
	for {
		query := url.Values{
			"jql":        {jql},
			"expand":     {"changelog"},
			"fields":     {issueFields},
			"startAt":    {strconv.Itoa(startAt)},
			"maxResults": {strconv.Itoa(c.pageSize)},
		}

		var page searchResponse
		if err := c.do(ctx, http.MethodGet, "/rest/api/2/search", query, nil, &page); err != nil {
			return nil, &APIError{Op: "search", StatusCode: statusCode(err), Err: err}
		}

		for _, raw := range page.Issues {
			issue, err := toIssue(raw)
			if err != nil {
				return nil, &APIError{Op: "search", Key: raw.Key, Err: err}
			}
			if raw.Changelog != nil && raw.Changelog.Total > len(raw.Changelog.Histories) {
				rest, err := c.changelogFrom(ctx, raw.Key, len(raw.Changelog.Histories))
				if err != nil {
					return nil, err
				}
				issue.Changelog = append(issue.Changelog, rest...)
			}
			issues = append(issues, issue)
		}

		startAt += len(page.Issues)
		if startAt >= page.Total || len(page.Issues) == 0 {
			slog.LogAttrs(ctx, slog.LevelDebug, "tracker search complete",
				logging.Operation("jira.search"),
				logging.JQL(jql),
				slog.Int("issues", len(issues)))
			return issues, nil
		}
	}
}

// changelogFrom drains the remaining changelog pages for an issue,
// starting at the given offset.
func (c *Client) changelogFrom(ctx context.Context, key string, startAt int) ([]staleness.ChangeEvent, error) {
	var events []staleness.ChangeEvent
	for {
		query := url.Values{
			"startAt":    {strconv.Itoa(startAt)},
			"maxResults": {strconv.Itoa(c.pageSize)},
		}

		var page changelogJSON
		if err := c.do(ctx, http.MethodGet, "/rest/api/2/issue/"+key+"/changelog", query, nil, &page); err != nil {
			return nil, &APIError{Op: "changelog", Key: key, StatusCode: statusCode(err), Err: err}
		}

		// The paged endpoint returns histories under "values"; some server
		// versions use "histories".
		histories := page.Values
		if len(histories) == 0 {
			histories = page.Histories
		}

		converted, err := toChangeEvents(key, histories)
		if err != nil {
			return nil, &APIError{Op: "changelog", Key: key, Err: err}
		}
		events = append(events, converted...)

		startAt += len(histories)
		if startAt >= page.Total || len(histories) == 0 {
			return events, nil
		}
	}
}

// Issue fetches a single issue with its complete change history.
func (c *Client) Issue(ctx context.Context, key string) (*Issue, error) {
	query := url.Values{
		"expand": {"changelog"},
		"fields": {issueFields},
	}

	var raw issueJSON
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/issue/"+key, query, nil, &raw); err != nil {
		return nil, &APIError{Op: "getIssue", Key: key, StatusCode: statusCode(err), Err: err}
	}

	issue, err := toIssue(raw)
	if err != nil {
		return nil, &APIError{Op: "getIssue", Key: key, Err: err}
	}
	if raw.Changelog != nil && raw.Changelog.Total > len(raw.Changelog.Histories) {
		rest, err := c.changelogFrom(ctx, key, len(raw.Changelog.Histories))
		if err != nil {
			return nil, err
		}
		issue.Changelog = append(issue.Changelog, rest...)
	}
	return &issue, nil
}

// AddComment adds a comment to an issue.
func (c *Client) AddComment(ctx context.Context, key, body string) error {
	if body == "" {
		return &APIError{Op: "addComment", Key: key, Err: fmt.Errorf("comment cannot be empty")}
	}

	payload := map[string]string{"body": body}
	if err := c.do(ctx, http.MethodPost, "/rest/api/2/issue/"+key+"/comment", nil, payload, nil); err != nil {
		return &APIError{Op: "addComment", Key: key, StatusCode: statusCode(err), Err: err}
	}
	return nil
}

// AddLabel adds a label to an issue. It returns false without error when
// the label is already present, making repeated invocations idempotent.
func (c *Client) AddLabel(ctx context.Context, key, label string) (bool, error) {
	if label == "" {
		return false, &APIError{Op: "addLabel", Key: key, Err: fmt.Errorf("label cannot be empty")}
	}

	query := url.Values{"fields": {"labels"}}
	var raw issueJSON
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/issue/"+key, query, nil, &raw); err != nil {
		return false, &APIError{Op: "addLabel", Key: key, StatusCode: statusCode(err), Err: err}
	}

	labels := raw.Fields.Labels
	for _, l := range labels {
		if l == label {
			return false, nil
		}
	}

	payload := map[string]any{
		"fields": map[string]any{
			"labels": append(labels, label),
		},
	}
	if err := c.do(ctx, http.MethodPut, "/rest/api/2/issue/"+key, nil, payload, nil); err != nil {
		return false, &APIError{Op: "addLabel", Key: key, StatusCode: statusCode(err), Err: err}
	}
	return true, nil
}

// Transitions returns the workflow transitions currently available for an
// issue.
func (c *Client) Transitions(ctx context.Context, key string) ([]Transition, error) {
	var res transitionsResponse
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/issue/"+key+"/transitions", nil, nil, &res); err != nil {
		return nil, &APIError{Op: "transitions", Key: key, StatusCode: statusCode(err), Err: err}
	}
	return toTransitions(res.Transitions), nil
}

// TransitionIssue executes the named transition on an issue. The name is
// matched case-insensitively; if it is not available, the error lists the
// transitions that are.
func (c *Client) TransitionIssue(ctx context.Context, key, name string) (*Transition, error) {
	transitions, err := c.Transitions(ctx, key)
	if err != nil {
		return nil, err
	}

	var target *Transition
	for i := range transitions {
		if strings.EqualFold(transitions[i].Name, name) {
			target = &transitions[i]
			break
		}
	}
	if target == nil {
		names := make([]string, 0, len(transitions))
		for _, t := range transitions {
			names = append(names, t.Name)
		}
		return nil, &APIError{
			Op:  "transition",
			Key: key,
			Err: fmt.Errorf("transition %q not available (available: %s)", name, strings.Join(names, ", ")),
		}
	}

	payload := map[string]any{
		"transition": map[string]string{"id": target.ID},
	}
	if err := c.do(ctx, http.MethodPost, "/rest/api/2/issue/"+key+"/transitions", nil, payload, nil); err != nil {
		return nil, &APIError{Op: "transition", Key: key, StatusCode: statusCode(err), Err: err}
	}
	return target, nil
}

// Fields returns all field definitions known to the tracker.
func (c *Client) Fields(ctx context.Context) ([]Field, error) {
	var raw []fieldJSON
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/field", nil, nil, &raw); err != nil {
		return nil, &APIError{Op: "fields", StatusCode: statusCode(err), Err: err}
	}
	return toFields(raw), nil
}
