// Package rest implements store.Store over a JSON CRUD service.
//
// The wire contract:
//
//	GET    {base}/todos?userId=N   -> [{id, title, completed, userId}, ...]
//	POST   {base}/todos            -> created record incl. new id
//	PATCH  {base}/todos/{id}       -> updated record
//	DELETE {base}/todos/{id}       -> empty body
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/idilsaglam/todosync/internal/model"
	"github.com/idilsaglam/todosync/internal/store"
)

// DefaultTimeout bounds each remote call when the caller's context carries
// no earlier deadline.
const DefaultTimeout = 5 * time.Second

// Client implements store.Store against an HTTP endpoint.
type Client struct {
	baseURL string
	userID  int64
	timeout time.Duration
	httpc   *http.Client
}

// Option tunes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client (used by tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a client for the collection owned by userID at baseURL.
func New(baseURL string, userID int64, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		timeout: DefaultTimeout,
		httpc:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListAll implements store.Store.
func (c *Client) ListAll(ctx context.Context) ([]model.Todo, error) {
	u := fmt.Sprintf("%s/todos?userId=%d", c.baseURL, c.userID)
	var todos []model.Todo
	if err := c.do(ctx, http.MethodGet, u, nil, &todos); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Create implements store.Store. The server assigns the id; completed is
// always false for a fresh record.
func (c *Client) Create(ctx context.Context, title string) (model.Todo, error) {
	body := model.Todo{Title: title, Completed: false, UserID: c.userID}
	var created model.Todo
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/todos", body, &created); err != nil {
		return model.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return created, nil
}

// Update implements store.Store. Only the fields present in the patch
// change server-side.
func (c *Client) Update(ctx context.Context, id int64, p store.Patch) (model.Todo, error) {
	u := fmt.Sprintf("%s/todos/%d", c.baseURL, id)
	var updated model.Todo
	if err := c.do(ctx, http.MethodPatch, u, p, &updated); err != nil {
		return model.Todo{}, fmt.Errorf("update todo %d: %w", id, err)
	}
	return updated, nil
}

// Delete implements store.Store.
func (c *Client) Delete(ctx context.Context, id int64) error {
	u := fmt.Sprintf("%s/todos/%d", c.baseURL, id)
	if err := c.do(ctx, http.MethodDelete, u, nil, nil); err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	return nil
}

// do sends one JSON request and decodes the response into out (skipped when
// out is nil or the body is empty).
func (c *Client) do(ctx context.Context, method, u string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the status is all we report.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
