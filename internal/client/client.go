// Package client is a Go client for the todo API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
)

// DefaultTimeout bounds each request made by a client built with New.
const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
	TraceID    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("todo api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("todo api: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Health is the body of GET /health.
type Health struct {
	Status string    `json:"status"`
	TS     time.Time `json:"ts"`
}

// Client calls the todo API at a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for baseURL. A trailing slash is ignored.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List calls GET /todos.
func (c *Client) List(ctx context.Context) ([]*domain.Todo, error) {
	var out []*domain.Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create calls POST /todos.
func (c *Client) Create(ctx context.Context, title string) (*domain.Todo, error) {
	var out domain.Todo
	body := map[string]string{domain.FieldTitle: title}
	if err := c.do(ctx, http.MethodPost, "/todos", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update calls PUT /todos/{id} with fields as the body.
func (c *Client) Update(ctx context.Context, id string, fields map[string]any) (*domain.Todo, error) {
	var out domain.Todo
	if err := c.do(ctx, http.MethodPut, todoPath(id), fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete calls DELETE /todos/{id} and returns the removed todo.
func (c *Client) Delete(ctx context.Context, id string) (*domain.Todo, error) {
	var out domain.Todo
	if err := c.do(ctx, http.MethodDelete, todoPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func todoPath(id string) string {
	return "/todos/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error   string `json:"error"`
			TraceID string `json:"trace_id"`
		}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Message = errBody.Error
			apiErr.TraceID = errBody.TraceID
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
