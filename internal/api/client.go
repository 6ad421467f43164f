// Package api is the HTTP client for the task and chat server.
package api

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
	"strings"
	"time"

	"calchat/internal/calendar"
	"calchat/internal/chat"

	"github.com/google/uuid"
)

// DefaultBaseURL is the server address used when nothing is configured.
const DefaultBaseURL = "http://localhost:8000"

// maxErrorBody caps how much of a failed response body is kept in errors.
const maxErrorBody = 512

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Client talks to the task/chat server. It is safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a client for baseURL (DefaultBaseURL when empty).
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server address the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type taskBody struct {
	Task string `json:"task"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// FetchMonth returns the date→task mapping for month m.
func (c *Client) FetchMonth(ctx context.Context, m calendar.Month) (map[string]string, error) {
	path := fmt.Sprintf("/tasks/month/%s/%s", m.YearString(), m.MonthString())

	tasks := map[string]string{}
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns the task text stored for date (empty when none).
func (c *Client) GetTask(ctx context.Context, date string) (string, error) {
	var body taskBody
	if err := c.do(ctx, http.MethodGet, "/tasks/"+date, nil, &body); err != nil {
		return "", err
	}
	return body.Task, nil
}

// CreateTask stores text for date with POST.
func (c *Client) CreateTask(ctx context.Context, date, text string) error {
	return c.do(ctx, http.MethodPost, "/tasks/"+date, taskBody{Task: text}, nil)
}

// UpdateTask replaces the text for date with PUT.
func (c *Client) UpdateTask(ctx context.Context, date, text string) error {
	return c.do(ctx, http.MethodPut, "/tasks/"+date, taskBody{Task: text}, nil)
}

// Chat sends message and returns the server's reply.
func (c *Client) Chat(ctx context.Context, message string) (chat.Message, error) {
	var reply chat.Message
	if err := c.do(ctx, http.MethodPost, "/chat", chatRequest{Message: message}, &reply); err != nil {
		return chat.Message{}, err
	}
	return reply, nil
}

// do sends a JSON request and decodes a JSON response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		slog.Debug("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	slog.Debug("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
