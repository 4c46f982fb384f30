package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"agentview/domain"
	"agentview/ports"
	"agentview/timeline"
)

// maxErrorPreview limits how much of an error response body ends up in the
// returned error
const maxErrorPreview = 200

// Client implements ports.SessionAPI over JSON HTTP
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for the given API base URL, e.g.
// "http://localhost:8000/api"
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Create requests a new session
func (c *Client) Create(ctx context.Context) (domain.Session, error) {
	var session domain.Session
	if err := c.do(ctx, http.MethodPost, "/sessions", struct{}{}, &session); err != nil {
		return domain.Session{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// List returns the session snapshot list
func (c *Client) List(ctx context.Context) ([]domain.Session, error) {
	var sessions []domain.Session
	if err := c.do(ctx, http.MethodGet, "/sessions", nil, &sessions); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// Get fetches the session detail with its stored messages
func (c *Client) Get(ctx context.Context, id string) (domain.ChatHistory, error) {
	var detail domain.ChatHistory
	if err := c.do(ctx, http.MethodGet, "/sessions/"+id, nil, &detail); err != nil {
		return domain.ChatHistory{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return detail, nil
}

// Events fetches stored timeline events. A backend without an events endpoint
// answers 404; that maps to ports.ErrNoHistory so callers can treat it as
// empty history.
func (c *Client) Events(ctx context.Context, id string) ([]domain.Event, error) {
	var frames []json.RawMessage
	err := c.do(ctx, http.MethodGet, "/sessions/"+id+"/events", nil, &frames)
	if err != nil {
		var httpErr *statusError
		if errors.As(err, &httpErr) && (httpErr.status == http.StatusNotFound || httpErr.status == http.StatusMethodNotAllowed) {
			return nil, ports.ErrNoHistory
		}
		return nil, fmt.Errorf("list events for %s: %w", id, err)
	}

	// Stored events share the stream wire format; normalize each one with
	// the same decoder the live channel uses.
	events := make([]domain.Event, 0, len(frames))
	for _, frame := range frames {
		events = append(events, timeline.Decode(frame))
	}
	return events, nil
}

// SendMessage posts a user message; the response body is ignored
func (c *Client) SendMessage(ctx context.Context, id, content string) error {
	body := struct {
		Content string `json:"content"`
	}{Content: content}
	if err := c.do(ctx, http.MethodPost, "/sessions/"+id+"/messages", body, nil); err != nil {
		return fmt.Errorf("send message to %s: %w", id, err)
	}
	return nil
}

// Archive marks a session archived; the response body is ignored
func (c *Client) Archive(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodPost, "/sessions/"+id+"/archive", struct{}{}, nil); err != nil {
		return fmt.Errorf("archive session %s: %w", id, err)
	}
	return nil
}

// statusError carries the HTTP status for error mapping by callers
type statusError struct {
	status  int
	preview string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.status, e.preview)
}

// do issues one JSON request. A nil body sends no payload; a nil out discards
// the response body. Non-2xx responses become a statusError with a bounded
// body preview.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{status: resp.StatusCode, preview: preview(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid JSON response: %s", preview(data))
	}
	return nil
}

// preview bounds a response body for error messages
func preview(data []byte) string {
	s := string(data)
	if len(s) > maxErrorPreview {
		s = s[:maxErrorPreview]
	}
	return s
}
