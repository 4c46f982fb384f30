package stream

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"agentview/ports"

	"github.com/gorilla/websocket"
)

// Dialer implements ports.StreamDialer over WebSocket. One connection per
// active session; the address is derived from the API base by swapping the
// http scheme for ws.
type Dialer struct {
	base string
}

// NewDialer creates a dialer for the given API base URL
func NewDialer(base string) *Dialer {
	return &Dialer{base: strings.TrimRight(base, "/")}
}

// Dial opens the live channel for a session
func (d *Dialer) Dial(ctx context.Context, sessionID string) (ports.StreamConn, error) {
	addr, err := streamURL(d.base, sessionID)
	if err != nil {
		return nil, err
	}
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial stream %s: %w", addr, err)
	}
	return &conn{ws: ws}, nil
}

// streamURL derives the WebSocket address for a session from the API base
func streamURL(base, sessionID string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid API base %q: %w", base, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
		// already a websocket base
	default:
		return "", fmt.Errorf("unsupported API scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/sessions/" + sessionID + "/stream"
	return u.String(), nil
}

// conn adapts a websocket connection to ports.StreamConn
type conn struct {
	ws        *websocket.Conn
	closeOnce sync.Once
	closeErr  error
}

// Next blocks until the next text frame arrives. Frames are delivered
// strictly in arrival order.
func (c *conn) Next() ([]byte, error) {
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Close shuts the connection down; safe to call more than once
func (c *conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.ws.Close()
	})
	return c.closeErr
}
