package ports

import "context"

// ConnState is the connectivity signal for the live channel. It is rendered
// separately from timeline content: connection changes never become events.
type ConnState int

const (
	ConnIdle ConnState = iota
	ConnConnecting
	ConnConnected
	ConnDisconnected
	ConnError
)

// String returns the display label for the state
func (s ConnState) String() string {
	switch s {
	case ConnConnecting:
		return "connecting"
	case ConnConnected:
		return "connected"
	case ConnDisconnected:
		return "disconnected"
	case ConnError:
		return "error"
	default:
		return "idle"
	}
}

// StreamConn delivers raw text frames for one session, strictly in arrival
// order. Close is the only cancellation primitive and must be idempotent.
type StreamConn interface {
	// Next blocks until the next frame arrives or the connection ends
	Next() ([]byte, error)
	Close() error
}

// StreamDialer opens the live push channel for a session
type StreamDialer interface {
	Dial(ctx context.Context, sessionID string) (StreamConn, error)
}
