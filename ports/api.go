package ports

import (
	"context"
	"errors"

	"agentview/domain"
)

// ErrNoHistory signals that the backend does not expose a stored-events
// endpoint for this session. Callers treat it as "no history", not a failure.
var ErrNoHistory = errors.New("event history not available")

// SessionAPI is the backend session/message/event HTTP surface consumed by the
// directory controller. Implementations live in adapters.
type SessionAPI interface {
	// Create requests a new session from the backend
	Create(ctx context.Context) (domain.Session, error)

	// List returns the current session snapshot list
	List(ctx context.Context) ([]domain.Session, error)

	// Get fetches the session detail: the session row plus stored messages
	Get(ctx context.Context, id string) (domain.ChatHistory, error)

	// Events fetches stored timeline events in timeline order. Returns
	// ErrNoHistory when the endpoint is absent on this backend.
	Events(ctx context.Context, id string) ([]domain.Event, error)

	// SendMessage posts a user message. The response body is ignored; the
	// live stream echoing the message is the system of record.
	SendMessage(ctx context.Context, id, content string) error

	// Archive marks a session archived. Callers may treat failure as
	// advisory.
	Archive(ctx context.Context, id string) error
}
