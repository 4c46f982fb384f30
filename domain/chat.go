package domain

import "time"

// Role identifies the author of a chat turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one row of the chat transcript. Turns are append-only and never
// mutated or deduplicated once added; when replayed history and live echo both
// carry the same message, both turns appear.
type ChatTurn struct {
	Role    Role
	Content string
	At      time.Time
}
