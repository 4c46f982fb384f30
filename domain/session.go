package domain

// SessionStatus represents the lifecycle status reported by the backend
type SessionStatus string

const (
	StatusActive   SessionStatus = "active"
	StatusArchived SessionStatus = "archived"
)

// Session is a read-only snapshot of one backend agent session. The directory
// controller refreshes the snapshot list on demand; nothing in this client
// mutates a Session after it is decoded.
type Session struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Status    SessionStatus  `json:"status"`
	CreatedAt Timestamp      `json:"created_at"`
	UpdatedAt Timestamp      `json:"updated_at"`
	Archived  bool           `json:"archived"`
	Metadata  map[string]any `json:"metadata_json"`
}

// DisplayTitle returns the title, falling back to the id for untitled sessions
func (s Session) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.ID
}

// Message is one stored chat row from the session detail endpoint. User rows
// carry plain text in Content; assistant rows carry structured content blocks
// in ContentJSON.
type Message struct {
	ID          string         `json:"id"`
	Role        string         `json:"role"`
	Content     string         `json:"content"`
	ContentJSON []ContentBlock `json:"content_json"`
	CreatedAt   Timestamp      `json:"created_at"`
}

// ChatHistory is the session detail response: the session plus its stored messages
type ChatHistory struct {
	Session  Session   `json:"session"`
	Messages []Message `json:"messages"`
}
