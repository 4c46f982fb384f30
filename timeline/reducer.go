package timeline

import (
	"fmt"

	"agentview/domain"
)

// Display truncation limits, matching what the event log renders per row
const (
	maxBlockSummary  = 500
	maxOutputSummary = 800
)

// Entry is one event-log row: the event plus presentation fields derived once
// at append time. Image carries a base64 raster verbatim when the event has
// one.
type Entry struct {
	Event   domain.Event
	Summary string
	Image   string
}

// Timeline owns the chat transcript and the full event log for the active
// session. Both collections are append-only: events are applied strictly in
// the order handed in, with identical projection rules for replayed and live
// events, and nothing is ever removed or reordered. Switching sessions
// discards state via Reset.
//
// Timeline is not safe for concurrent use; the directory controller
// serializes access.
type Timeline struct {
	turns   []domain.ChatTurn
	entries []Entry
}

// New returns an empty timeline
func New() *Timeline {
	return &Timeline{}
}

// Reset clears the transcript and event log before replaying a session
func (t *Timeline) Reset() {
	t.turns = nil
	t.entries = nil
}

// ApplyReplayBatch appends stored events in the given order. An empty batch
// is valid: a backend without an events endpoint simply has no history.
func (t *Timeline) ApplyReplayBatch(events []domain.Event) {
	for _, ev := range events {
		t.apply(ev)
	}
}

// ApplyLive decodes one raw stream frame and applies it with the same
// projection rules as replay. The decoded event is returned for logging.
func (t *Timeline) ApplyLive(raw []byte) domain.Event {
	ev := Decode(raw)
	t.apply(ev)
	return ev
}

// ApplyDetailMessages seeds the chat transcript from stored detail messages:
// user rows contribute their plain content, assistant rows contribute each
// text block of their structured content. Other rows are ignored.
func (t *Timeline) ApplyDetailMessages(msgs []domain.Message) {
	for _, m := range msgs {
		switch m.Role {
		case "user":
			if m.Content != "" {
				t.turns = append(t.turns, domain.ChatTurn{
					Role:    domain.RoleUser,
					Content: m.Content,
					At:      m.CreatedAt.Time,
				})
			}
		case "assistant":
			for _, block := range m.ContentJSON {
				if block.Type == "text" {
					t.turns = append(t.turns, domain.ChatTurn{
						Role:    domain.RoleAssistant,
						Content: block.Text,
						At:      m.CreatedAt.Time,
					})
				}
			}
		}
	}
}

// apply projects one event onto the transcript and event log
func (t *Timeline) apply(ev domain.Event) {
	switch e := ev.(type) {
	case domain.UserMessage:
		t.turns = append(t.turns, domain.ChatTurn{Role: domain.RoleUser, Content: e.Content, At: e.At})
		t.entries = append(t.entries, Entry{Event: ev, Summary: e.Content})

	case domain.AssistantBlock:
		if e.Block.IsText() {
			t.turns = append(t.turns, domain.ChatTurn{Role: domain.RoleAssistant, Content: e.Block.Text, At: e.At})
		}
		t.entries = append(t.entries, Entry{Event: ev, Summary: blockSummary(e.Block)})

	case domain.AssistantMessage:
		t.entries = append(t.entries, Entry{Event: ev, Summary: "[assistant_message]"})

	case domain.AssistantDone:
		t.entries = append(t.entries, Entry{Event: ev, Summary: "[assistant_done]"})

	case domain.ToolResult:
		summary := e.ToolUseID
		if summary != "" {
			summary += "\n"
		}
		summary += truncate(e.Output, maxOutputSummary)
		t.entries = append(t.entries, Entry{Event: ev, Summary: summary, Image: e.Base64Image})

	case domain.APICall:
		t.entries = append(t.entries, Entry{
			Event:   ev,
			Summary: fmt.Sprintf("%s %s -> %d", e.Method, e.URL, e.Status),
		})

	case domain.Unknown:
		t.entries = append(t.entries, Entry{Event: ev, Summary: e.Raw})
	}
}

// Transcript returns a copy of the chat transcript
func (t *Timeline) Transcript() []domain.ChatTurn {
	out := make([]domain.ChatTurn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Entries returns a copy of the event log
func (t *Timeline) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of event-log entries
func (t *Timeline) Len() int {
	return len(t.entries)
}

// blockSummary renders a content block for the event log, preferring the raw
// payload so non-text kinds stay inspectable
func blockSummary(b domain.ContentBlock) string {
	if len(b.Raw) > 0 {
		return truncate(string(b.Raw), maxBlockSummary)
	}
	return truncate(b.Text, maxBlockSummary)
}

// truncate limits s to max bytes for display
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
