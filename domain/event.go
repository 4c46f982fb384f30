package domain

import (
	"encoding/json"
	"time"
)

// EventKind discriminates timeline event variants
type EventKind string

const (
	KindUserMessage      EventKind = "user_message"
	KindAssistantBlock   EventKind = "assistant_block"
	KindAssistantMessage EventKind = "assistant_message"
	KindAssistantDone    EventKind = "assistant_done"
	KindToolResult       EventKind = "tool_result"
	KindAPI              EventKind = "api"
	KindUnknown          EventKind = "unknown"
)

// Event is the closed set of timeline event variants. Every inbound frame
// normalizes to exactly one variant; frames that cannot be classified become
// Unknown rather than being dropped. Events are immutable once created.
type Event interface {
	Kind() EventKind
	OccurredAt() time.Time
}

// UserMessage is a user chat message echoed over the stream
type UserMessage struct {
	At        time.Time
	MessageID string
	Content   string
}

func (e UserMessage) Kind() EventKind       { return KindUserMessage }
func (e UserMessage) OccurredAt() time.Time { return e.At }

// AssistantBlock is one streamed assistant content block. Only text blocks
// contribute to the chat transcript; every block is recorded in the event log.
type AssistantBlock struct {
	At    time.Time
	Block ContentBlock
}

func (e AssistantBlock) Kind() EventKind       { return KindAssistantBlock }
func (e AssistantBlock) OccurredAt() time.Time { return e.At }

// AssistantMessage marks a completed assistant message; Data carries the final
// content snapshot verbatim.
type AssistantMessage struct {
	At   time.Time
	Data json.RawMessage
}

func (e AssistantMessage) Kind() EventKind       { return KindAssistantMessage }
func (e AssistantMessage) OccurredAt() time.Time { return e.At }

// AssistantDone marks the end of an assistant turn
type AssistantDone struct {
	At time.Time
}

func (e AssistantDone) Kind() EventKind       { return KindAssistantDone }
func (e AssistantDone) OccurredAt() time.Time { return e.At }

// ToolResult carries the output of a tool invocation. Base64Image, when
// present, is the raster payload exactly as received; this client never
// validates or decodes it.
type ToolResult struct {
	At          time.Time
	ToolUseID   string
	Output      string
	ErrorText   string
	System      string
	Base64Image string
}

func (e ToolResult) Kind() EventKind       { return KindToolResult }
func (e ToolResult) OccurredAt() time.Time { return e.At }

// APICall summarizes one backend-to-model API round trip
type APICall struct {
	At          time.Time
	Method      string
	URL         string
	Status      int
	BodyPreview string
	ErrorText   string
}

func (e APICall) Kind() EventKind       { return KindAPI }
func (e APICall) OccurredAt() time.Time { return e.At }

// Unknown holds a frame that failed to parse or carried an unrecognized type.
// Raw keeps the full payload inspectable in the event log.
type Unknown struct {
	At  time.Time
	Raw string
}

func (e Unknown) Kind() EventKind       { return KindUnknown }
func (e Unknown) OccurredAt() time.Time { return e.At }

// ContentBlock is one structured assistant content block. Raw preserves the
// original JSON so non-text block kinds stay inspectable in the event log.
type ContentBlock struct {
	Type string
	Text string
	Raw  json.RawMessage
}

// UnmarshalJSON keeps the original bytes alongside the decoded fields
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	b.Type = head.Type
	b.Text = head.Text
	b.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON round-trips the original payload when available
func (b ContentBlock) MarshalJSON() ([]byte, error) {
	if len(b.Raw) > 0 {
		return b.Raw, nil
	}
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	}{b.Type, b.Text})
}

// IsText reports whether the block contributes a chat transcript turn
func (b ContentBlock) IsText() bool {
	return b.Type == "text" && b.Text != ""
}
