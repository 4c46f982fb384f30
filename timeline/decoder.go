package timeline

import (
	"bytes"
	"encoding/json"

	"agentview/domain"
)

// wireFrame is the envelope shared by every stream frame and stored event
type wireFrame struct {
	Type      string          `json:"type"`
	At        string          `json:"at"`
	ToolUseID string          `json:"tool_use_id"`
	Message   *wireMessage    `json:"message"`
	Data      json.RawMessage `json:"data"`
}

type wireMessage struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Decode turns one raw inbound frame into exactly one event. It is total:
// payloads that are not JSON, and JSON whose type field is not recognized,
// normalize to domain.Unknown so the frame stays inspectable instead of being
// dropped or aborting the stream.
func Decode(raw []byte) domain.Event {
	var frame wireFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return domain.Unknown{Raw: string(raw)}
	}

	at := domain.ParseTime(frame.At)

	switch frame.Type {
	case "user_message":
		var id, content string
		if frame.Message != nil {
			id = frame.Message.ID
			content = frame.Message.Content
		}
		return domain.UserMessage{At: at, MessageID: id, Content: content}

	case "assistant_block":
		var block domain.ContentBlock
		if len(frame.Data) > 0 {
			// Malformed block data degrades to an empty block; the frame
			// itself is still recorded.
			_ = json.Unmarshal(frame.Data, &block)
		}
		return domain.AssistantBlock{At: at, Block: block}

	case "assistant_message":
		return domain.AssistantMessage{At: at, Data: frame.Data}

	case "assistant_done":
		return domain.AssistantDone{At: at}

	case "tool_result":
		var data struct {
			Output      *string `json:"output"`
			Error       *string `json:"error"`
			System      *string `json:"system"`
			Base64Image *string `json:"base64_image"`
		}
		if len(frame.Data) > 0 {
			_ = json.Unmarshal(frame.Data, &data)
		}
		return domain.ToolResult{
			At:          at,
			ToolUseID:   frame.ToolUseID,
			Output:      deref(data.Output),
			ErrorText:   deref(data.Error),
			System:      deref(data.System),
			Base64Image: deref(data.Base64Image),
		}

	case "api":
		var data struct {
			Request struct {
				Method string `json:"method"`
				URL    string `json:"url"`
			} `json:"request"`
			Response struct {
				Status      int    `json:"status"`
				BodyPreview string `json:"body_preview"`
			} `json:"response"`
			Error *string `json:"error"`
		}
		if len(frame.Data) > 0 {
			_ = json.Unmarshal(frame.Data, &data)
		}
		return domain.APICall{
			At:          at,
			Method:      data.Request.Method,
			URL:         data.Request.URL,
			Status:      data.Response.Status,
			BodyPreview: data.Response.BodyPreview,
			ErrorText:   deref(data.Error),
		}

	default:
		// Well-formed but unrecognized: keep the whole decoded structure
		return domain.Unknown{At: at, Raw: compact(raw)}
	}
}

// deref normalizes a missing string field to ""
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// compact strips insignificant whitespace for event-log display
func compact(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
