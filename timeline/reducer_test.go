package timeline

import (
	"strings"
	"testing"

	"agentview/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveExchangeProjectsTranscriptAndLog(t *testing.T) {
	tl := New()

	tl.ApplyLive([]byte(`{"type":"user_message","at":"2026-01-02T03:04:05","message":{"id":"m1","content":"hi"}}`))
	tl.ApplyLive([]byte(`{"type":"assistant_block","at":"2026-01-02T03:04:06","data":{"type":"text","text":"hello"}}`))

	turns := tl.Transcript()
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "hi", turns[0].Content)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
	assert.Equal(t, "hello", turns[1].Content)

	require.Equal(t, 2, tl.Len())
	entries := tl.Entries()
	assert.Equal(t, domain.KindUserMessage, entries[0].Event.Kind())
	assert.Equal(t, domain.KindAssistantBlock, entries[1].Event.Kind())
}

func TestReplayMatchesLiveProjection(t *testing.T) {
	frames := [][]byte{
		[]byte(`{"type":"user_message","message":{"id":"m1","content":"open a browser"}}`),
		[]byte(`{"type":"assistant_block","data":{"type":"text","text":"Opening it now."}}`),
		[]byte(`{"type":"assistant_block","data":{"type":"tool_use","name":"computer","input":{"action":"screenshot"}}}`),
		[]byte(`{"type":"tool_result","tool_use_id":"tu1","data":{"output":"ok"}}`),
		[]byte(`{"type":"assistant_done"}`),
	}

	live := New()
	for _, f := range frames {
		live.ApplyLive(f)
	}

	events := make([]domain.Event, 0, len(frames))
	for _, f := range frames {
		events = append(events, Decode(f))
	}
	replayed := New()
	replayed.ApplyReplayBatch(events)

	assert.Equal(t, live.Transcript(), replayed.Transcript(),
		"replayed and live events must project identically")
	assert.Equal(t, live.Entries(), replayed.Entries())
}

func TestResetAndReplayIsIdempotent(t *testing.T) {
	events := []domain.Event{
		domain.UserMessage{MessageID: "m1", Content: "hi"},
		domain.AssistantBlock{Block: domain.ContentBlock{Type: "text", Text: "hello"}},
		domain.ToolResult{ToolUseID: "tu1", Output: "done"},
		domain.AssistantDone{},
	}

	tl := New()
	tl.ApplyReplayBatch(events)
	firstTurns := tl.Transcript()
	firstEntries := tl.Entries()

	tl.Reset()
	tl.ApplyReplayBatch(events)

	assert.Equal(t, firstTurns, tl.Transcript())
	assert.Equal(t, firstEntries, tl.Entries())
}

func TestEmptyReplayBatch(t *testing.T) {
	tl := New()
	tl.ApplyReplayBatch(nil)
	tl.ApplyReplayBatch([]domain.Event{})

	assert.Empty(t, tl.Transcript())
	assert.Zero(t, tl.Len())
}

func TestMarkersDoNotTouchTranscript(t *testing.T) {
	tl := New()
	tl.ApplyLive([]byte(`{"type":"assistant_message","data":[{"type":"text","text":"final"}]}`))
	tl.ApplyLive([]byte(`{"type":"assistant_done"}`))

	assert.Empty(t, tl.Transcript(), "markers are log-only")
	assert.Equal(t, 2, tl.Len())
}

func TestNonTextBlocksAreLogOnly(t *testing.T) {
	tl := New()
	tl.ApplyLive([]byte(`{"type":"assistant_block","data":{"type":"tool_use","name":"bash","input":{"command":"ls"}}}`))
	tl.ApplyLive([]byte(`{"type":"assistant_block","data":{"type":"text","text":""}}`))

	assert.Empty(t, tl.Transcript(), "tool_use and empty text blocks stay out of chat")
	require.Equal(t, 2, tl.Len())
	assert.Contains(t, tl.Entries()[0].Summary, "tool_use")
}

func TestToolResultEntryCarriesImage(t *testing.T) {
	tl := New()
	tl.ApplyLive([]byte(`{"type":"tool_result","tool_use_id":"tu9","data":{"output":"took screenshot","base64_image":"Zm9v"}}`))

	require.Equal(t, 1, tl.Len())
	entry := tl.Entries()[0]
	assert.Equal(t, "Zm9v", entry.Image)
	assert.Contains(t, entry.Summary, "tu9")
	assert.Contains(t, entry.Summary, "took screenshot")
}

func TestUnknownFrameRecordedNotDropped(t *testing.T) {
	tl := New()
	ev := tl.ApplyLive([]byte("not json at all"))

	assert.Equal(t, domain.KindUnknown, ev.Kind())
	require.Equal(t, 1, tl.Len())
	assert.Equal(t, "not json at all", tl.Entries()[0].Summary)
	assert.Empty(t, tl.Transcript())
}

func TestApplyDetailMessages(t *testing.T) {
	msgs := []domain.Message{
		{Role: "user", Content: "open a browser"},
		{Role: "assistant", ContentJSON: []domain.ContentBlock{
			{Type: "text", Text: "Opening it now."},
			{Type: "tool_use"},
			{Type: "text", Text: "Done."},
		}},
		{Role: "system", Content: "ignored"},
		{Role: "user", Content: ""},
	}

	tl := New()
	tl.ApplyDetailMessages(msgs)

	turns := tl.Transcript()
	require.Len(t, turns, 3)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "open a browser", turns[0].Content)
	assert.Equal(t, "Opening it now.", turns[1].Content)
	assert.Equal(t, "Done.", turns[2].Content)
	assert.Zero(t, tl.Len(), "detail messages seed chat only, never the event log")
}

func TestLongOutputTruncatedForDisplay(t *testing.T) {
	long := strings.Repeat("x", maxOutputSummary+100)
	tl := New()
	tl.ApplyReplayBatch([]domain.Event{domain.ToolResult{Output: long}})

	entry := tl.Entries()[0]
	assert.LessOrEqual(t, len(entry.Summary), maxOutputSummary+1)
	tr := entry.Event.(domain.ToolResult)
	assert.Equal(t, long, tr.Output, "truncation is display-only; the event keeps everything")
}

func TestSnapshotsAreCopies(t *testing.T) {
	tl := New()
	tl.ApplyReplayBatch([]domain.Event{domain.UserMessage{Content: "hi"}})

	turns := tl.Transcript()
	turns[0].Content = "mutated"
	assert.Equal(t, "hi", tl.Transcript()[0].Content)

	entries := tl.Entries()
	entries[0].Summary = "mutated"
	assert.Equal(t, "hi", tl.Entries()[0].Summary)
}
