package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{"http", "http://localhost:8000/api", "ws://localhost:8000/api/sessions/s1/stream"},
		{"https", "https://backend/api", "wss://backend/api/sessions/s1/stream"},
		{"trailing slash", "http://localhost:8000/api/", "ws://localhost:8000/api/sessions/s1/stream"},
		{"already ws", "ws://localhost:8000/api", "ws://localhost:8000/api/sessions/s1/stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := streamURL(strings.TrimRight(tt.base, "/"), "s1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStreamURLRejectsUnknownScheme(t *testing.T) {
	_, err := streamURL("ftp://host/api", "s1")
	assert.ErrorContains(t, err, "unsupported API scheme")
}

func TestDialReceivesFramesInOrder(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessions/s1/stream", r.URL.Path)
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer ws.Close()
		ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"user_message"}`))
		ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"assistant_done"}`))
	}))
	defer srv.Close()

	dialer := NewDialer(srv.URL + "/api")

	conn, err := dialer.Dial(context.Background(), "s1")
	require.NoError(t, err)
	defer conn.Close()

	first, err := conn.Next()
	require.NoError(t, err)
	assert.Equal(t, `{"type":"user_message"}`, string(first))

	second, err := conn.Next()
	require.NoError(t, err)
	assert.Equal(t, `{"type":"assistant_done"}`, string(second))

	// Server closed its side; the read loop sees an error, never a panic
	_, err = conn.Next()
	assert.Error(t, err)
}

func TestCloseIsIdempotent(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer ws.Close()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	dialer := NewDialer(srv.URL + "/api")
	conn, err := dialer.Dial(context.Background(), "s1")
	require.NoError(t, err)

	first := conn.Close()
	second := conn.Close()
	assert.Equal(t, first, second)
}
