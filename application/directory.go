package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"agentview/domain"
	"agentview/logging"
	"agentview/ports"
	"agentview/timeline"
	"agentview/viewport"

	"golang.org/x/sync/errgroup"
)

// Directory is the session directory controller. It exclusively owns the
// session snapshot list, the active session id, the timeline of the active
// session, the resolved remote desktop endpoint, and the live channel
// lifecycle.
//
// Session switches are not atomic with respect to in-flight work from the
// previous session: every switch bumps a generation counter, and any async
// result (historical fetch, dial, inbound frame) is checked against the
// current generation before it is applied. Last switch wins; superseded
// results are dropped, never merged.
type Directory struct {
	api             ports.SessionAPI
	dialer          ports.StreamDialer
	defaultEndpoint string

	mu        sync.Mutex
	sessions  []domain.Session
	activeID  string
	endpoint  string
	tl        *timeline.Timeline
	gen       uint64
	conn      ports.StreamConn
	connState ports.ConnState
	notify    func()
}

// NewDirectory creates a directory controller. defaultEndpoint is the remote
// desktop address used for sessions without per-session desktop metadata.
func NewDirectory(api ports.SessionAPI, dialer ports.StreamDialer, defaultEndpoint string) *Directory {
	return &Directory{
		api:             api,
		dialer:          dialer,
		defaultEndpoint: defaultEndpoint,
		endpoint:        viewport.ResolveEndpoint(defaultEndpoint, nil),
		tl:              timeline.New(),
		connState:       ports.ConnIdle,
	}
}

// SetNotify registers a callback invoked after every observable state change.
// The UI uses it to wake its render loop; it must not call back into the
// directory synchronously.
func (d *Directory) SetNotify(fn func()) {
	d.mu.Lock()
	d.notify = fn
	d.mu.Unlock()
}

func (d *Directory) notifyFn() {
	d.mu.Lock()
	fn := d.notify
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// List refreshes the session snapshot list. On failure the previous snapshot
// is kept unchanged and the error is returned as a diagnostic for the caller
// to surface.
func (d *Directory) List(ctx context.Context) error {
	sessions, err := d.api.List(ctx)
	if err != nil {
		logging.Logger.Warn("Session list refresh failed", "error", err)
		return err
	}
	d.mu.Lock()
	d.sessions = sessions
	d.mu.Unlock()
	d.notifyFn()
	return nil
}

// Create archives the current session (best effort), requests a new session,
// makes it active, resets the timeline, opens its live channel, and refreshes
// the session list. Archive and list-refresh failures are logged and do not
// block the rest of the sequence.
func (d *Directory) Create(ctx context.Context) (domain.Session, error) {
	d.mu.Lock()
	prev := d.activeID
	d.mu.Unlock()

	if prev != "" {
		// Advisory cleanup of the session being replaced
		if err := d.api.Archive(ctx, prev); err != nil {
			logging.Logger.Warn("Best-effort archive failed", "session", prev, "error", err)
		}
	}

	sess, err := d.api.Create(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("create session: %w", err)
	}
	logging.Logger.Info("Session created", "session", sess.ID)

	d.mu.Lock()
	gen := d.beginSwitchLocked()
	d.activeID = sess.ID
	d.endpoint = viewport.ResolveEndpoint(d.defaultEndpoint, sess.Metadata)
	d.tl.Reset()
	d.mu.Unlock()
	d.notifyFn()

	d.openStream(ctx, sess.ID, gen)

	if err := d.List(ctx); err != nil {
		logging.Logger.Warn("Session list refresh after create failed", "error", err)
	}
	return sess, nil
}

// Select switches to a session: it fetches the session detail and the stored
// events concurrently, rebuilds the timeline from them, resolves the remote
// desktop endpoint, and reopens the live channel. A missing events endpoint
// counts as empty history. Results arriving after a newer switch are dropped.
func (d *Directory) Select(ctx context.Context, id string) error {
	d.mu.Lock()
	gen := d.beginSwitchLocked()
	d.activeID = id
	rowMeta := d.rowMetadataLocked(id)
	d.mu.Unlock()
	d.notifyFn()

	var (
		detail    domain.ChatHistory
		detailErr error
		events    []domain.Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		detail, detailErr = d.api.Get(gctx, id)
		return nil
	})
	g.Go(func() error {
		evs, err := d.api.Events(gctx, id)
		if err != nil {
			if !errors.Is(err, ports.ErrNoHistory) {
				logging.Logger.Warn("Event history fetch failed", "session", id, "error", err)
			}
			return nil
		}
		events = evs
		return nil
	})
	_ = g.Wait()

	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		logging.Logger.Debug("Dropping stale session fetch", "session", id)
		return nil
	}
	d.tl.Reset()
	meta := rowMeta
	if detailErr == nil {
		d.tl.ApplyDetailMessages(detail.Messages)
		if len(detail.Session.Metadata) > 0 {
			meta = detail.Session.Metadata
		}
	} else {
		logging.Logger.Warn("Session detail fetch failed", "session", id, "error", detailErr)
	}
	d.tl.ApplyReplayBatch(events)
	d.endpoint = viewport.ResolveEndpoint(d.defaultEndpoint, meta)
	d.mu.Unlock()
	d.notifyFn()

	d.openStream(ctx, id, gen)
	return detailErr
}

// Send posts a user message for the active session. It is a no-op when no
// session is active or the text is blank. The transcript is NOT updated here:
// the live channel echoing the message is the system of record, which is what
// keeps sent messages from appearing twice.
func (d *Directory) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	d.mu.Lock()
	id := d.activeID
	d.mu.Unlock()
	if id == "" || text == "" {
		return nil
	}
	if err := d.api.SendMessage(ctx, id, text); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// ArchiveActive archives the active session, best effort
func (d *Directory) ArchiveActive(ctx context.Context) {
	d.mu.Lock()
	id := d.activeID
	d.mu.Unlock()
	if id == "" {
		return
	}
	if err := d.api.Archive(ctx, id); err != nil {
		logging.Logger.Warn("Archive failed", "session", id, "error", err)
	}
}

// Close tears down the live channel and invalidates in-flight work
func (d *Directory) Close() {
	d.mu.Lock()
	d.beginSwitchLocked()
	d.activeID = ""
	d.connState = ports.ConnIdle
	d.mu.Unlock()
}

// beginSwitchLocked bumps the switch generation and closes any open channel.
// Must be called with d.mu held; returns the new generation.
func (d *Directory) beginSwitchLocked() uint64 {
	d.gen++
	if d.conn != nil {
		// Closing is the only cancellation primitive; the read loop exits
		// on its own once the connection errors out.
		_ = d.conn.Close()
		d.conn = nil
	}
	d.connState = ports.ConnIdle
	return d.gen
}

// rowMetadataLocked returns the snapshot-list metadata for a session, used as
// the endpoint fallback when the detail fetch fails or carries no metadata
func (d *Directory) rowMetadataLocked(id string) map[string]any {
	for _, s := range d.sessions {
		if s.ID == id {
			return s.Metadata
		}
	}
	return nil
}

// openStream dials the live channel for the given switch generation and, on
// success, starts the read loop. A dial that loses the race to a newer switch
// closes the fresh connection instead of installing it.
func (d *Directory) openStream(ctx context.Context, id string, gen uint64) {
	d.setConnState(gen, ports.ConnConnecting)

	conn, err := d.dialer.Dial(ctx, id)
	if err != nil {
		logging.Logger.Warn("Stream dial failed", "session", id, "error", err)
		d.setConnState(gen, ports.ConnError)
		return
	}

	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		_ = conn.Close()
		return
	}
	d.conn = conn
	d.connState = ports.ConnConnected
	d.mu.Unlock()
	d.notifyFn()

	go d.readLoop(conn, gen)
}

// readLoop applies inbound frames strictly in arrival order. The backend is
// the sole source of sequencing truth: no reordering, no batching. Frames
// and the close signal belonging to a superseded generation are discarded.
func (d *Directory) readLoop(conn ports.StreamConn, gen uint64) {
	for {
		frame, err := conn.Next()
		if err != nil {
			d.mu.Lock()
			current := gen == d.gen
			if current {
				d.conn = nil
				d.connState = ports.ConnDisconnected
			}
			d.mu.Unlock()
			if current {
				logging.Logger.Info("Stream closed", "error", err)
				d.notifyFn()
			}
			return
		}

		d.mu.Lock()
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		ev := d.tl.ApplyLive(frame)
		d.mu.Unlock()
		logging.Logger.Debug("Applied live event", "kind", string(ev.Kind()))
		d.notifyFn()
	}
}

// setConnState records a connectivity transition if gen is still current
func (d *Directory) setConnState(gen uint64, state ports.ConnState) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.connState = state
	d.mu.Unlock()
	d.notifyFn()
}

// Sessions returns a copy of the session snapshot list
func (d *Directory) Sessions() []domain.Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.Session, len(d.sessions))
	copy(out, d.sessions)
	return out
}

// ActiveID returns the active session id, or "" when no session is active
func (d *Directory) ActiveID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.activeID
}

// Endpoint returns the resolved remote desktop address for the active session
func (d *Directory) Endpoint() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.endpoint
}

// ConnState returns the live channel connectivity signal
func (d *Directory) ConnState() ports.ConnState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connState
}

// Transcript returns a copy of the active session's chat transcript
func (d *Directory) Transcript() []domain.ChatTurn {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tl.Transcript()
}

// Entries returns a copy of the active session's event log
func (d *Directory) Entries() []timeline.Entry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tl.Entries()
}
