package ui

import (
	"context"
	"time"

	"agentview/application"
	"agentview/browser"
	"agentview/domain"
	"agentview/logging"
	"agentview/timeline"
	vpcore "agentview/viewport"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// sessionListWidth is the fixed width of the left pane
const sessionListWidth = 34

type uiState int

const (
	stateBrowse uiState = iota
	stateConfirmNew
)

type focusArea int

const (
	focusSessions focusArea = iota
	focusInput
	focusTimeline
)

// RefreshMsg wakes the UI after the directory controller changed state
type RefreshMsg struct{}

// tickMsg drives the fallback poll used when no push notification is wired
// (the SSH server path)
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type listDoneMsg struct{ err error }
type selectDoneMsg struct{ err error }
type createDoneMsg struct{ err error }
type sendDoneMsg struct{ err error }
type clearErrorMsg struct{}

// Model is the root bubbletea model: a session list pane, a chat transcript
// pane, an event timeline pane, a message input, and a remote desktop status
// line. All session and timeline state lives in the directory controller;
// the model only holds render snapshots.
type Model struct {
	dir  *application.Directory
	geo  *vpcore.Geometry
	keys KeyMap

	state uiState
	focus focusArea

	width  int
	height int

	sessions []domain.Session
	cursor   int

	transcript []domain.ChatTurn
	entries    []timeline.Entry

	chatView  viewport.Model
	eventView viewport.Model
	input     textinput.Model

	form       *huh.Form
	confirmNew *bool

	desktopURL string

	err           error
	errClearDelay time.Duration
	loading       bool
	ready         bool
}

// NewModel creates the root model
func NewModel(dir *application.Directory, geo *vpcore.Geometry, errClearDelay time.Duration) *Model {
	input := textinput.New()
	input.Placeholder = "Type a message and press enter"
	input.CharLimit = 4000

	return &Model{
		dir:           dir,
		geo:           geo,
		keys:          DefaultKeyMap(),
		state:         stateBrowse,
		focus:         focusSessions,
		input:         input,
		errClearDelay: errClearDelay,
	}
}

// Geometry exposes the viewport geometry for persistence on exit
func (m *Model) Geometry() *vpcore.Geometry { return m.geo }

// ActiveSessionID exposes the active session id for persistence on exit
func (m *Model) ActiveSessionID() string { return m.dir.ActiveID() }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listCmd(), tickCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case RefreshMsg:
		m.syncSnapshots()
		return m, nil

	case tickMsg:
		m.syncSnapshots()
		return m, tickCmd()

	case clearErrorMsg:
		m.err = nil
		return m, nil

	case listDoneMsg:
		m.loading = false
		m.syncSnapshots()
		return m, m.noteError(msg.err)

	case selectDoneMsg:
		m.loading = false
		m.syncSnapshots()
		return m, m.noteError(msg.err)

	case createDoneMsg:
		m.loading = false
		m.syncSnapshots()
		return m, m.noteError(msg.err)

	case sendDoneMsg:
		return m, m.noteError(msg.err)
	}

	switch m.state {
	case stateConfirmNew:
		return m.updateConfirmNew(msg)
	default:
		return m.updateBrowse(msg)
	}
}

func (m *Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// The input pane swallows printable keys while composing
	if m.focus == focusInput {
		switch {
		case key.Matches(keyMsg, m.keys.FocusNext):
			m.setFocus(focusTimeline)
			return m, nil
		case keyMsg.String() == "esc":
			m.setFocus(focusSessions)
			return m, nil
		case key.Matches(keyMsg, m.keys.Select):
			text := m.input.Value()
			m.input.Reset()
			return m, m.sendCmd(text)
		case keyMsg.String() == "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.FocusNext):
		switch m.focus {
		case focusSessions:
			m.setFocus(focusInput)
		case focusTimeline:
			m.setFocus(focusSessions)
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Refresh):
		m.loading = true
		return m, m.listCmd()

	case key.Matches(keyMsg, m.keys.NewSession):
		confirm := false
		m.confirmNew = &confirm
		m.form = m.newSessionForm()
		m.state = stateConfirmNew
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.OpenDesktop):
		url := m.dir.Endpoint()
		if url != "" {
			_ = browser.Open(url)
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Reconnect):
		// A fresh cache-busted URL forces the remote view to re-establish
		url := vpcore.ReconnectURL(m.dir.Endpoint())
		m.desktopURL = url
		_ = browser.Open(url)
		return m, nil

	case key.Matches(keyMsg, m.keys.FitMode):
		m.geo.SetFitMode(!m.geo.FitMode())
		return m, nil

	case key.Matches(keyMsg, m.keys.LockAspect):
		m.geo.SetLockAspect(!m.geo.LockAspect())
		return m, nil

	case key.Matches(keyMsg, m.keys.WidthDown):
		m.geo.SetSize(m.geo.Width()-sizeStep, m.geo.Height(), vpcore.DriverWidth)
		return m, nil

	case key.Matches(keyMsg, m.keys.WidthUp):
		m.geo.SetSize(m.geo.Width()+sizeStep, m.geo.Height(), vpcore.DriverWidth)
		return m, nil

	case key.Matches(keyMsg, m.keys.HeightDown):
		m.geo.SetSize(m.geo.Width(), m.geo.Height()-sizeStep, vpcore.DriverHeight)
		return m, nil

	case key.Matches(keyMsg, m.keys.HeightUp):
		m.geo.SetSize(m.geo.Width(), m.geo.Height()+sizeStep, vpcore.DriverHeight)
		return m, nil

	case key.Matches(keyMsg, m.keys.Preset1):
		m.geo.ApplyPreset(1024, 768)
		return m, nil

	case key.Matches(keyMsg, m.keys.Preset2):
		m.geo.ApplyPreset(1280, 800)
		return m, nil

	case key.Matches(keyMsg, m.keys.Preset3):
		m.geo.ApplyPreset(1920, 1080)
		return m, nil
	}

	if m.focus == focusSessions {
		switch {
		case key.Matches(keyMsg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(keyMsg, m.keys.Down):
			if m.cursor < len(m.sessions)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(keyMsg, m.keys.Select):
			if m.cursor >= 0 && m.cursor < len(m.sessions) {
				m.loading = true
				return m, m.selectCmd(m.sessions[m.cursor].ID)
			}
			return m, nil
		}
	}

	if m.focus == focusTimeline {
		var cmd tea.Cmd
		m.eventView, cmd = m.eventView.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) updateConfirmNew(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			m.state = stateBrowse
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.state = stateBrowse
		m.form = nil
		if m.confirmNew != nil && *m.confirmNew {
			m.loading = true
			return m, m.createCmd()
		}
		return m, nil
	}

	return m, cmd
}

// newSessionForm builds the confirmation form shown before creating a
// session, since creation archives the one currently active
func (m *Model) newSessionForm() *huh.Form {
	description := "A fresh session will be created and selected."
	if m.dir.ActiveID() != "" {
		description = "The current session will be archived, then a fresh one created."
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Create a new session?").
				Description(description).
				Affirmative("Create").
				Negative("Cancel").
				Value(m.confirmNew),
		),
	)
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// syncSnapshots pulls fresh copies of directory state and re-renders the
// scrollable panes, keeping them pinned to the bottom
func (m *Model) syncSnapshots() {
	m.sessions = m.dir.Sessions()
	if m.cursor >= len(m.sessions) {
		m.cursor = len(m.sessions) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.transcript = m.dir.Transcript()
	m.entries = m.dir.Entries()
	m.desktopURL = m.dir.Endpoint()

	if m.ready {
		m.chatView.SetContent(m.renderTranscript())
		m.chatView.GotoBottom()
		m.eventView.SetContent(m.renderEntries())
		m.eventView.GotoBottom()
	}
}

// noteError surfaces an error in the status line and schedules its clearing
func (m *Model) noteError(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	m.err = err
	logging.Logger.Warn("UI operation failed", "error", err)
	delay := m.errClearDelay
	if delay <= 0 {
		delay = 10 * time.Second
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return clearErrorMsg{} })
}

func (m *Model) listCmd() tea.Cmd {
	return func() tea.Msg {
		return listDoneMsg{err: m.dir.List(context.Background())}
	}
}

func (m *Model) selectCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return selectDoneMsg{err: m.dir.Select(context.Background(), id)}
	}
}

func (m *Model) createCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.dir.Create(context.Background())
		return createDoneMsg{err: err}
	}
}

func (m *Model) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return sendDoneMsg{err: m.dir.Send(context.Background(), text)}
	}
}
