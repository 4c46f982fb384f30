package ui

import (
	"fmt"
	"strings"

	"agentview/domain"
	"agentview/ports"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// sizeStep is how many pixels one width/height key press adjusts
const sizeStep = 32

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238"))

	focusedPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("99"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6"))

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	connectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2"))

	disconnectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("1"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	kindStyles = map[domain.EventKind]lipgloss.Style{
		domain.KindUserMessage:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		domain.KindAssistantBlock:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		domain.KindAssistantMessage: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		domain.KindAssistantDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		domain.KindToolResult:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		domain.KindAPI:              lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		domain.KindUnknown:          lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

// layout recomputes pane sizes after a terminal resize
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	contentWidth := m.width - sessionListWidth - 6
	if contentWidth < 20 {
		contentWidth = 20
	}
	// Two stacked panes plus input and status lines
	paneHeight := (m.height - 8) / 2
	if paneHeight < 3 {
		paneHeight = 3
	}

	if !m.ready {
		m.chatView = viewport.New(contentWidth, paneHeight)
		m.eventView = viewport.New(contentWidth, paneHeight)
		m.ready = true
	} else {
		m.chatView.Width = contentWidth
		m.chatView.Height = paneHeight
		m.eventView.Width = contentWidth
		m.eventView.Height = paneHeight
	}
	m.input.Width = contentWidth - 4

	m.chatView.SetContent(m.renderTranscript())
	m.chatView.GotoBottom()
	m.eventView.SetContent(m.renderEntries())
	m.eventView.GotoBottom()
}

func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.state == stateConfirmNew && m.form != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.View())
	}

	left := m.renderSessionList()

	chatPane := m.pane(false, "Chat", m.chatView.View())
	eventPane := m.pane(m.focus == focusTimeline, "Timeline", m.eventView.View())
	inputPane := m.pane(m.focus == focusInput, "Message", m.input.View())

	right := lipgloss.JoinVertical(lipgloss.Left, chatPane, eventPane, inputPane, m.renderStatus())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	help := helpStyle.Render("tab: pane • enter: select/send • n: new • r: refresh • v: desktop • f: fit • a: aspect • [ ] { }: size • 1/2/3: presets • q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

// pane wraps content in a titled, optionally highlighted border
func (m *Model) pane(focused bool, title, content string) string {
	style := paneStyle
	if focused {
		style = focusedPaneStyle
	}
	return style.Render(titleStyle.Render(title) + "\n" + content)
}

func (m *Model) renderSessionList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sessions"))
	b.WriteString("\n")

	if len(m.sessions) == 0 {
		b.WriteString(sessionMetaStyle.Render("no sessions"))
	}

	activeID := m.dir.ActiveID()
	for i, s := range m.sessions {
		title := s.DisplayTitle()
		if len(title) > sessionListWidth-6 {
			title = title[:sessionListWidth-6]
		}
		marker := "  "
		if s.ID == activeID {
			marker = "* "
		}
		line := marker + title
		if i == m.cursor && m.focus == focusSessions {
			line = selectedStyle.Render("> " + title)
			if s.ID == activeID {
				line = selectedStyle.Render(">*" + title)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
		meta := fmt.Sprintf("  %s", s.Status)
		if !s.UpdatedAt.IsZero() {
			meta += " • " + s.UpdatedAt.Format("Jan 2 15:04")
		}
		b.WriteString(sessionMetaStyle.Render(meta))
		b.WriteString("\n")
	}

	style := paneStyle
	if m.focus == focusSessions {
		style = focusedPaneStyle
	}
	return style.Width(sessionListWidth).Render(b.String())
}

func (m *Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return sessionMetaStyle.Render("no messages yet")
	}
	var b strings.Builder
	for _, turn := range m.transcript {
		style := assistantStyle
		if turn.Role == domain.RoleUser {
			style = userStyle
		}
		prefix := string(turn.Role) + ": "
		if !turn.At.IsZero() {
			b.WriteString(timeStyle.Render(turn.At.Format("15:04:05")))
			b.WriteString(" ")
		}
		b.WriteString(style.Render(prefix + turn.Content))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderEntries() string {
	if len(m.entries) == 0 {
		return sessionMetaStyle.Render("no events yet")
	}
	var b strings.Builder
	for _, entry := range m.entries {
		kind := entry.Event.Kind()
		style, ok := kindStyles[kind]
		if !ok {
			style = assistantStyle
		}
		at := entry.Event.OccurredAt()
		if !at.IsZero() {
			b.WriteString(timeStyle.Render(at.Format("15:04:05")))
			b.WriteString(" ")
		}
		b.WriteString(style.Render("[" + string(kind) + "] " + firstLine(entry.Summary)))
		if entry.Image != "" {
			b.WriteString("\n")
			b.WriteString(sessionMetaStyle.Render(fmt.Sprintf("        (screenshot, %d bytes base64)", len(entry.Image))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderStatus draws the connectivity indicator, the remote desktop address,
// and the viewport geometry. Connectivity is deliberately separate from
// timeline content.
func (m *Model) renderStatus() string {
	conn := m.dir.ConnState()
	connText := "[" + conn.String() + "]"
	switch conn {
	case ports.ConnConnected:
		connText = connectedStyle.Render(connText)
	case ports.ConnDisconnected, ports.ConnError:
		connText = disconnectedStyle.Render(connText)
	default:
		connText = sessionMetaStyle.Render(connText)
	}

	box := m.geo.Box()
	geoText := fmt.Sprintf("%dx%d", box.Width, box.Height)
	if box.Fill {
		geoText = "fit"
	}
	if m.geo.LockAspect() {
		geoText += " (locked)"
	}

	parts := []string{connText, sessionMetaStyle.Render("desktop: " + m.desktopURL), sessionMetaStyle.Render("size: " + geoText)}
	if m.loading {
		parts = append(parts, sessionMetaStyle.Render("loading..."))
	}
	if m.err != nil {
		parts = append(parts, errStyle.Render("error: "+m.err.Error()))
	}
	return strings.Join(parts, "  ")
}

// firstLine bounds a summary to its first line for the one-row log view
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
