package cmd

import (
	"context"
	"fmt"
	"time"

	"agentview/logging"
	"agentview/state"
	"agentview/ui"
	"agentview/viewport"

	tea "github.com/charmbracelet/bubbletea"
)

// RunCmd starts the TUI application
type RunCmd struct {
	NoVNC           string `help:"Default noVNC URL for sessions without per-session desktop metadata" default:""`
	Width           int    `help:"Initial remote desktop width in pixels" default:"1024"`
	Height          int    `help:"Initial remote desktop height in pixels" default:"768"`
	LockAspect      bool   `help:"Keep the remote desktop aspect ratio when resizing" default:"true" negatable:""`
	Fit             bool   `help:"Start with fit-to-container layout"`
	ErrorClearDelay int    `help:"Seconds before error messages auto-clear" default:"10"`
	Resume          bool   `help:"Reselect the last active session on start" default:"true" negatable:""`
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	logging.Logger.Info("Starting agentview TUI", "api", cli.API)

	defaultEndpoint := r.NoVNC
	if defaultEndpoint == "" && cli.settings != nil {
		defaultEndpoint = cli.settings.NoVNCURL
	}

	// Last-used geometry wins over defaults, but never over explicit flags
	st, err := state.Load()
	if err != nil {
		logging.Logger.Warn("Failed to load UI state", "error", err)
		st = &state.UIState{}
	}
	width, height := r.Width, r.Height
	if width == 1024 && height == 768 && st.Width > 0 && st.Height > 0 {
		width, height = st.Width, st.Height
	}
	if cli.settings != nil {
		if width == 1024 && cli.settings.Width != nil {
			width = *cli.settings.Width
		}
		if height == 768 && cli.settings.Height != nil {
			height = *cli.settings.Height
		}
	}

	lockAspect := r.LockAspect
	if lockAspect {
		if st.Width > 0 && st.Height > 0 {
			lockAspect = st.LockAspect
		} else if cli.settings != nil && cli.settings.LockAspect != nil {
			lockAspect = *cli.settings.LockAspect
		}
	}

	geo := viewport.NewGeometry(width, height)
	geo.SetLockAspect(lockAspect)
	geo.SetFitMode(r.Fit || st.Fit)

	container := NewContainer(cli, defaultEndpoint)
	dir := container.Directory
	defer dir.Close()

	model := ui.NewModel(dir, geo, time.Duration(r.ErrorClearDelay)*time.Second)

	logging.Logger.Debug("Initializing Bubble Tea program")
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Push-based refresh: every directory state change wakes the renderer
	dir.SetNotify(func() { p.Send(ui.RefreshMsg{}) })

	if r.Resume && st.LastSessionID != "" {
		last := st.LastSessionID
		go func() {
			if err := dir.Select(context.Background(), last); err != nil {
				logging.Logger.Warn("Failed to resume last session", "session", last, "error", err)
			}
		}()
	}

	logging.Logger.Info("Starting TUI program")
	if _, err := p.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	// Remember where we left off
	box := geo.Box()
	st.Width = box.Width
	st.Height = box.Height
	st.Fit = geo.FitMode()
	st.LockAspect = geo.LockAspect()
	st.LastSessionID = dir.ActiveID()
	if err := st.Save(); err != nil {
		logging.Logger.Warn("Failed to save UI state", "error", err)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}
