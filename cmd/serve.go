package cmd

import (
	"fmt"

	"agentview/logging"
	"agentview/server"
	"agentview/viewport"
)

// ServeCmd starts the SSH server
type ServeCmd struct {
	Host  string `help:"Host to bind to" default:"localhost"`
	Port  string `help:"Port to listen on" default:"23234"`
	NoVNC string `help:"Default noVNC URL for sessions without per-session desktop metadata" default:""`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	logging.Logger.Info("Starting agentview SSH server",
		"host", s.Host,
		"port", s.Port,
		"api", cli.API)

	defaultEndpoint := s.NoVNC
	if defaultEndpoint == "" && cli.settings != nil {
		defaultEndpoint = cli.settings.NoVNCURL
	}
	if defaultEndpoint == "" {
		defaultEndpoint = viewport.DefaultEndpoint
	}

	srv, err := server.NewServer(s.Host, s.Port, cli.API, defaultEndpoint)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Blocks until shutdown
	return srv.Start()
}
