package cmd

import (
	"fmt"
	"os"

	"agentview/config"
	"agentview/logging"

	"github.com/alecthomas/kong"
)

// defaultAPIBase is where the session backend's same-origin proxy listens
const defaultAPIBase = "http://localhost:8000/api"

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	API         string           `help:"Session backend base URL" default:"http://localhost:8000/api" env:"AGENTVIEW_API"`

	Run      RunCmd      `cmd:"" help:"Start the agentview TUI (default)" default:"1"`
	Serve    ServeCmd    `cmd:"serve" help:"Serve the viewer TUI over SSH"`
	Sessions SessionsCmd `cmd:"sessions" help:"Inspect sessions without the TUI"`

	// Internal field for settings (not a flag)
	settings *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Apply settings with precedence: CLI flags > env vars > settings.json >
	// defaults. Only apply when the flag is at its default and the env var
	// is unset.

	if c.settings != nil {
		if c.API == defaultAPIBase {
			if _, hasEnv := os.LookupEnv("AGENTVIEW_API"); !hasEnv {
				if c.settings.APIBase != "" {
					c.API = c.settings.APIBase
				}
			}
		}

		if c.MaxLogFiles == 1000 {
			if _, hasEnv := os.LookupEnv("AGENTVIEW_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("AGENTVIEW_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Export debug settings so any child processes share the same log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("AGENTVIEW_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("AGENTVIEW_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != 1000 {
		os.Setenv("AGENTVIEW_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	return nil
}
