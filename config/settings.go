package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings represents the structure of ~/.agentview/settings.json. All fields
// are optional; precedence is CLI flags > env vars > settings.json > defaults.
type Settings struct {
	APIBase     string `json:"api_base,omitempty"`
	Debug       *bool  `json:"debug,omitempty"`
	Height      *int   `json:"height,omitempty"`
	LockAspect  *bool  `json:"lock_aspect,omitempty"`
	MaxLogFiles *int   `json:"max_log_files,omitempty"`
	NoVNCURL    string `json:"novnc_url,omitempty"`
	Width       *int   `json:"width,omitempty"`
}

// LoadSettings loads settings from ~/.agentview/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	path := filepath.Join(homeDir, ".agentview", "settings.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}
