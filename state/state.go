package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// UIState holds small local preferences that survive restarts: the last
// viewport geometry and the last active session id. Session content is never
// persisted; replay always comes from the backend.
type UIState struct {
	LastSessionID string    `json:"last_session_id,omitempty"`
	Width         int       `json:"width,omitempty"`
	Height        int       `json:"height,omitempty"`
	LockAspect    bool      `json:"lock_aspect,omitempty"`
	Fit           bool      `json:"fit,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// statePathFunc is a function variable that returns the path to the state
// file. Can be overridden in tests.
var statePathFunc = getDefaultStatePath

// getDefaultStatePath returns the default state file path
func getDefaultStatePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".agentview", "state.json"), nil
}

// GetStatePath returns the path to the state file
func GetStatePath() (string, error) {
	return statePathFunc()
}

// Load reads the state from disk. Returns empty state if the file doesn't
// exist.
func Load() (*UIState, error) {
	path, err := GetStatePath()
	if err != nil {
		return &UIState{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &UIState{}, nil
		}
		return &UIState{}, fmt.Errorf("failed to read state file: %w", err)
	}

	var st UIState
	if err := json.Unmarshal(data, &st); err != nil {
		return &UIState{}, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &st, nil
}

// Save writes the state to disk with file locking
func (s *UIState) Save() error {
	path, err := GetStatePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open state file: %w", err)
	}
	defer file.Close()

	if err := lockFile(file); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer unlockFile(file)

	s.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate state file: %w", err)
	}
	if _, err := file.WriteAt(data, 0); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
