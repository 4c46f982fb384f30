package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempStatePath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	orig := statePathFunc
	statePathFunc = func() (string, error) { return path, nil }
	t.Cleanup(func() { statePathFunc = orig })
	return path
}

func TestLoadMissingFile(t *testing.T) {
	withTempStatePath(t)

	st, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &UIState{}, st)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	withTempStatePath(t)

	st := &UIState{
		LastSessionID: "s1",
		Width:         1280,
		Height:        800,
		LockAspect:    true,
		Fit:           true,
	}
	require.NoError(t, st.Save())
	assert.False(t, st.UpdatedAt.IsZero(), "save stamps the state")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s1", loaded.LastSessionID)
	assert.Equal(t, 1280, loaded.Width)
	assert.Equal(t, 800, loaded.Height)
	assert.True(t, loaded.LockAspect)
	assert.True(t, loaded.Fit)
}

func TestSaveOverwritesLargerFile(t *testing.T) {
	path := withTempStatePath(t)

	big := &UIState{LastSessionID: "a-very-long-session-identifier", Width: 1920, Height: 1080}
	require.NoError(t, big.Save())

	small := &UIState{Width: 640, Height: 480}
	require.NoError(t, small.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Empty(t, loaded.LastSessionID)
	assert.Equal(t, 640, loaded.Width)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "a-very-long-session-identifier")
}

func TestLoadCorruptFile(t *testing.T) {
	path := withTempStatePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	st, err := Load()
	assert.Error(t, err)
	assert.Equal(t, &UIState{}, st, "corrupt state degrades to defaults")
}
