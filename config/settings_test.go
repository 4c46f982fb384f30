package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, settings)
}

func TestLoadSettings(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".agentview")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{
		"api_base": "http://backend:8000/api",
		"debug": true,
		"width": 1280,
		"height": 800,
		"lock_aspect": false,
		"novnc_url": "http://backend:6080/vnc.html"
	}`), 0644))

	settings, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "http://backend:8000/api", settings.APIBase)
	require.NotNil(t, settings.Debug)
	assert.True(t, *settings.Debug)
	require.NotNil(t, settings.Width)
	assert.Equal(t, 1280, *settings.Width)
	require.NotNil(t, settings.LockAspect)
	assert.False(t, *settings.LockAspect)
	assert.Equal(t, "http://backend:6080/vnc.html", settings.NoVNCURL)
	assert.Nil(t, settings.MaxLogFiles, "absent optionals stay nil so defaults apply")
}

func TestLoadSettingsInvalidJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".agentview")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{oops"), 0644))

	_, err := LoadSettings()
	assert.ErrorContains(t, err, "invalid settings.json")
}
