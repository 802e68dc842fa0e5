package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Profile.User, "expected zero-value config for a missing file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfig_ParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[profile]
user = "alice"
layout = "qwerty"

[training]
history-window = 50
max-focus-letters = 4

[llm]
enabled = true
provider = "anthropic"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	s := Resolve(cfg)
	assert.Equal(t, "alice", s.User)
	assert.Equal(t, 50, s.HistoryWindow)
	assert.Equal(t, 4, s.MaxFocusLetters)
	assert.True(t, s.LLMEnabled)
	assert.Equal(t, "anthropic", s.LLMProvider)

	// Unset fields keep their defaults.
	assert.Equal(t, 20, s.WordCount)
	assert.Equal(t, 3, s.SentenceCount)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("profile = ["), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "default", s.User)
	assert.Equal(t, "qwerty", s.Layout)
	assert.Equal(t, 100, s.HistoryWindow)
	assert.False(t, s.LLMEnabled, "llm must default to disabled")
}
