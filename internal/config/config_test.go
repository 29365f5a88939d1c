package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 800*time.Millisecond, cfg.Agent.Delay)
	assert.False(t, cfg.Agent.Fuzzy)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 50, cfg.History.Limit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.InDelta(t, 0.3, cfg.UI.ChatRatio, 1e-9)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileAndKeybindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[agent]
delay = "10ms"
fuzzy = true

[history]
enabled = false
limit = 5

[ui]
chat_ratio = 0.5

[[keybinding]]
scope = "global"
action = "reset"
keys = ["ctrl+x"]
`), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, cfg.Agent.Delay)
	assert.True(t, cfg.Agent.Fuzzy)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 5, cfg.History.Limit)
	assert.InDelta(t, 0.5, cfg.UI.ChatRatio, 1e-9)
	assert.InDelta(t, 0.35, cfg.UI.CodeRatio, 1e-9)
	require.Len(t, cfg.Keybindings, 1)
	assert.Equal(t, Keybinding{Scope: "global", Action: "reset", Keys: []string{"ctrl+x"}}, cfg.Keybindings[0])
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("UIGEN_AGENT_DELAY", "0s")
	t.Setenv("UIGEN_LOG_LEVEL", "debug")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.Agent.Delay)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv("UIGEN_CONFIG", "/tmp/custom.toml")
	assert.Equal(t, "/tmp/custom.toml", Path())
}

func TestValidateRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ncode_ratio = 0\n"), 0o644))
	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.code_ratio")

	cfg := Default()
	cfg.Log.Level = "loud"
	assert.Error(t, cfg.Validate())
}

func TestMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[agent\n"), 0o644))
	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Agent.Fuzzy = true
	cfg.Agent.Delay = 250 * time.Millisecond
	cfg.History.Limit = 7
	cfg.Keybindings = []Keybinding{{Scope: "global", Action: "history", Keys: []string{"ctrl+h"}}}
	require.NoError(t, Save(cfg, path))

	back, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[agent]\ndelay = \"10ms\"\n[log]\nlevel = \"warn\"\n"), 0o644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--fuzzy", "--delay=0s", "--history=false"}))

	cfg, err := LoadWithFlags(path, flags)
	require.NoError(t, err)
	assert.True(t, cfg.Agent.Fuzzy)
	assert.Equal(t, time.Duration(0), cfg.Agent.Delay)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "warn", cfg.Log.Level, "unset flags keep the file value")
}
