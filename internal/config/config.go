package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "UIGEN"

// Config holds application configuration.
type Config struct {
	Agent       AgentConfig   `mapstructure:"agent"`
	History     HistoryConfig `mapstructure:"history"`
	Log         LogConfig     `mapstructure:"log"`
	UI          UIConfig      `mapstructure:"ui"`
	Keybindings []Keybinding  `mapstructure:"keybinding"`
}

// AgentConfig holds planner settings.
type AgentConfig struct {
	Delay time.Duration `mapstructure:"delay"`
	Fuzzy bool          `mapstructure:"fuzzy"`
}

// HistoryConfig holds the sqlite history store settings.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Limit   int    `mapstructure:"limit"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// UIConfig holds the pane width ratios.
type UIConfig struct {
	ChatRatio    float64 `mapstructure:"chat_ratio"`
	CodeRatio    float64 `mapstructure:"code_ratio"`
	PreviewRatio float64 `mapstructure:"preview_ratio"`
}

// Keybinding replaces the keys of one action in one scope.
type Keybinding struct {
	Scope  string   `mapstructure:"scope"`
	Action string   `mapstructure:"action"`
	Keys   []string `mapstructure:"keys"`
}

// Path is the config file location: $UIGEN_CONFIG, else
// ~/.config/uigen/config.toml.
func Path() string {
	if p := os.Getenv(envPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(homeDir(), ".config", "uigen", "config.toml")
}

// LoadFrom reads the TOML file at path, if present, over the defaults and
// then applies env overrides.
func LoadFrom(path string) (Config, error) {
	return load(path, nil)
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"delay":     "agent.delay",
	"fuzzy":     "agent.fuzzy",
	"history":   "history.enabled",
	"log-level": "log.level",
}

// RegisterFlags adds the config-backed flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Duration("delay", 800*time.Millisecond, "simulated generation delay")
	fs.Bool("fuzzy", false, "match scenario keywords with one typo")
	fs.Bool("history", true, "record generations in the history database")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
}

// LoadWithFlags is LoadFrom with the flags from RegisterFlags taking
// precedence. Flags the user did not set leave file and env values alone.
func LoadWithFlags(path string, flags *pflag.FlagSet) (Config, error) {
	return load(path, func(v *viper.Viper) error {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
		return nil
	})
}

func load(path string, bind func(*viper.Viper) error) (Config, error) {
	v := viper.New()
	setDefaults(v)
	if bind != nil {
		if err := bind(v); err != nil {
			return Config{}, err
		}
	}

	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default is the configuration used when no file or env is present.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("agent.delay", 800*time.Millisecond)
	v.SetDefault("agent.fuzzy", false)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", filepath.Join(dataDir(), "uigen", "history.db"))
	v.SetDefault("history.limit", 50)
	v.SetDefault("log.path", filepath.Join(stateDir(), "uigen", "uigen.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.chat_ratio", 0.3)
	v.SetDefault("ui.code_ratio", 0.35)
	v.SetDefault("ui.preview_ratio", 0.35)
}

// Validate rejects values the app cannot run with.
func (c Config) Validate() error {
	if c.Agent.Delay < 0 {
		return fmt.Errorf("config: agent.delay must not be negative, got %s", c.Agent.Delay)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("config: history.limit must not be negative, got %d", c.History.Limit)
	}
	for name, r := range map[string]float64{
		"ui.chat_ratio":    c.UI.ChatRatio,
		"ui.code_ratio":    c.UI.CodeRatio,
		"ui.preview_ratio": c.UI.PreviewRatio,
	} {
		if r <= 0 {
			return fmt.Errorf("config: %s must be positive, got %g", name, r)
		}
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// SlogLevel parses Level (debug, info, warn, error).
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return slog.LevelInfo, err
	}
	return lvl, nil
}

// Save writes cfg to path, creating the config directory if needed.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("agent.delay", cfg.Agent.Delay.String())
	v.Set("agent.fuzzy", cfg.Agent.Fuzzy)
	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.path", cfg.History.Path)
	v.Set("history.limit", cfg.History.Limit)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.chat_ratio", cfg.UI.ChatRatio)
	v.Set("ui.code_ratio", cfg.UI.CodeRatio)
	v.Set("ui.preview_ratio", cfg.UI.PreviewRatio)
	if len(cfg.Keybindings) > 0 {
		items := make([]map[string]any, 0, len(cfg.Keybindings))
		for _, kb := range cfg.Keybindings {
			items = append(items, map[string]any{"scope": kb.Scope, "action": kb.Action, "keys": kb.Keys})
		}
		v.Set("keybinding", items)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

func dataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d
	}
	return filepath.Join(homeDir(), ".local", "share")
}

func stateDir() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return d
	}
	return filepath.Join(homeDir(), ".local", "state")
}
