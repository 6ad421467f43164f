// Package config handles configuration loading and defaults for calchat.
// Configuration is read from XDG-compliant paths, typically
// ~/.config/calchat/config.yaml (config.toml is accepted as well).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"calchat/internal/fsutil"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Server is the task/chat backend
	Server ServerConfig `yaml:"server,omitempty" toml:"server"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty" toml:"theme"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty" toml:"keys"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty" toml:"ux"`

	// Log configures the log file
	Log LogConfig `yaml:"log,omitempty" toml:"log"`

	// Notify configures desktop notifications
	Notify NotifyConfig `yaml:"notify,omitempty" toml:"notify"`
}

// ServerConfig points the client at the backend.
type ServerConfig struct {
	// URL is the base address, e.g. "http://localhost:8000"
	URL string `yaml:"url,omitempty" toml:"url"`

	// Timeout bounds each request ("30s", "1m"); "0" disables it
	Timeout string `yaml:"timeout,omitempty" toml:"timeout"`
}

// ThemeConfig defines color settings.
type ThemeConfig struct {
	// Primary color for focused elements and user bubbles (hex, e.g., "#FF5733")
	Primary string `yaml:"primary,omitempty" toml:"primary"`

	// Accent color for highlights (hex)
	Accent string `yaml:"accent,omitempty" toml:"accent"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty" toml:"muted"`

	// Background color (hex)
	Background string `yaml:"background,omitempty" toml:"background"`

	// Text color (hex)
	Text string `yaml:"text,omitempty" toml:"text"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "tab", "j,down"
type KeysConfig struct {
	// Global keys
	Quit      string `yaml:"quit,omitempty" toml:"quit"`             // default: "q,ctrl+c"
	Help      string `yaml:"help,omitempty" toml:"help"`             // default: "?"
	NextFocus string `yaml:"next_focus,omitempty" toml:"next_focus"` // default: "tab"

	// Calendar keys
	Up        string `yaml:"up,omitempty" toml:"up"`                 // default: "k,up"
	Down      string `yaml:"down,omitempty" toml:"down"`             // default: "j,down"
	Left      string `yaml:"left,omitempty" toml:"left"`             // default: "h,left"
	Right     string `yaml:"right,omitempty" toml:"right"`           // default: "l,right"
	NextMonth string `yaml:"next_month,omitempty" toml:"next_month"` // default: "n,]"
	PrevMonth string `yaml:"prev_month,omitempty" toml:"prev_month"` // default: "p,["
	Today     string `yaml:"today,omitempty" toml:"today"`           // default: "t"
	Open      string `yaml:"open,omitempty" toml:"open"`             // default: "enter,e"
	NewTask   string `yaml:"new_task,omitempty" toml:"new_task"`     // default: "a"

	// Popup keys
	Save   string `yaml:"save,omitempty" toml:"save"`     // default: "ctrl+s"
	Cancel string `yaml:"cancel,omitempty" toml:"cancel"` // default: "esc"

	// Chat keys
	Send       string `yaml:"send,omitempty" toml:"send"`               // default: "enter"
	ScrollUp   string `yaml:"scroll_up,omitempty" toml:"scroll_up"`     // default: "pgup"
	ScrollDown string `yaml:"scroll_down,omitempty" toml:"scroll_down"` // default: "pgdown"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// NarrowLayoutThreshold is the terminal width below which calendar and
	// chat are stacked instead of side by side
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty" toml:"narrow_layout_threshold"` // default: 100

	// WeekStart is "sunday" or "monday"
	WeekStart string `yaml:"week_start,omitempty" toml:"week_start"` // default: "sunday"

	// Mouse enables clicking calendar cells
	Mouse bool `yaml:"mouse" toml:"mouse"` // default: true
}

// LogConfig defines where and how much to log.
type LogConfig struct {
	// Path of the log file (default ~/.calchat/calchat.log)
	Path string `yaml:"path,omitempty" toml:"path"`

	// Level is debug, info, warn or error
	Level string `yaml:"level,omitempty" toml:"level"` // default: "info"
}

// NotifyConfig controls desktop notifications for chat replies that arrive
// while the terminal is in the background.
type NotifyConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"` // default: false
	Sound   bool `yaml:"sound" toml:"sound"`     // default: false
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "http://localhost:8000",
			Timeout: "30s",
		},
		Theme: ThemeConfig{
			Primary:    "#0078D4", // Blue
			Accent:     "#10B981", // Emerald
			Muted:      "#6B7280", // Gray
			Background: "",        // Terminal default
			Text:       "",        // Terminal default
		},
		Keys: KeysConfig{
			// Empty strings mean built-in defaults
		},
		UX: UXConfig{
			NarrowLayoutThreshold: 100,
			WeekStart:             "sunday",
			Mouse:                 true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "calchat")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "calchat")
}

// Path returns the config file that Load would read: config.yaml, or
// config.toml when only that one exists.
func Path() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	yamlPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}
	tomlPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath
	}
	return yamlPath
}

// Load reads configuration from the default location, merging with
// defaults. A missing file yields the defaults.
func Load() (*Config, error) {
	path := Path()
	if path == "" {
		return Default(), nil
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads the given YAML or TOML file (chosen by extension) and
// merges it over the defaults. The result is not validated; callers apply
// their overrides first and then call Validate.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var (
		userCfg Config
		has     presence
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), &userCfg)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		has = md.IsDefined
	default:
		if err := yaml.Unmarshal(data, &userCfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err == nil {
			has = func(path ...string) bool { return yamlHasPath(&doc, path...) }
		}
	}

	cfg := Default()
	cfg.merge(&userCfg, has)
	return cfg, nil
}

// presence reports whether a key path was written in the source file.
type presence func(path ...string) bool

// merge applies non-empty values from other, and booleans only when the
// source file actually sets them. A nil has leaves booleans at defaults.
func (c *Config) merge(other *Config, has presence) {
	setString(&c.Server.URL, other.Server.URL)
	setString(&c.Server.Timeout, other.Server.Timeout)

	setString(&c.Theme.Primary, other.Theme.Primary)
	setString(&c.Theme.Accent, other.Theme.Accent)
	setString(&c.Theme.Muted, other.Theme.Muted)
	setString(&c.Theme.Background, other.Theme.Background)
	setString(&c.Theme.Text, other.Theme.Text)

	k, o := &c.Keys, &other.Keys
	for dst, src := range map[*string]string{
		&k.Quit: o.Quit, &k.Help: o.Help, &k.NextFocus: o.NextFocus,
		&k.Up: o.Up, &k.Down: o.Down, &k.Left: o.Left, &k.Right: o.Right,
		&k.NextMonth: o.NextMonth, &k.PrevMonth: o.PrevMonth, &k.Today: o.Today,
		&k.Open: o.Open, &k.NewTask: o.NewTask,
		&k.Save: o.Save, &k.Cancel: o.Cancel,
		&k.Send: o.Send, &k.ScrollUp: o.ScrollUp, &k.ScrollDown: o.ScrollDown,
	} {
		setString(dst, src)
	}

	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}
	setString(&c.UX.WeekStart, other.UX.WeekStart)
	if has != nil && has("ux", "mouse") {
		c.UX.Mouse = other.UX.Mouse
	}

	setString(&c.Log.Path, other.Log.Path)
	setString(&c.Log.Level, other.Log.Level)

	// Both default to false, so a set value always wins.
	c.Notify.Enabled = other.Notify.Enabled
	c.Notify.Sound = other.Notify.Sound
}

func setString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server.url %q: must be an http(s) URL", c.Server.URL)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	if _, err := c.FirstWeekday(); err != nil {
		return err
	}
	return nil
}

// RequestTimeout parses Server.Timeout. Empty or "0" means no timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.Server.Timeout == "" || c.Server.Timeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Server.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("server.timeout %q: must be a duration like 30s", c.Server.Timeout)
	}
	return d, nil
}

// FirstWeekday returns the weekday the calendar grid starts on.
func (c *Config) FirstWeekday() (time.Weekday, error) {
	switch strings.ToLower(c.UX.WeekStart) {
	case "", "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("ux.week_start %q: must be sunday or monday", c.UX.WeekStart)
	}
}

// DefaultFile returns the YAML file that config init writes, or "" when
// no home directory is known.
func DefaultFile() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// SaveFile writes the configuration as YAML to path atomically.
func (c *Config) SaveFile(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
	default:
		return fmt.Errorf("%s: config is written as YAML, use a .yaml path", path)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}
