// Package ui provides terminal user interface components for calchat.
// This file defines key bindings using the Bubble Tea key package so
// matching, help text and user overrides share one definition.
package ui

import (
	"strings"

	"calchat/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		if trimmed := strings.TrimSpace(k); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultKeys
	}
	return result
}

// =============================================================================
// Global Keys
// =============================================================================

// GlobalKeyMap defines keys available outside text input.
type GlobalKeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	NextFocus key.Binding
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextFocus, "tab")...),
			key.WithHelp("tab", "switch pane"),
		),
	}
}

// =============================================================================
// Calendar Keys
// =============================================================================

// CalendarKeyMap defines keys for the month grid.
type CalendarKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	NextMonth key.Binding
	PrevMonth key.Binding
	Today     key.Binding
	Open      key.Binding
	NewTask   key.Binding
}

// NewCalendarKeyMap creates calendar key bindings from config.
func NewCalendarKeyMap(cfg *config.KeysConfig) CalendarKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return CalendarKeyMap{
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "previous week"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "next week"),
		),
		Left: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Left, "h", "left")...),
			key.WithHelp("h/←", "previous day"),
		),
		Right: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Right, "l", "right")...),
			key.WithHelp("l/→", "next day"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextMonth, "n", "]")...),
			key.WithHelp("n", "next month"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys(parseKeys(cfg.PrevMonth, "p", "[")...),
			key.WithHelp("p", "previous month"),
		),
		Today: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Today, "t")...),
			key.WithHelp("t", "today"),
		),
		Open: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Open, "enter", "e")...),
			key.WithHelp("enter", "open day"),
		),
		NewTask: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NewTask, "a")...),
			key.WithHelp("a", "new task"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k CalendarKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.NewTask, k.NextMonth, k.PrevMonth}
}

// FullHelp implements help.KeyMap.
func (k CalendarKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.NewTask, k.Today},
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextMonth, k.PrevMonth},
	}
}

// =============================================================================
// Popup Keys
// =============================================================================

// PopupKeyMap defines keys for the task popup.
type PopupKeyMap struct {
	Save   key.Binding
	Cancel key.Binding
}

// NewPopupKeyMap creates popup key bindings from config.
func NewPopupKeyMap(cfg *config.KeysConfig) PopupKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return PopupKeyMap{
		Save: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Save, "ctrl+s")...),
			key.WithHelp("ctrl+s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// =============================================================================
// Chat Keys
// =============================================================================

// ChatKeyMap defines keys for the chat pane.
type ChatKeyMap struct {
	Send       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

// NewChatKeyMap creates chat key bindings from config.
func NewChatKeyMap(cfg *config.KeysConfig) ChatKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return ChatKeyMap{
		Send: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Send, "enter")...),
			key.WithHelp("enter", "send"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ScrollUp, "pgup")...),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ScrollDown, "pgdown")...),
			key.WithHelp("pgdn", "scroll down"),
		),
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
