package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders a help screen
type HelpOverlay struct {
	width    int
	height   int
	styles   *Styles
	global   GlobalKeyMap
	calendar CalendarKeyMap
	popup    PopupKeyMap
	chat     ChatKeyMap
}

// NewHelpOverlay creates a new help overlay listing the given bindings, so
// user overrides from the config show up here too.
func NewHelpOverlay(styles *Styles, global GlobalKeyMap, cal CalendarKeyMap, popup PopupKeyMap, chat ChatKeyMap) *HelpOverlay {
	return &HelpOverlay{
		styles:   styles,
		global:   global,
		calendar: cal,
		popup:    popup,
		chat:     chat,
	}
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	row := func(b *strings.Builder, bindings ...key.Binding) {
		for _, kb := range bindings {
			hp := kb.Help()
			b.WriteString(keyStyle.Render(hp.Key) + descStyle.Render(hp.Desc) + "\n")
		}
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("📅 calchat - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Global"))
	b.WriteString("\n")
	row(&b, h.global.NextFocus, h.global.Help, h.global.Quit)

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Calendar"))
	b.WriteString("\n")
	for _, group := range h.calendar.FullHelp() {
		row(&b, group...)
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Task Popup"))
	b.WriteString("\n")
	row(&b, h.popup.Save, h.popup.Cancel)

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Chat"))
	b.WriteString("\n")
	row(&b, h.chat.Send, h.chat.ScrollUp, h.chat.ScrollDown)
	b.WriteString(keyStyle.Render("ctrl+c") + descStyle.Render("quit while typing") + "\n")

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close"))

	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, overlayStyle.Render(b.String()))
}
