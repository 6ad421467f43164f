package ui

import (
	"strings"
	"testing"

	"calchat/internal/config"

	"github.com/charmbracelet/lipgloss"
)

func TestNewStyles_UsesThemeColors(t *testing.T) {
	theme := &config.ThemeConfig{
		Primary:    "#FF0000",
		Accent:     "#00FF00",
		Muted:      "#0000FF",
		Background: "#000000",
		Text:       "#FFFFFF",
	}

	styles := NewStylesFromTheme(theme)

	if styles.ColorPrimary != lipgloss.Color("#FF0000") {
		t.Errorf("ColorPrimary = %v, want #FF0000", styles.ColorPrimary)
	}
	if styles.ColorAccent != lipgloss.Color("#00FF00") {
		t.Errorf("ColorAccent = %v, want #00FF00", styles.ColorAccent)
	}
	if styles.ColorMuted != lipgloss.Color("#0000FF") {
		t.Errorf("ColorMuted = %v, want #0000FF", styles.ColorMuted)
	}
	if styles.ColorBg != lipgloss.Color("#000000") {
		t.Errorf("ColorBg = %v, want #000000", styles.ColorBg)
	}
	if styles.ColorText != lipgloss.Color("#FFFFFF") {
		t.Errorf("ColorText = %v, want #FFFFFF", styles.ColorText)
	}

	// User bubbles follow the primary color.
	if got := styles.UserBubbleStyle.GetBackground(); got != lipgloss.Color("#FF0000") {
		t.Errorf("user bubble background = %v, want primary", got)
	}
}

func TestNewStyles_UsesDefaults(t *testing.T) {
	styles := NewStylesFromTheme(nil)

	if styles.ColorPrimary != lipgloss.Color("#0078D4") {
		t.Errorf("ColorPrimary = %v, want default #0078D4", styles.ColorPrimary)
	}
	if styles.ColorBgLight != lipgloss.Color("#E0E0E0") {
		t.Errorf("ColorBgLight = %v, want #E0E0E0", styles.ColorBgLight)
	}
}

func TestRenderHelp(t *testing.T) {
	setupTest(t)
	styles := createTestStyles()

	out := styles.RenderHelp("enter", "open", "tab", "chat")
	if out != "[enter] open  [tab] chat" {
		t.Errorf("RenderHelp() = %q", out)
	}
	if got := styles.RenderHelp("dangling"); strings.TrimSpace(got) != "" {
		t.Errorf("odd argument should be ignored, got %q", got)
	}
}
