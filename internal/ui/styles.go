package ui

import (
	"calchat/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorBg        lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Frame
	TitleStyle       lipgloss.Style
	DateStyle        lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style
	SeparatorStyle   lipgloss.Style

	// Calendar grid
	WeekdayStyle        lipgloss.Style
	DayStyle            lipgloss.Style
	DayOtherMonthStyle  lipgloss.Style
	DayTodayStyle       lipgloss.Style
	DayCursorStyle      lipgloss.Style
	EventTitleStyle     lipgloss.Style
	EventTitleMuteStyle lipgloss.Style
	DetailDateStyle     lipgloss.Style

	// Chat bubbles
	UserBubbleStyle      lipgloss.Style
	AssistantBubbleStyle lipgloss.Style
	RoleLabelStyle       lipgloss.Style

	// Popup
	PopupStyle      lipgloss.Style
	PopupTitleStyle lipgloss.Style

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	InputPromptStyle lipgloss.Style
	EmptyStyle       lipgloss.Style
}

// NewStylesFromTheme creates a new Styles instance from a ThemeConfig.
// If a theme color is empty, it uses the appropriate default.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	if theme == nil {
		theme = &config.ThemeConfig{}
	}
	s := &Styles{}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#0078D4")
	s.ColorSecondary = colorOrDefault(theme.Accent, "#10B981")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")

	// Fixed semantic colors (not configurable from theme)
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color("#F59E0B")
	s.ColorSuccess = lipgloss.Color("#10B981")
	s.ColorAccent = colorOrDefault(theme.Accent, "#3B82F6")

	s.ColorBg = colorOrDefault(theme.Background, "#1F2937")
	s.ColorBgLight = lipgloss.Color("#E0E0E0")
	s.ColorText = colorOrDefault(theme.Text, "#F9FAFB")
	s.ColorTextMuted = lipgloss.Color("#9CA3AF")

	s.initComponentStyles()

	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

func (s *Styles) initComponentStyles() {
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	s.PaneFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(0, 1)

	s.PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary)

	s.SeparatorStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	// Calendar
	s.WeekdayStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Bold(true)

	s.DayStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.DayOtherMonthStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.DayTodayStyle = lipgloss.NewStyle().
		Foreground(s.ColorSecondary).
		Bold(true)

	s.DayCursorStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Bold(true)

	s.EventTitleStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent)

	s.EventTitleMuteStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.DetailDateStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning).
		Bold(true)

	// Chat
	s.UserBubbleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.AssistantBubbleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(s.ColorBgLight).
		Padding(0, 1)

	s.RoleLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Italic(true)

	// Popup
	s.PopupStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(1, 2)

	s.PopupTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary)

	// Help bar
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Status messages
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.EmptyStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Italic(true)
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i+1 < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		result += s.HelpKeyStyle.Render("["+keys[i]+"]") + " " + s.HelpStyle.Render(keys[i+1])
	}
	return result
}
