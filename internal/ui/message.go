package ui

import (
	"strings"

	"calchat/internal/chat"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// bubbleStyle picks the bubble look for a role. Anything that is not the
// user renders as the assistant.
func bubbleStyle(s *Styles, role chat.Role) (lipgloss.Style, lipgloss.Position) {
	if role.IsUser() {
		return s.UserBubbleStyle, lipgloss.Right
	}
	return s.AssistantBubbleStyle, lipgloss.Left
}

// RenderMessage draws one chat message as a role label over a bubble,
// aligned within width. Bubbles wrap at 70% of the width.
func RenderMessage(s *Styles, m chat.Message, width int) string {
	if width <= 0 {
		width = 40
	}
	style, align := bubbleStyle(s, m.Role)

	limit := max(width*7/10-style.GetHorizontalFrameSize(), 8)
	text := wrap.String(wordwrap.String(m.Text, limit), limit)

	label := s.RoleLabelStyle.Render(string(m.Role))
	bubble := style.Render(text)

	return lipgloss.JoinVertical(align,
		lipgloss.PlaceHorizontal(width, align, label),
		lipgloss.PlaceHorizontal(width, align, bubble),
	)
}

// RenderTranscript renders messages in order separated by blank lines.
func RenderTranscript(s *Styles, msgs []chat.Message, width int) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, RenderMessage(s, m, width))
	}
	return strings.Join(parts, "\n\n")
}
