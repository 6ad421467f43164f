package ui

import (
	"strings"

	"calchat/internal/chat"
	"calchat/internal/config"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ChatPane shows the conversation in a scrollable viewport above a
// single-line input.
type ChatPane struct {
	viewport viewport.Model
	input    textinput.Model
	messages []chat.Message
	pending  bool
	styles   *Styles
	keys     ChatKeyMap
	focused  bool
	width    int
	height   int
}

// NewChatPane creates an empty chat pane.
func NewChatPane(styles *Styles, keyCfg *config.KeysConfig) *ChatPane {
	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.Prompt = ""
	ti.CharLimit = 0

	return &ChatPane{
		viewport: viewport.New(40, 10),
		input:    ti,
		styles:   styles,
		keys:     NewChatKeyMap(keyCfg),
	}
}

// SetSize sets the pane dimensions.
func (p *ChatPane) SetSize(width, height int) {
	p.width = width
	p.height = height

	// Title, separator, blank line and input take four rows.
	p.viewport.Width = max(p.contentWidth(), 10)
	p.viewport.Height = max(height-4, 3)
	p.input.Width = max(p.contentWidth()-3, 5)
	p.refresh()
}

func (p *ChatPane) contentWidth() int {
	return p.width - 2
}

// SetFocused sets whether this pane has focus and returns the input's
// cursor command when it gains focus.
func (p *ChatPane) SetFocused(focused bool) tea.Cmd {
	p.focused = focused
	if focused {
		return p.input.Focus()
	}
	p.input.Blur()
	return nil
}

// IsFocused returns whether this pane has focus.
func (p *ChatPane) IsFocused() bool {
	return p.focused
}

// SetMessages replaces the rendered transcript and scrolls to the newest
// message.
func (p *ChatPane) SetMessages(msgs []chat.Message) {
	p.messages = msgs
	p.refresh()
	p.viewport.GotoBottom()
}

// SetPending toggles the waiting-for-reply indicator.
func (p *ChatPane) SetPending(pending bool) {
	p.pending = pending
	p.refresh()
	p.viewport.GotoBottom()
}

func (p *ChatPane) refresh() {
	content := RenderTranscript(p.styles, p.messages, p.viewport.Width)
	if len(p.messages) == 0 {
		content = p.styles.EmptyStyle.Render("Ask about your schedule, or just say hi.")
	}
	if p.pending {
		content += "\n\n" + p.styles.RoleLabelStyle.Render("assistant is typing…")
	}
	p.viewport.SetContent(content)
}

// Input returns the current input text.
func (p *ChatPane) Input() string {
	return p.input.Value()
}

// SetInput replaces the input text.
func (p *ChatPane) SetInput(s string) {
	p.input.SetValue(s)
}

// ResetInput clears the input.
func (p *ChatPane) ResetInput() {
	p.input.Reset()
}

// Update handles input for the chat pane. When the send key is pressed it
// returns the raw input text and true; the caller decides whether to send.
func (p *ChatPane) Update(msg tea.Msg) (string, bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Send):
			return p.input.Value(), true, nil
		case key.Matches(msg, p.keys.ScrollUp):
			p.viewport.ViewUp()
			return "", false, nil
		case key.Matches(msg, p.keys.ScrollDown):
			p.viewport.ViewDown()
			return "", false, nil
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return "", false, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return "", false, cmd
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return "", false, cmd
}

// View renders the chat pane.
func (p *ChatPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("💬 CHAT"))
	b.WriteString("\n")
	b.WriteString(p.styles.SeparatorStyle.Render(strings.Repeat("─", max(p.contentWidth(), 10))))
	b.WriteString("\n")
	b.WriteString(p.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(p.styles.InputPromptStyle.Render("> "))
	b.WriteString(p.input.View())

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(b.String())
}
