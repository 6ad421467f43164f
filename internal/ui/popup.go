package ui

import (
	"strings"

	"calchat/internal/config"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PopupMode is the task popup's state.
type PopupMode int

const (
	// PopupClosed means no popup is shown.
	PopupClosed PopupMode = iota
	// PopupCreate edits a day with no task yet.
	PopupCreate
	// PopupEdit edits a day's existing task.
	PopupEdit
)

func (m PopupMode) String() string {
	switch m {
	case PopupCreate:
		return "create"
	case PopupEdit:
		return "edit"
	default:
		return "closed"
	}
}

// popupAction tells the app what a key press in the popup asked for.
type popupAction int

const (
	popupNone popupAction = iota
	popupSave
	popupCancel
)

// TaskPopup is a modal editor for a single day's task text.
type TaskPopup struct {
	mode    PopupMode
	date    string
	initial string
	opened  string // editor value right after Open, for spotting edits
	area    textarea.Model
	styles  *Styles
	keys    PopupKeyMap
	width   int
	height  int
}

// NewTaskPopup creates a closed popup.
func NewTaskPopup(styles *Styles, keyCfg *config.KeysConfig) *TaskPopup {
	ta := textarea.New()
	ta.Placeholder = "Describe the task…"
	ta.ShowLineNumbers = false
	// Existing tasks can be any length.
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(40)
	ta.SetHeight(5)

	return &TaskPopup{
		area:   ta,
		styles: styles,
		keys:   NewPopupKeyMap(keyCfg),
	}
}

// SetSize sets the terminal dimensions the popup is centered in.
func (p *TaskPopup) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.area.SetWidth(p.boxWidth() - 6)
}

func (p *TaskPopup) boxWidth() int {
	if p.width <= 0 {
		return 60
	}
	return min(60, max(24, p.width-4))
}

// Open shows the popup for date. An empty text opens it in create mode,
// anything else in edit mode prefilled with text.
func (p *TaskPopup) Open(date, text string) tea.Cmd {
	p.mode = PopupEdit
	if text == "" {
		p.mode = PopupCreate
	}
	p.date = date
	p.setText(text)
	return p.area.Focus()
}

// Close hides the popup and forgets its contents.
func (p *TaskPopup) Close() {
	p.mode = PopupClosed
	p.date = ""
	p.initial = ""
	p.opened = ""
	p.area.Reset()
	p.area.Blur()
}

// IsOpen reports whether the popup is shown.
func (p *TaskPopup) IsOpen() bool {
	return p.mode != PopupClosed
}

// Mode returns the popup state.
func (p *TaskPopup) Mode() PopupMode {
	return p.mode
}

// Date returns the day being edited.
func (p *TaskPopup) Date() string {
	return p.date
}

// Value returns the current editor text. Until the user edits it, that is
// exactly the text the popup was given, even where the editor normalizes
// tabs or line endings.
func (p *TaskPopup) Value() string {
	if v := p.area.Value(); v != p.opened {
		return v
	}
	return p.initial
}

// SetValue replaces the editor text.
func (p *TaskPopup) SetValue(text string) {
	p.setText(text)
}

func (p *TaskPopup) setText(text string) {
	p.initial = text
	p.area.SetValue(text)
	p.opened = p.area.Value()
}

// Update handles a message while the popup is open.
func (p *TaskPopup) Update(msg tea.Msg) (popupAction, tea.Cmd) {
	if !p.IsOpen() {
		return popupNone, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, p.keys.Save):
			return popupSave, nil
		case key.Matches(msg, p.keys.Cancel):
			return popupCancel, nil
		}
	}

	var cmd tea.Cmd
	p.area, cmd = p.area.Update(msg)
	return popupNone, cmd
}

// View renders the popup box without placement.
func (p *TaskPopup) View() string {
	title := "Add Task for " + p.date
	if p.mode == PopupEdit {
		title = "Edit Task for " + p.date
	}

	var b strings.Builder
	b.WriteString(p.styles.PopupTitleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(p.area.View())
	b.WriteString("\n\n")
	b.WriteString(p.styles.RenderHelp(
		p.keys.Save.Help().Key, "save",
		p.keys.Cancel.Help().Key, "cancel",
	))

	return p.styles.PopupStyle.Width(p.boxWidth()).Render(b.String())
}

// Overlay renders the popup centered in the terminal.
func (p *TaskPopup) Overlay() string {
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, p.View())
}
