// Package ui provides terminal user interface components for calchat.
// This file contains the main App model which owns the shared state
// (transcript, events, popup selection, visible month) and routes messages
// between the calendar pane, the chat pane and the task popup.
package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"calchat/internal/calendar"
	"calchat/internal/chat"
	"calchat/internal/config"
	"calchat/internal/notify"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Replies shown in the chat when a request fails.
const (
	saveErrorReply = "Sorry, there was an error saving your task."
	chatErrorReply = "Sorry, there was an error processing your message."
)

// FocusID identifies which pane receives keyboard input.
type FocusID int

const (
	FocusCalendar FocusID = iota
	FocusChat
)

// LayoutMode determines how panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows calendar and chat side by side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the focused pane with a tab bar.
	LayoutNarrow
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	NarrowLayoutThreshold int
	WeekStart             time.Weekday
	Mouse                 bool
	ServerLabel           string

	// Notifier, when set, announces chat replies that arrive while the
	// terminal is in the background.
	Notifier notify.Notifier

	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// App is the main application model that coordinates all panes.
type App struct {
	backend      Backend
	styles       *Styles
	config       *AppConfig
	calendarPane *CalendarPane
	chatPane     *ChatPane
	popup        *TaskPopup
	helpOverlay  *HelpOverlay

	transcript   chat.Transcript
	events       []calendar.Event
	month        calendar.Month
	fetchSeq     uint64
	loading      bool
	chatPending  int
	selectedDate string
	selectedTask string

	focus       FocusID
	layoutMode  LayoutMode
	showHelp    bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool
	background  bool

	// Key bindings
	keys     GlobalKeyMap
	helpKeys HelpKeyMap

	// Pane positions for mouse click detection
	calendarEnd int
	chatStart   int
	contentTop  int
}

// NewApp creates a new application. The first month fetch is deferred to
// Init() to keep the constructor non-blocking.
func NewApp(backend Backend, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			NarrowLayoutThreshold: 100,
			WeekStart:             time.Sunday,
			Mouse:                 true,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	calendarPane := NewCalendarPane(styles, cfg.Keys, cfg.WeekStart, cfg.Now)
	chatPane := NewChatPane(styles, cfg.Keys)
	popup := NewTaskPopup(styles, cfg.Keys)
	globalKeys := NewGlobalKeyMap(cfg.Keys)

	app := &App{
		backend:      backend,
		styles:       styles,
		config:       cfg,
		calendarPane: calendarPane,
		chatPane:     chatPane,
		popup:        popup,
		helpOverlay: NewHelpOverlay(styles, globalKeys, calendarPane.keys,
			popup.keys, chatPane.keys),
		month:    calendarPane.Month(),
		focus:    FocusCalendar,
		keys:     globalKeys,
		helpKeys: DefaultHelpKeyMap(),
	}
	calendarPane.SetFocused(true)

	return app
}

// tickMsg is sent periodically for time updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the clock and loads the current month.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		a.requestMonth(),
	)
}

// requestMonth starts a fetch for the calendar's month. Each call takes a
// new sequence number; only the result carrying the latest one is applied.
func (a *App) requestMonth() tea.Cmd {
	a.fetchSeq++
	a.month = a.calendarPane.Month()
	a.loading = true
	return fetchMonthCmd(a.backend, a.fetchSeq, a.month)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Backend results are handled first, whatever has focus.
	switch msg := msg.(type) {
	case monthLoadedMsg:
		a.handleMonthLoaded(msg)
		return a, nil

	case taskSavedMsg:
		return a, a.handleTaskSaved(msg)

	case chatRepliedMsg:
		return a, a.handleChatReply(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case tea.BlurMsg:
		a.background = true
		return a, nil

	case tea.FocusMsg:
		a.background = false
		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()
	}

	// Anything else (cursor blinks) goes to whatever is taking text.
	if a.popup.IsOpen() {
		_, cmd := a.popup.Update(msg)
		return a, cmd
	}
	if a.focus == FocusChat {
		_, _, cmd := a.chatPane.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleMonthLoaded(msg monthLoadedMsg) {
	if msg.seq != a.fetchSeq {
		slog.Debug("discarding stale month", "month", msg.month.String(), "seq", msg.seq, "latest", a.fetchSeq)
		return
	}
	a.loading = false

	if msg.err != nil {
		slog.Error("error loading tasks", "month", msg.month.String(), "error", msg.err)
		a.SetStatus("Could not load "+msg.month.Title()+": "+msg.err.Error(), true)
		return
	}

	events, invalid := calendar.EventsFromTasks(msg.tasks)
	for _, date := range invalid {
		slog.Warn("skipping task with invalid date", "date", date, "month", msg.month.String())
	}
	a.events = events
	a.calendarPane.SetEvents(events)
}

func (a *App) handleTaskSaved(msg taskSavedMsg) tea.Cmd {
	if msg.err != nil {
		slog.Error("error saving task", "method", msg.req.method(), "date", msg.req.date, "error", msg.err)
		a.appendMessage(chat.Assistant(saveErrorReply))
		return nil
	}

	verb := "updated"
	if msg.req.create {
		verb = "added"
	}
	a.appendMessage(chat.Assistant(fmt.Sprintf("Task %s for %s: %s", verb, msg.req.date, msg.req.text)))
	return a.requestMonth()
}

func (a *App) handleChatReply(msg chatRepliedMsg) tea.Cmd {
	if a.chatPending > 0 {
		a.chatPending--
	}
	a.chatPane.SetPending(a.chatPending > 0)

	if msg.err != nil {
		slog.Error("error sending chat message", "error", msg.err)
		a.appendMessage(chat.Assistant(chatErrorReply))
		return nil
	}

	reply := msg.reply
	if reply.Role == "" {
		reply.Role = chat.RoleAssistant
	}
	a.appendMessage(reply)

	if a.background && a.config.Notifier != nil {
		return notifyCmd(a.config.Notifier, "calchat", reply.Text)
	}
	return nil
}

func (a *App) appendMessage(m chat.Message) {
	a.transcript.Append(m)
	a.chatPane.SetMessages(a.transcript.Messages())
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	// ctrl+c always quits, even while typing.
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return tea.Quit
	}

	if a.popup.IsOpen() {
		action, cmd := a.popup.Update(msg)
		switch action {
		case popupSave:
			return a.savePopup()
		case popupCancel:
			a.closePopup()
			return nil
		}
		return cmd
	}

	// Help overlay takes priority
	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return nil
	}

	if a.focus == FocusChat {
		if key.Matches(msg, a.keys.NextFocus) {
			return a.setFocus(FocusCalendar)
		}
		text, send, cmd := a.chatPane.Update(msg)
		if send {
			return a.sendChat(text)
		}
		return cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return nil

	case key.Matches(msg, a.keys.NextFocus):
		return a.setFocus(FocusChat)
	}

	return a.afterCalendar(a.calendarPane.Update(msg))
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.popup.IsOpen() {
		return nil
	}

	// Any click closes help
	if a.showHelp {
		if msg.Action == tea.MouseActionPress {
			a.showHelp = false
		}
		return nil
	}

	// In narrow mode, the tab bar sits right above the pane.
	if a.layoutMode == LayoutNarrow && msg.Y == a.contentTop-1 {
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if msg.X < a.width/2 {
			return a.setFocus(FocusCalendar)
		}
		return a.setFocus(FocusChat)
	}

	if msg.Y < a.contentTop {
		return nil
	}

	var cmds []tea.Cmd
	pane := a.paneAtPosition(msg.X)
	if pane != a.focus && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		cmds = append(cmds, a.setFocus(pane))
	}

	localMsg := msg
	localMsg.Y = msg.Y - a.contentTop
	switch pane {
	case FocusCalendar:
		cmds = append(cmds, a.afterCalendar(a.calendarPane.Update(localMsg)))
	case FocusChat:
		if a.layoutMode == LayoutWide {
			localMsg.X = msg.X - a.chatStart
		}
		_, _, cmd := a.chatPane.Update(localMsg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// afterCalendar reacts to a calendar interaction: a month change triggers
// a fetch and a selection opens the popup.
func (a *App) afterCalendar(sel calendarSelection) tea.Cmd {
	var cmds []tea.Cmd
	if a.calendarPane.Month() != a.month {
		cmds = append(cmds, a.requestMonth())
	}
	if sel.ok() {
		cmds = append(cmds, a.openPopup(sel))
	}
	return tea.Batch(cmds...)
}

// openPopup records the selection and shows the popup. A day without a
// task, or with an empty one, opens in create mode.
func (a *App) openPopup(sel calendarSelection) tea.Cmd {
	a.selectedDate = calendar.FormatDate(sel.day)
	a.selectedTask = ""
	if sel.event != nil {
		a.selectedTask = sel.event.Title
	}
	return a.popup.Open(a.selectedDate, a.selectedTask)
}

// savePopup turns the popup contents into a create or update request and
// closes the popup. The request goes out as POST when the day had no task.
func (a *App) savePopup() tea.Cmd {
	req := saveRequest{
		date:   a.selectedDate,
		text:   a.popup.Value(),
		create: a.selectedTask == "",
	}
	a.closePopup()
	return saveTaskCmd(a.backend, req)
}

func (a *App) closePopup() {
	a.popup.Close()
	a.selectedDate = ""
	a.selectedTask = ""
}

// sendChat appends the user's message and posts it. Blank input is ignored
// and left in place.
func (a *App) sendChat(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	a.appendMessage(chat.User(text))
	a.chatPane.ResetInput()
	a.chatPending++
	a.chatPane.SetPending(true)
	return sendChatCmd(a.backend, text)
}

// setFocus moves keyboard focus to pane.
func (a *App) setFocus(pane FocusID) tea.Cmd {
	a.focus = pane
	a.calendarPane.SetFocused(pane == FocusCalendar)
	return a.chatPane.SetFocused(pane == FocusChat)
}

// paneAtPosition returns which pane is at the given X coordinate.
func (a *App) paneAtPosition(x int) FocusID {
	if a.layoutMode == LayoutNarrow {
		return a.focus
	}
	if x < a.calendarEnd {
		return FocusCalendar
	}
	return FocusChat
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for title bar and help bar
	contentHeight := max(a.height-2, 12)
	a.contentTop = 1

	a.helpOverlay.SetSize(a.width, a.height)
	a.popup.SetSize(a.width, a.height)

	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 100
	}

	// Pane sizes exclude the one-cell border on each side.
	if a.width < threshold {
		a.layoutMode = LayoutNarrow
		paneWidth := max(a.width-2, 30)
		paneHeight := max(contentHeight-3, 10)
		a.calendarPane.SetSize(paneWidth, paneHeight)
		a.chatPane.SetSize(paneWidth, paneHeight)
		a.calendarEnd = a.width
		a.chatStart = 0
		// Content starts after the tab bar in narrow mode
		a.contentTop = 2
		return
	}

	a.layoutMode = LayoutWide
	calendarWidth := a.width * 55 / 100
	chatWidth := a.width - calendarWidth - 1
	a.calendarPane.SetSize(calendarWidth-2, contentHeight-2)
	a.chatPane.SetSize(chatWidth-2, contentHeight-2)
	a.calendarEnd = calendarWidth
	a.chatStart = calendarWidth + 1
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return "\n  See you later!\n\n"
	}

	if a.popup.IsOpen() {
		return a.popup.Overlay()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderPaneTabs())
		b.WriteString("\n")
		if a.focus == FocusChat {
			b.WriteString(a.chatPane.View())
		} else {
			b.WriteString(a.calendarPane.View())
		}
	default:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			a.calendarPane.View(), " ", a.chatPane.View()))
	}
	b.WriteString("\n")

	b.WriteString(a.renderHelpBar())
	return b.String()
}

// renderPaneTabs renders a tab bar showing available panes.
func (a *App) renderPaneTabs() string {
	tabs := []struct {
		id    FocusID
		label string
	}{
		{FocusCalendar, "Calendar"},
		{FocusChat, "Chat"},
	}

	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var parts []string
	for _, tab := range tabs {
		if tab.id == a.focus {
			parts = append(parts, activeTabStyle.Render("["+tab.label+"]"))
		} else {
			parts = append(parts, inactiveTabStyle.Render(" "+tab.label+" "))
		}
	}

	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, strings.Join(parts, "  "))
}

// renderTitleBar creates the top title bar with the month and clock.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" calchat ")

	month := a.styles.PaneTitleStyle.Render(a.month.Title())
	if a.loading {
		month += a.styles.DateStyle.Render("  loading…")
	}

	var server string
	if a.config.ServerLabel != "" {
		server = a.styles.DateStyle.Render(a.config.ServerLabel + "  ")
	}
	date := a.styles.DateStyle.Render(a.config.Now().Format("Mon Jan 2 · 15:04"))

	left := title + "  " + month
	right := server + date
	spacer := max(a.width-lipgloss.Width(left)-lipgloss.Width(right), 2)

	return left + strings.Repeat(" ", spacer) + right
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if a.focus == FocusChat {
		return a.styles.RenderHelp(
			"enter", "send",
			"pgup/pgdn", "scroll",
			"tab", "calendar",
			"ctrl+c", "quit",
		)
	}

	return a.styles.RenderHelp(
		"enter", "open",
		"a", "add",
		"n/p", "month",
		"t", "today",
		"tab", "chat",
		"?", "help",
	)
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Events returns the events currently shown.
func (a *App) Events() []calendar.Event {
	return a.events
}

// Messages returns a copy of the chat transcript.
func (a *App) Messages() []chat.Message {
	return a.transcript.Messages()
}

// Month returns the month whose tasks were last requested.
func (a *App) Month() calendar.Month {
	return a.month
}

// Run starts the Bubble Tea program against backend.
func Run(backend Backend, styles *Styles, cfg *AppConfig) error {
	app := NewApp(backend, styles, cfg)
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if app.config.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	if app.config.Notifier != nil {
		opts = append(opts, tea.WithReportFocus())
	}
	_, err := tea.NewProgram(app, opts...).Run()
	return err
}
