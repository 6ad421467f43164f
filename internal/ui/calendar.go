package ui

import (
	"fmt"
	"strings"
	"time"

	"calchat/internal/calendar"
	"calchat/internal/config"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// calendarSelection is what a key or click on the grid asked for.
type calendarSelection struct {
	// day is the chosen date; zero when nothing was selected
	day time.Time
	// event is set when the day already has a task and the user opened it
	event *calendar.Event
}

func (s calendarSelection) ok() bool {
	return !s.day.IsZero()
}

// Rows above the first week: title, separator, weekday labels.
const calendarHeaderRows = 3

// Each week takes a day-number line and a title line.
const calendarRowsPerWeek = 2

// CalendarPane shows one month as a grid with a movable day cursor.
type CalendarPane struct {
	cursor    time.Time
	weekStart time.Weekday
	grid      calendar.Grid
	events    []calendar.Event
	styles    *Styles
	keys      CalendarKeyMap
	focused   bool
	width     int
	height    int
	now       func() time.Time
}

// NewCalendarPane creates a pane with the cursor on today.
func NewCalendarPane(styles *Styles, keyCfg *config.KeysConfig, weekStart time.Weekday, now func() time.Time) *CalendarPane {
	if now == nil {
		now = time.Now
	}
	p := &CalendarPane{
		weekStart: weekStart,
		styles:    styles,
		keys:      NewCalendarKeyMap(keyCfg),
		now:       now,
	}
	p.setCursor(calendar.Day(now()))
	return p
}

// SetSize sets the pane dimensions.
func (p *CalendarPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane has focus.
func (p *CalendarPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane has focus.
func (p *CalendarPane) IsFocused() bool {
	return p.focused
}

// SetEvents replaces the events shown in the grid.
func (p *CalendarPane) SetEvents(events []calendar.Event) {
	p.events = events
}

// Month returns the month the cursor is in.
func (p *CalendarPane) Month() calendar.Month {
	return p.grid.Month
}

// Cursor returns the highlighted day.
func (p *CalendarPane) Cursor() time.Time {
	return p.cursor
}

// SetCursor moves the highlight to day, switching months if needed.
func (p *CalendarPane) SetCursor(day time.Time) {
	p.setCursor(calendar.Day(day))
}

func (p *CalendarPane) setCursor(day time.Time) {
	p.cursor = day
	if m := calendar.MonthOf(day); m != p.grid.Month || p.grid.Weeks == nil {
		p.grid = calendar.NewGrid(m, p.weekStart)
	}
}

// shiftMonth moves the cursor by delta months, keeping the day of month
// where possible (Jan 31 + 1 month lands on the last day of February).
func (p *CalendarPane) shiftMonth(delta int) {
	m := p.grid.Month
	for ; delta > 0; delta-- {
		m = m.Next()
	}
	for ; delta < 0; delta++ {
		m = m.Prev()
	}
	day := min(p.cursor.Day(), m.Days())
	p.setCursor(m.First().AddDate(0, 0, day-1))
}

// selectCursor returns the selection for the cursor day. forceSlot ignores
// any existing event.
func (p *CalendarPane) selectCursor(forceSlot bool) calendarSelection {
	sel := calendarSelection{day: p.cursor}
	if forceSlot {
		return sel
	}
	if ev, ok := calendar.EventOn(p.events, p.cursor); ok {
		sel.event = &ev
	}
	return sel
}

// Update handles keyboard and mouse input for the grid.
func (p *CalendarPane) Update(msg tea.Msg) calendarSelection {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Up):
			p.setCursor(p.cursor.AddDate(0, 0, -7))
		case key.Matches(msg, p.keys.Down):
			p.setCursor(p.cursor.AddDate(0, 0, 7))
		case key.Matches(msg, p.keys.Left):
			p.setCursor(p.cursor.AddDate(0, 0, -1))
		case key.Matches(msg, p.keys.Right):
			p.setCursor(p.cursor.AddDate(0, 0, 1))
		case key.Matches(msg, p.keys.NextMonth):
			p.shiftMonth(1)
		case key.Matches(msg, p.keys.PrevMonth):
			p.shiftMonth(-1)
		case key.Matches(msg, p.keys.Today):
			p.setCursor(calendar.Day(p.now()))
		case key.Matches(msg, p.keys.Open):
			return p.selectCursor(false)
		case key.Matches(msg, p.keys.NewTask):
			return p.selectCursor(true)
		}

	case tea.MouseMsg:
		return p.handleMouse(msg)
	}

	return calendarSelection{}
}

// handleMouse maps a click in pane-local coordinates onto a day cell.
// A left click selects like the open key.
func (p *CalendarPane) handleMouse(msg tea.MouseMsg) calendarSelection {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.shiftMonth(-1)
		return calendarSelection{}
	case tea.MouseButtonWheelDown:
		p.shiftMonth(1)
		return calendarSelection{}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return calendarSelection{}
		}
	default:
		return calendarSelection{}
	}

	// Pane border is one cell; horizontal padding one more.
	x := msg.X - 2
	y := msg.Y - 1 - calendarHeaderRows
	if x < 0 || y < 0 {
		return calendarSelection{}
	}

	day, ok := p.grid.At(y/calendarRowsPerWeek, x/p.cellWidth())
	if !ok {
		return calendarSelection{}
	}
	p.setCursor(day)
	return p.selectCursor(false)
}

// contentWidth is the usable width inside border and padding.
func (p *CalendarPane) contentWidth() int {
	return max(p.width-2, 7*4)
}

func (p *CalendarPane) cellWidth() int {
	return max(p.contentWidth()/7, 4)
}

// View renders the calendar pane.
func (p *CalendarPane) View() string {
	var b strings.Builder
	cw := p.cellWidth()
	width := cw * 7

	// Title
	title := p.styles.PaneTitleStyle.Render("◀ " + p.grid.Month.Title() + " ▶")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, title))
	b.WriteString("\n")
	b.WriteString(p.styles.SeparatorStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")

	// Weekday header
	cell := lipgloss.NewStyle().Width(cw)
	for _, label := range p.grid.WeekdayLabels() {
		b.WriteString(cell.Render(p.styles.WeekdayStyle.Render(label)))
	}
	b.WriteString("\n")

	today := calendar.Day(p.now())
	for _, week := range p.grid.Weeks {
		var nums, titles strings.Builder
		for _, day := range week {
			nums.WriteString(cell.Render(p.dayLabel(day, today)))
			titles.WriteString(cell.Render(p.eventLabel(day, cw-1)))
		}
		b.WriteString(nums.String())
		b.WriteString("\n")
		b.WriteString(titles.String())
		b.WriteString("\n")
	}

	// Full text of the highlighted day, since cells truncate.
	b.WriteString("\n")
	b.WriteString(p.styles.DetailDateStyle.Render(p.cursor.Format("Mon Jan 2, 2006")))
	b.WriteString("\n")
	if ev, ok := calendar.EventOn(p.events, p.cursor); ok && ev.Title != "" {
		b.WriteString(lipgloss.NewStyle().Width(width).Render(ev.Title))
	} else {
		b.WriteString(p.styles.EmptyStyle.Render("No task. Press 'a' to add one."))
	}

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(b.String())
}

func (p *CalendarPane) dayLabel(day, today time.Time) string {
	label := fmt.Sprintf("%2d", day.Day())
	switch {
	case calendar.SameDay(day, p.cursor) && p.focused:
		return p.styles.DayCursorStyle.Render(label)
	case calendar.SameDay(day, p.cursor):
		return p.styles.DayTodayStyle.Underline(true).Render(label)
	case calendar.SameDay(day, today):
		return p.styles.DayTodayStyle.Render(label)
	case !p.grid.Month.Contains(day):
		return p.styles.DayOtherMonthStyle.Render(label)
	default:
		return p.styles.DayStyle.Render(label)
	}
}

func (p *CalendarPane) eventLabel(day time.Time, width int) string {
	ev, ok := calendar.EventOn(p.events, day)
	if !ok || ev.Title == "" || width <= 0 {
		return ""
	}
	// First line only; the detail area shows the rest.
	title := strings.SplitN(ev.Title, "\n", 2)[0]
	title = runewidth.Truncate(title, width, "…")
	if !p.grid.Month.Contains(day) {
		return p.styles.EventTitleMuteStyle.Render(title)
	}
	return p.styles.EventTitleStyle.Render(title)
}
