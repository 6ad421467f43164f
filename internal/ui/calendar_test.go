package ui

import (
	"strings"
	"testing"
	"time"

	"calchat/internal/calendar"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestCalendar(t *testing.T, weekStart time.Weekday) *CalendarPane {
	t.Helper()
	setupTest(t)
	p := NewCalendarPane(createTestStyles(), nil, weekStart, fixedNow)
	p.SetSize(64, 30)
	p.SetFocused(true)
	return p
}

func TestCalendarPane_StartsOnToday(t *testing.T) {
	p := newTestCalendar(t, time.Sunday)

	if !calendar.SameDay(p.Cursor(), fixedNow()) {
		t.Errorf("cursor = %v, want today", p.Cursor())
	}
	if p.Month() != may2024 {
		t.Errorf("Month() = %v, want 2024-05", p.Month())
	}
}

func TestCalendarPane_CursorMovement(t *testing.T) {
	tests := []struct {
		key  string
		want time.Time
	}{
		{"l", day(2024, 5, 16)},
		{"right", day(2024, 5, 16)},
		{"h", day(2024, 5, 14)},
		{"j", day(2024, 5, 22)},
		{"k", day(2024, 5, 8)},
		{"n", day(2024, 6, 15)},
		{"]", day(2024, 6, 15)},
		{"p", day(2024, 4, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			p := newTestCalendar(t, time.Sunday)
			if sel := p.Update(keyMsg(tt.key)); sel.ok() {
				t.Error("movement should not select")
			}
			if !calendar.SameDay(p.Cursor(), tt.want) {
				t.Errorf("cursor = %s, want %s", calendar.FormatDate(p.Cursor()), calendar.FormatDate(tt.want))
			}
		})
	}
}

func TestCalendarPane_CrossMonthArrow(t *testing.T) {
	p := newTestCalendar(t, time.Sunday)
	p.SetCursor(day(2024, 5, 31))

	p.Update(keyMsg("l"))
	if p.Month() != june2024 {
		t.Errorf("Month() = %v, want 2024-06", p.Month())
	}
}

func TestCalendarPane_MonthShiftClampsDay(t *testing.T) {
	p := newTestCalendar(t, time.Sunday)
	p.SetCursor(day(2024, 1, 31))

	p.Update(keyMsg("n"))
	if !calendar.SameDay(p.Cursor(), day(2024, 2, 29)) {
		t.Errorf("cursor = %s, want 2024-02-29", calendar.FormatDate(p.Cursor()))
	}
}

func TestCalendarPane_TodayKey(t *testing.T) {
	p := newTestCalendar(t, time.Sunday)
	p.SetCursor(day(2023, 12, 1))

	p.Update(keyMsg("t"))
	if !calendar.SameDay(p.Cursor(), fixedNow()) {
		t.Errorf("cursor = %v, want today", p.Cursor())
	}
}

func TestCalendarPane_Selection(t *testing.T) {
	p := newTestCalendar(t, time.Sunday)
	p.SetEvents([]calendar.Event{{Start: day(2024, 5, 15), End: day(2024, 5, 15), Title: "Standup"}})

	sel := p.Update(keyMsg("enter"))
	if !sel.ok() || sel.event == nil || sel.event.Title != "Standup" {
		t.Errorf("enter on an event day = %+v", sel)
	}

	sel = p.Update(keyMsg("a"))
	if !sel.ok() || sel.event != nil {
		t.Errorf("a should select the empty slot, got %+v", sel)
	}

	p.SetCursor(day(2024, 5, 16))
	sel = p.Update(keyMsg("enter"))
	if !sel.ok() || sel.event != nil {
		t.Errorf("enter on an empty day = %+v", sel)
	}
}

func TestCalendarPane_MouseWheelChangesMonth(t *testing.T) {
	p := newTestCalendar(t, time.Sunday)

	p.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if p.Month() != june2024 {
		t.Errorf("Month() = %v, want 2024-06", p.Month())
	}
	p.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if p.Month() != may2024 {
		t.Errorf("Month() = %v, want 2024-05", p.Month())
	}
}

func TestCalendarPane_MouseOutsideGrid(t *testing.T) {
	p := newTestCalendar(t, time.Sunday)

	sel := p.Update(tea.MouseMsg{X: 5, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if sel.ok() {
		t.Error("a click on the header should not select")
	}
	sel = p.Update(tea.MouseMsg{X: 5, Y: 200, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if sel.ok() {
		t.Error("a click below the grid should not select")
	}
}

func TestCalendarPane_View(t *testing.T) {
	p := newTestCalendar(t, time.Monday)
	p.SetEvents([]calendar.Event{{
		Start: day(2024, 5, 15),
		End:   day(2024, 5, 15),
		Title: "A very long task title that cannot fit in a cell",
	}})

	view := p.View()
	if !strings.Contains(view, "May 2024") {
		t.Error("view should show the month title")
	}
	if !strings.Contains(view, "Mon") || strings.Index(view, "Mon") > strings.Index(view, "Sun") {
		t.Error("Monday should be the first column")
	}
	if !strings.Contains(view, "…") {
		t.Error("long titles should be truncated in cells")
	}
	if !strings.Contains(view, "A very long task title that cannot fit in a cell") {
		t.Error("the selected day's full text should be shown")
	}
}
