// Package calendar holds the client-side calendar model: visible months,
// the events projected from the server's date-keyed task map, and the
// month grid used for rendering.
package calendar

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the ISO date format used as the task key on the wire.
const DateLayout = "2006-01-02"

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string in the local time zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return t, nil
}

// Day truncates t to local midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: use YYYY-MM", s)
	}
	return MonthOf(t), nil
}

// First returns midnight of the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.Local)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.First().AddDate(0, 1, -1).Day()
}

// Next returns the following month.
func (m Month) Next() Month {
	return MonthOf(m.First().AddDate(0, 1, 0))
}

// Prev returns the preceding month.
func (m Month) Prev() Month {
	return MonthOf(m.First().AddDate(0, -1, 0))
}

// Contains reports whether t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// YearString returns the zero-padded year used in the month endpoint.
func (m Month) YearString() string {
	return fmt.Sprintf("%04d", m.Year)
}

// MonthString returns the zero-padded month number used in the month endpoint.
func (m Month) MonthString() string {
	return fmt.Sprintf("%02d", int(m.Month))
}

// String returns YYYY-MM.
func (m Month) String() string {
	return m.YearString() + "-" + m.MonthString()
}

// Title returns a human label such as "May 2024".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Event is a view-only projection of a task entry: a single all-day item.
type Event struct {
	Start time.Time
	End   time.Time
	Title string
}

// Date returns the event's date key.
func (e Event) Date() string {
	return FormatDate(e.Start)
}

// EventsFromTasks projects a date→text mapping into events sorted by date.
// Keys that are not valid dates are skipped and returned in invalid.
func EventsFromTasks(tasks map[string]string) (events []Event, invalid []string) {
	events = make([]Event, 0, len(tasks))
	for date, text := range tasks {
		t, err := ParseDate(date)
		if err != nil {
			invalid = append(invalid, date)
			continue
		}
		events = append(events, Event{Start: t, End: t, Title: text})
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	sort.Strings(invalid)
	return events, invalid
}

// EventOn returns the event for the given day, if any.
func EventOn(events []Event, day time.Time) (Event, bool) {
	for _, e := range events {
		if SameDay(e.Start, day) {
			return e, true
		}
	}
	return Event{}, false
}
