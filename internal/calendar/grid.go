package calendar

import "time"

// Grid is the week-by-week layout of a month. Leading and trailing cells
// belong to the neighbouring months so every row has seven days.
type Grid struct {
	Month     Month
	WeekStart time.Weekday
	Weeks     [][7]time.Time
}

// NewGrid lays out m starting each week on weekStart (Sunday or Monday).
func NewGrid(m Month, weekStart time.Weekday) Grid {
	first := m.First()
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	start := first.AddDate(0, 0, -offset)

	g := Grid{Month: m, WeekStart: weekStart}
	for day := start; ; {
		var week [7]time.Time
		for i := range week {
			week[i] = day
			day = day.AddDate(0, 0, 1)
		}
		g.Weeks = append(g.Weeks, week)
		if !m.Contains(day) {
			break
		}
	}
	return g
}

// WeekdayLabels returns short weekday names in grid column order.
func (g Grid) WeekdayLabels() [7]string {
	var labels [7]string
	for i := range labels {
		labels[i] = time.Weekday((int(g.WeekStart) + i) % 7).String()[:3]
	}
	return labels
}

// Locate returns the row and column of day in the grid.
func (g Grid) Locate(day time.Time) (row, col int, ok bool) {
	for r, week := range g.Weeks {
		for c, d := range week {
			if SameDay(d, day) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// At returns the day at row, col.
func (g Grid) At(row, col int) (time.Time, bool) {
	if row < 0 || row >= len(g.Weeks) || col < 0 || col > 6 {
		return time.Time{}, false
	}
	return g.Weeks[row][col], true
}
