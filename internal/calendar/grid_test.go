package calendar

import (
	"testing"
	"time"
)

func TestNewGrid_SundayStart(t *testing.T) {
	// May 2024 starts on a Wednesday and ends on a Friday.
	g := NewGrid(Month{2024, time.May}, time.Sunday)

	if len(g.Weeks) != 5 {
		t.Fatalf("len(Weeks) = %d, want 5", len(g.Weeks))
	}
	if got := FormatDate(g.Weeks[0][0]); got != "2024-04-28" {
		t.Errorf("first cell = %s, want 2024-04-28", got)
	}
	if got := FormatDate(g.Weeks[0][3]); got != "2024-05-01" {
		t.Errorf("Wednesday of first week = %s, want 2024-05-01", got)
	}
	if got := FormatDate(g.Weeks[4][6]); got != "2024-06-01" {
		t.Errorf("last cell = %s, want 2024-06-01", got)
	}
	if labels := g.WeekdayLabels(); labels[0] != "Sun" || labels[6] != "Sat" {
		t.Errorf("labels = %v", labels)
	}
}

func TestNewGrid_MondayStart(t *testing.T) {
	g := NewGrid(Month{2024, time.May}, time.Monday)

	if got := FormatDate(g.Weeks[0][0]); got != "2024-04-29" {
		t.Errorf("first cell = %s, want 2024-04-29", got)
	}
	if labels := g.WeekdayLabels(); labels[0] != "Mon" || labels[6] != "Sun" {
		t.Errorf("labels = %v", labels)
	}
}

func TestNewGrid_SixWeeks(t *testing.T) {
	// June 2024 starts on a Saturday and spans six Sunday-based rows.
	g := NewGrid(Month{2024, time.June}, time.Sunday)
	if len(g.Weeks) != 6 {
		t.Errorf("len(Weeks) = %d, want 6", len(g.Weeks))
	}
}

func TestGrid_LocateAndAt(t *testing.T) {
	g := NewGrid(Month{2024, time.May}, time.Sunday)
	day, _ := ParseDate("2024-05-15")

	row, col, ok := g.Locate(day)
	if !ok {
		t.Fatal("Locate() did not find 2024-05-15")
	}
	got, ok := g.At(row, col)
	if !ok || !SameDay(got, day) {
		t.Errorf("At(%d, %d) = %v, want %v", row, col, got, day)
	}

	if _, ok := g.At(-1, 0); ok {
		t.Error("At(-1, 0) should be out of range")
	}
	if _, ok := g.At(0, 7); ok {
		t.Error("At(0, 7) should be out of range")
	}
}
