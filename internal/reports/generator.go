package reports

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"calchat/internal/calendar"
)

// MonthSource loads the date→task mapping for a month. *api.Client
// satisfies it.
type MonthSource interface {
	FetchMonth(ctx context.Context, m calendar.Month) (map[string]string, error)
}

// Generator creates reports from the task server.
type Generator struct {
	source MonthSource
	now    func() time.Time
}

// NewGenerator creates a new report generator.
func NewGenerator(source MonthSource) *Generator {
	return &Generator{source: source, now: time.Now}
}

// GenerateMonth fetches month m and builds its report.
func (g *Generator) GenerateMonth(ctx context.Context, m calendar.Month) (*MonthReport, error) {
	tasks, err := g.source.FetchMonth(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", m, err)
	}
	return g.build(m, tasks), nil
}

func (g *Generator) build(m calendar.Month, tasks map[string]string) *MonthReport {
	events, invalid := calendar.EventsFromTasks(tasks)
	for _, key := range invalid {
		slog.Warn("skipping task with invalid date", "date", key, "month", m.String())
	}

	days := make([]DayEntry, 0, len(events))
	for _, ev := range events {
		days = append(days, DayEntry{
			Date:    ev.Date(),
			Weekday: ev.Start.Weekday().String(),
			Task:    ev.Title,
		})
	}

	return &MonthReport{
		Month:       m.String(),
		Title:       m.Title(),
		Days:        days,
		Count:       len(days),
		Skipped:     invalid,
		GeneratedAt: g.now(),
	}
}
