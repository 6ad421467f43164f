// Package reports builds month summaries of the task calendar for export.
// Reports can be rendered as Markdown, JSON or a standalone HTML page.
package reports

import "time"

// MonthReport lists every task of one month in date order.
type MonthReport struct {
	Month       string     `json:"month"` // YYYY-MM
	Title       string     `json:"title"` // e.g. "May 2024"
	Days        []DayEntry `json:"days"`
	Count       int        `json:"count"`
	Skipped     []string   `json:"skipped,omitempty"` // keys that were not dates
	GeneratedAt time.Time  `json:"generated_at"`
}

// DayEntry is a single day's task.
type DayEntry struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Task    string `json:"task"`
}
