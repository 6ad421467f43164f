package reports

import (
	"fmt"
	"strings"
)

// FormatMarkdown formats a month report as a Markdown table.
func FormatMarkdown(report *MonthReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Tasks for %s\n\n", report.Title)

	if len(report.Days) == 0 {
		b.WriteString("_No tasks this month._\n")
	} else {
		b.WriteString("| Date | Day | Task |\n")
		b.WriteString("|------|-----|------|\n")
		for _, d := range report.Days {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", d.Date, d.Weekday, tableCell(d.Task))
		}
	}

	b.WriteString("\n")
	noun := "tasks"
	if report.Count == 1 {
		noun = "task"
	}
	fmt.Fprintf(&b, "%d %s · generated %s\n", report.Count, noun, report.GeneratedAt.Format("2006-01-02 15:04"))

	return b.String()
}

// tableCell keeps multi-line or piped text inside one table cell.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "|", "\\|")
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, " / ")
}
