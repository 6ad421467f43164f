// Package importer loads date→task files (JSON or YAML) into the task
// server. Days that already have a task are replaced with PUT; new days
// are created with POST.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"calchat/internal/api"
	"calchat/internal/calendar"
)

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Created   int      // Days that had no task
	Updated   int      // Days whose task was replaced
	Unchanged int      // Days that already had the same text
	Skipped   int      // Entries with a bad date or empty text
	Errors    []string // Error messages for failed entries
}

// Total returns the number of entries that were written.
func (r *ImportResult) Total() int {
	return r.Created + r.Updated
}

// PreviewTask is one parsed entry before import.
type PreviewTask struct {
	Date string
	Text string
}

// Parser reads entries from one file format.
type Parser interface {
	// Parse reads all entries, sorted by date.
	Parse(reader io.Reader) ([]PreviewTask, error)

	// Name returns the format name (e.g., "json", "yaml").
	Name() string
}

// GetParser returns the parser for the given format.
func GetParser(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "yaml", "yml":
		return &YAMLParser{}
	default:
		return nil
	}
}

// SupportedFormats returns the list of supported import formats.
func SupportedFormats() []string {
	return []string{"json", "yaml"}
}

// FormatFromPath guesses the format from the file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// TaskStore is the part of the API client the importer writes through.
type TaskStore interface {
	GetTask(ctx context.Context, date string) (string, error)
	CreateTask(ctx context.Context, date, text string) error
	UpdateTask(ctx context.Context, date, text string) error
}

// Import writes tasks to store. With dryRun set it only looks up each day
// and counts what would change.
func Import(ctx context.Context, store TaskStore, tasks []PreviewTask, dryRun bool) *ImportResult {
	result := &ImportResult{}

	for _, task := range tasks {
		if _, err := calendar.ParseDate(task.Date); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if strings.TrimSpace(task.Text) == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: empty task", task.Date))
			continue
		}

		existing, err := store.GetTask(ctx, task.Date)
		if err != nil && !api.IsNotFound(err) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", task.Date, err))
			continue
		}

		switch {
		case existing == task.Text:
			result.Unchanged++
			continue
		case dryRun && existing == "":
			result.Created++
			continue
		case dryRun:
			result.Updated++
			continue
		}

		if existing == "" {
			err = store.CreateTask(ctx, task.Date, task.Text)
		} else {
			err = store.UpdateTask(ctx, task.Date, task.Text)
		}
		if err != nil {
			slog.Error("import failed", "date", task.Date, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", task.Date, err))
			continue
		}
		if existing == "" {
			result.Created++
		} else {
			result.Updated++
		}
	}

	return result
}

func sortByDate(tasks []PreviewTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Date < tasks[j].Date
	})
}
