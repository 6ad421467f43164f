package importer

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser reads an object mapping dates to task text:
//
//	{"2024-05-01": "Buy milk", "2024-05-02": "Dentist"}
type JSONParser struct{}

// Name returns the format name.
func (p *JSONParser) Name() string {
	return "json"
}

// Parse reads all entries, sorted by date.
func (p *JSONParser) Parse(reader io.Reader) ([]PreviewTask, error) {
	var raw map[string]string
	if err := json.NewDecoder(reader).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	tasks := make([]PreviewTask, 0, len(raw))
	for date, text := range raw {
		tasks = append(tasks, PreviewTask{Date: date, Text: text})
	}
	sortByDate(tasks)
	return tasks, nil
}
