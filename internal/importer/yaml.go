package importer

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLParser reads a mapping of dates to task text. Block scalars work
// for multi-line tasks:
//
//	2024-05-01: Buy milk
//	2024-05-02: |
//	  Dentist
//	  bring forms
type YAMLParser struct{}

// Name returns the format name.
func (p *YAMLParser) Name() string {
	return "yaml"
}

// Parse reads all entries, sorted by date. Keys are taken verbatim so
// dates are not reinterpreted as timestamps.
func (p *YAMLParser) Parse(reader io.Reader) ([]PreviewTask, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(reader).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []PreviewTask{}, nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of dates to tasks", root.Line)
	}

	tasks := make([]PreviewTask, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: task for %s must be text", v.Line, k.Value)
		}
		tasks = append(tasks, PreviewTask{Date: k.Value, Text: v.Value})
	}
	sortByDate(tasks)
	return tasks, nil
}
