package reports

import (
	"encoding/json"
)

// FormatJSON formats a month report as JSON.
func FormatJSON(report *MonthReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
