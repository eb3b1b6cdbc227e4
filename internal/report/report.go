// Package report formats usage vectors as text.
package report

import (
	"fmt"
	"strings"
)

// Lines renders usage as one aggregate line followed by one line per core.
// usage[0] is the aggregate and usage[i+1] is core i.
func Lines(usage []float64) []string {
	if len(usage) == 0 {
		return nil
	}

	lines := make([]string, 0, len(usage))
	lines = append(lines, fmt.Sprintf("Overall CPU Usage: %.2f%%", usage[0]))
	for i, v := range usage[1:] {
		lines = append(lines, fmt.Sprintf("Core %d Usage: %.2f%%", i, v))
	}
	return lines
}

// Format renders usage as a newline terminated block.
func Format(usage []float64) string {
	lines := Lines(usage)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
