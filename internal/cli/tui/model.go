package tui

import (
	"time"

	"github.com/haskel/cpuwatch/internal/monitor"
)

// UsageMsg carries a fresh usage vector into the program.
type UsageMsg struct {
	Usage monitor.Usage
	At    time.Time
}

// Model represents the dashboard state
type Model struct {
	version string

	usage       monitor.Usage
	lastUpdated time.Time

	// UI state
	width  int
	height int
	quit   bool
}

// NewModel creates a new dashboard model
func NewModel(version string) Model {
	return Model{version: version}
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quit
}
