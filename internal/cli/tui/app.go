// Package tui is the interactive dashboard display mode.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haskel/cpuwatch/internal/monitor"
)

// Dashboard runs the bubbletea program as a pipeline task and receives usage
// as the presenter sink.
type Dashboard struct {
	program *tea.Program
	onQuit  func()
}

// NewDashboard builds the program. onQuit is called when the user leaves
// the dashboard before the pipeline stops.
func NewDashboard(version string, onQuit func(), opts ...tea.ProgramOption) *Dashboard {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	return &Dashboard{
		program: tea.NewProgram(NewModel(version), opts...),
		onQuit:  onQuit,
	}
}

func (d *Dashboard) Name() string {
	return "tui"
}

// Write forwards usage to the program. It returns once the program has
// taken the message or has exited.
func (d *Dashboard) Write(u monitor.Usage) error {
	d.program.Send(UsageMsg{Usage: u.Clone(), At: time.Now()})
	return nil
}

// Run blocks until the program exits, either through the user or because
// ctx was cancelled.
func (d *Dashboard) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, d.program.Quit)
	defer stop()

	final, err := d.program.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if m, ok := final.(Model); ok && m.Quitting() && d.onQuit != nil {
		d.onQuit()
	}
	return nil
}
