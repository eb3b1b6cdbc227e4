// Package display renders usage on an interactive surface.
package display

import (
	"io"
	"sync"

	"github.com/haskel/cpuwatch/internal/monitor"
	"github.com/haskel/cpuwatch/internal/report"
)

// ClearScreen moves the cursor home and clears to the end of the screen.
const ClearScreen = "\033[H\033[J"

// Terminal clears the screen and redraws the usage block on every write.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Write(u monitor.Usage) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := io.WriteString(t.w, ClearScreen+report.Format(u))
	return err
}
