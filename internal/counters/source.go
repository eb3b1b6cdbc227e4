// Package counters reads cumulative per-core CPU time counters.
package counters

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
)

// ErrCoreNotFound is returned when the source has no counters for a core.
var ErrCoreNotFound = errors.New("core not found")

// Source returns the current counters for a single core.
type Source interface {
	Read(core int) (Snapshot, error)
}

// BatchSource reads every core in one pass so all snapshots share one instant.
type BatchSource interface {
	Source
	ReadAll(cores int) ([]Snapshot, error)
}

// ReadAll reads cores 0..cores-1, in one pass when src supports it.
func ReadAll(src Source, cores int) ([]Snapshot, error) {
	if bs, ok := src.(BatchSource); ok {
		return bs.ReadAll(cores)
	}

	out := make([]Snapshot, cores)
	for i := range out {
		s, err := src.Read(i)
		if err != nil {
			return nil, fmt.Errorf("core %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

// CoreCount returns the number of online logical cores.
func CoreCount() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}
