package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/haskel/cpuwatch/internal/counters"
)

// Derive computes the usage vector from two samples of the same cores.
//
// A zero total delta yields 0 rather than NaN. A negative delta can only
// come from a counter regression and is also reported as 0; results are
// clamped to [0, 100].
func Derive(previous, current []counters.Snapshot) Usage {
	n := len(current)
	if len(previous) < n {
		n = len(previous)
	}
	u := make(Usage, n+1)

	var prevTotal, currTotal, prevIdle, currIdle uint64
	for i := 0; i < n; i++ {
		prevTotal += previous[i].Total()
		currTotal += current[i].Total()
		prevIdle += previous[i].IdleTime()
		currIdle += current[i].IdleTime()

		u[i+1] = percent(previous[i].Total(), current[i].Total(), previous[i].IdleTime(), current[i].IdleTime())
	}
	u[0] = percent(prevTotal, currTotal, prevIdle, currIdle)

	return u
}

func percent(prevTotal, currTotal, prevIdle, currIdle uint64) float64 {
	if currTotal <= prevTotal {
		return 0
	}
	totalDelta := float64(currTotal - prevTotal)

	var idleDelta float64
	if currIdle > prevIdle {
		idleDelta = float64(currIdle - prevIdle)
	}

	return clamp((totalDelta - idleDelta) / totalDelta * 100)
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// Deriver periodically recomputes the store's usage vector.
type Deriver struct {
	store    *Store
	interval time.Duration
	logger   *slog.Logger
}

func NewDeriver(store *Store, logger *slog.Logger) *Deriver {
	return &Deriver{
		store:    store,
		interval: Cadence,
		logger:   logger,
	}
}

func (d *Deriver) Name() string {
	return "deriver"
}

// Step runs one derivation cycle.
func (d *Deriver) Step() Usage {
	previous, current, _ := d.store.Pair()
	u := Derive(previous, current)
	d.store.SetUsage(u)
	return u
}

func (d *Deriver) Run(ctx context.Context) error {
	return every(ctx, d.interval, true, func() error {
		u := d.Step()
		d.logger.Debug("usage derived", "aggregate", u.Aggregate())
		return nil
	})
}
