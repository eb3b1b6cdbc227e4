package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/haskel/cpuwatch/internal/counters"
)

// Stalled reports whether no counter of any core moved between previous
// and current.
func Stalled(previous, current []counters.Snapshot) bool {
	if len(previous) != len(current) {
		return false
	}
	for i := range current {
		if !previous[i].Equal(current[i]) {
			return false
		}
	}
	return true
}

// Liveness infers sampler health from counter progress. It fails with
// ErrStalled when the two latest samples are identical, or when the sampler
// wrote nothing during a whole interval.
type Liveness struct {
	store    *Store
	interval time.Duration
	logger   *slog.Logger

	lastGeneration uint64
}

func NewLiveness(store *Store, logger *slog.Logger) *Liveness {
	return &Liveness{
		store:    store,
		interval: LivenessCadence,
		logger:   logger,
	}
}

func (l *Liveness) Name() string {
	return "liveness"
}

// Check runs one liveness cycle.
func (l *Liveness) Check() error {
	previous, current, generation := l.store.Pair()

	if generation == l.lastGeneration {
		l.logger.Error("sampler made no progress",
			"generation", generation,
			"interval", l.interval,
		)
		return ErrStalled
	}
	l.lastGeneration = generation

	if Stalled(previous, current) {
		l.logger.Error("cpu counters stopped advancing",
			"cores", len(current),
			"interval", l.interval,
		)
		return ErrStalled
	}

	return nil
}

func (l *Liveness) Run(ctx context.Context) error {
	l.lastGeneration = l.store.Generation()
	return every(ctx, l.interval, false, l.Check)
}
