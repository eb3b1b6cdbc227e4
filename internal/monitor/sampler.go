package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/haskel/cpuwatch/internal/counters"
)

// Sampler refreshes the store from a counter source.
type Sampler struct {
	source   counters.Source
	store    *Store
	interval time.Duration
	logger   *slog.Logger
}

func NewSampler(source counters.Source, store *Store, logger *slog.Logger) *Sampler {
	return &Sampler{
		source:   source,
		store:    store,
		interval: Cadence,
		logger:   logger,
	}
}

func (s *Sampler) Name() string {
	return "sampler"
}

// Bootstrap populates current before any other task reads the store.
func (s *Sampler) Bootstrap() error {
	fresh, err := s.read()
	if err != nil {
		return err
	}
	s.store.Bootstrap(fresh)
	return nil
}

// Step reads every core and advances the store.
func (s *Sampler) Step() error {
	fresh, err := s.read()
	if err != nil {
		return err
	}
	s.store.Advance(fresh)
	return nil
}

func (s *Sampler) read() ([]counters.Snapshot, error) {
	fresh, err := counters.ReadAll(s.source, s.store.Cores())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return fresh, nil
}

func (s *Sampler) Run(ctx context.Context) error {
	return every(ctx, s.interval, false, s.Step)
}
