package monitor

import (
	"context"
	"log/slog"
	"time"
)

// Reporter hands the current usage vector to a sink once per cadence.
// Sink errors are logged and the reporter keeps going.
type Reporter struct {
	name     string
	store    *Store
	sink     Sink
	interval time.Duration
	logger   *slog.Logger

	failures int
}

func NewReporter(name string, store *Store, sink Sink, logger *slog.Logger) *Reporter {
	return &Reporter{
		name:     name,
		store:    store,
		sink:     sink,
		interval: Cadence,
		logger:   logger,
	}
}

func (r *Reporter) Name() string {
	return r.name
}

// Step reads the usage vector and writes it to the sink.
func (r *Reporter) Step() error {
	u := r.store.Usage()
	if err := r.sink.Write(u); err != nil {
		r.failures++
		r.logger.Error("report failed",
			"reporter", r.name,
			"error", err,
			"failures", r.failures,
		)
	}
	return nil
}

func (r *Reporter) Run(ctx context.Context) error {
	return every(ctx, r.interval, true, r.Step)
}
