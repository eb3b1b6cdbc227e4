package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/haskel/cpuwatch/internal/counters"
)

// State is the lifecycle stage of a pipeline. It only moves forward.
type State int32

const (
	StateStarting State = iota
	StateRunning
	StateShuttingDown
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting_down"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Pipeline wires the sampler, deriver, reporters and liveness check around
// one store and runs them until cancellation or the first failure.
type Pipeline struct {
	store    *Store
	sampler  *Sampler
	deriver  *Deriver
	liveness *Liveness
	tasks    []Task
	logger   *slog.Logger

	state atomic.Int32

	// OnStateChange is called after every transition.
	OnStateChange func(from, to State)
}

// NewPipeline builds a pipeline over store. presenter and recorder may be
// nil; extra tasks run alongside the built-in ones.
func NewPipeline(store *Store, source counters.Source, presenter, recorder Sink, logger *slog.Logger, extra ...Task) *Pipeline {
	p := &Pipeline{
		store:    store,
		sampler:  NewSampler(source, store, logger),
		deriver:  NewDeriver(store, logger),
		liveness: NewLiveness(store, logger),
		logger:   logger,
	}

	p.tasks = []Task{p.sampler, p.deriver}
	if presenter != nil {
		p.tasks = append(p.tasks, NewReporter("presenter", store, presenter, logger))
	}
	if recorder != nil {
		p.tasks = append(p.tasks, NewReporter("recorder", store, recorder, logger))
	}
	p.tasks = append(p.tasks, p.liveness)
	p.tasks = append(p.tasks, extra...)

	return p
}

// AddTask registers another task. It must be called before Run.
func (p *Pipeline) AddTask(t Task) {
	p.tasks = append(p.tasks, t)
}

func (p *Pipeline) Store() *Store {
	return p.store
}

func (p *Pipeline) State() State {
	return State(p.state.Load())
}

func (p *Pipeline) advance(to State) {
	for {
		from := State(p.state.Load())
		if to <= from {
			return
		}
		if p.state.CompareAndSwap(int32(from), int32(to)) {
			p.logger.Debug("pipeline state changed", "from", from, "to", to)
			if p.OnStateChange != nil {
				p.OnStateChange(from, to)
			}
			return
		}
	}
}

// Run bootstraps the store and runs every task until ctx is cancelled or a
// task fails. Cancellation of ctx is a graceful stop and returns nil.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.sampler.Bootstrap(); err != nil {
		p.advance(StateStopped)
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	p.advance(StateRunning)

	for _, t := range p.tasks {
		g.Go(func() error {
			err := t.Run(gctx)
			if err != nil {
				p.logger.Error("task failed", "task", t.Name(), "error", err)
			} else {
				p.logger.Debug("task stopped", "task", t.Name())
			}
			p.advance(StateShuttingDown)
			return err
		})
	}

	err := g.Wait()
	p.advance(StateStopped)

	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}
