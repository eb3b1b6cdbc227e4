// Package monitor runs the CPU sampling pipeline: a sampler, a derivation
// engine, reporting tasks and a liveness check sharing one sample store.
package monitor

import (
	"context"
	"errors"
	"time"
)

const (
	// Cadence is the fixed period of the sampler, deriver and reporters.
	Cadence = time.Second
	// LivenessCadence tolerates one missed sampler cycle.
	LivenessCadence = 2 * Cadence
)

var (
	ErrSourceUnavailable = errors.New("counter source unavailable")
	ErrStalled           = errors.New("sampler stalled")
)

// Usage is a derived utilization vector: index 0 is the aggregate, index
// i+1 is core i. Values are percentages.
type Usage []float64

func (u Usage) Aggregate() float64 {
	if len(u) == 0 {
		return 0
	}
	return u[0]
}

// Core returns the usage of core i.
func (u Usage) Core(i int) float64 {
	if i < 0 || i+1 >= len(u) {
		return 0
	}
	return u[i+1]
}

// Cores returns the number of per-core entries.
func (u Usage) Cores() int {
	if len(u) == 0 {
		return 0
	}
	return len(u) - 1
}

func (u Usage) Clone() Usage {
	c := make(Usage, len(u))
	copy(c, u)
	return c
}

// Sink receives a usage vector once per reporting cycle.
type Sink interface {
	Write(u Usage) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(u Usage) error

func (f SinkFunc) Write(u Usage) error {
	return f(u)
}

// Task is a periodic unit of work run by the pipeline. Run returns nil when
// ctx is cancelled and an error when the task cannot continue.
type Task interface {
	Name() string
	Run(ctx context.Context) error
}
