package monitor

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/haskel/cpuwatch/internal/counters"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

var errFakeSource = errors.New("fake source failure")

// fakeSource returns counters that advance by one busy and one idle tick per
// read unless frozen. failAfter > 0 makes read number failAfter+1 fail.
type fakeSource struct {
	mu        sync.Mutex
	reads     int
	frozen    bool
	failAfter int
}

func (f *fakeSource) Read(core int) (counters.Snapshot, error) {
	all, err := f.ReadAll(core + 1)
	if err != nil {
		return counters.Snapshot{}, err
	}
	return all[core], nil
}

func (f *fakeSource) ReadAll(cores int) ([]counters.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failAfter > 0 && f.reads >= f.failAfter {
		return nil, errFakeSource
	}
	f.reads++

	step := uint64(f.reads)
	if f.frozen {
		step = 1
	}

	out := make([]counters.Snapshot, cores)
	for i := range out {
		out[i] = counters.Snapshot{User: 100 + step, Idle: 100 + step}
	}
	return out, nil
}

func (f *fakeSource) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

type failingSource struct{}

func (failingSource) Read(core int) (counters.Snapshot, error) {
	return counters.Snapshot{}, errFakeSource
}

// collector is a Sink that keeps every vector it receives.
type collector struct {
	mu     sync.Mutex
	usages []Usage
	err    error
}

func (c *collector) Write(u Usage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.usages = append(c.usages, u.Clone())
	return c.err
}

func (c *collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.usages)
}

// setCadence shortens every task interval for tests.
func (p *Pipeline) setCadence(d time.Duration) {
	for _, t := range p.tasks {
		switch task := t.(type) {
		case *Sampler:
			task.interval = d
		case *Deriver:
			task.interval = d
		case *Reporter:
			task.interval = d
		case *Liveness:
			task.interval = 2 * d
		}
	}
}
