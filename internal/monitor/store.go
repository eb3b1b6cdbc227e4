package monitor

import (
	"sync"

	"github.com/haskel/cpuwatch/internal/counters"
)

// Store is the shared sample state. One mutex guards previous, current and
// usage; no method holds it across I/O.
type Store struct {
	mu         sync.Mutex
	previous   []counters.Snapshot
	current    []counters.Snapshot
	usage      Usage
	generation uint64
}

func NewStore(cores int) *Store {
	if cores < 0 {
		cores = 0
	}
	return &Store{
		previous: make([]counters.Snapshot, cores),
		current:  make([]counters.Snapshot, cores),
		usage:    make(Usage, cores+1),
	}
}

// Cores is fixed for the lifetime of the store.
func (s *Store) Cores() int {
	return len(s.current)
}

// Bootstrap fills current without touching previous.
func (s *Store) Bootstrap(fresh []counters.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.current, fresh)
	s.generation++
}

// Advance moves current into previous and stores fresh as current, for
// every core in one step.
func (s *Store) Advance(fresh []counters.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.previous, s.current)
	copy(s.current, fresh)
	s.generation++
}

// Pair returns copies of previous and current along with the generation
// they belong to.
func (s *Store) Pair() (previous, current []counters.Snapshot, generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous = make([]counters.Snapshot, len(s.previous))
	current = make([]counters.Snapshot, len(s.current))
	copy(previous, s.previous)
	copy(current, s.current)
	return previous, current, s.generation
}

// SetUsage replaces the whole usage vector.
func (s *Store) SetUsage(u Usage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.usage, u)
}

func (s *Store) Usage() Usage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usage.Clone()
}

// Generation counts completed sampler writes.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}
