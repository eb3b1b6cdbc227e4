package monitor

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSampler_Bootstrap(t *testing.T) {
	store := NewStore(2)
	src := &fakeSource{}
	s := NewSampler(src, store, testLogger())

	if err := s.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	previous, current, gen := store.Pair()
	if gen != 1 {
		t.Errorf("expected generation 1, got %d", gen)
	}
	if current[0].User != 101 {
		t.Errorf("expected current populated, got %+v", current[0])
	}
	if previous[0].User != 0 {
		t.Errorf("expected previous empty after bootstrap, got %+v", previous[0])
	}
}

func TestSampler_StepRotates(t *testing.T) {
	store := NewStore(1)
	s := NewSampler(&fakeSource{}, store, testLogger())

	if err := s.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := s.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	previous, current, _ := store.Pair()
	if previous[0].User != 101 || current[0].User != 102 {
		t.Errorf("expected previous=101 current=102, got %d and %d", previous[0].User, current[0].User)
	}
}

func TestSampler_SourceFailure(t *testing.T) {
	store := NewStore(1)
	s := NewSampler(&fakeSource{failAfter: 1}, store, testLogger())

	if err := s.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	err := s.Step()
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
	if !errors.Is(err, errFakeSource) {
		t.Errorf("expected source error to be wrapped, got %v", err)
	}
}

func TestSampler_RunStopsOnCancel(t *testing.T) {
	store := NewStore(1)
	src := &fakeSource{}
	s := NewSampler(src, store, testLogger())
	s.interval = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		t.Errorf("expected nil on cancellation, got %v", err)
	}
	if src.Reads() == 0 {
		t.Error("expected sampler to read at least once")
	}
}
