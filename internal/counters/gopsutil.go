package counters

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
)

// ticksPerSecond matches the kernel USER_HZ that gopsutil divides by.
const ticksPerSecond = 100

// Gopsutil reads counters through gopsutil, for hosts where the stat file
// is not reachable directly.
type Gopsutil struct{}

func NewGopsutil() *Gopsutil {
	return &Gopsutil{}
}

func (g *Gopsutil) Read(core int) (Snapshot, error) {
	if core < 0 {
		return Snapshot{}, fmt.Errorf("cpu%d: %w", core, ErrCoreNotFound)
	}
	all, err := g.ReadAll(core + 1)
	if err != nil {
		return Snapshot{}, err
	}
	return all[core], nil
}

func (g *Gopsutil) ReadAll(cores int) ([]Snapshot, error) {
	times, err := cpu.Times(true)
	if err != nil {
		return nil, fmt.Errorf("failed to read cpu times: %w", err)
	}
	if len(times) < cores {
		return nil, fmt.Errorf("cpu%d: %w", len(times), ErrCoreNotFound)
	}

	out := make([]Snapshot, cores)
	for i := range out {
		out[i] = fromTimesStat(times[i])
	}
	return out, nil
}

func fromTimesStat(t cpu.TimesStat) Snapshot {
	return Snapshot{
		User:      toTicks(t.User),
		Nice:      toTicks(t.Nice),
		System:    toTicks(t.System),
		Idle:      toTicks(t.Idle),
		IOWait:    toTicks(t.Iowait),
		IRQ:       toTicks(t.Irq),
		SoftIRQ:   toTicks(t.Softirq),
		Steal:     toTicks(t.Steal),
		Guest:     toTicks(t.Guest),
		GuestNice: toTicks(t.GuestNice),
	}
}

func toTicks(seconds float64) uint64 {
	if seconds <= 0 {
		return 0
	}
	return uint64(seconds*ticksPerSecond + 0.5)
}
