package counters

// Snapshot holds one core's cumulative counters since boot, in clock ticks.
type Snapshot struct {
	User      uint64 `json:"user"`
	Nice      uint64 `json:"nice"`
	System    uint64 `json:"system"`
	Idle      uint64 `json:"idle"`
	IOWait    uint64 `json:"iowait"`
	IRQ       uint64 `json:"irq"`
	SoftIRQ   uint64 `json:"softirq"`
	Steal     uint64 `json:"steal"`
	Guest     uint64 `json:"guest"`
	GuestNice uint64 `json:"guest_nice"`
}

// Total returns the ticks accounted to the core. Guest time is already
// included in User and Nice, so it is left out.
func (s Snapshot) Total() uint64 {
	return s.User + s.Nice + s.System + s.Idle + s.IOWait + s.IRQ + s.SoftIRQ + s.Steal
}

// IdleTime returns idle plus iowait ticks.
func (s Snapshot) IdleTime() uint64 {
	return s.Idle + s.IOWait
}

// Equal reports whether every counter matches.
func (s Snapshot) Equal(o Snapshot) bool {
	return s == o
}
