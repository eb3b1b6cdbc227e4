package counters

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultStatPath is where Linux exposes the kernel CPU counters.
const DefaultStatPath = "/proc/stat"

// maxLineSize bounds one line of the stat file. The intr line grows with
// the number of interrupts and exceeds the scanner default on large hosts.
const maxLineSize = 4 * 1024 * 1024

const fieldCount = 10

// ProcStat reads counters from a file in the /proc/stat format.
type ProcStat struct {
	Path string
}

func NewProcStat(path string) *ProcStat {
	if path == "" {
		path = DefaultStatPath
	}
	return &ProcStat{Path: path}
}

func (p *ProcStat) Read(core int) (Snapshot, error) {
	if core < 0 {
		return Snapshot{}, fmt.Errorf("cpu%d: %w", core, ErrCoreNotFound)
	}
	all, err := p.scan(core + 1)
	if err != nil {
		return Snapshot{}, err
	}
	return all[core], nil
}

func (p *ProcStat) ReadAll(cores int) ([]Snapshot, error) {
	return p.scan(cores)
}

// scan opens the file once and collects cpu0..cpu(cores-1).
func (p *ProcStat) scan(cores int) ([]Snapshot, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", p.Path, err)
	}
	defer f.Close()

	out, err := Parse(f, cores)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Path, err)
	}
	return out, nil
}

// Parse reads cpu0..cpu(cores-1) lines from r. The aggregate "cpu" line and
// non-cpu lines are skipped.
func Parse(r io.Reader, cores int) ([]Snapshot, error) {
	out := make([]Snapshot, cores)
	found := make([]bool, cores)
	remaining := cores

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for remaining > 0 && sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "cpu") {
			continue
		}
		label, rest, _ := strings.Cut(line, " ")
		idx, err := strconv.Atoi(strings.TrimPrefix(label, "cpu"))
		if err != nil || idx < 0 || idx >= cores || found[idx] {
			continue
		}
		s, err := ParseFields(rest)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
		out[idx] = s
		found[idx] = true
		remaining--
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read counters: %w", err)
	}

	for i, ok := range found {
		if !ok {
			return nil, fmt.Errorf("cpu%d: %w", i, ErrCoreNotFound)
		}
	}
	return out, nil
}

// ParseFields parses the ten whitespace separated counters that follow a
// cpu label, in kernel order.
func ParseFields(s string) (Snapshot, error) {
	fields := strings.Fields(s)
	if len(fields) < fieldCount {
		return Snapshot{}, fmt.Errorf("expected %d counters, got %d", fieldCount, len(fields))
	}

	var v [fieldCount]uint64
	for i := range v {
		n, err := strconv.ParseUint(fields[i], 10, 64)
		if err != nil {
			return Snapshot{}, fmt.Errorf("counter %d: %w", i, err)
		}
		v[i] = n
	}

	return Snapshot{
		User:      v[0],
		Nice:      v[1],
		System:    v[2],
		Idle:      v[3],
		IOWait:    v[4],
		IRQ:       v[5],
		SoftIRQ:   v[6],
		Steal:     v[7],
		Guest:     v[8],
		GuestNice: v[9],
	}, nil
}
