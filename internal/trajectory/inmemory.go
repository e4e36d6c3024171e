package trajectory

import "fmt"

// InMemory wraps an already-materialized tensor so tests, and callers
// that already hold frames in memory (e.g. the decorated-trajectory
// sink composing with an upstream per-atom computation), can hand the
// engine a Materialized source without round-tripping through disk.
type InMemory struct {
	positions [][][3]float32
}

// NewInMemory wraps frames (length F, each of length N) as a
// Materialized source. frames is not copied; the caller must not mutate
// it afterwards.
func NewInMemory(frames [][][3]float32) *InMemory {
	return &InMemory{positions: frames}
}

func (m *InMemory) NumFrames() int { return len(m.positions) }

func (m *InMemory) NumAtoms() int {
	if len(m.positions) == 0 {
		return 0
	}
	return len(m.positions[0])
}

func (m *InMemory) Positions() [][][3]float32 { return m.positions }

func (m *InMemory) Frame(i int, out [][3]float32) error {
	if i < 0 || i >= len(m.positions) {
		return fmt.Errorf("lindemann: frame %d out of range (have %d)", i, len(m.positions))
	}
	copy(out, m.positions[i])
	return nil
}
