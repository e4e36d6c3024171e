// Package trajectory defines the frame source interfaces the numeric
// engine consumes, and two concrete implementations: InMemory, a wrapper
// around frames already held in memory, and a reader for the
// LAMMPS-dump-style text trajectory format (see
// original_source/lindemann/trjread and trjreader for the external
// visualization pipeline this format traditionally flows through).
// These interfaces are the external collaborator at the numeric core's
// boundary — this package exists so the repository has a working,
// testable path from a real file on disk to the Source/Materialized
// interfaces the engine actually drives.
package trajectory

// Source is the pull-style frame adapter the engine negotiates with
// when it cannot or should not materialize the whole F*N*3 tensor (the
// memory-reduced "online" drivers, D.4).
type Source interface {
	NumFrames() int
	NumAtoms() int

	// Frame fills out (length NumAtoms()) with frame i's positions. out
	// is caller-owned and reused across calls; Frame must not retain it.
	Frame(i int, out [][3]float32) error
}

// Materialized is a Source that can also hand back every frame as a
// single materialized tensor, for drivers willing to trade memory for
// simplicity (D.1-D.3).
type Materialized interface {
	Source
	// Positions returns the full [F][N][3]float32 tensor. The returned
	// slice is owned by the source; callers must not mutate it.
	Positions() [][][3]float32
}
