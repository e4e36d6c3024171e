// Package memest is the pure memory estimator (component F): given the
// frame count and atom count of a trajectory, it returns the byte sizes
// of every representation the engine or CLI might materialize. It has
// no side effects and touches no trajectory or engine state, so the CLI
// can call it before deciding whether to run the materialized or
// memory-reduced ("online") code path.
package memest

const float32Size = 4

// Report holds the byte counts for one (F, N) trajectory shape.
type Report struct {
	Frames, Atoms int

	// PositionsBytes is the size of the materialized F*N*3 float32
	// position tensor.
	PositionsBytes int64

	// PairStateBytes is the size of a mean vector and an M2 vector, each
	// length P = N(N-1)/2, at 4 bytes/element. internal/welford actually
	// keeps these as float64 for numerical stability — this field is a
	// user-facing byte budget, not a mirror of that internal
	// representation.
	PairStateBytes int64

	// PairMatrixBytes is the size of the two N*N symmetric mean/var
	// matrices materialized only inside the per-atom driver (D.3).
	PairMatrixBytes int64

	// PerFrameOutputBytes is the size of the length-F scalar stream.
	PerFrameOutputBytes int64

	// PerAtomOutputBytes is the size of the F*N per-atom-per-frame
	// output matrix.
	PerAtomOutputBytes int64
}

// pairCount mirrors pairindex.Count without importing that package, so
// memest stays a leaf with zero internal dependencies, matching its role
// as a pure function callers reach for before they've built anything
// else.
func pairCount(n int) int64 {
	if n < 2 {
		return 0
	}
	nn := int64(n)
	return nn * (nn - 1) / 2
}

// Estimate computes the byte-size report for a trajectory of f frames
// and n atoms. It does not validate f or n beyond treating n < 2 as zero
// pairs; the engine, not this package, is responsible for rejecting
// degenerate trajectories.
func Estimate(f, n int) Report {
	p := pairCount(n)
	ff, nn := int64(f), int64(n)
	return Report{
		Frames:              f,
		Atoms:               n,
		PositionsBytes:      ff * nn * 3 * float32Size,
		PairStateBytes:      p * float32Size * 2,
		PairMatrixBytes:     nn * nn * float32Size * 2,
		PerFrameOutputBytes: ff * float32Size,
		PerAtomOutputBytes:  ff * nn * float32Size,
	}
}
