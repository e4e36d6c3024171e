// Package engine drives the pair indexer, Welford accumulator, and
// distance kernel over a trajectory's frames and produces the four
// output modes: per-trajectory scalar, per-frame stream, per-atom-per-frame
// matrix, and their memory-reduced "online" counterparts, plus the
// parallel chunked reducer for the scalar mode. Every public entry point
// shares one sequential driver skeleton: a distance buffer, a Welford
// state, and per-mode aggregation — all allocated once per computation
// and reused across frames, the way processKernel keeps its ring buffers
// and Z-score state off the heap inside the hot loop.
package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/dylansiegel/lindemann-go/internal/kernel"
	"github.com/dylansiegel/lindemann-go/internal/lderrors"
	"github.com/dylansiegel/lindemann-go/internal/pairindex"
	"github.com/dylansiegel/lindemann-go/internal/trajectory"
	"github.com/dylansiegel/lindemann-go/internal/welford"
)

// driver bundles the buffers every mode shares: the per-frame pair
// distance vector and the running Welford state over it.
type driver struct {
	n     int
	pairs int
	d     []float32
	state *welford.State
}

func newDriver(n int) *driver {
	p := pairindex.Count(n)
	return &driver{
		n:     n,
		pairs: p,
		d:     make([]float32, p),
		state: welford.New(p),
	}
}

func validateShape(f, n int) error {
	if n < 2 {
		return fmt.Errorf("%w: %d", lderrors.ErrInsufficientAtoms, n)
	}
	if f == 0 {
		return lderrors.ErrEmptyTrajectory
	}
	return nil
}

// scalarFromState computes mean_p( sqrt(M2[p]/divisor) / mean[p] ),
// excluding any pair whose mean is exactly zero from the average: a
// realistic trajectory never has mean == 0 for a pair of distinct atoms,
// but the engine does not sanitize NaN/Inf inputs, so the mask is here
// unconditionally rather than assumed away.
func scalarFromState(s *welford.State, divisor float64) float32 {
	var sum float64
	var count int
	for p, mean := range s.Mean {
		if mean == 0 {
			continue
		}
		std := math.Sqrt(s.M2[p] / divisor)
		lind := std / mean
		if math.IsNaN(lind) {
			continue
		}
		sum += lind
		count++
	}
	if count == 0 {
		return 0
	}
	return float32(sum / float64(count))
}

// checkContext is the once-per-frame cancellation point of every driver
// loop: the numeric core is not cancellable mid-kernel, only between
// frames. The materialized entry points (Scalar, PerFrame, PerAtom) take
// no context and run with context.Background().
func checkContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// frameAt is a tiny indirection so the materialized and online driving
// loops (below) share one body: materialized sources hand back a slice
// view into their already-resident tensor, online sources fill the
// caller's reusable buffer via Source.Frame.
type frameAt func(i int, buf [][3]float32) ([][3]float32, error)

func materializedFrameAt(src trajectory.Materialized) frameAt {
	pos := src.Positions()
	return func(i int, _ [][3]float32) ([][3]float32, error) {
		if i >= len(pos) {
			return nil, fmt.Errorf("%w: frame %d", lderrors.ErrFrameCountMismatch, i)
		}
		return pos[i], nil
	}
}

func pullFrameAt(src trajectory.Source) frameAt {
	return func(i int, buf [][3]float32) ([][3]float32, error) {
		if err := src.Frame(i, buf); err != nil {
			return nil, fmt.Errorf("%w: %v", lderrors.ErrFrameCountMismatch, err)
		}
		return buf, nil
	}
}

func (dr *driver) fillKernel(frame [][3]float32) {
	kernel.Fill(frame, dr.d)
}
