package engine

import (
	"context"
	"runtime"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/dylansiegel/lindemann-go/internal/lderrors"
	"github.com/dylansiegel/lindemann-go/internal/trajectory"
	"github.com/dylansiegel/lindemann-go/internal/welford"
)

// chunkRange is a contiguous, half-open frame range [Start, End).
type chunkRange struct {
	Start, End int
}

// chunkFrames partitions [0, f) into min(f, workers) contiguous chunks
// of roughly equal size, with the last chunk absorbing any remainder —
// the same base/remainder split buildChunks uses for its per-day row
// ranges, adapted so the remainder lands on the final chunk instead of
// being spread across the first ones.
func chunkFrames(f, workers int) []chunkRange {
	k := workers
	if k > f {
		k = f
	}
	if k < 1 {
		k = 1
	}
	base := f / k
	return lo.Times(k, func(i int) chunkRange {
		start := i * base
		end := start + base
		if i == k-1 {
			end = f
		}
		return chunkRange{Start: start, End: end}
	})
}

// ParallelScalar is the parallel chunked reducer (E): it partitions the
// frame range into K = min(F, workers) chunks, runs an independent
// Welford accumulation per chunk concurrently via errgroup, then folds
// the resulting states left-to-right with welford.Merge on the calling
// goroutine. Merge is not bit-exact associative in floating point, so
// the left-fold order is fixed for determinism: two runs with the same
// K always produce the same float, and different K only differ from the
// sequential result by a few ULPs.
//
// workers <= 0 defaults to runtime.GOMAXPROCS(0). Only Scalar (D.1) is
// parallelized this way; the other three modes are inherently
// sequential prefix statistics.
func ParallelScalar(ctx context.Context, src trajectory.Materialized, workers int) (float32, error) {
	f, n := src.NumFrames(), src.NumAtoms()
	if err := validateShape(f, n); err != nil {
		return 0, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	chunks := chunkFrames(f, workers)
	pos := src.Positions()
	states := make([]*welford.State, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for idx, c := range chunks {
		idx, c := idx, c
		g.Go(func() error {
			dr := newDriver(n)
			for i := c.Start; i < c.End; i++ {
				if err := checkContext(gctx); err != nil {
					return err
				}
				dr.fillKernel(pos[i])
				dr.state.Observe(dr.d)
			}
			states[idx] = dr.state
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	merged := states[0]
	for _, s := range states[1:] {
		merged = welford.Merge(merged, s)
	}
	if merged.N == 0 {
		return 0, lderrors.ErrEmptyTrajectory
	}
	return scalarFromState(merged, float64(merged.N)), nil
}
