package engine

import (
	"context"
	"math"

	"github.com/dylansiegel/lindemann-go/internal/lderrors"
	"github.com/dylansiegel/lindemann-go/internal/pairindex"
	"github.com/dylansiegel/lindemann-go/internal/trajectory"
)

// PerAtom drives all frames of src and returns the F x N per-atom
// Lindemann matrix (D.3): row f, column i is atom i's row-mean of the
// per-pair Lindemann values, as observed through frame f.
func PerAtom(src trajectory.Materialized) ([][]float32, error) {
	return runPerAtom(context.Background(), src.NumFrames(), src.NumAtoms(), materializedFrameAt(src))
}

// PerAtomOnline is the memory-reduced variant of PerAtom (D.4).
func PerAtomOnline(ctx context.Context, src trajectory.Source) ([][]float32, error) {
	return runPerAtom(ctx, src.NumFrames(), src.NumAtoms(), pullFrameAt(src))
}

// atomAggregator holds the N x N mean/var buffers D.3 expands the
// pair-indexed Welford state into. These are allocated once and reused
// across frames — the off-diagonal entries are fully overwritten every
// frame, so the only state that must be set up front is the diagonal
// guard on mean.
type atomAggregator struct {
	n    int
	mean []float64 // row-major N x N
	vr   []float64 // row-major N x N
}

func newAtomAggregator(n int) *atomAggregator {
	a := &atomAggregator{n: n, mean: make([]float64, n*n), vr: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		a.mean[i*n+i] = 1.0
	}
	return a
}

// rowMeans computes, for every atom i, the mean of
// sqrt(var[i,j]/divisor) / mean[i,j] over j != i, excluding zero and NaN
// entries, and writes it into out (length n). If every candidate entry
// for a row is excluded (e.g. the single-frame degenerate case where
// every variance is still zero) the row's value is 0.
func (a *atomAggregator) rowMeans(divisor float64, out []float32) {
	n := a.n
	for i := 0; i < n; i++ {
		var sum float64
		var count int
		base := i * n
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			mean := a.mean[base+j]
			if mean == 0 {
				continue
			}
			std := math.Sqrt(a.vr[base+j] / divisor)
			l := std / mean
			if l == 0 || math.IsNaN(l) {
				continue
			}
			sum += l
			count++
		}
		if count == 0 {
			out[i] = 0
			continue
		}
		out[i] = float32(sum / float64(count))
	}
}

func runPerAtom(ctx context.Context, f, n int, at frameAt) ([][]float32, error) {
	if err := validateShape(f, n); err != nil {
		return nil, err
	}
	dr := newDriver(n)
	agg := newAtomAggregator(n)
	buf := make([][3]float32, n)
	rows := make([][]float32, 0, f)

	for i := 0; i < f; i++ {
		if err := checkContext(ctx); err != nil {
			return nil, err
		}
		frame, err := at(i, buf)
		if err != nil {
			break
		}
		dr.fillKernel(frame)
		dr.state.Observe(dr.d)

		pairindex.Iterate(n, func(ii, jj, p int) {
			m := dr.state.Mean[p]
			v := dr.state.M2[p]
			agg.mean[ii*n+jj] = m
			agg.mean[jj*n+ii] = m
			agg.vr[ii*n+jj] = v
			agg.vr[jj*n+ii] = v
		})

		row := make([]float32, n)
		agg.rowMeans(float64(dr.state.N), row)
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, lderrors.ErrEmptyTrajectory
	}
	return rows, nil
}
