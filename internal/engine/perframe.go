package engine

import (
	"context"

	"github.com/dylansiegel/lindemann-go/internal/lderrors"
	"github.com/dylansiegel/lindemann-go/internal/trajectory"
)

// PerFrame drives all frames of src and returns the length-F per-frame
// Lindemann stream (D.2): after each frame update f, y[f-1] is computed
// with divisor f (the running count), not the total frame count — this
// is a prefix statistic, and y[len(y)-1] equals Scalar's result.
func PerFrame(src trajectory.Materialized) ([]float32, error) {
	return runPerFrame(context.Background(), src.NumFrames(), src.NumAtoms(), materializedFrameAt(src))
}

// PerFrameOnline is the memory-reduced variant of PerFrame (D.4).
func PerFrameOnline(ctx context.Context, src trajectory.Source) ([]float32, error) {
	return runPerFrame(ctx, src.NumFrames(), src.NumAtoms(), pullFrameAt(src))
}

func runPerFrame(ctx context.Context, f, n int, at frameAt) ([]float32, error) {
	if err := validateShape(f, n); err != nil {
		return nil, err
	}
	dr := newDriver(n)
	buf := make([][3]float32, n)
	y := make([]float32, 0, f)

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
		y = append(y, scalarFromState(dr.state, float64(dr.state.N)))
	}
	if len(y) == 0 {
		return nil, lderrors.ErrEmptyTrajectory
	}
	return y, nil
}
