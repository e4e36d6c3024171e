package engine

import (
	"context"

	"github.com/dylansiegel/lindemann-go/internal/lderrors"
	"github.com/dylansiegel/lindemann-go/internal/trajectory"
)

// Scalar drives all frames of src and returns the per-trajectory
// Lindemann index (D.1): the unweighted mean, across pairs, of
// sqrt(M2[p]/F) / mean[p], where F is the number of frames actually
// processed (fewer than src.NumFrames() if the source runs short).
func Scalar(src trajectory.Materialized) (float32, error) {
	return runScalar(context.Background(), src.NumFrames(), src.NumAtoms(), materializedFrameAt(src))
}

// ScalarOnline is the memory-reduced variant of Scalar (D.4): it pulls
// one frame at a time from src instead of requiring a materialized
// tensor. Numerically it must agree with Scalar to within float
// rounding; it shares runScalar with the materialized path for exactly
// that reason.
func ScalarOnline(ctx context.Context, src trajectory.Source) (float32, error) {
	return runScalar(ctx, src.NumFrames(), src.NumAtoms(), pullFrameAt(src))
}

func runScalar(ctx context.Context, f, n int, at frameAt) (float32, error) {
	if err := validateShape(f, n); err != nil {
		return 0, err
	}
	dr := newDriver(n)
	buf := make([][3]float32, n)

	processed := 0
	for i := 0; i < f; i++ {
		if err := checkContext(ctx); err != nil {
			return 0, err
		}
		frame, err := at(i, buf)
		if err != nil {
			break
		}
		dr.fillKernel(frame)
		dr.state.Observe(dr.d)
		processed++
	}
	if processed == 0 {
		return 0, lderrors.ErrEmptyTrajectory
	}
	return scalarFromState(dr.state, float64(processed)), nil
}
