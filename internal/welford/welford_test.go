package welford_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/dylansiegel/lindemann-go/internal/welford"
)

// naiveMeanStd computes the population mean/std of xs via gonum/stat's
// two-pass PopMeanVariance, as an independent reference implementation
// to check internal/welford's incremental update against.
func naiveMeanStd(xs []float64) (mean, std float64) {
	mean, variance := stat.PopMeanVariance(xs, nil)
	return mean, math.Sqrt(variance)
}

func TestObserveMatchesNaive(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	const p, f = 5, 200
	series := make([][]float64, p)
	for k := range series {
		series[k] = make([]float64, f)
	}
	s := welford.New(p)
	for fr := 0; fr < f; fr++ {
		d := make([]float32, p)
		for k := 0; k < p; k++ {
			v := float32(10.0 + r.NormFloat64())
			series[k][fr] = float64(v)
			d[k] = v
		}
		s.Observe(d)
	}
	require.EqualValues(t, f, s.N)

	std := make([]float32, p)
	s.Std(float64(f), std)
	for k := 0; k < p; k++ {
		wantMean, wantStd := naiveMeanStd(series[k])
		assert.InDelta(t, wantMean, s.Mean[k], 1e-9)
		assert.InDelta(t, wantStd, std[k], 1e-4)
	}
}

func TestZeroStateInvariants(t *testing.T) {
	s := welford.New(3)
	assert.EqualValues(t, 0, s.N)
	for p := range s.Mean {
		assert.Zero(t, s.Mean[p])
		assert.Zero(t, s.M2[p])
	}
}

func TestMergeMatchesSequential(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	const p, f = 4, 300
	all := make([][]float32, f)
	for i := range all {
		all[i] = make([]float32, p)
		for k := 0; k < p; k++ {
			all[i][k] = float32(5.0 + r.NormFloat64())
		}
	}

	sequential := welford.New(p)
	for _, d := range all {
		sequential.Observe(d)
	}

	split := f / 3
	a := welford.New(p)
	for _, d := range all[:split] {
		a.Observe(d)
	}
	b := welford.New(p)
	for _, d := range all[split:] {
		b.Observe(d)
	}
	merged := welford.Merge(a, b)

	require.Equal(t, sequential.N, merged.N)
	for k := 0; k < p; k++ {
		assert.InDelta(t, sequential.Mean[k], merged.Mean[k], 1e-6)
		assert.InDelta(t, sequential.M2[k], merged.M2[k], 1e-6)
	}
}

func TestMergeWithEmptyIsIdentity(t *testing.T) {
	s := welford.New(2)
	s.Observe([]float32{1, 2})
	s.Observe([]float32{3, 4})

	empty := welford.New(2)
	merged := welford.Merge(s, empty)
	assert.Equal(t, s.N, merged.N)
	assert.Equal(t, s.Mean, merged.Mean)

	merged2 := welford.Merge(empty, s)
	assert.Equal(t, s.N, merged2.N)
	assert.Equal(t, s.Mean, merged2.Mean)
}

func TestCloneIsIndependent(t *testing.T) {
	s := welford.New(2)
	s.Observe([]float32{1, 2})
	c := s.Clone()
	s.Observe([]float32{10, 20})
	assert.NotEqual(t, s.Mean, c.Mean)
}
