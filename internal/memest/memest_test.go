package memest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dylansiegel/lindemann-go/internal/memest"
)

func TestEstimateKnownShape(t *testing.T) {
	r := memest.Estimate(1000, 459)
	p := int64(459 * 458 / 2)

	assert.EqualValues(t, int64(1000)*459*3*4, r.PositionsBytes)
	assert.EqualValues(t, p*4*2, r.PairStateBytes)
	assert.EqualValues(t, int64(459)*459*4*2, r.PairMatrixBytes)
	assert.EqualValues(t, 1000*4, r.PerFrameOutputBytes)
	assert.EqualValues(t, int64(1000)*459*4, r.PerAtomOutputBytes)
}

func TestEstimateDegenerateAtoms(t *testing.T) {
	r := memest.Estimate(10, 1)
	assert.Zero(t, r.PairStateBytes)
}

func TestStringRenders(t *testing.T) {
	r := memest.Estimate(100, 10)
	s := r.String()
	assert.Contains(t, s, "frames=100")
	assert.Contains(t, s, "atoms=10")
}
