package trajectory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylansiegel/lindemann-go/internal/trajectory"
)

const fixture = `ITEM: TIMESTEP
0
ITEM: NUMBER OF ATOMS
3
ITEM: BOX BOUNDS pp pp pp
0 10
0 10
0 10
ITEM: ATOMS id type x y z
1 1 0.0 0.0 0.0
2 1 1.0 0.0 0.0
3 1 0.0 1.0 0.0
ITEM: TIMESTEP
1
ITEM: NUMBER OF ATOMS
3
ITEM: BOX BOUNDS pp pp pp
0 10
0 10
0 10
ITEM: ATOMS id type x y z
1 1 0.1 0.0 0.0
2 1 1.1 0.0 0.0
3 1 0.1 1.0 0.0
`

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "trj.lammpstrj")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))
	return path
}

func TestOpenXYZIndexesFrames(t *testing.T) {
	path := writeFixture(t)
	src, err := trajectory.OpenXYZ(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 2, src.NumFrames())
	assert.Equal(t, 3, src.NumAtoms())

	frame := make([][3]float32, src.NumAtoms())
	require.NoError(t, src.Frame(0, frame))
	assert.InDelta(t, 1.0, frame[1][0], 1e-6)

	require.NoError(t, src.Frame(1, frame))
	assert.InDelta(t, 1.1, frame[1][0], 1e-6)
}

func TestOpenXYZPositionsMatchesFrame(t *testing.T) {
	path := writeFixture(t)
	src, err := trajectory.OpenXYZ(path)
	require.NoError(t, err)
	defer src.Close()

	pos := src.Positions()
	require.Len(t, pos, 2)
	require.Len(t, pos[0], 3)
	assert.InDelta(t, 0.1, pos[1][0][0], 1e-6)
}

func TestOpenXYZMissingFile(t *testing.T) {
	_, err := trajectory.OpenXYZ("/no/such/file.lammpstrj")
	require.Error(t, err)
}
