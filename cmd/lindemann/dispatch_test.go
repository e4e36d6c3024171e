package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dispatchFixture = `ITEM: TIMESTEP
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
1 1 0.05 0.0 0.0
2 1 1.05 0.0 0.0
3 1 0.0 1.05 0.0
ITEM: TIMESTEP
2
ITEM: NUMBER OF ATOMS
3
ITEM: BOX BOUNDS pp pp pp
0 10
0 10
0 10
ITEM: ATOMS id type x y z
1 1 -0.02 0.0 0.0
2 1 0.98 0.0 0.0
3 1 0.0 0.97 0.0
`

func withTempWD(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeDispatchFixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "trj.lammpstrj")
	require.NoError(t, os.WriteFile(path, []byte(dispatchFixture), 0o644))
	return path
}

func TestDispatchScalarMode(t *testing.T) {
	dir := withTempWD(t)
	path := writeDispatchFixture(t, dir)
	err := dispatch(flags{trj: true}, []string{path})
	assert.NoError(t, err)
}

func TestDispatchFramesWritesDefaultFile(t *testing.T) {
	dir := withTempWD(t)
	path := writeDispatchFixture(t, dir)
	require.NoError(t, dispatch(flags{frames: true}, []string{path}))

	contents, err := os.ReadFile(filepath.Join(dir, defaultPerFrameFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	assert.Len(t, lines, 3, "per-frame file should have one value per line, not one line holding every value")
	for _, line := range lines {
		assert.NotContains(t, line, " ", "each per-frame line should hold exactly one value")
	}
}

func TestDispatchAtomsWritesDefaultFile(t *testing.T) {
	dir := withTempWD(t)
	path := writeDispatchFixture(t, dir)
	require.NoError(t, dispatch(flags{atoms: true}, []string{path}))

	_, err := os.Stat(filepath.Join(dir, defaultPerAtomFile))
	assert.NoError(t, err)
}

func TestDispatchPlotWritesDefaultFile(t *testing.T) {
	dir := withTempWD(t)
	path := writeDispatchFixture(t, dir)
	require.NoError(t, dispatch(flags{plot: true}, []string{path}))

	info, err := os.Stat(filepath.Join(dir, defaultPlotFile))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestDispatchLammpstrjWritesDecoratedFile(t *testing.T) {
	dir := withTempWD(t)
	path := writeDispatchFixture(t, dir)
	require.NoError(t, dispatch(flags{lammpstrj: true}, []string{path}))

	_, err := os.Stat(filepath.Join(dir, defaultDecoratedFile))
	assert.NoError(t, err)
}

func TestDispatchMultiFileWarnsForNonScalarModes(t *testing.T) {
	dir := withTempWD(t)
	path := writeDispatchFixture(t, dir)
	err := dispatch(flags{frames: true}, []string{path, path})
	assert.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, defaultPerFrameFile))
	assert.Error(t, statErr, "per-frame file should not be written for the unsupported multi-file case")
}

func TestDispatchMultiFileScalarRunsInParallel(t *testing.T) {
	dir := withTempWD(t)
	path := writeDispatchFixture(t, dir)
	err := dispatch(flags{trj: true}, []string{path, path})
	assert.NoError(t, err)
}

func TestDispatchDefaultModeSingleFile(t *testing.T) {
	dir := withTempWD(t)
	path := writeDispatchFixture(t, dir)
	err := dispatch(flags{}, []string{path})
	assert.NoError(t, err)
}

func TestDispatchMemUse(t *testing.T) {
	dir := withTempWD(t)
	path := writeDispatchFixture(t, dir)
	err := dispatch(flags{memUse: true}, []string{path})
	assert.NoError(t, err)
}

func TestDispatchTimeit(t *testing.T) {
	dir := withTempWD(t)
	path := writeDispatchFixture(t, dir)
	err := dispatch(flags{timeit: true}, []string{path})
	assert.NoError(t, err)
}

func TestExitCodeForKnownErrorKinds(t *testing.T) {
	_, err := openMaterialized("/no/such/file.lammpstrj")
	require.Error(t, err)
	assert.Equal(t, 3, exitCodeFor(err))
}
