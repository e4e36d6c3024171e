package sinks_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylansiegel/lindemann-go/internal/sinks"
)

func TestWriteNumericSingleRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, sinks.WriteNumeric(path, [][]float32{{1, 2.5, 3}}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1 2.5 3\n", string(got))
}

func TestWriteNumericMultiRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, sinks.WriteNumeric(path, [][]float32{{1, 2}, {3, 4}}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1 2\n3 4\n", string(got))
}

func TestWriteNumericEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, sinks.WriteNumeric(path, nil))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPlotWritesNonemptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	got, err := sinks.Plot(path, []float32{0.1, 0.2, 0.15, 0.3})
	require.NoError(t, err)
	assert.Equal(t, path, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotEmptySeriesStillWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	_, err := sinks.Plot(path, nil)
	assert.NoError(t, err)
}
