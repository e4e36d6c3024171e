// Package sinks implements the three output adapters: a whitespace-ASCII
// numeric writer, a PDF scatter plot of the per-frame stream, and a
// decorated-trajectory writer that re-emits an input trajectory with an
// extra "lindemann" column. All three are thin adapters over a
// well-understood format, in the spirit of small, single-purpose I/O
// helpers (PutRow/PutFloat32Array in the original common.go).
package sinks

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/dylansiegel/lindemann-go/internal/lderrors"
)

// WriteNumeric writes data as whitespace-separated ASCII, one row per
// line. It does not reshape its input: callers publishing a 1-D result
// (e.g. the per-frame stream) must pass one single-element row per
// value, matching np.savetxt's one-value-per-line behavior on a 1-D
// array, not a single row holding every value.
func WriteNumeric(path string, data [][]float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", lderrors.ErrOutputWriteFailed, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, row := range data {
		for i, v := range row {
			if i > 0 {
				if err := w.WriteByte(' '); err != nil {
					return fmt.Errorf("%w: %v", lderrors.ErrOutputWriteFailed, err)
				}
			}
			if _, err := w.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32)); err != nil {
				return fmt.Errorf("%w: %v", lderrors.ErrOutputWriteFailed, err)
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("%w: %v", lderrors.ErrOutputWriteFailed, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", lderrors.ErrOutputWriteFailed, err)
	}
	return nil
}
