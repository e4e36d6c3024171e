package sinks

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dylansiegel/lindemann-go/internal/lderrors"
)

// WriteDecoratedTrajectory reads the LAMMPS-dump-style trajectory at
// inPath and re-emits it to outPath with an extra scalar column named
// "lindemann" appended to every atom line, carrying that frame's row
// from perAtom. Input may be gzip-compressed (".gz" suffix); output is
// always plain text, using the ".lammpstrj" naming convention this
// sink's default filename follows.
func WriteDecoratedTrajectory(inPath, outPath string, perAtom [][]float32) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", lderrors.ErrTrajectoryNotFound, inPath, err)
	}
	defer in.Close()

	var r *bufio.Reader
	if strings.HasSuffix(inPath, ".gz") {
		gz, err := gzip.NewReader(in)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", lderrors.ErrTrajectoryNotFound, inPath, err)
		}
		defer gz.Close()
		r = bufio.NewReader(gz)
	} else {
		r = bufio.NewReader(in)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: %v", lderrors.ErrOutputWriteFailed, err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	defer w.Flush()

	frame := -1
	remainingInFrame := 0

	for {
		line, rerr := r.ReadString('\n')
		isEOF := rerr != nil
		trimmed := strings.TrimRight(line, "\r\n")

		switch {
		case strings.HasPrefix(trimmed, "ITEM: ATOMS"):
			frame++
			if len(perAtom) == 0 {
				return fmt.Errorf("%w: no per-atom rows available to decorate frame %d", lderrors.ErrOutputWriteFailed, frame)
			}
			remainingInFrame = len(perAtom[min(frame, len(perAtom)-1)])
			if _, werr := fmt.Fprintf(w, "%s lindemann\n", trimmed); werr != nil {
				return fmt.Errorf("%w: %v", lderrors.ErrOutputWriteFailed, werr)
			}
		case remainingInFrame > 0:
			atomIdx := len(perAtom[min(frame, len(perAtom)-1)]) - remainingInFrame
			var col float32
			if frame < len(perAtom) && atomIdx < len(perAtom[frame]) {
				col = perAtom[frame][atomIdx]
			}
			if _, werr := fmt.Fprintf(w, "%s %s\n", trimmed, strconv.FormatFloat(float64(col), 'g', -1, 32)); werr != nil {
				return fmt.Errorf("%w: %v", lderrors.ErrOutputWriteFailed, werr)
			}
			remainingInFrame--
		default:
			if _, werr := w.WriteString(line); werr != nil {
				return fmt.Errorf("%w: %v", lderrors.ErrOutputWriteFailed, werr)
			}
		}

		if isEOF {
			break
		}
	}
	return nil
}
