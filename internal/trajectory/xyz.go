package trajectory

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dylansiegel/lindemann-go/internal/lderrors"
)

// XYZSource reads a LAMMPS-dump-style text trajectory: each frame is a
// fixed sequence of "ITEM: ..." header lines followed by one line per
// atom, repeated for every frame. This package parses the text form
// directly rather than shelling out to an external visualization
// pipeline.
//
// Gzip-compressed input (".gz" suffix) is supported transparently,
// wrapping a gzip.Reader around the raw file handle the same way
// openTrj does in coulomb.go — but because a gzip stream cannot be
// seeked, a .gz trajectory is read once at Open time and kept fully
// materialized in memory; an uncompressed trajectory is read
// frame-by-frame from disk on demand.
type XYZSource struct {
	path      string
	numAtoms  int
	numFrames int

	// Set when reading a plain (non-gzip) file: byte offsets, one per
	// frame, of that frame's first atom data line.
	file             *os.File
	frameOffset      []int64
	xCol, yCol, zCol int

	// Set when the source was gzip-compressed (or the caller asked for
	// eager materialization): every frame is already in memory.
	materialized [][][3]float32
}

// OpenXYZ opens and indexes a trajectory file. Indexing reads every
// header line once (to record frame boundaries and atom counts) but
// does not parse coordinate lines until Frame or Positions is called,
// except for gzip input where the whole file is decoded up front.
func OpenXYZ(path string) (*XYZSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", lderrors.ErrTrajectoryNotFound, path, err)
	}

	if strings.HasSuffix(path, ".gz") {
		defer f.Close()
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", lderrors.ErrTrajectoryNotFound, path, err)
		}
		defer gz.Close()
		src := &XYZSource{path: path}
		if err := src.materializeFrom(bufio.NewReader(gz)); err != nil {
			return nil, err
		}
		return src, nil
	}

	src := &XYZSource{path: path, file: f}
	if err := src.indexFrom(bufio.NewReader(f)); err != nil {
		f.Close()
		return nil, err
	}
	return src, nil
}

func (x *XYZSource) NumFrames() int { return x.numFrames }
func (x *XYZSource) NumAtoms() int  { return x.numAtoms }

// Close releases the underlying file handle, if one is held (no-op for
// a gzip-materialized source).
func (x *XYZSource) Close() error {
	if x.file != nil {
		return x.file.Close()
	}
	return nil
}

func parseAtomHeader(line string) (xCol, yCol, zCol int, err error) {
	fields := strings.Fields(strings.TrimPrefix(line, "ITEM: ATOMS"))
	xCol, yCol, zCol = -1, -1, -1
	for i, f := range fields {
		switch f {
		case "x", "xu", "xs":
			xCol = i
		case "y", "yu", "ys":
			yCol = i
		case "z", "zu", "zs":
			zCol = i
		}
	}
	if xCol < 0 || yCol < 0 || zCol < 0 {
		return 0, 0, 0, fmt.Errorf("lindemann: could not locate x/y/z columns in %q", line)
	}
	return xCol, yCol, zCol, nil
}

func parseAtomLine(line string, xCol, yCol, zCol int) ([3]float32, error) {
	fields := strings.Fields(line)
	max := xCol
	if yCol > max {
		max = yCol
	}
	if zCol > max {
		max = zCol
	}
	if max >= len(fields) {
		return [3]float32{}, fmt.Errorf("lindemann: short atom line %q", line)
	}
	var p [3]float32
	for k, col := range [3]int{xCol, yCol, zCol} {
		v, err := strconv.ParseFloat(fields[col], 32)
		if err != nil {
			return [3]float32{}, fmt.Errorf("lindemann: bad coordinate %q: %w", fields[col], err)
		}
		p[k] = float32(v)
	}
	return p, nil
}

// indexFrom scans a plain trajectory, recording one byte offset per
// frame (the start of that frame's first atom line) without retaining
// the parsed coordinates.
func (x *XYZSource) indexFrom(r *bufio.Reader) error {
	var offset int64
	for {
		line, err := r.ReadString('\n')
		isEOF := err != nil
		trimmed := strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(trimmed, "ITEM: NUMBER OF ATOMS") {
			countLine, cErr := r.ReadString('\n')
			if cErr != nil && countLine == "" {
				break
			}
			offset += int64(len(line)) + int64(len(countLine))
			n, pErr := strconv.Atoi(strings.TrimSpace(countLine))
			if pErr != nil {
				return fmt.Errorf("lindemann: bad atom count line %q: %w", countLine, pErr)
			}
			if x.numAtoms != 0 && x.numAtoms != n {
				return fmt.Errorf("lindemann: atom count changed mid-trajectory (%d -> %d)", x.numAtoms, n)
			}
			x.numAtoms = n
			line = ""
		} else if strings.HasPrefix(trimmed, "ITEM: ATOMS") {
			xCol, yCol, zCol, pErr := parseAtomHeader(trimmed)
			if pErr != nil {
				return pErr
			}
			x.xCol, x.yCol, x.zCol = xCol, yCol, zCol
			offset += int64(len(line))
			x.frameOffset = append(x.frameOffset, offset)

			// Skip the numAtoms data lines that follow this header.
			for i := 0; i < x.numAtoms; i++ {
				dl, dErr := r.ReadString('\n')
				offset += int64(len(dl))
				if dErr != nil {
					if i < x.numAtoms-1 || dl == "" {
						// Promised more atoms than the file actually has
						// for this frame; the frame is incomplete, so it
						// does not count.
						x.frameOffset = x.frameOffset[:len(x.frameOffset)-1]
					}
					break
				}
			}
			line = ""
		}

		if line != "" {
			offset += int64(len(line))
		}
		if isEOF {
			break
		}
	}
	x.numFrames = len(x.frameOffset)
	return nil
}

// materializeFrom parses every frame of a gzip stream into memory.
func (x *XYZSource) materializeFrom(r *bufio.Reader) error {
	for {
		line, err := r.ReadString('\n')
		isEOF := err != nil
		trimmed := strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(trimmed, "ITEM: NUMBER OF ATOMS") {
			countLine, _ := r.ReadString('\n')
			n, pErr := strconv.Atoi(strings.TrimSpace(countLine))
			if pErr != nil {
				return fmt.Errorf("lindemann: bad atom count line %q: %w", countLine, pErr)
			}
			if x.numAtoms != 0 && x.numAtoms != n {
				return fmt.Errorf("lindemann: atom count changed mid-trajectory (%d -> %d)", x.numAtoms, n)
			}
			x.numAtoms = n
		} else if strings.HasPrefix(trimmed, "ITEM: ATOMS") {
			xCol, yCol, zCol, pErr := parseAtomHeader(trimmed)
			if pErr != nil {
				return pErr
			}
			frame := make([][3]float32, 0, x.numAtoms)
			incomplete := false
			for i := 0; i < x.numAtoms; i++ {
				dl, dErr := r.ReadString('\n')
				if dErr != nil && dl == "" {
					incomplete = true
					break
				}
				p, aErr := parseAtomLine(dl, xCol, yCol, zCol)
				if aErr != nil {
					incomplete = true
					break
				}
				frame = append(frame, p)
			}
			if !incomplete {
				x.materialized = append(x.materialized, frame)
			}
		}
		if isEOF {
			break
		}
	}
	x.numFrames = len(x.materialized)
	return nil
}

func (x *XYZSource) Frame(i int, out [][3]float32) error {
	if i < 0 || i >= x.numFrames {
		return fmt.Errorf("lindemann: frame %d out of range (have %d)", i, x.numFrames)
	}
	if x.materialized != nil {
		copy(out, x.materialized[i])
		return nil
	}

	if _, err := x.file.Seek(x.frameOffset[i], 0); err != nil {
		return fmt.Errorf("%w: %v", lderrors.ErrOutputWriteFailed, err)
	}
	r := bufio.NewReader(x.file)
	for a := 0; a < x.numAtoms; a++ {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("%w: frame %d", lderrors.ErrFrameCountMismatch, i)
		}
		p, pErr := parseAtomLine(line, x.xCol, x.yCol, x.zCol)
		if pErr != nil {
			return pErr
		}
		out[a] = p
	}
	return nil
}

// Positions materializes every frame into a single tensor, for callers
// that want the Materialized interface over an on-disk, non-gzip
// source. The result is cached after the first call.
func (x *XYZSource) Positions() [][][3]float32 {
	if x.materialized != nil {
		return x.materialized
	}
	out := make([][][3]float32, x.numFrames)
	for i := range out {
		frame := make([][3]float32, x.numAtoms)
		if err := x.Frame(i, frame); err != nil {
			out = out[:i]
			break
		}
		out[i] = frame
	}
	x.materialized = out
	x.numFrames = len(out)
	return out
}
