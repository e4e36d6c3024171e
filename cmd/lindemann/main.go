// Command lindemann computes the Lindemann index of one or more
// molecular-dynamics trajectories: the trajectory-wide scalar, the
// per-frame stream, the per-atom-per-frame matrix, a PDF plot of the
// per-frame stream, or a decorated copy of the input trajectory with an
// extra "lindemann" column.
package main

import (
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
)

const version = "0.1.0"

const (
	defaultPerFrameFile  = "lindemann_index_per_frame.txt"
	defaultPerAtomFile   = "lindemann_index_per_atom.txt"
	defaultPlotFile      = "lindemann_per_frame.pdf"
	defaultDecoratedFile = "lindemann_per_atom.lammpstrj"
)

type flags struct {
	trj       bool
	onTrj     bool
	parTrj    bool
	frames    bool
	onFrames  bool
	atoms     bool
	onAtoms   bool
	plot      bool
	lammpstrj bool
	version   bool
	timeit    bool
	memUse    bool
}

// normalizeArgs rewrites the multi-letter single-dash flags this command's
// contract uses (-ot, -of, -oa, -pt, -ti) into pflag's double-dash long
// form, since pflag's shorthand letters are restricted to a single rune.
// Single-letter flags (-t, -f, -a, -p, -l, -v, -m) and double-dash flags
// already in long form pass through unchanged.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if strings.HasPrefix(a, "-") && !strings.HasPrefix(a, "--") && len(a) > 2 {
			out[i] = "-" + a
			continue
		}
		out[i] = a
	}
	return out
}

func parseFlags(args []string) (flags, []string, error) {
	fs := flag.NewFlagSet("lindemann", flag.ContinueOnError)
	var f flags
	fs.BoolVarP(&f.trj, "t", "t", false, "calculates the Lindemann index for the trajectory file(s)")
	fs.BoolVar(&f.onTrj, "ot", false, "calculates the Lindemann index for the trajectory file(s), reduced memory usage")
	fs.BoolVar(&f.parTrj, "pt", false, "calculates the Lindemann index for the trajectory file(s) using the parallel chunked reducer")
	fs.BoolVarP(&f.frames, "f", "f", false, "calculates the Lindemann index for each frame")
	fs.BoolVar(&f.onFrames, "of", false, "calculates the Lindemann index for each frame, reduced memory usage")
	fs.BoolVarP(&f.atoms, "a", "a", false, "calculates the Lindemann index for each atom for each frame")
	fs.BoolVar(&f.onAtoms, "oa", false, "calculates the Lindemann index for each atom for each frame, reduced memory usage")
	fs.BoolVarP(&f.plot, "p", "p", false, "writes a PDF plot of the Lindemann index vs. frame")
	fs.BoolVarP(&f.lammpstrj, "l", "l", false, "writes the per-atom Lindemann index into a decorated trajectory")
	fs.BoolVarP(&f.version, "v", "v", false, "prints the version and exits")
	fs.BoolVar(&f.timeit, "ti", false, "times the scalar computation and prints elapsed seconds")
	fs.BoolVarP(&f.memUse, "m", "m", false, "prints the memory estimate and exits")
	fs.SortFlags = false

	if err := fs.Parse(normalizeArgs(args)); err != nil {
		return flags{}, nil, err
	}
	return f, fs.Args(), nil
}

func main() {
	f, trajFiles, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if f.version {
		fmt.Printf("lindemann version: %s\n", version)
		return
	}

	if len(trajFiles) == 0 {
		fmt.Fprintln(os.Stderr, "at least one trajectory file is required")
		os.Exit(2)
	}

	if err := dispatch(f, trajFiles); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
