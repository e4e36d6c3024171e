package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dylansiegel/lindemann-go/internal/engine"
	"github.com/dylansiegel/lindemann-go/internal/lderrors"
	"github.com/dylansiegel/lindemann-go/internal/memest"
	"github.com/dylansiegel/lindemann-go/internal/sinks"
	"github.com/dylansiegel/lindemann-go/internal/trajectory"
)

const multiProcessWarning = "multiprocessing is implemented only for the -t flag"

// asColumn reshapes a length-F 1-D result into F single-element rows, so
// sinks.WriteNumeric writes one value per line (matching np.savetxt's
// behavior on a 1-D array) instead of one line holding every value.
func asColumn(y []float32) [][]float32 {
	rows := make([][]float32, len(y))
	for i, v := range y {
		rows[i] = []float32{v}
	}
	return rows
}

// dispatch resolves the mode flags against the trajectory file list and
// runs the selected computation, mirroring the mutually-exclusive flag
// priority and single/multi-file fan-out of the reference CLI.
func dispatch(f flags, trajFiles []string) error {
	single := len(trajFiles) == 1

	switch {
	case f.memUse:
		return runMemUse(trajFiles, single)
	case f.timeit:
		return runTimeit(trajFiles, single)
	case f.lammpstrj:
		return runLammpstrj(trajFiles, single)
	case f.plot:
		return runPlot(trajFiles, single)
	case f.onAtoms:
		return runOnAtoms(trajFiles, single)
	case f.atoms:
		return runAtoms(trajFiles, single)
	case f.onFrames:
		return runOnFrames(trajFiles, single)
	case f.frames:
		return runFrames(trajFiles, single)
	case f.parTrj:
		return runParTrj(trajFiles, single)
	case f.trj:
		return runTrj(trajFiles, single)
	case f.onTrj:
		return runOnTrj(trajFiles, single)
	default:
		if single {
			return runOnTrj(trajFiles, true)
		}
		return runTrjParallelAcrossFiles(trajFiles)
	}
}

func openMaterialized(path string) (*trajectory.XYZSource, error) {
	return trajectory.OpenXYZ(path)
}

func runTrj(files []string, single bool) error {
	if !single {
		return runTrjParallelAcrossFiles(files)
	}
	src, err := openMaterialized(files[0])
	if err != nil {
		return err
	}
	defer src.Close()
	scalar, err := engine.Scalar(src)
	if err != nil {
		return err
	}
	fmt.Printf("lindemann index for the trajectory: %v\n", scalar)
	return nil
}

func runOnTrj(files []string, single bool) error {
	if !single {
		fmt.Println(multiProcessWarning)
		return nil
	}
	src, err := openMaterialized(files[0])
	if err != nil {
		return err
	}
	defer src.Close()
	scalar, err := engine.ScalarOnline(context.Background(), src)
	if err != nil {
		return err
	}
	fmt.Printf("lindemann index for the trajectory: %v\n", scalar)
	return nil
}

func runParTrj(files []string, single bool) error {
	if !single {
		fmt.Println(multiProcessWarning)
		return nil
	}
	src, err := openMaterialized(files[0])
	if err != nil {
		return err
	}
	defer src.Close()
	scalar, err := engine.ParallelScalar(context.Background(), src, runtime.GOMAXPROCS(0))
	if err != nil {
		return err
	}
	fmt.Printf("lindemann index for the trajectory: %v\n", scalar)
	return nil
}

// runTrjParallelAcrossFiles runs the sequential materialized scalar
// computation across independent trajectories with a worker pool sized to
// min(len(files), available parallelism); this is the multi-file fan-out
// the default mode and -t use for more than one input.
func runTrjParallelAcrossFiles(files []string) error {
	workers := len(files)
	if gp := runtime.GOMAXPROCS(0); gp < workers {
		workers = gp
	}
	fmt.Printf("using %d cores\n", workers)

	results := make([]float32, len(files))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			src, err := openMaterialized(path)
			if err != nil {
				return err
			}
			defer src.Close()
			scalar, err := engine.Scalar(src)
			if err != nil {
				return err
			}
			results[i] = scalar
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, path := range files {
		fmt.Printf("%s: %v\n", path, results[i])
	}
	return nil
}

func runFrames(files []string, single bool) error {
	if !single {
		fmt.Println(multiProcessWarning)
		return nil
	}
	src, err := openMaterialized(files[0])
	if err != nil {
		return err
	}
	defer src.Close()
	y, err := engine.PerFrame(src)
	if err != nil {
		return err
	}
	if err := sinks.WriteNumeric(defaultPerFrameFile, asColumn(y)); err != nil {
		return err
	}
	fmt.Printf("lindemann index saved as: %s\n", defaultPerFrameFile)
	return nil
}

func runOnFrames(files []string, single bool) error {
	if !single {
		fmt.Println(multiProcessWarning)
		return nil
	}
	src, err := openMaterialized(files[0])
	if err != nil {
		return err
	}
	defer src.Close()
	y, err := engine.PerFrameOnline(context.Background(), src)
	if err != nil {
		return err
	}
	if err := sinks.WriteNumeric(defaultPerFrameFile, asColumn(y)); err != nil {
		return err
	}
	fmt.Printf("lindemann index saved as: %s\n", defaultPerFrameFile)
	return nil
}

func runAtoms(files []string, single bool) error {
	if !single {
		fmt.Println(multiProcessWarning)
		return nil
	}
	src, err := openMaterialized(files[0])
	if err != nil {
		return err
	}
	defer src.Close()
	perAtom, err := engine.PerAtom(src)
	if err != nil {
		return err
	}
	if err := sinks.WriteNumeric(defaultPerAtomFile, perAtom); err != nil {
		return err
	}
	fmt.Printf("lindemann index saved as: %s\n", defaultPerAtomFile)
	return nil
}

func runOnAtoms(files []string, single bool) error {
	if !single {
		fmt.Println(multiProcessWarning)
		return nil
	}
	src, err := openMaterialized(files[0])
	if err != nil {
		return err
	}
	defer src.Close()
	perAtom, err := engine.PerAtomOnline(context.Background(), src)
	if err != nil {
		return err
	}
	if err := sinks.WriteNumeric(defaultPerAtomFile, perAtom); err != nil {
		return err
	}
	fmt.Printf("lindemann index saved as: %s\n", defaultPerAtomFile)
	return nil
}

func runPlot(files []string, single bool) error {
	if !single {
		fmt.Println(multiProcessWarning)
		return nil
	}
	src, err := openMaterialized(files[0])
	if err != nil {
		return err
	}
	defer src.Close()
	y, err := engine.PerFrame(src)
	if err != nil {
		return err
	}
	path, err := sinks.Plot(defaultPlotFile, y)
	if err != nil {
		return err
	}
	fmt.Printf("saved file as: %s\n", path)
	return nil
}

func runLammpstrj(files []string, single bool) error {
	if !single {
		fmt.Println(multiProcessWarning)
		return nil
	}
	src, err := openMaterialized(files[0])
	if err != nil {
		return err
	}
	defer src.Close()
	perAtom, err := engine.PerAtom(src)
	if err != nil {
		return err
	}
	if err := sinks.WriteDecoratedTrajectory(files[0], defaultDecoratedFile, perAtom); err != nil {
		return err
	}
	fmt.Printf("saved trajectory as: %s\n", defaultDecoratedFile)
	return nil
}

func runTimeit(files []string, single bool) error {
	if !single {
		fmt.Println(multiProcessWarning)
		return nil
	}
	src, err := openMaterialized(files[0])
	if err != nil {
		return err
	}
	defer src.Close()
	start := time.Now()
	scalar, err := engine.Scalar(src)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	fmt.Printf("lindemann index for the trajectory: %v\nruntime: %g seconds\n", scalar, elapsed.Seconds())
	return nil
}

func runMemUse(files []string, single bool) error {
	if !single {
		fmt.Println(multiProcessWarning)
		return nil
	}
	src, err := openMaterialized(files[0])
	if err != nil {
		return err
	}
	defer src.Close()
	report := memest.Estimate(src.NumFrames(), src.NumAtoms())
	fmt.Printf("memory use: %s\n", report)
	return nil
}

// exitCodeFor maps a returned error to a process exit code following the
// sentinel error kinds this command surfaces from the numeric core and
// trajectory readers.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, lderrors.ErrTrajectoryNotFound):
		return 3
	case errors.Is(err, lderrors.ErrEmptyTrajectory),
		errors.Is(err, lderrors.ErrInsufficientAtoms),
		errors.Is(err, lderrors.ErrFrameCountMismatch):
		return 4
	case errors.Is(err, lderrors.ErrUnsupportedMode):
		return 5
	case errors.Is(err, lderrors.ErrOutputWriteFailed):
		return 6
	default:
		return 1
	}
}
