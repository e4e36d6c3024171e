// Package lderrors defines the sentinel errors the numeric core and the
// trajectory/sink adapters surface, so the CLI can map them to nonzero
// exit codes with errors.Is instead of pattern-matching status strings
// the way a flat "ERR_IO"/"ERR_ZLIB" idiom would. Several kinds may share
// one exit code.
package lderrors

import "errors"

var (
	// ErrTrajectoryNotFound is returned when a frame source cannot open
	// its input.
	ErrTrajectoryNotFound = errors.New("lindemann: trajectory not found")

	// ErrEmptyTrajectory is returned when a trajectory promises zero
	// frames.
	ErrEmptyTrajectory = errors.New("lindemann: empty trajectory")

	// ErrInsufficientAtoms is returned when N < 2.
	ErrInsufficientAtoms = errors.New("lindemann: fewer than two atoms")

	// ErrFrameCountMismatch is returned when a frame source yields fewer
	// frames than it advertised while the engine was mid-stream.
	ErrFrameCountMismatch = errors.New("lindemann: frame source yielded fewer frames than advertised")

	// ErrUnsupportedMode names CLI flag combinations that aren't
	// meaningful, e.g. a per-frame/per-atom/plot/decorate mode with more
	// than one input trajectory. No code path returns it: for those
	// combinations the CLI prints a warning and exits successfully.
	ErrUnsupportedMode = errors.New("lindemann: unsupported mode")

	// ErrOutputWriteFailed wraps a sink I/O failure.
	ErrOutputWriteFailed = errors.New("lindemann: output write failed")
)
