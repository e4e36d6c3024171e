package memest

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// String renders the report the way `lindemann -m` prints it: one line
// per representation, human-readable byte counts.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "frames=%d atoms=%d\n", r.Frames, r.Atoms)
	fmt.Fprintf(&b, "  materialized positions : %s\n", humanize.Bytes(uint64(r.PositionsBytes)))
	fmt.Fprintf(&b, "  pair-indexed state     : %s\n", humanize.Bytes(uint64(r.PairStateBytes)))
	fmt.Fprintf(&b, "  N x N pair matrices    : %s\n", humanize.Bytes(uint64(r.PairMatrixBytes)))
	fmt.Fprintf(&b, "  per-frame output       : %s\n", humanize.Bytes(uint64(r.PerFrameOutputBytes)))
	fmt.Fprintf(&b, "  per-atom output        : %s\n", humanize.Bytes(uint64(r.PerAtomOutputBytes)))
	return b.String()
}
