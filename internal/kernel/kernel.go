// Package kernel computes the pairwise Euclidean distances for a single
// frame into a caller-owned buffer. It never allocates: the output
// buffer, sized pairindex.Count(n), is the caller's to own and reuse
// across frames, the same way processKernel keeps all its state on the
// stack/caller buffers instead of the heap per row.
package kernel

import "math"

// Fill writes d[pairindex.Index(i,j,n)] = euclidean distance between
// atom i and atom j, for every i < j in positions x (length n). len(d)
// must be at least pairindex.Count(n); a shorter d makes Fill panic via
// an out-of-range index write rather than silently truncating, and
// entries past Count(n) are left untouched.
//
// The inner 3-component sum is accumulated in float32, matching the
// positions' own precision; the final sqrt is float32 too (spec
// requirement: no hidden precision upgrade inside the kernel — any
// precision gain happens one level up, in the Welford accumulator).
func Fill(x [][3]float32, d []float32) {
	p := 0
	n := len(x)
	for i := 0; i < n; i++ {
		xi := x[i]
		for j := i + 1; j < n; j++ {
			xj := x[j]
			dx := xi[0] - xj[0]
			dy := xi[1] - xj[1]
			dz := xi[2] - xj[2]
			sumSq := dx*dx + dy*dy + dz*dz
			d[p] = float32(math.Sqrt(float64(sumSq)))
			p++
		}
	}
}

// FillSquared is the same kernel without the final sqrt: it writes the
// squared distance for every pair in the same order as Fill. Fill does
// not call it; both carry their own copy of the loop. No caller in this
// module needs raw squared distances today.
func FillSquared(x [][3]float32, d []float32) {
	p := 0
	n := len(x)
	for i := 0; i < n; i++ {
		xi := x[i]
		for j := i + 1; j < n; j++ {
			xj := x[j]
			dx := xi[0] - xj[0]
			dy := xi[1] - xj[1]
			dz := xi[2] - xj[2]
			d[p] = dx*dx + dy*dy + dz*dz
			p++
		}
	}
}
