// Package pairindex maps unordered atom pairs (i, j), i < j, to a flat
// index in 0..N(N-1)/2. The mapping is row-major
// upper-triangular and is only required to be internally consistent for
// the lifetime of a single computation, never part of any external
// contract.
package pairindex

// Count returns the number of unordered pairs P = n(n-1)/2 for n atoms.
func Count(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// Index returns the flat pair index for 0 <= i < j < n.
//
// idx(i,j) = i*(2n-i-1)/2 + (j-i-1)
//
// Callers in the hot path do not call Index per pair: the engine walks
// pairs with Iterate, and the kernel runs its own i<j nested loop with a
// running counter; both orders agree with this formula by construction.
func Index(i, j, n int) int {
	return i*(2*n-i-1)/2 + (j - i - 1)
}

// Iterate calls fn(i, j, p) for every unordered pair 0 <= i < j < n, with
// p running 0..Count(n)-1 in the same order Index would produce. This is
// the shared iteration order every component in this module must use so
// a pair index computed one way is never misread by a component that
// computed it another way.
func Iterate(n int, fn func(i, j, p int)) {
	p := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			fn(i, j, p)
			p++
		}
	}
}
