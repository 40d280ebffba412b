package delaunay

// hilbertIndex computes the index of an integer grid cell along the
// 3-dimensional Hilbert curve of the given bit order, using Skilling's
// transpose-based algorithm (generalizes directly to any dimension; this
// package only ever calls it with n=3). Grounded on spec.md §4.3's "BRIO =
// Hilbert-curve sort + randomized biased bucketing" requirement — TetGen's
// own brio_hilbert switch (original_source/python/tetgen/tetgen_behavior.py)
// names the technique but the Python reference never implements it, so the
// curve itself follows the standard public algorithm rather than a port.
func hilbertIndex(order uint, x, y, z uint32) uint64 {
	X := [3]uint64{uint64(x), uint64(y), uint64(z)}
	const n = 3
	m := uint64(1) << (order - 1)

	// Inverse undo: the first half of Skilling's encode transform.
	for q := m; q > 1; q >>= 1 {
		p := q - 1
		for i := 0; i < n; i++ {
			if X[i]&q != 0 {
				X[0] ^= p
			} else {
				t := (X[0] ^ X[i]) & p
				X[0] ^= t
				X[i] ^= t
			}
		}
	}

	// Gray encode.
	for i := 1; i < n; i++ {
		X[i] ^= X[i-1]
	}
	var t uint64
	for q := m; q > 1; q >>= 1 {
		if X[n-1]&q != 0 {
			t ^= q - 1
		}
	}
	for i := 0; i < n; i++ {
		X[i] ^= t
	}

	// Interleave bits, most significant first, to form the final index.
	var index uint64
	for b := int(order) - 1; b >= 0; b-- {
		for i := 0; i < n; i++ {
			index <<= 1
			if X[i]&(1<<uint(b)) != 0 {
				index |= 1
			}
		}
	}
	return index
}

// hilbertOrder is the bit depth used to quantize coordinates onto the
// curve: 16 bits per axis gives 65536 distinct cells per axis, far finer
// than any practical BRIO bucket needs to resolve ties.
const hilbertOrder = 16
