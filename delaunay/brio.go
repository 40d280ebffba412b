package delaunay

import (
	"math/rand"
	"sort"

	"github.com/sunpia/tetgen/vec3"
)

// roundRetain is the probability a point survives into the next
// (smaller, coarser) BRIO round; 1/8 matches the bucket-shrink factor the
// BRIO literature (Amenta, Choi & Rote) recommends so round sizes
// decrease geometrically fast enough that the earliest, coarsest rounds
// stay small even for large inputs.
const roundRetain = 1.0 / 8.0

// minRoundSize stops the halving once a round would otherwise fall below
// a single insertion-order "dense enough to just sort" bucket.
const minRoundSize = 16

// briOrder returns point indices in Biased Randomized Insertion Order: a
// randomized partition into geometrically shrinking rounds (each point
// independently promoted to a coarser round with probability
// roundRetain), processed coarsest round first, each round internally
// sorted along a Hilbert curve fitted to the input's bounding box
// (spec.md §4.3).
func briOrder(points []vec3.Vec, rng *rand.Rand) []int {
	n := len(points)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if n <= minRoundSize {
		hilbertSort(points, idx)
		return idx
	}

	var rounds [][]int
	remaining := idx
	for len(remaining) > minRoundSize {
		var keep, next []int
		for _, i := range remaining {
			if rng.Float64() < roundRetain {
				keep = append(keep, i)
			} else {
				next = append(next, i)
			}
		}
		if len(keep) == 0 || len(next) == 0 {
			break
		}
		// next stays in this (finer) round; keep is promoted and split again.
		rounds = append([][]int{next}, rounds...)
		remaining = keep
	}
	rounds = append([][]int{remaining}, rounds...)

	// rounds[0] is the coarsest (smallest) round; process it first so the
	// incremental builder establishes a rough hull before the bulk of the
	// points refine it, per the BRIO strategy.
	out := make([]int, 0, n)
	for _, r := range rounds {
		hilbertSort(points, r)
		out = append(out, r...)
	}
	return out
}

// hilbertSort reorders idx (indices into points) along a Hilbert curve
// fitted to the bounding box of the points idx names.
func hilbertSort(points []vec3.Vec, idx []int) {
	if len(idx) < 2 {
		return
	}
	box := vec3.EmptyBox3()
	for _, i := range idx {
		box = box.Extend(points[i])
	}
	size := box.Size()
	scale := func(v, lo, span float64) uint32 {
		if span <= 0 {
			return 0
		}
		f := (v - lo) / span
		if f < 0 {
			f = 0
		}
		if f > 1 {
			f = 1
		}
		return uint32(f * float64((uint32(1)<<hilbertOrder)-1))
	}
	keys := make(map[int]uint64, len(idx))
	for _, i := range idx {
		p := points[i]
		x := scale(p.X, box.Min.X, size.X)
		y := scale(p.Y, box.Min.Y, size.Y)
		z := scale(p.Z, box.Min.Z, size.Z)
		keys[i] = hilbertIndex(hilbertOrder, x, y, z)
	}
	sort.Slice(idx, func(a, b int) bool {
		return keys[idx[a]] < keys[idx[b]]
	})
}
