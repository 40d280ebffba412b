// Package meshindex accelerates meshstore.Locate's stochastic walk by
// remembering, via an R-tree, a recently-touched tetrahedron near any
// given point. It is pure performance plumbing (SPEC_FULL.md §4.8):
// removing it changes nothing about which tetrahedron Locate ultimately
// returns, only how many orientation tests the walk needs to get there.
//
// Grounded on the teacher's own go.mod dependency
// github.com/dhconnelly/rtreego (no call site survived retrieval, so the
// usage below follows rtreego's documented Spatial/Rect API).
package meshindex

import (
	"github.com/dhconnelly/rtreego"

	"github.com/sunpia/tetgen/vec3"
)

// entry adapts a tetrahedron id and its bounding box to rtreego's Spatial
// interface.
type entry struct {
	tet  int32
	rect *rtreego.Rect
}

func (e *entry) Bounds() *rtreego.Rect { return e.rect }

// minChildren/maxChildren follow rtreego's own example usage for small to
// medium trees.
const minChildren = 2
const maxChildren = 8

// Index maps axis-aligned regions of space to the id of a tetrahedron
// last known to occupy that region.
type Index struct {
	tree    *rtreego.Rtree
	byTet   map[int32]*entry
}

// New returns an empty index.
func New() *Index {
	return &Index{
		tree:  rtreego.NewTree(3, minChildren, maxChildren),
		byTet: make(map[int32]*entry),
	}
}

func toRect(b vec3.Box3) *rtreego.Rect {
	size := b.Size()
	// rtreego requires strictly positive side lengths; pad degenerate
	// (zero-volume) boxes by an epsilon so a single-point tetrahedron
	// bounding box (never actually possible for a non-degenerate tet,
	// but cheap insurance against axis-aligned faces) still inserts.
	const pad = 1e-9
	lengths := []float64{
		maxf(size.X, pad),
		maxf(size.Y, pad),
		maxf(size.Z, pad),
	}
	point := rtreego.Point{b.Min.X, b.Min.Y, b.Min.Z}
	r, err := rtreego.NewRect(point, lengths)
	if err != nil {
		// NewRect only errors on non-positive lengths, which the
		// padding above rules out.
		panic(err)
	}
	return r
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Update (re)inserts tet with the given bounding box, replacing any
// previous entry for the same id.
func (idx *Index) Update(tet int32, box vec3.Box3) {
	idx.Remove(tet)
	e := &entry{tet: tet, rect: toRect(box)}
	idx.byTet[tet] = e
	idx.tree.Insert(e)
}

// Remove drops any entry for tet, if present.
func (idx *Index) Remove(tet int32) {
	if e, ok := idx.byTet[tet]; ok {
		idx.tree.Delete(e)
		delete(idx.byTet, tet)
	}
}

// Nearest returns a tetrahedron id whose last-known bounding box is
// close to p, or (0, false) if the index is empty.
func (idx *Index) Nearest(p vec3.Vec) (int32, bool) {
	if idx.tree.Size() == 0 {
		return 0, false
	}
	pt := rtreego.Point{p.X, p.Y, p.Z}
	results := idx.tree.NearestNeighbors(1, pt)
	if len(results) == 0 {
		return 0, false
	}
	return results[0].(*entry).tet, true
}
