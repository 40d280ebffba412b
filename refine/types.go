package refine

import "github.com/sunpia/tetgen/meshstore"

// segKey canonically identifies a constrained segment by its two
// endpoints, ordered so (a,b) and (b,a) collide to the same key.
type segKey struct{ lo, hi meshstore.VertexID }

func makeSegKey(a, b meshstore.VertexID) segKey {
	if a < b {
		return segKey{a, b}
	}
	return segKey{b, a}
}

// subKey canonically identifies a recovered subface by its three
// vertices, sorted ascending so any permutation collides to one key.
type subKey struct{ a, b, c meshstore.VertexID }

func makeSubKey(a, b, c meshstore.VertexID) subKey {
	v := [3]meshstore.VertexID{a, b, c}
	// Insertion sort: three elements, not worth a library call.
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	if v[1] > v[2] {
		v[1], v[2] = v[2], v[1]
	}
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	return subKey{v[0], v[1], v[2]}
}

// discoverSubfaces scans every live, non-ghost tetrahedron for
// FaceMarker-tagged faces (constraint.RecoverFacet's output) and returns
// each distinct subface's marker, deduplicated since a facet marks both
// tets sharing it.
func discoverSubfaces(store *meshstore.MeshStore) map[subKey]int32 {
	out := map[subKey]int32{}
	for id := meshstore.TetID(0); int(id) < store.Tets.Len(); id++ {
		if !store.Tets.IsLive(id) {
			continue
		}
		t := store.Tets.Get(id)
		if t.IsGhost() {
			continue
		}
		for f := 0; f < 4; f++ {
			if t.FaceMarker[f] == -1 {
				continue
			}
			verts := t.FaceVertices(f)
			out[makeSubKey(verts[0], verts[1], verts[2])] = t.FaceMarker[f]
		}
	}
	return out
}

// segItem is a segment queued for splitting, ranked longest-first so the
// loop resolves the most severe encroachments before marginal ones (ties
// broken by the key itself for determinism, spec.md §5).
type segItem struct {
	key    segKey
	length float64
}

type segHeap []segItem

func (h segHeap) Len() int { return len(h) }
func (h segHeap) Less(i, j int) bool {
	if h[i].length != h[j].length {
		return h[i].length > h[j].length
	}
	return h[i].key.lo < h[j].key.lo || (h[i].key.lo == h[j].key.lo && h[i].key.hi < h[j].key.hi)
}
func (h segHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *segHeap) Push(x interface{}) { *h = append(*h, x.(segItem)) }
func (h *segHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// subItem is a subface queued for circumcenter insertion, ranked
// largest-diametral-radius first.
type subItem struct {
	key    subKey
	radius float64
}

type subHeap []subItem

func (h subHeap) Len() int { return len(h) }
func (h subHeap) Less(i, j int) bool {
	if h[i].radius != h[j].radius {
		return h[i].radius > h[j].radius
	}
	return h[i].key.a < h[j].key.a
}
func (h subHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *subHeap) Push(x interface{}) { *h = append(*h, x.(subItem)) }
func (h *subHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// tetItem is a tetrahedron queued for circumcenter insertion, ranked
// worst-radius-edge-ratio first.
type tetItem struct {
	id    meshstore.TetID
	ratio float64
}

type tetHeap []tetItem

func (h tetHeap) Len() int { return len(h) }
func (h tetHeap) Less(i, j int) bool {
	if h[i].ratio != h[j].ratio {
		return h[i].ratio > h[j].ratio
	}
	return h[i].id < h[j].id
}
func (h tetHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *tetHeap) Push(x interface{}) { *h = append(*h, x.(tetItem)) }
func (h *tetHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
