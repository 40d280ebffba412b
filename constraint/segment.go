package constraint

import (
	"github.com/sunpia/tetgen/meshstore"
	"github.com/sunpia/tetgen/vec3"
)

// maxFlipAttempts bounds how many speculative 2-3 flips RecoverSegment
// tries around endpoint a before giving up and falling back to a
// Steiner point, per spec.md §4.4.
const maxFlipAttempts = 64

// minSpacingFraction is the fallback constant fraction of the shortest
// adjacent input edge spec.md §4.4 requires a Steiner point to stay at
// least that far from either segment endpoint.
const minSpacingFraction = 0.25

// Recoverer applies constraint recovery atop an already-built Delaunay
// mesh store.
type Recoverer struct {
	store *meshstore.MeshStore
}

// New returns a Recoverer over an existing mesh store (typically the one
// delaunay.Builder just produced).
func New(store *meshstore.MeshStore) *Recoverer {
	return &Recoverer{store: store}
}

// RecoverSegment ensures the edge (a,b) exists as a chain of mesh edges,
// inserting Steiner points where a bounded flip search cannot clear the
// way. Returns the chain of vertex ids from a to b inclusive (length 2 if
// no Steiner point was needed).
func (r *Recoverer) RecoverSegment(a, b meshstore.VertexID) ([]meshstore.VertexID, error) {
	if r.edgeExists(a, b) {
		return []meshstore.VertexID{a, b}, nil
	}
	if r.tryFlipRecover(a, b) {
		return []meshstore.VertexID{a, b}, nil
	}

	pa, pb := r.store.Vertices.Point(a), r.store.Vertices.Point(b)
	mid := pa.Midpoint(pb)
	spacing := r.shortestAdjacentEdge(a)
	if s := r.shortestAdjacentEdge(b); s < spacing {
		spacing = s
	}
	clipped := clipToMinSpacing(pa, pb, mid, spacing*minSpacingFraction)

	// dup is ignored: whether the clipped point lands exactly on a prior
	// Steiner point or is freshly inserted, id names the vertex to split
	// the recursion at either way.
	id, _, _, err := r.store.InsertVertex(clipped, meshstore.SteinerSegment, nil, -1)
	if err != nil {
		return nil, err
	}

	left, err := r.RecoverSegment(a, id)
	if err != nil {
		return nil, err
	}
	right, err := r.RecoverSegment(id, b)
	if err != nil {
		return nil, err
	}
	return append(left[:len(left)-1:len(left)-1], right...), nil
}

func (r *Recoverer) edgeExists(a, b meshstore.VertexID) bool {
	return len(r.store.EnumerateEdgeRing(a, b)) > 0
}

// tryFlipRecover speculatively applies Flip23 to pairs of tetrahedra
// around a, checking whether the flip happens to create the edge (a,b)
// directly.
func (r *Recoverer) tryFlipRecover(a, b meshstore.VertexID) bool {
	return r.trySpeculativeFlips(a, func() bool { return r.edgeExists(a, b) })
}

// trySpeculativeFlips applies Flip23 to pairs of tetrahedra around
// center, checking done() after each flip, and reverting via Flip32
// (Flip23's exact geometric inverse) whenever a flip doesn't satisfy
// done. This never leaves the mesh in a state other than "done()
// satisfied" or "unchanged from before the call", so a failed search is
// always safe to fall back from (spec.md §4.4's flip-walk).
func (r *Recoverer) trySpeculativeFlips(center meshstore.VertexID, done func() bool) bool {
	for attempt := 0; attempt < maxFlipAttempts; attempt++ {
		star := r.store.EnumerateStar(center)
		progressed := false
		for _, t1 := range star {
			tet := r.store.Tets.Get(t1)
			if tet.IsGhost() {
				continue
			}
			vi := tet.IndexOf(center)
			if vi == -1 {
				continue
			}
			for f := 0; f < 4; f++ {
				if f == vi {
					continue // face opposite center never shares it
				}
				t2 := tet.Nbr[f]
				if r.store.Tets.Get(t2).IsGhost() {
					continue
				}
				news, err := r.store.Flip23(t1, t2)
				if err != nil {
					continue
				}
				if done() {
					return true
				}
				if _, err := r.store.Flip32(news); err != nil {
					// Should not happen: Flip23's own output always
					// satisfies Flip32's precondition. If it somehow
					// does, stop searching rather than leave a dangling
					// speculative flip in place.
					return done()
				}
				progressed = true
				break
			}
			if progressed {
				break
			}
		}
		if !progressed {
			return false
		}
	}
	return false
}

func (r *Recoverer) shortestAdjacentEdge(v meshstore.VertexID) float64 {
	p := r.store.Vertices.Point(v)
	best := -1.0
	for _, id := range r.store.EnumerateStar(v) {
		t := r.store.Tets.Get(id)
		if t.IsGhost() {
			continue
		}
		for _, u := range t.V {
			if u == v {
				continue
			}
			d := r.store.Vertices.Point(u).Sub(p).Length()
			if best < 0 || d < best {
				best = d
			}
		}
	}
	if best <= 0 {
		return 1.0
	}
	return best
}

// clipToMinSpacing moves mid along segment a-b to distance minDist from
// whichever endpoint it would otherwise land closer than minDist to
// (unless the segment is no longer than 2*minDist), guaranteeing Steiner
// insertion makes real progress and the recursion in RecoverSegment
// terminates (spec.md §4.4's local-feature-size termination argument).
func clipToMinSpacing(a, b, mid vec3.Vec, minDist float64) vec3.Vec {
	full := b.Sub(a).Length()
	if full <= 2*minDist {
		return mid
	}
	distFromA := mid.Sub(a).Length()
	if distFromA < minDist {
		dir := b.Sub(a).Normalize()
		return a.Add(dir.Scale(minDist))
	}
	distFromB := mid.Sub(b).Length()
	if distFromB < minDist {
		dir := a.Sub(b).Normalize()
		return b.Add(dir.Scale(minDist))
	}
	return mid
}
