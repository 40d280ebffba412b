package meshstore

import (
	"github.com/sunpia/tetgen/predicate"
	"github.com/sunpia/tetgen/vec3"
)

// Position classifies where a located point falls relative to the
// tetrahedron Locate returns (spec.md §4.2).
type Position int

const (
	Inside Position = iota
	OnFace
	OnEdge
	OnVertex
)

// LocateResult is Locate's return value. Index/Index2 are local vertex
// indices (0-3) into the returned tetrahedron, meaningful only for the
// matching Position: OnFace uses Index (the face index the point lies
// on), OnEdge uses Index and Index2 (the two vertices the edge spans),
// OnVertex uses Index (the coincident vertex).
type LocateResult struct {
	Tet           TetID
	Pos           Position
	Index, Index2 int
}

// maxWalkSteps bounds the stochastic walk so a bug in ghost-face handling
// fails loudly (an INVARIANT error) instead of spinning forever; the
// randomized walk itself is proven to terminate on a Delaunay mesh
// (spec.md §4.2), so hitting this cap means an invariant is already
// broken upstream.
const maxWalkSteps = 1_000_000

// Locate implements spec.md §4.2's stochastic walk: starting from a seed
// tetrahedron, repeatedly cross the face whose far side contains p (as
// judged by Orient3D) until every face test is non-negative.
func (m *MeshStore) Locate(p vec3.Vec) (LocateResult, error) {
	cur := m.seedTet(p)
	if cur == NoTet {
		return LocateResult{}, invariantErrorf("locate: empty mesh store")
	}
	pp := toPoint3(p)

	for step := 0; step < maxWalkSteps; step++ {
		t := m.Tets.Get(cur)

		if t.IsGhost() {
			slot := t.InfiniteSlot()
			f := localFace[slot]
			s := predicate.Orient3D(m.point3(t.V[f[0]]), m.point3(t.V[f[1]]), m.point3(t.V[f[2]]), pp)
			if s == predicate.Negative {
				// p is genuinely outside the hull on this face: the
				// ghost tet contains it.
				return LocateResult{Tet: cur, Pos: Inside}, nil
			}
			// p is back on the real side of the hull face; cross back
			// into the adjoining real tetrahedron and keep walking.
			cur = t.Nbr[slot]
			continue
		}

		order := m.rng.Perm(4)
		signs := [4]predicate.Sign{}
		movedTo := NoTet
		for _, i := range order {
			f := localFace[i]
			signs[i] = predicate.Orient3D(m.point3(t.V[f[0]]), m.point3(t.V[f[1]]), m.point3(t.V[f[2]]), pp)
			if signs[i] == predicate.Negative && movedTo == NoTet {
				movedTo = t.Nbr[i]
			}
		}
		if movedTo != NoTet {
			cur = movedTo
			continue
		}

		// All four faces are non-negative: p is inside or on the
		// boundary of t. Classify using however many faces read Zero.
		zeroFaces := make([]int, 0, 4)
		for i, s := range signs {
			if s == predicate.Zero {
				zeroFaces = append(zeroFaces, i)
			}
		}
		switch len(zeroFaces) {
		case 0:
			return LocateResult{Tet: cur, Pos: Inside}, nil
		case 1:
			return LocateResult{Tet: cur, Pos: OnFace, Index: zeroFaces[0]}, nil
		case 2:
			i, j := zeroFaces[0], zeroFaces[1]
			a, b := edgeOf(i, j)
			return LocateResult{Tet: cur, Pos: OnEdge, Index: a, Index2: b}, nil
		case 3:
			// The single non-zero face is opposite the coincident vertex.
			for i, s := range signs {
				if s != predicate.Zero {
					return LocateResult{Tet: cur, Pos: OnVertex, Index: i}, nil
				}
			}
		}
	}
	return LocateResult{}, invariantErrorf("locate: stochastic walk exceeded %d steps", maxWalkSteps)
}

// edgeOf returns the two local vertex indices shared by faces i and j
// (the edge their intersection spans): the two local indices that are
// neither i nor j.
func edgeOf(i, j int) (int, int) {
	var out [2]int
	n := 0
	for k := 0; k < 4; k++ {
		if k != i && k != j {
			out[n] = k
			n++
		}
	}
	return out[0], out[1]
}

// seedTet picks a starting tetrahedron for Locate: the index's best
// guess near p, falling back to the last-touched tet, falling back to
// any live tet.
func (m *MeshStore) seedTet(p vec3.Vec) TetID {
	if id, ok := m.index.Nearest(p); ok && m.Tets.IsLive(TetID(id)) {
		return TetID(id)
	}
	if m.last != NoTet && m.Tets.IsLive(m.last) {
		return m.last
	}
	for id := TetID(0); int(id) < m.Tets.Len(); id++ {
		if m.Tets.IsLive(id) {
			return id
		}
	}
	return NoTet
}
