// Package meshstore implements the vertex/tetrahedron arena, ghost
// tetrahedra, and the point-location, cavity, and flip primitives the
// Delaunay builder, constraint recoverer, region carver, and quality
// refiner all share (spec.md §4.2).
package meshstore

import (
	"math/rand"

	"github.com/sunpia/tetgen/meshindex"
	"github.com/sunpia/tetgen/predicate"
	"github.com/sunpia/tetgen/vec3"
)

// MeshStore owns the two arenas and the locate-acceleration index. All
// mutation goes through its methods; no operation leaves the arenas in a
// state where invariants I1-I5 don't hold once it returns (spec.md §5).
type MeshStore struct {
	Vertices *VertexArena
	Tets     *TetArena

	index *meshindex.Index
	rng   *rand.Rand
	// last is the most recently touched non-ghost tetrahedron, the
	// default locate seed when the index is empty.
	last TetID
}

// New returns an empty mesh store. seed drives the tie-breaking random
// permutations Locate uses, so two stores built with the same seed and
// fed the same operations in the same order behave identically
// (spec.md §5 determinism).
func New(seed int64) *MeshStore {
	return &MeshStore{
		Vertices: NewVertexArena(),
		Tets:     NewTetArena(),
		index:    meshindex.New(),
		rng:      rand.New(rand.NewSource(seed)),
		last:     NoTet,
	}
}

// point3 converts a live vertex id (Infinite not allowed) to a
// predicate.Point3.
func (m *MeshStore) point3(id VertexID) predicate.Point3 {
	p := m.Vertices.Point(id)
	return predicate.Point3{X: p.X, Y: p.Y, Z: p.Z}
}

func toPoint3(p vec3.Vec) predicate.Point3 {
	return predicate.Point3{X: p.X, Y: p.Y, Z: p.Z}
}

// orient3 evaluates Orient3D on three stored vertices and a query point.
// It has no special handling of Infinite: callers pass only real
// vertices (for a ghost, the face opposite its Infinite slot).
func (m *MeshStore) orient3(a, b, c VertexID, d predicate.Point3) predicate.Sign {
	pa, pb, pc := m.point3(a), m.point3(b), m.point3(c)
	return predicate.Orient3D(pa, pb, pc, d)
}

func (m *MeshStore) insphere(a, b, c, d, e VertexID) predicate.Sign {
	if d == Infinite {
		// No real tet circumsphere contains a point "beyond" the convex
		// hull in the ghost's sense; ghosts never bound a finite cavity
		// on their own, callers special-case IsGhost before calling this.
		return predicate.Positive
	}
	pa, pb, pc, pd := m.point3(a), m.point3(b), m.point3(c), m.point3(d)
	pe := m.point3(e)
	return predicate.InSphere(pa, pb, pc, pd, pe)
}

// touch records id as the most-recently-modified tetrahedron and updates
// the spatial index with its current bounding box (ghosts are skipped:
// they have no finite extent to index).
func (m *MeshStore) touch(id TetID) {
	t := m.Tets.Get(id)
	if t.IsGhost() {
		return
	}
	m.last = id
	box := vec3.EmptyBox3()
	for _, v := range t.V {
		box = box.Extend(m.Vertices.Point(v))
	}
	m.index.Update(int32(id), box)
}

func (m *MeshStore) untouch(id TetID) {
	m.index.Remove(int32(id))
}

// CheckInvariants verifies P1 (positive orientation) and P2 (mutual,
// vertex-consistent neighbor links) across every live tetrahedron. It is
// the testable hook spec.md §8 requires and is intended for test and
// diagnostic use, not the hot path.
func (m *MeshStore) CheckInvariants() error {
	for id := TetID(0); int(id) < m.Tets.Len(); id++ {
		if !m.Tets.IsLive(id) {
			continue
		}
		t := m.Tets.Get(id)
		if !t.IsGhost() {
			a, b, c, d := m.point3(t.V[0]), m.point3(t.V[1]), m.point3(t.V[2]), m.point3(t.V[3])
			if predicate.Orient3D(a, b, c, d) != predicate.Positive {
				return invariantErrorf("tet %d fails P1: orient3d not positive", id)
			}
		}
		for f := 0; f < 4; f++ {
			nb := t.Nbr[f]
			if nb == NoTet {
				return invariantErrorf("tet %d face %d has no neighbor link", id, f)
			}
			nt := m.Tets.Get(nb)
			backFace := int(t.NbrFace[f])
			if nt.Nbr[backFace] != id {
				return invariantErrorf("tet %d face %d <-> tet %d face %d not mutual", id, f, nb, backFace)
			}
			want := t.FaceVertices(f)
			got := nt.FaceVertices(backFace)
			if !sameTriple(want, got) {
				return invariantErrorf("tet %d face %d and tet %d face %d vertex sets differ", id, f, nb, backFace)
			}
		}
	}
	return nil
}

func sameTriple(a, b [3]VertexID) bool {
	count := func(s [3]VertexID, v VertexID) int {
		n := 0
		for _, x := range s {
			if x == v {
				n++
			}
		}
		return n
	}
	for _, v := range a {
		if count(a, v) != count(b, v) {
			return false
		}
	}
	return true
}
