package meshstore

import (
	"github.com/sunpia/tetgen/meshlog"
	"github.com/sunpia/tetgen/predicate"
)

// Bootstrap builds the first real tetrahedron from four presumed
// non-coplanar vertices, swapping b/c if necessary to make the
// orientation positive (spec.md §4.3), then wraps every one of its four
// faces with a ghost tetrahedron so the rest of the mesh store can treat
// "outside the current hull" uniformly (spec.md §3 "Ghost tetrahedra").
// Returns the ids of the five tetrahedra created (one real, four ghost).
func (m *MeshStore) Bootstrap(a, b, c, d VertexID) ([]TetID, error) {
	pa, pb, pc, pd := m.point3(a), m.point3(b), m.point3(c), m.point3(d)
	s := predicate.Orient3D(pa, pb, pc, pd)
	if s == predicate.Zero {
		return nil, meshlog.Newf(meshlog.Geometry, "bootstrap: first four points are coplanar")
	}
	if s == predicate.Negative {
		b, c = c, b
	}

	real := m.Tets.Add(Tetrahedron{
		V:          [4]VertexID{a, b, c, d},
		FaceMarker: [4]int32{-1, -1, -1, -1},
		Region:     -1,
	})

	ghosts := make([]TetID, 4)
	for i := 0; i < 4; i++ {
		f := localFace[i]
		realVerts := m.Tets.Get(real).V
		ghosts[i] = m.Tets.Add(Tetrahedron{
			V:          [4]VertexID{Infinite, realVerts[f[0]], realVerts[f[2]], realVerts[f[1]]},
			FaceMarker: [4]int32{-1, -1, -1, -1},
			Region:     -1,
		})
		m.Tets.bond(real, i, ghosts[i], 0)
	}
	// Bond the ghosts to each other across their shared edges-with-infinity.
	linkGhostRing(m, real, ghosts)

	m.touch(real)
	for _, g := range ghosts {
		v := m.Tets.Get(g).V
		for _, id := range v {
			if id != Infinite {
				m.Vertices.Get(id).Incident = real
			}
		}
	}

	return append([]TetID{real}, ghosts...), nil
}

// linkGhostRing wires the four ghost tetrahedra surrounding a freshly
// bootstrapped real tet to each other: ghost i (opposite real face i,
// which excludes real vertex i) shares the edge "infinity - v" with
// ghost j for each real vertex v that both ghosts' faces contain.
func linkGhostRing(m *MeshStore, real TetID, ghosts []TetID) {
	rv := m.Tets.Get(real).V
	// ghost[i] has vertices {Infinite} U (real face i's vertices), i.e.
	// every real vertex except rv[i]. For each pair (i, j), i != j, the
	// two ghosts share the two real vertices other than rv[i] and rv[j],
	// i.e. they share an edge of two real vertices plus infinity as the
	// third point of each face: the face opposite rv[j] in ghost[i].
	for i := 0; i < 4; i++ {
		gi := m.Tets.Get(ghosts[i])
		for localI := 0; localI < 4; localI++ {
			if gi.V[localI] == Infinite {
				continue
			}
			if gi.Nbr[localI] != NoTet {
				continue
			}
			// The face opposite gi.V[localI] in ghost i is shared with
			// the ghost opposite that same real vertex.
			target := indexOfVertex(rv, gi.V[localI])
			gj := m.Tets.Get(ghosts[target])
			localJ := indexOfVertexInTet(gj, gi)
			m.Tets.bond(ghosts[i], localI, ghosts[target], localJ)
		}
	}
}

func indexOfVertex(vs [4]VertexID, v VertexID) int {
	for i, u := range vs {
		if u == v {
			return i
		}
	}
	return -1
}

// indexOfVertexInTet finds, within tet b, the local face index opposite
// the one vertex of a that b is missing (the two ghosts share exactly
// three vertices: Infinite plus two real vertices; the face to bond is
// opposite the real vertex that b lacks and a has).
func indexOfVertexInTet(b *Tetrahedron, a *Tetrahedron) int {
	for i, v := range b.V {
		if indexOfVertex(a.V, v) == -1 {
			return i
		}
	}
	return -1
}
