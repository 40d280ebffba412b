package meshstore

import "github.com/sunpia/tetgen/vec3"

// BoundaryFace is one face of a Bowyer-Watson cavity's boundary: the
// three vertices in the order that keeps the cavity-interior point on
// the positive side (Orient3D(Verts, p) > 0), plus the tetrahedron and
// local face index on the far side that the new apex tet must bond to.
type BoundaryFace struct {
	Verts       [3]VertexID
	OutsideTet  TetID
	OutsideFace int
}

// Cavity is the set of tetrahedra whose circumsphere contains the point
// being inserted (spec.md §4.2's find_cavity), plus its boundary.
type Cavity struct {
	Tets     map[TetID]bool
	Boundary []BoundaryFace
}

// included reports whether tet id's circumsphere contains p: the
// standard InSphere test for a real tetrahedron, or the "p is outside
// this hull face" test for a ghost (spec.md §4.3: cavities grow across
// ghosts when p lies outside the current hull).
func (m *MeshStore) included(id TetID, p VertexID) bool {
	t := m.Tets.Get(id)
	if t.IsGhost() {
		slot := t.InfiniteSlot()
		f := localFace[slot]
		s := m.orient3(t.V[f[0]], t.V[f[1]], t.V[f[2]], m.point3(p))
		return s < 0
	}
	s := m.insphere(t.V[0], t.V[1], t.V[2], t.V[3], p)
	return s > 0
}

// FindCavity grows the Bowyer-Watson cavity of point p (already stored in
// the arena as id p) by BFS from loc.Tet, per spec.md §4.2.
func (m *MeshStore) FindCavity(loc LocateResult, p VertexID) *Cavity {
	return m.FindCavityFrom([]TetID{loc.Tet}, p)
}

// FindCavityFrom is FindCavity generalized to more than one seed
// tetrahedron, for degenerate locate results (spec.md §4.3: a point
// landing exactly ON_FACE or ON_EDGE must absorb every tet touching that
// face/edge, not just the one Locate happened to return).
func (m *MeshStore) FindCavityFrom(seeds []TetID, p VertexID) *Cavity {
	in := map[TetID]bool{}
	var queue []TetID
	for _, s := range seeds {
		if !in[s] {
			in[s] = true
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		t := m.Tets.Get(cur)
		for i := 0; i < 4; i++ {
			if t.FaceMarker[i] != -1 {
				// A recovered subface boundary: the cavity stops here
				// regardless of the InSphere test (spec.md §4.6 "cavities
				// never cross subfaces or segments — such faces instead
				// become the cavity boundary").
				continue
			}
			nb := t.Nbr[i]
			if in[nb] {
				continue
			}
			if m.included(nb, p) {
				in[nb] = true
				queue = append(queue, nb)
			}
		}
	}

	cav := &Cavity{Tets: in}
	for id := range in {
		t := m.Tets.Get(id)
		for i := 0; i < 4; i++ {
			nb := t.Nbr[i]
			if in[nb] {
				continue
			}
			f := localFace[i]
			cav.Boundary = append(cav.Boundary, BoundaryFace{
				Verts:       [3]VertexID{t.V[f[0]], t.V[f[1]], t.V[f[2]]},
				OutsideTet:  nb,
				OutsideFace: int(t.NbrFace[i]),
			})
		}
	}
	return cav
}

type edgeKey struct{ lo, hi VertexID }

func makeEdgeKey(a, b VertexID) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// FillCavity deletes cavity and connects p to every boundary face,
// rebuilding neighbor links, per spec.md §4.2. Returns the new
// tetrahedra.
func (m *MeshStore) FillCavity(p VertexID, cavity *Cavity) []TetID {
	type pending struct {
		id    TetID
		a, b, c VertexID
	}
	news := make([]pending, 0, len(cavity.Boundary))
	edges := make(map[edgeKey]struct{ tet TetID; face int })

	for _, bf := range cavity.Boundary {
		a, b, c := bf.Verts[0], bf.Verts[1], bf.Verts[2]
		id := m.Tets.Add(Tetrahedron{
			V:          [4]VertexID{p, a, b, c},
			FaceMarker: [4]int32{-1, -1, -1, -1},
			Region:     -1,
		})
		news = append(news, pending{id, a, b, c})

		// face 0 (opposite p) is the boundary face itself; it inherits
		// whatever facet marker that boundary already carried, so a
		// Steiner insertion near a recovered subface doesn't erase it.
		m.Tets.bond(id, 0, bf.OutsideTet, bf.OutsideFace)
		marker := m.Tets.Get(bf.OutsideTet).FaceMarker[bf.OutsideFace]
		m.Tets.Get(id).FaceMarker[0] = marker

		// faces 1,2,3 (opposite a,b,c) pair with the new tet across the
		// shared edge (b,c), (c,a), (a,b) respectively.
		pairUp := func(face int, u, v VertexID) {
			k := makeEdgeKey(u, v)
			if other, ok := edges[k]; ok {
				m.Tets.bond(id, face, other.tet, other.face)
				delete(edges, k)
			} else {
				edges[k] = struct {
					tet  TetID
					face int
				}{id, face}
			}
		}
		pairUp(1, b, c)
		pairUp(2, c, a)
		pairUp(3, a, b)
	}

	for id := range cavity.Tets {
		m.untouch(id)
		m.Tets.Delete(id)
	}

	result := make([]TetID, 0, len(news))
	for _, n := range news {
		m.touch(n.id)
		m.Vertices.Get(p).Incident = n.id
		m.Vertices.Get(n.a).Incident = n.id
		m.Vertices.Get(n.b).Incident = n.id
		m.Vertices.Get(n.c).Incident = n.id
		result = append(result, n.id)
	}
	return result
}

// InsertPoint runs the full locate -> find_cavity -> fill_cavity path of
// spec.md §4.3 for an already-allocated vertex id at point p, returning
// the newly created tetrahedra.
func (m *MeshStore) InsertPoint(p VertexID, at vec3.Vec) ([]TetID, LocateResult, error) {
	loc, err := m.Locate(at)
	if err != nil {
		return nil, loc, err
	}
	cav := m.FindCavity(loc, p)
	news := m.FillCavity(p, cav)
	return news, loc, nil
}
