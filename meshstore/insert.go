package meshstore

import "github.com/sunpia/tetgen/vec3"

// InsertVertex is the common locate -> classify -> find_cavity ->
// fill_cavity path spec.md §4.2 describes once and every higher layer
// (delaunay's point-by-point build, constraint's Steiner fallback,
// refine's circumcenter insertion) needs verbatim. An exact coincidence
// with an existing vertex is reported via dup=true and no mutation is
// performed; ON_FACE/ON_EDGE locate results absorb every tetrahedron
// touching that face/edge before the cavity is grown, per spec.md §4.3.
func (m *MeshStore) InsertVertex(p vec3.Vec, tag Tag, attrs []float64, marker int32) (id VertexID, created []TetID, dup bool, err error) {
	loc, err := m.Locate(p)
	if err != nil {
		return NoVertex, nil, false, err
	}
	if loc.Pos == OnVertex {
		t := m.Tets.Get(loc.Tet)
		return t.V[loc.Index], nil, true, nil
	}

	seeds := []TetID{loc.Tet}
	switch loc.Pos {
	case OnFace:
		t := m.Tets.Get(loc.Tet)
		seeds = append(seeds, t.Nbr[loc.Index])
	case OnEdge:
		t := m.Tets.Get(loc.Tet)
		seeds = m.EnumerateEdgeRing(t.V[loc.Index], t.V[loc.Index2])
	}

	id = m.Vertices.Add(p, tag, attrs, marker)
	cav := m.FindCavityFrom(seeds, id)
	created = m.FillCavity(id, cav)
	return id, created, false, nil
}
