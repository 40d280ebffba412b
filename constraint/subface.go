package constraint

import "github.com/sunpia/tetgen/meshstore"

// findFace reports the tetrahedron and local face index whose three
// vertices are exactly {a,b,c}, if one currently exists.
func (r *Recoverer) findFace(a, b, c meshstore.VertexID) (meshstore.TetID, int, bool) {
	return r.store.FindFace(a, b, c)
}

// markFace stamps marker on both tetrahedra sharing the face at
// (id, face) — a facet boundary is interior to the mesh until region
// carving removes one side, so both adjoining tets carry the marker
// until then.
func (r *Recoverer) markFace(id meshstore.TetID, face int, marker int32) {
	t := r.store.Tets.Get(id)
	t.FaceMarker[face] = marker
	nb := t.Nbr[face]
	nbFace := int(t.NbrFace[face])
	r.store.Tets.Get(nb).FaceMarker[nbFace] = marker
}

// recoverSubface ensures triangle (a,b,c) — whose three edges are
// already recovered — is an actual tetrahedron face, trying a bounded
// flip search first and falling back to a centroid Steiner point
// (tagged SteinerFacet) split into three smaller subfaces otherwise,
// per spec.md §4.4.
func (r *Recoverer) recoverSubface(a, b, c meshstore.VertexID, marker int32) ([]Subface, error) {
	if id, face, ok := r.findFace(a, b, c); ok {
		r.markFace(id, face, marker)
		return []Subface{{Verts: [3]meshstore.VertexID{a, b, c}, Marker: marker}}, nil
	}

	if r.trySpeculativeFlips(a, func() bool {
		_, _, ok := r.findFace(a, b, c)
		return ok
	}) {
		if id, face, ok := r.findFace(a, b, c); ok {
			r.markFace(id, face, marker)
			return []Subface{{Verts: [3]meshstore.VertexID{a, b, c}, Marker: marker}}, nil
		}
	}

	pa := r.store.Vertices.Point(a)
	pb := r.store.Vertices.Point(b)
	pc := r.store.Vertices.Point(c)
	centroid := pa.Add(pb).Add(pc).DivScalar(3)

	steiner, _, _, err := r.store.InsertVertex(centroid, meshstore.SteinerFacet, nil, marker)
	if err != nil {
		return nil, err
	}
	if _, err := r.RecoverSegment(a, steiner); err != nil {
		return nil, err
	}
	if _, err := r.RecoverSegment(b, steiner); err != nil {
		return nil, err
	}
	if _, err := r.RecoverSegment(c, steiner); err != nil {
		return nil, err
	}

	var out []Subface
	for _, pair := range [3][2]meshstore.VertexID{{a, b}, {b, c}, {c, a}} {
		subs, err := r.recoverSubface(pair[0], pair[1], steiner, marker)
		if err != nil {
			return nil, err
		}
		out = append(out, subs...)
	}
	return out, nil
}
