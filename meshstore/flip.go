package meshstore

import "github.com/sunpia/tetgen/predicate"

// ErrNotFlippable is returned by the Flip* operations when the requested
// local retriangulation's geometric or topological preconditions fail
// (spec.md §4.2: "either succeeds or reports NOT_FLIPPABLE; never
// partially applied").
var ErrNotFlippable = flipError{}

type flipError struct{}

func (flipError) Error() string { return "meshstore: flip preconditions not met (NOT_FLIPPABLE)" }

// isPositivelyOriented reports whether the tuple v, read as a
// candidate tetrahedron (v0,v1,v2,v3), satisfies P1. Orient3D's sign is
// that of a 4x4 determinant, so permuting its four arguments changes the
// sign by the permutation's parity; checking the plain tuple this way is
// equivalent to checking any single localFace entry.
func (m *MeshStore) isPositivelyOriented(v [4]VertexID) bool {
	a, b, c, d := m.point3(v[0]), m.point3(v[1]), m.point3(v[2]), m.point3(v[3])
	return predicate.Orient3D(a, b, c, d) == predicate.Positive
}

// Flip14 splits tetrahedron t by inserting point p, assumed to lie
// strictly inside t, into 4 tetrahedra. This is the single-tet
// degenerate case of FindCavity/FillCavity and is implemented directly
// atop them for exactly that reason.
func (m *MeshStore) Flip14(t TetID, p VertexID) ([4]TetID, error) {
	tet := m.Tets.Get(t)
	pp := m.point3(p)
	for i := 0; i < 4; i++ {
		f := localFace[i]
		if m.orient3(tet.V[f[0]], tet.V[f[1]], tet.V[f[2]], pp) != predicate.Positive {
			return [4]TetID{}, ErrNotFlippable
		}
	}

	cav := &Cavity{Tets: map[TetID]bool{t: true}}
	for i := 0; i < 4; i++ {
		f := localFace[i]
		cav.Boundary = append(cav.Boundary, BoundaryFace{
			Verts:       [3]VertexID{tet.V[f[0]], tet.V[f[1]], tet.V[f[2]]},
			OutsideTet:  tet.Nbr[i],
			OutsideFace: int(tet.NbrFace[i]),
		})
	}
	news := m.FillCavity(p, cav)
	var out [4]TetID
	copy(out[:], news)
	return out, nil
}

// Flip41 is the inverse of Flip14: if p's star is exactly the four
// tetrahedra in tets, collapse them back into one tetrahedron spanning
// p's four neighboring vertices and delete p.
func (m *MeshStore) Flip41(tets [4]TetID, p VertexID) (TetID, error) {
	star := m.EnumerateStar(p)
	if len(star) != 4 {
		return NoTet, ErrNotFlippable
	}
	starSet := map[TetID]bool{}
	for _, id := range star {
		starSet[id] = true
	}
	for _, id := range tets {
		if !starSet[id] {
			return NoTet, ErrNotFlippable
		}
	}

	var outside []BoundaryFace
	for _, id := range tets {
		t := m.Tets.Get(id)
		vi := t.IndexOf(p)
		if vi == -1 {
			return NoTet, ErrNotFlippable
		}
		nb := t.Nbr[vi]
		if starSet[nb] {
			continue // internal face shared between two of the four tets
		}
		f := localFace[vi]
		outside = append(outside, BoundaryFace{
			Verts:       [3]VertexID{t.V[f[0]], t.V[f[1]], t.V[f[2]]},
			OutsideTet:  nb,
			OutsideFace: int(t.NbrFace[vi]),
		})
	}
	if len(outside) != 4 {
		return NoTet, ErrNotFlippable
	}

	// The 4 outer triangles must together use exactly 4 distinct
	// vertices (a tetrahedron's 4 faces).
	seen := map[VertexID]bool{}
	for _, o := range outside {
		for _, v := range o.Verts {
			seen[v] = true
		}
	}
	if len(seen) != 4 {
		return NoTet, ErrNotFlippable
	}
	var verts [4]VertexID
	i := 0
	for v := range seen {
		verts[i] = v
		i++
	}
	if !m.isPositivelyOriented(verts) {
		verts[1], verts[2] = verts[2], verts[1]
	}
	if !m.isPositivelyOriented(verts) {
		return NoTet, ErrNotFlippable
	}

	for _, id := range tets {
		m.untouch(id)
		m.Tets.Delete(id)
	}
	m.Vertices.Delete(p)

	newID := m.Tets.Add(Tetrahedron{V: verts, FaceMarker: [4]int32{-1, -1, -1, -1}, Region: -1})
	for i := 0; i < 4; i++ {
		f := localFace[i]
		for _, o := range outside {
			if sameTriple([3]VertexID{verts[f[0]], verts[f[1]], verts[f[2]]}, o.Verts) {
				m.Tets.bond(newID, i, o.OutsideTet, o.OutsideFace)
				break
			}
		}
	}
	m.touch(newID)
	for _, v := range verts {
		m.Vertices.Get(v).Incident = newID
	}
	return newID, nil
}

// Flip23 replaces two tetrahedra sharing face (a,b,c) — T1=(...,p),
// T2=(...,q) with p,q on opposite sides of the shared face — with three
// tetrahedra around the new edge p-q: (p,q,a,b), (p,q,b,c), (p,q,c,a).
// Fails with ErrNotFlippable if the two tets don't share a face or the
// resulting tets would not be positively oriented (the configuration
// isn't locally convex across the shared face).
func (m *MeshStore) Flip23(t1, t2 TetID) ([3]TetID, error) {
	T1, T2 := m.Tets.Get(t1), m.Tets.Get(t2)
	faceIdx1 := -1
	for i, nb := range T1.Nbr {
		if nb == t2 {
			faceIdx1 = i
			break
		}
	}
	if faceIdx1 == -1 {
		return [3]TetID{}, ErrNotFlippable
	}
	faceIdx2 := int(T1.NbrFace[faceIdx1])
	if T1.FaceMarker[faceIdx1] != -1 {
		// The shared face is a recovered subface boundary; flipping across
		// it would destroy it (spec.md §4.6 "cavities never cross
		// subfaces or segments").
		return [3]TetID{}, ErrNotFlippable
	}

	face := T1.FaceVertices(faceIdx1)
	a, b, c := face[0], face[1], face[2]
	p := T1.V[faceIdx1]
	q := T2.V[faceIdx2]

	candidates := [3][4]VertexID{
		{p, q, a, b},
		{p, q, b, c},
		{p, q, c, a},
	}
	for _, v := range candidates {
		if !m.isPositivelyOriented(v) {
			return [3]TetID{}, ErrNotFlippable
		}
	}

	// Outer faces to preserve: the face opposite c in T1/T2 becomes the
	// face opposite q/p (respectively) in the new (p,q,a,b) tet, and so
	// on cyclically.
	outsideOf := func(T *Tetrahedron, v VertexID) (TetID, int, int32) {
		i := T.IndexOf(v)
		return T.Nbr[i], int(T.NbrFace[i]), T.FaceMarker[i]
	}
	oa1, oa1f, oa1m := outsideOf(T1, a)
	ob1, ob1f, ob1m := outsideOf(T1, b)
	oc1, oc1f, oc1m := outsideOf(T1, c)
	oa2, oa2f, oa2m := outsideOf(T2, a)
	ob2, ob2f, ob2m := outsideOf(T2, b)
	oc2, oc2f, oc2m := outsideOf(T2, c)

	m.untouch(t1)
	m.untouch(t2)
	m.Tets.Delete(t1)
	m.Tets.Delete(t2)

	mk := func(v [4]VertexID) TetID {
		return m.Tets.Add(Tetrahedron{V: v, FaceMarker: [4]int32{-1, -1, -1, -1}, Region: -1})
	}
	pqa := mk(candidates[0])
	pqb := mk(candidates[1])
	pqc := mk(candidates[2])

	// Each preserved outer face inherits the facet marker (if any) the old
	// tet's corresponding face carried, so a flip never silently erases an
	// already-recovered subface on the mesh's far side.
	bondOuter := func(newTet TetID, vOpp VertexID, outTet TetID, outFace int, marker int32) {
		m.Tets.bond(newTet, m.Tets.Get(newTet).IndexOf(vOpp), outTet, outFace)
		m.Tets.Get(newTet).FaceMarker[m.Tets.Get(newTet).IndexOf(vOpp)] = marker
		m.Tets.Get(outTet).FaceMarker[outFace] = marker
	}
	bondOuter(pqa, q, oc1, oc1f, oc1m)
	bondOuter(pqa, p, oc2, oc2f, oc2m)
	bondOuter(pqb, q, oa1, oa1f, oa1m)
	bondOuter(pqb, p, oa2, oa2f, oa2m)
	bondOuter(pqc, q, ob1, ob1f, ob1m)
	bondOuter(pqc, p, ob2, ob2f, ob2m)

	m.Tets.bond(pqa, m.Tets.Get(pqa).IndexOf(a), pqb, m.Tets.Get(pqb).IndexOf(c))
	m.Tets.bond(pqa, m.Tets.Get(pqa).IndexOf(b), pqc, m.Tets.Get(pqc).IndexOf(c))
	m.Tets.bond(pqb, m.Tets.Get(pqb).IndexOf(b), pqc, m.Tets.Get(pqc).IndexOf(a))

	for _, id := range [3]TetID{pqa, pqb, pqc} {
		m.touch(id)
	}
	m.Vertices.Get(p).Incident = pqa
	m.Vertices.Get(q).Incident = pqa
	m.Vertices.Get(a).Incident = pqa
	m.Vertices.Get(b).Incident = pqb
	m.Vertices.Get(c).Incident = pqc

	return [3]TetID{pqa, pqb, pqc}, nil
}

// Flip32 is the inverse of Flip23: given the three tetrahedra sharing
// edge (p,q) — (p,q,a,b), (p,q,b,c), (p,q,c,a) for some labelling of
// their non-shared vertices — collapse them into two tetrahedra
// (a,b,c,p) and (a,b,c,q), removing the edge p-q. Fails with
// ErrNotFlippable if tets isn't exactly an edge ring of three, or the
// resulting pair would not be positively oriented.
func (m *MeshStore) Flip32(tets [3]TetID) ([2]TetID, error) {
	t0 := m.Tets.Get(tets[0])
	var p, q VertexID = NoVertex, NoVertex
	for _, v := range t0.V {
		inAll := true
		for _, id := range tets[1:] {
			if m.Tets.Get(id).IndexOf(v) == -1 {
				inAll = false
				break
			}
		}
		if inAll {
			if p == NoVertex {
				p = v
			} else if q == NoVertex {
				q = v
			}
		}
	}
	if p == NoVertex || q == NoVertex {
		return [2]TetID{}, ErrNotFlippable
	}

	counts := map[VertexID]int{}
	for _, id := range tets {
		for _, v := range m.Tets.Get(id).V {
			if v != p && v != q {
				counts[v]++
			}
		}
	}
	if len(counts) != 3 {
		return [2]TetID{}, ErrNotFlippable
	}
	var ring [3]VertexID
	i := 0
	for v, n := range counts {
		if n != 2 {
			return [2]TetID{}, ErrNotFlippable
		}
		ring[i] = v
		i++
	}
	a, b, c := ring[0], ring[1], ring[2]

	pTet := [4]VertexID{a, b, c, p}
	qTet := [4]VertexID{a, c, b, q}
	if !m.isPositivelyOriented(pTet) {
		a, b = b, a
		pTet = [4]VertexID{a, b, c, p}
		qTet = [4]VertexID{a, c, b, q}
	}
	if !m.isPositivelyOriented(pTet) || !m.isPositivelyOriented(qTet) {
		return [2]TetID{}, ErrNotFlippable
	}
	// The three faces the old tets share with each other disappear; refuse
	// if any of them is a recovered subface, as Flip23 does.
	for _, id := range tets {
		t := m.Tets.Get(id)
		for f := 0; f < 4; f++ {
			for _, other := range tets {
				if t.Nbr[f] == other && t.FaceMarker[f] != -1 {
					return [2]TetID{}, ErrNotFlippable
				}
			}
		}
	}

	// Each of the three old tets has two faces that do not contain both
	// p and q. Concretely, tet (p,q,x,y)
	// contributes its face opposite x (which is (p,q,y)) and opposite y
	// (which is (p,q,x)) as internal faces already bonded to its two
	// neighbors in tets; the faces we must preserve are opposite p and
	// opposite q in each old tet.
	type outward struct {
		tet    TetID
		face   int
		marker int32
	}
	var outP, outQ []outward
	var held [3]map[VertexID]bool
	for k, id := range tets {
		t := m.Tets.Get(id)
		pi, qi := t.IndexOf(p), t.IndexOf(q)
		outP = append(outP, outward{t.Nbr[pi], int(t.NbrFace[pi]), t.FaceMarker[pi]})
		outQ = append(outQ, outward{t.Nbr[qi], int(t.NbrFace[qi]), t.FaceMarker[qi]})
		held[k] = map[VertexID]bool{}
		for _, v := range t.V {
			held[k][v] = true
		}
	}

	for _, id := range tets {
		m.untouch(id)
		m.Tets.Delete(id)
	}

	newP := m.Tets.Add(Tetrahedron{V: pTet, FaceMarker: [4]int32{-1, -1, -1, -1}, Region: -1})
	newQ := m.Tets.Add(Tetrahedron{V: qTet, FaceMarker: [4]int32{-1, -1, -1, -1}, Region: -1})

	// Match each preserved outer face to the vertex of (a,b,c) it's
	// opposite: the old tet's face opposite p touches exactly two of
	// {a,b,c}, so the remaining one is who the new face is opposite.
	bondOuter := func(newTet TetID, outs []outward, others []VertexID) {
		for k, o := range outs {
			// The face opposite p (or q) in the old tet contains the two
			// ring vertices that tet held besides p/q; the ring vertex
			// missing from that pair is who the new tet's matching face
			// sits opposite.
			var missing VertexID = NoVertex
			for _, v := range others {
				if !held[k][v] {
					missing = v
				}
			}
			f := m.Tets.Get(newTet).IndexOf(missing)
			m.Tets.bond(newTet, f, o.tet, o.face)
			m.Tets.Get(newTet).FaceMarker[f] = o.marker
			m.Tets.Get(o.tet).FaceMarker[o.face] = o.marker
		}
	}
	// outP holds the faces opposite p in the old tets, i.e. the faces
	// that contain q (and two ring vertices) — those become faces of
	// newQ. Symmetrically outQ's faces contain p and become newP's.
	bondOuter(newQ, outP, []VertexID{a, b, c})
	bondOuter(newP, outQ, []VertexID{a, b, c})

	m.Tets.bond(newP, m.Tets.Get(newP).IndexOf(p), newQ, m.Tets.Get(newQ).IndexOf(q))

	m.touch(newP)
	m.touch(newQ)
	m.Vertices.Get(p).Incident = newP
	m.Vertices.Get(q).Incident = newQ
	m.Vertices.Get(a).Incident = newP
	m.Vertices.Get(b).Incident = newP
	m.Vertices.Get(c).Incident = newP

	return [2]TetID{newP, newQ}, nil
}
