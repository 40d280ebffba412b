package meshstore

// Touch re-registers id with the locate-acceleration index and as the
// most-recently-touched tet. Region carving and quality refinement add
// and delete tetrahedra directly through the arena (TetArena.Add/Delete)
// rather than via Flip*/FillCavity, so they call this themselves to keep
// Locate's seeding index current (spec.md §4.2).
func (m *MeshStore) Touch(id TetID) { m.touch(id) }

// Untouch removes id from the locate-acceleration index, the Touch
// counterpart for tetrahedra deleted directly through the arena.
func (m *MeshStore) Untouch(id TetID) { m.untouch(id) }

// BondFace links t1's face f1 and t2's face f2 to each other, both
// directions (invariant I3), for callers outside this package that
// construct or relink tetrahedra directly through the arena.
func (m *MeshStore) BondFace(t1 TetID, f1 int, t2 TetID, f2 int) {
	m.Tets.bond(t1, f1, t2, f2)
}

// FindFace reports the tetrahedron and local face index whose three
// vertices are exactly {a,b,c}, if one currently exists. Both constraint
// recovery and quality refinement need to re-locate a recovered subface
// after earlier flips/insertions may have moved it elsewhere in the
// arena, so this walks a's vertex star rather than assuming a stable
// (tet,face) handle survives mutation.
func (m *MeshStore) FindFace(a, b, c VertexID) (TetID, int, bool) {
	for _, id := range m.EnumerateStar(a) {
		t := m.Tets.Get(id)
		if t.IsGhost() {
			continue
		}
		if t.IndexOf(b) == -1 || t.IndexOf(c) == -1 {
			continue
		}
		for i, v := range t.V {
			if v != a && v != b && v != c {
				return id, i, true
			}
		}
	}
	return NoTet, -1, false
}
