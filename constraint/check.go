package constraint

import "github.com/sunpia/tetgen/meshlog"

// CheckCoverage verifies P4: every recovered segment is an actual mesh
// edge and every recovered subface is an actual mesh face. Intended for
// test and diagnostic use, mirroring meshstore.CheckInvariants.
func (r *Recoverer) CheckCoverage(segments []Segment, subfaces []Subface) error {
	for _, s := range segments {
		if !r.edgeExists(s.A, s.B) {
			return meshlog.Newf(meshlog.Invariant, "segment (%d,%d) not present as a mesh edge", s.A, s.B)
		}
	}
	for _, f := range subfaces {
		if _, _, ok := r.findFace(f.Verts[0], f.Verts[1], f.Verts[2]); !ok {
			return meshlog.Newf(meshlog.Invariant, "subface (%d,%d,%d) not present as a mesh face", f.Verts[0], f.Verts[1], f.Verts[2])
		}
	}
	return nil
}
