package meshstore

// TetID identifies a tetrahedron (real or ghost) in the arena.
type TetID int32

// NoTet marks the absence of a tetrahedron (unallocated/tombstoned slot).
const NoTet TetID = -1

// localFace[i] lists, for the face opposite local vertex i, the three
// other local vertex indices in the order that makes
// Orient3D(face[0],face[1],face[2],V[i]) strictly positive whenever the
// tetrahedron itself is positively oriented (I2). This is the fixed
// convention every cavity/flip/locate routine in this package relies on:
// a query point p lies outside face i exactly when
// Orient3D(face[0],face[1],face[2],p) is Negative.
var localFace = [4][3]int{
	{1, 3, 2},
	{0, 2, 3},
	{0, 3, 1},
	{0, 1, 2},
}

// Tetrahedron is one entry of the tetrahedron arena (spec.md §3).
type Tetrahedron struct {
	V   [4]VertexID
	Nbr [4]TetID
	// NbrFace[i] is the local face index, in neighbor Nbr[i], that links
	// back to this tetrahedron (invariant I3: neighbor links are mutual).
	NbrFace    [4]int8
	FaceMarker [4]int32 // facet id of face i, or -1
	Region     int32    // -1 if unassigned
	HasVolBnd  bool
	MaxVolume  float64
	live       bool
}

// IsGhost reports whether t contains the conceptual vertex at infinity.
func (t *Tetrahedron) IsGhost() bool {
	for _, v := range t.V {
		if v == Infinite {
			return true
		}
	}
	return false
}

// InfiniteSlot returns the local index of the Infinite vertex in t, or
// -1 if t is not a ghost.
func (t *Tetrahedron) InfiniteSlot() int {
	for i, v := range t.V {
		if v == Infinite {
			return i
		}
	}
	return -1
}

// FaceVertices returns the three vertex ids of the face opposite local
// vertex i.
func (t *Tetrahedron) FaceVertices(i int) [3]VertexID {
	f := localFace[i]
	return [3]VertexID{t.V[f[0]], t.V[f[1]], t.V[f[2]]}
}

// IndexOf returns the local slot of vertex v in t, or -1 if absent.
func (t *Tetrahedron) IndexOf(v VertexID) int {
	for i, u := range t.V {
		if u == v {
			return i
		}
	}
	return -1
}

// TetArena is the stable-index, tombstone-and-free-list tetrahedron
// store of spec.md §3.
type TetArena struct {
	tets []Tetrahedron
	free []TetID
}

// NewTetArena returns an empty tetrahedron arena.
func NewTetArena() *TetArena {
	return &TetArena{}
}

// Add stores a new tetrahedron and returns its stable id. Neighbor links
// are left as NoTet; the caller is responsible for wiring adjacency.
func (a *TetArena) Add(t Tetrahedron) TetID {
	t.live = true
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.tets[id] = t
		return id
	}
	a.tets = append(a.tets, t)
	return TetID(len(a.tets) - 1)
}

// Delete tombstones a tetrahedron, making its id reusable.
func (a *TetArena) Delete(id TetID) {
	a.tets[id].live = false
	a.free = append(a.free, id)
}

// Get returns a mutable pointer to the tetrahedron stored at id.
func (a *TetArena) Get(id TetID) *Tetrahedron {
	return &a.tets[id]
}

// IsLive reports whether id currently names a non-tombstoned tetrahedron.
func (a *TetArena) IsLive(id TetID) bool {
	return id >= 0 && int(id) < len(a.tets) && a.tets[id].live
}

// Len returns the number of slots ever allocated, live or tombstoned.
func (a *TetArena) Len() int {
	return len(a.tets)
}

// link wires t1's neighbor slot f1 to t2 (and records which face of t2
// that is), without touching t2's own neighbor slot; callers pair this
// with a reciprocal call to maintain invariant I3.
func (a *TetArena) link(t1 TetID, f1 int, t2 TetID, f2 int) {
	a.tets[t1].Nbr[f1] = t2
	a.tets[t1].NbrFace[f1] = int8(f2)
}

// bond links t1's face f1 and t2's face f2 to each other, both
// directions, establishing invariant I3 for that face.
func (a *TetArena) bond(t1 TetID, f1 int, t2 TetID, f2 int) {
	a.link(t1, f1, t2, f2)
	a.link(t2, f2, t1, f1)
}
