package meshstore

import "github.com/sunpia/tetgen/vec3"

// VertexID identifies a vertex in the arena. Indices are stable: once
// assigned, a live vertex's id never changes (spec.md §3 "Vertices live
// in a stable arena: indices never move").
type VertexID int32

// Infinite is the conceptual "vertex at infinity" used by ghost
// tetrahedra (spec.md §3 "Ghost tetrahedra"). It is never stored in the
// arena and never returned by VertexArena.Add.
const Infinite VertexID = -1

// NoVertex marks an arena slot that holds no live vertex (tombstone or
// never allocated).
const NoVertex VertexID = -2

// Tag classifies how a vertex entered the mesh.
type Tag uint8

const (
	Unused Tag = iota
	Input
	SteinerSegment
	SteinerFacet
	SteinerVolume
)

func (t Tag) String() string {
	switch t {
	case Input:
		return "INPUT"
	case SteinerSegment:
		return "STEINER_SEGMENT"
	case SteinerFacet:
		return "STEINER_FACET"
	case SteinerVolume:
		return "STEINER_VOLUME"
	default:
		return "UNUSED"
	}
}

// Vertex is one entry of the vertex arena.
type Vertex struct {
	Point      vec3.Vec
	Attributes []float64
	Marker     int32
	Tag        Tag
	// Incident is one tetrahedron touching this vertex; the full vertex
	// star is recovered by walking from here (spec.md §4.2).
	Incident TetID
	live     bool
}

// VertexArena is the stable-index, tombstone-and-free-list vertex store
// of spec.md §3. Grounded on the dedup-lookup-map arena idiom of
// render/finiteelements/mesh/fem.go, generalized to support deletion.
type VertexArena struct {
	verts []Vertex
	free  []VertexID
}

// NewVertexArena returns an empty vertex arena.
func NewVertexArena() *VertexArena {
	return &VertexArena{}
}

// Add appends or recycles a tombstoned slot for a new vertex, returning
// its stable id.
func (a *VertexArena) Add(p vec3.Vec, tag Tag, attrs []float64, marker int32) VertexID {
	v := Vertex{Point: p, Tag: tag, Attributes: attrs, Marker: marker, Incident: NoTet, live: true}
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.verts[id] = v
		return id
	}
	a.verts = append(a.verts, v)
	return VertexID(len(a.verts) - 1)
}

// Delete tombstones a vertex, making its id reusable by a future Add.
func (a *VertexArena) Delete(id VertexID) {
	a.verts[id].live = false
	a.verts[id].Attributes = nil
	a.free = append(a.free, id)
}

// Get returns the vertex stored at id. The caller must not mutate the
// returned value's slices concurrently with other arena operations
// (spec.md §5: iterators are invalidated by mutation, as a contract).
func (a *VertexArena) Get(id VertexID) *Vertex {
	return &a.verts[id]
}

// IsLive reports whether id currently names a non-tombstoned vertex.
func (a *VertexArena) IsLive(id VertexID) bool {
	return id >= 0 && int(id) < len(a.verts) && a.verts[id].live
}

// Len returns the number of slots ever allocated, live or tombstoned.
func (a *VertexArena) Len() int {
	return len(a.verts)
}

// Point is a convenience accessor returning just the coordinate.
func (a *VertexArena) Point(id VertexID) vec3.Vec {
	return a.verts[id].Point
}
