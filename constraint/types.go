// Package constraint recovers piecewise-linear-complex boundary
// constraints (input segments and facets) into a Delaunay
// tetrahedralization, per spec.md §4.4: flip-based segment/subface
// recovery with a Steiner-point fallback when no local flip sequence
// clears an intersection.
package constraint

import "github.com/sunpia/tetgen/meshstore"

// Segment is one input edge that must survive, verbatim, as a chain of
// mesh edges once recovery completes.
type Segment struct {
	A, B   meshstore.VertexID
	Marker int32
}

// Polygon is a simple, planar ring of vertices bounding part of a facet
// — one outer ring, or one hole ring. Grounded on
// original_source/python/tetgen/tetgen_io.py's Polygon
// (vertex_list/number_of_vertices), generalized from a raw index array
// to arena VertexIDs.
type Polygon struct {
	Verts []meshstore.VertexID
}

// Facet is a polygonal boundary region possibly bounded by more than one
// polygon (an outer ring plus hole rings), after tetgen_io.py's Facet
// polygon_list. The per-facet hole points of that Facet are not carried.
type Facet struct {
	Polygons []Polygon
	Marker   int32
}

// Subface is one triangle of a recovered facet: three mesh vertices that
// are, after RecoverFacet returns, the vertices of an actual tetrahedron
// face in the mesh (spec.md §4.4's coverage invariant P4).
type Subface struct {
	Verts  [3]meshstore.VertexID
	Marker int32
}
