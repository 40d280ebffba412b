package constraint

import (
	"github.com/sunpia/tetgen/meshstore"
	"github.com/sunpia/tetgen/predicate"
	"github.com/sunpia/tetgen/vec3"
)

// RecoverFacet triangulates f's outer polygon ring in its own best-fit
// plane (ear clipping; every polygon after the first, i.e. every hole
// ring, is ignored and not cut out of the triangulation), then recovers each resulting
// triangle's three bounding edges as segments before recovering the
// triangle itself as a subface, per spec.md §4.4. Returns every subface
// the facet was triangulated into.
func (r *Recoverer) RecoverFacet(f Facet) ([]Subface, error) {
	if len(f.Polygons) == 0 {
		return nil, nil
	}
	ring := f.Polygons[0].Verts
	if len(ring) < 3 {
		return nil, nil
	}

	plane, err := r.fitPlaneOf(ring)
	if err != nil {
		return nil, err
	}
	tris := earClip(r, ring, plane)

	var out []Subface
	for _, tri := range tris {
		a, b, c := tri[0], tri[1], tri[2]
		if _, err := r.RecoverSegment(a, b); err != nil {
			return nil, err
		}
		if _, err := r.RecoverSegment(b, c); err != nil {
			return nil, err
		}
		if _, err := r.RecoverSegment(c, a); err != nil {
			return nil, err
		}
		subs, err := r.recoverSubface(a, b, c, f.Marker)
		if err != nil {
			return nil, err
		}
		out = append(out, subs...)
	}
	return out, nil
}

func (r *Recoverer) fitPlaneOf(ring []meshstore.VertexID) (Plane, error) {
	pts := make([]vec3.Vec, len(ring))
	for i, v := range ring {
		pts[i] = r.store.Vertices.Point(v)
	}
	return FitPlane(pts)
}

// project2D returns the facet-plane coordinates of every ring vertex, in
// ring order, used by earClip to triangulate in 2D.
func project2D(r *Recoverer, ring []meshstore.VertexID, plane Plane) [][2]float64 {
	out := make([][2]float64, len(ring))
	for i, v := range ring {
		u, w := plane.Project2D(r.store.Vertices.Point(v))
		out[i] = [2]float64{u, w}
	}
	return out
}

// earClip triangulates ring (assumed a simple polygon once projected
// into plane) via the classic O(n^2) ear-clipping algorithm: repeatedly
// remove a convex vertex whose clipped triangle contains none of the
// remaining polygon's vertices. Standard computational-geometry
// technique; no third-party 2D triangulation library appears anywhere
// in the retrieved corpus, so this is implemented directly rather than
// imported.
func earClip(r *Recoverer, ring []meshstore.VertexID, plane Plane) [][3]meshstore.VertexID {
	coords := project2D(r, ring, plane)
	n := len(ring)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	// FitPlane's normal has an arbitrary sign (eigenvectors aren't
	// oriented), so ring may wind either way in the (U,V) basis; the ear
	// test below assumes counterclockwise, so reverse if it doesn't.
	if signedArea(coords, idx) < 0 {
		for l, r2 := 0, len(idx)-1; l < r2; l, r2 = l+1, r2-1 {
			idx[l], idx[r2] = idx[r2], idx[l]
		}
	}

	var tris [][3]meshstore.VertexID
	guard := 0
	for len(idx) > 3 && guard < n*n+8 {
		guard++
		clipped := false
		for k := 0; k < len(idx); k++ {
			i0 := idx[(k+len(idx)-1)%len(idx)]
			i1 := idx[k]
			i2 := idx[(k+1)%len(idx)]
			if !isConvex(coords[i0], coords[i1], coords[i2]) {
				continue
			}
			if anyInside(coords, idx, i0, i1, i2) {
				continue
			}
			tris = append(tris, [3]meshstore.VertexID{ring[i0], ring[i1], ring[i2]})
			idx = append(append([]int{}, idx[:k]...), idx[k+1:]...)
			clipped = true
			break
		}
		if !clipped {
			break // degenerate/self-intersecting ring; stop rather than loop
		}
	}
	if len(idx) == 3 {
		tris = append(tris, [3]meshstore.VertexID{ring[idx[0]], ring[idx[1]], ring[idx[2]]})
	}
	return tris
}

func signedArea(coords [][2]float64, idx []int) float64 {
	var area float64
	n := len(idx)
	for k := 0; k < n; k++ {
		a := coords[idx[k]]
		b := coords[idx[(k+1)%n]]
		area += a[0]*b[1] - b[0]*a[1]
	}
	return area
}

func isConvex(a, b, c [2]float64) bool {
	return predicate.Orient2D(
		predicate.Point2{X: a[0], Y: a[1]},
		predicate.Point2{X: b[0], Y: b[1]},
		predicate.Point2{X: c[0], Y: c[1]},
	) == predicate.Positive
}

func anyInside(coords [][2]float64, idx []int, i0, i1, i2 int) bool {
	a, b, c := coords[i0], coords[i1], coords[i2]
	for _, j := range idx {
		if j == i0 || j == i1 || j == i2 {
			continue
		}
		if pointInTriangle(coords[j], a, b, c) {
			return true
		}
	}
	return false
}

func pointInTriangle(p, a, b, c [2]float64) bool {
	s1 := predicate.Orient2D(pt2(a), pt2(b), pt2(p))
	s2 := predicate.Orient2D(pt2(b), pt2(c), pt2(p))
	s3 := predicate.Orient2D(pt2(c), pt2(a), pt2(p))
	hasNeg := s1 == predicate.Negative || s2 == predicate.Negative || s3 == predicate.Negative
	hasPos := s1 == predicate.Positive || s2 == predicate.Positive || s3 == predicate.Positive
	return !(hasNeg && hasPos)
}

func pt2(c [2]float64) predicate.Point2 { return predicate.Point2{X: c[0], Y: c[1]} }
