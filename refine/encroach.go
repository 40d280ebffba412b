package refine

import (
	"github.com/sunpia/tetgen/meshstore"
	"github.com/sunpia/tetgen/predicate"
	"github.com/sunpia/tetgen/vec3"
)

// pointEncroachesSegment reports whether p lies inside (or on) segment
// a-b's diametral sphere — the sphere with a,b as opposite poles, i.e.
// the locus where the angle a-p-b is not acute (spec.md §4.6 "a segment
// is encroached by diametral ball").
func pointEncroachesSegment(p, a, b vec3.Vec) bool {
	return p.Sub(a).Dot(p.Sub(b)) <= 0
}

// pointEncroachesSubface reports whether p lies inside subface (a,b,c)'s
// diametral sphere: the sphere centered at the triangle's in-plane
// circumcenter with its circumradius (spec.md §4.6 "a subface is
// encroached when some vertex lies inside its diametral sphere").
func pointEncroachesSubface(p, a, b, c vec3.Vec) bool {
	center, radius, err := predicate.TriangleCircumcenter(toPt3(a), toPt3(b), toPt3(c))
	if err != nil {
		return false
	}
	d := p.Sub(fromPt3(center))
	return d.Length() <= radius
}

func toPt3(v vec3.Vec) predicate.Point3     { return predicate.Point3{X: v.X, Y: v.Y, Z: v.Z} }
func fromPt3(p predicate.Point3) vec3.Vec   { return vec3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

// segmentEncroachedKey reports whether any live vertex other than k's own
// endpoints encroaches segment k, scanning every vertex in the arena: a
// constrained edge can in principle be encroached by a vertex anywhere
// in the mesh, not just one sharing a tet with it.
func (r *Refiner) segmentEncroachedKey(k segKey) bool {
	a, b := r.point(k.lo), r.point(k.hi)
	for id := meshstore.VertexID(0); int(id) < r.store.Vertices.Len(); id++ {
		if !r.store.Vertices.IsLive(id) || id == k.lo || id == k.hi {
			continue
		}
		if pointEncroachesSegment(r.point(id), a, b) {
			return true
		}
	}
	return false
}

func (r *Refiner) segmentLength(k segKey) float64 {
	return r.point(k.lo).Sub(r.point(k.hi)).Length()
}

// subfaceEncroachedKey reports whether any live vertex other than k's own
// three corners encroaches subface k.
func (r *Refiner) subfaceEncroachedKey(k subKey) bool {
	a, b, c := r.point(k.a), r.point(k.b), r.point(k.c)
	for id := meshstore.VertexID(0); int(id) < r.store.Vertices.Len(); id++ {
		if !r.store.Vertices.IsLive(id) || id == k.a || id == k.b || id == k.c {
			continue
		}
		if pointEncroachesSubface(r.point(id), a, b, c) {
			return true
		}
	}
	return false
}

func (r *Refiner) subfaceRadius(k subKey) float64 {
	_, radius, err := predicate.TriangleCircumcenter(toPt3(r.point(k.a)), toPt3(r.point(k.b)), toPt3(r.point(k.c)))
	if err != nil {
		return 0
	}
	return radius
}

// tetIsBad reports whether tetrahedron id violates the radius-edge bound
// or its effective volume bound (spec.md §4.6).
func (r *Refiner) tetIsBad(id meshstore.TetID) bool {
	t := r.store.Tets.Get(id)
	if t.IsGhost() {
		return false
	}
	if r.tetRatio(id) > r.opts.RadiusEdgeRatio {
		return true
	}
	bound := r.opts.GlobalMaxVolume
	if t.HasVolBnd {
		bound = t.MaxVolume
	}
	if bound <= 0 {
		return false
	}
	a, b, c, d := r.tetPoints(id)
	return predicate.Volume(a, b, c, d) > bound
}

func (r *Refiner) tetRatio(id meshstore.TetID) float64 {
	a, b, c, d := r.tetPoints(id)
	return predicate.AspectRatio(a, b, c, d)
}

func (r *Refiner) tetPoints(id meshstore.TetID) (predicate.Point3, predicate.Point3, predicate.Point3, predicate.Point3) {
	t := r.store.Tets.Get(id)
	return toPt3(r.point(t.V[0])), toPt3(r.point(t.V[1])), toPt3(r.point(t.V[2])), toPt3(r.point(t.V[3]))
}
