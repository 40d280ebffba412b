package refine

import (
	"container/heap"

	"github.com/sunpia/tetgen/constraint"
	"github.com/sunpia/tetgen/meshstore"
	"github.com/sunpia/tetgen/predicate"
)

// markFace stamps marker on both tetrahedra sharing the face at
// (id, face), mirroring constraint's own markFace: a facet boundary is
// shared by the two tets on either side until region carving removes
// one, so both carry the marker.
func (r *Refiner) markFace(id meshstore.TetID, face int, marker int32) {
	t := r.store.Tets.Get(id)
	t.FaceMarker[face] = marker
	nb := t.Nbr[face]
	nbFace := int(t.NbrFace[face])
	r.store.Tets.Get(nb).FaceMarker[nbFace] = marker
}

// edgeThirdVertex reports whether subface verts contains both a and b as
// two of its three corners, and if so returns the remaining one.
func edgeThirdVertex(verts [3]meshstore.VertexID, a, b meshstore.VertexID) (meshstore.VertexID, bool) {
	hasA, hasB := false, false
	var third meshstore.VertexID = meshstore.NoVertex
	for _, v := range verts {
		switch v {
		case a:
			hasA = true
		case b:
			hasB = true
		default:
			third = v
		}
	}
	return third, hasA && hasB
}

// splitSegment bisects the encroached segment k at its midpoint,
// re-registering the two halves (step 1 of spec.md §4.6's loop). Any
// subface that used k as one of its three edges is split the same way,
// since the new midpoint vertex now lies in the interior of that
// subface's old boundary edge.
func (r *Refiner) splitSegment(k segKey) error {
	marker := r.segs[k]
	a, b := r.point(k.lo), r.point(k.hi)
	mid := a.Midpoint(b)

	type affected struct {
		old    subKey
		third  meshstore.VertexID
		marker int32
	}
	var aff []affected
	for sk, mk := range r.subs {
		verts := [3]meshstore.VertexID{sk.a, sk.b, sk.c}
		if third, ok := edgeThirdVertex(verts, k.lo, k.hi); ok {
			aff = append(aff, affected{sk, third, mk})
		}
	}

	id, created, dup, err := r.store.InsertVertex(mid, meshstore.SteinerSegment, nil, marker)
	if err != nil {
		return err
	}
	if !dup {
		r.steinerCount++
	}

	delete(r.segs, k)
	for _, half := range [2]segKey{makeSegKey(k.lo, id), makeSegKey(id, k.hi)} {
		r.segs[half] = marker
		if r.segmentEncroachedKey(half) {
			heap.Push(&r.segQ, segItem{key: half, length: r.segmentLength(half)})
		}
	}

	for _, af := range aff {
		delete(r.subs, af.old)
		for _, pair := range [2][2]meshstore.VertexID{{k.lo, af.third}, {af.third, k.hi}} {
			nk := makeSubKey(pair[0], id, pair[1])
			r.subs[nk] = af.marker
			if tid, face, ok := r.store.FindFace(pair[0], id, pair[1]); ok {
				r.markFace(tid, face, af.marker)
			}
			if r.subfaceEncroachedKey(nk) {
				heap.Push(&r.subQ, subItem{key: nk, radius: r.subfaceRadius(nk)})
			}
		}
	}

	r.registerNewTets(created)
	return nil
}

// refineSubface inserts subface k's circumcenter as a facet Steiner
// point (step 2 of spec.md §4.6), unless that circumcenter would
// encroach a segment — in which case the encroaching segments are
// queued instead and k is requeued for a later retry — or would escape
// the domain entirely, in which case one of k's own bounding segments is
// split instead (spec.md §4.7 "circumcenter escapes domain -> split
// parent subface/segment instead").
func (r *Refiner) refineSubface(k subKey, marker int32) error {
	pa, pb, pc := r.point(k.a), r.point(k.b), r.point(k.c)
	center, _, err := predicate.TriangleCircumcenter(toPt3(pa), toPt3(pb), toPt3(pc))
	if err != nil {
		r.log.Warn("subface (%d,%d,%d) circumcenter degenerate, leaving as-is", k.a, k.b, k.c)
		return nil
	}
	p := fromPt3(center)

	loc, err := r.store.Locate(p)
	if err != nil {
		return err
	}
	if r.store.Tets.Get(loc.Tet).IsGhost() {
		if r.opts.NoBisect {
			r.log.Warn("subface (%d,%d,%d) circumcenter escapes the domain but -Y forbids splitting its bounding segment, leaving as-is", k.a, k.b, k.c)
			return nil
		}
		if seg, ok := r.boundingSegmentOf(k); ok {
			heap.Push(&r.segQ, segItem{key: seg, length: r.segmentLength(seg)})
		} else {
			r.log.Warn("subface (%d,%d,%d) circumcenter escapes the domain with no bounding segment to split", k.a, k.b, k.c)
		}
		heap.Push(&r.subQ, subItem{key: k, radius: r.subfaceRadius(k)})
		return nil
	}

	deferred := false
	for sk := range r.segs {
		if pointEncroachesSegment(p, r.point(sk.lo), r.point(sk.hi)) {
			heap.Push(&r.segQ, segItem{key: sk, length: r.segmentLength(sk)})
			deferred = true
		}
	}
	if deferred {
		heap.Push(&r.subQ, subItem{key: k, radius: r.subfaceRadius(k)})
		return nil
	}

	id, created, dup, err := r.store.InsertVertex(p, meshstore.SteinerFacet, nil, marker)
	if err != nil {
		return err
	}
	if !dup {
		r.steinerCount++
	}

	rec := constraint.New(r.store)
	for _, v := range [3]meshstore.VertexID{k.a, k.b, k.c} {
		if _, err := rec.RecoverSegment(v, id); err != nil {
			return err
		}
	}

	delete(r.subs, k)
	for _, pair := range [3][2]meshstore.VertexID{{k.a, k.b}, {k.b, k.c}, {k.c, k.a}} {
		nk := makeSubKey(pair[0], pair[1], id)
		r.subs[nk] = marker
		if tid, face, ok := r.store.FindFace(pair[0], pair[1], id); ok {
			r.markFace(tid, face, marker)
		}
		if r.subfaceEncroachedKey(nk) {
			heap.Push(&r.subQ, subItem{key: nk, radius: r.subfaceRadius(nk)})
		}
	}

	r.registerNewTets(created)
	return nil
}

// boundingSegmentOf returns one of k's three edges that is currently
// registered as a segment, if any.
func (r *Refiner) boundingSegmentOf(k subKey) (segKey, bool) {
	for _, pair := range [3][2]meshstore.VertexID{{k.a, k.b}, {k.b, k.c}, {k.c, k.a}} {
		sk := makeSegKey(pair[0], pair[1])
		if _, ok := r.segs[sk]; ok {
			return sk, true
		}
	}
	return segKey{}, false
}

// refineTet attempts to clear tetrahedron id's quality violation by
// inserting its circumcenter (step 3 of spec.md §4.6), deferring to an
// encroached segment or subface first (segment > subface > tet priority)
// and requeuing id itself so it is retried once the blocker clears.
func (r *Refiner) refineTet(id meshstore.TetID) error {
	t := r.store.Tets.Get(id)
	a, b, c, d := t.V[0], t.V[1], t.V[2], t.V[3]
	pa, pb, pc, pd := r.point(a), r.point(b), r.point(c), r.point(d)

	center, err := predicate.Circumcenter(toPt3(pa), toPt3(pb), toPt3(pc), toPt3(pd))
	if err != nil {
		r.log.Warn("tet %d circumcenter degenerate, leaving as-is", id)
		return nil
	}
	p := fromPt3(center)

	loc, err := r.store.Locate(p)
	if err != nil {
		return err
	}
	if r.store.Tets.Get(loc.Tet).IsGhost() {
		if r.opts.NoBisect {
			r.log.Warn("tet %d circumcenter escapes the domain but -Y forbids splitting its bounding subface, leaving as-is", id)
			return nil
		}
		for f := 0; f < 4; f++ {
			if t.FaceMarker[f] == -1 {
				continue
			}
			verts := t.FaceVertices(f)
			sk := makeSubKey(verts[0], verts[1], verts[2])
			if _, ok := r.subs[sk]; ok {
				heap.Push(&r.subQ, subItem{key: sk, radius: r.subfaceRadius(sk)})
				return nil
			}
		}
		r.log.Warn("tet %d circumcenter escapes the domain with no bounding subface to split", id)
		return nil
	}

	for sk := range r.segs {
		if pointEncroachesSegment(p, r.point(sk.lo), r.point(sk.hi)) {
			if r.opts.NoBisect {
				r.log.Warn("tet %d circumcenter encroaches a segment but -Y forbids splitting it, leaving tet as-is", id)
				return nil
			}
			heap.Push(&r.segQ, segItem{key: sk, length: r.segmentLength(sk)})
			heap.Push(&r.tetQ, tetItem{id: id, ratio: r.tetRatio(id)})
			return nil
		}
	}
	for sk := range r.subs {
		if pointEncroachesSubface(p, r.point(sk.a), r.point(sk.b), r.point(sk.c)) {
			if r.opts.NoBisect {
				r.log.Warn("tet %d circumcenter encroaches a subface but -Y forbids splitting it, leaving tet as-is", id)
				return nil
			}
			heap.Push(&r.subQ, subItem{key: sk, radius: r.subfaceRadius(sk)})
			heap.Push(&r.tetQ, tetItem{id: id, ratio: r.tetRatio(id)})
			return nil
		}
	}

	_, created, dup, err := r.store.InsertVertex(p, meshstore.SteinerVolume, nil, -1)
	if err != nil {
		return err
	}
	if !dup {
		r.steinerCount++
	}
	r.registerNewTets(created)
	return nil
}
