// Package refine implements spec.md §4.6's optional quality-refinement
// pass: Shewchuk's Delaunay refinement algorithm, driven by three
// priority queues (segments, subfaces, tetrahedra) in strict priority
// order, atop an already facet/segment-recovered and region-carved mesh
// store. Every insertion goes through meshstore's ordinary
// locate/find_cavity/fill_cavity path, which already refuses to grow a
// cavity across a recovered subface (meshstore/cavity.go), so a
// circumcenter insertion can never silently erase a constraint.
package refine

import (
	"container/heap"
	"context"

	"github.com/sunpia/tetgen/meshlog"
	"github.com/sunpia/tetgen/meshstore"
	"github.com/sunpia/tetgen/vec3"
)

// Segment is one constrained edge (from constraint.RecoverSegment) that
// refinement must keep intact, splitting it at its midpoint rather than
// letting a circumcenter insertion land inside its diametral sphere.
type Segment struct {
	A, B   meshstore.VertexID
	Marker int32
}

// Options configures the two quality bounds of spec.md §4.6 plus the
// Steiner cap and -Y suppression of spec.md §6.
type Options struct {
	// RadiusEdgeRatio is rho, the per-tet circumradius/shortest-edge
	// bound. <=0 defaults to 2.0 (behavior.Default's MinRatio).
	RadiusEdgeRatio float64
	// GlobalMaxVolume bounds every tet lacking its own per-region bound
	// (Tetrahedron.HasVolBnd). <=0 means no global bound.
	GlobalMaxVolume float64
	// SteinerCap is the hard cap on inserted Steiner points. <0 means
	// unbounded (behavior.Default's Steiner).
	SteinerCap int
	// NoBisect mirrors behavior.Behavior.NoBisect (-Y): when set,
	// segments and subfaces are never split, so a tet whose only fix
	// would encroach one is simply left bad rather than bisecting the
	// boundary.
	NoBisect bool
}

// Refiner drives the three-queue refinement loop of spec.md §4.6.
type Refiner struct {
	store *meshstore.MeshStore
	opts  Options
	log   *meshlog.Logger

	segs map[segKey]int32
	subs map[subKey]int32

	segQ segHeap
	subQ subHeap
	tetQ tetHeap

	steinerCount int
}

// New returns a Refiner over an already-recovered mesh store. segments
// is the full set of constrained edges constraint.RecoverSegment (and
// RecoverFacet's internal edge recovery) produced; subfaces are
// discovered directly from the mesh's FaceMarker-tagged faces, so they
// need not be passed in.
func New(store *meshstore.MeshStore, segments []Segment, opts Options) *Refiner {
	if opts.RadiusEdgeRatio <= 0 {
		opts.RadiusEdgeRatio = 2.0
	}
	r := &Refiner{
		store: store,
		opts:  opts,
		log:   meshlog.Default("refine"),
		segs:  map[segKey]int32{},
		subs:  map[subKey]int32{},
	}
	for _, s := range segments {
		r.segs[makeSegKey(s.A, s.B)] = s.Marker
	}
	r.subs = discoverSubfaces(store)
	return r
}

// Refine runs the refinement loop to completion, to the Steiner cap, or
// to ctx cancellation, whichever comes first. The mesh store is mutated
// in place; on a non-nil error it is left in the most recent fully
// consistent state (spec.md §5), never partially updated.
func (r *Refiner) Refine(ctx context.Context) error {
	r.initQueues()

	for {
		if err := ctx.Err(); err != nil {
			r.log.Warn("refinement cancelled with %d segments, %d subfaces, %d tets still queued",
				r.segQ.Len(), r.subQ.Len(), r.tetQ.Len())
			return meshlog.Wrap(meshlog.Cancelled, err)
		}

		switch {
		case r.segQ.Len() > 0:
			item := heap.Pop(&r.segQ).(segItem)
			if _, live := r.segs[item.key]; !live {
				continue
			}
			if r.opts.NoBisect {
				r.log.Warn("segment (%d,%d) encroached but -Y forbids splitting it, leaving as-is",
					item.key.lo, item.key.hi)
				continue
			}
			if done, err := r.checkBudget(); done {
				return err
			}
			if err := r.splitSegment(item.key); err != nil {
				return err
			}
		case r.subQ.Len() > 0:
			item := heap.Pop(&r.subQ).(subItem)
			marker, live := r.subs[item.key]
			if !live {
				continue
			}
			if r.opts.NoBisect {
				r.log.Warn("subface (%d,%d,%d) encroached but -Y forbids splitting it, leaving as-is",
					item.key.a, item.key.b, item.key.c)
				continue
			}
			if done, err := r.checkBudget(); done {
				return err
			}
			if err := r.refineSubface(item.key, marker); err != nil {
				return err
			}
		case r.tetQ.Len() > 0:
			item := heap.Pop(&r.tetQ).(tetItem)
			if !r.store.Tets.IsLive(item.id) {
				continue
			}
			if !r.tetIsBad(item.id) {
				continue
			}
			if done, err := r.checkBudget(); done {
				return err
			}
			if err := r.refineTet(item.id); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// checkBudget reports whether the Steiner cap has been reached: if so,
// refinement stops with a non-fatal Budget error and the
// partially-refined mesh stays exactly as it is (spec.md §4.7).
func (r *Refiner) checkBudget() (bool, error) {
	if r.opts.SteinerCap < 0 || r.steinerCount < r.opts.SteinerCap {
		return false, nil
	}
	r.log.Warn("steiner cap %d reached, returning partially-refined mesh", r.opts.SteinerCap)
	return true, meshlog.Newf(meshlog.Budget, "steiner cap %d exceeded", r.opts.SteinerCap)
}

// initQueues seeds the three queues from the mesh's current state: every
// already-encroached segment/subface, and every tet already violating
// the radius-edge or volume bound.
func (r *Refiner) initQueues() {
	for k := range r.segs {
		if r.segmentEncroachedKey(k) {
			heap.Push(&r.segQ, segItem{key: k, length: r.segmentLength(k)})
		}
	}
	for k := range r.subs {
		if r.subfaceEncroachedKey(k) {
			heap.Push(&r.subQ, subItem{key: k, radius: r.subfaceRadius(k)})
		}
	}
	for id := meshstore.TetID(0); int(id) < r.store.Tets.Len(); id++ {
		if !r.store.Tets.IsLive(id) {
			continue
		}
		if r.store.Tets.Get(id).IsGhost() {
			continue
		}
		if r.tetIsBad(id) {
			heap.Push(&r.tetQ, tetItem{id: id, ratio: r.tetRatio(id)})
		}
	}
}

// registerNewTets checks every newly created tetrahedron (from a Steiner
// insertion) for quality violations and queues any that are bad, per
// spec.md §4.6 "enqueue newly bad subfaces/tets; re-check neighbors".
// Newly created subfaces come already queued from the split that made
// them (splitSegment/refineSubface register their own replacements).
func (r *Refiner) registerNewTets(created []meshstore.TetID) {
	for _, id := range created {
		if r.store.Tets.Get(id).IsGhost() {
			continue
		}
		if r.tetIsBad(id) {
			heap.Push(&r.tetQ, tetItem{id: id, ratio: r.tetRatio(id)})
		}
	}
}

func (r *Refiner) point(id meshstore.VertexID) vec3.Vec {
	return r.store.Vertices.Point(id)
}
