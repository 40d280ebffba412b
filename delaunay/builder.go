// Package delaunay implements the incremental Bowyer-Watson
// tetrahedralization builder of spec.md §4.3: BRIO point ordering,
// bootstrap from the first four non-coplanar points, and per-point
// locate -> find_cavity -> fill_cavity insertion with degenerate-position
// handling and duplicate-vertex dropping.
package delaunay

import (
	"math/rand"

	"github.com/sunpia/tetgen/meshlog"
	"github.com/sunpia/tetgen/meshstore"
	"github.com/sunpia/tetgen/predicate"
	"github.com/sunpia/tetgen/vec3"
)

// Builder drives meshstore through the point-insertion sequence that
// produces a Delaunay tetrahedralization of a point set. It owns no
// state beyond the store itself and a log; everything about the result
// is recoverable from Store().
type Builder struct {
	store *meshstore.MeshStore
	log   *meshlog.Logger
	seed  int64
}

// NewBuilder returns a Builder backed by a fresh, empty mesh store. seed
// drives both BRIO's random bucketing and the store's own locate-walk
// tie-breaking, so two builders seeded alike and fed the same points
// produce bit-identical meshes (spec.md §5).
func NewBuilder(seed int64) *Builder {
	return &Builder{
		store: meshstore.New(seed),
		log:   meshlog.Default("delaunay"),
		seed:  seed,
	}
}

// Store returns the mesh store the builder has been populating.
func (b *Builder) Store() *meshstore.MeshStore { return b.store }

// Build inserts every point in points into the mesh store, in BRIO order,
// and returns the arena id assigned to each input point (in points'
// original order; a duplicate point's id is its earlier coincident
// vertex's id). Per spec.md §4.7: fewer than 4 points or an entirely
// coplanar input is a fatal INPUT/GEOMETRY error; everything else is
// handled by absorbing or dropping the offending point and continuing.
func (b *Builder) Build(points []vec3.Vec) ([]meshstore.VertexID, error) {
	if len(points) < 4 {
		return nil, meshlog.Newf(meshlog.Input, "delaunay: INSUFFICIENT_INPUT: need at least 4 vertices, got %d", len(points))
	}

	// BRIO gets its own rng, seeded the same as the store's, so the split
	// between "which order to insert in" and "which way Locate breaks
	// ties" stays reproducible without the two sharing mutable state.
	rng := rand.New(rand.NewSource(b.seed))
	order := briOrder(points, rng)

	ids := make([]meshstore.VertexID, len(points))
	for i := range ids {
		ids[i] = meshstore.NoVertex
	}

	seedLocal, rest, err := pickSeed(points, order)
	if err != nil {
		return nil, err
	}

	var seedIDs [4]meshstore.VertexID
	for i, pi := range seedLocal {
		seedIDs[i] = b.store.Vertices.Add(points[pi], meshstore.Input, nil, -1)
		ids[pi] = seedIDs[i]
	}
	if _, err := b.store.Bootstrap(seedIDs[0], seedIDs[1], seedIDs[2], seedIDs[3]); err != nil {
		return nil, err
	}

	for _, pi := range rest {
		p := points[pi]
		if err := b.insertOne(p, pi, ids); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// pickSeed scans order for the first four points that are not mutually
// coplanar, swapping the second/third if necessary is left to
// meshstore.Bootstrap itself. Returns their indices into points (in
// order-of-discovery) and the remaining indices (in BRIO order, with the
// four seed points removed).
func pickSeed(points []vec3.Vec, order []int) ([4]int, []int, error) {
	var seed [4]int
	found := 0
	used := map[int]bool{}
	for _, i := range order {
		if found == 4 {
			break
		}
		if found < 3 {
			if found == 1 && points[i] == points[seed[0]] {
				continue // coincides with the first seed point
			}
			if found == 2 {
				a, b2, c := points[seed[0]], points[seed[1]], points[i]
				xy := predicate.Orient2D(predicate.Point2{X: a.X, Y: a.Y}, predicate.Point2{X: b2.X, Y: b2.Y}, predicate.Point2{X: c.X, Y: c.Y})
				yz := predicate.Orient2D(predicate.Point2{X: a.Y, Y: a.Z}, predicate.Point2{X: b2.Y, Y: b2.Z}, predicate.Point2{X: c.Y, Y: c.Z})
				zx := predicate.Orient2D(predicate.Point2{X: a.Z, Y: a.X}, predicate.Point2{X: b2.Z, Y: b2.X}, predicate.Point2{X: c.Z, Y: c.X})
				if xy == predicate.Zero && yz == predicate.Zero && zx == predicate.Zero {
					continue // collinear with the first two seed points
				}
			}
			seed[found] = i
			used[i] = true
			found++
			continue
		}
		a, b2, c := toPoint3(points[seed[0]]), toPoint3(points[seed[1]]), toPoint3(points[seed[2]])
		if predicate.Orient3D(a, b2, c, toPoint3(points[i])) != predicate.Zero {
			seed[3] = i
			used[i] = true
			found++
		}
	}
	if found < 4 {
		return [4]int{}, nil, meshlog.Newf(meshlog.Geometry, "delaunay: DEGENERATE_INPUT: all input points are coplanar")
	}
	rest := make([]int, 0, len(order)-4)
	for _, i := range order {
		if !used[i] {
			rest = append(rest, i)
		}
	}
	return seed, rest, nil
}

func toPoint3(p vec3.Vec) predicate.Point3 {
	return predicate.Point3{X: p.X, Y: p.Y, Z: p.Z}
}

// insertOne inserts p as an Input vertex via meshstore.InsertVertex,
// which absorbs the degenerate ON_FACE/ON_EDGE locate cases, and drops p
// with a warning if it exactly coincides with a vertex already present
// (spec.md §4.3, §4.7).
func (b *Builder) insertOne(p vec3.Vec, pointIndex int, ids []meshstore.VertexID) error {
	id, _, dup, err := b.store.InsertVertex(p, meshstore.Input, nil, -1)
	if err != nil {
		return err
	}
	if dup {
		b.log.Warn("dropping duplicate vertex at %v (coincides with vertex %d)", p, id)
	}
	ids[pointIndex] = id
	return nil
}

// CheckDelaunay verifies P3: no live, non-ghost tetrahedron's
// circumsphere strictly contains a vertex of any tetrahedron sharing a
// face with it (the local Delaunay criterion, which implies the global
// one on a connected mesh). Intended for test and diagnostic use.
func (b *Builder) CheckDelaunay() error {
	store := b.store
	for id := meshstore.TetID(0); int(id) < store.Tets.Len(); id++ {
		if !store.Tets.IsLive(id) {
			continue
		}
		t := store.Tets.Get(id)
		if t.IsGhost() {
			continue
		}
		a, bb, c, d := t.V[0], t.V[1], t.V[2], t.V[3]
		pa, pb, pc, pd := pointOf(store, a), pointOf(store, bb), pointOf(store, c), pointOf(store, d)
		for f := 0; f < 4; f++ {
			nt := store.Tets.Get(t.Nbr[f])
			if nt.IsGhost() {
				continue
			}
			for _, v := range nt.V {
				if v == a || v == bb || v == c || v == d {
					continue
				}
				if predicate.InSphere(pa, pb, pc, pd, pointOf(store, v)) == predicate.Positive {
					return meshlog.Newf(meshlog.Invariant, "tet %d circumsphere strictly contains neighbor vertex %d", id, v)
				}
			}
		}
	}
	return nil
}

func pointOf(store *meshstore.MeshStore, v meshstore.VertexID) predicate.Point3 {
	return toPoint3(store.Vertices.Point(v))
}
