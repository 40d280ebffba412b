package refine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunpia/tetgen/constraint"
	"github.com/sunpia/tetgen/delaunay"
	"github.com/sunpia/tetgen/meshlog"
	"github.com/sunpia/tetgen/meshstore"
	"github.com/sunpia/tetgen/predicate"
	"github.com/sunpia/tetgen/refine"
	"github.com/sunpia/tetgen/vec3"
)

func cubePoints() []vec3.Vec {
	return []vec3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0},
		{X: 10, Y: 10, Z: 0}, {X: 0, Y: 10, Z: 0},
		{X: 0, Y: 0, Z: 10}, {X: 10, Y: 0, Z: 10},
		{X: 10, Y: 10, Z: 10}, {X: 0, Y: 10, Z: 10},
	}
}

func cubeFacets(ids []meshstore.VertexID) []constraint.Facet {
	quad := func(a, b, c, d int) constraint.Facet {
		return constraint.Facet{
			Polygons: []constraint.Polygon{{Verts: []meshstore.VertexID{ids[a], ids[b], ids[c], ids[d]}}},
		}
	}
	return []constraint.Facet{
		quad(0, 1, 2, 3), quad(4, 5, 6, 7),
		quad(0, 1, 5, 4), quad(1, 2, 6, 5),
		quad(2, 3, 7, 6), quad(3, 0, 4, 7),
	}
}

func buildRecoveredCube(t *testing.T, seed int64) *meshstore.MeshStore {
	t.Helper()
	b := delaunay.NewBuilder(seed)
	ids, err := b.Build(cubePoints())
	require.NoError(t, err)

	r := constraint.New(b.Store())
	for _, f := range cubeFacets(ids) {
		_, err := r.RecoverFacet(f)
		require.NoError(t, err)
	}
	return b.Store()
}

func everyRealTetRatio(t *testing.T, store *meshstore.MeshStore) []float64 {
	t.Helper()
	var out []float64
	for id := meshstore.TetID(0); int(id) < store.Tets.Len(); id++ {
		if !store.Tets.IsLive(id) {
			continue
		}
		tet := store.Tets.Get(id)
		if tet.IsGhost() {
			continue
		}
		pa, pb, pc, pd := store.Vertices.Point(tet.V[0]), store.Vertices.Point(tet.V[1]),
			store.Vertices.Point(tet.V[2]), store.Vertices.Point(tet.V[3])
		pt := func(v vec3.Vec) predicate.Point3 { return predicate.Point3{X: v.X, Y: v.Y, Z: v.Z} }
		out = append(out, predicate.AspectRatio(pt(pa), pt(pb), pt(pc), pt(pd)))
	}
	return out
}

func TestRefineNoopOnAlreadyGoodMesh(t *testing.T) {
	store := buildRecoveredCube(t, 21)

	r := refine.New(store, nil, refine.Options{RadiusEdgeRatio: 1000})
	require.NoError(t, r.Refine(context.Background()))
	require.NoError(t, store.CheckInvariants())
}

func TestRefineSplitsBadTets(t *testing.T) {
	store := buildRecoveredCube(t, 23)

	before := everyRealTetRatio(t, store)
	maxBefore := 0.0
	for _, v := range before {
		if v > maxBefore {
			maxBefore = v
		}
	}
	require.Greater(t, maxBefore, 1.0, "test fixture assumption: the unrefined cube has a tet worse than ratio 1.0")

	r := refine.New(store, nil, refine.Options{RadiusEdgeRatio: 1.0, SteinerCap: 500})
	err := r.Refine(context.Background())
	require.NoError(t, err)
	require.NoError(t, store.CheckInvariants())

	for _, ratio := range everyRealTetRatio(t, store) {
		assert.LessOrEqual(t, ratio, 1.0+1e-6)
	}
}

func TestRefineStopsAtSteinerCap(t *testing.T) {
	store := buildRecoveredCube(t, 29)

	r := refine.New(store, nil, refine.Options{RadiusEdgeRatio: 1.0, SteinerCap: 0})
	err := r.Refine(context.Background())
	require.Error(t, err)

	var merr *meshlog.Error
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, meshlog.Budget, merr.Kind)
	assert.NoError(t, store.CheckInvariants())
}

func TestRefineRespectsCancellation(t *testing.T) {
	store := buildRecoveredCube(t, 31)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := refine.New(store, nil, refine.Options{RadiusEdgeRatio: 1.0, SteinerCap: 500})
	err := r.Refine(ctx)
	require.Error(t, err)

	var merr *meshlog.Error
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, meshlog.Cancelled, merr.Kind)
	assert.NoError(t, store.CheckInvariants())
}
