package region_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunpia/tetgen/constraint"
	"github.com/sunpia/tetgen/delaunay"
	"github.com/sunpia/tetgen/meshstore"
	"github.com/sunpia/tetgen/region"
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

// cubeFacets returns the 6 quad faces of cubePoints, in ids[...] order,
// matching corner numbering 0..7 (bottom 0-3, top 4-7).
func cubeFacets(ids []meshstore.VertexID) []constraint.Facet {
	quad := func(a, b, c, d int) constraint.Facet {
		return constraint.Facet{
			Polygons: []constraint.Polygon{{Verts: []meshstore.VertexID{ids[a], ids[b], ids[c], ids[d]}}},
		}
	}
	return []constraint.Facet{
		quad(0, 1, 2, 3), // bottom
		quad(4, 5, 6, 7), // top
		quad(0, 1, 5, 4), // front
		quad(1, 2, 6, 5), // right
		quad(2, 3, 7, 6), // back
		quad(3, 0, 4, 7), // left
	}
}

func TestCarveStampsInteriorRegion(t *testing.T) {
	b := delaunay.NewBuilder(11)
	ids, err := b.Build(cubePoints())
	require.NoError(t, err)

	r := constraint.New(b.Store())
	for _, f := range cubeFacets(ids) {
		_, err := r.RecoverFacet(f)
		require.NoError(t, err)
	}

	c := region.New(b.Store())
	err = c.Carve(nil, []region.Seed{{Point: vec3.Vec{X: 5, Y: 5, Z: 5}, Attribute: 42, MaxVolume: 100}})
	require.NoError(t, err)

	require.NoError(t, b.Store().CheckInvariants())

	sawReal := false
	for id := meshstore.TetID(0); int(id) < b.Store().Tets.Len(); id++ {
		if !b.Store().Tets.IsLive(id) {
			continue
		}
		tet := b.Store().Tets.Get(id)
		if tet.IsGhost() {
			continue
		}
		sawReal = true
		assert.Equal(t, int32(42), tet.Region)
		assert.True(t, tet.HasVolBnd)
		assert.Equal(t, 100.0, tet.MaxVolume)
	}
	assert.True(t, sawReal)
}

func TestCarveIgnoresUnreachableHoleSeed(t *testing.T) {
	b := delaunay.NewBuilder(13)
	ids, err := b.Build(cubePoints())
	require.NoError(t, err)
	_ = ids

	c := region.New(b.Store())
	err = c.Carve([]vec3.Vec{{X: 1000, Y: 1000, Z: 1000}}, nil)
	require.NoError(t, err)
	assert.NoError(t, b.Store().CheckInvariants())
}
