package constraint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunpia/tetgen/constraint"
	"github.com/sunpia/tetgen/delaunay"
	"github.com/sunpia/tetgen/meshstore"
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

func TestRecoverSegmentDiagonal(t *testing.T) {
	b := delaunay.NewBuilder(5)
	ids, err := b.Build(cubePoints())
	require.NoError(t, err)

	r := constraint.New(b.Store())
	chain, err := r.RecoverSegment(ids[0], ids[2])
	require.NoError(t, err)
	assert.Equal(t, ids[0], chain[0])
	assert.Equal(t, ids[2], chain[len(chain)-1])

	err = r.CheckCoverage([]constraint.Segment{{A: ids[0], B: ids[2]}}, nil)
	assert.NoError(t, err)
	assert.NoError(t, b.Store().CheckInvariants())
}

func TestRecoverFacetBottomFace(t *testing.T) {
	b := delaunay.NewBuilder(9)
	ids, err := b.Build(cubePoints())
	require.NoError(t, err)

	r := constraint.New(b.Store())
	facet := constraint.Facet{
		Polygons: []constraint.Polygon{{Verts: []meshstore.VertexID{ids[0], ids[1], ids[2], ids[3]}}},
		Marker:   1,
	}
	subs, err := r.RecoverFacet(facet)
	require.NoError(t, err)
	assert.NotEmpty(t, subs)

	assert.NoError(t, r.CheckCoverage(nil, subs))
	assert.NoError(t, b.Store().CheckInvariants())
}
