package delaunay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunpia/tetgen/delaunay"
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

func TestBuildCubeSatisfiesInvariants(t *testing.T) {
	b := delaunay.NewBuilder(7)
	_, err := b.Build(cubePoints())
	require.NoError(t, err)
	assert.NoError(t, b.Store().CheckInvariants())
	assert.NoError(t, b.CheckDelaunay())
}

func TestBuildCubePlusInteriorPoint(t *testing.T) {
	pts := append(cubePoints(), vec3.Vec{X: 5, Y: 5, Z: 5})
	b := delaunay.NewBuilder(11)
	ids, err := b.Build(pts)
	require.NoError(t, err)
	require.Len(t, ids, len(pts))
	assert.NoError(t, b.Store().CheckInvariants())
	assert.NoError(t, b.CheckDelaunay())
}

func TestBuildDropsExactDuplicate(t *testing.T) {
	pts := cubePoints()
	pts = append(pts, pts[0]) // exact duplicate of the first vertex
	b := delaunay.NewBuilder(3)
	ids, err := b.Build(pts)
	require.NoError(t, err)
	assert.Equal(t, ids[0], ids[len(ids)-1])
	assert.NoError(t, b.Store().CheckInvariants())
}

func TestBuildRejectsTooFewPoints(t *testing.T) {
	b := delaunay.NewBuilder(1)
	_, err := b.Build(cubePoints()[:3])
	require.Error(t, err)
}

func TestBuildRejectsCoplanarInput(t *testing.T) {
	pts := []vec3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0},
		{X: 2, Y: 2, Z: 0},
	}
	b := delaunay.NewBuilder(1)
	_, err := b.Build(pts)
	require.Error(t, err)
}

func TestBuildDeterministicGivenSeed(t *testing.T) {
	pts := append(cubePoints(), vec3.Vec{X: 4, Y: 6, Z: 3}, vec3.Vec{X: 2, Y: 2, Z: 8})
	b1 := delaunay.NewBuilder(42)
	ids1, err := b1.Build(pts)
	require.NoError(t, err)
	b2 := delaunay.NewBuilder(42)
	ids2, err := b2.Build(pts)
	require.NoError(t, err)
	assert.Equal(t, ids1, ids2)
	assert.Equal(t, b1.Store().Tets.Len(), b2.Store().Tets.Len())
}
