package meshstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunpia/tetgen/meshstore"
	"github.com/sunpia/tetgen/vec3"
)

func newTet(t *testing.T) (*meshstore.MeshStore, meshstore.VertexID, meshstore.VertexID, meshstore.VertexID, meshstore.VertexID) {
	t.Helper()
	m := meshstore.New(1)
	a := m.Vertices.Add(vec3.Vec{X: 0, Y: 0, Z: 0}, meshstore.Input, nil, 0)
	b := m.Vertices.Add(vec3.Vec{X: 1, Y: 0, Z: 0}, meshstore.Input, nil, 0)
	c := m.Vertices.Add(vec3.Vec{X: 0, Y: 1, Z: 0}, meshstore.Input, nil, 0)
	d := m.Vertices.Add(vec3.Vec{X: 0, Y: 0, Z: 1}, meshstore.Input, nil, 0)
	_, err := m.Bootstrap(a, b, c, d)
	require.NoError(t, err)
	return m, a, b, c, d
}

func TestBootstrapInvariants(t *testing.T) {
	m, _, _, _, _ := newTet(t)
	require.NoError(t, m.CheckInvariants())
}

func TestBootstrapCoplanarFails(t *testing.T) {
	m := meshstore.New(1)
	a := m.Vertices.Add(vec3.Vec{X: 0, Y: 0, Z: 0}, meshstore.Input, nil, 0)
	b := m.Vertices.Add(vec3.Vec{X: 1, Y: 0, Z: 0}, meshstore.Input, nil, 0)
	c := m.Vertices.Add(vec3.Vec{X: 0, Y: 1, Z: 0}, meshstore.Input, nil, 0)
	d := m.Vertices.Add(vec3.Vec{X: 1, Y: 1, Z: 0}, meshstore.Input, nil, 0)
	_, err := m.Bootstrap(a, b, c, d)
	require.Error(t, err)
}

func TestLocateInterior(t *testing.T) {
	m, _, _, _, _ := newTet(t)
	loc, err := m.Locate(vec3.Vec{X: 0.1, Y: 0.1, Z: 0.1})
	require.NoError(t, err)
	assert.Equal(t, meshstore.Inside, loc.Pos)
}

func TestLocateExteriorLandsInGhost(t *testing.T) {
	m, _, _, _, _ := newTet(t)
	loc, err := m.Locate(vec3.Vec{X: 5, Y: 5, Z: 5})
	require.NoError(t, err)
	assert.Equal(t, meshstore.Inside, loc.Pos)
	assert.True(t, m.Tets.Get(loc.Tet).IsGhost())
}

func TestInsertPointPreservesInvariants(t *testing.T) {
	m, _, _, _, _ := newTet(t)
	p := m.Vertices.Add(vec3.Vec{X: 0.2, Y: 0.2, Z: 0.2}, meshstore.SteinerVolume, nil, 0)
	news, loc, err := m.InsertPoint(p, vec3.Vec{X: 0.2, Y: 0.2, Z: 0.2})
	require.NoError(t, err)
	assert.Equal(t, meshstore.Inside, loc.Pos)
	assert.Len(t, news, 4)
	require.NoError(t, m.CheckInvariants())
}

func TestInsertExteriorPointGrowsHull(t *testing.T) {
	m, _, _, _, _ := newTet(t)
	p := m.Vertices.Add(vec3.Vec{X: -1, Y: -1, Z: -1}, meshstore.Input, nil, 0)
	_, _, err := m.InsertPoint(p, vec3.Vec{X: -1, Y: -1, Z: -1})
	require.NoError(t, err)
	require.NoError(t, m.CheckInvariants())
}

func TestFlip14ThenFlip41RoundTrips(t *testing.T) {
	m, a, b, c, d := newTet(t)

	var real meshstore.TetID
	for id := meshstore.TetID(0); int(id) < 64; id++ {
		if m.Tets.IsLive(id) {
			tet := m.Tets.Get(id)
			if !tet.IsGhost() {
				real = id
				break
			}
		}
	}

	p := m.Vertices.Add(vec3.Vec{X: 0.2, Y: 0.2, Z: 0.2}, meshstore.SteinerVolume, nil, 0)
	news, err := m.Flip14(real, p)
	require.NoError(t, err)
	require.NoError(t, m.CheckInvariants())

	back, err := m.Flip41(news, p)
	require.NoError(t, err)
	require.NoError(t, m.CheckInvariants())

	tet := m.Tets.Get(back)
	assert.ElementsMatch(t, []meshstore.VertexID{a, b, c, d}, tet.V[:])
}

func TestEnumerateStarCoversAllIncidentTets(t *testing.T) {
	m, a, _, _, _ := newTet(t)
	star := m.EnumerateStar(a)
	assert.NotEmpty(t, star)
	for _, id := range star {
		assert.True(t, m.Tets.IsLive(id))
		assert.NotEqual(t, -1, m.Tets.Get(id).IndexOf(a))
	}
}
