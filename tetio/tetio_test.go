package tetio_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunpia/tetgen/tetio"
)

func TestNodeRoundTrip(t *testing.T) {
	nf := &tetio.NodeFile{
		FirstIndex: 1,
		NAttrs:     1,
		HasMarker:  true,
		Points: []tetio.NodePoint{
			{X: 0, Y: 0, Z: 0, Attrs: []float64{1.5}, Marker: 2},
			{X: 10, Y: 0, Z: 0, Attrs: []float64{2.5}, Marker: 3},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, tetio.WriteNode(&buf, nf))

	got, err := tetio.ReadNode(&buf)
	require.NoError(t, err)
	assert.Equal(t, nf.FirstIndex, got.FirstIndex)
	assert.Equal(t, nf.NAttrs, got.NAttrs)
	assert.Equal(t, nf.HasMarker, got.HasMarker)
	assert.Equal(t, nf.Points, got.Points)
}

func TestNodeZeroBased(t *testing.T) {
	nf := &tetio.NodeFile{FirstIndex: 0, Points: []tetio.NodePoint{{X: 1, Y: 2, Z: 3}}}
	var buf bytes.Buffer
	require.NoError(t, tetio.WriteNode(&buf, nf))
	got, err := tetio.ReadNode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, got.FirstIndex)
}

func TestEleRoundTrip(t *testing.T) {
	ef := &tetio.EleFile{FirstIndex: 1, Corners: 4, NAttrs: 1}
	ef.Tets = []tetio.EleRow{
		{Verts: [10]int{1, 2, 3, 4}, Attrs: []float64{7}},
		{Verts: [10]int{2, 3, 4, 5}, Attrs: []float64{8}},
	}
	var buf bytes.Buffer
	require.NoError(t, tetio.WriteEle(&buf, ef))

	got, err := tetio.ReadEle(&buf, 1)
	require.NoError(t, err)
	assert.Equal(t, ef.Tets, got.Tets)
	assert.Equal(t, ef.Corners, got.Corners)
}

func TestFaceRoundTrip(t *testing.T) {
	ff := &tetio.FaceFile{FirstIndex: 1, HasMarker: true}
	ff.Faces = []tetio.FaceRow{{V: [3]int{1, 2, 3}, Marker: 5}}
	var buf bytes.Buffer
	require.NoError(t, tetio.WriteFace(&buf, ff))

	got, err := tetio.ReadFace(&buf, 1)
	require.NoError(t, err)
	assert.Equal(t, ff.Faces, got.Faces)
}

func TestEdgeRoundTrip(t *testing.T) {
	ef := &tetio.EdgeFile{FirstIndex: 1}
	ef.Edges = []tetio.EdgeRow{{V: [2]int{1, 2}}}
	var buf bytes.Buffer
	require.NoError(t, tetio.WriteEdge(&buf, ef))

	got, err := tetio.ReadEdge(&buf, 1)
	require.NoError(t, err)
	assert.Equal(t, ef.Edges, got.Edges)
}

func TestPolyRoundTrip(t *testing.T) {
	pf := &tetio.PolyFile{
		Node: tetio.NodeFile{
			FirstIndex: 1,
			Points: []tetio.NodePoint{
				{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0},
				{X: 10, Y: 10, Z: 0}, {X: 0, Y: 10, Z: 0},
			},
		},
		HasFacetTag: true,
		Facets: []tetio.PolyFacet{
			{Polygons: []tetio.PolyPolygon{{Verts: []int{1, 2, 3, 4}}}, Marker: 1},
		},
		Holes:   [][3]float64{{5, 5, 5}},
		Regions: []tetio.PolyRegion{{Point: [3]float64{1, 1, 1}, Attribute: 2, MaxVolume: 0.5}},
	}
	var buf bytes.Buffer
	require.NoError(t, tetio.WritePoly(&buf, pf))

	got, err := tetio.ReadPoly(&buf)
	require.NoError(t, err)
	assert.Equal(t, pf.Node.Points, got.Node.Points)
	assert.Equal(t, pf.Facets, got.Facets)
	assert.Equal(t, pf.Holes, got.Holes)
	assert.Equal(t, pf.Regions, got.Regions)
}

func TestNodeRejectsMalformedHeader(t *testing.T) {
	_, err := tetio.ReadNode(bytes.NewBufferString("not-a-number\n"))
	assert.Error(t, err)
}

func TestEleStreamAccumulates(t *testing.T) {
	s := tetio.NewEleStream(4, 0, 1)
	s.Send([]tetio.EleRow{{Verts: [10]int{1, 2, 3, 4}}})
	s.Send([]tetio.EleRow{{Verts: [10]int{2, 3, 4, 5}}})
	ef := s.Close()
	assert.Len(t, ef.Tets, 2)
}
