package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sunpia/tetgen/behavior"
	"github.com/sunpia/tetgen/meshlog"
	"github.com/sunpia/tetgen/meshstore"
	"github.com/sunpia/tetgen/refine"
	"github.com/sunpia/tetgen/tetio"
	"github.com/sunpia/tetgen/vec3"
)

// inputMesh is the pipeline's file-format-agnostic view of whatever was
// read from the input path: a point set, plus (for a .poly) the facets,
// holes, and region seeds of a PLC. Facet/region point indices are
// already rebased to 0-based offsets into points.
type inputMesh struct {
	points  []vec3.Vec
	facets  []facetIn
	holes   [][3]float64
	regions []regionIn
}

type facetIn struct {
	polygons [][]int
	marker   int32
}

type regionIn struct {
	Point     [3]float64
	Attribute int32
	MaxVolume float64
}

// readInput loads path as a .node or .poly file per spec.md §6, rebasing
// every vertex index it contains to a 0-based offset into the returned
// points slice regardless of the file's own FirstIndex.
func readInput(path string) (*inputMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, meshlog.Newf(meshlog.Input, "opening %s: %v", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".poly":
		pf, err := tetio.ReadPoly(f)
		if err != nil {
			return nil, err
		}
		return fromPolyFile(pf), nil
	case ".node":
		nf, err := tetio.ReadNode(f)
		if err != nil {
			return nil, err
		}
		return &inputMesh{points: nodePoints(nf)}, nil
	default:
		return nil, meshlog.Newf(meshlog.Input, "unsupported input extension %q (want .node or .poly)", ext)
	}
}

func nodePoints(nf *tetio.NodeFile) []vec3.Vec {
	out := make([]vec3.Vec, len(nf.Points))
	for i, p := range nf.Points {
		out[i] = vec3.Vec{X: p.X, Y: p.Y, Z: p.Z}
	}
	return out
}

func fromPolyFile(pf *tetio.PolyFile) *inputMesh {
	in := &inputMesh{
		points: nodePoints(&pf.Node),
		holes:  pf.Holes,
	}
	rebase := func(raw int) int { return raw - pf.Node.FirstIndex }
	for _, pfacet := range pf.Facets {
		f := facetIn{marker: pfacet.Marker}
		for _, poly := range pfacet.Polygons {
			verts := make([]int, len(poly.Verts))
			for i, v := range poly.Verts {
				verts[i] = rebase(v)
			}
			f.polygons = append(f.polygons, verts)
		}
		in.facets = append(in.facets, f)
	}
	for _, r := range pf.Regions {
		in.regions = append(in.regions, regionIn{Point: r.Point, Attribute: r.Attribute, MaxVolume: r.MaxVolume})
	}
	return in
}

// writeOutputs emits the generated mesh's .node/.ele and, if requested,
// .face/.edge files at <basename>.1.<ext>, following the numbered-output
// convention established TetGen tooling uses (original_source's cli.py
// save_output_files).
func writeOutputs(inputPath string, b behavior.Behavior, res *result, log *meshlog.Logger) error {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	firstIndex := 1
	if b.ZeroIndex {
		firstIndex = 0
	}

	vertexOut, nVerts := mapLiveVertices(res.store)
	boundary := boundaryVertices(res.store)

	nf := &tetio.NodeFile{FirstIndex: firstIndex, HasMarker: len(res.segments) > 0 || hasBoundary(boundary)}
	nf.Points = make([]tetio.NodePoint, nVerts)
	for id, out := range vertexOut {
		p := res.store.Vertices.Point(meshstore.VertexID(id))
		marker := int32(0)
		if boundary[meshstore.VertexID(id)] {
			marker = 1
		}
		nf.Points[out] = tetio.NodePoint{X: p.X, Y: p.Y, Z: p.Z, Marker: marker}
	}
	if err := writeFile(base+".1.node", func(w *os.File) error { return tetio.WriteNode(w, nf) }); err != nil {
		return err
	}
	log.Info("wrote %d points to %s.1.node", len(nf.Points), base)

	ef := buildEleFile(res.store, vertexOut, b.RegionAttrib, firstIndex)
	if err := writeFile(base+".1.ele", func(w *os.File) error { return tetio.WriteEle(w, ef) }); err != nil {
		return err
	}
	log.Info("wrote %d tetrahedra to %s.1.ele", len(ef.Tets), base)

	if b.FacesOut {
		ff := buildFaceFile(res.store, vertexOut, firstIndex)
		if err := writeFile(base+".1.face", func(w *os.File) error { return tetio.WriteFace(w, ff) }); err != nil {
			return err
		}
		log.Info("wrote %d faces to %s.1.face", len(ff.Faces), base)
	}

	if b.EdgesOut {
		edf := buildEdgeFile(res.segments, vertexOut, firstIndex)
		if err := writeFile(base+".1.edge", func(w *os.File) error { return tetio.WriteEdge(w, edf) }); err != nil {
			return err
		}
		log.Info("wrote %d edges to %s.1.edge", len(edf.Edges), base)
	}

	return nil
}

func hasBoundary(boundary map[meshstore.VertexID]bool) bool {
	return len(boundary) > 0
}

// mapLiveVertices assigns every live vertex a contiguous 0-based output
// index, in arena order.
func mapLiveVertices(store *meshstore.MeshStore) (map[int32]int, int) {
	out := map[int32]int{}
	next := 0
	for id := meshstore.VertexID(0); int(id) < store.Vertices.Len(); id++ {
		if !store.Vertices.IsLive(id) {
			continue
		}
		out[int32(id)] = next
		next++
	}
	return out, next
}

// boundaryVertices reports, for every vertex touching a recovered
// subface, that it sits on the domain boundary (spec.md §6's .node
// marker column conventionally flags exactly these).
func boundaryVertices(store *meshstore.MeshStore) map[meshstore.VertexID]bool {
	out := map[meshstore.VertexID]bool{}
	for id := meshstore.TetID(0); int(id) < store.Tets.Len(); id++ {
		if !store.Tets.IsLive(id) {
			continue
		}
		t := store.Tets.Get(id)
		if t.IsGhost() {
			continue
		}
		for f := 0; f < 4; f++ {
			if t.FaceMarker[f] == -1 {
				continue
			}
			for _, v := range t.FaceVertices(f) {
				out[v] = true
			}
		}
	}
	return out
}

func buildEleFile(store *meshstore.MeshStore, vertexOut map[int32]int, regionAttrib bool, firstIndex int) *tetio.EleFile {
	ef := &tetio.EleFile{FirstIndex: firstIndex, Corners: 4}
	if regionAttrib {
		ef.NAttrs = 1
	}
	for id := meshstore.TetID(0); int(id) < store.Tets.Len(); id++ {
		if !store.Tets.IsLive(id) {
			continue
		}
		t := store.Tets.Get(id)
		if t.IsGhost() {
			continue
		}
		row := tetio.EleRow{}
		for i, v := range t.V {
			row.Verts[i] = vertexOut[int32(v)] + firstIndex
		}
		if regionAttrib {
			row.Attrs = []float64{float64(t.Region)}
		}
		ef.Tets = append(ef.Tets, row)
	}
	return ef
}

func buildFaceFile(store *meshstore.MeshStore, vertexOut map[int32]int, firstIndex int) *tetio.FaceFile {
	ff := &tetio.FaceFile{FirstIndex: firstIndex, HasMarker: true}
	seen := map[[3]int]bool{}
	for id := meshstore.TetID(0); int(id) < store.Tets.Len(); id++ {
		if !store.Tets.IsLive(id) {
			continue
		}
		t := store.Tets.Get(id)
		if t.IsGhost() {
			continue
		}
		for f := 0; f < 4; f++ {
			if t.FaceMarker[f] == -1 {
				continue
			}
			verts := t.FaceVertices(f)
			key := sortedTriple(vertexOut[int32(verts[0])], vertexOut[int32(verts[1])], vertexOut[int32(verts[2])])
			if seen[key] {
				continue
			}
			seen[key] = true
			ff.Faces = append(ff.Faces, tetio.FaceRow{
				V:      [3]int{key[0] + firstIndex, key[1] + firstIndex, key[2] + firstIndex},
				Marker: t.FaceMarker[f],
			})
		}
	}
	return ff
}

func buildEdgeFile(segments []refine.Segment, vertexOut map[int32]int, firstIndex int) *tetio.EdgeFile {
	ef := &tetio.EdgeFile{FirstIndex: firstIndex, HasMarker: true}
	seen := map[[2]int]bool{}
	for _, s := range segments {
		a, b := vertexOut[int32(s.A)], vertexOut[int32(s.B)]
		key := [2]int{a, b}
		if a > b {
			key = [2]int{b, a}
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		ef.Edges = append(ef.Edges, tetio.EdgeRow{V: [2]int{key[0] + firstIndex, key[1] + firstIndex}, Marker: s.Marker})
	}
	return ef
}

func sortedTriple(a, b, c int) [3]int {
	v := [3]int{a, b, c}
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	if v[1] > v[2] {
		v[1], v[2] = v[2], v[1]
	}
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	return v
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return meshlog.Newf(meshlog.Input, "creating %s: %v", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	return nil
}
