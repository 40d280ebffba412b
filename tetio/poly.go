package tetio

import (
	"fmt"
	"io"

	"github.com/sunpia/tetgen/meshlog"
)

// PolyPolygon is one ring of vertex indices within a facet.
type PolyPolygon struct {
	Verts []int
}

// PolyFacet is a polygonal region of a PLC, possibly with interior holes
// (spec.md §6 `.poly`'s per-facet `<#polygons> <#holes> [marker]` block).
type PolyFacet struct {
	Polygons []PolyPolygon
	Holes    [][3]float64
	Marker   int32
}

// PolyRegion is one row of a .poly file's region block: a seed point, a
// region attribute, and a maximum tetrahedron volume (<=0 means
// unbounded).
type PolyRegion struct {
	Point     [3]float64
	Attribute int32
	MaxVolume float64
}

// PolyFile is the in-memory form of a .poly file (spec.md §6): a .node
// section, a facet list, a global hole-point list, and a region list.
type PolyFile struct {
	Node        NodeFile
	HasFacetTag bool
	Facets      []PolyFacet
	Holes       [][3]float64
	Regions     []PolyRegion
}

// ReadPoly parses a .poly file: a .node section (or, if its point count
// is 0, a reference to an external .node file with the same points —
// that indirection is resolved by the caller, not here), followed by
// facets, holes, and regions.
func ReadPoly(r io.Reader) (*PolyFile, error) {
	sc := newLineScanner(r)

	node, err := readNodeSection(sc)
	if err != nil {
		return nil, err
	}
	pf := &PolyFile{Node: *node}

	header, line, ok := sc.next()
	if !ok {
		return pf, nil
	}
	nFacets, err := parseInt(header[0], line)
	if err != nil {
		return nil, err
	}
	hasMarker := false
	if len(header) > 1 {
		m, err := parseInt(header[1], line)
		if err != nil {
			return nil, err
		}
		hasMarker = m != 0
	}
	pf.HasFacetTag = hasMarker

	for i := 0; i < nFacets; i++ {
		fields, line, ok := sc.next()
		if !ok {
			return nil, meshlog.Newf(meshlog.Input, "poly file: expected %d facets, found %d", nFacets, i).AtLine(line)
		}
		if err := requireFields(fields, 1, line, "facet header"); err != nil {
			return nil, err
		}
		nPolys, err := parseInt(fields[0], line)
		if err != nil {
			return nil, err
		}
		nHoles := 0
		if len(fields) > 1 {
			if nHoles, err = parseInt(fields[1], line); err != nil {
				return nil, err
			}
		}
		var facet PolyFacet
		if hasMarker && len(fields) > 2 {
			m, err := parseInt(fields[2], line)
			if err != nil {
				return nil, err
			}
			facet.Marker = int32(m)
		}
		for j := 0; j < nPolys; j++ {
			polyFields, line, ok := sc.next()
			if !ok {
				return nil, meshlog.Newf(meshlog.Input, "poly file: facet %d: expected %d polygons, found %d", i, nPolys, j).AtLine(line)
			}
			if err := requireFields(polyFields, 1, line, "polygon row"); err != nil {
				return nil, err
			}
			nv, err := parseInt(polyFields[0], line)
			if err != nil {
				return nil, err
			}
			if err := requireFields(polyFields, 1+nv, line, "polygon row"); err != nil {
				return nil, err
			}
			verts := make([]int, nv)
			for k := 0; k < nv; k++ {
				if verts[k], err = parseInt(polyFields[1+k], line); err != nil {
					return nil, err
				}
			}
			facet.Polygons = append(facet.Polygons, PolyPolygon{Verts: verts})
		}
		for j := 0; j < nHoles; j++ {
			holeFields, line, ok := sc.next()
			if !ok {
				return nil, meshlog.Newf(meshlog.Input, "poly file: facet %d: expected %d hole points, found %d", i, nHoles, j).AtLine(line)
			}
			if err := requireFields(holeFields, 3, line, "facet hole row"); err != nil {
				return nil, err
			}
			var p [3]float64
			for k := 0; k < 3; k++ {
				if p[k], err = parseFloat(holeFields[k], line); err != nil {
					return nil, err
				}
			}
			facet.Holes = append(facet.Holes, p)
		}
		pf.Facets = append(pf.Facets, facet)
	}

	if header, line, ok := sc.next(); ok {
		nHoles, err := parseInt(header[0], line)
		if err != nil {
			return nil, err
		}
		for i := 0; i < nHoles; i++ {
			fields, line, ok := sc.next()
			if !ok {
				return nil, meshlog.Newf(meshlog.Input, "poly file: expected %d holes, found %d", nHoles, i).AtLine(line)
			}
			if err := requireFields(fields, 4, line, "hole row"); err != nil {
				return nil, err
			}
			var p [3]float64
			for k := 0; k < 3; k++ {
				if p[k], err = parseFloat(fields[1+k], line); err != nil {
					return nil, err
				}
			}
			pf.Holes = append(pf.Holes, p)
		}
	}

	if header, line, ok := sc.next(); ok {
		nRegions, err := parseInt(header[0], line)
		if err != nil {
			return nil, err
		}
		for i := 0; i < nRegions; i++ {
			fields, line, ok := sc.next()
			if !ok {
				return nil, meshlog.Newf(meshlog.Input, "poly file: expected %d regions, found %d", nRegions, i).AtLine(line)
			}
			if err := requireFields(fields, 6, line, "region row"); err != nil {
				return nil, err
			}
			var rg PolyRegion
			for k := 0; k < 3; k++ {
				if rg.Point[k], err = parseFloat(fields[1+k], line); err != nil {
					return nil, err
				}
			}
			attr, err := parseFloat(fields[4], line)
			if err != nil {
				return nil, err
			}
			rg.Attribute = int32(attr)
			if rg.MaxVolume, err = parseFloat(fields[5], line); err != nil {
				return nil, err
			}
			pf.Regions = append(pf.Regions, rg)
		}
	}

	return pf, nil
}

// readNodeSection parses the .node header+rows prefix shared by .poly,
// reusing the same field layout as ReadNode but driven by an
// already-open lineScanner (a .poly file's node section isn't its own
// independent stream).
func readNodeSection(sc *lineScanner) (*NodeFile, error) {
	header, line, ok := sc.next()
	if !ok {
		return &NodeFile{}, nil
	}
	n, err := parseInt(header[0], line)
	if err != nil {
		return nil, err
	}
	dim := 3
	if len(header) > 1 {
		if dim, err = parseInt(header[1], line); err != nil {
			return nil, err
		}
	}
	nAttrs := 0
	if len(header) > 2 {
		if nAttrs, err = parseInt(header[2], line); err != nil {
			return nil, err
		}
	}
	hasMarker := false
	if len(header) > 3 {
		m, err := parseInt(header[3], line)
		if err != nil {
			return nil, err
		}
		hasMarker = m != 0
	}
	nf := &NodeFile{NAttrs: nAttrs, HasMarker: hasMarker, Points: make([]NodePoint, 0, n)}
	for i := 0; i < n; i++ {
		fields, line, ok := sc.next()
		if !ok {
			return nil, meshlog.Newf(meshlog.Input, "poly file: expected %d points, found %d", n, i).AtLine(line)
		}
		want := 1 + dim + nAttrs
		if hasMarker {
			want++
		}
		if err := requireFields(fields, want, line, "node row"); err != nil {
			return nil, err
		}
		idx, err := parseInt(fields[0], line)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			nf.FirstIndex = idx
		}
		var p NodePoint
		if p.X, err = parseFloat(fields[1], line); err != nil {
			return nil, err
		}
		if p.Y, err = parseFloat(fields[2], line); err != nil {
			return nil, err
		}
		if p.Z, err = parseFloat(fields[3], line); err != nil {
			return nil, err
		}
		if nAttrs > 0 {
			p.Attrs = make([]float64, nAttrs)
			for j := 0; j < nAttrs; j++ {
				if p.Attrs[j], err = parseFloat(fields[4+j], line); err != nil {
					return nil, err
				}
			}
		}
		if hasMarker {
			marker, err := parseInt(fields[4+nAttrs], line)
			if err != nil {
				return nil, err
			}
			p.Marker = int32(marker)
		}
		nf.Points = append(nf.Points, p)
	}
	return nf, nil
}

// WritePoly emits pf in .poly format.
func WritePoly(w io.Writer, pf *PolyFile) error {
	if err := WriteNode(w, &pf.Node); err != nil {
		return err
	}

	markerCol := 0
	if pf.HasFacetTag {
		markerCol = 1
	}
	if _, err := fmt.Fprintf(w, "%d %d\n", len(pf.Facets), markerCol); err != nil {
		return err
	}
	for _, f := range pf.Facets {
		if _, err := fmt.Fprintf(w, "%d %d", len(f.Polygons), len(f.Holes)); err != nil {
			return err
		}
		if pf.HasFacetTag {
			if _, err := fmt.Fprintf(w, " %d", f.Marker); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "\n"); err != nil {
			return err
		}
		for _, poly := range f.Polygons {
			if _, err := fmt.Fprintf(w, "%d", len(poly.Verts)); err != nil {
				return err
			}
			for _, v := range poly.Verts {
				if _, err := fmt.Fprintf(w, " %d", v); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprint(w, "\n"); err != nil {
				return err
			}
		}
		for _, h := range f.Holes {
			if _, err := fmt.Fprintf(w, "%s %s %s\n", formatFloat(h[0]), formatFloat(h[1]), formatFloat(h[2])); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "%d\n", len(pf.Holes)); err != nil {
		return err
	}
	for i, h := range pf.Holes {
		if _, err := fmt.Fprintf(w, "%d %s %s %s\n", pf.Node.FirstIndex+i, formatFloat(h[0]), formatFloat(h[1]), formatFloat(h[2])); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%d\n", len(pf.Regions)); err != nil {
		return err
	}
	for i, rg := range pf.Regions {
		if _, err := fmt.Fprintf(w, "%d %s %s %s %d %s\n", pf.Node.FirstIndex+i,
			formatFloat(rg.Point[0]), formatFloat(rg.Point[1]), formatFloat(rg.Point[2]),
			rg.Attribute, formatFloat(rg.MaxVolume)); err != nil {
			return err
		}
	}
	return nil
}
