package tetio

import (
	"fmt"
	"io"

	"github.com/sunpia/tetgen/meshlog"
)

// EleRow is one tetrahedron of a .ele file: 4 corners, or 10 under the
// `o2` quadratic-element switch (the extra 6 are mid-edge nodes).
type EleRow struct {
	Verts [10]int
	Attrs []float64
}

// EleFile is the in-memory form of a .ele file (spec.md §6): header
// `<#tets> <#corners∈{4,10}> <#attrs>`, rows `<idx> v1..v4[..v10] [attrs]`.
type EleFile struct {
	FirstIndex int
	Corners    int
	NAttrs     int
	Tets       []EleRow
}

func ReadEle(r io.Reader, firstIndex int) (*EleFile, error) {
	sc := newLineScanner(r)
	header, line, ok := sc.next()
	if !ok {
		return &EleFile{Corners: 4}, nil
	}
	if err := requireFields(header, 1, line, "ele header"); err != nil {
		return nil, err
	}
	n, err := parseInt(header[0], line)
	if err != nil {
		return nil, err
	}
	corners := 4
	if len(header) > 1 {
		if corners, err = parseInt(header[1], line); err != nil {
			return nil, err
		}
	}
	if corners != 4 && corners != 10 {
		return nil, meshlog.Newf(meshlog.Input, "ele file: unsupported corner count %d (want 4 or 10)", corners).AtLine(line)
	}
	nAttrs := 0
	if len(header) > 2 {
		if nAttrs, err = parseInt(header[2], line); err != nil {
			return nil, err
		}
	}

	ef := &EleFile{FirstIndex: firstIndex, Corners: corners, NAttrs: nAttrs, Tets: make([]EleRow, 0, n)}
	for i := 0; i < n; i++ {
		fields, line, ok := sc.next()
		if !ok {
			return nil, meshlog.Newf(meshlog.Input, "ele file: expected %d tets, found %d", n, i).AtLine(line)
		}
		if err := requireFields(fields, 1+corners+nAttrs, line, "ele row"); err != nil {
			return nil, err
		}
		if i == 0 {
			if idx, err := parseInt(fields[0], line); err == nil {
				ef.FirstIndex = idx
			}
		}
		var row EleRow
		for j := 0; j < corners; j++ {
			v, err := parseInt(fields[1+j], line)
			if err != nil {
				return nil, err
			}
			row.Verts[j] = v
		}
		if nAttrs > 0 {
			row.Attrs = make([]float64, nAttrs)
			for j := 0; j < nAttrs; j++ {
				if row.Attrs[j], err = parseFloat(fields[1+corners+j], line); err != nil {
					return nil, err
				}
			}
		}
		ef.Tets = append(ef.Tets, row)
	}
	return ef, nil
}

func WriteEle(w io.Writer, ef *EleFile) error {
	if _, err := fmt.Fprintf(w, "%d %d %d\n", len(ef.Tets), ef.Corners, ef.NAttrs); err != nil {
		return err
	}
	for i, row := range ef.Tets {
		if _, err := fmt.Fprintf(w, "%d", ef.FirstIndex+i); err != nil {
			return err
		}
		for j := 0; j < ef.Corners; j++ {
			if _, err := fmt.Fprintf(w, " %d", row.Verts[j]); err != nil {
				return err
			}
		}
		for _, a := range row.Attrs {
			if _, err := fmt.Fprintf(w, " %s", formatFloat(a)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
