package tetio

import (
	"fmt"
	"io"

	"github.com/sunpia/tetgen/meshlog"
)

// NodePoint is one row of a .node file: coordinates plus whatever
// per-point attributes and a boundary marker the header declared.
type NodePoint struct {
	X, Y, Z float64
	Attrs   []float64
	Marker  int32
}

// NodeFile is the in-memory form of a .node file (spec.md §6): header
// counts plus data rows. FirstIndex is 0 or 1, taken from the first data
// row's own index column, following established .node convention.
type NodeFile struct {
	FirstIndex int
	NAttrs     int
	HasMarker  bool
	Points     []NodePoint
}

// ReadNode parses a .node file per spec.md §6's header/row grammar:
// header `<#points> <dim> <#attrs> <#markers∈{0,1}>`, rows
// `<index> x y z [attr…] [marker]`.
func ReadNode(r io.Reader) (*NodeFile, error) {
	sc := newLineScanner(r)
	header, line, ok := sc.next()
	if !ok {
		return &NodeFile{}, nil
	}
	if err := requireFields(header, 1, line, "node header"); err != nil {
		return nil, err
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
	if dim != 3 {
		return nil, meshlog.Newf(meshlog.Input, "node file: unsupported dimension %d (only 3 is supported)", dim).AtLine(line)
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
			return nil, meshlog.Newf(meshlog.Input, "node file: expected %d points, found %d", n, i).AtLine(line)
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

// WriteNode emits nf in .node format, first-index starting at
// nf.FirstIndex (0 for the `z` switch, 1 otherwise).
func WriteNode(w io.Writer, nf *NodeFile) error {
	markerCol := 0
	if nf.HasMarker {
		markerCol = 1
	}
	if _, err := fmt.Fprintf(w, "%d 3 %d %d\n", len(nf.Points), nf.NAttrs, markerCol); err != nil {
		return err
	}
	for i, p := range nf.Points {
		if _, err := fmt.Fprintf(w, "%d %s %s %s", nf.FirstIndex+i, formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z)); err != nil {
			return err
		}
		for _, a := range p.Attrs {
			if _, err := fmt.Fprintf(w, " %s", formatFloat(a)); err != nil {
				return err
			}
		}
		if nf.HasMarker {
			if _, err := fmt.Fprintf(w, " %d", p.Marker); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
