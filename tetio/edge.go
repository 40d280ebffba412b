package tetio

import (
	"fmt"
	"io"

	"github.com/sunpia/tetgen/meshlog"
)

// EdgeRow is one segment of a .edge file.
type EdgeRow struct {
	V      [2]int
	Marker int32
}

// EdgeFile is the in-memory form of a .edge file (spec.md §6): header
// `<#edges> <#markers>`, rows `<idx> v1 v2 [marker]`.
type EdgeFile struct {
	FirstIndex int
	HasMarker  bool
	Edges      []EdgeRow
}

func ReadEdge(r io.Reader, firstIndex int) (*EdgeFile, error) {
	sc := newLineScanner(r)
	header, line, ok := sc.next()
	if !ok {
		return &EdgeFile{}, nil
	}
	n, err := parseInt(header[0], line)
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

	ef := &EdgeFile{FirstIndex: firstIndex, HasMarker: hasMarker, Edges: make([]EdgeRow, 0, n)}
	for i := 0; i < n; i++ {
		fields, line, ok := sc.next()
		if !ok {
			return nil, meshlog.Newf(meshlog.Input, "edge file: expected %d edges, found %d", n, i).AtLine(line)
		}
		want := 3
		if hasMarker {
			want = 4
		}
		if err := requireFields(fields, want, line, "edge row"); err != nil {
			return nil, err
		}
		if i == 0 {
			if idx, err := parseInt(fields[0], line); err == nil {
				ef.FirstIndex = idx
			}
		}
		var row EdgeRow
		for j := 0; j < 2; j++ {
			if row.V[j], err = parseInt(fields[1+j], line); err != nil {
				return nil, err
			}
		}
		if hasMarker {
			m, err := parseInt(fields[3], line)
			if err != nil {
				return nil, err
			}
			row.Marker = int32(m)
		}
		ef.Edges = append(ef.Edges, row)
	}
	return ef, nil
}

func WriteEdge(w io.Writer, ef *EdgeFile) error {
	markerCol := 0
	if ef.HasMarker {
		markerCol = 1
	}
	if _, err := fmt.Fprintf(w, "%d %d\n", len(ef.Edges), markerCol); err != nil {
		return err
	}
	for i, row := range ef.Edges {
		if _, err := fmt.Fprintf(w, "%d %d %d", ef.FirstIndex+i, row.V[0], row.V[1]); err != nil {
			return err
		}
		if ef.HasMarker {
			if _, err := fmt.Fprintf(w, " %d", row.Marker); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
