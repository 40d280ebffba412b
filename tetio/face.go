package tetio

import (
	"fmt"
	"io"

	"github.com/sunpia/tetgen/meshlog"
)

// FaceRow is one triangle of a .face file.
type FaceRow struct {
	V      [3]int
	Marker int32
}

// FaceFile is the in-memory form of a .face file (spec.md §6): header
// `<#faces> <#markers∈{0,1}>`, rows `<idx> v1 v2 v3 [marker]`.
type FaceFile struct {
	FirstIndex int
	HasMarker  bool
	Faces      []FaceRow
}

func ReadFace(r io.Reader, firstIndex int) (*FaceFile, error) {
	sc := newLineScanner(r)
	header, line, ok := sc.next()
	if !ok {
		return &FaceFile{}, nil
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

	ff := &FaceFile{FirstIndex: firstIndex, HasMarker: hasMarker, Faces: make([]FaceRow, 0, n)}
	for i := 0; i < n; i++ {
		fields, line, ok := sc.next()
		if !ok {
			return nil, meshlog.Newf(meshlog.Input, "face file: expected %d faces, found %d", n, i).AtLine(line)
		}
		want := 4
		if hasMarker {
			want = 5
		}
		if err := requireFields(fields, want, line, "face row"); err != nil {
			return nil, err
		}
		if i == 0 {
			if idx, err := parseInt(fields[0], line); err == nil {
				ff.FirstIndex = idx
			}
		}
		var row FaceRow
		for j := 0; j < 3; j++ {
			if row.V[j], err = parseInt(fields[1+j], line); err != nil {
				return nil, err
			}
		}
		if hasMarker {
			m, err := parseInt(fields[4], line)
			if err != nil {
				return nil, err
			}
			row.Marker = int32(m)
		}
		ff.Faces = append(ff.Faces, row)
	}
	return ff, nil
}

func WriteFace(w io.Writer, ff *FaceFile) error {
	markerCol := 0
	if ff.HasMarker {
		markerCol = 1
	}
	if _, err := fmt.Fprintf(w, "%d %d\n", len(ff.Faces), markerCol); err != nil {
		return err
	}
	for i, row := range ff.Faces {
		if _, err := fmt.Fprintf(w, "%d %d %d %d", ff.FirstIndex+i, row.V[0], row.V[1], row.V[2]); err != nil {
			return err
		}
		if ff.HasMarker {
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
