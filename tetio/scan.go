// Package tetio implements spec.md §6's five textual mesh formats:
// .node, .poly, .ele, .face, .edge. Readers and writers are adapted from
// the teacher's dedup-buffer mesh type (render/tet4.go's MeshTet4) and
// its channel-fed streaming writer idiom (render/fewrite.go,
// render/vertex.go) — generalized from a write-only FEA export into a
// bidirectional textual codec for this engine's own mesh arenas.
package tetio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/sunpia/tetgen/meshlog"
)

// lineScanner yields non-blank, non-comment lines (leading '#'), the
// established .node/.poly/.ele/.face/.edge convention (original_source's
// tetgen_io.py load_node/load_poly skip exactly these).
type lineScanner struct {
	sc   *bufio.Scanner
	line int
}

func newLineScanner(r io.Reader) *lineScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineScanner{sc: sc}
}

// next returns the next significant line's fields and its 1-based source
// line number, or ok=false at EOF.
func (s *lineScanner) next() (fields []string, lineNo int, ok bool) {
	for s.sc.Scan() {
		s.line++
		text := s.sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields = strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		return fields, s.line, true
	}
	return nil, s.line, false
}

func parseInt(s string, line int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, meshlog.Newf(meshlog.Input, "expected integer, got %q", s).AtLine(line)
	}
	return n, nil
}

func parseFloat(s string, line int) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, meshlog.Newf(meshlog.Input, "expected number, got %q", s).AtLine(line)
	}
	return f, nil
}

func requireFields(fields []string, n int, line int, what string) error {
	if len(fields) < n {
		return meshlog.Newf(meshlog.Input, "%s: expected at least %d fields, got %d", what, n, len(fields)).AtLine(line)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 16, 64)
}
