// Package behavior parses and prints the switch-string grammar of
// spec.md §6: a compact, TetGen-style run configuration such as
// "pq1.414a0.1AzS200" that drives which passes cmd/tetmesh runs and how.
package behavior

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sunpia/tetgen/meshlog"
)

// Behavior mirrors original_source/python/tetgen/tetgen_behavior.py's
// TetGenBehavior one-for-one, trimmed to the switches spec.md §6 actually
// names. Zero value is NOT a valid default; use Default().
type Behavior struct {
	PLC          bool // p: tetrahedralize a piecewise linear complex
	Refine       bool // r: refine a previously generated mesh
	Quality      bool // q: enforce radius-edge quality bound
	MinRatio     float64
	VarVolume    bool // a: apply a volume constraint
	MaxVolume    float64
	RegionAttrib bool // A: propagate region attributes
	Conforming   bool // D: conforming Delaunay
	Convex       bool // c: convex hull only, ignore facets as boundary
	FacesOut     bool // f: emit .face
	EdgesOut     bool // e: emit .edge
	VoroOut      bool // v: emit Voronoi (see SPEC_FULL.md SUPPLEMENTED FEATURES)
	ZeroIndex    bool // z: zero-based indexing
	Order        int  // o2: quadratic elements (1 or 2)
	NoBisect     bool // Y: suppress boundary segment/subface splitting
	Steiner      int  // S<n>: Steiner point cap, -1 = unbounded
	Epsilon      float64
	Quiet        bool // Q
	Verbose      bool // V
	Check        bool // C: self-check recovered mesh
}

// Default returns the settings TetGen uses absent any switch, grounded on
// tetgen_behavior.py's __init__ defaults.
func Default() Behavior {
	return Behavior{
		MinRatio: 2.0,
		MaxVolume: -1,
		Order:    1,
		Steiner:  -1,
		Epsilon:  1e-8,
	}
}

// Parse reads a switch string into a Behavior, starting from Default().
// Unknown letters and malformed numeric suffixes are reported as
// meshlog.Input errors (spec.md §7); a well-formed string always
// round-trips through String (P8).
func Parse(switches string) (Behavior, error) {
	b := Default()
	i := 0
	for i < len(switches) {
		c := switches[i]
		i++
		switch c {
		case 'p':
			b.PLC = true
		case 'r':
			b.Refine = true
		case 'q':
			b.Quality = true
			if n, next, ok := scanFloat(switches, i); ok {
				b.MinRatio = n
				i = next
			}
		case 'a':
			b.VarVolume = true
			if n, next, ok := scanFloat(switches, i); ok {
				b.MaxVolume = n
				i = next
			}
		case 'A':
			b.RegionAttrib = true
		case 'D':
			b.Conforming = true
		case 'c':
			b.Convex = true
		case 'f':
			b.FacesOut = true
		case 'e':
			b.EdgesOut = true
		case 'v':
			b.VoroOut = true
		case 'z':
			b.ZeroIndex = true
		case 'o':
			n, next, ok := scanInt(switches, i)
			if !ok || (n != 1 && n != 2) {
				return Behavior{}, meshlog.Newf(meshlog.Input, "behavior: 'o' must be followed by 1 or 2 at offset %d", i-1)
			}
			b.Order = n
			i = next
		case 'Y':
			// Per SPEC_FULL.md's Open-Question resolution, Y takes no
			// numeric argument; a trailing digit is a parse error rather
			// than silently absorbed, so the grammar round-trips exactly.
			if i < len(switches) && isDigit(switches[i]) {
				return Behavior{}, meshlog.Newf(meshlog.Input, "behavior: 'Y' takes no numeric suffix, found one at offset %d", i)
			}
			b.NoBisect = true
		case 'S':
			n, next, ok := scanInt(switches, i)
			if !ok {
				return Behavior{}, meshlog.Newf(meshlog.Input, "behavior: 'S' requires an integer Steiner cap at offset %d", i-1)
			}
			b.Steiner = n
			i = next
		case 'T':
			n, next, ok := scanFloat(switches, i)
			if !ok {
				return Behavior{}, meshlog.Newf(meshlog.Input, "behavior: 'T' requires a coplanarity tolerance at offset %d", i-1)
			}
			b.Epsilon = n
			i = next
		case 'Q':
			b.Quiet = true
		case 'V':
			b.Verbose = true
		case 'C':
			b.Check = true
		default:
			return Behavior{}, meshlog.Newf(meshlog.Input, "behavior: unrecognized switch %q at offset %d", c, i-1)
		}
	}
	return b, nil
}

// String renders b back into a switch string in a fixed canonical order.
// Re-parsing it always reproduces b (P8); the canonical order need not
// match whatever order the original string used.
func (b Behavior) String() string {
	var sb strings.Builder
	d := Default()
	if b.PLC {
		sb.WriteByte('p')
	}
	if b.Refine {
		sb.WriteByte('r')
	}
	if b.Quality {
		sb.WriteByte('q')
		if b.MinRatio != d.MinRatio {
			sb.WriteString(formatFloat(b.MinRatio))
		}
	}
	if b.VarVolume {
		sb.WriteByte('a')
		if b.MaxVolume != d.MaxVolume {
			sb.WriteString(formatFloat(b.MaxVolume))
		}
	}
	if b.RegionAttrib {
		sb.WriteByte('A')
	}
	if b.Conforming {
		sb.WriteByte('D')
	}
	if b.Convex {
		sb.WriteByte('c')
	}
	if b.FacesOut {
		sb.WriteByte('f')
	}
	if b.EdgesOut {
		sb.WriteByte('e')
	}
	if b.VoroOut {
		sb.WriteByte('v')
	}
	if b.ZeroIndex {
		sb.WriteByte('z')
	}
	if b.Order != d.Order {
		fmt.Fprintf(&sb, "o%d", b.Order)
	}
	if b.NoBisect {
		sb.WriteByte('Y')
	}
	if b.Steiner != d.Steiner {
		fmt.Fprintf(&sb, "S%d", b.Steiner)
	}
	if b.Epsilon != d.Epsilon {
		sb.WriteByte('T')
		sb.WriteString(formatFloat(b.Epsilon))
	}
	if b.Quiet {
		sb.WriteByte('Q')
	}
	if b.Verbose {
		sb.WriteByte('V')
	}
	if b.Check {
		sb.WriteByte('C')
	}
	return sb.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanInt scans a run of decimal digits starting at i, returning the
// parsed value, the index past it, and whether anything was scanned.
func scanInt(s string, i int) (int, int, bool) {
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == i {
		return 0, i, false
	}
	n, err := strconv.Atoi(s[i:j])
	if err != nil {
		return 0, i, false
	}
	return n, j, true
}

// scanFloat scans an optional numeric suffix: digits, at most one '.',
// and an optional exponent ('e'/'E' + optional sign + digits) — enough to
// round-trip values like the default coplanarity tolerance 1e-08.
func scanFloat(s string, i int) (float64, int, bool) {
	j := i
	sawDot := false
	for j < len(s) {
		if isDigit(s[j]) {
			j++
			continue
		}
		if s[j] == '.' && !sawDot {
			sawDot = true
			j++
			continue
		}
		break
	}
	if j == i {
		return 0, i, false
	}
	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		start := k
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > start {
			j = k
		}
	}
	n, err := strconv.ParseFloat(s[i:j], 64)
	if err != nil {
		return 0, i, false
	}
	return n, j, true
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
