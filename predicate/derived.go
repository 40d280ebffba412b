package predicate

import "math"

// ErrDegenerate is returned by Circumcenter when the four input points are
// nearly coplanar (spec.md §4.1 failure condition).
var ErrDegenerate = degenerateError{}

type degenerateError struct{}

func (degenerateError) Error() string { return "predicate: nearly coplanar points, circumcenter undefined" }

// coplanarRelTol bounds how small |orient3d| may be, relative to the
// tetrahedron's characteristic size, before Circumcenter refuses to
// compute a result. Unlike the four sign-exact tests in predicate.go, the
// derived helpers use plain double arithmetic per spec.md §4.1 ("Derived
// helpers ... may use plain double arithmetic; only the four sign tests
// must be exact"), so this is a scale-relative floating-point safety
// check, not another exact predicate.
const coplanarRelTol = 1e-12

// Volume returns the signed volume of tetrahedron (a,b,c,d): positive
// when Orient3D(a,b,c,d) is positive.
func Volume(a, b, c, d Point3) float64 {
	adx, ady, adz := a.X-d.X, a.Y-d.Y, a.Z-d.Z
	bdx, bdy, bdz := b.X-d.X, b.Y-d.Y, b.Z-d.Z
	cdx, cdy, cdz := c.X-d.X, c.Y-d.Y, c.Z-d.Z
	det := adx*(bdy*cdz-bdz*cdy) + bdx*(cdy*adz-cdz*ady) + cdx*(ady*bdz-adz*bdy)
	return det / 6.0
}

// Circumcenter returns the center of the sphere through a,b,c,d, and
// ErrDegenerate if the four points are nearly coplanar.
func Circumcenter(a, b, c, d Point3) (Point3, error) {
	vol := Volume(a, b, c, d)
	scale := characteristicLength(a, b, c, d)
	if scale == 0 {
		return Point3{}, ErrDegenerate
	}
	if math.Abs(vol) < coplanarRelTol*scale*scale*scale {
		return Point3{}, ErrDegenerate
	}

	// Solve for the point equidistant from a,b,c,d via the classic
	// linear system built from pairwise squared-distance differences.
	ax, ay, az := a.X-d.X, a.Y-d.Y, a.Z-d.Z
	bx, by, bz := b.X-d.X, b.Y-d.Y, b.Z-d.Z
	cx, cy, cz := c.X-d.X, c.Y-d.Y, c.Z-d.Z

	al := ax*ax + ay*ay + az*az
	bl := bx*bx + by*by + bz*bz
	cl := cx*cx + cy*cy + cz*cz

	// Cramer's rule on the 3x3 system [a;b;c] * x = 0.5*[al;bl;cl].
	det := ax*(by*cz-bz*cy) - ay*(bx*cz-bz*cx) + az*(bx*cy-by*cx)
	if det == 0 {
		return Point3{}, ErrDegenerate
	}

	rhs0, rhs1, rhs2 := 0.5*al, 0.5*bl, 0.5*cl

	x := (rhs0*(by*cz-bz*cy) - ay*(rhs1*cz-bz*rhs2) + az*(rhs1*cy-by*rhs2)) / det
	y := (ax*(rhs1*cz-bz*rhs2) - rhs0*(bx*cz-bz*cx) + az*(bx*rhs2-rhs1*cx)) / det
	z := (ax*(by*rhs2-rhs1*cy) - ay*(bx*rhs2-rhs1*cx) + rhs0*(bx*cy-by*cx)) / det

	return Point3{X: x + d.X, Y: y + d.Y, Z: z + d.Z}, nil
}

func characteristicLength(a, b, c, d Point3) float64 {
	edge := func(p, q Point3) float64 {
		dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
		return math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	m := edge(a, b)
	m = math.Max(m, edge(a, c))
	m = math.Max(m, edge(a, d))
	m = math.Max(m, edge(b, c))
	m = math.Max(m, edge(b, d))
	m = math.Max(m, edge(c, d))
	return m
}

// CircumRadius returns the radius of the sphere through a,b,c,d, or
// +Inf via ErrDegenerate handling at the caller (see AspectRatio, which
// treats a degenerate tet as infinitely bad quality).
func CircumRadius(a, b, c, d Point3) (float64, error) {
	center, err := Circumcenter(a, b, c, d)
	if err != nil {
		return 0, err
	}
	dx, dy, dz := center.X-a.X, center.Y-a.Y, center.Z-a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz), nil
}

// ShortestEdge returns the length of the shortest of the six edges of
// tetrahedron (a,b,c,d).
func ShortestEdge(a, b, c, d Point3) float64 {
	edge := func(p, q Point3) float64 {
		dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
		return math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	m := edge(a, b)
	m = math.Min(m, edge(a, c))
	m = math.Min(m, edge(a, d))
	m = math.Min(m, edge(b, c))
	m = math.Min(m, edge(b, d))
	m = math.Min(m, edge(c, d))
	return m
}

// AspectRatio returns the radius-edge ratio (circumradius / shortest
// edge) used by the quality refiner's radius-edge bound (spec.md §4.6).
// A degenerate (near-coplanar) tet is reported as having infinite ratio,
// so it is always judged "bad" by a quality check.
func AspectRatio(a, b, c, d Point3) float64 {
	r, err := CircumRadius(a, b, c, d)
	if err != nil {
		return math.Inf(1)
	}
	e := ShortestEdge(a, b, c, d)
	if e == 0 {
		return math.Inf(1)
	}
	return r / e
}

// TriangleCircumcenter returns the center and radius of the circle
// through a,b,c that lies in their common plane (the subface diametral
// sphere of spec.md §4.6 is centered here, with this radius), and
// ErrDegenerate if the three points are nearly collinear. Solved by
// writing the center as a + x*u + y*v (u=b-a, v=c-a) and requiring equal
// distance to all three vertices, which reduces to a 2x2 linear system
// in x,y whose determinant is |u x v|^2 (Lagrange's identity).
func TriangleCircumcenter(a, b, c Point3) (Point3, float64, error) {
	u := Point3{b.X - a.X, b.Y - a.Y, b.Z - a.Z}
	v := Point3{c.X - a.X, c.Y - a.Y, c.Z - a.Z}
	uu, vv, uv := dot(u, u), dot(v, v), dot(u, v)
	det := uu*vv - uv*uv

	scale := characteristicLength(a, b, c, c)
	if det < coplanarRelTol*scale*scale*scale*scale {
		return Point3{}, 0, ErrDegenerate
	}

	x := vv * (uu - uv) / (2 * det)
	y := uu * (vv - uv) / (2 * det)
	offset := Point3{x*u.X + y*v.X, x*u.Y + y*v.Y, x*u.Z + y*v.Z}

	center := Point3{a.X + offset.X, a.Y + offset.Y, a.Z + offset.Z}
	radius := math.Sqrt(dot(offset, offset))
	return center, radius, nil
}

// DihedralAngle returns the dihedral angle, in radians, of tetrahedron
// (a,b,c,d) along the edge shared by the faces opposite c and opposite d
// (i.e. the edge a-b).
func DihedralAngle(a, b, c, d Point3) float64 {
	// ab x ac and ab x ad are the components of ac and ad perpendicular to
	// the shared edge a-b, each rotated by the same quarter turn about it.
	ab := Point3{b.X - a.X, b.Y - a.Y, b.Z - a.Z}
	ac := Point3{c.X - a.X, c.Y - a.Y, c.Z - a.Z}
	ad := Point3{d.X - a.X, d.Y - a.Y, d.Z - a.Z}

	n1 := cross(ab, ac)
	n2 := cross(ab, ad)

	cosTheta := dot(n1, n2) / (norm(n1) * norm(n2))
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	// The angle between them is therefore the dihedral angle itself.
	return math.Acos(cosTheta)
}

func cross(u, v Point3) Point3 {
	return Point3{
		X: u.Y*v.Z - u.Z*v.Y,
		Y: u.Z*v.X - u.X*v.Z,
		Z: u.X*v.Y - u.Y*v.X,
	}
}

func dot(u, v Point3) float64 { return u.X*v.X + u.Y*v.Y + u.Z*v.Z }
func norm(u Point3) float64   { return math.Sqrt(dot(u, u)) }
