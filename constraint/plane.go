package constraint

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sunpia/tetgen/vec3"
)

// Plane is a best-fit plane through a set of points: a point on the
// plane (the centroid) and a unit normal.
type Plane struct {
	Origin vec3.Vec
	Normal vec3.Vec
	U, V   vec3.Vec // orthonormal in-plane basis, for 2D projection
}

// FitPlane computes the least-squares best-fit plane through pts via
// gonum's symmetric eigendecomposition of the centered covariance
// matrix: the normal is the eigenvector of the smallest eigenvalue.
// Exactly planar input (the common case for a facet that came from a
// flat polygon in the input file) recovers its exact plane up to
// floating-point rounding; this only earns its keep on facets that
// aren't quite planar to machine precision, which the pure-Orient3D
// predicates have no mandate to handle (spec.md §4.1: the four sign
// tests are exact, but a facet's plane equation is a derived, advisory
// quantity).
func FitPlane(pts []vec3.Vec) (Plane, error) {
	if len(pts) < 3 {
		return Plane{}, errTooFewPoints
	}
	centroid := vec3.Vec{}
	for _, p := range pts {
		centroid = centroid.Add(p)
	}
	centroid = centroid.DivScalar(float64(len(pts)))

	var cxx, cxy, cxz, cyy, cyz, czz float64
	for _, p := range pts {
		d := p.Sub(centroid)
		cxx += d.X * d.X
		cxy += d.X * d.Y
		cxz += d.X * d.Z
		cyy += d.Y * d.Y
		cyz += d.Y * d.Z
		czz += d.Z * d.Z
	}
	cov := mat.NewSymDense(3, []float64{
		cxx, cxy, cxz,
		cxy, cyy, cyz,
		cxz, cyz, czz,
	})

	var eig mat.EigenSym
	if ok := eig.Factorize(cov, true); !ok {
		return Plane{}, errEigenFailed
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	minIdx := 0
	for i := 1; i < 3; i++ {
		if values[i] < values[minIdx] {
			minIdx = i
		}
	}
	normal := vec3.Vec{
		X: vectors.At(0, minIdx),
		Y: vectors.At(1, minIdx),
		Z: vectors.At(2, minIdx),
	}.Normalize()

	u := arbitraryPerpendicular(normal).Normalize()
	v := normal.Cross(u).Normalize()
	return Plane{Origin: centroid, Normal: normal, U: u, V: v}, nil
}

func arbitraryPerpendicular(n vec3.Vec) vec3.Vec {
	if math.Abs(n.X) <= math.Abs(n.Y) && math.Abs(n.X) <= math.Abs(n.Z) {
		return vec3.Vec{X: 1}.Cross(n)
	}
	if math.Abs(n.Y) <= math.Abs(n.Z) {
		return vec3.Vec{Y: 1}.Cross(n)
	}
	return vec3.Vec{Z: 1}.Cross(n)
}

// Project2D returns the coordinates of p in the plane's (U,V) basis,
// relative to Origin.
func (pl Plane) Project2D(p vec3.Vec) (u, v float64) {
	d := p.Sub(pl.Origin)
	return d.Dot(pl.U), d.Dot(pl.V)
}

type planeError string

func (e planeError) Error() string { return string(e) }

const (
	errTooFewPoints planeError = "constraint: need at least 3 points to fit a plane"
	errEigenFailed  planeError = "constraint: eigendecomposition of facet covariance failed"
)
