package predicate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunpia/tetgen/predicate"
)

func TestOrient2D(t *testing.T) {
	ccw := predicate.Point2{X: 0, Y: 0}
	b := predicate.Point2{X: 1, Y: 0}
	c := predicate.Point2{X: 0, Y: 1}
	assert.Equal(t, predicate.Positive, predicate.Orient2D(ccw, b, c))
	assert.Equal(t, predicate.Negative, predicate.Orient2D(b, ccw, c))
	collinear := predicate.Point2{X: 2, Y: 0}
	assert.Equal(t, predicate.Zero, predicate.Orient2D(ccw, b, collinear))
}

func TestOrient3D(t *testing.T) {
	a := predicate.Point3{X: 0, Y: 0, Z: 0}
	b := predicate.Point3{X: 1, Y: 0, Z: 0}
	c := predicate.Point3{X: 0, Y: 1, Z: 0}
	d := predicate.Point3{X: 0, Y: 0, Z: 1}
	// d lies above the plane of a,b,c (counterclockwise seen from above).
	assert.Equal(t, predicate.Negative, predicate.Orient3D(a, b, c, d))
	assert.Equal(t, predicate.Positive, predicate.Orient3D(a, c, b, d))

	coplanar := predicate.Point3{X: 1, Y: 1, Z: 0}
	assert.Equal(t, predicate.Zero, predicate.Orient3D(a, b, c, coplanar))
}

func TestOrient3DNearlyCoplanarEscalates(t *testing.T) {
	// Perturb the fourth point by an amount far below double precision's
	// reliable threshold; the fast filter should be unable to decide and
	// the exact escalation path must still return a definite sign (d is
	// above the plane, so Negative).
	a := predicate.Point3{X: 0, Y: 0, Z: 0}
	b := predicate.Point3{X: 1, Y: 0, Z: 0}
	c := predicate.Point3{X: 0, Y: 1, Z: 0}
	d := predicate.Point3{X: 1.0 / 3.0, Y: 1.0 / 3.0, Z: 1e-300}
	got := predicate.Orient3D(a, b, c, d)
	assert.Equal(t, predicate.Negative, got)
}

func TestInSphere(t *testing.T) {
	a := predicate.Point3{X: 0, Y: 0, Z: 0}
	b := predicate.Point3{X: 1, Y: 0, Z: 0}
	c := predicate.Point3{X: 0, Y: 1, Z: 0}
	d := predicate.Point3{X: 0, Y: 0, Z: 1}

	center := predicate.Point3{X: 0.25, Y: 0.25, Z: 0.25}
	outside := predicate.Point3{X: 10, Y: 10, Z: 10}

	// (a,c,b,d) is the positively oriented order InSphere assumes.
	assert.Equal(t, predicate.Positive, predicate.InSphere(a, c, b, d, center))
	assert.Equal(t, predicate.Negative, predicate.InSphere(a, c, b, d, outside))
}

func TestInCircle(t *testing.T) {
	a := predicate.Point2{X: 0, Y: 0}
	b := predicate.Point2{X: 1, Y: 0}
	c := predicate.Point2{X: 0, Y: 1}
	inside := predicate.Point2{X: 0.25, Y: 0.25}
	outside := predicate.Point2{X: 10, Y: 10}
	assert.Equal(t, predicate.Positive, predicate.InCircle(a, b, c, inside))
	assert.Equal(t, predicate.Negative, predicate.InCircle(a, b, c, outside))
}

func TestVolumeUnitTet(t *testing.T) {
	a := predicate.Point3{X: 0, Y: 0, Z: 0}
	b := predicate.Point3{X: 1, Y: 0, Z: 0}
	c := predicate.Point3{X: 0, Y: 1, Z: 0}
	d := predicate.Point3{X: 0, Y: 0, Z: 1}
	// Same sign as Orient3D(a,b,c,d), which is Negative here.
	assert.InDelta(t, -1.0/6.0, predicate.Volume(a, b, c, d), 1e-15)
}

func TestCircumcenter(t *testing.T) {
	a := predicate.Point3{X: 1, Y: 0, Z: 0}
	b := predicate.Point3{X: -1, Y: 0, Z: 0}
	c := predicate.Point3{X: 0, Y: 1, Z: 0}
	d := predicate.Point3{X: 0, Y: -1, Z: 0}
	_, err := predicate.Circumcenter(a, b, c, d)
	require.ErrorIs(t, err, predicate.ErrDegenerate)

	e := predicate.Point3{X: 0, Y: 0, Z: 1}
	center, err := predicate.Circumcenter(a, b, c, e)
	require.NoError(t, err)
	assert.InDelta(t, 0, center.X, 1e-9)
}

func TestAspectRatioDegenerateIsInfinite(t *testing.T) {
	a := predicate.Point3{X: 0, Y: 0, Z: 0}
	b := predicate.Point3{X: 1, Y: 0, Z: 0}
	c := predicate.Point3{X: 2, Y: 0, Z: 0}
	d := predicate.Point3{X: 3, Y: 0, Z: 0}
	assert.True(t, predicate.AspectRatio(a, b, c, d) > 1e300)
}
