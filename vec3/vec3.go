// Package vec3 provides 3D vector arithmetic used throughout the mesh
// construction pipeline: vertex coordinates, face normals, and the
// axis-aligned bounding boxes used for point location and carving.
package vec3

import "math"

// Vec is a point or direction in 3D space.
type Vec struct {
	X, Y, Z float64
}

// Add returns v + u.
func (v Vec) Add(u Vec) Vec {
	return Vec{v.X + u.X, v.Y + u.Y, v.Z + u.Z}
}

// Sub returns v - u.
func (v Vec) Sub(u Vec) Vec {
	return Vec{v.X - u.X, v.Y - u.Y, v.Z - u.Z}
}

// Scale returns v * k.
func (v Vec) Scale(k float64) Vec {
	return Vec{v.X * k, v.Y * k, v.Z * k}
}

// DivScalar returns v / k.
func (v Vec) DivScalar(k float64) Vec {
	return Vec{v.X / k, v.Y / k, v.Z / k}
}

// AddScalar returns v with k added to every component.
func (v Vec) AddScalar(k float64) Vec {
	return Vec{v.X + k, v.Y + k, v.Z + k}
}

// MulScalar returns v with every component scaled by k.
func (v Vec) MulScalar(k float64) Vec {
	return v.Scale(k)
}

// Dot returns the dot product of v and u.
func (v Vec) Dot(u Vec) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the cross product v x u.
func (v Vec) Cross(u Vec) Vec {
	return Vec{
		v.Y*u.Z - v.Z*u.Y,
		v.Z*u.X - v.X*u.Z,
		v.X*u.Y - v.Y*u.X,
	}
}

// Length returns the Euclidean norm of v.
func (v Vec) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Length2 returns the squared Euclidean norm of v (avoids the sqrt).
func (v Vec) Length2() float64 {
	return v.Dot(v)
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec) Normalize() Vec {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Midpoint returns the point halfway between v and u.
func (v Vec) Midpoint(u Vec) Vec {
	return v.Add(u).Scale(0.5)
}

// MaxComponent returns the largest of X, Y, Z.
func (v Vec) MaxComponent() float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// MinComponent returns the smallest of X, Y, Z.
func (v Vec) MinComponent() float64 {
	return math.Min(v.X, math.Min(v.Y, v.Z))
}

// Ceil rounds every component up.
func (v Vec) Ceil() Vec {
	return Vec{math.Ceil(v.X), math.Ceil(v.Y), math.Ceil(v.Z)}
}

// Abs returns the component-wise absolute value.
func (v Vec) Abs() Vec {
	return Vec{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

// Equal reports whether v and u are identical in every component.
func (v Vec) Equal(u Vec) bool {
	return v.X == u.X && v.Y == u.Y && v.Z == u.Z
}

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min, Max Vec
}

// NewBox3 returns the box of the given size centered at center.
func NewBox3(center, size Vec) Box3 {
	half := size.Scale(0.5)
	return Box3{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the box center.
func (b Box3) Center() Vec {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent along each axis.
func (b Box3) Size() Vec {
	return b.Max.Sub(b.Min)
}

// Extend grows the box, if needed, to include p.
func (b Box3) Extend(p Vec) Box3 {
	return Box3{
		Min: Vec{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)},
		Max: Vec{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)},
	}
}

// Contains reports whether p lies within the box (inclusive).
func (b Box3) Contains(p Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// EmptyBox3 returns a degenerate box suitable as the seed for a sequence
// of Extend calls.
func EmptyBox3() Box3 {
	inf := math.Inf(1)
	return Box3{Min: Vec{inf, inf, inf}, Max: Vec{-inf, -inf, -inf}}
}
