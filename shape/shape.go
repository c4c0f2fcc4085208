// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape is the tagged union of collision geometries a body can
// carry: an infinite plane, a sphere, or a convex polyhedron.
package shape

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ingot3d/strata/convex"
)

// Kind identifies which variant of Shape is populated.
type Kind int

const (
	// KindPlane is an infinite half-space, local normal (0,0,1).
	KindPlane Kind = iota
	// KindSphere is a sphere of a given radius centered at the origin.
	KindSphere
	// KindConvex is an arbitrary convex polyhedron, including boxes.
	KindConvex
)

// Shape is an immutable collision geometry. The zero value is not valid;
// build one with Plane, Sphere, Convex, or Box.
type Shape struct {
	kind   Kind
	radius float32
	hull   *convex.Polyhedron
}

// Plane returns the infinite half-space shape.
func Plane() Shape {
	return Shape{kind: KindPlane}
}

// Sphere returns a sphere shape of the given radius.
func Sphere(radius float32) Shape {
	return Shape{kind: KindSphere, radius: radius}
}

// Convex returns a shape backed by an arbitrary convex polyhedron.
func Convex(hull *convex.Polyhedron) Shape {
	return Shape{kind: KindConvex, hull: hull}
}

// Box is a convenience constructor for the common box case, building the
// canonical 6-face hull via convex.FromBox.
func Box(halfExtents mgl32.Vec3) Shape {
	return Convex(convex.FromBox(halfExtents))
}

// Kind reports which variant this shape is.
func (s Shape) Kind() Kind {
	return s.kind
}

// Radius returns the sphere radius. Only meaningful when Kind() == KindSphere.
func (s Shape) Radius() float32 {
	return s.radius
}

// Polyhedron returns the backing hull. Only meaningful when
// Kind() == KindConvex.
func (s Shape) Polyhedron() *convex.Polyhedron {
	return s.hull
}

// RotationalInertia returns the diagonal of the body-local inertia tensor
// for a body of the given mass carrying this shape alone. Planes are only
// ever attached to static bodies, whose inverse mass and inverse inertia
// are always zero, so the plane case is never actually consulted by the
// solver; it returns the zero vector for completeness.
//
// Convex hulls other than a box only have their inertia approximated from
// the bounding box of their vertices — an exact closed-form tensor for a
// general polyhedron is not computed here.
func (s Shape) RotationalInertia(mass float32) mgl32.Vec3 {
	switch s.kind {
	case KindPlane:
		return mgl32.Vec3{0, 0, 0}
	case KindSphere:
		i := 0.4 * mass * s.radius * s.radius
		return mgl32.Vec3{i, i, i}
	case KindConvex:
		h := s.hull.AABBHalfExtents()
		wx, wy, wz := 2*h.X(), 2*h.Y(), 2*h.Z()
		c := mass / 12
		return mgl32.Vec3{
			c * (wy*wy + wz*wz),
			c * (wx*wx + wz*wz),
			c * (wx*wx + wy*wy),
		}
	default:
		return mgl32.Vec3{0, 0, 0}
	}
}
