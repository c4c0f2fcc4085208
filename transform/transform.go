// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transform provides the world-from-local pose used throughout the
// physics core: a position plus an orientation quaternion.
package transform

import "github.com/go-gl/mathgl/mgl32"

// Transform is a rigid pose: a world-space position and orientation.
type Transform struct {
	Position   mgl32.Vec3
	Quaternion mgl32.Quat
}

// Identity returns the transform at the origin with no rotation.
func Identity() Transform {
	return Transform{
		Position:   mgl32.Vec3{0, 0, 0},
		Quaternion: mgl32.QuatIdent(),
	}
}

// New builds a transform from a position and quaternion.
func New(position mgl32.Vec3, quaternion mgl32.Quat) Transform {
	return Transform{Position: position, Quaternion: quaternion}
}

// PointToWorld converts a point given in the transform's local frame to world space.
func (t Transform) PointToWorld(p mgl32.Vec3) mgl32.Vec3 {
	return t.Position.Add(t.Quaternion.Rotate(p))
}

// VectorToWorld rotates (but does not translate) a local-space vector into world space.
func (t Transform) VectorToWorld(v mgl32.Vec3) mgl32.Vec3 {
	return t.Quaternion.Rotate(v)
}

// PointToLocal converts a world-space point into the transform's local frame.
func (t Transform) PointToLocal(p mgl32.Vec3) mgl32.Vec3 {
	return t.Quaternion.Conjugate().Rotate(p.Sub(t.Position))
}

// Matrix composes the transform into a single world matrix, translation
// after rotation.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).Mul4(t.Quaternion.Mat4())
}

// Compose returns the transform equivalent to applying inner and then outer:
// a point p maps to outer.PointToWorld(inner.PointToWorld(p)).
func Compose(outer, inner Transform) Transform {
	return Transform{
		Position:   outer.PointToWorld(inner.Position),
		Quaternion: outer.Quaternion.Mul(inner.Quaternion),
	}
}
