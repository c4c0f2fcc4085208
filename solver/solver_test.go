// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/ingot3d/strata/body"
	"github.com/ingot3d/strata/equation"
	"github.com/ingot3d/strata/shape"
	"github.com/ingot3d/strata/transform"
)

func TestSolveSeparatesApproachingBodies(t *testing.T) {
	ground := body.New(0, body.Static)
	ground.SetQuaternion(mgl32.QuatRotate(mgl32.DegToRad(-90), mgl32.Vec3{1, 0, 0}))
	ground.AddShape(shape.Plane(), transform.Identity())

	box := body.New(1, body.Dynamic)
	box.SetMass(1)
	box.AddShape(shape.Box(mgl32.Vec3{0.5, 0.5, 0.5}), transform.Identity())
	box.SetPosition(mgl32.Vec3{0, 0.4, 0})
	box.SetVelocity(mgl32.Vec3{0, -2, 0})

	bodies := map[body.Id]*body.Body{0: ground, 1: box}
	contacts := []equation.Contact{
		{
			Body1: 0,
			Body2: 1,
			Ni:    mgl32.Vec3{0, 1, 0},
			Ri:    mgl32.Vec3{0, 0, 0},
			Rj:    mgl32.Vec3{0, -0.5, 0},
			Depth: -0.1,
		},
	}

	gs := New()
	gs.Solve(1.0/60, bodies, contacts)

	assert.GreaterOrEqual(t, box.Velocity().Y(), float32(-2))
}

func TestSolveNoContactsIsNoOp(t *testing.T) {
	gs := New()
	gs.Solve(1.0/60, map[body.Id]*body.Body{}, nil)
}

func TestSolveClampsToNonNegativeImpulse(t *testing.T) {
	ground := body.New(0, body.Static)
	box := body.New(1, body.Dynamic)
	box.SetMass(1)
	box.SetVelocity(mgl32.Vec3{0, 5, 0}) // already separating fast

	bodies := map[body.Id]*body.Body{0: ground, 1: box}
	contacts := []equation.Contact{
		{Body1: 0, Body2: 1, Ni: mgl32.Vec3{0, 1, 0}, Ri: mgl32.Vec3{}, Rj: mgl32.Vec3{}, Depth: 0},
	}

	gs := New()
	gs.Solve(1.0/60, bodies, contacts)

	// Already separating with no penetration: solver must not slow it down.
	assert.InDelta(t, 5, box.Velocity().Y(), 1e-5)
}
