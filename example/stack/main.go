// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command stack runs a box falling onto a ground plane and logs its pose
// every few steps until it settles, exercising the full world/narrowphase/
// solver pipeline without any rendering attached.
package main

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ingot3d/strata/body"
	"github.com/ingot3d/strata/shape"
	"github.com/ingot3d/strata/transform"
	"github.com/ingot3d/strata/util/logger"
	"github.com/ingot3d/strata/world"
)

const (
	timestep  = 1.0 / 60
	stepCount = 180
	logEveryN = 15
)

var log = logger.New("stack", logger.Default)

func main() {
	log.SetLevel(logger.INFO)

	w := world.New()
	w.SetGravity(mgl32.Vec3{0, -9.81, 0})

	ground := w.AddBody(body.Static)
	ground.SetQuaternion(mgl32.QuatRotate(mgl32.DegToRad(-90), mgl32.Vec3{1, 0, 0}))
	ground.AddShape(shape.Plane(), transform.Identity())

	box := w.AddBody(body.Dynamic)
	box.SetMass(1)
	box.AddShape(shape.Box(mgl32.Vec3{0.5, 0.5, 0.5}), transform.Identity())
	box.SetPosition(mgl32.Vec3{0, 3, 0})

	log.Info("body %d falling from y=%.2f", box.Id(), box.Position().Y())

	for i := 0; i < stepCount; i++ {
		w.Step(timestep)

		if i%logEveryN == 0 {
			p := box.Position()
			v := box.Velocity()
			log.Info("step %3d: pos=(%.3f, %.3f, %.3f) vel=(%.3f, %.3f, %.3f)",
				i, p.X(), p.Y(), p.Z(), v.X(), v.Y(), v.Z())
		}
	}

	final := box.Position()
	log.Info("settled at y=%.4f after %d steps", final.Y(), stepCount)
}
