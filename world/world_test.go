// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/ingot3d/strata/body"
	"github.com/ingot3d/strata/equation"
	"github.com/ingot3d/strata/shape"
	"github.com/ingot3d/strata/transform"
)

func TestAddBodyAssignsSequentialIds(t *testing.T) {
	w := New()
	b0 := w.AddBody(body.Dynamic)
	b1 := w.AddBody(body.Dynamic)
	assert.Equal(t, b0.Id()+1, b1.Id())
}

func TestBodyLookup(t *testing.T) {
	w := New()
	b := w.AddBody(body.Static)
	found, ok := w.Body(b.Id())
	assert.True(t, ok)
	assert.Same(t, b, found)
}

// S6: a box resting on a ground plane comes to rest rather than sinking
// through or bouncing away, after enough steps for the solver to converge.
func TestBoxRestsOnGroundPlane(t *testing.T) {
	w := New()
	w.SetGravity(mgl32.Vec3{0, -9.81, 0})

	ground := w.AddBody(body.Static)
	ground.SetQuaternion(mgl32.QuatRotate(mgl32.DegToRad(-90), mgl32.Vec3{1, 0, 0}))
	ground.AddShape(shape.Plane(), transform.Identity())

	box := w.AddBody(body.Dynamic)
	box.SetMass(1)
	box.AddShape(shape.Box(mgl32.Vec3{0.5, 0.5, 0.5}), transform.Identity())
	box.SetPosition(mgl32.Vec3{0, 0.55, 0})

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60)
	}

	assert.InDelta(t, 0.5, box.Position().Y(), 0.05)
	assert.Less(t, box.Velocity().Len(), float32(0.5))
}

func TestStepWithNoBodiesDoesNotPanic(t *testing.T) {
	w := New()
	w.Step(1.0 / 60)
}

func TestFoldContactsAfterStep(t *testing.T) {
	w := New()
	ground := w.AddBody(body.Static)
	ground.SetQuaternion(mgl32.QuatRotate(mgl32.DegToRad(-90), mgl32.Vec3{1, 0, 0}))
	ground.AddShape(shape.Plane(), transform.Identity())

	box := w.AddBody(body.Dynamic)
	box.SetMass(1)
	box.AddShape(shape.Box(mgl32.Vec3{0.5, 0.5, 0.5}), transform.Identity())
	box.SetPosition(mgl32.Vec3{0, 0.1, 0})

	w.Step(1.0 / 60)

	count := FoldContacts(w, func(acc int, c equation.Contact) int { return acc + 1 }, 0)
	assert.Greater(t, count, 0)
}

func TestFoldFaceNormalsCoversAllBoxFaces(t *testing.T) {
	w := New()
	b := w.AddBody(body.Dynamic)
	b.SetMass(1)
	b.AddShape(shape.Box(mgl32.Vec3{1, 1, 1}), transform.Identity())

	count := FoldFaceNormals(w, func(acc int, id body.Id, n mgl32.Vec3) int { return acc + 1 }, 0)
	assert.Equal(t, 6, count)
}

func TestFoldUniqueEdgesCoversBoxAxes(t *testing.T) {
	w := New()
	b := w.AddBody(body.Dynamic)
	b.SetMass(1)
	b.AddShape(shape.Box(mgl32.Vec3{1, 1, 1}), transform.Identity())

	count := FoldUniqueEdges(w, func(acc int, id body.Id, e mgl32.Vec3) int { return acc + 1 }, 0)
	assert.Equal(t, 3, count)
}
