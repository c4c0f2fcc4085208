// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convex

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/ingot3d/strata/transform"
)

func unitCube() *Polyhedron {
	return FromBox(mgl32.Vec3{1, 1, 1})
}

func TestFromBoxFaceNormalOrder(t *testing.T) {
	box := unitCube()
	want := []mgl32.Vec3{
		{0, 0, -1},
		{0, 0, 1},
		{0, -1, 0},
		{0, 1, 0},
		{-1, 0, 0},
		{1, 0, 0},
	}
	got := box.FaceNormals()
	assert.Len(t, got, 6)
	for i := range want {
		assert.InDeltaSlice(t, want[i][:], got[i][:], 1e-5)
	}
}

func TestFromBoxHasThreeUniqueEdges(t *testing.T) {
	box := FromBox(mgl32.Vec3{2, 3, 4})
	assert.Len(t, box.Edges(), 3)
}

func TestFromVerticesAndFacesUniqueEdgesOnCube(t *testing.T) {
	h := float32(1)
	vertices := []mgl32.Vec3{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}
	faces := [][]int{
		{3, 2, 1, 0},
		{4, 5, 6, 7},
		{5, 4, 0, 1},
		{2, 3, 7, 6},
		{0, 4, 7, 3},
		{1, 2, 6, 5},
	}
	poly := FromVerticesAndFaces(vertices, faces)
	assert.Len(t, poly.Edges(), 3)
}

func TestProjectBoxOnAxisAlignedAxis(t *testing.T) {
	box := FromBox(mgl32.Vec3{2, 3, 4})
	tr := transform.Identity()

	max, min := box.Project(tr, mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 2, max, 1e-5)
	assert.InDelta(t, 2, min, 1e-5)

	max, min = box.Project(tr, mgl32.Vec3{-1, 0, 0})
	assert.InDelta(t, 2, max, 1e-5)
	assert.InDelta(t, 2, min, 1e-5)

	max, min = box.Project(tr, mgl32.Vec3{0, 1, 0})
	assert.InDelta(t, 3, max, 1e-5)
	assert.InDelta(t, 3, min, 1e-5)
}

func TestClipFaceAgainstPlaneFullyInside(t *testing.T) {
	square := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	out := ClipFaceAgainstPlane(square, mgl32.Vec3{0, 0, 1}, -10)
	assert.Len(t, out, len(square))
}

func TestClipFaceAgainstPlaneFullyOutside(t *testing.T) {
	square := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	out := ClipFaceAgainstPlane(square, mgl32.Vec3{0, 0, 1}, 10)
	assert.Empty(t, out)
}

func TestClipFaceAgainstPlaneHalfCut(t *testing.T) {
	// Square in the XY plane, clip against the half space x <= 0.5.
	square := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	out := ClipFaceAgainstPlane(square, mgl32.Vec3{1, 0, 0}, -0.5)
	assert.Len(t, out, 4)
	for _, p := range out {
		assert.LessOrEqual(t, p.X(), float32(0.5)+1e-5)
	}
}

// S1: two identical boxes, unrotated, offset only along x by less than
// their combined half-extent overlap along the x axis.
func TestSeparatingAxisOverlappingBoxesAlongX(t *testing.T) {
	box := FromBox(mgl32.Vec3{0.5, 0.5, 0.5})
	tA := transform.New(mgl32.Vec3{-0.2, 0, 0}, mgl32.QuatIdent())
	tB := transform.New(mgl32.Vec3{0.2, 0, 0}, mgl32.QuatIdent())

	axis, depth, ok := FindSeparatingAxis(tA, box, tB, box)
	assert.True(t, ok)
	assert.Greater(t, depth, float32(0))
	assert.InDelta(t, -1, axis.X(), 1e-4)
	assert.InDelta(t, 0, axis.Y(), 1e-4)
	assert.InDelta(t, 0, axis.Z(), 1e-4)
}

// S2: two boxes far enough apart along x that they cannot be overlapping.
func TestSeparatingAxisNonOverlappingBoxes(t *testing.T) {
	box := FromBox(mgl32.Vec3{0.5, 0.5, 0.5})
	tA := transform.New(mgl32.Vec3{-5, 0, 0}, mgl32.QuatIdent())
	tB := transform.New(mgl32.Vec3{5, 0, 0}, mgl32.QuatIdent())

	_, _, ok := FindSeparatingAxis(tA, box, tB, box)
	assert.False(t, ok)
}

// S3: the oriented axis must satisfy (posB - posA)·axis < 0.
func TestSeparatingAxisOrientation(t *testing.T) {
	box := FromBox(mgl32.Vec3{0.5, 0.5, 0.5})
	tA := transform.New(mgl32.Vec3{-0.2, 0, 0}, mgl32.QuatIdent())
	tB := transform.New(mgl32.Vec3{0.2, 0, 0}, mgl32.QuatIdent())

	axis, _, ok := FindSeparatingAxis(tA, box, tB, box)
	assert.True(t, ok)
	delta := tB.Position.Sub(tA.Position)
	assert.Less(t, delta.Dot(axis), float32(0))
}

// S4: a box resting flush on a slightly interpenetrating twin box produces
// four contact points from the face clip.
func TestClipAgainstHullProducesFaceContacts(t *testing.T) {
	box := FromBox(mgl32.Vec3{0.5, 0.5, 0.5})
	tA := transform.New(mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent())
	tB := transform.New(mgl32.Vec3{0, 0.99, 0}, mgl32.QuatIdent())

	axis, _, ok := FindSeparatingAxis(tA, box, tB, box)
	assert.True(t, ok)

	contacts := ClipAgainstHull(tA, box, tB, box, axis, -1, 0)
	assert.Len(t, contacts, 4)
	for _, c := range contacts {
		assert.LessOrEqual(t, c.Depth, float32(0))
	}
}

// S5: clipping against a reference face must only consider its
// edge-sharing neighbours, never the opposite face.
func TestClipAgainstHullIgnoresOppositeFace(t *testing.T) {
	box := FromBox(mgl32.Vec3{0.5, 0.5, 0.5})
	tA := transform.New(mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent())
	tB := transform.New(mgl32.Vec3{0, 0.9, 0}, mgl32.QuatIdent())

	axis, _, ok := FindSeparatingAxis(tA, box, tB, box)
	assert.True(t, ok)

	contacts := ClipAgainstHull(tA, box, tB, box, axis, -1, 0)
	for _, c := range contacts {
		assert.InDelta(t, 0, c.Point.X(), 0.51)
		assert.InDelta(t, 0, c.Point.Z(), 0.51)
	}
}

func TestWorldFaceTransformsVertices(t *testing.T) {
	box := FromBox(mgl32.Vec3{1, 1, 1})
	tr := transform.New(mgl32.Vec3{5, 0, 0}, mgl32.QuatIdent())
	face := box.WorldFace(tr, 1) // z = +1 face
	for _, v := range face {
		assert.InDelta(t, 1, v.Z(), 1e-5)
		assert.Greater(t, v.X(), float32(3))
	}
}
