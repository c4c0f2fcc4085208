// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package equation holds the contact constraints produced by the narrow
// phase, consumed one iteration at a time by the solver.
package equation

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ingot3d/strata/body"
)

// Contact is a single non-penetration constraint between two bodies at a
// contact point. Ni points from Body1 toward Body2. Ri and Rj are the
// contact point's offset from each body's center of mass, in world space.
// Unlike the SPOOK-parameterized equations cannon.js-family engines use,
// this is a plain Baumgarte-stabilized velocity constraint: the solver
// derives its bias directly from Depth.
type Contact struct {
	Body1 body.Id
	Body2 body.Id

	Ni mgl32.Vec3
	Ri mgl32.Vec3
	Rj mgl32.Vec3

	// Depth is the signed penetration at this point, negative when overlapping.
	Depth float32
}
