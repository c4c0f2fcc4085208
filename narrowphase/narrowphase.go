// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package narrowphase dispatches a pair of shapes to the right contact
// generation routine and produces the contact equations the solver
// consumes. Sphere pairs are intentionally unimplemented: every other
// combination of Plane and Convex is handled.
package narrowphase

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ingot3d/strata/body"
	"github.com/ingot3d/strata/convex"
	"github.com/ingot3d/strata/equation"
	"github.com/ingot3d/strata/shape"
	"github.com/ingot3d/strata/transform"
)

// unboundedDepth is the lower depth bound passed to the clipping routines:
// deep enough that no contact on a physically reasonable step falls below it.
const unboundedDepth = -1e6

// Contacts runs the narrow phase on one pair of shapes belonging to two
// bodies, already posed in world space, and returns the contact equations
// between them. Returns nil if the pair does not overlap or the
// combination of shape kinds is not supported.
func Contacts(a *body.Body, shapeA shape.Shape, worldA transform.Transform, b *body.Body, shapeB shape.Shape, worldB transform.Transform) []equation.Contact {
	switch {
	case shapeA.Kind() == shape.KindPlane && shapeB.Kind() == shape.KindPlane:
		return nil

	case shapeA.Kind() == shape.KindPlane && shapeB.Kind() == shape.KindConvex:
		return planeConvex(a, worldA, b, shapeB.Polyhedron(), worldB)

	case shapeA.Kind() == shape.KindConvex && shapeB.Kind() == shape.KindPlane:
		return flip(planeConvex(b, worldB, a, shapeA.Polyhedron(), worldA))

	case shapeA.Kind() == shape.KindConvex && shapeB.Kind() == shape.KindConvex:
		return convexConvex(a, shapeA.Polyhedron(), worldA, b, shapeB.Polyhedron(), worldB)

	default:
		return nil
	}
}

// planeConvex tests every vertex of hull against the plane's half-space and
// emits a contact for each one that has penetrated. Handled separately from
// the general convex-convex SAT path, since a plane has no vertices of its
// own to clip against.
func planeConvex(planeBody *body.Body, planeWorld transform.Transform, hullBody *body.Body, hull *convex.Polyhedron, hullWorld transform.Transform) []equation.Contact {
	n := planeWorld.VectorToWorld(mgl32.Vec3{0, 0, 1})
	planePos := planeWorld.Position

	var contacts []equation.Contact
	for _, v := range hull.Vertices() {
		worldVertex := hullWorld.PointToWorld(v)
		depth := worldVertex.Sub(planePos).Dot(n)
		if depth > 0 {
			continue
		}
		contacts = append(contacts, equation.Contact{
			Body1: planeBody.Id(),
			Body2: hullBody.Id(),
			Ni:    n,
			Ri:    worldVertex.Sub(planeBody.Position()),
			Rj:    worldVertex.Sub(hullBody.Position()),
			Depth: depth,
		})
	}
	return contacts
}

// convexConvex runs the separating axis test and, if the hulls overlap,
// clips the incident face against the reference hull to produce the final
// contact manifold.
func convexConvex(a *body.Body, hullA *convex.Polyhedron, tA transform.Transform, b *body.Body, hullB *convex.Polyhedron, tB transform.Transform) []equation.Contact {
	axis, _, ok := convex.FindSeparatingAxis(tA, hullA, tB, hullB)
	if !ok {
		return nil
	}

	raw := convex.ClipAgainstHull(tA, hullA, tB, hullB, axis, unboundedDepth, 0)

	// axis satisfies (posB - posA)·axis < 0, so it points from B toward A.
	// The contact normal must point from Body1 (a) to Body2 (b), the
	// opposite direction.
	ni := axis.Mul(-1)

	contacts := make([]equation.Contact, 0, len(raw))
	for _, c := range raw {
		contacts = append(contacts, equation.Contact{
			Body1: a.Id(),
			Body2: b.Id(),
			Ni:    ni,
			Ri:    c.Point.Sub(a.Position()),
			Rj:    c.Point.Sub(b.Position()),
			Depth: c.Depth,
		})
	}
	return contacts
}

// flip swaps the body roles of a contact set, used when the plane is the
// second shape in the pair rather than the first.
func flip(contacts []equation.Contact) []equation.Contact {
	if contacts == nil {
		return nil
	}
	out := make([]equation.Contact, len(contacts))
	for i, c := range contacts {
		out[i] = equation.Contact{
			Body1: c.Body2,
			Body2: c.Body1,
			Ni:    c.Ni.Mul(-1),
			Ri:    c.Rj,
			Rj:    c.Ri,
			Depth: c.Depth,
		}
	}
	return out
}
