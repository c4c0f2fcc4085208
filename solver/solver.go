// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver implements the sequential-impulse Gauss-Seidel contact
// solver: it walks the set of contact equations for a fixed number of
// iterations, resolving each one against the current velocity estimate of
// its two bodies before moving to the next.
package solver

import (
	"github.com/ingot3d/strata/body"
	"github.com/ingot3d/strata/equation"
)

// GaussSeidel is an iterative sequential-impulse solver for non-penetration
// contact constraints, with Baumgarte position stabilization.
type GaussSeidel struct {
	// Iterations is the number of passes over the full contact set per
	// solve. See https://en.wikipedia.org/wiki/Gauss-Seidel_method.
	Iterations int

	// Beta is the Baumgarte stabilization factor: the fraction of
	// penetration depth corrected per step (the bias velocity is
	// Beta/dt times the depth).
	Beta float32
}

// New returns a GaussSeidel solver configured with the engine's defaults:
// 20 iterations and a Baumgarte factor of 0.2.
func New() *GaussSeidel {
	return &GaussSeidel{
		Iterations: 20,
		Beta:       0.2,
	}
}

// Solve resolves contacts in place against the bodies map: each iteration
// updates every body's velocity and angular velocity directly, so later
// contacts in the same pass see the results of earlier ones. Accumulated
// impulses are clamped to be non-negative — contacts only ever push.
func (gs *GaussSeidel) Solve(dt float32, bodies map[body.Id]*body.Body, contacts []equation.Contact) {
	if len(contacts) == 0 {
		return
	}

	lambda := make([]float32, len(contacts))

	for iter := 0; iter < gs.Iterations; iter++ {
		for j := range contacts {
			c := &contacts[j]

			bodyA := bodies[c.Body1]
			bodyB := bodies[c.Body2]

			rAxN := c.Ri.Cross(c.Ni)
			rBxN := c.Rj.Cross(c.Ni)
			angularTermA := bodyA.InvInertiaWorld().Mul3x1(rAxN).Dot(rAxN)
			angularTermB := bodyB.InvInertiaWorld().Mul3x1(rBxN).Dot(rBxN)

			k := bodyA.InvMass() + bodyB.InvMass() + angularTermA + angularTermB
			if k <= 0 {
				continue
			}
			effectiveMass := 1 / k

			vA := bodyA.Velocity().Add(bodyA.AngularVelocity().Cross(c.Ri))
			vB := bodyB.Velocity().Add(bodyB.AngularVelocity().Cross(c.Rj))
			separatingVelocity := vB.Sub(vA).Dot(c.Ni)

			var biasTarget float32
			if c.Depth < 0 {
				biasTarget = gs.Beta / dt * -c.Depth
			}

			deltaLambda := effectiveMass * (biasTarget - separatingVelocity)

			old := lambda[j]
			next := old + deltaLambda
			if next < 0 {
				next = 0
			}
			deltaLambda = next - old
			lambda[j] = next

			if deltaLambda == 0 {
				continue
			}

			impulse := c.Ni.Mul(deltaLambda)
			bodyA.ApplyImpulse(impulse.Mul(-1), c.Ri)
			bodyB.ApplyImpulse(impulse, c.Rj)
		}
	}
}
