// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package world owns the set of bodies in a simulation and drives one
// fixed timestep at a time: integrate velocities, broadphase, narrowphase,
// solve, integrate positions.
package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ingot3d/strata/body"
	"github.com/ingot3d/strata/collision"
	"github.com/ingot3d/strata/equation"
	"github.com/ingot3d/strata/narrowphase"
	"github.com/ingot3d/strata/shape"
	"github.com/ingot3d/strata/solver"
	"github.com/ingot3d/strata/transform"
)

// World holds every body in a simulation plus the pluggable broadphase and
// solver used to step it forward.
type World struct {
	bodies map[body.Id]*body.Body
	nextID body.Id

	gravity mgl32.Vec3

	broadphase collision.Broadphase
	solver     *solver.GaussSeidel

	// contacts holds the manifold from the most recently completed Step,
	// for introspection via FoldContacts.
	contacts []equation.Contact
}

// New returns an empty world with Earth-like gravity, the naive
// broadphase, and the default 20-iteration Gauss-Seidel solver.
func New() *World {
	return &World{
		bodies:     make(map[body.Id]*body.Body),
		gravity:    mgl32.Vec3{0, -9.81, 0},
		broadphase: collision.Naive{},
		solver:     solver.New(),
	}
}

// SetGravity sets the world's gravitational acceleration, applied to every
// Dynamic body each step.
func (w *World) SetGravity(g mgl32.Vec3) {
	w.gravity = g
}

// SetBroadphase replaces the pair-finding strategy used each step.
func (w *World) SetBroadphase(bp collision.Broadphase) {
	w.broadphase = bp
}

// AddBody creates a new body of the given type, assigns it the next
// available id, and adds it to the world.
func (w *World) AddBody(kind body.Type) *body.Body {
	id := w.nextID
	w.nextID++
	b := body.New(id, kind)
	w.bodies[id] = b
	return b
}

// Body looks up a body by id.
func (w *World) Body(id body.Id) (*body.Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// Bodies returns the world's body map. Callers must not mutate it; use
// AddBody to add bodies.
func (w *World) Bodies() map[body.Id]*body.Body {
	return w.bodies
}

// Step advances the simulation by dt: gravity and accumulated forces
// update velocities, the broadphase and narrowphase find and measure
// contacts, the solver resolves them, and finally positions and
// orientations are integrated from the resolved velocities.
func (w *World) Step(dt float32) {
	for _, b := range w.bodies {
		b.IntegrateVelocity(dt, w.gravity)
	}

	contacts := w.findContacts()
	w.contacts = contacts

	solvable := make([]equation.Contact, 0, len(contacts))
	for _, c := range contacts {
		a, b := w.bodies[c.Body1], w.bodies[c.Body2]
		if a.CollisionResponse() && b.CollisionResponse() {
			solvable = append(solvable, c)
		}
	}
	w.solver.Solve(dt, w.bodies, solvable)

	for _, b := range w.bodies {
		b.IntegratePosition(dt)
	}
}

func (w *World) findContacts() []equation.Contact {
	var contacts []equation.Contact
	for _, pair := range w.broadphase.FindPairs(w.bodies) {
		a := w.bodies[pair.First]
		b := w.bodies[pair.Second]

		a.ForEachShape(func(idA body.ShapeId, sA shape.Shape, worldA transform.Transform) {
			b.ForEachShape(func(idB body.ShapeId, sB shape.Shape, worldB transform.Transform) {
				contacts = append(contacts, narrowphase.Contacts(a, sA, worldA, b, sB, worldB)...)
			})
		})
	}
	return contacts
}

// FoldContacts reduces over the contact manifold produced by the most
// recent Step, in the order the narrow phase produced them.
func FoldContacts[T any](w *World, fn func(acc T, c equation.Contact) T, init T) T {
	acc := init
	for _, c := range w.contacts {
		acc = fn(acc, c)
	}
	return acc
}

// shapeEntry pairs a shape with the body and world transform it belongs to,
// the unit FoldShapes and its derived folds iterate over.
type shapeEntry struct {
	bodyID body.Id
	shape  shape.Shape
	world  transform.Transform
}

func (w *World) allShapes() []shapeEntry {
	var entries []shapeEntry
	for _, b := range w.bodies {
		b.ForEachShape(func(id body.ShapeId, s shape.Shape, wt transform.Transform) {
			entries = append(entries, shapeEntry{bodyID: b.Id(), shape: s, world: wt})
		})
	}
	return entries
}

// FoldShapes reduces over every shape attached to every body in the world,
// each already composed with its owning body's current pose.
func FoldShapes[T any](w *World, fn func(acc T, bodyID body.Id, s shape.Shape, world transform.Transform) T, init T) T {
	acc := init
	for _, e := range w.allShapes() {
		acc = fn(acc, e.bodyID, e.shape, e.world)
	}
	return acc
}

// FoldFaceNormals reduces over the world-space face normals of every
// convex shape in the world. Non-convex shapes contribute nothing.
func FoldFaceNormals[T any](w *World, fn func(acc T, bodyID body.Id, normal mgl32.Vec3) T, init T) T {
	acc := init
	for _, e := range w.allShapes() {
		if e.shape.Kind() != shape.KindConvex {
			continue
		}
		for _, n := range e.shape.Polyhedron().FaceNormals() {
			acc = fn(acc, e.bodyID, e.world.VectorToWorld(n))
		}
	}
	return acc
}

// FoldUniqueEdges reduces over the world-space unique edge directions of
// every convex shape in the world. Non-convex shapes contribute nothing.
func FoldUniqueEdges[T any](w *World, fn func(acc T, bodyID body.Id, edge mgl32.Vec3) T, init T) T {
	acc := init
	for _, e := range w.allShapes() {
		if e.shape.Kind() != shape.KindConvex {
			continue
		}
		for _, edge := range e.shape.Polyhedron().Edges() {
			acc = fn(acc, e.bodyID, e.world.VectorToWorld(edge))
		}
	}
	return acc
}
