// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package body implements the rigid body: mass properties, pose, velocity,
// accumulated forces, the shapes attached to it, and semi-implicit Euler
// integration.
package body

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ingot3d/strata/shape"
	"github.com/ingot3d/strata/transform"
)

// Id is an opaque dense handle assigned by the world when a body is added.
type Id int

// ShapeId is an opaque handle for a shape attached to a body, assigned by
// AddShape. It is only unique within the owning body.
type ShapeId int

// Type specifies how a body is affected during simulation.
type Type int

const (
	// Static bodies never move and have infinite effective mass.
	Static Type = iota
	// Kinematic bodies move according to their velocity but never respond
	// to forces or impulses.
	Kinematic
	// Dynamic bodies are fully simulated: forces, impulses and collision
	// response all apply.
	Dynamic
)

// Body is a rigid body: a pose (position + orientation), linear and
// angular velocity, accumulated force and torque, and the set of shapes
// that define its collision geometry.
type Body struct {
	id   Id
	kind Type

	// CollisionResponse controls whether contacts involving this body
	// produce impulses. When false, contacts are still detected but never
	// resolved — useful for trigger volumes.
	collisionResponse bool

	mass            float32
	invMass         float32
	localInertia    mgl32.Vec3
	invLocalInertia mgl32.Vec3
	invInertiaWorld mgl32.Mat3

	position        mgl32.Vec3
	quaternion      mgl32.Quat
	velocity        mgl32.Vec3
	angularVelocity mgl32.Vec3
	force           mgl32.Vec3
	torque          mgl32.Vec3

	shapes          map[ShapeId]shape.Shape
	shapeTransforms map[ShapeId]transform.Transform
	nextShapeId     ShapeId
}

// New creates a body of the given type with identity pose, at rest, with no
// shapes and no mass. id is assigned by the owning world.
func New(id Id, kind Type) *Body {
	return &Body{
		id:                id,
		kind:              kind,
		collisionResponse: true,
		quaternion:        mgl32.QuatIdent(),
		shapes:            make(map[ShapeId]shape.Shape),
		shapeTransforms:   make(map[ShapeId]transform.Transform),
	}
}

// Id returns the body's handle within its world.
func (b *Body) Id() Id {
	return b.id
}

// Type returns the body's simulation type.
func (b *Body) Type() Type {
	return b.kind
}

// CollisionResponse reports whether this body produces collision impulses.
func (b *Body) CollisionResponse() bool {
	return b.collisionResponse
}

// SetCollisionResponse sets whether this body produces collision impulses.
func (b *Body) SetCollisionResponse(respond bool) {
	b.collisionResponse = respond
}

// Mass returns the body's total mass.
func (b *Body) Mass() float32 {
	return b.mass
}

// InvMass returns the body's inverse mass, zero for Static and Kinematic bodies.
func (b *Body) InvMass() float32 {
	return b.invMass
}

// InvInertiaWorld returns the current world-space inverse inertia tensor.
func (b *Body) InvInertiaWorld() mgl32.Mat3 {
	return b.invInertiaWorld
}

// SetMass sets the body's mass and recomputes its inertia tensor from the
// shapes currently attached. Static and Kinematic bodies always have zero
// inverse mass regardless of this call.
func (b *Body) SetMass(mass float32) {
	b.mass = mass
	b.updateMassProperties()
}

// Position returns the body's world-space center of mass.
func (b *Body) Position() mgl32.Vec3 {
	return b.position
}

// SetPosition sets the body's world-space center of mass.
func (b *Body) SetPosition(p mgl32.Vec3) {
	b.position = p
}

// Quaternion returns the body's world-space orientation.
func (b *Body) Quaternion() mgl32.Quat {
	return b.quaternion
}

// SetQuaternion sets the body's world-space orientation.
func (b *Body) SetQuaternion(q mgl32.Quat) {
	b.quaternion = q
	b.updateInertiaWorld()
}

// Transform returns the body's current pose as a transform.Transform.
func (b *Body) Transform() transform.Transform {
	return transform.New(b.position, b.quaternion)
}

// OffsetBy translates the body by delta, in world space. Intended for
// placing bodies before a simulation starts or teleporting a Kinematic
// body; it does not touch velocity.
func (b *Body) OffsetBy(delta mgl32.Vec3) {
	b.position = b.position.Add(delta)
}

// RotateBy applies q on the left of the body's current orientation. Like
// OffsetBy, this is a pose edit, not a velocity change, so it recomputes
// the world inertia tensor immediately rather than waiting for the next
// integration step.
func (b *Body) RotateBy(q mgl32.Quat) {
	b.quaternion = q.Mul(b.quaternion).Normalize()
	b.updateInertiaWorld()
}

// Velocity returns the body's linear velocity.
func (b *Body) Velocity() mgl32.Vec3 {
	return b.velocity
}

// SetVelocity sets the body's linear velocity.
func (b *Body) SetVelocity(v mgl32.Vec3) {
	b.velocity = v
}

// AngularVelocity returns the body's angular velocity.
func (b *Body) AngularVelocity() mgl32.Vec3 {
	return b.angularVelocity
}

// SetAngularVelocity sets the body's angular velocity.
func (b *Body) SetAngularVelocity(v mgl32.Vec3) {
	b.angularVelocity = v
}

// AddShape attaches a shape to the body at the given local transform and
// returns the handle assigned to it. Recomputes the body's inertia tensor.
func (b *Body) AddShape(s shape.Shape, localTransform transform.Transform) ShapeId {
	id := b.nextShapeId
	b.nextShapeId++
	b.shapes[id] = s
	b.shapeTransforms[id] = localTransform
	b.updateMassProperties()
	return id
}

// Shape returns the shape and local transform for id, and whether it exists.
func (b *Body) Shape(id ShapeId) (shape.Shape, transform.Transform, bool) {
	s, ok := b.shapes[id]
	if !ok {
		return shape.Shape{}, transform.Transform{}, false
	}
	return s, b.shapeTransforms[id], true
}

// ForEachShape calls fn once for every shape attached to the body, with the
// shape's local transform composed under the body's own pose.
func (b *Body) ForEachShape(fn func(id ShapeId, s shape.Shape, worldTransform transform.Transform)) {
	bodyTransform := b.Transform()
	for id, s := range b.shapes {
		fn(id, s, transform.Compose(bodyTransform, b.shapeTransforms[id]))
	}
}

// ApplyForce accumulates a world-space force applied at relativePoint
// (relative to the center of mass, in world space). No-op on non-Dynamic bodies.
func (b *Body) ApplyForce(force, relativePoint mgl32.Vec3) {
	if b.kind != Dynamic {
		return
	}
	b.force = b.force.Add(force)
	b.torque = b.torque.Add(relativePoint.Cross(force))
}

// ApplyImpulse immediately changes linear and angular velocity by the given
// world-space impulse applied at relativePoint. No-op on non-Dynamic bodies.
func (b *Body) ApplyImpulse(impulse, relativePoint mgl32.Vec3) {
	if b.kind != Dynamic {
		return
	}
	b.velocity = b.velocity.Add(impulse.Mul(b.invMass))
	angularImpulse := relativePoint.Cross(impulse)
	b.angularVelocity = b.angularVelocity.Add(b.invInertiaWorld.Mul3x1(angularImpulse))
}

// ClearForces resets accumulated force and torque to zero.
func (b *Body) ClearForces() {
	b.force = mgl32.Vec3{}
	b.torque = mgl32.Vec3{}
}

// IntegrateVelocity applies gravity and any accumulated force/torque to the
// body's velocity and angular velocity, semi-implicit Euler style. It does
// not move the body and does not clear forces — the world calls this
// before running the contact solver, so the solver sees gravity already
// folded into velocity; forces are cleared by IntegratePosition once the
// step is done.
// No-op on non-Dynamic bodies: Static never accelerates, and Kinematic is
// driven by a velocity the caller sets directly.
func (b *Body) IntegrateVelocity(dt float32, gravity mgl32.Vec3) {
	if b.kind != Dynamic {
		return
	}
	linearAccel := b.force.Mul(b.invMass).Add(gravity)
	b.velocity = b.velocity.Add(linearAccel.Mul(dt))

	angularAccel := b.invInertiaWorld.Mul3x1(b.torque)
	b.angularVelocity = b.angularVelocity.Add(angularAccel.Mul(dt))
}

// IntegratePosition advances position and orientation by the body's
// current velocity and angular velocity, then clears accumulated forces.
// Static bodies never move. Kinematic and Dynamic bodies both integrate
// their pose from whatever velocity they currently hold.
func (b *Body) IntegratePosition(dt float32) {
	if b.kind == Static {
		b.ClearForces()
		return
	}

	b.position = b.position.Add(b.velocity.Mul(dt))

	omega := mgl32.Quat{W: 0, V: b.angularVelocity}
	dq := omega.Mul(b.quaternion).Scale(0.5 * dt)
	b.quaternion = mgl32.Quat{W: b.quaternion.W + dq.W, V: b.quaternion.V.Add(dq.V)}.Normalize()

	if b.kind == Dynamic {
		b.updateInertiaWorld()
	}

	b.ClearForces()
}

func (b *Body) updateMassProperties() {
	if b.kind != Dynamic || b.mass <= 0 {
		b.invMass = 0
		b.localInertia = mgl32.Vec3{}
		b.invLocalInertia = mgl32.Vec3{}
		b.invInertiaWorld = mgl32.Mat3{}
		return
	}

	b.invMass = 1 / b.mass

	var sum mgl32.Vec3
	for _, s := range b.shapes {
		sum = sum.Add(s.RotationalInertia(b.mass))
	}
	if len(b.shapes) > 0 {
		sum = sum.Mul(1 / float32(len(b.shapes)))
	}
	b.localInertia = sum
	b.invLocalInertia = mgl32.Vec3{
		safeInv(sum.X()),
		safeInv(sum.Y()),
		safeInv(sum.Z()),
	}

	b.updateInertiaWorld()
}

func safeInv(x float32) float32 {
	if x > 0 {
		return 1 / x
	}
	return 0
}

// updateInertiaWorld recomputes the world-space inverse inertia tensor as
// R * invLocalInertia * R^T, built from the rotated local axes rather than
// through a general matrix inverse, since the local tensor is always
// diagonal.
func (b *Body) updateInertiaWorld() {
	if b.invMass == 0 {
		b.invInertiaWorld = mgl32.Mat3{}
		return
	}

	ex := b.quaternion.Rotate(mgl32.Vec3{1, 0, 0})
	ey := b.quaternion.Rotate(mgl32.Vec3{0, 1, 0})
	ez := b.quaternion.Rotate(mgl32.Vec3{0, 0, 1})

	r := mgl32.Mat3{
		ex.X(), ex.Y(), ex.Z(),
		ey.X(), ey.Y(), ey.Z(),
		ez.X(), ez.Y(), ez.Z(),
	}
	d := mgl32.Mat3{
		b.invLocalInertia.X(), 0, 0,
		0, b.invLocalInertia.Y(), 0,
		0, 0, b.invLocalInertia.Z(),
	}

	b.invInertiaWorld = r.Mul3(d).Mul3(r.Transpose())
}
