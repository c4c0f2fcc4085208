// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convex implements the immutable convex polyhedron representation
// used by the narrow phase: vertices, faces, face normals, unique edge
// directions, Sutherland-Hodgman face clipping and the separating axis test.
package convex

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ingot3d/strata/transform"
)

// Epsilon is the tolerance used throughout this package for edge uniqueness,
// axis length, and coplanarity checks. Approximate comparisons always go
// through this constant, never bare float equality.
const Epsilon = 1e-4

// Polyhedron is an immutable convex hull in local (body) coordinates.
// Build once with FromBox or FromVerticesAndFaces and share the value
// across every body that uses the same shape.
type Polyhedron struct {
	vertices []mgl32.Vec3
	faces    [][]int
	normals  []mgl32.Vec3
	edges    []mgl32.Vec3
}

// Vertices returns the hull's local-space vertices.
func (p *Polyhedron) Vertices() []mgl32.Vec3 {
	return p.vertices
}

// Faces returns the hull's faces as ordered vertex index lists.
func (p *Polyhedron) Faces() [][]int {
	return p.faces
}

// FaceNormals returns the outward unit normal for each face, in face order.
func (p *Polyhedron) FaceNormals() []mgl32.Vec3 {
	return p.normals
}

// Edges returns the set of unique edge directions, up to sign, within Epsilon.
func (p *Polyhedron) Edges() []mgl32.Vec3 {
	return p.edges
}

// Volume returns the hull's volume, computed by summing signed tetrahedron
// volumes from the origin to each face's triangle fan. Exact for any convex
// polyhedron whose faces are planar and wound outward.
func (p *Polyhedron) Volume() float32 {
	var sum float32
	for _, face := range p.faces {
		v0 := p.vertices[face[0]]
		for i := 1; i+1 < len(face); i++ {
			v1 := p.vertices[face[i]]
			v2 := p.vertices[face[i+1]]
			sum += v0.Dot(v1.Cross(v2))
		}
	}
	vol := sum / 6
	if vol < 0 {
		vol = -vol
	}
	return vol
}

// AABBHalfExtents returns the half-extents of the hull's axis-aligned
// bounding box in local space, used by shape.RotationalInertia for every
// convex hull (exact for a box, an approximation for any other hull).
func (p *Polyhedron) AABBHalfExtents() mgl32.Vec3 {
	min := p.vertices[0]
	max := p.vertices[0]
	for _, v := range p.vertices[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return max.Sub(min).Mul(0.5)
}

// FromBox builds the canonical 6-face, 8-vertex box whose normals are
// exactly the six axis directions in the fixed order
// (0,0,-1) (0,0,1) (0,-1,0) (0,1,0) (-1,0,0) (1,0,0).
// Edges are returned directly as the three coordinate axes, never recomputed,
// to avoid floating point drift on the most common shape.
func FromBox(halfExtents mgl32.Vec3) *Polyhedron {
	hx, hy, hz := halfExtents.X(), halfExtents.Y(), halfExtents.Z()

	v := []mgl32.Vec3{
		{-hx, -hy, -hz}, // 0
		{hx, -hy, -hz},  // 1
		{hx, hy, -hz},   // 2
		{-hx, hy, -hz},  // 3
		{-hx, -hy, hz},  // 4
		{hx, -hy, hz},   // 5
		{hx, hy, hz},    // 6
		{-hx, hy, hz},   // 7
	}

	faces := [][]int{
		{3, 2, 1, 0}, // z = -hz, normal (0,0,-1)
		{4, 5, 6, 7}, // z = +hz, normal (0,0,1)
		{5, 4, 0, 1}, // y = -hy, normal (0,-1,0)
		{2, 3, 7, 6}, // y = +hy, normal (0,1,0)
		{0, 4, 7, 3}, // x = -hx, normal (-1,0,0)
		{1, 2, 6, 5}, // x = +hx, normal (1,0,0)
	}

	normals := make([]mgl32.Vec3, len(faces))
	for i, face := range faces {
		normals[i] = faceNormal(v, face)
	}

	edges := []mgl32.Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}

	return &Polyhedron{vertices: v, faces: faces, normals: normals, edges: edges}
}

// FromVerticesAndFaces builds a hull from explicit vertices and face index
// lists. Face normals are derived from the first three vertices of each
// face via normalize(cross(v1-v0, v2-v0)) — the caller is responsible for
// winding each face outward. Unique edges are computed with the
// unique-edge algorithm below, seeded empty.
func FromVerticesAndFaces(vertices []mgl32.Vec3, faces [][]int) *Polyhedron {
	return FromVerticesFacesSeeded(vertices, faces, nil)
}

// FromVerticesFacesSeeded is FromVerticesAndFaces with a caller-supplied
// starting set of unique edge directions, for deterministic edge ordering
// across hulls that are known to share some edges.
func FromVerticesFacesSeeded(vertices []mgl32.Vec3, faces [][]int, seed []mgl32.Vec3) *Polyhedron {
	normals := make([]mgl32.Vec3, len(faces))
	for i, face := range faces {
		normals[i] = faceNormal(vertices, face)
	}
	edges := uniqueEdges(vertices, faces, seed)
	return &Polyhedron{vertices: vertices, faces: faces, normals: normals, edges: edges}
}

func faceNormal(vertices []mgl32.Vec3, face []int) mgl32.Vec3 {
	v0 := vertices[face[0]]
	v1 := vertices[face[1]]
	v2 := vertices[face[2]]
	n := v1.Sub(v0).Cross(v2.Sub(v0))
	if n.Len() > Epsilon {
		n = n.Normalize()
	}
	return n
}

// uniqueEdges collects edge directions: for every
// face, for every consecutive (wrapping) pair of vertices, compute the
// normalized edge direction and keep it only if no direction already in the
// result set equals it, directly or negated, within Epsilon. The result
// preserves first-occurrence order. seed pre-populates the result so
// callers can force a deterministic canonical set (e.g. reusing a box's
// three axes).
func uniqueEdges(vertices []mgl32.Vec3, faces [][]int, seed []mgl32.Vec3) []mgl32.Vec3 {
	result := append([]mgl32.Vec3(nil), seed...)

	for _, face := range faces {
		n := len(face)
		for i := 0; i < n; i++ {
			a := vertices[face[i]]
			b := vertices[face[(i+1)%n]]
			d := b.Sub(a)
			if d.Len() <= Epsilon {
				continue
			}
			d = d.Normalize()

			found := false
			for _, e := range result {
				if almostEqual(e, d) || almostEqual(e, d.Mul(-1)) {
					found = true
					break
				}
			}
			if !found {
				result = append(result, d)
			}
		}
	}

	return result
}

func almostEqual(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() <= Epsilon
}

// ClipFaceAgainstPlane clips a polygon (an ordered list of points, possibly
// non-planar callers' responsibility aside) against the half-space
// n·x + c <= 0, using Sutherland-Hodgman. The result is idempotent: running
// it again on an already-clipped polygon returns the same points.
func ClipFaceAgainstPlane(polygon []mgl32.Vec3, n mgl32.Vec3, c float32) []mgl32.Vec3 {
	if len(polygon) < 2 {
		return polygon
	}

	clipped := make([]mgl32.Vec3, 0, len(polygon))

	prev := polygon[len(polygon)-1]
	dPrev := n.Dot(prev) + c

	for _, curr := range polygon {
		dCurr := n.Dot(curr) + c

		if dPrev <= 0 {
			if dCurr <= 0 {
				clipped = append(clipped, curr)
			} else {
				t := dPrev / (dPrev - dCurr)
				clipped = append(clipped, lerp(prev, curr, t))
			}
		} else {
			if dCurr <= 0 {
				t := dPrev / (dPrev - dCurr)
				clipped = append(clipped, lerp(prev, curr, t))
				clipped = append(clipped, curr)
			}
		}

		prev = curr
		dPrev = dCurr
	}

	return clipped
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Contact is a single contact point produced by clipping, in world
// coordinates: the clipped point, the contact normal, and the signed
// penetration depth (negative means overlapping).
type Contact struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
	Depth  float32
}

// WorldFace returns the world-space vertices of the given face.
func (p *Polyhedron) WorldFace(t transform.Transform, faceIdx int) []mgl32.Vec3 {
	face := p.faces[faceIdx]
	out := make([]mgl32.Vec3, len(face))
	for i, idx := range face {
		out[i] = t.PointToWorld(p.vertices[idx])
	}
	return out
}

func (p *Polyhedron) worldFaceNormals(t transform.Transform) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(p.normals))
	for i, n := range p.normals {
		out[i] = t.VectorToWorld(n)
	}
	return out
}

func (p *Polyhedron) worldEdges(t transform.Transform) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(p.edges))
	for i, e := range p.edges {
		out[i] = t.VectorToWorld(e)
	}
	return out
}

// Project projects every world-space vertex of the hull onto axis, and
// returns (max, min) such that the hull's extent along axis is [-min, max].
// Both returned values are maxima of positive quantities.
func (p *Polyhedron) Project(t transform.Transform, axis mgl32.Vec3) (max, min float32) {
	max = -math.MaxFloat32
	min = -math.MaxFloat32
	for _, v := range p.vertices {
		d := t.PointToWorld(v).Dot(axis)
		if d > max {
			max = d
		}
		if -d > min {
			min = -d
		}
	}
	return max, min
}

// ClipFaceAgainstHull clips polygon (already in world space) against every
// face plane of hull except referenceFaceIdx, then keeps only the points
// whose signed distance to the reference face plane lies within
// [minDepth, maxDepth]. Each surviving point is emitted with the reference
// face's outward-negated normal and its signed depth.
func ClipFaceAgainstHull(t transform.Transform, hull *Polyhedron, referenceFaceIdx int, polygon []mgl32.Vec3, minDepth, maxDepth float32) []Contact {
	worldNormals := hull.worldFaceNormals(t)
	refNormal := worldNormals[referenceFaceIdx]

	clipped := polygon
	for i, face := range hull.faces {
		if i == referenceFaceIdx {
			continue
		}
		n := worldNormals[i]
		firstVertex := t.PointToWorld(hull.vertices[face[0]])
		c := -n.Dot(firstVertex)
		clipped = ClipFaceAgainstPlane(clipped, n, c)
	}

	refFirstVertex := t.PointToWorld(hull.vertices[hull.faces[referenceFaceIdx][0]])
	refC := -refNormal.Dot(refFirstVertex)

	contacts := make([]Contact, 0, len(clipped))
	for _, pt := range clipped {
		depth := refNormal.Dot(pt) + refC
		if depth >= minDepth && depth <= maxDepth {
			contacts = append(contacts, Contact{
				Point:  pt,
				Normal: refNormal.Mul(-1),
				Depth:  depth,
			})
		}
	}
	return contacts
}

// FindSeparatingAxis runs the standard SAT candidate search:
// every face normal of both hulls, then every cross product of their unique
// edges (skipping near-parallel pairs). It returns ok=false if any
// candidate axis separates the hulls; otherwise it returns the axis with
// the smallest positive overlap depth (first candidate wins on a tie),
// oriented so that (tB.Position - tA.Position)·axis < 0.
func FindSeparatingAxis(tA transform.Transform, a *Polyhedron, tB transform.Transform, b *Polyhedron) (axis mgl32.Vec3, depth float32, ok bool) {
	depthMin := float32(math.MaxFloat32)
	var best mgl32.Vec3
	found := false

	test := func(candidate mgl32.Vec3) bool {
		d, separates := testAxis(tA, a, tB, b, candidate)
		if separates {
			return false
		}
		if d < depthMin {
			depthMin = d
			best = candidate
			found = true
		}
		return true
	}

	for _, n := range a.worldFaceNormals(tA) {
		if !test(n) {
			return mgl32.Vec3{}, 0, false
		}
	}
	for _, n := range b.worldFaceNormals(tB) {
		if !test(n) {
			return mgl32.Vec3{}, 0, false
		}
	}

	edgesA := a.worldEdges(tA)
	edgesB := b.worldEdges(tB)
	for _, ea := range edgesA {
		for _, eb := range edgesB {
			cross := ea.Cross(eb)
			if cross.Len() <= Epsilon {
				continue
			}
			if !test(cross.Normalize()) {
				return mgl32.Vec3{}, 0, false
			}
		}
	}

	if !found {
		return mgl32.Vec3{}, 0, false
	}

	delta := tB.Position.Sub(tA.Position)
	if delta.Dot(best) > 0 {
		best = best.Mul(-1)
	}

	return best, depthMin, true
}

// testAxis projects both hulls onto axis and returns the overlap depth.
// separates is true when the hulls do not overlap along this axis.
func testAxis(tA transform.Transform, a *Polyhedron, tB transform.Transform, b *Polyhedron, axis mgl32.Vec3) (depth float32, separates bool) {
	maxA, minA := a.Project(tA, axis)
	maxB, minB := b.Project(tB, axis)

	d0 := maxA + minB
	d1 := maxB + minA
	depth = d0
	if d1 < d0 {
		depth = d1
	}
	if depth < 0 {
		return 0, true
	}
	return depth, false
}

// ClipAgainstHull runs the reference/incident face clip. axis is oriented as
// FindSeparatingAxis returns it, pointing from b toward a. Each hull's
// candidate reference face is the face that best faces the other hull (a's
// face most aligned with -axis, b's face most aligned with axis); the hull
// whose candidate aligns better becomes the reference hull. The incident
// face is the other hull's face most anti-parallel to that direction. The
// incident face is clipped against the reference face's neighbouring
// planes, and only the points whose signed distance to the reference plane
// lies within [minDepth, maxDepth] are kept.
func ClipAgainstHull(tA transform.Transform, a *Polyhedron, tB transform.Transform, b *Polyhedron, axis mgl32.Vec3, minDepth, maxDepth float32) []Contact {
	normalsA := a.worldFaceNormals(tA)
	normalsB := b.worldFaceNormals(tB)

	towardB := axis.Mul(-1)
	bestA, idxA := mostAligned(normalsA, towardB)
	bestB, idxB := mostAligned(normalsB, axis)

	var refT, incT transform.Transform
	var refHull, incHull *Polyhedron
	var refIdx, incIdx int
	var refNormals []mgl32.Vec3

	if bestA >= bestB {
		refT, refHull, refIdx, refNormals = tA, a, idxA, normalsA
		incT, incHull = tB, b
		_, incIdx = mostAntiAligned(normalsB, towardB)
	} else {
		refT, refHull, refIdx, refNormals = tB, b, idxB, normalsB
		incT, incHull = tA, a
		_, incIdx = mostAntiAligned(normalsA, axis)
	}

	if incIdx < 0 || refIdx < 0 {
		return nil
	}

	incidentFace := incHull.WorldFace(incT, incIdx)

	clipped := append([]mgl32.Vec3(nil), incidentFace...)
	refFace := refHull.faces[refIdx]
	for i, face := range refHull.faces {
		if i == refIdx || !sharesVertex(face, refFace) {
			continue
		}
		n := refNormals[i]
		firstVertex := refT.PointToWorld(refHull.vertices[face[0]])
		c := -n.Dot(firstVertex)
		clipped = ClipFaceAgainstPlane(clipped, n, c)
	}

	refNormal := refNormals[refIdx]
	refFirstVertex := refT.PointToWorld(refHull.vertices[refFace[0]])
	refC := -refNormal.Dot(refFirstVertex)

	contacts := make([]Contact, 0, len(clipped))
	for _, pt := range clipped {
		depth := refNormal.Dot(pt) + refC
		if depth >= minDepth && depth <= maxDepth {
			contacts = append(contacts, Contact{
				Point:  pt,
				Normal: refNormal.Mul(-1),
				Depth:  depth,
			})
		}
	}
	return contacts
}

func mostAligned(normals []mgl32.Vec3, axis mgl32.Vec3) (best float32, idx int) {
	best = -math.MaxFloat32
	idx = -1
	for i, n := range normals {
		d := n.Dot(axis)
		if d > best {
			best = d
			idx = i
		}
	}
	return best, idx
}

func mostAntiAligned(normals []mgl32.Vec3, axis mgl32.Vec3) (worst float32, idx int) {
	worst = math.MaxFloat32
	idx = -1
	for i, n := range normals {
		d := n.Dot(axis)
		if d < worst {
			worst = d
			idx = i
		}
	}
	return worst, idx
}

func sharesVertex(face, other []int) bool {
	for _, i := range face {
		for _, j := range other {
			if i == j {
				return true
			}
		}
	}
	return false
}
