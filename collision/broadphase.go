// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collision finds candidate colliding body pairs. The broadphase
// is intentionally a pluggable interface: the engine ships a naive O(n^2)
// implementation and leaves room for a spatial-partitioning implementation
// to be dropped in without the rest of the engine noticing.
package collision

import (
	"sort"

	"github.com/ingot3d/strata/body"
)

// Pair is an unordered candidate pair of bodies that might be in contact.
// By convention First < Second.
type Pair struct {
	First  body.Id
	Second body.Id
}

// Broadphase narrows the full body set down to candidate pairs worth
// running the narrow phase on.
type Broadphase interface {
	FindPairs(bodies map[body.Id]*body.Body) []Pair
}

// Naive is the default broadphase: it tests every body against every other
// body exactly once, skipping pairs where neither body is Dynamic (any
// combination of Static and Kinematic bodies). Pairs involving a body with
// collision response disabled are still returned.
type Naive struct{}

// FindPairs implements Broadphase.
func (Naive) FindPairs(bodies map[body.Id]*body.Body) []Pair {
	ids := make([]body.Id, 0, len(bodies))
	for id := range bodies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var pairs []Pair
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := bodies[ids[i]], bodies[ids[j]]
			if a.Type() != body.Dynamic && b.Type() != body.Dynamic {
				continue
			}
			pairs = append(pairs, Pair{First: ids[i], Second: ids[j]})
		}
	}
	return pairs
}
