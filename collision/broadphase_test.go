// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ingot3d/strata/body"
)

func TestNaiveSkipsTwoStaticBodies(t *testing.T) {
	bodies := map[body.Id]*body.Body{
		0: body.New(0, body.Static),
		1: body.New(1, body.Static),
	}
	pairs := Naive{}.FindPairs(bodies)
	assert.Empty(t, pairs)
}

func TestNaivePairsDynamicWithStatic(t *testing.T) {
	bodies := map[body.Id]*body.Body{
		0: body.New(0, body.Static),
		1: body.New(1, body.Dynamic),
	}
	pairs := Naive{}.FindPairs(bodies)
	assert.Equal(t, []Pair{{First: 0, Second: 1}}, pairs)
}

func TestNaiveEnumeratesEveryPairOnce(t *testing.T) {
	bodies := map[body.Id]*body.Body{
		0: body.New(0, body.Dynamic),
		1: body.New(1, body.Dynamic),
		2: body.New(2, body.Dynamic),
	}
	pairs := Naive{}.FindPairs(bodies)
	assert.Len(t, pairs, 3)
}
