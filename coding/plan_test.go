// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunHistoryFinderLike(t *testing.T) {
	fill := func(runs ...int) *runHistory {
		var r runHistory
		for _, n := range runs {
			r.push(n)
		}
		return &r
	}

	// A 1:1:3:1:1 core with a wide light run on either side.
	assert.True(t, fill(4, 1, 1, 3, 1, 1, 0).finderLike())
	assert.True(t, fill(0, 1, 1, 3, 1, 1, 4).finderLike())
	assert.True(t, fill(8, 2, 2, 6, 2, 2, 5).finderLike())

	// Neither flank reaches four times the unit.
	assert.False(t, fill(3, 1, 1, 3, 1, 1, 3).finderLike())
	// A light run at the symbol edge is not widened by the quiet zone.
	assert.False(t, fill(0, 1, 1, 3, 1, 1, 1).finderLike())
	// Broken cores.
	assert.False(t, fill(4, 1, 2, 3, 1, 1, 0).finderLike())
	assert.False(t, fill(4, 1, 1, 4, 1, 1, 0).finderLike())
}

func TestRunHistoryTerminate(t *testing.T) {
	// A line ending in a dark run closes with a dummy light run so a
	// pattern at the edge still scores.
	var r runHistory
	for _, n := range []int{4, 1, 1, 3, 1} {
		r.push(n)
	}
	assert.True(t, r.terminate(true, 1))

	// A line ending light pushes the final light run as is.
	var s runHistory
	for _, n := range []int{4, 1, 1, 3, 1, 1} {
		s.push(n)
	}
	assert.True(t, s.terminate(false, 2))
}
