// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Minimum jitter phase count for super resolution.
const superResolutionMinPhases = 32

// halton returns element index of the Halton low-discrepancy sequence with
// the given base. The result lies in [0, 1).
func halton(index, base uint32) float32 {
	f := 1.0
	r := 0.0
	b := float64(base)
	for i := index; i > 0; i /= base {
		f /= b
		r += f * float64(i%base)
	}
	// 1-b^-k can round up to 1 in float32.
	return min(float32(r), math.Nextafter32(1, 0))
}

// jitterPhaseCount returns the length of the jitter cycle for an upscaling
// ratio, never less than minPhases and never zero.
func jitterPhaseCount(output, render Resolution, minPhases uint32) uint32 {
	ratio := float64(output.Width) / float64(max(render.Width, 1))
	phases := uint32(math.Floor(8 * ratio * ratio))
	return max(phases, minPhases, 1)
}

// suggestedJitter returns the subpixel camera offset for a frame, in pixels,
// within [-0.5, 0.5) on both axes. The sequence repeats every
// jitterPhaseCount frames.
func suggestedJitter(frame uint32, output, render Resolution, minPhases uint32) mgl32.Vec2 {
	i := frame % jitterPhaseCount(output, render, minPhases)
	return mgl32.Vec2{halton(i, 2) - 0.5, halton(i, 3) - 0.5}
}

// suggestedMipBias returns the texture LOD bias for rendering at render and
// upscaling to output.
func suggestedMipBias(output, render Resolution) float32 {
	ratio := float64(render.Width) / float64(max(output.Width, 1))
	return float32(math.Log2(ratio) - 1)
}
