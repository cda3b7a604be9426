// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"fmt"
	"strings"

	"github.com/gogpu/dlss/ngx"
)

// FeatureFlags configure a feature context at creation time.
type FeatureFlags uint16

// Feature flags.
const (
	// FlagHDR marks the color input as HDR (linear, unbounded).
	FlagHDR FeatureFlags = 1 << iota
	// FlagLowResMotionVectors marks motion vectors as rendered at the render
	// resolution rather than the output resolution.
	FlagLowResMotionVectors
	// FlagJitteredMotionVectors marks motion vectors as including jitter.
	FlagJitteredMotionVectors
	// FlagInvertedDepth marks depth as reversed-Z.
	FlagInvertedDepth
	// FlagAutoExposure lets the runtime compute exposure.
	FlagAutoExposure
	// FlagAlphaUpscaling upscales the alpha channel too.
	FlagAlphaUpscaling
	// FlagOutputSubrect enables output subrects at creation.
	FlagOutputSubrect
)

var flagNames = []struct {
	flag FeatureFlags
	name string
}{
	{FlagHDR, "hdr"},
	{FlagLowResMotionVectors, "low-res-motion-vectors"},
	{FlagJitteredMotionVectors, "jittered-motion-vectors"},
	{FlagInvertedDepth, "inverted-depth"},
	{FlagAutoExposure, "auto-exposure"},
	{FlagAlphaUpscaling, "alpha-upscaling"},
	{FlagOutputSubrect, "output-subrect"},
}

// Has reports whether every bit of flag is set.
func (f FeatureFlags) Has(flag FeatureFlags) bool {
	return f&flag == flag
}

// String returns the flag names joined with "|".
func (f FeatureFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseFeatureFlags combines flag names.
func ParseFeatureFlags(names []string) (FeatureFlags, error) {
	var f FeatureFlags
	for _, name := range names {
		found := false
		for _, fn := range flagNames {
			if strings.EqualFold(name, fn.name) {
				f |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("dlss: unknown feature flag %q", name)
		}
	}
	return f, nil
}

// runtimeFlags converts to the runtime's creation flags. Output subrects are
// passed separately.
func (f FeatureFlags) runtimeFlags() ngx.FeatureFlags {
	out := ngx.FlagNone
	if f.Has(FlagHDR) {
		out |= ngx.FlagIsHDR
	}
	if f.Has(FlagLowResMotionVectors) {
		out |= ngx.FlagMVLowRes
	}
	if f.Has(FlagJitteredMotionVectors) {
		out |= ngx.FlagMVJittered
	}
	if f.Has(FlagInvertedDepth) {
		out |= ngx.FlagDepthInverted
	}
	if f.Has(FlagAutoExposure) {
		out |= ngx.FlagAutoExposure
	}
	if f.Has(FlagAlphaUpscaling) {
		out |= ngx.FlagAlphaUpscaling
	}
	return out
}
