// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"fmt"
	"strings"

	"github.com/gogpu/dlss/ngx"
)

// Feature names one of the runtime features this package drives.
type Feature uint8

// Features.
const (
	// FeatureSuperResolution upscales color (DLSS Super Resolution).
	FeatureSuperResolution Feature = iota
	// FeatureRayReconstruction denoises and upscales ray traced lighting
	// (DLSS Ray Reconstruction).
	FeatureRayReconstruction
)

// Features lists every feature in negotiation order.
var Features = []Feature{FeatureSuperResolution, FeatureRayReconstruction}

// String returns the feature name.
func (f Feature) String() string {
	switch f {
	case FeatureSuperResolution:
		return "super-resolution"
	case FeatureRayReconstruction:
		return "ray-reconstruction"
	default:
		return "unknown"
	}
}

// ParseFeature parses a feature name as returned by String.
func ParseFeature(name string) (Feature, error) {
	for _, f := range Features {
		if strings.EqualFold(name, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("dlss: unknown feature %q", name)
}

// runtimeID returns the runtime feature identifier.
func (f Feature) runtimeID() ngx.Feature {
	if f == FeatureRayReconstruction {
		return ngx.FeatureRayReconstruction
	}
	return ngx.FeatureSuperSampling
}

// FeatureSupport records which features survived extension negotiation.
// It is written only during instance and device creation.
type FeatureSupport struct {
	SuperResolution   bool
	RayReconstruction bool
}

// Supported reports the flag for f.
func (s FeatureSupport) Supported(f Feature) bool {
	switch f {
	case FeatureSuperResolution:
		return s.SuperResolution
	case FeatureRayReconstruction:
		return s.RayReconstruction
	default:
		return false
	}
}

func (s *FeatureSupport) set(f Feature, v bool) {
	switch f {
	case FeatureSuperResolution:
		s.SuperResolution = v
	case FeatureRayReconstruction:
		s.RayReconstruction = v
	}
}
