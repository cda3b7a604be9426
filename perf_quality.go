// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"fmt"
	"strings"

	"github.com/gogpu/dlss/ngx"
)

// PerfQualityMode selects the trade-off between render resolution and image
// quality.
type PerfQualityMode uint8

// Performance/quality presets.
const (
	// PerfQualityAuto picks a preset from the output pixel count.
	PerfQualityAuto PerfQualityMode = iota
	// PerfQualityDLAA renders at the output resolution (anti-aliasing only).
	PerfQualityDLAA
	PerfQualityQuality
	PerfQualityBalanced
	PerfQualityPerformance
	PerfQualityUltraPerformance
)

// Output pixel counts up to which Auto picks Quality, then Performance.
const (
	autoQualityMaxPixels     = 2560 * 1440
	autoPerformanceMaxPixels = 3840 * 2160
)

var perfQualityNames = [...]string{
	PerfQualityAuto:             "auto",
	PerfQualityDLAA:             "dlaa",
	PerfQualityQuality:          "quality",
	PerfQualityBalanced:         "balanced",
	PerfQualityPerformance:      "performance",
	PerfQualityUltraPerformance: "ultra-performance",
}

// String returns the preset name accepted by ParsePerfQualityMode.
func (m PerfQualityMode) String() string {
	if int(m) < len(perfQualityNames) {
		return perfQualityNames[m]
	}
	return fmt.Sprintf("PerfQualityMode(%d)", uint8(m))
}

// ParsePerfQualityMode parses a preset name. Matching ignores case.
func ParsePerfQualityMode(s string) (PerfQualityMode, error) {
	for i, name := range perfQualityNames {
		if strings.EqualFold(s, name) {
			return PerfQualityMode(i), nil
		}
	}
	return 0, fmt.Errorf("dlss: unknown quality preset %q", s)
}

// IsNative reports whether the preset renders at the output resolution.
func (m PerfQualityMode) IsNative() bool {
	return m == PerfQualityDLAA
}

// runtimeValue resolves the preset to the runtime's quality value for the
// given output resolution.
func (m PerfQualityMode) runtimeValue(output Resolution) ngx.PerfQualityValue {
	switch m {
	case PerfQualityDLAA:
		return ngx.PerfQualityDLAA
	case PerfQualityQuality:
		return ngx.PerfQualityMaxQuality
	case PerfQualityBalanced:
		return ngx.PerfQualityBalanced
	case PerfQualityPerformance:
		return ngx.PerfQualityMaxPerf
	case PerfQualityUltraPerformance:
		return ngx.PerfQualityUltraPerformance
	}

	pixels := output.pixels()
	switch {
	case pixels <= autoQualityMaxPixels:
		return ngx.PerfQualityMaxQuality
	case pixels <= autoPerformanceMaxPixels:
		return ngx.PerfQualityMaxPerf
	default:
		return ngx.PerfQualityUltraPerformance
	}
}
