// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/dlss/ngx"
)

// Resolution is a width and height in pixels.
type Resolution struct {
	Width  uint32
	Height uint32
}

// String formats the resolution as WxH.
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// ParseResolution parses "WxH", e.g. "3840x2160".
func ParseResolution(s string) (Resolution, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Resolution{}, fmt.Errorf("dlss: resolution %q: want WxH", s)
	}
	width, err := strconv.ParseUint(w, 10, 32)
	if err != nil {
		return Resolution{}, fmt.Errorf("dlss: resolution %q: %w", s, err)
	}
	height, err := strconv.ParseUint(h, 10, 32)
	if err != nil {
		return Resolution{}, fmt.Errorf("dlss: resolution %q: %w", s, err)
	}
	return Resolution{Width: uint32(width), Height: uint32(height)}, nil
}

// IsZero reports whether either axis is zero.
func (r Resolution) IsZero() bool {
	return r.Width == 0 || r.Height == 0
}

// Fits reports whether r is no larger than other in both axes.
func (r Resolution) Fits(other Resolution) bool {
	return r.Width <= other.Width && r.Height <= other.Height
}

func (r Resolution) pixels() uint64 {
	return uint64(r.Width) * uint64(r.Height)
}

func (r Resolution) dimensions() ngx.Dimensions {
	return ngx.Dimensions{Width: r.Width, Height: r.Height}
}

func resolutionOf(d ngx.Dimensions) Resolution {
	return Resolution{Width: d.Width, Height: d.Height}
}

// clampTo limits r to max in each axis.
func (r Resolution) clampTo(limit Resolution) Resolution {
	return Resolution{Width: min(r.Width, limit.Width), Height: min(r.Height, limit.Height)}
}

// ResolutionRange is the render resolution window a super resolution context
// accepts for dynamic resolution scaling.
type ResolutionRange struct {
	Min Resolution
	Max Resolution
}

// Contains reports whether r lies inside the window.
func (rr ResolutionRange) Contains(r Resolution) bool {
	return rr.Min.Fits(r) && r.Fits(rr.Max)
}
