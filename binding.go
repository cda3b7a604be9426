// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dlss/ngx"
)

// VkFormat values for the formats the runtime accepts as inputs or output.
// Depth24Plus follows the packed 24-bit layout the Vulkan HAL picks when the
// device supports it.
var vulkanFormats = map[gputypes.TextureFormat]uint32{
	gputypes.TextureFormatR8Unorm:              9,
	gputypes.TextureFormatRG8Unorm:             16,
	gputypes.TextureFormatRGBA8Unorm:           37,
	gputypes.TextureFormatRGBA8UnormSrgb:       43,
	gputypes.TextureFormatBGRA8Unorm:           44,
	gputypes.TextureFormatBGRA8UnormSrgb:       50,
	gputypes.TextureFormatRGB10A2Unorm:         64,
	gputypes.TextureFormatR16Float:             76,
	gputypes.TextureFormatRG16Float:            83,
	gputypes.TextureFormatRGBA16Float:          97,
	gputypes.TextureFormatR32Float:             100,
	gputypes.TextureFormatRG32Float:            103,
	gputypes.TextureFormatRGBA32Float:          109,
	gputypes.TextureFormatDepth16Unorm:         124,
	gputypes.TextureFormatDepth24Plus:          125,
	gputypes.TextureFormatDepth32Float:         126,
	gputypes.TextureFormatDepth24PlusStencil8:  129,
	gputypes.TextureFormatDepth32FloatStencil8: 130,
}

// VulkanFormat returns the VkFormat value for f.
func VulkanFormat(f gputypes.TextureFormat) (uint32, bool) {
	v, ok := vulkanFormats[f]
	return v, ok
}

// isDepthFormat reports whether f has a depth aspect.
func isDepthFormat(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatDepth16Unorm,
		gputypes.TextureFormatDepth24Plus,
		gputypes.TextureFormatDepth32Float,
		gputypes.TextureFormatDepth24PlusStencil8,
		gputypes.TextureFormatDepth32FloatStencil8:
		return true
	default:
		return false
	}
}

// bindResource builds the runtime descriptor for a view. It is derived fresh
// on every call; views may change from frame to frame.
func bindResource(view *TextureView) (*ngx.Resource, error) {
	tex := view.Texture()
	format, ok := VulkanFormat(tex.Format())
	if !ok {
		return nil, fmt.Errorf("%w: %v (%s)", ErrUnsupportedFormat, tex.Format(), tex.Label())
	}

	aspect := ngx.AspectColor
	if isDepthFormat(tex.Format()) {
		aspect = ngx.AspectDepth
	}

	return &ngx.Resource{
		ImageView: view.Raw().NativeHandle(),
		Image:     tex.Raw().NativeHandle(),
		Subresource: ngx.SubresourceRange{
			Aspect:         aspect,
			BaseMipLevel:   0,
			LevelCount:     ngx.RemainingMipLevels,
			BaseArrayLayer: 0,
			LayerCount:     ngx.RemainingArrayLayers,
		},
		Format:    format,
		Width:     tex.Width(),
		Height:    tex.Height(),
		ReadWrite: tex.IsStorage(),
	}, nil
}

// bindOptional binds view, or returns nil for an absent slot.
func bindOptional(view *TextureView) (*ngx.Resource, error) {
	if view == nil {
		return nil, nil //nolint:nilnil // absent slot
	}
	return bindResource(view)
}
