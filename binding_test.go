// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dlss/ngx"
)

func TestVulkanFormat(t *testing.T) {
	tests := []struct {
		format gputypes.TextureFormat
		want   uint32
		ok     bool
	}{
		{gputypes.TextureFormatRGBA8Unorm, 37, true},
		{gputypes.TextureFormatBGRA8Unorm, 44, true},
		{gputypes.TextureFormatRGBA16Float, 97, true},
		{gputypes.TextureFormatRG16Float, 83, true},
		{gputypes.TextureFormatDepth32Float, 126, true},
		{gputypes.TextureFormatUndefined, 0, false},
	}
	for _, tt := range tests {
		got, ok := VulkanFormat(tt.format)
		if got != tt.want || ok != tt.ok {
			t.Errorf("VulkanFormat(%v) = %d, %v; want %d, %v", tt.format, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBindResource(t *testing.T) {
	depth := newTestTexture(t, "depth", 640, 480, gputypes.TextureFormatDepth24PlusStencil8,
		gputypes.TextureUsageTextureBinding, gputypes.TextureUsageTextureBinding)
	res, err := bindResource(depth)
	if err != nil {
		t.Fatalf("bindResource() error = %v", err)
	}
	want := ngx.Resource{
		ImageView: depth.Raw().NativeHandle(),
		Image:     depth.Texture().Raw().NativeHandle(),
		Subresource: ngx.SubresourceRange{
			Aspect:     ngx.AspectDepth,
			LevelCount: ngx.RemainingMipLevels,
			LayerCount: ngx.RemainingArrayLayers,
		},
		Format: 129,
		Width:  640,
		Height: 480,
	}
	if *res != want {
		t.Errorf("bindResource() = %+v, want %+v", *res, want)
	}

	out := storageOutput(t, Resolution{640, 480})
	if res, err := bindResource(out); err != nil || !res.ReadWrite {
		t.Errorf("storage output bound as %+v, %v; want read-write", res, err)
	}

	if res, err := bindOptional(nil); res != nil || err != nil {
		t.Errorf("bindOptional(nil) = %v, %v; want nil, nil", res, err)
	}

	odd := newTestTexture(t, "odd", 4, 4, gputypes.TextureFormatUndefined,
		gputypes.TextureUsageTextureBinding, gputypes.TextureUsageTextureBinding)
	if _, err := bindResource(odd); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("bindResource(undefined) = %v, want ErrUnsupportedFormat", err)
	}
}

func TestNewTexture(t *testing.T) {
	if _, err := NewTexture(nil, &TextureDescriptor{}, 0); !errors.Is(err, ErrNilTexture) {
		t.Errorf("NewTexture(nil) = %v, want ErrNilTexture", err)
	}
	if _, err := NewTexture(&mockHALTexture{}, &TextureDescriptor{}, 0); !errors.Is(err, ErrInvalidTextureSize) {
		t.Errorf("NewTexture(zero size) = %v, want ErrInvalidTextureSize", err)
	}
	if _, err := NewTextureView(&mockHALTextureView{}, nil); !errors.Is(err, ErrNilTexture) {
		t.Errorf("NewTextureView(nil texture) = %v, want ErrNilTexture", err)
	}

	v := sampled(t, "color", Resolution{800, 600})
	tex := v.Texture()
	if tex.Resolution() != (Resolution{800, 600}) || tex.IsStorage() {
		t.Errorf("texture = %v storage %v", tex.Resolution(), tex.IsStorage())
	}
	tex.SetState(gputypes.TextureUsageCopyDst)
	if tex.State() != gputypes.TextureUsageCopyDst {
		t.Errorf("State() = %v after SetState", tex.State())
	}
}
