// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"errors"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Texture errors.
var (
	// ErrNilTexture is returned when wrapping a nil texture or view.
	ErrNilTexture = errors.New("dlss: texture is nil")

	// ErrInvalidTextureSize is returned when texture dimensions are zero.
	ErrInvalidTextureSize = errors.New("dlss: invalid texture size")
)

// TextureDescriptor describes a texture created by the host.
// It mirrors the fields the host passed to hal.Device.CreateTexture.
type TextureDescriptor struct {
	// Label is an optional debug name.
	Label string

	// Size is the texture dimensions.
	Size gputypes.Extent3D

	// MipLevelCount is the number of mip levels (1+ required).
	MipLevelCount uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Usage is the usage the texture was created with.
	Usage gputypes.TextureUsage
}

// Texture is a host texture bound for evaluation.
//
// HAL textures do not carry their creation descriptor or their current usage,
// so Texture keeps both. The tracked state is the usage the texture was last
// transitioned to; Render transitions from it and records the new state.
// Hosts that transition the texture themselves must call SetState.
//
// Texture is safe for concurrent use.
type Texture struct {
	mu sync.RWMutex

	halTexture hal.Texture
	descriptor TextureDescriptor

	// state is the current usage; zero means unknown.
	state gputypes.TextureUsage
}

// NewTexture wraps a hal.Texture. state is the usage the texture is in now,
// or zero if unknown.
func NewTexture(halTexture hal.Texture, desc *TextureDescriptor, state gputypes.TextureUsage) (*Texture, error) {
	if halTexture == nil || desc == nil {
		return nil, ErrNilTexture
	}
	if desc.Size.Width == 0 || desc.Size.Height == 0 {
		return nil, ErrInvalidTextureSize
	}
	d := *desc
	if d.MipLevelCount == 0 {
		d.MipLevelCount = 1
	}
	if d.Size.DepthOrArrayLayers == 0 {
		d.Size.DepthOrArrayLayers = 1
	}
	return &Texture{halTexture: halTexture, descriptor: d, state: state}, nil
}

// Label returns the texture's debug label.
func (t *Texture) Label() string { return t.descriptor.Label }

// Width returns the texture width in pixels.
func (t *Texture) Width() uint32 { return t.descriptor.Size.Width }

// Height returns the texture height in pixels.
func (t *Texture) Height() uint32 { return t.descriptor.Size.Height }

// Resolution returns the texture size.
func (t *Texture) Resolution() Resolution {
	return Resolution{Width: t.descriptor.Size.Width, Height: t.descriptor.Size.Height}
}

// Format returns the texture pixel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.descriptor.Format }

// Usage returns the usage flags the texture was created with.
func (t *Texture) Usage() gputypes.TextureUsage { return t.descriptor.Usage }

// IsStorage reports whether the texture can be bound for read-write access.
func (t *Texture) IsStorage() bool {
	return t.descriptor.Usage&gputypes.TextureUsageStorageBinding != 0
}

// Raw returns the underlying HAL texture.
func (t *Texture) Raw() hal.Texture { return t.halTexture }

// State returns the tracked usage, or zero if unknown.
func (t *Texture) State() gputypes.TextureUsage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// SetState records a transition the host performed itself.
func (t *Texture) SetState(usage gputypes.TextureUsage) {
	t.mu.Lock()
	t.state = usage
	t.mu.Unlock()
}

// TextureView is a view of a Texture.
type TextureView struct {
	halView hal.TextureView
	texture *Texture
}

// NewTextureView wraps a hal.TextureView created from texture.
func NewTextureView(halView hal.TextureView, texture *Texture) (*TextureView, error) {
	if halView == nil || texture == nil {
		return nil, ErrNilTexture
	}
	return &TextureView{halView: halView, texture: texture}, nil
}

// Texture returns the parent texture.
func (v *TextureView) Texture() *Texture { return v.texture }

// Raw returns the underlying HAL texture view.
func (v *TextureView) Raw() hal.TextureView { return v.halView }
