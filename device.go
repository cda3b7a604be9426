// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/dlss/ngx"
)

// GPU is the part of a graphics device the feature contexts use.
//
// [HALDevice] implements it over gogpu/wgpu HAL objects. The indirection lets
// hosts with their own device layer plug in, and lets tests observe call
// order.
type GPU interface {
	// Backend reports the graphics API behind the device.
	Backend() gputypes.Backend

	// Native returns the raw Vulkan handles the runtime binds to.
	Native() ngx.NativeDevice

	// BeginCommands opens a dedicated command recorder.
	BeginCommands(label string) (CommandRecorder, error)

	// Submit ends a recorder from BeginCommands, submits it, and blocks
	// until the GPU has executed it.
	Submit(rec CommandRecorder) error

	// Discard abandons a recorder from BeginCommands.
	Discard(rec CommandRecorder)

	// WaitIdle blocks until all submitted work has completed.
	WaitIdle() error
}

// CommandRecorder is a command encoder in the recording state.
type CommandRecorder interface {
	// NativeHandle returns the VkCommandBuffer being recorded.
	NativeHandle() uintptr

	// TransitionTextures records texture usage transitions.
	TransitionTextures(barriers []hal.TextureBarrier)
}

// NativeCommandBuffer resolves the VkCommandBuffer behind a HAL encoder.
type NativeCommandBuffer func(enc hal.CommandEncoder) (uintptr, bool)

// nativeHandler is implemented by HAL encoders that expose their command
// buffer directly.
type nativeHandler interface {
	NativeHandle() uintptr
}

func defaultNativeCommandBuffer(enc hal.CommandEncoder) (uintptr, bool) {
	if nh, ok := enc.(nativeHandler); ok {
		h := nh.NativeHandle()
		return h, h != 0
	}
	return 0, false
}

// halRecorder adapts a hal.CommandEncoder to CommandRecorder.
type halRecorder struct {
	hal.CommandEncoder
	cmd uintptr
}

func (r *halRecorder) NativeHandle() uintptr { return r.cmd }

// Encoder wraps a recording HAL encoder whose VkCommandBuffer is already
// known to the caller.
func Encoder(enc hal.CommandEncoder, commandBuffer uintptr) CommandRecorder {
	return &halRecorder{CommandEncoder: enc, cmd: commandBuffer}
}
