// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/dlss/ngx"
)

// ErrNoHALProvider is returned when a device provider does not expose its
// HAL device and queue.
var ErrNoHALProvider = errors.New("dlss: provider does not expose HAL types")

// HALDevice implements GPU over a gogpu/wgpu HAL device and queue.
type HALDevice struct {
	device  hal.Device
	queue   hal.Queue
	backend gputypes.Backend
	native  ngx.NativeDevice

	commandBuffer NativeCommandBuffer
}

// DeviceOption configures a HALDevice.
type DeviceOption func(*HALDevice)

// WithNativeCommandBuffer sets how the VkCommandBuffer behind a HAL encoder
// is found. By default the encoder must have a NativeHandle method.
func WithNativeCommandBuffer(fn NativeCommandBuffer) DeviceOption {
	return func(h *HALDevice) {
		if fn != nil {
			h.commandBuffer = fn
		}
	}
}

// NewHALDevice wraps a HAL device and queue. backend is the API the device
// was created with; only Vulkan is accepted.
func NewHALDevice(device hal.Device, queue hal.Queue, backend gputypes.Backend, native ngx.NativeDevice, opts ...DeviceOption) (*HALDevice, error) {
	if backend != gputypes.BackendVulkan {
		return nil, fmt.Errorf("%w (got %v)", ErrUnsupportedBackend, backend)
	}
	if device == nil || queue == nil {
		return nil, ErrNoHALProvider
	}
	h := &HALDevice{
		device:        device,
		queue:         queue,
		backend:       backend,
		native:        native,
		commandBuffer: defaultNativeCommandBuffer,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// DeviceFromProvider builds a HALDevice from a host's device provider. The
// provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func DeviceFromProvider(provider gpucontext.DeviceProvider, backend gputypes.Backend, native ngx.NativeDevice, opts ...DeviceOption) (*HALDevice, error) {
	if backend != gputypes.BackendVulkan {
		return nil, fmt.Errorf("%w (got %v)", ErrUnsupportedBackend, backend)
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	return NewHALDevice(device, queue, backend, native, opts...)
}

// Backend implements GPU.
func (h *HALDevice) Backend() gputypes.Backend { return h.backend }

// Native implements GPU.
func (h *HALDevice) Native() ngx.NativeDevice { return h.native }

// Recorder adapts a HAL encoder that is already recording, typically the
// host's frame encoder, for Render.
func (h *HALDevice) Recorder(enc hal.CommandEncoder) (CommandRecorder, error) {
	if enc == nil {
		return nil, ErrNilEncoder
	}
	cmd, ok := h.commandBuffer(enc)
	if !ok {
		return nil, ErrNativeCommandBuffer
	}
	return &halRecorder{CommandEncoder: enc, cmd: cmd}, nil
}

// BeginCommands implements GPU.
func (h *HALDevice) BeginCommands(label string) (CommandRecorder, error) {
	enc, err := h.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("dlss: create command encoder: %w", err)
	}
	if err := enc.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("dlss: begin encoding: %w", err)
	}
	rec, err := h.Recorder(enc)
	if err != nil {
		enc.DiscardEncoding()
		return nil, err
	}
	return rec, nil
}

// Submit implements GPU. It blocks until the device is idle so work
// recorded into rec has finished when it returns. If that wait fails the
// command buffer stays allocated, since the GPU may still be reading it.
func (h *HALDevice) Submit(rec CommandRecorder) error {
	hr, ok := rec.(*halRecorder)
	if !ok {
		return fmt.Errorf("dlss: submit: recorder %T was not created by this device", rec)
	}
	cmdBuf, err := hr.EndEncoding()
	if err != nil {
		return fmt.Errorf("dlss: end encoding: %w", err)
	}
	if _, err := h.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		h.device.FreeCommandBuffer(cmdBuf)
		return fmt.Errorf("dlss: submit: %w", err)
	}
	if err := h.WaitIdle(); err != nil {
		slogger().Error("dlss: command buffer leaked, device did not go idle", "error", err)
		return err
	}
	h.device.FreeCommandBuffer(cmdBuf)
	return nil
}

// Discard implements GPU.
func (h *HALDevice) Discard(rec CommandRecorder) {
	if hr, ok := rec.(*halRecorder); ok {
		hr.DiscardEncoding()
	}
}

// WaitIdle implements GPU.
func (h *HALDevice) WaitIdle() error {
	if err := h.device.WaitIdle(); err != nil {
		return fmt.Errorf("dlss: wait for GPU idle: %w", err)
	}
	return nil
}
