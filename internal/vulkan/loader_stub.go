// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !vulkan

package vulkan

import (
	"github.com/gogpu/dlss"
	"github.com/gogpu/dlss/ngx"
)

// Loader enumerates what the system Vulkan loader offers.
type Loader struct{}

// NewLoader returns ErrUnavailable in this build.
func NewLoader() (*Loader, error) { return nil, ErrUnavailable }

// InstanceExtensions implements dlss.ExtensionSource.
func (*Loader) InstanceExtensions() ([]string, error) { return nil, ErrUnavailable }

// DeviceExtensions implements dlss.ExtensionSource.
func (*Loader) DeviceExtensions(uintptr) ([]string, error) { return nil, ErrUnavailable }

// Instance is a created VkInstance.
type Instance struct{}

// CreateInstance returns a routine that fails with ErrUnavailable.
func (*Loader) CreateInstance(string, []string) func(dlss.ExtensionHook) (*Instance, error) {
	return func(dlss.ExtensionHook) (*Instance, error) { return nil, ErrUnavailable }
}

// Handle returns zero.
func (*Instance) Handle() uintptr { return 0 }

// Extensions returns nil.
func (*Instance) Extensions() []string { return nil }

// Destroy does nothing.
func (*Instance) Destroy() {}

// PhysicalDevices returns ErrUnavailable.
func (*Instance) PhysicalDevices() ([]PhysicalDevice, error) { return nil, ErrUnavailable }

// Device is a created VkDevice.
type Device struct{}

// RequestDevice returns a routine that fails with ErrUnavailable.
func (*Instance) RequestDevice(PhysicalDevice, []string) func(dlss.ExtensionHook) (*Device, error) {
	return func(dlss.ExtensionHook) (*Device, error) { return nil, ErrUnavailable }
}

// Native returns zero handles.
func (*Device) Native() ngx.NativeDevice { return ngx.NativeDevice{} }

// QueueFamily returns zero.
func (*Device) QueueFamily() uint32 { return 0 }

// Queue returns zero.
func (*Device) Queue() uintptr { return 0 }

// Extensions returns nil.
func (*Device) Extensions() []string { return nil }

// Destroy does nothing.
func (*Device) Destroy() {}
