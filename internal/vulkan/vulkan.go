// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vulkan creates the Vulkan instance and device the DLSS runtime
// binds to, running the extension hooks of dlss.Negotiator on the way.
//
// The loader is only linked with the vulkan build tag. Without it every
// entry point returns ErrUnavailable, which keeps the rest of the module
// buildable on machines without Vulkan headers.
package vulkan

import (
	"errors"
	"fmt"

	"github.com/gogpu/dlss"
)

// ErrUnavailable is returned when the package was built without Vulkan.
var ErrUnavailable = errors.New("vulkan: built without the vulkan tag")

// ErrNoGraphicsQueue is returned when a physical device has no graphics queue.
var ErrNoGraphicsQueue = errors.New("vulkan: no graphics queue family")

// PhysicalDevice describes one adapter.
type PhysicalDevice struct {
	Handle   uintptr
	Name     string
	VendorID uint32
	DeviceID uint32
}

// IsNVIDIA reports whether the adapter is from NVIDIA, the only vendor the
// DLSS runtime supports.
func (p PhysicalDevice) IsNVIDIA() bool { return p.VendorID == vendorNVIDIA }

// String returns the adapter name and IDs.
func (p PhysicalDevice) String() string {
	return fmt.Sprintf("%s [%04x:%04x]", p.Name, p.VendorID, p.DeviceID)
}

const vendorNVIDIA = 0x10DE

// Target returns the handles a device-scope capability query needs.
func (i *Instance) Target(pd PhysicalDevice) dlss.DeviceTarget {
	return dlss.DeviceTarget{Instance: i.Handle(), PhysicalDevice: pd.Handle}
}

var _ dlss.ExtensionSource = (*Loader)(nil)
