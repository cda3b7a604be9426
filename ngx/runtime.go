// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ngx

// Runtime is the set of NGX entry points the module drives.
//
// Every method that talks to the runtime returns a failed [Result] (as error)
// when the native call reports one. Implementations hold no per-call state;
// callers serialize access to a Parameters block themselves.
type Runtime interface {
	// Name returns the registry name of the implementation.
	Name() string

	// InstanceExtensionRequirements lists the Vulkan instance extensions
	// the feature needs.
	InstanceExtensionRequirements(info FeatureDiscoveryInfo) ([]string, error)

	// DeviceExtensionRequirements lists the Vulkan device extensions the
	// feature needs on the given physical device.
	DeviceExtensionRequirements(instance, physicalDevice uintptr, info FeatureDiscoveryInfo) ([]string, error)

	// FeatureRequirement reports whether the physical device and driver
	// can run the feature at all.
	FeatureRequirement(instance, physicalDevice uintptr, info FeatureDiscoveryInfo) (FeatureRequirement, error)

	// Init binds the runtime to a created device.
	Init(app ApplicationInfo, device NativeDevice) error

	// Shutdown releases everything Init acquired for the device.
	Shutdown(device NativeDevice) error

	// CapabilityParameters returns the runtime's parameter block.
	CapabilityParameters() (Parameters, error)

	// DestroyParameters frees a parameter block.
	DestroyParameters(params Parameters) error

	// OptimalSettings queries the render resolution window for a target
	// resolution and quality value.
	OptimalSettings(params Parameters, feature Feature, target Dimensions, quality PerfQualityValue) (OptimalSettings, error)

	// CreateFeature records feature creation into the command buffer cmd.
	CreateFeature(cmd uintptr, device NativeDevice, params Parameters, create CreateParams) (Handle, error)

	// EvaluateFeature records one evaluation into the command buffer cmd.
	EvaluateFeature(cmd uintptr, handle Handle, params Parameters, eval EvalParams) error

	// ReleaseFeature destroys a feature. The GPU must not be executing
	// work that references it.
	ReleaseFeature(handle Handle) error
}
