// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"slices"

	"github.com/google/uuid"

	"github.com/gogpu/dlss/ngx"
)

// Scope is the level an extension requirement applies to.
type Scope uint8

// Scopes.
const (
	ScopeInstance Scope = iota
	ScopeDevice
)

// String returns the scope name.
func (s Scope) String() string {
	if s == ScopeDevice {
		return "device"
	}
	return "instance"
}

// ExtensionSource lists what the Vulkan loader and a physical device offer.
type ExtensionSource interface {
	// InstanceExtensions lists the instance extensions the loader can enable.
	InstanceExtensions() ([]string, error)

	// DeviceExtensions lists the extensions physicalDevice supports.
	DeviceExtensions(physicalDevice uintptr) ([]string, error)
}

// DeviceTarget identifies the physical device a device-scope query is about.
type DeviceTarget struct {
	Instance       uintptr
	PhysicalDevice uintptr
}

// Requirements is the answer to a capability query.
type Requirements struct {
	// Extensions the feature needs at the queried scope.
	Extensions []string
	// Missing lists the needed extensions that are not available.
	Missing []string
	// Hardware is the runtime's hardware and driver verdict, device scope
	// only.
	Hardware *ngx.FeatureRequirement
	// Satisfied reports whether the feature can run.
	Satisfied bool
}

// CapabilityQuery asks the runtime what a feature needs and checks it
// against what is available.
type CapabilityQuery struct {
	runtime ngx.Runtime
	source  ExtensionSource
	app     ngx.ApplicationInfo
}

// NewCapabilityQuery creates a query. projectID must match the one later
// passed to NewSDK.
func NewCapabilityQuery(rt ngx.Runtime, source ExtensionSource, projectID uuid.UUID, opts ...SDKOption) *CapabilityQuery {
	return &CapabilityQuery{
		runtime: rt,
		source:  source,
		app:     applicationInfo(projectID, opts),
	}
}

// Requirements reports the extensions feature needs at scope and whether
// they are available. At instance scope target is ignored. At device scope
// the runtime's hardware requirement must also be met.
//
// An unsatisfied feature is a normal result. A failing runtime or loader
// call returns a *RuntimeQueryError.
func (q *CapabilityQuery) Requirements(feature Feature, scope Scope, target DeviceTarget) (Requirements, error) {
	info := ngx.FeatureDiscoveryInfo{ApplicationInfo: q.app, Feature: feature.runtimeID()}
	queryErr := func(err error) error {
		return &RuntimeQueryError{Feature: feature, Scope: scope, Err: err}
	}

	var (
		needed, available []string
		err               error
	)
	switch scope {
	case ScopeDevice:
		needed, err = q.runtime.DeviceExtensionRequirements(target.Instance, target.PhysicalDevice, info)
		if err != nil {
			return Requirements{}, queryErr(err)
		}
		available, err = q.source.DeviceExtensions(target.PhysicalDevice)
	default:
		needed, err = q.runtime.InstanceExtensionRequirements(info)
		if err != nil {
			return Requirements{}, queryErr(err)
		}
		available, err = q.source.InstanceExtensions()
	}
	if err != nil {
		return Requirements{}, queryErr(err)
	}

	req := Requirements{Extensions: needed}
	for _, ext := range needed {
		if !slices.Contains(available, ext) {
			req.Missing = append(req.Missing, ext)
		}
	}
	req.Satisfied = len(req.Missing) == 0

	if scope == ScopeDevice {
		hw, err := q.runtime.FeatureRequirement(target.Instance, target.PhysicalDevice, info)
		if err != nil {
			return Requirements{}, queryErr(err)
		}
		req.Hardware = &hw
		req.Satisfied = req.Satisfied && hw.Supported
	}
	return req, nil
}
