// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"slices"
	"sync"
)

// ExtensionArgs is the extension list an instance or device creation call
// is about to request.
type ExtensionArgs struct {
	Extensions []string
}

// Add appends names not already present.
func (a *ExtensionArgs) Add(names ...string) {
	for _, name := range names {
		if !slices.Contains(a.Extensions, name) {
			a.Extensions = append(a.Extensions, name)
		}
	}
}

// ExtensionHook is called by an instance or device creation routine before
// it creates the object. A returned error must abort the creation.
type ExtensionHook func(args *ExtensionArgs) error

// Negotiator decides which features survive instance and device creation
// and injects the extensions they need.
//
// A feature whose extensions or hardware requirements are missing is marked
// unsupported and creation continues. A failing query aborts creation.
type Negotiator struct {
	query    *CapabilityQuery
	features []Feature

	mu      sync.Mutex
	support FeatureSupport
}

// NewNegotiator negotiates the given features, or every feature if none
// are given.
func NewNegotiator(query *CapabilityQuery, features ...Feature) *Negotiator {
	if len(features) == 0 {
		features = Features
	}
	n := &Negotiator{query: query, features: slices.Clone(features)}
	for _, f := range n.features {
		n.support.set(f, true)
	}
	return n
}

// InstanceHook returns the hook for instance creation.
func (n *Negotiator) InstanceHook() ExtensionHook {
	return func(args *ExtensionArgs) error {
		return n.negotiate(ScopeInstance, DeviceTarget{}, args)
	}
}

// DeviceHook returns the hook for creating a device on target.
func (n *Negotiator) DeviceHook(target DeviceTarget) ExtensionHook {
	return func(args *ExtensionArgs) error {
		return n.negotiate(ScopeDevice, target, args)
	}
}

// Support returns the current feature support record.
func (n *Negotiator) Support() FeatureSupport {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.support
}

func (n *Negotiator) negotiate(scope Scope, target DeviceTarget, args *ExtensionArgs) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, f := range n.features {
		if !n.support.Supported(f) {
			continue
		}
		req, err := n.query.Requirements(f, scope, target)
		if err != nil {
			return err
		}
		if !req.Satisfied {
			n.support.set(f, false)
			slogger().Warn("dlss: feature unsupported",
				"feature", f.String(),
				"scope", scope.String(),
				"missing", req.Missing,
				"hardware_supported", req.Hardware == nil || req.Hardware.Supported)
			continue
		}
		args.Add(req.Extensions...)
		slogger().Debug("dlss: extensions requested",
			"feature", f.String(),
			"scope", scope.String(),
			"extensions", req.Extensions)
	}
	return nil
}

// destroyer is implemented by instances and devices that can be torn down.
type destroyer interface {
	Destroy()
}

// CreateInstance runs an instance creation routine that calls hook. If the
// hook fails the instance is destroyed (when the routine returned one) and
// the hook's error is returned with the zero instance.
func CreateInstance[I any](hook ExtensionHook, create func(ExtensionHook) (I, error)) (I, error) {
	return runCreation(hook, create)
}

// RequestDevice is CreateInstance for device creation.
func RequestDevice[D any](hook ExtensionHook, request func(ExtensionHook) (D, error)) (D, error) {
	return runCreation(hook, request)
}

func runCreation[T any](hook ExtensionHook, create func(ExtensionHook) (T, error)) (T, error) {
	var hookErr error
	guarded := func(args *ExtensionArgs) error {
		if hookErr != nil {
			return hookErr
		}
		hookErr = hook(args)
		return hookErr
	}

	obj, err := create(guarded)
	if hookErr != nil {
		if err == nil {
			if d, ok := any(obj).(destroyer); ok {
				d.Destroy()
			}
		}
		var zero T
		return zero, hookErr
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return obj, nil
}
