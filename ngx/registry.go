// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ngx

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// NameNVSDK is the registry name of the cgo binding to the NGX SDK.
const NameNVSDK = "nvsdk"

// ErrRuntimeUnavailable is returned when no runtime implementation is
// registered under the requested name.
var ErrRuntimeUnavailable = errors.New("ngx: runtime not available")

// Factory creates a runtime instance.
type Factory func() (Runtime, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for Default (first registered wins).
	runtimePriority = []string{NameNVSDK}
)

// Register registers a runtime factory with the given name.
// This is typically called from init() functions of build-tagged bindings.
// Registering an existing name replaces it.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a runtime from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the sorted names of registered runtimes.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates the runtime registered under name.
func Open(name string) (Runtime, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRuntimeUnavailable, name)
	}
	rt, err := factory()
	if err != nil {
		return nil, fmt.Errorf("ngx: open %q: %w", name, err)
	}
	return rt, nil
}

// Default opens the highest-priority registered runtime, falling back to
// any registered runtime in name order.
func Default() (Runtime, error) {
	for _, name := range runtimePriority {
		registryMu.RLock()
		_, ok := factories[name]
		registryMu.RUnlock()
		if ok {
			return Open(name)
		}
	}
	if names := Available(); len(names) > 0 {
		return Open(names[0])
	}
	return nil, ErrRuntimeUnavailable
}
