// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/google/uuid"

	"github.com/gogpu/dlss/internal/cache"
	"github.com/gogpu/dlss/ngx"
)

// Defaults for the application identification passed to the runtime.
const (
	DefaultEngineVersion       = "1.0"
	DefaultApplicationDataPath = "."
)

// SDK is the application-wide runtime session for one device.
//
// It owns the runtime's parameter block. Feature contexts share it and take
// its lock for the duration of each creation, evaluation or release call,
// never for their whole lifetime. Create one SDK after the device and close
// it after every feature context is closed.
type SDK struct {
	mu sync.Mutex

	runtime ngx.Runtime
	native  ngx.NativeDevice
	app     ngx.ApplicationInfo
	params  ngx.Parameters

	// settings remembers optimal settings answers until Close.
	settings *cache.Cache[settingsKey, ngx.OptimalSettings]

	refs   int
	closed bool
}

// settingsCapacity bounds the remembered optimal settings answers.
const settingsCapacity = 64

type settingsKey struct {
	feature Feature
	output  Resolution
	quality ngx.PerfQualityValue
}

// SDKOption configures NewSDK.
type SDKOption func(*ngx.ApplicationInfo)

// WithEngineVersion sets the engine version reported to the runtime.
func WithEngineVersion(v string) SDKOption {
	return func(a *ngx.ApplicationInfo) {
		if v != "" {
			a.EngineVersion = v
		}
	}
}

// WithApplicationDataPath sets where the runtime writes logs and caches.
func WithApplicationDataPath(path string) SDKOption {
	return func(a *ngx.ApplicationInfo) {
		if path != "" {
			a.ApplicationDataPath = path
		}
	}
}

// NewSDK initializes the runtime on gpu's device.
// projectID must be the same id used during extension negotiation.
func NewSDK(rt ngx.Runtime, projectID uuid.UUID, gpu GPU, opts ...SDKOption) (*SDK, error) {
	if rt == nil {
		return nil, ngx.ErrRuntimeUnavailable
	}
	if gpu.Backend() != gputypes.BackendVulkan {
		return nil, fmt.Errorf("%w (got %v)", ErrUnsupportedBackend, gpu.Backend())
	}

	app := applicationInfo(projectID, opts)
	native := gpu.Native()
	if err := rt.Init(app, native); err != nil {
		return nil, runtimeError("init", err)
	}

	params, err := rt.CapabilityParameters()
	if err != nil {
		if serr := rt.Shutdown(native); serr != nil {
			slogger().Error("dlss: shutdown after failed init", "error", serr)
		}
		return nil, runtimeError("capability parameters", err)
	}

	slogger().Info("dlss: SDK initialized",
		"runtime", rt.Name(),
		"project", projectID.String(),
		"engine_version", app.EngineVersion)

	return &SDK{
		runtime:  rt,
		native:   native,
		app:      app,
		params:   params,
		settings: cache.New[settingsKey, ngx.OptimalSettings](settingsCapacity),
	}, nil
}

func applicationInfo(projectID uuid.UUID, opts []SDKOption) ngx.ApplicationInfo {
	app := ngx.ApplicationInfo{
		ProjectID:           projectID,
		EngineVersion:       DefaultEngineVersion,
		ApplicationDataPath: DefaultApplicationDataPath,
	}
	for _, opt := range opts {
		opt(&app)
	}
	return app
}

// ProjectID returns the project id the runtime was initialized with.
func (s *SDK) ProjectID() uuid.UUID { return s.app.ProjectID }

// Runtime returns the runtime the SDK drives.
func (s *SDK) Runtime() ngx.Runtime { return s.runtime }

// withParameters runs fn with exclusive access to the parameter block.
func (s *SDK) withParameters(fn func(rt ngx.Runtime, params ngx.Parameters) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSDKClosed
	}
	return fn(s.runtime, s.params)
}

// retain registers a feature context.
func (s *SDK) retain() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSDKClosed
	}
	s.refs++
	return nil
}

// release unregisters a feature context.
func (s *SDK) release() {
	s.mu.Lock()
	s.refs--
	s.mu.Unlock()
}

// RenderResolution reports the render resolution and dynamic resolution
// window feature would use for output at preset, without creating it. Only
// super resolution has a window wider than the render resolution.
func (s *SDK) RenderResolution(feature Feature, output Resolution, preset PerfQualityMode) (Resolution, ResolutionRange, error) {
	if output.IsZero() {
		return Resolution{}, ResolutionRange{}, fmt.Errorf("%w: output %v", ErrInvalidResolution, output)
	}
	var (
		render Resolution
		window ResolutionRange
	)
	err := s.withParameters(func(rt ngx.Runtime, params ngx.Parameters) error {
		var err error
		render, window, err = s.renderSettings(rt, params, feature, output, preset, feature == FeatureSuperResolution)
		return err
	})
	return render, window, err
}

// Close destroys the parameter block and shuts the runtime down.
// It returns ErrSDKInUse while feature contexts are open. Closing twice is
// a no-op.
func (s *SDK) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	if s.refs > 0 {
		return fmt.Errorf("%w (%d open)", ErrSDKInUse, s.refs)
	}
	s.closed = true
	s.settings.Clear()

	var errs []error
	if err := s.runtime.DestroyParameters(s.params); err != nil {
		errs = append(errs, runtimeError("destroy parameters", err))
	}
	if err := s.runtime.Shutdown(s.native); err != nil {
		errs = append(errs, runtimeError("shutdown", err))
	}
	if err := errors.Join(errs...); err != nil {
		slogger().Error("dlss: SDK shutdown failed", "error", err)
		return err
	}
	slogger().Info("dlss: SDK shut down")
	return nil
}
