// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"errors"
	"fmt"

	"github.com/gogpu/dlss/ngx"
)

// Sentinel errors.
var (
	// ErrUnsupportedBackend is returned when the device is not backed by
	// Vulkan. It is checked before any native handle is touched.
	ErrUnsupportedBackend = errors.New("dlss: device is not backed by Vulkan")

	// ErrSDKInUse is returned by SDK.Close while feature contexts created
	// from the SDK are still open.
	ErrSDKInUse = errors.New("dlss: SDK still has open feature contexts")

	// ErrSDKClosed is returned when creating a feature from a closed SDK.
	ErrSDKClosed = errors.New("dlss: SDK is closed")

	// ErrContextClosed is returned when rendering with a closed feature context.
	ErrContextClosed = errors.New("dlss: feature context is closed")

	// ErrInvalidResolution is returned for zero-sized output or render sizes.
	ErrInvalidResolution = errors.New("dlss: resolution must be non-zero in both axes")

	// ErrNilEncoder is returned when Render is called without a command encoder.
	ErrNilEncoder = errors.New("dlss: command encoder is nil")

	// ErrNativeCommandBuffer is returned when a command encoder does not
	// expose its native command buffer handle.
	ErrNativeCommandBuffer = errors.New("dlss: command encoder has no native command buffer")

	// ErrUnsupportedFormat is returned when a texture format has no Vulkan
	// equivalent known to the runtime binding.
	ErrUnsupportedFormat = errors.New("dlss: texture format not supported by the runtime")
)

// Evaluation parameter validation errors.
var (
	// ErrMissingInput is returned when a required texture view is nil.
	ErrMissingInput = errors.New("dlss: required input texture is missing")

	// ErrOutputNotStorage is returned when the output texture was not created
	// with storage usage.
	ErrOutputNotStorage = errors.New("dlss: output texture lacks storage usage")

	// ErrOutputAliasesInput is returned when the output texture is also bound
	// as an input.
	ErrOutputAliasesInput = errors.New("dlss: output texture is also an input")

	// ErrInputTooSmall is returned when an input texture is smaller than the
	// evaluation subrect, or the output smaller than the upscaled resolution.
	ErrInputTooSmall = errors.New("dlss: texture smaller than the evaluated region")

	// ErrUnknownTextureState is returned when an input texture has no tracked
	// usage to transition from.
	ErrUnknownTextureState = errors.New("dlss: input texture state is unknown")

	// ErrRoughnessRequired is returned when a ray reconstruction context
	// created with unpacked roughness is rendered without a roughness view.
	ErrRoughnessRequired = errors.New("dlss: unpacked roughness requires a roughness texture")

	// ErrSpecularGuide is returned when the specular guide sets both or
	// neither of motion vectors and hit distance.
	ErrSpecularGuide = errors.New("dlss: specular guide must set exactly one of motion vectors or hit distance")
)

// RuntimeError wraps a failed runtime call.
// Errors.As on the wrapped error recovers the [ngx.Result].
type RuntimeError struct {
	Op  string
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("dlss: %s: %v", e.Op, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// Result returns the native status code, or ngx.ResultFail when the wrapped
// error did not come from the runtime.
func (e *RuntimeError) Result() ngx.Result {
	var r ngx.Result
	if errors.As(e.Err, &r) {
		return r
	}
	return ngx.ResultFail
}

// RuntimeQueryError reports a runtime failure while querying extension or
// hardware requirements. Unlike an unsupported feature it aborts instance
// and device creation.
type RuntimeQueryError struct {
	Feature Feature
	Scope   Scope
	Err     error
}

func (e *RuntimeQueryError) Error() string {
	return fmt.Sprintf("dlss: %s %s requirement query: %v", e.Feature, e.Scope, e.Err)
}

func (e *RuntimeQueryError) Unwrap() error { return e.Err }

func runtimeError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RuntimeError{Op: op, Err: err}
}
