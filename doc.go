// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dlss integrates the NVIDIA NGX neural upscaling runtime (DLSS Super
// Resolution and DLSS Ray Reconstruction) into applications built on
// gogpu/wgpu.
//
// # Overview
//
// The package covers three things:
//
//   - Extension negotiation. The runtime needs extra Vulkan instance and
//     device extensions. A [Negotiator] is handed to the instance and device
//     creation routines as a hook; it appends the extensions each feature
//     needs or, when they are missing, marks the feature unsupported in the
//     resulting [FeatureSupport] record. Creation never fails just because a
//     feature is unavailable.
//   - Feature contexts. [SuperResolution] and [RayReconstruction] each own
//     one runtime feature instance for one camera. They are expensive to
//     create: build one per camera and rebuild only when the output size,
//     preset or flags change.
//   - Per-frame evaluation. Render records the runtime's evaluation into the
//     caller's command encoder, together with the texture state transitions
//     the runtime requires.
//
// # Quick Start
//
//	neg := dlss.NewNegotiator(rt, projectID, dlss.FeatureSuperResolution)
//	instance, err := dlss.CreateInstance(neg.InstanceHook(), createInstance)
//	// ...
//	device, err := dlss.RequestDevice(neg.DeviceHook(target), requestDevice)
//	// ...
//	if !neg.Support().SuperResolution {
//	    // fall back to another upscaler
//	}
//
//	gpu, err := dlss.DeviceFromProvider(provider, native)
//	sdk, err := dlss.NewSDK(rt, projectID, gpu)
//	defer sdk.Close()
//
//	sr, err := dlss.NewSuperResolution(sdk, gpu, dlss.Resolution{Width: 3840, Height: 2160},
//	    dlss.PerfQualityAuto, dlss.FlagHDR)
//	defer sr.Close()
//
//	// every frame:
//	jitter := sr.SuggestedJitter(frame, sr.RenderResolution())
//	err = sr.Render(encoder, &dlss.SuperResolutionParams{...})
//
// # Runtime
//
// The native runtime is reached through [ngx.Runtime]. Build with the ngx
// tag (and cgo) to link the NGX SDK; without it tests and hosts can supply
// their own implementation.
//
// # Logging
//
// The package is silent by default. See [SetLogger].
package dlss
