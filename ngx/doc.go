// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ngx is the boundary to the NVIDIA NGX runtime that hosts DLSS.
//
// The package declares the Go mirror of the native structures the runtime
// consumes (resources, creation and evaluation parameters), the [Result]
// status codes it returns, and the [Runtime] interface the rest of the module
// programs against. Implementations are selected through a registry modeled
// on gg's backend registry:
//
//	rt, err := ngx.Default()
//	if errors.Is(err, ngx.ErrRuntimeUnavailable) {
//	    // DLSS not compiled in; run without upscaling.
//	}
//
// # Native binding
//
// The cgo binding to the NGX SDK is only compiled with the ngx build tag:
//
//	CGO_CFLAGS="-I$DLSS_SDK/include" \
//	CGO_LDFLAGS="-L$DLSS_SDK/lib/Linux_x86_64" \
//	go build -tags ngx ./...
//
// Without the tag no runtime is registered and [Default] reports
// [ErrRuntimeUnavailable]. Tests substitute their own [Runtime].
package ngx
