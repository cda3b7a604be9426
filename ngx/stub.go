// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !ngx || !cgo

package ngx

// Compiled reports whether the native NGX binding is part of this build.
// Without the ngx build tag (or without cgo) nothing registers under
// NameNVSDK, so Default returns ErrRuntimeUnavailable unless a test or host
// registers its own runtime.
const Compiled = false
