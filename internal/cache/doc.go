// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a small thread-safe LRU cache.
//
// The DLSS SDK uses it to remember optimal settings answers, which hosts
// with dynamic resolution ask for every frame.
//
//	c := cache.New[key, ngx.OptimalSettings](64)
//	v, err := c.GetOrCreate(k, query)
//
// A Cache must not be copied after creation.
package cache
