// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ngx

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestResultFailed(t *testing.T) {
	tests := []struct {
		r    Result
		want bool
	}{
		{ResultSuccess, false},
		{ResultFail, true},
		{ResultFeatureNotSupported, true},
		{ResultNotImplemented, true},
		{Result(0), false},
		{Result(0xBAD0FFFF), true},
		{Result(0xBAE00000), false},
	}
	for _, tt := range tests {
		if got := tt.r.Failed(); got != tt.want {
			t.Errorf("Result(0x%08X).Failed() = %v, want %v", uint32(tt.r), got, tt.want)
		}
	}
}

func TestResultError(t *testing.T) {
	tests := []struct {
		r    Result
		want string
	}{
		{ResultOutOfDate, "runtime or driver out of date (0xBAD0000C)"},
		{ResultSuccess, "success (0x00000001)"},
		{Result(0xBAD00FFF), "unknown failure (0xBAD00FFF)"},
	}
	for _, tt := range tests {
		got := tt.r.Error()
		if !strings.HasPrefix(got, "ngx: ") || !strings.HasSuffix(got, tt.want) {
			t.Errorf("Error() = %q, want suffix %q", got, tt.want)
		}
	}
}

func TestCheck(t *testing.T) {
	if err := Check(ResultSuccess); err != nil {
		t.Errorf("Check(ResultSuccess) = %v, want nil", err)
	}
	err := Check(ResultOutOfGPUMemory)
	if err == nil {
		t.Fatal("Check(ResultOutOfGPUMemory) = nil")
	}

	wrapped := fmt.Errorf("create: %w", err)
	var r Result
	if !errors.As(wrapped, &r) || r != ResultOutOfGPUMemory {
		t.Errorf("errors.As recovered %v, want ResultOutOfGPUMemory", r)
	}
	if !errors.Is(wrapped, ResultOutOfGPUMemory) {
		t.Error("errors.Is does not match the wrapped result")
	}
}

func TestFeatureString(t *testing.T) {
	if got := FeatureSuperSampling.String(); got != "SuperSampling" {
		t.Errorf("String() = %q", got)
	}
	if got := FeatureRayReconstruction.String(); got != "RayReconstruction" {
		t.Errorf("String() = %q", got)
	}
	if got := Feature(99).String(); got != "Feature(99)" {
		t.Errorf("String() = %q", got)
	}
}
