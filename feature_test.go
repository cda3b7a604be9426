// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dlss/ngx"
)

var testOutputs = []Resolution{
	{1280, 720},
	{1920, 1080},
	{2560, 1440},
	{3440, 1440},
	{3840, 2160},
	{7680, 4320},
	{1, 1},
}

func TestRenderResolutionWithinOutput(t *testing.T) {
	presets := []PerfQualityMode{
		PerfQualityAuto, PerfQualityQuality, PerfQualityBalanced,
		PerfQualityPerformance, PerfQualityUltraPerformance,
	}
	for _, output := range testOutputs {
		for _, preset := range presets {
			env := newTestEnv(t)
			// A runtime answer above the output must still be clamped.
			if output == (Resolution{3440, 1440}) {
				env.rt.settings = func(target ngx.Dimensions, _ ngx.PerfQualityValue) ngx.OptimalSettings {
					big := ngx.Dimensions{Width: target.Width + 10, Height: target.Height + 10}
					return ngx.OptimalSettings{Optimal: big, Min: big, Max: big}
				}
			}

			sr, err := NewSuperResolution(env.sdk, env.gpu, output, preset, 0)
			if errors.Is(err, ErrInvalidResolution) && output == (Resolution{1, 1}) {
				// 1x1 scaled down rounds to zero; refusing it is correct.
				continue
			}
			if err != nil {
				t.Fatalf("NewSuperResolution(%v, %v) error = %v", output, preset, err)
			}
			render := sr.RenderResolution()
			if !render.Fits(output) {
				t.Errorf("%v %v: render %v exceeds output %v", output, preset, render, output)
			}
			rr := sr.RenderResolutionRange()
			if !rr.Max.Fits(output) || !rr.Contains(render) {
				t.Errorf("%v %v: range %v..%v inconsistent with render %v", output, preset, rr.Min, rr.Max, render)
			}

			rc, err := NewRayReconstruction(env.sdk, env.gpu, output, preset, 0, RoughnessPacked, DepthHardware)
			if err != nil {
				t.Fatalf("NewRayReconstruction(%v, %v) error = %v", output, preset, err)
			}
			if !rc.RenderResolution().Fits(output) {
				t.Errorf("%v %v: ray reconstruction render %v exceeds output", output, preset, rc.RenderResolution())
			}
		}
	}
}

func TestDLAAMatchesOutput(t *testing.T) {
	for _, output := range testOutputs {
		env := newTestEnv(t)
		sr, err := NewSuperResolution(env.sdk, env.gpu, output, PerfQualityDLAA, 0)
		if err != nil {
			t.Fatalf("NewSuperResolution(%v, DLAA) error = %v", output, err)
		}
		if got := sr.RenderResolution(); got != output {
			t.Errorf("DLAA render = %v, want %v", got, output)
		}
		if got := sr.RenderResolutionRange(); got.Min != output || got.Max != output {
			t.Errorf("DLAA range = %v..%v, want %v", got.Min, got.Max, output)
		}

		rc, err := NewRayReconstruction(env.sdk, env.gpu, output, PerfQualityDLAA, 0, RoughnessUnpacked, DepthLinear)
		if err != nil {
			t.Fatalf("NewRayReconstruction(%v, DLAA) error = %v", output, err)
		}
		if got := rc.RenderResolution(); got != output {
			t.Errorf("DLAA ray reconstruction render = %v, want %v", got, output)
		}
	}
}

func TestCreateSequence(t *testing.T) {
	env := newTestEnv(t)
	if _, err := NewSuperResolution(env.sdk, env.gpu, Resolution{1920, 1080}, PerfQualityQuality, 0); err != nil {
		t.Fatalf("NewSuperResolution() error = %v", err)
	}

	got := env.log.snapshot()
	want := []string{"init", "capability-parameters", "optimal-settings", "begin", "create", "submit"}
	if !slices.Equal(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if len(env.rt.commands) != 1 || env.rt.commands[0] != env.gpu.recorders[0].handle {
		t.Errorf("create recorded into %v, want the dedicated command buffer %#x", env.rt.commands, env.gpu.recorders[0].handle)
	}
}

func TestCreateParams(t *testing.T) {
	env := newTestEnv(t)
	output := Resolution{3840, 2160}
	flags := FlagHDR | FlagInvertedDepth | FlagOutputSubrect

	sr, err := NewSuperResolution(env.sdk, env.gpu, output, PerfQualityPerformance, flags)
	if err != nil {
		t.Fatalf("NewSuperResolution() error = %v", err)
	}
	p, ok := env.rt.created[0].(*ngx.DLSSCreateParams)
	if !ok {
		t.Fatalf("created %T, want *ngx.DLSSCreateParams", env.rt.created[0])
	}
	wantBase := ngx.FeatureCreateParams{
		Width:        sr.RenderResolution().Width,
		Height:       sr.RenderResolution().Height,
		TargetWidth:  3840,
		TargetHeight: 2160,
		PerfQuality:  ngx.PerfQualityMaxPerf,
	}
	if p.Base != wantBase {
		t.Errorf("Base = %+v, want %+v", p.Base, wantBase)
	}
	if p.Flags != ngx.FlagIsHDR|ngx.FlagDepthInverted {
		t.Errorf("Flags = %#x, want IsHDR|DepthInverted", p.Flags)
	}
	if !p.EnableOutputSubrects {
		t.Error("EnableOutputSubrects = false, want true")
	}

	if _, err := NewRayReconstruction(env.sdk, env.gpu, output, PerfQualityQuality, 0, RoughnessPacked, DepthHardware); err != nil {
		t.Fatalf("NewRayReconstruction() error = %v", err)
	}
	d, ok := env.rt.created[1].(*ngx.DLSSDCreateParams)
	if !ok {
		t.Fatalf("created %T, want *ngx.DLSSDCreateParams", env.rt.created[1])
	}
	if d.DenoiseMode != ngx.DenoiseModeDLUnified {
		t.Errorf("DenoiseMode = %v, want DLUnified", d.DenoiseMode)
	}
	if d.RoughnessMode != ngx.RoughnessModePacked {
		t.Errorf("RoughnessMode = %v, want Packed", d.RoughnessMode)
	}
	if d.DepthType != ngx.DepthTypeHardware {
		t.Errorf("DepthType = %v, want Hardware", d.DepthType)
	}
	if d.EnableOutputSubrects {
		t.Error("EnableOutputSubrects = true, want false")
	}
}

func TestCreateQualityValue(t *testing.T) {
	tests := []struct {
		output Resolution
		preset PerfQualityMode
		want   ngx.PerfQualityValue
	}{
		{Resolution{1920, 1080}, PerfQualityAuto, ngx.PerfQualityMaxQuality},
		{Resolution{2560, 1440}, PerfQualityAuto, ngx.PerfQualityMaxQuality},
		{Resolution{3840, 2160}, PerfQualityAuto, ngx.PerfQualityMaxPerf},
		{Resolution{7680, 4320}, PerfQualityAuto, ngx.PerfQualityUltraPerformance},
		{Resolution{1920, 1080}, PerfQualityBalanced, ngx.PerfQualityBalanced},
		{Resolution{1920, 1080}, PerfQualityDLAA, ngx.PerfQualityDLAA},
	}
	for _, tt := range tests {
		env := newTestEnv(t)
		if _, err := NewSuperResolution(env.sdk, env.gpu, tt.output, tt.preset, 0); err != nil {
			t.Fatalf("NewSuperResolution() error = %v", err)
		}
		if got := env.rt.qualities[0]; got != tt.want {
			t.Errorf("%v %v: quality = %d, want %d", tt.output, tt.preset, got, tt.want)
		}
	}
}

func TestCreateErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*testEnv)
		output  Resolution
		wantErr error
		want    []string // calls after SDK setup
	}{
		{
			name:    "zero output",
			output:  Resolution{0, 1080},
			wantErr: ErrInvalidResolution,
		},
		{
			name:    "wrong backend",
			setup:   func(e *testEnv) { e.gpu.backend = gputypes.BackendMetal },
			output:  Resolution{1920, 1080},
			wantErr: ErrUnsupportedBackend,
		},
		{
			name:    "runtime create failure",
			setup:   func(e *testEnv) { e.rt.createErr = ngx.ResultFeatureNotSupported },
			output:  Resolution{1920, 1080},
			wantErr: ngx.ResultFeatureNotSupported,
			want:    []string{"optimal-settings", "begin", "create", "discard"},
		},
		{
			name:    "submit failure",
			setup:   func(e *testEnv) { e.gpu.submitErr = errors.New("device lost") },
			output:  Resolution{1920, 1080},
			wantErr: nil,
			want:    []string{"optimal-settings", "begin", "create", "submit", "wait-idle", "release"},
		},
		{
			// Creation work may still reference the handle, so it is leaked.
			name: "submit failure without idle device",
			setup: func(e *testEnv) {
				e.gpu.submitErr = errors.New("device lost")
				e.gpu.waitErr = errors.New("device lost")
			},
			output: Resolution{1920, 1080},
			want:   []string{"optimal-settings", "begin", "create", "submit", "wait-idle"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tt.setup != nil {
				tt.setup(env)
			}
			before := len(env.log.snapshot())

			sr, err := NewSuperResolution(env.sdk, env.gpu, tt.output, PerfQualityQuality, 0)
			if err == nil {
				t.Fatal("NewSuperResolution() error = nil")
			}
			if sr != nil {
				t.Error("NewSuperResolution() returned a context on failure")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.want != nil {
				if got := env.log.snapshot()[before:]; !slices.Equal(got, tt.want) {
					t.Errorf("calls = %v, want %v", got, tt.want)
				}
			}
			// No reference may leak from a failed creation.
			if err := env.sdk.Close(); err != nil {
				t.Errorf("SDK.Close() after failed creation = %v", err)
			}
		})
	}
}

func TestCreateRuntimeErrorType(t *testing.T) {
	env := newTestEnv(t)
	env.rt.createErr = ngx.ResultOutOfGPUMemory

	_, err := NewRayReconstruction(env.sdk, env.gpu, Resolution{1920, 1080}, PerfQualityQuality, 0, RoughnessUnpacked, DepthLinear)
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("error = %v, want *RuntimeError", err)
	}
	if rerr.Result() != ngx.ResultOutOfGPUMemory {
		t.Errorf("Result() = %v, want ResultOutOfGPUMemory", rerr.Result())
	}
}

func TestCloseWaitsIdleBeforeRelease(t *testing.T) {
	env := newTestEnv(t)
	sr, err := NewSuperResolution(env.sdk, env.gpu, Resolution{1920, 1080}, PerfQualityQuality, 0)
	if err != nil {
		t.Fatalf("NewSuperResolution() error = %v", err)
	}
	rc, err := NewRayReconstruction(env.sdk, env.gpu, Resolution{1920, 1080}, PerfQualityQuality, 0, RoughnessUnpacked, DepthLinear)
	if err != nil {
		t.Fatalf("NewRayReconstruction() error = %v", err)
	}

	for name, closer := range map[string]func() error{"super resolution": sr.Close, "ray reconstruction": rc.Close} {
		before := len(env.log.snapshot())
		if err := closer(); err != nil {
			t.Fatalf("%s Close() error = %v", name, err)
		}
		got := env.log.snapshot()[before:]
		if want := []string{"wait-idle", "release"}; !slices.Equal(got, want) {
			t.Errorf("%s close calls = %v, want %v", name, got, want)
		}
	}

	// Closing again does nothing.
	if err := sr.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if n := env.log.count("release"); n != 2 {
		t.Errorf("release called %d times, want 2", n)
	}
	if err := env.sdk.Close(); err != nil {
		t.Errorf("SDK.Close() error = %v", err)
	}
}

func TestCloseWaitIdleFailure(t *testing.T) {
	env := newTestEnv(t)
	sr, err := NewSuperResolution(env.sdk, env.gpu, Resolution{1920, 1080}, PerfQualityQuality, 0)
	if err != nil {
		t.Fatalf("NewSuperResolution() error = %v", err)
	}
	env.gpu.waitErr = errors.New("device lost")

	if err := sr.Close(); err == nil {
		t.Fatal("Close() error = nil, want wait failure")
	}
	if env.log.index("release") >= 0 {
		t.Error("feature released although the device never went idle")
	}
	if err := env.sdk.Close(); !errors.Is(err, ErrSDKInUse) {
		t.Errorf("SDK.Close() = %v, want ErrSDKInUse", err)
	}
}

func TestRenderAfterClose(t *testing.T) {
	env := newTestEnv(t)
	output := Resolution{1920, 1080}
	sr, err := NewSuperResolution(env.sdk, env.gpu, output, PerfQualityDLAA, 0)
	if err != nil {
		t.Fatalf("NewSuperResolution() error = %v", err)
	}
	params := superResolutionParams(t, output)
	if err := sr.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := sr.Render(&fakeRecorder{handle: 1}, params); !errors.Is(err, ErrContextClosed) {
		t.Errorf("Render() after Close = %v, want ErrContextClosed", err)
	}
}

func TestSDKLifecycle(t *testing.T) {
	env := newTestEnv(t)
	sr, err := NewSuperResolution(env.sdk, env.gpu, Resolution{1920, 1080}, PerfQualityQuality, 0)
	if err != nil {
		t.Fatalf("NewSuperResolution() error = %v", err)
	}
	if err := env.sdk.Close(); !errors.Is(err, ErrSDKInUse) {
		t.Fatalf("SDK.Close() with open context = %v, want ErrSDKInUse", err)
	}
	if err := sr.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := env.sdk.Close(); err != nil {
		t.Fatalf("SDK.Close() error = %v", err)
	}
	if err := env.sdk.Close(); err != nil {
		t.Errorf("second SDK.Close() error = %v", err)
	}
	if env.log.count("shutdown") != 1 || env.log.count("destroy-parameters") != 1 {
		t.Errorf("calls = %v, want one destroy-parameters and one shutdown", env.log.snapshot())
	}
	if _, err := NewSuperResolution(env.sdk, env.gpu, Resolution{1920, 1080}, PerfQualityQuality, 0); !errors.Is(err, ErrSDKClosed) {
		t.Errorf("NewSuperResolution() on closed SDK = %v, want ErrSDKClosed", err)
	}
}

func TestNewSDKErrors(t *testing.T) {
	log := &callLog{}

	rt := newFakeRuntime(log)
	rt.initErr = ngx.ResultOutOfDate
	if _, err := NewSDK(rt, testProjectID, newFakeGPU(log)); !errors.Is(err, ngx.ResultOutOfDate) {
		t.Errorf("NewSDK() with failing init = %v, want ResultOutOfDate", err)
	}

	rt = newFakeRuntime(log)
	rt.paramsErr = ngx.ResultNotInitialized
	before := len(log.snapshot())
	if _, err := NewSDK(rt, testProjectID, newFakeGPU(log)); !errors.Is(err, ngx.ResultNotInitialized) {
		t.Errorf("NewSDK() with failing parameters = %v, want ResultNotInitialized", err)
	}
	if got := log.snapshot()[before:]; !slices.Contains(got, "shutdown") {
		t.Errorf("calls = %v, want shutdown after failed parameter query", got)
	}

	gpu := newFakeGPU(log)
	gpu.backend = gputypes.BackendMetal
	if _, err := NewSDK(newFakeRuntime(log), testProjectID, gpu); !errors.Is(err, ErrUnsupportedBackend) {
		t.Errorf("NewSDK() on Metal = %v, want ErrUnsupportedBackend", err)
	}
}

func TestSuggestedJitterPerMode(t *testing.T) {
	env := newTestEnv(t)
	output := Resolution{1920, 1080}
	sr, err := NewSuperResolution(env.sdk, env.gpu, output, PerfQualityDLAA, 0)
	if err != nil {
		t.Fatalf("NewSuperResolution() error = %v", err)
	}
	rc, err := NewRayReconstruction(env.sdk, env.gpu, output, PerfQualityDLAA, 0, RoughnessUnpacked, DepthLinear)
	if err != nil {
		t.Fatalf("NewRayReconstruction() error = %v", err)
	}

	// At native resolution ray reconstruction cycles every 8 frames,
	// super resolution every 32.
	if rc.SuggestedJitter(3, output) != rc.SuggestedJitter(11, output) {
		t.Error("ray reconstruction jitter not periodic over 8 frames")
	}
	if sr.SuggestedJitter(3, output) == sr.SuggestedJitter(11, output) {
		t.Error("super resolution jitter repeated within 32 frames")
	}
	if sr.SuggestedJitter(3, output) != sr.SuggestedJitter(35, output) {
		t.Error("super resolution jitter not periodic over 32 frames")
	}
	if got := sr.SuggestedMipBias(output); got != -1 {
		t.Errorf("SuggestedMipBias(native) = %v, want -1", got)
	}
}

func TestSDKRenderResolution(t *testing.T) {
	env := newTestEnv(t)
	output := Resolution{3840, 2160}

	render, window, err := env.sdk.RenderResolution(FeatureSuperResolution, output, PerfQualityPerformance)
	if err != nil {
		t.Fatalf("RenderResolution() error = %v", err)
	}
	if render != (Resolution{1920, 1080}) {
		t.Errorf("render = %v, want 1920x1080", render)
	}
	if window.Min != (Resolution{960, 540}) || window.Max != output {
		t.Errorf("window = %v..%v, want 960x540..%v", window.Min, window.Max, output)
	}

	render, window, err = env.sdk.RenderResolution(FeatureRayReconstruction, output, PerfQualityPerformance)
	if err != nil {
		t.Fatalf("RenderResolution() error = %v", err)
	}
	if window.Min != render || window.Max != render {
		t.Errorf("ray reconstruction window = %v..%v, want %v", window.Min, window.Max, render)
	}

	if render, _, _ := env.sdk.RenderResolution(FeatureSuperResolution, output, PerfQualityDLAA); render != output {
		t.Errorf("DLAA render = %v, want %v", render, output)
	}
	if _, _, err := env.sdk.RenderResolution(FeatureSuperResolution, Resolution{}, PerfQualityDLAA); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("RenderResolution(zero) = %v, want ErrInvalidResolution", err)
	}
	if env.log.index("create") >= 0 {
		t.Error("RenderResolution created a feature")
	}
}

func TestOptimalSettingsRemembered(t *testing.T) {
	env := newTestEnv(t)
	output := Resolution{2560, 1440}
	for range 3 {
		sr, err := NewSuperResolution(env.sdk, env.gpu, output, PerfQualityBalanced, 0)
		if err != nil {
			t.Fatalf("NewSuperResolution() error = %v", err)
		}
		if err := sr.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}
	if _, _, err := env.sdk.RenderResolution(FeatureSuperResolution, output, PerfQualityBalanced); err != nil {
		t.Fatalf("RenderResolution() error = %v", err)
	}
	if n := env.log.count("optimal-settings"); n != 1 {
		t.Errorf("optimal settings queried %d times, want 1", n)
	}

	// Another preset or feature is a separate question.
	if _, _, err := env.sdk.RenderResolution(FeatureRayReconstruction, output, PerfQualityBalanced); err != nil {
		t.Fatalf("RenderResolution() error = %v", err)
	}
	if n := env.log.count("optimal-settings"); n != 2 {
		t.Errorf("optimal settings queried %d times, want 2", n)
	}
}
