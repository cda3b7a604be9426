// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"slices"
	"sync"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/google/uuid"

	"github.com/gogpu/dlss/ngx"
)

// =============================================================================
// Call log
// =============================================================================

// callLog records calls across fakes so tests can check ordering.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	l.calls = append(l.calls, call)
	l.mu.Unlock()
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.calls)
}

// index returns the position of the first call named call, or -1.
func (l *callLog) index(call string) int {
	return slices.Index(l.snapshot(), call)
}

func (l *callLog) count(call string) int {
	n := 0
	for _, c := range l.snapshot() {
		if c == call {
			n++
		}
	}
	return n
}

// =============================================================================
// Runtime
// =============================================================================

// fakeRuntime is a test double for ngx.Runtime.
type fakeRuntime struct {
	log *callLog

	instanceExts map[ngx.Feature][]string
	deviceExts   map[ngx.Feature][]string
	noHardware   map[ngx.Feature]bool
	queryErr     map[ngx.Feature]error

	// settings overrides the default optimal settings.
	settings func(target ngx.Dimensions, q ngx.PerfQualityValue) ngx.OptimalSettings

	initErr    error
	paramsErr  error
	createErr  error
	evalErr    error
	releaseErr error

	nextHandle ngx.Handle
	qualities  []ngx.PerfQualityValue
	created    []ngx.CreateParams
	evals      []ngx.EvalParams
	commands   []uintptr
	released   []ngx.Handle
}

func newFakeRuntime(log *callLog) *fakeRuntime {
	return &fakeRuntime{
		log:          log,
		instanceExts: map[ngx.Feature][]string{},
		deviceExts:   map[ngx.Feature][]string{},
		noHardware:   map[ngx.Feature]bool{},
		queryErr:     map[ngx.Feature]error{},
		nextHandle:   0x100,
	}
}

func (r *fakeRuntime) Name() string { return "fake" }

func (r *fakeRuntime) InstanceExtensionRequirements(info ngx.FeatureDiscoveryInfo) ([]string, error) {
	r.log.add("instance-requirements:" + info.Feature.String())
	if err := r.queryErr[info.Feature]; err != nil {
		return nil, err
	}
	return r.instanceExts[info.Feature], nil
}

func (r *fakeRuntime) DeviceExtensionRequirements(_, _ uintptr, info ngx.FeatureDiscoveryInfo) ([]string, error) {
	r.log.add("device-requirements:" + info.Feature.String())
	if err := r.queryErr[info.Feature]; err != nil {
		return nil, err
	}
	return r.deviceExts[info.Feature], nil
}

func (r *fakeRuntime) FeatureRequirement(_, _ uintptr, info ngx.FeatureDiscoveryInfo) (ngx.FeatureRequirement, error) {
	r.log.add("feature-requirement:" + info.Feature.String())
	return ngx.FeatureRequirement{Supported: !r.noHardware[info.Feature], MinHWArchitecture: 0x140}, nil
}

func (r *fakeRuntime) Init(ngx.ApplicationInfo, ngx.NativeDevice) error {
	r.log.add("init")
	return r.initErr
}

func (r *fakeRuntime) Shutdown(ngx.NativeDevice) error {
	r.log.add("shutdown")
	return nil
}

func (r *fakeRuntime) CapabilityParameters() (ngx.Parameters, error) {
	r.log.add("capability-parameters")
	if r.paramsErr != nil {
		return 0, r.paramsErr
	}
	return 0xCAFE, nil
}

func (r *fakeRuntime) DestroyParameters(ngx.Parameters) error {
	r.log.add("destroy-parameters")
	return nil
}

func (r *fakeRuntime) OptimalSettings(_ ngx.Parameters, _ ngx.Feature, target ngx.Dimensions, q ngx.PerfQualityValue) (ngx.OptimalSettings, error) {
	r.log.add("optimal-settings")
	r.qualities = append(r.qualities, q)
	if r.settings != nil {
		return r.settings(target, q), nil
	}
	return defaultSettings(target, q), nil
}

// defaultSettings scales the target by the usual per-preset ratios.
func defaultSettings(target ngx.Dimensions, q ngx.PerfQualityValue) ngx.OptimalSettings {
	scale := map[ngx.PerfQualityValue]float64{
		ngx.PerfQualityMaxQuality:       1 / 1.5,
		ngx.PerfQualityBalanced:         1 / 1.72,
		ngx.PerfQualityMaxPerf:          1 / 2.0,
		ngx.PerfQualityUltraPerformance: 1 / 3.0,
		// Deliberately wrong so tests can see native mode ignoring it.
		ngx.PerfQualityDLAA: 1 / 4.0,
	}[q]
	opt := ngx.Dimensions{
		Width:  uint32(float64(target.Width) * scale),
		Height: uint32(float64(target.Height) * scale),
	}
	return ngx.OptimalSettings{
		Optimal: opt,
		Min:     ngx.Dimensions{Width: opt.Width / 2, Height: opt.Height / 2},
		Max:     target,
	}
}

func (r *fakeRuntime) CreateFeature(cmd uintptr, _ ngx.NativeDevice, _ ngx.Parameters, create ngx.CreateParams) (ngx.Handle, error) {
	r.log.add("create")
	r.commands = append(r.commands, cmd)
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.created = append(r.created, create)
	h := r.nextHandle
	r.nextHandle++
	return h, nil
}

func (r *fakeRuntime) EvaluateFeature(cmd uintptr, _ ngx.Handle, _ ngx.Parameters, eval ngx.EvalParams) error {
	r.log.add("evaluate")
	r.commands = append(r.commands, cmd)
	r.evals = append(r.evals, eval)
	return r.evalErr
}

func (r *fakeRuntime) ReleaseFeature(h ngx.Handle) error {
	r.log.add("release")
	r.released = append(r.released, h)
	return r.releaseErr
}

// =============================================================================
// GPU
// =============================================================================

// fakeGPU is a test double for GPU.
type fakeGPU struct {
	log     *callLog
	backend gputypes.Backend

	beginErr  error
	submitErr error
	waitErr   error

	recorders []*fakeRecorder
}

func newFakeGPU(log *callLog) *fakeGPU {
	return &fakeGPU{log: log, backend: gputypes.BackendVulkan}
}

func (g *fakeGPU) Backend() gputypes.Backend { return g.backend }

func (g *fakeGPU) Native() ngx.NativeDevice {
	return ngx.NativeDevice{Instance: 0x1, PhysicalDevice: 0x2, Device: 0x3}
}

func (g *fakeGPU) BeginCommands(string) (CommandRecorder, error) {
	g.log.add("begin")
	if g.beginErr != nil {
		return nil, g.beginErr
	}
	rec := &fakeRecorder{handle: uintptr(0x1000 + len(g.recorders))}
	g.recorders = append(g.recorders, rec)
	return rec, nil
}

func (g *fakeGPU) Submit(CommandRecorder) error {
	g.log.add("submit")
	return g.submitErr
}

func (g *fakeGPU) Discard(CommandRecorder) {
	g.log.add("discard")
}

func (g *fakeGPU) WaitIdle() error {
	g.log.add("wait-idle")
	return g.waitErr
}

// fakeRecorder is a test double for CommandRecorder.
type fakeRecorder struct {
	handle   uintptr
	barriers [][]hal.TextureBarrier
}

func (r *fakeRecorder) NativeHandle() uintptr { return r.handle }

func (r *fakeRecorder) TransitionTextures(b []hal.TextureBarrier) {
	r.barriers = append(r.barriers, slices.Clone(b))
}

// =============================================================================
// Textures
// =============================================================================

// mockHALTexture is a test double for hal.Texture.
type mockHALTexture struct {
	hal.Texture
	handle uintptr
}

func (t *mockHALTexture) NativeHandle() uintptr { return t.handle }
func (t *mockHALTexture) Destroy()              {}

// mockHALTextureView is a test double for hal.TextureView.
type mockHALTextureView struct {
	hal.TextureView
	handle uintptr
}

func (v *mockHALTextureView) NativeHandle() uintptr { return v.handle }
func (v *mockHALTextureView) Destroy()              {}

var nextHandle uintptr = 0x10000

// newTestTexture creates a texture in state with one view.
func newTestTexture(t *testing.T, label string, w, h uint32, format gputypes.TextureFormat, usage, state gputypes.TextureUsage) *TextureView {
	t.Helper()
	nextHandle += 2
	tex, err := NewTexture(&mockHALTexture{handle: nextHandle}, &TextureDescriptor{
		Label:  label,
		Size:   gputypes.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		Format: format,
		Usage:  usage,
	}, state)
	if err != nil {
		t.Fatalf("NewTexture(%s) error = %v", label, err)
	}
	return newTestView(t, tex)
}

// newTestView creates another view of tex.
func newTestView(t *testing.T, tex *Texture) *TextureView {
	t.Helper()
	nextHandle++
	view, err := NewTextureView(&mockHALTextureView{handle: nextHandle}, tex)
	if err != nil {
		t.Fatalf("NewTextureView error = %v", err)
	}
	return view
}

// sampled creates a sampled RGBA16F input already in TextureBinding usage.
func sampled(t *testing.T, label string, res Resolution) *TextureView {
	t.Helper()
	return newTestTexture(t, label, res.Width, res.Height, gputypes.TextureFormatRGBA16Float,
		gputypes.TextureUsageTextureBinding|gputypes.TextureUsageRenderAttachment,
		gputypes.TextureUsageRenderAttachment)
}

// storageOutput creates an output texture with storage usage and no known state.
func storageOutput(t *testing.T, res Resolution) *TextureView {
	t.Helper()
	return newTestTexture(t, "output", res.Width, res.Height, gputypes.TextureFormatRGBA16Float,
		gputypes.TextureUsageStorageBinding|gputypes.TextureUsageTextureBinding, 0)
}

// =============================================================================
// Setup
// =============================================================================

var testProjectID = uuid.MustParse("a0f57b54-1daf-4934-90ae-c4035c19df04")

type testEnv struct {
	log *callLog
	rt  *fakeRuntime
	gpu *fakeGPU
	sdk *SDK
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := &callLog{}
	rt := newFakeRuntime(log)
	gpu := newFakeGPU(log)
	sdk, err := NewSDK(rt, testProjectID, gpu)
	if err != nil {
		t.Fatalf("NewSDK() error = %v", err)
	}
	return &testEnv{log: log, rt: rt, gpu: gpu, sdk: sdk}
}

// fakeSource is a test double for ExtensionSource.
type fakeSource struct {
	instance    []string
	device      []string
	instanceErr error
}

func (s *fakeSource) InstanceExtensions() ([]string, error) {
	if s.instanceErr != nil {
		return nil, s.instanceErr
	}
	return s.instance, nil
}

func (s *fakeSource) DeviceExtensions(uintptr) ([]string, error) {
	return s.device, nil
}
