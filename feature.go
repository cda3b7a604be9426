// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/dlss/ngx"
)

// Usages the runtime requires at evaluation time.
const (
	inputUsage  = gputypes.TextureUsageTextureBinding
	outputUsage = gputypes.TextureUsageStorageBinding
)

// slot is one input texture of an evaluation.
type slot struct {
	name     string
	view     *TextureView
	required bool
	// anySize skips the subrect size check (1x1 exposure textures).
	anySize bool
}

// frame is the mode-agnostic view of one evaluation's parameters.
type frame struct {
	// inputs in barrier order. Absent optional slots have a nil view.
	inputs []slot
	output *TextureView

	color, depth, motionVectors, bias *TextureView

	jitter  mgl32.Vec2
	mvScale mgl32.Vec2
	partial Resolution
	reset   bool
}

// mode supplies what differs between super resolution and ray
// reconstruction. P is the per-frame parameter record.
type mode[P any] interface {
	feature() Feature
	// rangeFromRuntime reports whether the min/max render window is kept.
	rangeFromRuntime() bool
	minJitterPhases() uint32
	createParams(base ngx.FeatureCreateParams, flags FeatureFlags) ngx.CreateParams
	frame(p *P) frame
	validate(p *P) error
	evalParams(p *P, common ngx.EvalCommon) (ngx.EvalParams, error)
}

// featureContext is the lifecycle shared by both feature kinds.
type featureContext[P any] struct {
	mode mode[P]
	sdk  *SDK
	gpu  GPU

	output      Resolution
	render      Resolution
	renderRange ResolutionRange
	preset      PerfQualityMode
	flags       FeatureFlags

	// handle is guarded by the SDK lock; zero once released.
	handle ngx.Handle

	closeOnce sync.Once
	closeErr  error
}

func newFeatureContext[P any](m mode[P], sdk *SDK, gpu GPU, output Resolution, preset PerfQualityMode, flags FeatureFlags) (*featureContext[P], error) {
	if sdk == nil || gpu == nil {
		return nil, fmt.Errorf("dlss: create %s: nil SDK or device", m.feature())
	}
	if output.IsZero() {
		return nil, fmt.Errorf("%w: output %v", ErrInvalidResolution, output)
	}
	if gpu.Backend() != gputypes.BackendVulkan {
		return nil, fmt.Errorf("%w (got %v)", ErrUnsupportedBackend, gpu.Backend())
	}
	if err := sdk.retain(); err != nil {
		return nil, err
	}

	f := &featureContext[P]{
		mode:   m,
		sdk:    sdk,
		gpu:    gpu,
		output: output,
		preset: preset,
		flags:  flags,
	}
	if err := sdk.withParameters(f.create); err != nil {
		sdk.release()
		return nil, err
	}

	slogger().Info("dlss: feature created",
		"feature", m.feature().String(),
		"output", output.String(),
		"render", f.render.String(),
		"preset", preset.String(),
		"flags", flags.String())
	return f, nil
}

// create runs with the SDK lock held.
func (f *featureContext[P]) create(rt ngx.Runtime, params ngx.Parameters) error {
	quality := f.preset.runtimeValue(f.output)
	render, window, err := f.sdk.renderSettings(rt, params, f.mode.feature(), f.output, f.preset, f.mode.rangeFromRuntime())
	if err != nil {
		return err
	}
	f.render, f.renderRange = render, window

	create := f.mode.createParams(ngx.FeatureCreateParams{
		Width:        f.render.Width,
		Height:       f.render.Height,
		TargetWidth:  f.output.Width,
		TargetHeight: f.output.Height,
		PerfQuality:  quality,
	}, f.flags)

	rec, err := f.gpu.BeginCommands("dlss_" + f.mode.feature().String() + "_creation")
	if err != nil {
		return err
	}
	handle, err := rt.CreateFeature(rec.NativeHandle(), f.gpu.Native(), params, create)
	if err != nil {
		f.gpu.Discard(rec)
		return runtimeError("create feature", err)
	}
	if err := f.gpu.Submit(rec); err != nil {
		// Creation work may still be running; release only once it is not.
		if werr := f.gpu.WaitIdle(); werr != nil {
			slogger().Error("dlss: feature creation failed, native feature leaked",
				"feature", f.mode.feature().String(), "error", werr)
		} else if rerr := rt.ReleaseFeature(handle); rerr != nil {
			slogger().Error("dlss: release after failed creation submit", "error", rerr)
		}
		return fmt.Errorf("dlss: submit feature creation: %w", err)
	}
	f.handle = handle
	return nil
}

// renderSettings asks the runtime for the render resolution of output at
// preset. The result never exceeds output; native presets render at output.
// Without keepRange the window collapses to the render resolution.
// It runs with the SDK lock held.
func (s *SDK) renderSettings(rt ngx.Runtime, params ngx.Parameters, feature Feature, output Resolution, preset PerfQualityMode, keepRange bool) (Resolution, ResolutionRange, error) {
	quality := preset.runtimeValue(output)
	key := settingsKey{feature: feature, output: output, quality: quality}
	settings, err := s.settings.GetOrCreate(key, func() (ngx.OptimalSettings, error) {
		return rt.OptimalSettings(params, feature.runtimeID(), output.dimensions(), quality)
	})
	if err != nil {
		return Resolution{}, ResolutionRange{}, runtimeError("optimal settings", err)
	}
	// The runtime's answer for native mode is not trusted.
	if preset.IsNative() {
		d := output.dimensions()
		settings = ngx.OptimalSettings{Optimal: d, Max: d, Min: d}
	}
	slogger().Debug("dlss: optimal settings",
		"feature", feature.String(),
		"quality", uint32(quality),
		"optimal", resolutionOf(settings.Optimal).String(),
		"min", resolutionOf(settings.Min).String(),
		"max", resolutionOf(settings.Max).String())

	render := resolutionOf(settings.Optimal).clampTo(output)
	if render.IsZero() {
		return Resolution{}, ResolutionRange{}, fmt.Errorf("%w: runtime suggested %v for output %v", ErrInvalidResolution, render, output)
	}
	window := ResolutionRange{Min: render, Max: render}
	if keepRange {
		lo := resolutionOf(settings.Min).clampTo(render)
		hi := resolutionOf(settings.Max).clampTo(output)
		if lo.IsZero() {
			lo = render
		}
		if !render.Fits(hi) {
			hi = render
		}
		window = ResolutionRange{Min: lo, Max: hi}
	}
	return render, window, nil
}

// evaluate records one evaluation into rec.
func (f *featureContext[P]) evaluate(rec CommandRecorder, p *P) error {
	if rec == nil {
		return ErrNilEncoder
	}
	if p == nil {
		return fmt.Errorf("%w: nil parameters", ErrMissingInput)
	}

	fr := f.mode.frame(p)
	subrect := fr.partial
	if subrect.IsZero() {
		subrect = f.render
	}
	if err := f.mode.validate(p); err != nil {
		return err
	}
	if err := f.validateFrame(&fr, subrect); err != nil {
		return err
	}

	return f.sdk.withParameters(func(rt ngx.Runtime, params ngx.Parameters) error {
		if f.handle == 0 {
			return ErrContextClosed
		}

		common, err := f.bindCommon(&fr, subrect)
		if err != nil {
			return err
		}
		eval, err := f.mode.evalParams(p, common)
		if err != nil {
			return err
		}

		barriers := barrierList(fr.inputs, fr.output)
		rec.TransitionTextures(barriers)
		commitStates(fr.inputs, fr.output)
		slogger().Debug("dlss: evaluate",
			"feature", f.mode.feature().String(),
			"subrect", subrect.String(),
			"barriers", len(barriers),
			"reset", fr.reset)

		return runtimeError("evaluate", rt.EvaluateFeature(rec.NativeHandle(), f.handle, params, eval))
	})
}

// validateFrame checks the mode-agnostic parameter rules.
func (f *featureContext[P]) validateFrame(fr *frame, subrect Resolution) error {
	if !subrect.Fits(f.output) {
		return fmt.Errorf("%w: subrect %v exceeds output %v", ErrInvalidResolution, subrect, f.output)
	}
	if fr.output == nil {
		return fmt.Errorf("%w: output", ErrMissingInput)
	}
	out := fr.output.Texture()
	if !out.IsStorage() {
		return fmt.Errorf("%w: %s", ErrOutputNotStorage, out.Label())
	}
	if !f.output.Fits(out.Resolution()) {
		return fmt.Errorf("%w: output %s is %v, need %v", ErrInputTooSmall, out.Label(), out.Resolution(), f.output)
	}

	for _, s := range fr.inputs {
		if s.view == nil {
			if s.required {
				return fmt.Errorf("%w: %s", ErrMissingInput, s.name)
			}
			continue
		}
		tex := s.view.Texture()
		if tex == out {
			return fmt.Errorf("%w: %s", ErrOutputAliasesInput, s.name)
		}
		if tex.State() == 0 {
			return fmt.Errorf("%w: %s (%s)", ErrUnknownTextureState, s.name, tex.Label())
		}
		if !s.anySize && !subrect.Fits(tex.Resolution()) {
			return fmt.Errorf("%w: %s is %v, subrect is %v", ErrInputTooSmall, s.name, tex.Resolution(), subrect)
		}
	}
	return nil
}

// bindCommon fills the evaluation fields both modes share.
func (f *featureContext[P]) bindCommon(fr *frame, subrect Resolution) (ngx.EvalCommon, error) {
	var (
		common ngx.EvalCommon
		err    error
	)
	if common.Color, err = bindOptional(fr.color); err != nil {
		return common, err
	}
	if common.Output, err = bindResource(fr.output); err != nil {
		return common, err
	}
	if common.Depth, err = bindOptional(fr.depth); err != nil {
		return common, err
	}
	if common.MotionVectors, err = bindOptional(fr.motionVectors); err != nil {
		return common, err
	}
	if common.Bias, err = bindOptional(fr.bias); err != nil {
		return common, err
	}

	mvScale := fr.mvScale
	if mvScale == (mgl32.Vec2{}) {
		mvScale = mgl32.Vec2{1, 1}
	}
	common.JitterOffsetX = fr.jitter.X()
	common.JitterOffsetY = fr.jitter.Y()
	common.MVScaleX = mvScale.X()
	common.MVScaleY = mvScale.Y()
	common.Reset = fr.reset
	common.RenderSubrect = subrect.dimensions()
	// Subrects always start at the texture origin.
	common.SubrectBase = ngx.Coordinates{}
	common.ToneMapper = ngx.ToneMapperString
	return common, nil
}

// barrierList transitions every distinct input texture to a sampled state
// and the output to a storage state. A texture bound through several views
// gets one barrier; the first occurrence fixes its position.
func barrierList(inputs []slot, output *TextureView) []hal.TextureBarrier {
	seen := make(map[*Texture]struct{}, len(inputs)+1)
	barriers := make([]hal.TextureBarrier, 0, len(inputs)+1)
	for _, s := range inputs {
		if s.view == nil {
			continue
		}
		tex := s.view.Texture()
		if _, ok := seen[tex]; ok {
			continue
		}
		seen[tex] = struct{}{}
		barriers = append(barriers, hal.TextureBarrier{
			Texture: tex.Raw(),
			Usage: hal.TextureUsageTransition{
				OldUsage: tex.State(),
				NewUsage: inputUsage,
			},
		})
	}
	out := output.Texture()
	barriers = append(barriers, hal.TextureBarrier{
		Texture: out.Raw(),
		Usage: hal.TextureUsageTransition{
			OldUsage: out.State(),
			NewUsage: outputUsage,
		},
	})
	return barriers
}

// commitStates records the usages barrierList transitioned to.
func commitStates(inputs []slot, output *TextureView) {
	for _, s := range inputs {
		if s.view != nil {
			s.view.Texture().SetState(inputUsage)
		}
	}
	output.Texture().SetState(outputUsage)
}

// close waits for the device to go idle, then releases the runtime feature.
func (f *featureContext[P]) close() error {
	f.closeOnce.Do(func() {
		// Evaluations referencing the handle must not be in flight.
		if err := f.gpu.WaitIdle(); err != nil {
			f.closeErr = fmt.Errorf("dlss: wait for idle before releasing %s: %w", f.mode.feature(), err)
			slogger().Error("dlss: feature teardown failed, native feature leaked",
				"feature", f.mode.feature().String(), "error", err)
			return
		}
		err := f.sdk.withParameters(func(rt ngx.Runtime, _ ngx.Parameters) error {
			h := f.handle
			f.handle = 0
			return runtimeError("release feature", rt.ReleaseFeature(h))
		})
		if err != nil {
			f.closeErr = err
			slogger().Error("dlss: feature release failed",
				"feature", f.mode.feature().String(), "error", err)
			return
		}
		f.sdk.release()
		slogger().Info("dlss: feature released", "feature", f.mode.feature().String())
	})
	return f.closeErr
}

// suggestedJitter returns the subpixel jitter for frame at render.
func (f *featureContext[P]) suggestedJitter(frameNumber uint32, render Resolution) mgl32.Vec2 {
	return suggestedJitter(frameNumber, f.output, render, f.mode.minJitterPhases())
}
