// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/dlss/ngx"
)

// Exposure is the manual exposure input of super resolution.
type Exposure struct {
	// Texture is a 1x1 exposure value.
	Texture *TextureView
	// Scale multiplies the exposure value; zero means 1.
	Scale float32
	// PreExposure is the factor the color input was already multiplied by.
	PreExposure float32
}

// SuperResolutionParams are the per-frame inputs of super resolution.
type SuperResolutionParams struct {
	Color         *TextureView
	Depth         *TextureView
	MotionVectors *TextureView
	// Exposure selects manual exposure; nil lets the runtime compute it.
	Exposure *Exposure
	// Bias is an optional reactive mask.
	Bias *TextureView
	// Output must be created with storage usage.
	Output *TextureView

	// Reset discards history, e.g. after a camera cut.
	Reset bool
	// JitterOffset is the subpixel jitter applied to the frame.
	JitterOffset mgl32.Vec2
	// PartialSize is the region of the inputs to read; zero means the
	// context's render resolution.
	PartialSize Resolution
	// MotionVectorScale converts motion vectors to pixels; zero means (1, 1).
	MotionVectorScale mgl32.Vec2
}

// SuperResolution is a DLSS Super Resolution context for one camera.
//
// Creating one is expensive: cache it and recreate it only when the output
// resolution, preset or flags change.
type SuperResolution struct {
	ctx *featureContext[SuperResolutionParams]
}

// NewSuperResolution creates the runtime feature and waits for the creation
// commands to execute. Check FeatureSupport.SuperResolution first.
func NewSuperResolution(sdk *SDK, gpu GPU, output Resolution, preset PerfQualityMode, flags FeatureFlags) (*SuperResolution, error) {
	ctx, err := newFeatureContext[SuperResolutionParams](superResolutionMode{}, sdk, gpu, output, preset, flags)
	if err != nil {
		return nil, err
	}
	return &SuperResolution{ctx: ctx}, nil
}

// Render records the evaluation into rec. Inputs are transitioned to sampled
// usage and the output to storage usage first.
func (s *SuperResolution) Render(rec CommandRecorder, params *SuperResolutionParams) error {
	return s.ctx.evaluate(rec, params)
}

// Close waits for the device to go idle and releases the feature.
func (s *SuperResolution) Close() error { return s.ctx.close() }

// UpscaledResolution returns the output resolution.
func (s *SuperResolution) UpscaledResolution() Resolution { return s.ctx.output }

// RenderResolution returns the render resolution the runtime recommends.
func (s *SuperResolution) RenderResolution() Resolution { return s.ctx.render }

// RenderResolutionRange returns the render resolutions usable with dynamic
// resolution scaling. Pass the chosen size as PartialSize.
func (s *SuperResolution) RenderResolutionRange() ResolutionRange { return s.ctx.renderRange }

// Preset returns the preset the context was created with.
func (s *SuperResolution) Preset() PerfQualityMode { return s.ctx.preset }

// Flags returns the flags the context was created with.
func (s *SuperResolution) Flags() FeatureFlags { return s.ctx.flags }

// SuggestedJitter returns the camera jitter for a frame rendered at render,
// in pixels within [-0.5, 0.5).
func (s *SuperResolution) SuggestedJitter(frameNumber uint32, render Resolution) mgl32.Vec2 {
	return s.ctx.suggestedJitter(frameNumber, render)
}

// SuggestedMipBias returns the texture LOD bias for rendering at render.
func (s *SuperResolution) SuggestedMipBias(render Resolution) float32 {
	return suggestedMipBias(s.ctx.output, render)
}

type superResolutionMode struct{}

func (superResolutionMode) feature() Feature        { return FeatureSuperResolution }
func (superResolutionMode) rangeFromRuntime() bool  { return true }
func (superResolutionMode) minJitterPhases() uint32 { return superResolutionMinPhases }

func (superResolutionMode) createParams(base ngx.FeatureCreateParams, flags FeatureFlags) ngx.CreateParams {
	return &ngx.DLSSCreateParams{
		Base:                 base,
		Flags:                flags.runtimeFlags(),
		EnableOutputSubrects: flags.Has(FlagOutputSubrect),
	}
}

func (superResolutionMode) frame(p *SuperResolutionParams) frame {
	var exposure *TextureView
	if p.Exposure != nil {
		exposure = p.Exposure.Texture
	}
	return frame{
		inputs: []slot{
			{name: "color", view: p.Color, required: true},
			{name: "depth", view: p.Depth, required: true},
			{name: "motion vectors", view: p.MotionVectors, required: true},
			{name: "exposure", view: exposure, required: p.Exposure != nil, anySize: true},
			{name: "bias", view: p.Bias},
		},
		output:        p.Output,
		color:         p.Color,
		depth:         p.Depth,
		motionVectors: p.MotionVectors,
		bias:          p.Bias,
		jitter:        p.JitterOffset,
		mvScale:       p.MotionVectorScale,
		partial:       p.PartialSize,
		reset:         p.Reset,
	}
}

func (superResolutionMode) validate(*SuperResolutionParams) error { return nil }

func (superResolutionMode) evalParams(p *SuperResolutionParams, common ngx.EvalCommon) (ngx.EvalParams, error) {
	eval := &ngx.DLSSEvalParams{EvalCommon: common}
	if p.Exposure == nil {
		return eval, nil
	}
	res, err := bindResource(p.Exposure.Texture)
	if err != nil {
		return nil, err
	}
	eval.Exposure = res
	eval.ExposureScale = p.Exposure.Scale
	if eval.ExposureScale == 0 {
		eval.ExposureScale = 1
	}
	eval.PreExposure = p.Exposure.PreExposure
	return eval, nil
}
