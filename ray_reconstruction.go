// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dlss

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/dlss/ngx"
)

// RoughnessMode tells ray reconstruction where roughness is stored.
type RoughnessMode uint8

// Roughness modes.
const (
	// RoughnessUnpacked reads roughness from its own texture.
	RoughnessUnpacked RoughnessMode = iota
	// RoughnessPacked reads roughness from the alpha channel of the normals.
	RoughnessPacked
)

// DepthMode tells ray reconstruction how depth is encoded.
type DepthMode uint8

// Depth modes.
const (
	// DepthLinear is linear view-space depth.
	DepthLinear DepthMode = iota
	// DepthHardware is the rasterizer's non-linear depth buffer.
	DepthHardware
)

// SpecularGuide is the specular input of ray reconstruction. Set exactly one
// of MotionVectors or HitDistance.
type SpecularGuide struct {
	// MotionVectors are specular (reflection) motion vectors.
	MotionVectors *TextureView

	// HitDistance is the specular ray hit distance. It needs the camera
	// matrices below.
	HitDistance *TextureView
	WorldToView mgl32.Mat4
	ViewToClip  mgl32.Mat4
}

// RayReconstructionParams are the per-frame inputs of ray reconstruction.
type RayReconstructionParams struct {
	DiffuseAlbedo  *TextureView
	SpecularAlbedo *TextureView
	Normals        *TextureView
	// Roughness is required with RoughnessUnpacked.
	Roughness     *TextureView
	Color         *TextureView
	Depth         *TextureView
	MotionVectors *TextureView
	SpecularGuide SpecularGuide
	// SubsurfaceScattering is an optional screen-space subsurface
	// scattering guide.
	SubsurfaceScattering *TextureView
	// Bias is an optional reactive mask.
	Bias *TextureView
	// Output must be created with storage usage.
	Output *TextureView

	Reset             bool
	JitterOffset      mgl32.Vec2
	PartialSize       Resolution
	MotionVectorScale mgl32.Vec2
}

// RayReconstruction is a DLSS Ray Reconstruction context for one camera.
// It denoises and upscales in one pass and replaces the application's
// denoisers.
type RayReconstruction struct {
	ctx *featureContext[RayReconstructionParams]
}

// NewRayReconstruction creates the runtime feature and waits for the
// creation commands to execute. Check FeatureSupport.RayReconstruction
// first.
func NewRayReconstruction(sdk *SDK, gpu GPU, output Resolution, preset PerfQualityMode, flags FeatureFlags, roughness RoughnessMode, depth DepthMode) (*RayReconstruction, error) {
	m := rayReconstructionMode{roughness: roughness, depth: depth}
	ctx, err := newFeatureContext[RayReconstructionParams](m, sdk, gpu, output, preset, flags)
	if err != nil {
		return nil, err
	}
	return &RayReconstruction{ctx: ctx}, nil
}

// Render records the evaluation into rec.
func (r *RayReconstruction) Render(rec CommandRecorder, params *RayReconstructionParams) error {
	return r.ctx.evaluate(rec, params)
}

// Close waits for the device to go idle and releases the feature.
func (r *RayReconstruction) Close() error { return r.ctx.close() }

// UpscaledResolution returns the output resolution.
func (r *RayReconstruction) UpscaledResolution() Resolution { return r.ctx.output }

// RenderResolution returns the resolution to render at.
func (r *RayReconstruction) RenderResolution() Resolution { return r.ctx.render }

// Preset returns the preset the context was created with.
func (r *RayReconstruction) Preset() PerfQualityMode { return r.ctx.preset }

// Flags returns the flags the context was created with.
func (r *RayReconstruction) Flags() FeatureFlags { return r.ctx.flags }

// SuggestedJitter returns the camera jitter for a frame rendered at render.
func (r *RayReconstruction) SuggestedJitter(frameNumber uint32, render Resolution) mgl32.Vec2 {
	return r.ctx.suggestedJitter(frameNumber, render)
}

// SuggestedMipBias returns the texture LOD bias for rendering at render.
func (r *RayReconstruction) SuggestedMipBias(render Resolution) float32 {
	return suggestedMipBias(r.ctx.output, render)
}

type rayReconstructionMode struct {
	roughness RoughnessMode
	depth     DepthMode
}

func (rayReconstructionMode) feature() Feature        { return FeatureRayReconstruction }
func (rayReconstructionMode) rangeFromRuntime() bool  { return false }
func (rayReconstructionMode) minJitterPhases() uint32 { return 0 }

func (m rayReconstructionMode) createParams(base ngx.FeatureCreateParams, flags FeatureFlags) ngx.CreateParams {
	p := &ngx.DLSSDCreateParams{
		Base:                 base,
		Flags:                flags.runtimeFlags(),
		EnableOutputSubrects: flags.Has(FlagOutputSubrect),
		DenoiseMode:          ngx.DenoiseModeDLUnified,
		RoughnessMode:        ngx.RoughnessModeUnpacked,
		DepthType:            ngx.DepthTypeLinear,
	}
	if m.roughness == RoughnessPacked {
		p.RoughnessMode = ngx.RoughnessModePacked
	}
	if m.depth == DepthHardware {
		p.DepthType = ngx.DepthTypeHardware
	}
	return p
}

func (m rayReconstructionMode) frame(p *RayReconstructionParams) frame {
	guide := p.SpecularGuide.MotionVectors
	if guide == nil {
		guide = p.SpecularGuide.HitDistance
	}
	return frame{
		inputs: []slot{
			{name: "diffuse albedo", view: p.DiffuseAlbedo, required: true},
			{name: "specular albedo", view: p.SpecularAlbedo, required: true},
			{name: "normals", view: p.Normals, required: true},
			{name: "roughness", view: p.Roughness, required: m.roughness == RoughnessUnpacked},
			{name: "color", view: p.Color, required: true},
			{name: "depth", view: p.Depth, required: true},
			{name: "motion vectors", view: p.MotionVectors, required: true},
			{name: "specular guide", view: guide, required: true},
			{name: "subsurface scattering guide", view: p.SubsurfaceScattering},
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

func (m rayReconstructionMode) validate(p *RayReconstructionParams) error {
	if m.roughness == RoughnessUnpacked && p.Roughness == nil {
		return ErrRoughnessRequired
	}
	g := p.SpecularGuide
	if (g.MotionVectors == nil) == (g.HitDistance == nil) {
		return ErrSpecularGuide
	}
	return nil
}

func (rayReconstructionMode) evalParams(p *RayReconstructionParams, common ngx.EvalCommon) (ngx.EvalParams, error) {
	eval := &ngx.DLSSDEvalParams{EvalCommon: common}
	var err error
	bind := []struct {
		dst  **ngx.Resource
		view *TextureView
	}{
		{&eval.DiffuseAlbedo, p.DiffuseAlbedo},
		{&eval.SpecularAlbedo, p.SpecularAlbedo},
		{&eval.Normals, p.Normals},
		{&eval.Roughness, p.Roughness},
		{&eval.SubsurfaceScattering, p.SubsurfaceScattering},
		{&eval.MotionVectorsReflections, p.SpecularGuide.MotionVectors},
		{&eval.SpecularHitDistance, p.SpecularGuide.HitDistance},
	}
	for _, b := range bind {
		if *b.dst, err = bindOptional(b.view); err != nil {
			return nil, err
		}
	}
	if p.SpecularGuide.HitDistance != nil {
		eval.WorldToView = rowMajor(p.SpecularGuide.WorldToView)
		eval.ViewToClip = rowMajor(p.SpecularGuide.ViewToClip)
	}
	return eval, nil
}

// rowMajor lays out a column-major matrix row by row.
func rowMajor(m mgl32.Mat4) *[16]float32 {
	t := [16]float32(m.Transpose())
	return &t
}
