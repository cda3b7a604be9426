// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ngx

import (
	"strconv"

	"github.com/google/uuid"
)

// Handle identifies a feature instance created inside the runtime.
// The zero Handle is never a live feature.
type Handle uintptr

// Parameters is the runtime's opaque parameter block.
type Parameters uintptr

// Feature is an NGX feature identifier.
type Feature uint32

// Feature identifiers used by this module.
const (
	FeatureSuperSampling     Feature = 1
	FeatureRayReconstruction Feature = 13
)

// String returns the feature name.
func (f Feature) String() string {
	switch f {
	case FeatureSuperSampling:
		return "SuperSampling"
	case FeatureRayReconstruction:
		return "RayReconstruction"
	default:
		return "Feature(" + strconv.FormatUint(uint64(f), 10) + ")"
	}
}

// PerfQualityValue is the runtime's quality enumeration.
type PerfQualityValue uint32

// Quality values from NVSDK_NGX_PerfQuality_Value.
const (
	PerfQualityMaxPerf PerfQualityValue = iota
	PerfQualityBalanced
	PerfQualityMaxQuality
	PerfQualityUltraPerformance
	PerfQualityUltraQuality
	PerfQualityDLAA
)

// FeatureFlags are NVSDK_NGX_DLSS_Feature_Flags passed at creation.
type FeatureFlags uint32

// DLSS creation flags.
const (
	FlagNone           FeatureFlags = 0
	FlagIsHDR          FeatureFlags = 1 << 0
	FlagMVLowRes       FeatureFlags = 1 << 1
	FlagMVJittered     FeatureFlags = 1 << 2
	FlagDepthInverted  FeatureFlags = 1 << 3
	FlagDoSharpening   FeatureFlags = 1 << 5
	FlagAutoExposure   FeatureFlags = 1 << 6
	FlagAlphaUpscaling FeatureFlags = 1 << 7
)

// DenoiseMode selects the ray reconstruction denoiser.
type DenoiseMode uint32

// Denoise modes.
const (
	DenoiseModeOff DenoiseMode = iota
	DenoiseModeDLUnified
)

// RoughnessMode tells ray reconstruction where roughness is stored.
type RoughnessMode uint32

// Roughness modes.
const (
	RoughnessModeUnpacked RoughnessMode = iota
	RoughnessModePacked
)

// DepthType tells ray reconstruction how depth is encoded.
type DepthType uint32

// Depth types.
const (
	DepthTypeLinear DepthType = iota
	DepthTypeHardware
)

// ToneMapperType hints the tone mapper applied after upscaling.
type ToneMapperType uint32

// Tone mapper hints.
const (
	ToneMapperString ToneMapperType = iota
	ToneMapperReinhard
	ToneMapperOneOverLuma
	ToneMapperACES
)

// Dimensions is a width and height in pixels.
type Dimensions struct {
	Width  uint32
	Height uint32
}

// Coordinates is a pixel origin.
type Coordinates struct {
	X uint32
	Y uint32
}

// Sentinels for "all remaining" in a SubresourceRange (VK_REMAINING_*).
const (
	RemainingMipLevels   = ^uint32(0)
	RemainingArrayLayers = ^uint32(0)
)

// ImageAspect mirrors VkImageAspectFlags.
type ImageAspect uint32

// Aspect bits.
const (
	AspectColor ImageAspect = 0x1
	AspectDepth ImageAspect = 0x2
)

// SubresourceRange mirrors VkImageSubresourceRange.
type SubresourceRange struct {
	Aspect         ImageAspect
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// Resource mirrors NVSDK_NGX_Resource_VK for an image view.
type Resource struct {
	ImageView   uintptr
	Image       uintptr
	Subresource SubresourceRange
	// Format is a VkFormat value.
	Format    uint32
	Width     uint32
	Height    uint32
	ReadWrite bool
}

// NativeDevice holds the raw Vulkan handles of the device the runtime is
// bound to.
type NativeDevice struct {
	Instance       uintptr
	PhysicalDevice uintptr
	Device         uintptr
}

// ApplicationInfo identifies the application to the runtime.
type ApplicationInfo struct {
	ProjectID           uuid.UUID
	EngineVersion       string
	ApplicationDataPath string
}

// FeatureDiscoveryInfo mirrors NVSDK_NGX_FeatureDiscoveryInfo.
type FeatureDiscoveryInfo struct {
	ApplicationInfo
	Feature Feature
}

// FeatureRequirement mirrors NVSDK_NGX_FeatureRequirement.
type FeatureRequirement struct {
	Supported         bool
	MinHWArchitecture uint32
	MinOSVersion      string
}

// OptimalSettings is the render resolution window the runtime recommends for
// a target resolution and quality value.
type OptimalSettings struct {
	Optimal Dimensions
	Max     Dimensions
	Min     Dimensions
}

// FeatureCreateParams mirrors NVSDK_NGX_Feature_Create_Params.
type FeatureCreateParams struct {
	Width        uint32
	Height       uint32
	TargetWidth  uint32
	TargetHeight uint32
	PerfQuality  PerfQualityValue
}

// CreateParams is implemented by the per-feature creation records.
type CreateParams interface {
	Kind() Feature
}

// DLSSCreateParams mirrors NVSDK_NGX_DLSS_Create_Params.
type DLSSCreateParams struct {
	Base                 FeatureCreateParams
	Flags                FeatureFlags
	EnableOutputSubrects bool
}

// Kind implements CreateParams.
func (*DLSSCreateParams) Kind() Feature { return FeatureSuperSampling }

// DLSSDCreateParams mirrors NVSDK_NGX_DLSSD_Create_Params.
type DLSSDCreateParams struct {
	Base                 FeatureCreateParams
	Flags                FeatureFlags
	EnableOutputSubrects bool
	DenoiseMode          DenoiseMode
	RoughnessMode        RoughnessMode
	DepthType            DepthType
}

// Kind implements CreateParams.
func (*DLSSDCreateParams) Kind() Feature { return FeatureRayReconstruction }

// EvalParams is implemented by the per-feature evaluation records.
type EvalParams interface {
	Kind() Feature
}

// EvalCommon holds the evaluation fields shared by both features.
// Nil resources are passed to the runtime as null pointers.
type EvalCommon struct {
	Color         *Resource
	Output        *Resource
	Depth         *Resource
	MotionVectors *Resource
	Bias          *Resource

	JitterOffsetX float32
	JitterOffsetY float32
	MVScaleX      float32
	MVScaleY      float32
	Reset         bool

	RenderSubrect Dimensions
	// SubrectBase is applied to every input and output subrect.
	SubrectBase Coordinates
	ToneMapper  ToneMapperType
}

// DLSSEvalParams mirrors NVSDK_NGX_VK_DLSS_Eval_Params.
type DLSSEvalParams struct {
	EvalCommon
	Exposure      *Resource
	ExposureScale float32
	PreExposure   float32
}

// Kind implements EvalParams.
func (*DLSSEvalParams) Kind() Feature { return FeatureSuperSampling }

// DLSSDEvalParams mirrors NVSDK_NGX_VK_DLSSD_Eval_Params.
type DLSSDEvalParams struct {
	EvalCommon
	DiffuseAlbedo       *Resource
	SpecularAlbedo      *Resource
	Normals             *Resource
	Roughness           *Resource
	SpecularHitDistance *Resource
	// MotionVectorsReflections carries specular motion vectors.
	MotionVectorsReflections *Resource
	SubsurfaceScattering     *Resource

	// Row-major camera matrices, required with SpecularHitDistance.
	WorldToView *[16]float32
	ViewToClip  *[16]float32
}

// Kind implements EvalParams.
func (*DLSSDEvalParams) Kind() Feature { return FeatureRayReconstruction }
