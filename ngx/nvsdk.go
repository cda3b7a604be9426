// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build ngx && cgo

package ngx

/*
#cgo linux LDFLAGS: -lnvsdk_ngx -lvulkan -lstdc++ -ldl
#cgo windows LDFLAGS: -lnvsdk_ngx_s -lvulkan-1

#include <stdint.h>
#include <stdlib.h>
#include <string.h>
#include <wchar.h>
#include <vulkan/vulkan.h>
#include "nvsdk_ngx_vk.h"
#include "nvsdk_ngx_helpers_vk.h"
#include "nvsdk_ngx_helpers_dlssd_vk.h"

typedef struct {
	uint64_t view;
	uint64_t image;
	uint32_t aspect;
	uint32_t base_mip;
	uint32_t level_count;
	uint32_t base_layer;
	uint32_t layer_count;
	uint32_t format;
	uint32_t width;
	uint32_t height;
	int read_write;
	int present;
} gongx_resource;

typedef struct {
	unsigned int width;
	unsigned int height;
	unsigned int target_width;
	unsigned int target_height;
	int quality;
	int flags;
	int output_subrects;
	int denoise_mode;
	int roughness_mode;
	int depth_type;
} gongx_create;

typedef struct {
	gongx_resource color;
	gongx_resource output;
	gongx_resource depth;
	gongx_resource motion;
	gongx_resource bias;
	gongx_resource exposure;
	float jitter_x;
	float jitter_y;
	float mv_scale_x;
	float mv_scale_y;
	float pre_exposure;
	float exposure_scale;
	unsigned int subrect_w;
	unsigned int subrect_h;
	unsigned int base_x;
	unsigned int base_y;
	int reset;
	int tone_mapper;
} gongx_dlss_eval;

typedef struct {
	gongx_resource color;
	gongx_resource output;
	gongx_resource depth;
	gongx_resource motion;
	gongx_resource bias;
	gongx_resource diffuse_albedo;
	gongx_resource specular_albedo;
	gongx_resource normals;
	gongx_resource roughness;
	gongx_resource specular_hit_distance;
	gongx_resource motion_reflections;
	gongx_resource sss_guide;
	float world_to_view[16];
	float view_to_clip[16];
	int has_matrices;
	float jitter_x;
	float jitter_y;
	float mv_scale_x;
	float mv_scale_y;
	unsigned int subrect_w;
	unsigned int subrect_h;
	unsigned int base_x;
	unsigned int base_y;
	int reset;
	int tone_mapper;
} gongx_dlssd_eval;

static wchar_t *gongx_widen(const char *s) {
	size_t n = mbstowcs(NULL, s, 0);
	if (n == (size_t)-1) {
		n = 0;
	}
	wchar_t *w = (wchar_t *)calloc(n + 1, sizeof(wchar_t));
	if (w != NULL && n > 0) {
		mbstowcs(w, s, n + 1);
	}
	return w;
}

static void gongx_discovery(NVSDK_NGX_FeatureDiscoveryInfo *info, int feature,
		const char *project_id, const char *engine_version, const wchar_t *data_path) {
	memset(info, 0, sizeof(*info));
	info->SDKVersion = NVSDK_NGX_Version_API;
	info->FeatureID = (NVSDK_NGX_Feature)feature;
	info->Identifier.IdentifierType = NVSDK_NGX_Application_Identifier_Type_Project_Id;
	info->Identifier.v.ProjectDesc.ProjectId = project_id;
	info->Identifier.v.ProjectDesc.EngineType = NVSDK_NGX_ENGINE_TYPE_CUSTOM;
	info->Identifier.v.ProjectDesc.EngineVersion = engine_version;
	info->ApplicationDataPath = data_path;
}

static NVSDK_NGX_Result gongx_instance_extensions(int feature, const char *project_id,
		const char *engine_version, const char *data_path,
		uint32_t *count, VkExtensionProperties **props) {
	wchar_t *path = gongx_widen(data_path);
	NVSDK_NGX_FeatureDiscoveryInfo info;
	gongx_discovery(&info, feature, project_id, engine_version, path);
	NVSDK_NGX_Result r = NVSDK_NGX_VULKAN_GetFeatureInstanceExtensionRequirements(&info, count, props);
	free(path);
	return r;
}

static NVSDK_NGX_Result gongx_device_extensions(uint64_t instance, uint64_t physical_device,
		int feature, const char *project_id, const char *engine_version, const char *data_path,
		uint32_t *count, VkExtensionProperties **props) {
	wchar_t *path = gongx_widen(data_path);
	NVSDK_NGX_FeatureDiscoveryInfo info;
	gongx_discovery(&info, feature, project_id, engine_version, path);
	NVSDK_NGX_Result r = NVSDK_NGX_VULKAN_GetFeatureDeviceExtensionRequirements(
		(VkInstance)(uintptr_t)instance, (VkPhysicalDevice)(uintptr_t)physical_device,
		&info, count, props);
	free(path);
	return r;
}

static NVSDK_NGX_Result gongx_feature_requirement(uint64_t instance, uint64_t physical_device,
		int feature, const char *project_id, const char *engine_version, const char *data_path,
		int *supported, unsigned int *arch, char *os_version, size_t os_len) {
	wchar_t *path = gongx_widen(data_path);
	NVSDK_NGX_FeatureDiscoveryInfo info;
	gongx_discovery(&info, feature, project_id, engine_version, path);
	NVSDK_NGX_FeatureRequirement req;
	memset(&req, 0, sizeof(req));
	NVSDK_NGX_Result r = NVSDK_NGX_VULKAN_GetFeatureRequirements(
		(VkInstance)(uintptr_t)instance, (VkPhysicalDevice)(uintptr_t)physical_device,
		&info, &req);
	free(path);
	*supported = req.FeatureSupported == NVSDK_NGX_FeatureSupportResult_Supported;
	*arch = req.MinHWArchitecture;
	strncpy(os_version, req.MinOSVersion, os_len - 1);
	os_version[os_len - 1] = 0;
	return r;
}

static NVSDK_NGX_Result gongx_init(const char *project_id, const char *engine_version,
		const char *data_path, uint64_t instance, uint64_t physical_device, uint64_t device) {
	wchar_t *path = gongx_widen(data_path);
	NVSDK_NGX_Result r = NVSDK_NGX_VULKAN_Init_with_ProjectID(project_id,
		NVSDK_NGX_ENGINE_TYPE_CUSTOM, engine_version, path,
		(VkInstance)(uintptr_t)instance, (VkPhysicalDevice)(uintptr_t)physical_device,
		(VkDevice)(uintptr_t)device, vkGetInstanceProcAddr, vkGetDeviceProcAddr,
		NULL, NVSDK_NGX_Version_API);
	free(path);
	return r;
}

static NVSDK_NGX_Result gongx_shutdown(uint64_t device) {
	return NVSDK_NGX_VULKAN_Shutdown1((VkDevice)(uintptr_t)device);
}

static NVSDK_NGX_Result gongx_optimal_settings(NVSDK_NGX_Parameter *params, int denoise,
		unsigned int width, unsigned int height, int quality, unsigned int *out) {
	float sharpness = 0.0f;
	if (denoise) {
		return NGX_DLSSD_GET_OPTIMAL_SETTINGS(params, width, height,
			(NVSDK_NGX_PerfQuality_Value)quality,
			&out[0], &out[1], &out[2], &out[3], &out[4], &out[5], &sharpness);
	}
	return NGX_DLSS_GET_OPTIMAL_SETTINGS(params, width, height,
		(NVSDK_NGX_PerfQuality_Value)quality,
		&out[0], &out[1], &out[2], &out[3], &out[4], &out[5], &sharpness);
}

static NVSDK_NGX_Result gongx_create_dlss(uint64_t cmd, NVSDK_NGX_Parameter *params,
		const gongx_create *c, NVSDK_NGX_Handle **handle) {
	NVSDK_NGX_DLSS_Create_Params p;
	memset(&p, 0, sizeof(p));
	p.Feature.InWidth = c->width;
	p.Feature.InHeight = c->height;
	p.Feature.InTargetWidth = c->target_width;
	p.Feature.InTargetHeight = c->target_height;
	p.Feature.InPerfQualityValue = (NVSDK_NGX_PerfQuality_Value)c->quality;
	p.InFeatureCreateFlags = c->flags;
	p.InEnableOutputSubrects = c->output_subrects != 0;
	return NGX_VULKAN_CREATE_DLSS_EXT((VkCommandBuffer)(uintptr_t)cmd, 1, 1, handle, params, &p);
}

static NVSDK_NGX_Result gongx_create_dlssd(uint64_t device, uint64_t cmd,
		NVSDK_NGX_Parameter *params, const gongx_create *c, NVSDK_NGX_Handle **handle) {
	NVSDK_NGX_DLSSD_Create_Params p;
	memset(&p, 0, sizeof(p));
	p.InDenoiseMode = (NVSDK_NGX_DLSS_Denoise_Mode)c->denoise_mode;
	p.InRoughnessMode = (NVSDK_NGX_DLSS_Roughness_Mode)c->roughness_mode;
	p.InUseHWDepth = (NVSDK_NGX_DLSS_Depth_Type)c->depth_type;
	p.InWidth = c->width;
	p.InHeight = c->height;
	p.InTargetWidth = c->target_width;
	p.InTargetHeight = c->target_height;
	p.InPerfQualityValue = (NVSDK_NGX_PerfQuality_Value)c->quality;
	p.InFeatureCreateFlags = c->flags;
	p.InEnableOutputSubrects = c->output_subrects != 0;
	return NGX_VULKAN_CREATE_DLSSD_EXT1((VkDevice)(uintptr_t)device,
		(VkCommandBuffer)(uintptr_t)cmd, 1, 1, handle, params, &p);
}

static NVSDK_NGX_Resource_VK gongx_make_resource(const gongx_resource *r) {
	VkImageSubresourceRange range;
	range.aspectMask = r->aspect;
	range.baseMipLevel = r->base_mip;
	range.levelCount = r->level_count;
	range.baseArrayLayer = r->base_layer;
	range.layerCount = r->layer_count;
	return NVSDK_NGX_Create_ImageView_Resource_VK((VkImageView)(uintptr_t)r->view,
		(VkImage)(uintptr_t)r->image, range, (VkFormat)r->format,
		r->width, r->height, r->read_write != 0);
}

#define GONGX_BIND(name, src) \
	NVSDK_NGX_Resource_VK name##_res = gongx_make_resource(&(src)); \
	NVSDK_NGX_Resource_VK *name = (src).present ? &name##_res : NULL

static NVSDK_NGX_Result gongx_evaluate_dlss(uint64_t cmd, NVSDK_NGX_Handle *handle,
		NVSDK_NGX_Parameter *params, const gongx_dlss_eval *e) {
	GONGX_BIND(color, e->color);
	GONGX_BIND(output, e->output);
	GONGX_BIND(depth, e->depth);
	GONGX_BIND(motion, e->motion);
	GONGX_BIND(bias, e->bias);
	GONGX_BIND(exposure, e->exposure);

	NVSDK_NGX_Coordinates base = { e->base_x, e->base_y };
	NVSDK_NGX_VK_DLSS_Eval_Params p;
	memset(&p, 0, sizeof(p));
	p.Feature.pInColor = color;
	p.Feature.pInOutput = output;
	p.pInDepth = depth;
	p.pInMotionVectors = motion;
	p.InJitterOffsetX = e->jitter_x;
	p.InJitterOffsetY = e->jitter_y;
	p.InRenderSubrectDimensions.Width = e->subrect_w;
	p.InRenderSubrectDimensions.Height = e->subrect_h;
	p.InReset = e->reset;
	p.InMVScaleX = e->mv_scale_x;
	p.InMVScaleY = e->mv_scale_y;
	p.pInExposureTexture = exposure;
	p.pInBiasCurrentColorMask = bias;
	p.InColorSubrectBase = base;
	p.InDepthSubrectBase = base;
	p.InMVSubrectBase = base;
	p.InTranslucencySubrectBase = base;
	p.InBiasCurrentColorSubrectBase = base;
	p.InOutputSubrectBase = base;
	p.InPreExposure = e->pre_exposure;
	p.InExposureScale = e->exposure_scale;
	p.InToneMapperType = (NVSDK_NGX_ToneMapperType)e->tone_mapper;
	return NGX_VULKAN_EVALUATE_DLSS_EXT((VkCommandBuffer)(uintptr_t)cmd, handle, params, &p);
}

static NVSDK_NGX_Result gongx_evaluate_dlssd(uint64_t cmd, NVSDK_NGX_Handle *handle,
		NVSDK_NGX_Parameter *params, gongx_dlssd_eval *e) {
	GONGX_BIND(color, e->color);
	GONGX_BIND(output, e->output);
	GONGX_BIND(depth, e->depth);
	GONGX_BIND(motion, e->motion);
	GONGX_BIND(bias, e->bias);
	GONGX_BIND(diffuse, e->diffuse_albedo);
	GONGX_BIND(specular, e->specular_albedo);
	GONGX_BIND(normals, e->normals);
	GONGX_BIND(roughness, e->roughness);
	GONGX_BIND(hit_distance, e->specular_hit_distance);
	GONGX_BIND(motion_reflections, e->motion_reflections);
	GONGX_BIND(sss, e->sss_guide);

	NVSDK_NGX_Coordinates base = { e->base_x, e->base_y };
	NVSDK_NGX_VK_DLSSD_Eval_Params p;
	memset(&p, 0, sizeof(p));
	p.pInDiffuseAlbedo = diffuse;
	p.pInSpecularAlbedo = specular;
	p.pInNormals = normals;
	p.pInRoughness = roughness;
	p.pInColor = color;
	p.pInOutput = output;
	p.pInDepth = depth;
	p.pInMotionVectors = motion;
	p.InJitterOffsetX = e->jitter_x;
	p.InJitterOffsetY = e->jitter_y;
	p.InRenderSubrectDimensions.Width = e->subrect_w;
	p.InRenderSubrectDimensions.Height = e->subrect_h;
	p.InReset = e->reset;
	p.InMVScaleX = e->mv_scale_x;
	p.InMVScaleY = e->mv_scale_y;
	p.pInBiasCurrentColorMask = bias;
	p.pInSpecularHitDistance = hit_distance;
	p.pInMotionVectorsReflections = motion_reflections;
	p.pInScreenSpaceSubsurfaceScatteringGuide = sss;
	p.InDiffuseAlbedoSubrectBase = base;
	p.InSpecularAlbedoSubrectBase = base;
	p.InNormalsSubrectBase = base;
	p.InRoughnessSubrectBase = base;
	p.InColorSubrectBase = base;
	p.InDepthSubrectBase = base;
	p.InMVSubrectBase = base;
	p.InTranslucencySubrectBase = base;
	p.InBiasCurrentColorSubrectBase = base;
	p.InOutputSubrectBase = base;
	p.InScreenSpaceSubsurfaceScatteringGuideSubrectBase = base;
	p.InSpecularHitDistanceSubrectBase = base;
	if (e->has_matrices) {
		p.pInWorldToViewMatrix = e->world_to_view;
		p.pInViewToClipMatrix = e->view_to_clip;
	}
	p.InToneMapperType = (NVSDK_NGX_ToneMapperType)e->tone_mapper;
	return NGX_VULKAN_EVALUATE_DLSSD_EXT((VkCommandBuffer)(uintptr_t)cmd, handle, params, &p);
}
*/
import "C"

import (
	"unsafe"
)

// Compiled reports whether the native NGX binding is part of this build.
const Compiled = true

func init() {
	Register(NameNVSDK, func() (Runtime, error) {
		return &nvsdkRuntime{}, nil
	})
}

// nvsdkRuntime calls the NGX SDK through cgo.
type nvsdkRuntime struct{}

// cApplication holds C copies of the identification strings.
type cApplication struct {
	projectID     *C.char
	engineVersion *C.char
	dataPath      *C.char
}

func newCApplication(app ApplicationInfo) cApplication {
	return cApplication{
		projectID:     C.CString(app.ProjectID.String()),
		engineVersion: C.CString(app.EngineVersion),
		dataPath:      C.CString(app.ApplicationDataPath),
	}
}

func (a cApplication) free() {
	C.free(unsafe.Pointer(a.projectID))
	C.free(unsafe.Pointer(a.engineVersion))
	C.free(unsafe.Pointer(a.dataPath))
}

func (*nvsdkRuntime) Name() string { return NameNVSDK }

func (*nvsdkRuntime) InstanceExtensionRequirements(info FeatureDiscoveryInfo) ([]string, error) {
	app := newCApplication(info.ApplicationInfo)
	defer app.free()

	var count C.uint32_t
	var props *C.VkExtensionProperties
	r := Result(C.gongx_instance_extensions(C.int(info.Feature), app.projectID,
		app.engineVersion, app.dataPath, &count, &props))
	if err := Check(r); err != nil {
		return nil, err
	}
	return extensionNames(props, count), nil
}

func (*nvsdkRuntime) DeviceExtensionRequirements(instance, physicalDevice uintptr, info FeatureDiscoveryInfo) ([]string, error) {
	app := newCApplication(info.ApplicationInfo)
	defer app.free()

	var count C.uint32_t
	var props *C.VkExtensionProperties
	r := Result(C.gongx_device_extensions(C.uint64_t(instance), C.uint64_t(physicalDevice),
		C.int(info.Feature), app.projectID, app.engineVersion, app.dataPath, &count, &props))
	if err := Check(r); err != nil {
		return nil, err
	}
	return extensionNames(props, count), nil
}

func (*nvsdkRuntime) FeatureRequirement(instance, physicalDevice uintptr, info FeatureDiscoveryInfo) (FeatureRequirement, error) {
	app := newCApplication(info.ApplicationInfo)
	defer app.free()

	var (
		supported C.int
		arch      C.uint
		osVersion [255]C.char
	)
	r := Result(C.gongx_feature_requirement(C.uint64_t(instance), C.uint64_t(physicalDevice),
		C.int(info.Feature), app.projectID, app.engineVersion, app.dataPath,
		&supported, &arch, &osVersion[0], C.size_t(len(osVersion))))
	if err := Check(r); err != nil {
		return FeatureRequirement{}, err
	}
	return FeatureRequirement{
		Supported:         supported != 0,
		MinHWArchitecture: uint32(arch),
		MinOSVersion:      C.GoString(&osVersion[0]),
	}, nil
}

func (*nvsdkRuntime) Init(app ApplicationInfo, device NativeDevice) error {
	ca := newCApplication(app)
	defer ca.free()

	return Check(Result(C.gongx_init(ca.projectID, ca.engineVersion, ca.dataPath,
		C.uint64_t(device.Instance), C.uint64_t(device.PhysicalDevice), C.uint64_t(device.Device))))
}

func (*nvsdkRuntime) Shutdown(device NativeDevice) error {
	return Check(Result(C.gongx_shutdown(C.uint64_t(device.Device))))
}

func (*nvsdkRuntime) CapabilityParameters() (Parameters, error) {
	var params *C.NVSDK_NGX_Parameter
	if err := Check(Result(C.NVSDK_NGX_VULKAN_GetCapabilityParameters(&params))); err != nil {
		return 0, err
	}
	return Parameters(uintptr(unsafe.Pointer(params))), nil
}

func (*nvsdkRuntime) DestroyParameters(params Parameters) error {
	return Check(Result(C.NVSDK_NGX_VULKAN_DestroyParameters(cParameters(params))))
}

func (*nvsdkRuntime) OptimalSettings(params Parameters, feature Feature, target Dimensions, quality PerfQualityValue) (OptimalSettings, error) {
	var out [6]C.uint
	denoise := C.int(0)
	if feature == FeatureRayReconstruction {
		denoise = 1
	}
	r := Result(C.gongx_optimal_settings(cParameters(params), denoise,
		C.uint(target.Width), C.uint(target.Height), C.int(quality), &out[0]))
	if err := Check(r); err != nil {
		return OptimalSettings{}, err
	}
	return OptimalSettings{
		Optimal: Dimensions{Width: uint32(out[0]), Height: uint32(out[1])},
		Max:     Dimensions{Width: uint32(out[2]), Height: uint32(out[3])},
		Min:     Dimensions{Width: uint32(out[4]), Height: uint32(out[5])},
	}, nil
}

func (*nvsdkRuntime) CreateFeature(cmd uintptr, device NativeDevice, params Parameters, create CreateParams) (Handle, error) {
	var (
		handle *C.NVSDK_NGX_Handle
		r      Result
	)
	switch p := create.(type) {
	case *DLSSCreateParams:
		c := cCreate(p.Base, p.Flags, p.EnableOutputSubrects)
		r = Result(C.gongx_create_dlss(C.uint64_t(cmd), cParameters(params), &c, &handle))
	case *DLSSDCreateParams:
		c := cCreate(p.Base, p.Flags, p.EnableOutputSubrects)
		c.denoise_mode = C.int(p.DenoiseMode)
		c.roughness_mode = C.int(p.RoughnessMode)
		c.depth_type = C.int(p.DepthType)
		r = Result(C.gongx_create_dlssd(C.uint64_t(device.Device), C.uint64_t(cmd),
			cParameters(params), &c, &handle))
	default:
		return 0, ResultInvalidParameter
	}
	if err := Check(r); err != nil {
		return 0, err
	}
	return Handle(uintptr(unsafe.Pointer(handle))), nil
}

func (*nvsdkRuntime) EvaluateFeature(cmd uintptr, handle Handle, params Parameters, eval EvalParams) error {
	h := cHandle(handle)
	switch p := eval.(type) {
	case *DLSSEvalParams:
		e := C.gongx_dlss_eval{
			color:          cResource(p.Color),
			output:         cResource(p.Output),
			depth:          cResource(p.Depth),
			motion:         cResource(p.MotionVectors),
			bias:           cResource(p.Bias),
			exposure:       cResource(p.Exposure),
			jitter_x:       C.float(p.JitterOffsetX),
			jitter_y:       C.float(p.JitterOffsetY),
			mv_scale_x:     C.float(p.MVScaleX),
			mv_scale_y:     C.float(p.MVScaleY),
			pre_exposure:   C.float(p.PreExposure),
			exposure_scale: C.float(p.ExposureScale),
			subrect_w:      C.uint(p.RenderSubrect.Width),
			subrect_h:      C.uint(p.RenderSubrect.Height),
			base_x:         C.uint(p.SubrectBase.X),
			base_y:         C.uint(p.SubrectBase.Y),
			reset:          cBool(p.Reset),
			tone_mapper:    C.int(p.ToneMapper),
		}
		return Check(Result(C.gongx_evaluate_dlss(C.uint64_t(cmd), h, cParameters(params), &e)))
	case *DLSSDEvalParams:
		e := C.gongx_dlssd_eval{
			color:                 cResource(p.Color),
			output:                cResource(p.Output),
			depth:                 cResource(p.Depth),
			motion:                cResource(p.MotionVectors),
			bias:                  cResource(p.Bias),
			diffuse_albedo:        cResource(p.DiffuseAlbedo),
			specular_albedo:       cResource(p.SpecularAlbedo),
			normals:               cResource(p.Normals),
			roughness:             cResource(p.Roughness),
			specular_hit_distance: cResource(p.SpecularHitDistance),
			motion_reflections:    cResource(p.MotionVectorsReflections),
			sss_guide:             cResource(p.SubsurfaceScattering),
			jitter_x:              C.float(p.JitterOffsetX),
			jitter_y:              C.float(p.JitterOffsetY),
			mv_scale_x:            C.float(p.MVScaleX),
			mv_scale_y:            C.float(p.MVScaleY),
			subrect_w:             C.uint(p.RenderSubrect.Width),
			subrect_h:             C.uint(p.RenderSubrect.Height),
			base_x:                C.uint(p.SubrectBase.X),
			base_y:                C.uint(p.SubrectBase.Y),
			reset:                 cBool(p.Reset),
			tone_mapper:           C.int(p.ToneMapper),
		}
		if p.WorldToView != nil && p.ViewToClip != nil {
			e.has_matrices = 1
			for i := 0; i < 16; i++ {
				e.world_to_view[i] = C.float(p.WorldToView[i])
				e.view_to_clip[i] = C.float(p.ViewToClip[i])
			}
		}
		return Check(Result(C.gongx_evaluate_dlssd(C.uint64_t(cmd), h, cParameters(params), &e)))
	default:
		return ResultInvalidParameter
	}
}

func (*nvsdkRuntime) ReleaseFeature(handle Handle) error {
	h := cHandle(handle)
	return Check(Result(C.NVSDK_NGX_VULKAN_ReleaseFeature(h)))
}

// The runtime owns the memory behind both handle kinds; Go only carries the
// addresses between calls.
func cParameters(p Parameters) *C.NVSDK_NGX_Parameter {
	return (*C.NVSDK_NGX_Parameter)(unsafe.Pointer(uintptr(p)))
}

func cHandle(h Handle) *C.NVSDK_NGX_Handle {
	return (*C.NVSDK_NGX_Handle)(unsafe.Pointer(uintptr(h)))
}

func cCreate(base FeatureCreateParams, flags FeatureFlags, subrects bool) C.gongx_create {
	return C.gongx_create{
		width:           C.uint(base.Width),
		height:          C.uint(base.Height),
		target_width:    C.uint(base.TargetWidth),
		target_height:   C.uint(base.TargetHeight),
		quality:         C.int(base.PerfQuality),
		flags:           C.int(flags),
		output_subrects: cBool(subrects),
	}
}

func cResource(r *Resource) C.gongx_resource {
	if r == nil {
		return C.gongx_resource{}
	}
	return C.gongx_resource{
		view:        C.uint64_t(r.ImageView),
		image:       C.uint64_t(r.Image),
		aspect:      C.uint32_t(r.Subresource.Aspect),
		base_mip:    C.uint32_t(r.Subresource.BaseMipLevel),
		level_count: C.uint32_t(r.Subresource.LevelCount),
		base_layer:  C.uint32_t(r.Subresource.BaseArrayLayer),
		layer_count: C.uint32_t(r.Subresource.LayerCount),
		format:      C.uint32_t(r.Format),
		width:       C.uint32_t(r.Width),
		height:      C.uint32_t(r.Height),
		read_write:  cBool(r.ReadWrite),
		present:     1,
	}
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

func extensionNames(props *C.VkExtensionProperties, count C.uint32_t) []string {
	if props == nil || count == 0 {
		return nil
	}
	list := unsafe.Slice(props, int(count))
	names := make([]string, 0, len(list))
	for i := range list {
		names = append(names, C.GoString(&list[i].extensionName[0]))
	}
	return names
}
