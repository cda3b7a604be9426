// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build vulkan

package vulkan

import (
	"fmt"
	"slices"
	"sync"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/gogpu/dlss"
	"github.com/gogpu/dlss/ngx"
)

var (
	initOnce sync.Once
	initErr  error
)

// Loader enumerates what the system Vulkan loader offers.
type Loader struct{}

// NewLoader loads the Vulkan entry points.
func NewLoader() (*Loader, error) {
	initOnce.Do(func() {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			initErr = fmt.Errorf("vulkan: load loader: %w", err)
			return
		}
		if err := vk.Init(); err != nil {
			initErr = fmt.Errorf("vulkan: init: %w", err)
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return &Loader{}, nil
}

// InstanceExtensions implements dlss.ExtensionSource.
func (*Loader) InstanceExtensions() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, fmt.Errorf("vulkan: enumerate instance extensions: %w", err)
	}
	props := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, props)); err != nil {
		return nil, fmt.Errorf("vulkan: enumerate instance extensions: %w", err)
	}
	return extensionNames(props[:count]), nil
}

// DeviceExtensions implements dlss.ExtensionSource.
func (*Loader) DeviceExtensions(physicalDevice uintptr) ([]string, error) {
	pd := toPhysicalDevice(physicalDevice)
	var count uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &count, nil)); err != nil {
		return nil, fmt.Errorf("vulkan: enumerate device extensions: %w", err)
	}
	props := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &count, props)); err != nil {
		return nil, fmt.Errorf("vulkan: enumerate device extensions: %w", err)
	}
	return extensionNames(props[:count]), nil
}

func extensionNames(props []vk.ExtensionProperties) []string {
	names := make([]string, 0, len(props))
	for _, p := range props {
		p.Deref()
		names = append(names, vk.ToString(p.ExtensionName[:]))
	}
	return names
}

// Instance is a created VkInstance.
type Instance struct {
	handle     vk.Instance
	extensions []string
}

// CreateInstance returns a creation routine for dlss.CreateInstance. The
// hook sees base and may add to it.
func (*Loader) CreateInstance(appName string, base []string) func(dlss.ExtensionHook) (*Instance, error) {
	return func(hook dlss.ExtensionHook) (*Instance, error) {
		args := &dlss.ExtensionArgs{Extensions: slices.Clone(base)}
		if err := hook(args); err != nil {
			return nil, err
		}

		info := vk.InstanceCreateInfo{
			SType: vk.StructureTypeInstanceCreateInfo,
			PApplicationInfo: &vk.ApplicationInfo{
				SType:              vk.StructureTypeApplicationInfo,
				PApplicationName:   safeString(appName),
				ApplicationVersion: vk.MakeVersion(1, 0, 0),
				PEngineName:        safeString("gogpu"),
				EngineVersion:      vk.MakeVersion(1, 0, 0),
				ApiVersion:         vk.MakeVersion(1, 2, 0),
			},
			EnabledExtensionCount:   uint32(len(args.Extensions)),
			PpEnabledExtensionNames: safeStrings(args.Extensions),
		}
		var instance vk.Instance
		if err := vk.Error(vk.CreateInstance(&info, nil, &instance)); err != nil {
			return nil, fmt.Errorf("vulkan: create instance: %w", err)
		}
		if err := vk.InitInstance(instance); err != nil {
			vk.DestroyInstance(instance, nil)
			return nil, fmt.Errorf("vulkan: load instance functions: %w", err)
		}
		return &Instance{handle: instance, extensions: args.Extensions}, nil
	}
}

// Handle returns the VkInstance.
func (i *Instance) Handle() uintptr { return uintptr(unsafe.Pointer(i.handle)) }

// Extensions returns the enabled instance extensions.
func (i *Instance) Extensions() []string { return slices.Clone(i.extensions) }

// Destroy destroys the instance.
func (i *Instance) Destroy() {
	if i.handle != nil {
		vk.DestroyInstance(i.handle, nil)
		i.handle = nil
	}
}

// PhysicalDevices lists the adapters.
func (i *Instance) PhysicalDevices() ([]PhysicalDevice, error) {
	var count uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(i.handle, &count, nil)); err != nil {
		return nil, fmt.Errorf("vulkan: enumerate physical devices: %w", err)
	}
	handles := make([]vk.PhysicalDevice, count)
	if err := vk.Error(vk.EnumeratePhysicalDevices(i.handle, &count, handles)); err != nil {
		return nil, fmt.Errorf("vulkan: enumerate physical devices: %w", err)
	}

	devices := make([]PhysicalDevice, 0, count)
	for _, h := range handles[:count] {
		var props vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(h, &props)
		props.Deref()
		devices = append(devices, PhysicalDevice{
			Handle:   uintptr(unsafe.Pointer(h)),
			Name:     vk.ToString(props.DeviceName[:]),
			VendorID: props.VendorID,
			DeviceID: props.DeviceID,
		})
	}
	return devices, nil
}

// Device is a created VkDevice with one graphics queue.
type Device struct {
	instance   *Instance
	physical   PhysicalDevice
	handle     vk.Device
	queue      vk.Queue
	family     uint32
	extensions []string
}

// RequestDevice returns a creation routine for dlss.RequestDevice that
// creates a device on pd with one graphics queue.
func (i *Instance) RequestDevice(pd PhysicalDevice, base []string) func(dlss.ExtensionHook) (*Device, error) {
	return func(hook dlss.ExtensionHook) (*Device, error) {
		args := &dlss.ExtensionArgs{Extensions: slices.Clone(base)}
		if err := hook(args); err != nil {
			return nil, err
		}

		physical := toPhysicalDevice(pd.Handle)
		family, err := graphicsFamily(physical)
		if err != nil {
			return nil, err
		}
		queues := []vk.DeviceQueueCreateInfo{{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: []float32{1},
		}}
		info := vk.DeviceCreateInfo{
			SType:                   vk.StructureTypeDeviceCreateInfo,
			QueueCreateInfoCount:    uint32(len(queues)),
			PQueueCreateInfos:       queues,
			EnabledExtensionCount:   uint32(len(args.Extensions)),
			PpEnabledExtensionNames: safeStrings(args.Extensions),
		}
		var device vk.Device
		if err := vk.Error(vk.CreateDevice(physical, &info, nil, &device)); err != nil {
			return nil, fmt.Errorf("vulkan: create device: %w", err)
		}
		var queue vk.Queue
		vk.GetDeviceQueue(device, family, 0, &queue)

		return &Device{
			instance:   i,
			physical:   pd,
			handle:     device,
			queue:      queue,
			family:     family,
			extensions: args.Extensions,
		}, nil
	}
}

func graphicsFamily(pd vk.PhysicalDevice) (uint32, error) {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, nil)
	families := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, families)
	for i := range families[:count] {
		families[i].Deref()
		if families[i].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
			return uint32(i), nil
		}
	}
	return 0, ErrNoGraphicsQueue
}

// Native returns the handles the DLSS runtime binds to.
func (d *Device) Native() ngx.NativeDevice {
	return ngx.NativeDevice{
		Instance:       d.instance.Handle(),
		PhysicalDevice: d.physical.Handle,
		Device:         uintptr(unsafe.Pointer(d.handle)),
	}
}

// QueueFamily returns the graphics queue family index.
func (d *Device) QueueFamily() uint32 { return d.family }

// Queue returns the VkQueue.
func (d *Device) Queue() uintptr { return uintptr(unsafe.Pointer(d.queue)) }

// Extensions returns the enabled device extensions.
func (d *Device) Extensions() []string { return slices.Clone(d.extensions) }

// Destroy waits for the device to go idle and destroys it.
func (d *Device) Destroy() {
	if d.handle != nil {
		vk.DeviceWaitIdle(d.handle)
		vk.DestroyDevice(d.handle, nil)
		d.handle = nil
	}
}

func toPhysicalDevice(h uintptr) vk.PhysicalDevice {
	return vk.PhysicalDevice(unsafe.Pointer(h)) //nolint:govet // handle owned by the loader
}

func safeString(s string) string { return s + "\x00" }

func safeStrings(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = safeString(s)
	}
	return out
}
