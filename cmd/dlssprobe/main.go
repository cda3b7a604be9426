// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command dlssprobe reports which DLSS features the local GPU supports and
// the render resolutions each quality preset maps to.
//
// It creates a Vulkan instance and device through the DLSS extension
// negotiation, initializes the runtime and queries optimal settings. Build
// with -tags "vulkan ngx" to link the native libraries.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dlss"
	"github.com/gogpu/dlss/internal/config"
	"github.com/gogpu/dlss/internal/vulkan"
	"github.com/gogpu/dlss/ngx"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		projectID  = flag.String("project", "", "project ID (overrides the configuration)")
		runtime    = flag.String("runtime", "", "NGX runtime name (overrides the configuration)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("dlssprobe: %v", err)
		}
		cfg = loaded
	}
	if *projectID != "" {
		cfg.ProjectID = *projectID
	}
	if *runtime != "" {
		cfg.Runtime = *runtime
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("dlssprobe: %v", err)
	}

	logger := cfg.NewLogger(os.Stderr)
	dlss.SetLogger(logger)

	if err := probe(cfg, os.Stdout); err != nil {
		logger.Error("probe failed", "error", err)
		os.Exit(1)
	}
}

func probe(cfg *config.Config, w io.Writer) error {
	id, err := cfg.Project()
	if err != nil {
		return err
	}
	features, err := cfg.FeatureList()
	if err != nil {
		return err
	}

	rt, err := openRuntime(cfg.Runtime)
	if err != nil {
		return err
	}
	loader, err := vulkan.NewLoader()
	if err != nil {
		return err
	}

	neg := dlss.NewNegotiator(dlss.NewCapabilityQuery(rt, loader, id, cfg.SDKOptions()...), features...)
	inst, err := dlss.CreateInstance(neg.InstanceHook(), loader.CreateInstance("dlssprobe", nil))
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	defer inst.Destroy()

	pd, err := pickAdapter(inst)
	if err != nil {
		return err
	}
	dev, err := dlss.RequestDevice(neg.DeviceHook(inst.Target(pd)), inst.RequestDevice(pd, nil))
	if err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	defer dev.Destroy()

	support := neg.Support()
	fmt.Fprintf(w, "runtime:  %s\nadapter:  %s\n", rt.Name(), pd)
	for _, f := range features {
		fmt.Fprintf(w, "%-20s %v\n", f.String()+":", support.Supported(f))
	}
	if !support.SuperResolution && !support.RayReconstruction {
		return nil
	}

	sdk, err := dlss.NewSDK(rt, id, probeDevice{native: dev.Native()}, cfg.SDKOptions()...)
	if err != nil {
		return err
	}
	defer func() {
		if err := sdk.Close(); err != nil {
			dlss.Logger().Error("close SDK", "error", err)
		}
	}()
	return printResolutions(w, sdk, cfg, support)
}

func openRuntime(name string) (ngx.Runtime, error) {
	if name != "" {
		return ngx.Open(name)
	}
	rt, err := ngx.Default()
	if errors.Is(err, ngx.ErrRuntimeUnavailable) && !ngx.Compiled {
		return nil, fmt.Errorf("%w (rebuild with -tags ngx)", err)
	}
	return rt, err
}

// pickAdapter prefers the first NVIDIA adapter.
func pickAdapter(inst *vulkan.Instance) (vulkan.PhysicalDevice, error) {
	adapters, err := inst.PhysicalDevices()
	if err != nil {
		return vulkan.PhysicalDevice{}, err
	}
	if len(adapters) == 0 {
		return vulkan.PhysicalDevice{}, errors.New("no Vulkan adapters")
	}
	for _, a := range adapters {
		if a.IsNVIDIA() {
			return a, nil
		}
	}
	dlss.Logger().Warn("no NVIDIA adapter, using the first one", "adapter", adapters[0].String())
	return adapters[0], nil
}

func printResolutions(w io.Writer, sdk *dlss.SDK, cfg *config.Config, support dlss.FeatureSupport) error {
	outputs, err := cfg.Resolutions()
	if err != nil {
		return err
	}
	presets := []dlss.PerfQualityMode{
		dlss.PerfQualityDLAA, dlss.PerfQualityQuality, dlss.PerfQualityBalanced,
		dlss.PerfQualityPerformance, dlss.PerfQualityUltraPerformance,
	}
	if p, err := cfg.PerfQuality(); err == nil && p == dlss.PerfQualityAuto {
		presets = append([]dlss.PerfQualityMode{dlss.PerfQualityAuto}, presets...)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nFEATURE\tOUTPUT\tPRESET\tRENDER\tMIN\tMAX")
	for _, f := range dlss.Features {
		if !support.Supported(f) {
			continue
		}
		for _, out := range outputs {
			for _, p := range presets {
				render, window, err := sdk.RenderResolution(f, out, p)
				if err != nil {
					fmt.Fprintf(tw, "%s\t%s\t%s\terror: %v\t\t\n", f, out, p, err)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", f, out, p, render, window.Min, window.Max)
			}
		}
	}
	return tw.Flush()
}

// probeDevice hands the runtime the native device without a command
// recording path; the probe never creates features.
type probeDevice struct {
	native ngx.NativeDevice
}

var errNoCommands = errors.New("dlssprobe: command recording not available")

func (probeDevice) Backend() gputypes.Backend                          { return gputypes.BackendVulkan }
func (d probeDevice) Native() ngx.NativeDevice                         { return d.native }
func (probeDevice) BeginCommands(string) (dlss.CommandRecorder, error) { return nil, errNoCommands }
func (probeDevice) Submit(dlss.CommandRecorder) error                  { return errNoCommands }
func (probeDevice) Discard(dlss.CommandRecorder)                       {}
func (probeDevice) WaitIdle() error                                    { return nil }
