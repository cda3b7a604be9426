// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads the YAML configuration of the dlssprobe tool.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/dlss"
)

// ErrNoProjectID is returned when the configuration has no project ID.
var ErrNoProjectID = errors.New("config: project_id is required")

// Config is the probe configuration.
type Config struct {
	// ProjectID identifies the application to the runtime.
	ProjectID     string `yaml:"project_id"`
	EngineVersion string `yaml:"engine_version"`
	AppDataPath   string `yaml:"app_data_path"`

	// Runtime selects a registered NGX runtime; empty uses the default.
	Runtime string `yaml:"runtime"`

	// Features to negotiate; empty means all.
	Features []string `yaml:"features"`
	Preset   string   `yaml:"preset"`
	Flags    []string `yaml:"flags"`
	// Outputs are the output resolutions to report render sizes for.
	Outputs []string `yaml:"outputs"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the tool's logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		EngineVersion: dlss.DefaultEngineVersion,
		AppDataPath:   dlss.DefaultApplicationDataPath,
		Preset:        dlss.PerfQualityAuto.String(),
		Outputs:       []string{"1920x1080", "2560x1440", "3840x2160"},
		Log:           LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field that has a typed form.
func (c *Config) Validate() error {
	if _, err := c.Project(); err != nil {
		return err
	}
	if _, err := c.FeatureList(); err != nil {
		return err
	}
	if _, err := c.PerfQuality(); err != nil {
		return err
	}
	if _, err := c.FeatureFlags(); err != nil {
		return err
	}
	if _, err := c.Resolutions(); err != nil {
		return err
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

// Project returns the parsed project ID.
func (c *Config) Project() (uuid.UUID, error) {
	if c.ProjectID == "" {
		return uuid.Nil, ErrNoProjectID
	}
	id, err := uuid.Parse(c.ProjectID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("config: project_id: %w", err)
	}
	return id, nil
}

// SDKOptions returns the SDK options the configuration sets.
func (c *Config) SDKOptions() []dlss.SDKOption {
	return []dlss.SDKOption{
		dlss.WithEngineVersion(c.EngineVersion),
		dlss.WithApplicationDataPath(c.AppDataPath),
	}
}

// FeatureList returns the features to negotiate.
func (c *Config) FeatureList() ([]dlss.Feature, error) {
	if len(c.Features) == 0 {
		return dlss.Features, nil
	}
	out := make([]dlss.Feature, 0, len(c.Features))
	for _, name := range c.Features {
		f, err := dlss.ParseFeature(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// PerfQuality returns the configured preset.
func (c *Config) PerfQuality() (dlss.PerfQualityMode, error) {
	if c.Preset == "" {
		return dlss.PerfQualityAuto, nil
	}
	return dlss.ParsePerfQualityMode(c.Preset)
}

// FeatureFlags returns the configured creation flags.
func (c *Config) FeatureFlags() (dlss.FeatureFlags, error) {
	return dlss.ParseFeatureFlags(c.Flags)
}

// Resolutions returns the configured output resolutions.
func (c *Config) Resolutions() ([]dlss.Resolution, error) {
	out := make([]dlss.Resolution, 0, len(c.Outputs))
	for _, s := range c.Outputs {
		r, err := dlss.ParseResolution(s)
		if err != nil {
			return nil, err
		}
		if r.IsZero() {
			return nil, fmt.Errorf("config: output %q has a zero axis", s)
		}
		out = append(out, r)
	}
	return out, nil
}

// NewLogger builds the logger the configuration describes, writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", s)
	}
}
