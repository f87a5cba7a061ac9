// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads the halve run configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath string
	version    string
}

// NewLoader creates a new configuration loader
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath: configPath,
		version:    version,
	}
}

// Load loads configuration with precedence: Flags > ENV > File > Defaults.
// Every returned error wraps ErrInvalid.
func (l *Loader) Load(over Overrides) (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("%w: load config file: %w", ErrInvalid, err)
		}
		mergeFileConfig(&cfg, fileCfg)
	}

	mergeEnvConfig(&cfg)
	mergeOverrides(&cfg, over)

	resolved := ResolveFFprobeBin(cfg.FFmpeg.FFprobeBin, cfg.FFmpeg.Bin)
	if resolved == "" {
		resolved = DefaultFFprobeBin
	}
	cfg.FFmpeg.FFprobeBin = resolved

	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		FFmpeg: FFmpegConfig{
			Bin: DefaultFFmpegBin,
		},
		HWAccel: DefaultHWAccel,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Telemetry: TelemetryConfig{
			Exporter:     DefaultOTelExporter,
			Endpoint:     DefaultOTelEndpoint,
			SamplingRate: DefaultOTelSampling,
		},
	}
}

// loadFile loads configuration from a YAML file with STRICT parsing.
// Unknown fields will cause a fatal error to prevent misconfiguration.
func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	// Strict: Ensure no multiple documents or trailing content
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

func mergeFileConfig(cfg *AppConfig, fc *FileConfig) {
	if fc == nil {
		return
	}
	if fc.FFmpeg != nil {
		setString(&cfg.FFmpeg.Bin, fc.FFmpeg.Bin)
		setString(&cfg.FFmpeg.FFprobeBin, fc.FFmpeg.FFprobeBin)
	}
	setString(&cfg.HWAccel, fc.HWAccel)
	setBool(&cfg.Parallel, fc.Parallel)
	if fc.Log != nil {
		setString(&cfg.Log.Level, fc.Log.Level)
		setString(&cfg.Log.Format, fc.Log.Format)
	}
	setString(&cfg.Report, fc.Report)
	setString(&cfg.Metrics, fc.Metrics)
	if fc.Telemetry != nil {
		setBool(&cfg.Telemetry.Enabled, fc.Telemetry.Enabled)
		setString(&cfg.Telemetry.Exporter, fc.Telemetry.Exporter)
		setString(&cfg.Telemetry.Endpoint, fc.Telemetry.Endpoint)
		if fc.Telemetry.SamplingRate != nil {
			cfg.Telemetry.SamplingRate = *fc.Telemetry.SamplingRate
		}
	}
}

func mergeEnvConfig(cfg *AppConfig) {
	cfg.FFmpeg.Bin = ParseString(EnvFFmpegBin, cfg.FFmpeg.Bin)
	cfg.FFmpeg.FFprobeBin = ParseString(EnvFFprobeBin, cfg.FFmpeg.FFprobeBin)
	cfg.HWAccel = ParseString(EnvHWAccel, cfg.HWAccel)
	cfg.Parallel = ParseBool(EnvParallel, cfg.Parallel)
	cfg.Log.Level = ParseString(EnvLogLevel, cfg.Log.Level)
	cfg.Log.Format = ParseString(EnvLogFormat, cfg.Log.Format)
	cfg.Report = ParseString(EnvReport, cfg.Report)
	cfg.Metrics = ParseString(EnvMetricsFile, cfg.Metrics)
	cfg.Telemetry.Enabled = ParseBool(EnvOTelEnabled, cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = ParseString(EnvOTelExporter, cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = ParseString(EnvOTelEndpoint, cfg.Telemetry.Endpoint)
	cfg.Telemetry.SamplingRate = ParseFloat(EnvOTelSampling, cfg.Telemetry.SamplingRate)
}

func mergeOverrides(cfg *AppConfig, o Overrides) {
	setString(&cfg.FFmpeg.Bin, o.FFmpegBin)
	setString(&cfg.FFmpeg.FFprobeBin, o.FFprobeBin)
	setString(&cfg.HWAccel, o.HWAccel)
	setBool(&cfg.Parallel, o.Parallel)
	setString(&cfg.Log.Level, o.LogLevel)
	setString(&cfg.Report, o.Report)
	setString(&cfg.Metrics, o.Metrics)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
