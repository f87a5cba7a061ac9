// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

// AppConfig is the effective configuration of a single halve run.
type AppConfig struct {
	FFmpeg    FFmpegConfig
	HWAccel   string
	Parallel  bool
	Log       LogConfig
	Report    string
	Metrics   string
	Telemetry TelemetryConfig
	Version   string
}

// FFmpegConfig names the media engine binaries.
type FFmpegConfig struct {
	Bin        string
	FFprobeBin string
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level  string
	Format string
}

// TelemetryConfig controls OpenTelemetry span export.
type TelemetryConfig struct {
	Enabled      bool
	Exporter     string
	Endpoint     string
	SamplingRate float64
}

// FileConfig is the YAML representation. Pointer fields distinguish
// "absent" from "zero" so that merging only touches keys that were set.
type FileConfig struct {
	FFmpeg *struct {
		Bin        *string `yaml:"bin"`
		FFprobeBin *string `yaml:"ffprobe_bin"`
	} `yaml:"ffmpeg"`
	HWAccel  *string `yaml:"hwaccel"`
	Parallel *bool   `yaml:"parallel"`
	Log      *struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"log"`
	Report    *string `yaml:"report_path"`
	Metrics   *string `yaml:"metrics_file"`
	Telemetry *struct {
		Enabled      *bool    `yaml:"enabled"`
		Exporter     *string  `yaml:"exporter"`
		Endpoint     *string  `yaml:"endpoint"`
		SamplingRate *float64 `yaml:"sampling_rate"`
	} `yaml:"telemetry"`
}

// Overrides carries explicitly set CLI flags. Nil fields were not set.
type Overrides struct {
	FFmpegBin  *string
	FFprobeBin *string
	HWAccel    *string
	Parallel   *bool
	LogLevel   *string
	Report     *string
	Metrics    *string
}

// Environment variable names.
const (
	EnvConfig       = "HALVE_CONFIG"
	EnvFFmpegBin    = "HALVE_FFMPEG_BIN"
	EnvFFprobeBin   = "HALVE_FFPROBE_BIN"
	EnvHWAccel      = "HALVE_HWACCEL"
	EnvParallel     = "HALVE_PARALLEL"
	EnvLogLevel     = "HALVE_LOG_LEVEL"
	EnvLogFormat    = "HALVE_LOG_FORMAT"
	EnvReport       = "HALVE_REPORT"
	EnvMetricsFile  = "HALVE_METRICS_FILE"
	EnvOTelEnabled  = "HALVE_OTEL_ENABLED"
	EnvOTelExporter = "HALVE_OTEL_EXPORTER"
	EnvOTelEndpoint = "HALVE_OTEL_ENDPOINT"
	EnvOTelSampling = "HALVE_OTEL_SAMPLING"
)

// Defaults.
const (
	DefaultFFmpegBin    = "ffmpeg"
	DefaultFFprobeBin   = "ffprobe"
	DefaultHWAccel      = "cuda"
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "console"
	DefaultOTelExporter = "http"
	DefaultOTelEndpoint = "localhost:4318"
	DefaultOTelSampling = 1.0
)
