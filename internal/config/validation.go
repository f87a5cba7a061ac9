// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"strings"

	"github.com/ManuGH/halve/internal/validate"
)

// Validate validates an AppConfig using the centralized validation package.
// The hardware-acceleration hint is deliberately not validated: unknown
// tokens fall back to software decoding.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.NotEmpty("ffmpeg.bin", cfg.FFmpeg.Bin)
	v.NotEmpty("ffmpeg.ffprobe_bin", cfg.FFmpeg.FFprobeBin)

	v.OneOf("log.level", strings.ToLower(cfg.Log.Level), validate.LogLevels)
	v.OneOf("log.format", strings.ToLower(cfg.Log.Format), []string{"console", "json"})

	v.WritableFile("report_path", cfg.Report)
	v.WritableFile("metrics_file", cfg.Metrics)

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, []string{"grpc", "http"})
		v.NotEmpty("telemetry.endpoint", cfg.Telemetry.Endpoint)
		v.FloatRange("telemetry.sampling_rate", cfg.Telemetry.SamplingRate, 0, 1)
	}

	return v.Err()
}
