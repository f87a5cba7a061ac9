// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across halve.
const (
	// Input attributes
	MediaPathKey     = "media.path"
	MediaDurationKey = "media.duration_s"

	// Trim attributes
	TrimPartKey    = "trim.part"
	TrimOutputKey  = "trim.output"
	TrimPointKey   = "trim.point_s"
	TrimDecoderKey = "trim.decoder"
	TrimHWKey      = "trim.hw_accelerated"

	// Run attributes
	RunIDKey     = "run.id"
	RunStatusKey = "run.status"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// Values for RunStatusKey.
const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// ProbeAttributes creates span attributes for a duration probe.
func ProbeAttributes(path string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(MediaPathKey, path),
	}
}

// DurationAttribute records the probed duration.
func DurationAttribute(seconds float64) attribute.KeyValue {
	return attribute.Float64(MediaDurationKey, seconds)
}

// TrimAttributes creates span attributes for one trim invocation.
func TrimAttributes(part, output string, point float64, decoder string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(TrimPartKey, part),
		attribute.String(TrimOutputKey, output),
		attribute.Float64(TrimPointKey, point),
		attribute.Bool(TrimHWKey, decoder != ""),
	}
	if decoder != "" {
		attrs = append(attrs, attribute.String(TrimDecoderKey, decoder))
	}
	return attrs
}

// RunAttributes creates span attributes for a whole run.
func RunAttributes(runID, input string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(RunIDKey, runID),
		attribute.String(MediaPathKey, input),
	}
}

// RunStatusAttribute records how a run ended.
func RunStatusAttribute(status string) attribute.KeyValue {
	return attribute.String(RunStatusKey, status)
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
