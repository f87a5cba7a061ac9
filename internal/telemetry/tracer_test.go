// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ManuGH/halve/internal/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false, ServiceName: "test-service"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if provider.tp != nil {
		t.Error("Expected noop provider (tp == nil)")
	}

	_, span := otel.Tracer("test").Start(context.Background(), "noop-check")
	if span.IsRecording() {
		t.Error("Expected noop tracer span to be non-recording")
	}
	span.End()
}

func TestNewProvider_InvalidExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{
		Enabled:      true,
		ServiceName:  "test-service",
		ExporterType: "invalid",
	})
	if err == nil {
		t.Fatal("Expected error for invalid exporter type")
	}

	expectedMsg := "unsupported exporter type: invalid (supported: grpc, http)"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestProvider_ExportsSpans(t *testing.T) {
	t.Cleanup(func() { _, _ = NewProvider(context.Background(), Config{}) })

	exp := tracetest.NewInMemoryExporter()
	provider, err := newProviderWithExporter(context.Background(), Config{
		Enabled:      true,
		ServiceName:  "halve",
		SamplingRate: 1.0,
	}, exp)
	if err != nil {
		t.Fatalf("newProviderWithExporter: %v", err)
	}

	_, span := Tracer("test").Start(context.Background(), "ffprobe.duration")
	span.SetAttributes(ProbeAttributes("clip.mp4")...)
	span.End()

	spans := exp.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 exported span, got %d", len(spans))
	}
	if spans[0].Name != "ffprobe.duration" {
		t.Errorf("span name = %q", spans[0].Name)
	}

	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0.0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tt := range tests {
		if got := samplerFor(tt.rate).Description(); got != tt.want {
			t.Errorf("samplerFor(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestProvider_ShutdownNoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := (&Provider{}).Shutdown(ctx); err != nil {
		t.Errorf("Expected no error on noop shutdown, got: %v", err)
	}
	var nilProvider *Provider
	if err := nilProvider.Shutdown(context.Background()); err != nil {
		t.Errorf("Expected nil-safe shutdown, got: %v", err)
	}
}

func TestNewProvider_RoutesOTelErrorsToLogger(t *testing.T) {
	t.Cleanup(func() { log.Configure(log.Config{}) })

	var buf bytes.Buffer
	log.Configure(log.Config{Level: "warn", Format: "json", Output: &buf})

	if _, err := NewProvider(context.Background(), Config{Enabled: false}); err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	otel.Handle(errors.New(`traces export: Post "http://127.0.0.1:1/v1/traces": connection refused`))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one structured log line, got %q: %v", buf.String(), err)
	}
	if entry[log.FieldComponent] != "telemetry" {
		t.Errorf("component = %v, want telemetry", entry[log.FieldComponent])
	}
	if msg, _ := entry["error"].(string); !strings.Contains(msg, "traces export") {
		t.Errorf("error = %v, want the export failure", entry["error"])
	}
}
