// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics records per-run Prometheus metrics and exports them in the
// node_exporter textfile format, since a CLI run has no scrape endpoint.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for RunsTotal.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Run holds the collectors of one halve invocation on a private registry.
type Run struct {
	reg *prometheus.Registry

	runs          *prometheus.CounterVec
	probeSeconds  prometheus.Histogram
	trimSeconds   *prometheus.HistogramVec
	inputDuration prometheus.Gauge
	lastRun       prometheus.Gauge
}

// NewRun creates a fresh registry with the halve collectors.
func NewRun() *Run {
	r := &Run{
		reg: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "halve_runs_total",
			Help: "Total halve runs by result and error code",
		}, []string{"result", "code"}),
		probeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "halve_probe_duration_seconds",
			Help:    "Wall time of the ffprobe duration probe",
			Buckets: prometheus.ExponentialBuckets(0.01, 2.0, 12), // 10ms to ~20s
		}),
		trimSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "halve_trim_duration_seconds",
			Help:    "Wall time of each ffmpeg stream-copy trim",
			Buckets: prometheus.ExponentialBuckets(0.1, 2.0, 14), // 100ms to ~27min
		}, []string{"part", "result"}),
		inputDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "halve_input_duration_seconds",
			Help: "Probed media duration of the input file",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "halve_last_run_timestamp_seconds",
			Help: "Unix time at which the last run finished",
		}),
	}
	r.reg.MustRegister(r.runs, r.probeSeconds, r.trimSeconds, r.inputDuration, r.lastRun)
	return r
}

// ObserveProbe records a successful probe and the duration it returned.
func (r *Run) ObserveProbe(elapsed time.Duration, mediaSeconds float64) {
	r.probeSeconds.Observe(elapsed.Seconds())
	r.inputDuration.Set(mediaSeconds)
}

// ObserveTrim records the wall time of one trim.
func (r *Run) ObserveTrim(part string, elapsed time.Duration, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	r.trimSeconds.WithLabelValues(part, result).Observe(elapsed.Seconds())
}

// Finish counts the run outcome. code is empty on success.
func (r *Run) Finish(code string, at time.Time) {
	result := ResultSuccess
	if code != "" {
		result = ResultFailure
	}
	r.runs.WithLabelValues(result, code).Inc()
	r.lastRun.Set(float64(at.Unix()))
}

// WriteTextfile atomically writes the registry in text exposition format.
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
