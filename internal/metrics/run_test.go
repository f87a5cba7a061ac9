// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Finish(t *testing.T) {
	r := NewRun()
	r.Finish("", time.Unix(1700000000, 0))
	r.Finish("TrimFailed", time.Unix(1700000100, 0))

	assert.InDelta(t, 1, testutil.ToFloat64(r.runs.WithLabelValues(ResultSuccess, "")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.runs.WithLabelValues(ResultFailure, "TrimFailed")), 0)
	assert.InDelta(t, 1700000100, testutil.ToFloat64(r.lastRun), 0)
}

func TestRun_ObserveProbeAndTrim(t *testing.T) {
	r := NewRun()
	r.ObserveProbe(150*time.Millisecond, 10)
	r.ObserveTrim("head", 2*time.Second, nil)
	r.ObserveTrim("tail", time.Second, errors.New("exit status 1"))

	assert.InDelta(t, 10, testutil.ToFloat64(r.inputDuration), 0)

	families, err := r.reg.Gather()
	require.NoError(t, err)

	var trims *dto.MetricFamily
	for _, mf := range families {
		if mf.GetName() == "halve_trim_duration_seconds" {
			trims = mf
		}
	}
	require.NotNil(t, trims, "trim histogram must be gathered")
	require.Len(t, trims.GetMetric(), 2)

	results := map[string]uint64{}
	for _, m := range trims.GetMetric() {
		var part, result string
		for _, lp := range m.GetLabel() {
			switch lp.GetName() {
			case "part":
				part = lp.GetValue()
			case "result":
				result = lp.GetValue()
			}
		}
		results[part+"/"+result] = m.GetHistogram().GetSampleCount()
	}
	assert.Equal(t, map[string]uint64{"head/success": 1, "tail/failure": 1}, results)
}

func TestRun_WriteTextfile(t *testing.T) {
	r := NewRun()
	r.ObserveProbe(time.Millisecond, 42)
	r.Finish("", time.Now())

	path := filepath.Join(t.TempDir(), "halve.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.True(t, strings.Contains(body, "halve_input_duration_seconds 42"), body)
	assert.Contains(t, body, `halve_runs_total{code="",result="success"} 1`)
}

func TestRun_WriteTextfile_BadDir(t *testing.T) {
	r := NewRun()
	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "halve.prom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write metrics textfile")
}
