// SPDX-License-Identifier: MIT

// Package report writes the machine-readable summary of a halve run.
package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/renameio/v2"
)

// Status values for Report.Status.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Report is the JSON document written after a run.
type Report struct {
	RunID      string    `json:"run_id"`
	Version    string    `json:"version,omitempty"`
	Input      string    `json:"input"`
	Outputs    []string  `json:"outputs"`
	Duration   float64   `json:"duration_s"`
	Half       float64   `json:"half_s"`
	HWAccel    string    `json:"hwaccel,omitempty"`
	Decoder    string    `json:"decoder,omitempty"`
	Parallel   bool      `json:"parallel"`
	State      string    `json:"state"`
	Status     string    `json:"status"`
	ErrorCode  string    `json:"error_code,omitempty"`
	ErrorMsg   string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Finalize derives Status from ErrorCode and normalises nil slices.
func (r *Report) Finalize() {
	if r.Outputs == nil {
		r.Outputs = []string{}
	}
	if r.ErrorCode == "" {
		r.Status = StatusSucceeded
	} else {
		r.Status = StatusFailed
	}
}

// Write stores the report at path with full durability guarantees:
// renameio fsyncs the temp file before the atomic rename.
func Write(path string, r Report) error {
	r.Finalize()

	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	b = append(b, '\n')

	if err := renameio.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
