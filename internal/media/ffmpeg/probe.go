// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ManuGH/halve/internal/telemetry"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrDurationUnavailable is returned when ffprobe fails or prints something
// other than a single non-negative number.
var ErrDurationUnavailable = errors.New("duration unavailable")

const maxStderr = 4096

// Prober reads container durations with ffprobe.
type Prober struct {
	BinaryPath string
	Logger     zerolog.Logger
}

// NewProber returns a Prober for the given ffprobe binary ("ffprobe" when empty).
func NewProber(binaryPath string, logger zerolog.Logger) *Prober {
	if binaryPath == "" {
		binaryPath = "ffprobe"
	}
	return &Prober{
		BinaryPath: binaryPath,
		Logger:     logger,
	}
}

// DurationArgs returns the ffprobe arguments that print only format=duration.
func DurationArgs(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
}

// Duration runs ffprobe and parses its stdout as seconds.
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "ffprobe.duration", trace.WithAttributes(telemetry.ProbeAttributes(path)...))
	defer span.End()

	// #nosec G204 - binary comes from operator config; path is passed as a single argv entry
	cmd := exec.CommandContext(ctx, p.BinaryPath, DurationArgs(path)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ffprobe failed")
		return 0, fmt.Errorf("%w: ffprobe failed: %w (stderr: %s)", ErrDurationUnavailable, err, truncate(stderr.String()))
	}

	d, err := ParseDuration(string(out))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unparseable duration")
		return 0, err
	}

	if stderr.Len() > 0 {
		p.Logger.Debug().Str("path", path).Str("stderr", truncate(stderr.String())).Msg("ffprobe wrote to stderr")
	}
	span.SetAttributes(telemetry.DurationAttribute(d))
	return d, nil
}

// ParseDuration parses ffprobe's single-token duration output.
func ParseDuration(out string) (float64, error) {
	token := strings.TrimSpace(out)
	if token == "" {
		return 0, fmt.Errorf("%w: ffprobe printed no duration", ErrDurationUnavailable)
	}
	d, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parse %q: %w", ErrDurationUnavailable, token, err)
	}
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, fmt.Errorf("%w: invalid duration %q", ErrDurationUnavailable, token)
	}
	return d, nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		return s[:maxStderr] + "..."
	}
	return s
}
