// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	xglog "github.com/ManuGH/halve/internal/log"
	"github.com/ManuGH/halve/internal/procgroup"
	"github.com/ManuGH/halve/internal/telemetry"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultKillGrace is how long a cancelled ffmpeg gets between SIGTERM and SIGKILL.
const DefaultKillGrace = 2 * time.Second

// Executor runs ffmpeg trims with the caller's stdout/stderr attached.
type Executor struct {
	BinaryPath string
	Logger     zerolog.Logger
	Stdout     io.Writer
	Stderr     io.Writer
	KillGrace  time.Duration
}

// NewExecutor returns an Executor that streams ffmpeg output to os.Stdout/os.Stderr.
func NewExecutor(binaryPath string, logger zerolog.Logger) *Executor {
	if binaryPath == "" {
		binaryPath = "ffmpeg"
	}
	return &Executor{
		BinaryPath: binaryPath,
		Logger:     logger,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		KillGrace:  DefaultKillGrace,
	}
}

// Trim runs one ffmpeg invocation and blocks until it exits.
// A non-zero exit status is returned as an error.
func (e *Executor) Trim(ctx context.Context, spec TrimSpec) error {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "ffmpeg.trim",
		trace.WithAttributes(telemetry.TrimAttributes(spec.Part.String(), spec.Output, spec.Point, spec.Decoder)...))
	defer span.End()

	args := spec.Args()
	logger := xglog.WithContext(ctx, e.Logger)
	logger.Debug().
		Str(xglog.FieldBinary, e.BinaryPath).
		Strs(xglog.FieldArgs, args).
		Str(xglog.FieldPart, spec.Part.String()).
		Msg("starting ffmpeg")

	// #nosec G204 - binary comes from operator config; args are built by TrimSpec
	cmd := exec.CommandContext(ctx, e.BinaryPath, args...)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	procgroup.Set(cmd)
	cmd.Cancel = func() error {
		return procgroup.Terminate(cmd)
	}
	cmd.WaitDelay = e.KillGrace

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ffmpeg failed")
		logger.Warn().Err(err).
			Str(xglog.FieldPart, spec.Part.String()).
			Dur("elapsed", elapsed).
			Msg("ffmpeg failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("ffmpeg %s cancelled: %w", spec.Part, ctxErr)
		}
		return fmt.Errorf("ffmpeg %s: %w", spec.Part, err)
	}

	logger.Debug().
		Str(xglog.FieldPart, spec.Part.String()).
		Dur("elapsed", elapsed).
		Msg("ffmpeg finished")
	return nil
}
