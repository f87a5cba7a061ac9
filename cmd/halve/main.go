// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Command halve splits a video file into two stream-copied halves by duration.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ManuGH/halve/internal/config"
	xglog "github.com/ManuGH/halve/internal/log"
	"github.com/ManuGH/halve/internal/media/ffmpeg"
	"github.com/ManuGH/halve/internal/metrics"
	"github.com/ManuGH/halve/internal/report"
	"github.com/ManuGH/halve/internal/split"
	"github.com/ManuGH/halve/internal/telemetry"
	"github.com/ManuGH/halve/internal/version"
	"github.com/google/uuid"
)

const usageLine = "Usage: halve [flags] <input-video-path>"

// Error kinds decided before a run starts; the rest come from split.Code.
const (
	codeUsage         = "UsageError"
	codeConfigInvalid = "ConfigInvalid"
)

const (
	exitOK      = 0
	exitFailure = 1
)

// hintNone disables hardware decoding explicitly.
const hintNone = "none"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("halve", flag.ContinueOnError)
	fs.SetOutput(stdout)

	configPath := fs.String("config", "", "path to config file (YAML); falls back to $"+config.EnvConfig)
	hwaccel := fs.String("hwaccel", config.DefaultHWAccel, "hardware decode hint: cuda, vaapi, amf or none")
	parallel := fs.Bool("parallel", false, "run both trims concurrently")
	ffmpegBin := fs.String("ffmpeg", config.DefaultFFmpegBin, "ffmpeg binary")
	ffprobeBin := fs.String("ffprobe", "", "ffprobe binary (default: next to -ffmpeg, else ffprobe)")
	logLevel := fs.String("log-level", "", "log level: trace, debug, info, warn, error")
	reportPath := fs.String("report", "", "write a JSON run report to this path")
	metricsFile := fs.String("metrics-file", "", "write Prometheus textfile metrics to this path")
	showVersion := fs.Bool("version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintln(stdout, usageLine)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "halve: %s: %v\n", codeUsage, err)
		return exitFailure
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return exitOK
	}

	switch fs.NArg() {
	case 0:
		fs.Usage()
		return exitFailure
	case 1:
	default:
		fmt.Fprintf(stderr, "halve: %s: expected one input path, got %d\n", codeUsage, fs.NArg())
		fs.Usage()
		return exitFailure
	}
	input := fs.Arg(0)

	// Safe defaults until the config is loaded.
	xglog.Configure(xglog.Config{Output: stderr, Service: "halve", Version: version.Version})
	logger := xglog.WithComponent("cli")

	// Only flags given on the command line override file and env values.
	var over config.Overrides
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hwaccel":
			over.HWAccel = hwaccel
		case "parallel":
			over.Parallel = parallel
		case "ffmpeg":
			over.FFmpegBin = ffmpegBin
		case "ffprobe":
			over.FFprobeBin = ffprobeBin
		case "log-level":
			over.LogLevel = logLevel
		case "report":
			over.Report = reportPath
		case "metrics-file":
			over.Metrics = metricsFile
		}
	})

	effectiveConfigPath := strings.TrimSpace(*configPath)
	if effectiveConfigPath == "" {
		effectiveConfigPath = strings.TrimSpace(config.ParseString(config.EnvConfig, ""))
	}

	cfg, err := config.NewLoader(effectiveConfigPath, version.Version).Load(over)
	if err != nil {
		fmt.Fprintf(stderr, "halve: %s: %v\n", codeConfigInvalid, err)
		return exitFailure
	}

	xglog.Configure(xglog.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  stderr,
		Service: "halve",
		Version: cfg.Version,
	})
	logger = xglog.WithComponent("cli")
	if effectiveConfigPath != "" {
		logger.Debug().
			Str(xglog.FieldEvent, "config.loaded").
			Str(xglog.FieldPath, effectiveConfigPath).
			Msg("loaded configuration from file")
	}

	runID := uuid.NewString()
	ctx = xglog.ContextWithRunID(ctx, runID)
	logger = xglog.WithComponentFromContext(ctx, "cli")

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "halve",
		ServiceVersion: cfg.Version,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("tracing disabled")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("failed to flush traces")
		}
	}()

	runMetrics := metrics.NewRun()

	executor := ffmpeg.NewExecutor(cfg.FFmpeg.Bin, xglog.WithComponent("ffmpeg"))
	executor.Stdout = stdout
	executor.Stderr = stderr

	splitter := split.New(
		ffmpeg.NewProber(cfg.FFmpeg.FFprobeBin, xglog.WithComponent("ffprobe")),
		executor,
		split.WithOutput(stdout),
		split.WithLogger(xglog.WithComponent("split")),
		split.WithParallel(cfg.Parallel),
		split.WithMetrics(runMetrics),
	)

	hint := cfg.HWAccel
	if strings.EqualFold(hint, hintNone) {
		hint = ""
	}

	startedAt := time.Now()
	res, runErr := splitter.Run(ctx, input, hint)
	finishedAt := time.Now()
	code := split.Code(runErr)

	exit := exitOK
	if runErr != nil {
		fmt.Fprintf(stderr, "halve: %s: %v\n", code, runErr)
		exit = exitFailure
	}

	if cfg.Report != "" {
		rep := report.Report{
			RunID:      runID,
			Version:    cfg.Version,
			Input:      input,
			Duration:   res.Plan.Duration,
			Half:       res.Plan.Half,
			HWAccel:    res.Plan.HWAccel,
			Decoder:    res.Plan.Decoder,
			Parallel:   cfg.Parallel,
			State:      string(res.State),
			ErrorCode:  code,
			StartedAt:  startedAt.UTC(),
			FinishedAt: finishedAt.UTC(),
		}
		if runErr != nil {
			rep.ErrorMsg = runErr.Error()
		}
		if res.State == split.StateDone {
			rep.Outputs = []string{res.Plan.Output1, res.Plan.Output2}
		}
		if err := report.Write(cfg.Report, rep); err != nil {
			logger.Error().Err(err).Str(xglog.FieldPath, cfg.Report).Msg("failed to write run report")
			exit = exitFailure
		}
	}

	runMetrics.Finish(code, finishedAt)
	if cfg.Metrics != "" {
		if err := runMetrics.WriteTextfile(cfg.Metrics); err != nil {
			logger.Error().Err(err).Str(xglog.FieldPath, cfg.Metrics).Msg("failed to write metrics")
			exit = exitFailure
		}
	}

	return exit
}
