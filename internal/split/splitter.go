// Package split halves a media file into two stream-copied parts.
//
// A run probes the duration once, cuts at duration/2 and issues two trims:
// [0, half) into "<stem>-1<ext>" and [half, end) into "<stem>-2<ext>".
// Trims run one after the other unless parallel mode is enabled.
package split

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/ManuGH/halve/internal/hardware"
	xglog "github.com/ManuGH/halve/internal/log"
	"github.com/ManuGH/halve/internal/media/ffmpeg"
	"github.com/ManuGH/halve/internal/metrics"
	"github.com/ManuGH/halve/internal/telemetry"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Prober returns the duration of a media file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Trimmer runs one stream-copy trim to completion.
type Trimmer interface {
	Trim(ctx context.Context, spec ffmpeg.TrimSpec) error
}

// Plan is everything a run decided before the first trim.
type Plan struct {
	Input    string
	Output1  string
	Output2  string
	Duration float64
	Half     float64
	HWAccel  string
	Decoder  string
}

// Specs returns the head and tail trims of the plan.
func (p Plan) Specs() (head, tail ffmpeg.TrimSpec) {
	head = ffmpeg.TrimSpec{
		Input:   p.Input,
		Output:  p.Output1,
		Part:    ffmpeg.PartHead,
		Point:   p.Half,
		HWAccel: p.HWAccel,
		Decoder: p.Decoder,
	}
	tail = head
	tail.Output = p.Output2
	tail.Part = ffmpeg.PartTail
	return head, tail
}

// Result is the outcome of Run. Plan fields are filled as far as the run got.
type Result struct {
	Plan  Plan
	State State
}

// Splitter drives one halve run.
type Splitter struct {
	prober   Prober
	trimmer  Trimmer
	out      io.Writer
	logger   zerolog.Logger
	parallel bool
	metrics  *metrics.Run
}

// Option customises a Splitter.
type Option func(*Splitter)

// WithOutput sets where human-readable status lines go (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(s *Splitter) { s.out = w }
}

// WithLogger sets the structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Splitter) { s.logger = l }
}

// WithParallel runs both trims concurrently.
func WithParallel(enabled bool) Option {
	return func(s *Splitter) { s.parallel = enabled }
}

// WithMetrics records probe/trim timings on m.
func WithMetrics(m *metrics.Run) Option {
	return func(s *Splitter) { s.metrics = m }
}

// New returns a Splitter using prober for the duration and trimmer for both halves.
func New(prober Prober, trimmer Trimmer, opts ...Option) *Splitter {
	s := &Splitter{
		prober:  prober,
		trimmer: trimmer,
		out:     os.Stdout,
		logger:  xglog.WithComponent("split"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run halves input. hint selects a hardware decoder (see ffmpeg.ResolveDecoder);
// unknown hints silently decode in software.
func (s *Splitter) Run(ctx context.Context, input, hint string) (Result, error) {
	ctx, span := telemetry.Tracer("halve/split").Start(ctx, "halve.run",
		trace.WithAttributes(telemetry.RunAttributes(xglog.RunIDFromContext(ctx), input)...))
	defer span.End()

	logger := xglog.WithContext(ctx, s.logger)
	m := newMachine(func(from, to State, ev Event) {
		logger.Debug().
			Str(xglog.FieldOldState, string(from)).
			Str(xglog.FieldNewState, string(to)).
			Str(xglog.FieldEvent, string(ev)).
			Msg("state transition")
	})

	res := Result{Plan: Plan{Input: input}, State: StateStart}
	finish := func(err error) (Result, error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, Code(err))
			span.SetAttributes(telemetry.ErrorAttributes(Code(err))...)
			span.SetAttributes(telemetry.RunStatusAttribute(telemetry.RunStatusFailed))
			return res, err
		}
		span.SetAttributes(telemetry.RunStatusAttribute(telemetry.RunStatusSucceeded))
		return res, nil
	}
	fail := func(ev Event, err error) (Result, error) {
		res.State, _ = m.Fire(ev)
		return finish(err)
	}

	if !isRegularFile(input) {
		return fail(EventInputMissing, fmt.Errorf("%w: %s", ErrInputNotFound, input))
	}

	res.Plan.Output1, res.Plan.Output2 = OutputPaths(input)

	duration, err := s.probe(ctx, input)
	if err != nil {
		return fail(EventProbeFailed, err)
	}
	res.Plan.Duration = duration
	res.Plan.Half = duration / 2.0
	fmt.Fprintf(s.out, "Video duration: %.2f seconds\n", duration)
	res.State, _ = m.Fire(EventDurationProbed)

	if dec, ok := ffmpeg.ResolveDecoder(hint); ok {
		res.Plan.HWAccel = hint
		res.Plan.Decoder = dec
		if present, checked := hardware.Probe(hint); checked && !present {
			logger.Warn().Str(xglog.FieldHWAccel, hint).Msg("no device node found for hardware hint; ffmpeg may fail to decode")
		}
	} else if hint != "" {
		logger.Debug().Str(xglog.FieldHWAccel, hint).Msg("unknown hardware hint, decoding in software")
	}

	logger.Info().
		Str(xglog.FieldPath, input).
		Float64(xglog.FieldDuration, res.Plan.Duration).
		Float64(xglog.FieldHalf, res.Plan.Half).
		Str(xglog.FieldDecoder, res.Plan.Decoder).
		Bool("parallel", s.parallel).
		Msg("plan ready")

	head, tail := res.Plan.Specs()
	if s.parallel {
		err = s.trimBoth(ctx, logger, head, tail)
		if err != nil {
			return fail(EventTrimFailed, err)
		}
		res.State, _ = m.Fire(EventFirstHalfDone)
		res.State, _ = m.Fire(EventSecondHalfDone)
	} else {
		fmt.Fprintf(s.out, "Splitting first half: %s\n", head.Output)
		if err := s.trim(ctx, logger, head); err != nil {
			return fail(EventTrimFailed, err)
		}
		res.State, _ = m.Fire(EventFirstHalfDone)

		fmt.Fprintf(s.out, "Splitting second half: %s\n", tail.Output)
		if err := s.trim(ctx, logger, tail); err != nil {
			return fail(EventTrimFailed, err)
		}
		res.State, _ = m.Fire(EventSecondHalfDone)
	}

	if !m.Terminal() {
		return finish(fmt.Errorf("run stopped in non-terminal state %s", res.State))
	}

	fmt.Fprintf(s.out, "Done!\n 1: %s\n 2: %s\n", res.Plan.Output1, res.Plan.Output2)
	return finish(nil)
}

func (s *Splitter) probe(ctx context.Context, input string) (float64, error) {
	start := time.Now()
	d, err := s.prober.Duration(ctx, input)
	if err != nil {
		if !errors.Is(err, ErrDurationUnavailable) {
			err = fmt.Errorf("%w: %w", ErrDurationUnavailable, err)
		}
		return 0, err
	}
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, fmt.Errorf("%w: invalid duration %v", ErrDurationUnavailable, d)
	}
	if s.metrics != nil {
		s.metrics.ObserveProbe(time.Since(start), d)
	}
	return d, nil
}

func (s *Splitter) trim(ctx context.Context, logger zerolog.Logger, spec ffmpeg.TrimSpec) error {
	logger.Debug().
		Str(xglog.FieldPart, spec.Part.String()).
		Str(xglog.FieldOutputPath, spec.Output).
		Msg("splitting")

	start := time.Now()
	err := s.trimmer.Trim(ctx, spec)
	if s.metrics != nil {
		s.metrics.ObserveTrim(spec.Part.String(), time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTrimFailed, spec.Output, err)
	}
	return nil
}

// trimBoth runs head and tail concurrently; the first failure cancels the other.
func (s *Splitter) trimBoth(ctx context.Context, logger zerolog.Logger, head, tail ffmpeg.TrimSpec) error {
	fmt.Fprintf(s.out, "Splitting first half: %s\n", head.Output)
	fmt.Fprintf(s.out, "Splitting second half: %s\n", tail.Output)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.trim(gctx, logger, head) })
	g.Go(func() error { return s.trim(gctx, logger, tail) })
	return g.Wait()
}
