package split

import (
	"errors"

	"github.com/ManuGH/halve/internal/media/ffmpeg"
)

var (
	// ErrInputNotFound means the input path does not resolve to a regular file.
	ErrInputNotFound = errors.New("input not found")

	// ErrDurationUnavailable means the probe failed or returned an unusable value.
	ErrDurationUnavailable = ffmpeg.ErrDurationUnavailable

	// ErrTrimFailed means one of the two ffmpeg trims did not exit cleanly.
	ErrTrimFailed = errors.New("trim failed")
)

// Error codes reported on stderr, in the run report and as metric labels.
const (
	CodeInputNotFound       = "InputNotFound"
	CodeDurationUnavailable = "DurationUnavailable"
	CodeTrimFailed          = "TrimFailed"
	CodeInternal            = "Internal"
)

// Code classifies err into one of the Code* constants ("" for nil).
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInputNotFound):
		return CodeInputNotFound
	case errors.Is(err, ErrDurationUnavailable):
		return CodeDurationUnavailable
	case errors.Is(err, ErrTrimFailed):
		return CodeTrimFailed
	default:
		return CodeInternal
	}
}
