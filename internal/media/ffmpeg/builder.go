// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package ffmpeg wraps the ffprobe and ffmpeg binaries used to halve a file.
package ffmpeg

import "strconv"

const tracerName = "halve/ffmpeg"

// hwDecoders maps a hardware-acceleration hint to the H.264 decoder ffmpeg
// should use with it. Hints missing from the table add no arguments.
var hwDecoders = map[string]string{
	"cuda":  "h264_cuvid",
	"vaapi": "h264_vaapi",
	"amf":   "h264_amf",
}

// ResolveDecoder returns the decoder for hint, or ("", false) when the hint
// is unknown or empty.
func ResolveDecoder(hint string) (string, bool) {
	dec, ok := hwDecoders[hint]
	return dec, ok
}

// Part selects which side of the cut point a trim emits.
type Part int

const (
	// PartHead emits [0, Point).
	PartHead Part = iota + 1
	// PartTail emits [Point, end).
	PartTail
)

func (p Part) String() string {
	switch p {
	case PartHead:
		return "head"
	case PartTail:
		return "tail"
	default:
		return "unknown"
	}
}

// TrimSpec describes one stream-copy trim invocation.
type TrimSpec struct {
	Input   string
	Output  string
	Part    Part
	Point   float64 // cut point in seconds
	HWAccel string  // hint passed to -hwaccel when Decoder is set
	Decoder string  // empty disables hardware decoding arguments
}

// Args converts the spec into ffmpeg flags. Outputs are always overwritten.
func (s TrimSpec) Args() []string {
	args := []string{"-y"}
	if s.Decoder != "" {
		args = append(args, "-hwaccel", s.HWAccel, "-c:v", s.Decoder)
	}
	args = append(args, "-i", s.Input)

	switch s.Part {
	case PartHead:
		args = append(args, "-t", FormatSeconds(s.Point))
	case PartTail:
		args = append(args, "-ss", FormatSeconds(s.Point))
	}

	args = append(args, "-c:v", "copy", "-c:a", "copy", s.Output)
	return args
}

// FormatSeconds renders seconds without rounding or exponent notation.
func FormatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', -1, 64)
}
