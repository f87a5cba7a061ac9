// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("HALVE_TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, ParseBool("HALVE_TEST_BOOL", tt.def))
		})
	}
}

func TestParseFloat(t *testing.T) {
	t.Setenv("HALVE_TEST_FLOAT", "0.25")
	assert.InDelta(t, 0.25, ParseFloat("HALVE_TEST_FLOAT", 1), 1e-9)

	t.Setenv("HALVE_TEST_FLOAT", "abc")
	assert.InDelta(t, 1.0, ParseFloat("HALVE_TEST_FLOAT", 1), 1e-9)
}

func TestParseString(t *testing.T) {
	assert.Equal(t, "fallback", ParseString("HALVE_TEST_UNSET_KEY", "fallback"))

	t.Setenv("HALVE_TEST_STRING", "value")
	assert.Equal(t, "value", ParseString("HALVE_TEST_STRING", "fallback"))

	t.Setenv("HALVE_TEST_STRING", "")
	assert.Equal(t, "fallback", ParseString("HALVE_TEST_STRING", "fallback"))
}
