package split

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ManuGH/halve/internal/media/ffmpeg"
	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"input", fmt.Errorf("%w: x.mp4", ErrInputNotFound), CodeInputNotFound},
		{"probe", fmt.Errorf("wrap: %w", ffmpeg.ErrDurationUnavailable), CodeDurationUnavailable},
		{"trim", fmt.Errorf("%w: out", ErrTrimFailed), CodeTrimFailed},
		{"other", errors.New("boom"), CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Code(tt.err))
		})
	}
}
