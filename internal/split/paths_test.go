package split

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		input string
		want1 string
		want2 string
	}{
		{"clip.mp4", "clip-1.mp4", "clip-2.mp4"},
		{"/videos/Holiday.MKV", "/videos/Holiday-1.MKV", "/videos/Holiday-2.MKV"},
		{"archive.tar.gz", "archive.tar-1.gz", "archive.tar-2.gz"},
		{"noext", "noext-1", "noext-2"},
		{".hidden", ".hidden-1", ".hidden-2"},
		{"..double", "..double-1", "..double-2"},
		{".hidden.mov", ".hidden-1.mov", ".hidden-2.mov"},
		{"dir.d/clip", "dir.d/clip-1", "dir.d/clip-2"},
		{"trailing.", "trailing-1.", "trailing-2."},
		{"my clip (final).webm", "my clip (final)-1.webm", "my clip (final)-2.webm"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got1, got2 := OutputPaths(tt.input)
			assert.Equal(t, tt.want1, got1)
			assert.Equal(t, tt.want2, got2)
		})
	}
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	assert.True(t, isRegularFile(file))
	assert.False(t, isRegularFile(dir), "directories are not inputs")
	assert.False(t, isRegularFile(filepath.Join(dir, "missing.mp4")))
}
