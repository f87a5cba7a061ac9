package hardware

import (
	"os"
	"runtime"
	"testing"
	"time"
)

type fakeInfo struct{ name string }

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() os.FileMode  { return os.ModeDevice }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return false }
func (f fakeInfo) Sys() any           { return nil }

func withDevices(t *testing.T, present ...string) {
	t.Helper()
	set := make(map[string]bool, len(present))
	for _, p := range present {
		set[p] = true
	}
	orig := statFn
	statFn = func(name string) (os.FileInfo, error) {
		if set[name] {
			return fakeInfo{name: name}, nil
		}
		return nil, os.ErrNotExist
	}
	t.Cleanup(func() { statFn = orig })
}

func TestHasVAAPI(t *testing.T) {
	withDevices(t, "/dev/dri/renderD128")
	if !HasVAAPI() {
		t.Fatal("HasVAAPI must be true when the render node exists")
	}
	if HasCUDA() {
		t.Fatal("HasCUDA must be false without nvidia nodes")
	}
}

func TestHasCUDA(t *testing.T) {
	withDevices(t, "/dev/nvidia0")
	if !HasCUDA() {
		t.Fatal("HasCUDA must be true when /dev/nvidia0 exists")
	}
}

func TestProbe(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("device checks only run on linux")
	}
	withDevices(t, "/dev/nvidiactl")

	tests := []struct {
		hint        string
		wantPresent bool
		wantChecked bool
	}{
		{"cuda", true, true},
		{"vaapi", false, true},
		{"amf", false, false},
		{"", false, false},
		{"bogus", false, false},
	}
	for _, tt := range tests {
		present, checked := Probe(tt.hint)
		if present != tt.wantPresent || checked != tt.wantChecked {
			t.Errorf("Probe(%q) = (%v, %v), want (%v, %v)", tt.hint, present, checked, tt.wantPresent, tt.wantChecked)
		}
	}
}
