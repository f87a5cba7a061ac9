// Package hardware answers whether the device node behind a hardware
// decoding hint is present. The answer is advisory: a missing device only
// produces a warning, ffmpeg still receives the hint.
package hardware

import (
	"os"
	"runtime"
)

var (
	vaapiDevices = []string{"/dev/dri/renderD128"}
	cudaDevices  = []string{"/dev/nvidiactl", "/dev/nvidia0"}
)

// statFn is replaced in tests.
var statFn = os.Stat

// HasVAAPI checks if the VAAPI render device exists
func HasVAAPI() bool {
	return anyExists(vaapiDevices)
}

// HasCUDA checks if an NVIDIA control or GPU device node exists
func HasCUDA() bool {
	return anyExists(cudaDevices)
}

// Probe reports whether the device for hint is visible. checked is false
// when the hint has no device check on this platform (amf, unknown hints,
// non-linux systems).
func Probe(hint string) (present bool, checked bool) {
	if runtime.GOOS != "linux" {
		return false, false
	}
	switch hint {
	case "vaapi":
		return HasVAAPI(), true
	case "cuda":
		return HasCUDA(), true
	default:
		return false, false
	}
}

func anyExists(paths []string) bool {
	for _, p := range paths {
		if _, err := statFn(p); err == nil {
			return true
		}
	}
	return false
}
