package split

import (
	"os"
	"strings"
)

// OutputPaths derives the two sibling outputs of input by inserting "-1"
// and "-2" between the stem and the extension. The extension is kept
// byte-for-byte; a name without one simply gets the suffix appended.
func OutputPaths(input string) (first, second string) {
	stem, ext := splitExt(input)
	return stem + "-1" + ext, stem + "-2" + ext
}

// splitExt splits at the last dot of the final path element. Leading dots
// of that element never start an extension, so ".hidden" has none.
func splitExt(p string) (stem, ext string) {
	nameStart := strings.LastIndexAny(p, pathSeparators) + 1
	name := p[nameStart:]

	lead := len(name) - len(strings.TrimLeft(name, "."))
	dot := strings.LastIndexByte(name[lead:], '.')
	if dot < 0 {
		return p, ""
	}
	cut := nameStart + lead + dot
	return p[:cut], p[cut:]
}

var pathSeparators = func() string {
	if os.PathSeparator == '/' {
		return "/"
	}
	return "/" + string(os.PathSeparator)
}()

// isRegularFile reports whether path resolves (following symlinks) to a regular file.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
