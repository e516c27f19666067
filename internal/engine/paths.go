package engine

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveDestination applies the trailing-separator convention to a
// destination argument. A source ending in a separator copies its contents
// into dst; otherwise the source's base name is appended to dst, so
// "copy a b" places a at b/a.
func ResolveDestination(src, dst string) string {
	if strings.HasSuffix(src, string(os.PathSeparator)) || src == "." || src == ".." {
		return filepath.Clean(dst)
	}
	base := filepath.Base(filepath.Clean(src))
	if base == string(os.PathSeparator) || base == "." {
		return filepath.Clean(dst)
	}
	return filepath.Join(dst, base)
}
