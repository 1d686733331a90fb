package utils

import (
	"path/filepath"
	"strings"
)

// Ext returns the extension of a base name, including the dot.
// Leading dots belong to the name, so ".bashrc" has no extension
// while ".index.md" has ".md".
func Ext(name string) string {
	base := filepath.Base(name)
	trimmed := strings.TrimLeft(base, ".")
	idx := strings.LastIndex(trimmed, ".")
	if idx < 0 {
		return ""
	}
	return trimmed[idx:]
}

// SplitExt splits a base name into stem and extension so that
// stem + ext == base.
func SplitExt(base string) (string, string) {
	ext := Ext(base)
	return base[:len(base)-len(ext)], ext
}
