package security

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchGlob reports whether name matches pattern. Matching is
// case-insensitive, "**" spans directories and wildcards match
// dot-files. name must use forward slashes. Malformed patterns never
// match.
func MatchGlob(pattern, name string) bool {
	ok, err := doublestar.Match(strings.ToLower(pattern), strings.ToLower(name))
	if err != nil {
		return false
	}
	return ok
}

// MatchAny reports whether name matches any of the patterns
func MatchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if MatchGlob(pattern, name) {
			return true
		}
	}
	return false
}

// ValidateGlobPattern validates that a glob pattern is safe
func ValidateGlobPattern(pattern string) error {
	// Check for dangerous characters
	if strings.Contains(pattern, "..") {
		return fmt.Errorf("glob pattern contains directory traversal: %s", pattern)
	}

	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	return nil
}
