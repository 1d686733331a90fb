package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IsInside reports whether candidate is root itself or lies beneath it.
// Both paths are cleaned before comparison.
func IsInside(candidate, root string) bool {
	cleanCandidate := filepath.Clean(candidate)
	cleanRoot := filepath.Clean(root)
	if cleanCandidate == cleanRoot {
		return true
	}

	rel, err := filepath.Rel(cleanRoot, cleanCandidate)
	if err != nil {
		return false
	}
	relSl := filepath.ToSlash(rel)
	return relSl != ".." && !strings.HasPrefix(relSl, "../") && !filepath.IsAbs(rel)
}

// SafeJoin joins parts under root and makes sure the result stays inside root
func SafeJoin(root string, parts ...string) (string, error) {
	p := filepath.Join(append([]string{root}, parts...)...)
	if !IsInside(p, root) {
		return "", fmt.Errorf("path escapes root %s: %s", root, p)
	}
	return p, nil
}

// PathValidator checks planned moves against the destination roots they
// were computed for
type PathValidator struct {
	destRoots []string
}

// NewPathValidator creates a validator for the given destination roots
func NewPathValidator(destRoots []string) *PathValidator {
	cleaned := make([]string, 0, len(destRoots))
	for _, root := range destRoots {
		cleaned = append(cleaned, filepath.Clean(root))
	}
	return &PathValidator{destRoots: cleaned}
}

// ValidateMove checks a single planned move from -> to whose destination
// root is destRoot
func (pv *PathValidator) ValidateMove(from, to, destRoot string) error {
	// Step 1: Paths must be absolute
	if !filepath.IsAbs(from) {
		return fmt.Errorf("source path must be absolute: %s", from)
	}
	if !filepath.IsAbs(to) {
		return fmt.Errorf("destination path must be absolute: %s", to)
	}

	// Step 2: The destination must stay under its root
	if destRoot == "" {
		return fmt.Errorf("no destination root for %s", from)
	}
	if filepath.Clean(to) == filepath.Clean(destRoot) || !IsInside(to, destRoot) {
		return fmt.Errorf("destination %s is outside %s", to, destRoot)
	}

	// Step 3: Keep the original base name
	if filepath.Base(from) != filepath.Base(to) {
		return fmt.Errorf("destination %s renames %s", to, filepath.Base(from))
	}

	// Step 4: Never move something that was already sorted
	if pv.IsSorted(from) {
		return fmt.Errorf("source %s is inside a destination root", from)
	}

	return nil
}

// IsSorted reports whether path lies inside any destination root
func (pv *PathValidator) IsSorted(path string) bool {
	for _, root := range pv.destRoots {
		if IsInside(path, root) {
			return true
		}
	}
	return false
}
