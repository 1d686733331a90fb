// Package testutil provides test helpers and fixtures for inboxzero tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

// TestFixture holds paths to test directories and files
type TestFixture struct {
	T       *testing.T
	RootDir string // Root temp directory (auto-cleaned)

	// Standard source roots and their sorted folders
	Downloads       string
	Desktop         string
	DownloadsSorted string
	DesktopSorted   string
}

// NewFixture creates a new test fixture with Downloads and Desktop roots
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	root := t.TempDir()

	f := &TestFixture{
		T:         t,
		RootDir:   root,
		Downloads: filepath.Join(root, "Downloads"),
		Desktop:   filepath.Join(root, "Desktop"),
	}
	f.DownloadsSorted = filepath.Join(f.Downloads, "_Sorted")
	f.DesktopSorted = filepath.Join(f.Desktop, "_Sorted")

	for _, dir := range []string{f.Downloads, f.Desktop} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	return f
}

// Roots returns both source roots in scan order
func (f *TestFixture) Roots() []string {
	return []string{f.Downloads, f.Desktop}
}

// DestRoots maps each source root to its sorted folder
func (f *TestFixture) DestRoots() map[string]string {
	return map[string]string{
		f.Downloads: f.DownloadsSorted,
		f.Desktop:   f.DesktopSorted,
	}
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file with specified content and returns its path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := f.Path(relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateTextFile creates a file holding content as text
func (f *TestFixture) CreateTextFile(relPath, content string) string {
	f.T.Helper()
	return f.CreateFile(relPath, []byte(content))
}

// CreateFileWithAge creates a file and sets its modification time to the past
func (f *TestFixture) CreateFileWithAge(relPath string, content []byte, age time.Duration) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	oldTime := time.Now().Add(-age)

	if err := os.Chtimes(fullPath, oldTime, oldTime); err != nil {
		f.T.Fatalf("failed to set file time for %s: %v", fullPath, err)
	}

	return fullPath
}

// =============================================================================
// Directory Helpers
// =============================================================================

// CreateDir creates a directory and returns its path
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := f.Path(relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateSymlink creates a symbolic link
func (f *TestFixture) CreateSymlink(target, linkPath string) string {
	f.T.Helper()

	fullLinkPath := f.Path(linkPath)
	if err := os.MkdirAll(filepath.Dir(fullLinkPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for symlink: %v", err)
	}

	if err := os.Symlink(target, fullLinkPath); err != nil {
		f.T.Skipf("symlinks not supported: %v", err)
	}

	return fullLinkPath
}

// =============================================================================
// Path Helpers
// =============================================================================

// Path returns the full path for a relative path within the fixture
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, filepath.FromSlash(relPath))
}

// ListFiles returns every regular file below dir relative to dir, sorted
func (f *TestFixture) ListFiles(dir string) []string {
	f.T.Helper()

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			rel, _ := filepath.Rel(dir, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		f.T.Fatalf("failed to list %s: %v", dir, err)
	}

	sort.Strings(files)
	return files
}

// =============================================================================
// Assertion Helpers
// =============================================================================

// FileExists checks if a file exists
func (f *TestFixture) FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// AssertFileExists fails the test if the file doesn't exist
func (f *TestFixture) AssertFileExists(path string) {
	f.T.Helper()
	if !f.FileExists(path) {
		f.T.Errorf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists fails the test if the file exists
func (f *TestFixture) AssertFileNotExists(path string) {
	f.T.Helper()
	if f.FileExists(path) {
		f.T.Errorf("expected file to not exist: %s", path)
	}
}

// AssertFileContent fails the test unless path holds exactly want
func (f *TestFixture) AssertFileContent(path, want string) {
	f.T.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		f.T.Errorf("failed to read %s: %v", path, err)
		return
	}
	if string(data) != want {
		f.T.Errorf("content of %s = %q, want %q", path, string(data), want)
	}
}
