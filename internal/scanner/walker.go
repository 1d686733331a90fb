package scanner

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"

	"github.com/fenilsonani/inboxzero/internal/security"
)

// Scanner walks source roots looking for files to sort
type Scanner struct {
	fs     billy.Filesystem
	logger *zap.Logger
}

// New creates a Scanner over fsys. A nil fsys means the host filesystem.
func New(fsys billy.Filesystem, logger *zap.Logger) *Scanner {
	if fsys == nil {
		fsys = osfs.New("/")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		fs:     fsys,
		logger: logger,
	}
}

// Walk returns the absolute paths of all regular files under root that pass
// the filters in opts. Nothing inside any of destRoots is ever listed, so a
// destination of one root that lies under another root is skipped too.
// Directories that cannot be read are skipped.
func (s *Scanner) Walk(root string, destRoots []string, opts Options) []string {
	results := []string{}

	absRoot := absPath(root)
	sorted := security.NewPathValidator(absPaths(destRoots))
	stack := []dirJob{{dir: absRoot, depth: 0}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if sorted.IsSorted(current.dir) {
			continue
		}

		entries, err := s.fs.ReadDir(current.dir)
		if err != nil {
			// Permission denied or the directory vanished - skip and continue
			s.logger.Debug("skipping unreadable directory",
				zap.String("dir", current.dir),
				zap.Error(err))
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if !opts.IncludeHidden && isHidden(name) {
				continue
			}

			entryPath := filepath.Join(current.dir, name)
			if s.isIgnored(absRoot, entryPath, opts.Ignore) {
				continue
			}

			if entry.IsDir() {
				if name == SortedFolderName {
					continue
				}
				if current.depth < opts.MaxDepth {
					stack = append(stack, dirJob{dir: entryPath, depth: current.depth + 1})
				}
				continue
			}

			// Symlinks, sockets and devices are left alone
			if !entry.Mode().IsRegular() {
				continue
			}

			results = append(results, entryPath)
		}
	}

	return results
}

// RelativePath returns path relative to root with forward slashes
func RelativePath(root, path string) string {
	rel, err := filepath.Rel(absPath(root), path)
	if err != nil {
		return filepath.ToSlash(filepath.Base(path))
	}
	return filepath.ToSlash(rel)
}

func (s *Scanner) isIgnored(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return security.MatchAny(patterns, RelativePath(root, path))
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func absPaths(paths []string) []string {
	abs := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			abs = append(abs, absPath(p))
		}
	}
	return abs
}

func absPath(p string) string {
	if p == "" {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
