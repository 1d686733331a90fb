package plan

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"

	"github.com/fenilsonani/inboxzero/internal/classifier"
	"github.com/fenilsonani/inboxzero/internal/rules"
	"github.com/fenilsonani/inboxzero/internal/scanner"
	"github.com/fenilsonani/inboxzero/internal/security"
	"github.com/fenilsonani/inboxzero/pkg/utils"
)

// Builder turns scan results into a Plan
type Builder struct {
	fs      billy.Filesystem
	scanner *scanner.Scanner
	logger  *zap.Logger
	now     func() time.Time
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithFilesystem makes the builder walk and stat fsys instead of the host
func WithFilesystem(fsys billy.Filesystem) BuilderOption {
	return func(b *Builder) {
		b.fs = fsys
	}
}

// WithLogger sets the builder's logger
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithClock overrides the time source used for CreatedAt
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

// NewBuilder creates a Builder
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.fs == nil {
		b.fs = osfs.New("/")
	}
	b.scanner = scanner.New(b.fs, b.logger)
	return b
}

// Build scans every root that has a destination root and returns the
// resulting plan. Nothing on disk is modified.
func (b *Builder) Build(ctx context.Context, roots []string, destRoots map[string]string, ruleSet []rules.Rule, opts scanner.Options) (*Plan, error) {
	p := &Plan{
		Version:         Version,
		CreatedAt:       b.now().UTC(),
		Roots:           append([]string{}, roots...),
		DestRoots:       make(map[string]string, len(destRoots)),
		Actions:         []Action{},
		OtherTypeCounts: make(map[string]int),
	}
	allDests := make([]string, 0, len(destRoots))
	for root, dest := range destRoots {
		p.DestRoots[root] = dest
		if dest != "" {
			allDests = append(allDests, dest)
		}
	}
	sort.Strings(allDests)

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		destRoot, ok := destRoots[root]
		if !ok || destRoot == "" {
			b.logger.Debug("root has no destination, skipping", zap.String("root", root))
			continue
		}

		files := b.scanner.Walk(root, allDests, opts)
		b.logger.Debug("walked root",
			zap.String("root", root),
			zap.Int("files", len(files)))

		for _, filePath := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			action, ok := b.planFile(root, destRoot, filePath, ruleSet, p.OtherTypeCounts)
			if ok {
				p.Actions = append(p.Actions, action)
			}
		}
	}

	return p, nil
}

func (b *Builder) planFile(root, destRoot, filePath string, ruleSet []rules.Rule, otherCounts map[string]int) (Action, bool) {
	relPath := scanner.RelativePath(root, filePath)
	result := classifier.Classify(filePath, relPath, ruleSet)

	info, err := b.fs.Stat(filePath)
	if err != nil {
		// The file vanished or became unreadable since the walk
		b.logger.Warn("skipping file that cannot be stat'ed",
			zap.String("path", filePath),
			zap.Error(err))
		return Action{}, false
	}

	if result.IsFallback() {
		key := strings.ToLower(utils.Ext(filePath))
		if key == "" {
			key = NoExtensionKey
		}
		otherCounts[key]++
	}

	to, err := security.SafeJoin(destRoot, append(TargetSegments(result.Target), filepath.Base(filePath))...)
	if err != nil {
		b.logger.Warn("skipping file with unsafe destination",
			zap.String("path", filePath),
			zap.String("target", result.Target),
			zap.Error(err))
		return Action{}, false
	}

	return Action{
		From:   filePath,
		To:     to,
		Reason: result.Reason,
		Size:   info.Size(),
		MTime:  info.ModTime().UTC(),
	}, true
}

// TargetSegments splits a bucket such as "Finance/Invoices" or
// `Finance\Invoices` into path segments. Empty, "." and ".." segments are
// dropped so a target can never climb out of its destination root.
func TargetSegments(target string) []string {
	fields := strings.FieldsFunc(target, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	segments := make([]string, 0, len(fields))
	for _, field := range fields {
		segment := strings.TrimSpace(field)
		if segment == "" || segment == "." || segment == ".." {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}
