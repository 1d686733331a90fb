// Package mover applies plans: it moves every planned file into place,
// never overwriting an existing file and falling back to copy-then-delete
// when a rename crosses a device boundary.
package mover

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"

	"github.com/fenilsonani/inboxzero/internal/plan"
	"github.com/fenilsonani/inboxzero/pkg/utils"
)

// MaxCollisionSuffix is the highest "(n)" suffix tried for a free name
const MaxCollisionSuffix = 9999

// Status is the final state of one action
type Status string

const (
	StatusSkipped Status = "skipped"
	StatusRenamed Status = "renamed"
	StatusCopied  Status = "copied"
	StatusFailed  Status = "failed"
)

// Outcome records what happened to one planned action
type Outcome struct {
	Action plan.Action `json:"action" yaml:"action"`
	Dest   string      `json:"dest,omitempty" yaml:"dest,omitempty"`
	Status Status      `json:"status" yaml:"status"`
	Error  string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result summarizes an apply run. On failure it holds the outcomes up to
// and including the failed action.
type Result struct {
	Outcomes   []Outcome     `json:"outcomes" yaml:"outcomes"`
	Moved      int           `json:"moved" yaml:"moved"`
	Copied     int           `json:"copied" yaml:"copied"`
	Skipped    int           `json:"skipped" yaml:"skipped"`
	MovedBytes int64         `json:"movedBytes" yaml:"moved_bytes"`
	Total      int           `json:"total" yaml:"total"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// ProgressFunc is called after each action with its 1-based index
type ProgressFunc func(done, total int, outcome Outcome)

// Mover executes plans against a filesystem
type Mover struct {
	fs       billy.Filesystem
	logger   *zap.Logger
	progress ProgressFunc
	writable func(dir string) bool
}

// Option configures a Mover
type Option func(*Mover)

// WithFilesystem makes the mover operate on fsys instead of the host
func WithFilesystem(fsys billy.Filesystem) Option {
	return func(m *Mover) {
		m.fs = fsys
	}
}

// WithLogger sets the mover's logger
func WithLogger(logger *zap.Logger) Option {
	return func(m *Mover) {
		m.logger = logger
	}
}

// WithProgress registers a callback invoked after every action
func WithProgress(fn ProgressFunc) Option {
	return func(m *Mover) {
		m.progress = fn
	}
}

// New creates a Mover
func New(opts ...Option) *Mover {
	m := &Mover{logger: zap.NewNop(), writable: dirWritable}
	for _, opt := range opts {
		opt(m)
	}
	if m.fs == nil {
		m.fs = osfs.New("/")
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	return m
}

// Apply executes the plan's actions in order. The first failure aborts the
// batch; the partial result is returned together with the error.
func (m *Mover) Apply(ctx context.Context, p *plan.Plan) (*Result, error) {
	start := time.Now()
	result := &Result{
		Outcomes: make([]Outcome, 0, len(p.Actions)),
		Total:    len(p.Actions),
	}
	defer func() {
		result.Duration = time.Since(start)
	}()

	for i, action := range p.Actions {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		outcome, err := m.applyOne(action)
		result.Outcomes = append(result.Outcomes, outcome)

		switch outcome.Status {
		case StatusSkipped:
			result.Skipped++
		case StatusRenamed:
			result.Moved++
			result.MovedBytes += action.Size
		case StatusCopied:
			result.Moved++
			result.Copied++
			result.MovedBytes += action.Size
		}

		if m.progress != nil {
			m.progress(i+1, len(p.Actions), outcome)
		}

		if err != nil {
			m.logger.Error("apply aborted",
				zap.String("from", action.From),
				zap.String("to", action.To),
				zap.Int("completed", i),
				zap.Error(err))
			return result, err
		}
	}

	return result, nil
}

func (m *Mover) applyOne(action plan.Action) (Outcome, error) {
	outcome := Outcome{Action: action}

	if _, err := m.fs.Lstat(action.From); err != nil {
		if os.IsNotExist(err) {
			m.logger.Warn("source no longer exists, skipping", zap.String("from", action.From))
			outcome.Status = StatusSkipped
			return outcome, nil
		}
		return m.fail(outcome, CategorizeError("stat", action.From, err))
	}

	dest, err := UniqueDestination(m.fs, action.To)
	if err != nil {
		return m.fail(outcome, err)
	}
	outcome.Dest = dest

	if err := m.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return m.fail(outcome, CategorizeError("mkdir", filepath.Dir(dest), err))
	}

	err = m.fs.Rename(action.From, dest)
	switch {
	case err == nil:
		outcome.Status = StatusRenamed
	case IsCrossDeviceError(err):
		m.logger.Debug("rename crosses devices, copying instead",
			zap.String("from", action.From),
			zap.String("to", dest))
		if err := m.copyThenRemove(action.From, dest); err != nil {
			return m.fail(outcome, err)
		}
		outcome.Status = StatusCopied
	default:
		return m.fail(outcome, CategorizeError("rename", action.From, err))
	}

	m.logger.Info("moved file",
		zap.String("from", action.From),
		zap.String("to", dest),
		zap.String("status", string(outcome.Status)))
	return outcome, nil
}

func (m *Mover) fail(outcome Outcome, err error) (Outcome, error) {
	outcome.Status = StatusFailed
	outcome.Error = err.Error()
	return outcome, err
}

// copyThenRemove copies from to a new file at to and removes from only once
// the copy is complete. A failed copy leaves no partial destination behind.
func (m *Mover) copyThenRemove(from, to string) error {
	info, err := m.fs.Stat(from)
	if err != nil {
		return CategorizeError("stat", from, err)
	}

	if err := m.copyFile(from, to, info); err != nil {
		return err
	}

	if change, ok := m.fs.(billy.Change); ok {
		if err := change.Chtimes(to, info.ModTime(), info.ModTime()); err != nil {
			m.logger.Debug("failed to preserve modification time",
				zap.String("path", to),
				zap.Error(err))
		}
	}

	if err := m.fs.Remove(from); err != nil {
		return CategorizeError("remove", from, err)
	}
	return nil
}

// copyFile creates to exclusively and fills it from from. Once to has been
// created by this call, any later failure removes it again; a destination
// that someone else created is never touched.
func (m *Mover) copyFile(from, to string, info os.FileInfo) (err error) {
	src, err := m.fs.Open(from)
	if err != nil {
		return CategorizeError("open", from, err)
	}
	defer src.Close()

	dst, err := m.fs.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return CategorizeError("create", to, err)
	}
	defer func() {
		if err == nil {
			return
		}
		if removeErr := m.fs.Remove(to); removeErr != nil && !os.IsNotExist(removeErr) {
			m.logger.Warn("failed to remove partial copy",
				zap.String("path", to),
				zap.Error(removeErr))
		}
	}()

	srcHash := utils.NewHash()
	written, err := io.Copy(dst, io.TeeReader(src, srcHash))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return CategorizeError("copy", from, err)
	}

	copied, err := m.fs.Stat(to)
	if err != nil {
		return CategorizeError("stat", to, err)
	}
	if written != info.Size() || copied.Size() != info.Size() {
		return &MoveError{
			Path:     from,
			Op:       "copy",
			Reason:   ReasonCopyMismatch,
			Original: fmt.Errorf("copied %d of %d bytes", copied.Size(), info.Size()),
		}
	}

	dstHash, err := utils.HashFile(m.fs, to)
	if err != nil {
		return CategorizeError("verify", to, err)
	}
	if want := utils.HashSum(srcHash); dstHash != want {
		return &MoveError{
			Path:     from,
			Op:       "copy",
			Reason:   ReasonCopyMismatch,
			Original: fmt.Errorf("checksum %s does not match source %s", dstHash, want),
		}
	}
	return nil
}

// UniqueDestination returns to if nothing exists there, otherwise the first
// free "<stem> (n)<ext>" sibling for n = 1..MaxCollisionSuffix
func UniqueDestination(fsys billy.Filesystem, to string) (string, error) {
	free, err := isFree(fsys, to)
	if err != nil {
		return "", err
	}
	if free {
		return to, nil
	}

	dir := filepath.Dir(to)
	stem, ext := utils.SplitExt(filepath.Base(to))
	for n := 1; n <= MaxCollisionSuffix; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		free, err := isFree(fsys, candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}

	return "", &MoveError{
		Path:     to,
		Op:       "resolve",
		Reason:   ReasonCollisionExhausted,
		Original: errors.New("all collision suffixes are taken"),
	}
}

func isFree(fsys billy.Filesystem, path string) (bool, error) {
	_, err := fsys.Lstat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, CategorizeError("stat", path, err)
}
