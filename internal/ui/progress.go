package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/fenilsonani/inboxzero/internal/mover"
	"github.com/fenilsonani/inboxzero/internal/ui/styles"
	"github.com/fenilsonani/inboxzero/pkg/utils"
)

// ApplyProgress draws a single self-overwriting progress line while a plan
// is applied
type ApplyProgress struct {
	mu         sync.Mutex
	out        io.Writer
	termWidth  int
	enabled    bool
	startTime  time.Time
	lastUpdate time.Time
	movedBytes int64
}

// NewApplyProgress creates a progress line on out. It stays silent when out
// is not a terminal.
func NewApplyProgress(out *os.File) *ApplyProgress {
	fd := int(out.Fd())
	width := 80
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		width = w
	}
	return newApplyProgress(out, width, term.IsTerminal(fd))
}

func newApplyProgress(out io.Writer, width int, enabled bool) *ApplyProgress {
	return &ApplyProgress{
		out:       out,
		termWidth: width,
		enabled:   enabled,
		startTime: time.Now(),
	}
}

// Update records one finished action. It matches mover.ProgressFunc.
func (ap *ApplyProgress) Update(done, total int, outcome mover.Outcome) {
	ap.mu.Lock()
	defer ap.mu.Unlock()

	if outcome.Status == mover.StatusRenamed || outcome.Status == mover.StatusCopied {
		ap.movedBytes += outcome.Action.Size
	}
	if !ap.enabled {
		return
	}

	// Throttle updates to avoid flickering (max 10 updates per second)
	now := time.Now()
	if done < total && now.Sub(ap.lastUpdate) < 100*time.Millisecond {
		return
	}
	ap.lastUpdate = now

	ap.render(done, total, filepath.Base(outcome.Action.From))
}

func (ap *ApplyProgress) render(done, total int, name string) {
	line := fmt.Sprintf(" %d/%d | %s | %s", done, total,
		utils.FormatBytes(ap.movedBytes), time.Since(ap.startTime).Round(time.Second))

	nameWidth := ap.termWidth - len(line) - 24
	if nameWidth > 0 {
		line += " | " + truncate(name, nameWidth)
	}

	fmt.Fprintf(ap.out, "\r\033[K%s%s", styles.ProgressBar(done, total, 20), line)
}

// Finish ends the progress line
func (ap *ApplyProgress) Finish() {
	ap.mu.Lock()
	defer ap.mu.Unlock()

	if ap.enabled {
		fmt.Fprint(ap.out, "\r\033[K")
	}
}

// truncate truncates a string to fit width
func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width < 4 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
