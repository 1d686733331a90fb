package mover

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fenilsonani/inboxzero/internal/plan"
)

// Problem describes a planned action that cannot be carried out as is
type Problem struct {
	Action plan.Action
	Reason string
}

// PreflightReport groups a plan's actions by whether they can be moved
type PreflightReport struct {
	Ready   []plan.Action
	Missing []plan.Action // already gone, apply will skip them
	Blocked []Problem     // apply stops at the first of these
}

// Preflight checks every source of p without changing anything: it must
// still exist, be a regular file or symlink, and sit in a folder we can
// write to.
func (m *Mover) Preflight(p *plan.Plan) *PreflightReport {
	report := &PreflightReport{
		Ready:   []plan.Action{},
		Missing: []plan.Action{},
		Blocked: []Problem{},
	}
	writable := make(map[string]bool)

	for _, action := range p.Actions {
		info, err := m.fs.Lstat(action.From)
		if err != nil {
			if os.IsNotExist(err) {
				report.Missing = append(report.Missing, action)
				continue
			}
			report.Blocked = append(report.Blocked, Problem{Action: action, Reason: CategorizeError("stat", action.From, err).Reason.String()})
			continue
		}

		if kind := specialKind(info.Mode()); kind != "" {
			report.Blocked = append(report.Blocked, Problem{Action: action, Reason: fmt.Sprintf("is a %s", kind)})
			continue
		}

		dir := filepath.Dir(action.From)
		ok, seen := writable[dir]
		if !seen {
			ok = m.writable(dir)
			writable[dir] = ok
		}
		if !ok {
			report.Blocked = append(report.Blocked, Problem{Action: action, Reason: ReasonPermissionDenied.String()})
			continue
		}

		report.Ready = append(report.Ready, action)
	}

	return report
}

// HasProblems reports whether applying the plan is known to stop early
func (r *PreflightReport) HasProblems() bool {
	return len(r.Blocked) > 0
}

func specialKind(mode os.FileMode) string {
	switch {
	case mode&os.ModeCharDevice != 0:
		return "character device"
	case mode&os.ModeDevice != 0:
		return "device file"
	case mode&os.ModeSocket != 0:
		return "socket"
	case mode&os.ModeNamedPipe != 0:
		return "named pipe"
	case mode.IsDir():
		return "directory"
	}
	return ""
}
