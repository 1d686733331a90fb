package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fenilsonani/inboxzero/internal/filelock"
)

// ErrLocked is returned when another process holds a plan's apply lock
var ErrLocked = errors.New("plan is locked by another process")

// Marshal encodes a plan as indented JSON
func Marshal(p *Plan) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes a plan and checks its schema version
func Unmarshal(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	if err := p.CheckVersion(); err != nil {
		return nil, err
	}
	if p.DestRoots == nil {
		p.DestRoots = map[string]string{}
	}
	if p.OtherTypeCounts == nil {
		p.OtherTypeCounts = map[string]int{}
	}
	if p.Actions == nil {
		p.Actions = []Action{}
	}
	return &p, nil
}

// Write stores a plan at path, creating parent directories as needed.
// Readers never observe a partially written plan.
func Write(p *Plan, path string) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	if err := filelock.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}

// Read loads a plan from path
func Read(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return Unmarshal(data)
}

// DefaultPath returns <dest root of the first root>/plan-YYYYMMDD-HHMMSS.json,
// falling back to the working directory when the plan has no destinations
func DefaultPath(p *Plan, now time.Time) string {
	base := ""
	for _, root := range p.Roots {
		if dest, ok := p.DestRoots[root]; ok && dest != "" {
			base = dest
			break
		}
	}
	if base == "" {
		if cwd, err := os.Getwd(); err == nil {
			base = cwd
		}
	}
	return filepath.Join(base, "plan-"+now.Format("20060102-150405")+".json")
}

// Lock takes the exclusive apply lock for the plan at path. The returned
// lock must be released with Unlock.
func Lock(path string) (*filelock.FileLock, error) {
	lock := filelock.NewFileLock(path + ".lock")
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return lock, nil
}
