// Package plan builds, stores and validates move plans.
//
// A Plan is a complete, replayable record of one scan: every move it
// describes is computed up front and nothing on disk changes until the plan
// is handed to the mover. Plans hold only values, so they can be written to
// disk by one process and applied by another.
package plan

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fenilsonani/inboxzero/internal/security"
)

// Version is the schema tag written into every plan
const Version = 1

// NoExtensionKey counts Other files that have no extension
const NoExtensionKey = "(no extension)"

// ErrUnsupportedVersion is returned when a plan was written by an
// incompatible schema
var ErrUnsupportedVersion = errors.New("unsupported plan version")

// Action is one planned move
type Action struct {
	From   string    `json:"from" yaml:"from"`
	To     string    `json:"to" yaml:"to"`
	Reason string    `json:"reason" yaml:"reason"`
	Size   int64     `json:"size" yaml:"size"`
	MTime  time.Time `json:"mtime" yaml:"mtime"`
}

// Bucket returns the bucket named by the action's reason, e.g.
// "rule:Invoices" -> "Invoices" and "type:Docs" -> "Docs"
func (a Action) Bucket() string {
	parts := strings.Split(a.Reason, ":")
	if len(parts) == 2 {
		return parts[1]
	}
	return a.Reason
}

// Plan is the full record of a scan
type Plan struct {
	Version         int               `json:"version" yaml:"version"`
	CreatedAt       time.Time         `json:"createdAt" yaml:"created_at"`
	Roots           []string          `json:"roots" yaml:"roots"`
	DestRoots       map[string]string `json:"destRoots" yaml:"dest_roots"`
	Actions         []Action          `json:"actions" yaml:"actions"`
	OtherTypeCounts map[string]int    `json:"otherTypeCounts" yaml:"other_type_counts"`
}

// TotalSize returns the combined size of all planned files
func (p *Plan) TotalSize() int64 {
	var total int64
	for _, action := range p.Actions {
		total += action.Size
	}
	return total
}

// BucketCounts counts actions per bucket
func (p *Plan) BucketCounts() map[string]int {
	counts := make(map[string]int)
	for _, action := range p.Actions {
		counts[action.Bucket()]++
	}
	return counts
}

// SortedBuckets returns the bucket names of BucketCounts in lexical order
func (p *Plan) SortedBuckets() []string {
	counts := p.BucketCounts()
	buckets := make([]string, 0, len(counts))
	for bucket := range counts {
		buckets = append(buckets, bucket)
	}
	sort.Strings(buckets)
	return buckets
}

// CheckVersion rejects plans written with a different schema version
func (p *Plan) CheckVersion() error {
	if p.Version != Version {
		return fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, p.Version, Version)
	}
	return nil
}

// Validate checks the plan's structural invariants: every destination lies
// under the destination root of the root that produced it, and no source
// lies inside any destination root.
func (p *Plan) Validate() error {
	if err := p.CheckVersion(); err != nil {
		return err
	}

	destRoots := make([]string, 0, len(p.DestRoots))
	for _, dest := range p.DestRoots {
		destRoots = append(destRoots, dest)
	}
	pv := security.NewPathValidator(destRoots)

	for i, action := range p.Actions {
		root, ok := p.rootFor(action.From)
		if !ok {
			return fmt.Errorf("action %d: %s is not under any plan root", i, action.From)
		}
		if err := pv.ValidateMove(action.From, action.To, p.DestRoots[root]); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}

	return nil
}

// rootFor returns the most specific plan root containing path
func (p *Plan) rootFor(path string) (string, bool) {
	best := ""
	for _, root := range p.Roots {
		if _, ok := p.DestRoots[root]; !ok {
			continue
		}
		if security.IsInside(path, root) && len(root) > len(best) {
			best = root
		}
	}
	return best, best != ""
}
