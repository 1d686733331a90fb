package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/inboxzero/internal/mover"
	"github.com/fenilsonani/inboxzero/internal/plan"
	"github.com/fenilsonani/inboxzero/pkg/utils"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// ParseFormat validates a user supplied format name
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML, FormatSummary:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// BucketCount is one line of the per-bucket breakdown
type BucketCount struct {
	Bucket string `json:"bucket" yaml:"bucket"`
	Files  int    `json:"files" yaml:"files"`
}

// PlanReport is the machine-readable form of a plan summary
type PlanReport struct {
	PlanPath           string         `json:"plan_path" yaml:"plan_path"`
	CreatedAt          string         `json:"created_at" yaml:"created_at"`
	TotalFiles         int            `json:"total_files" yaml:"total_files"`
	TotalSize          int64          `json:"total_size" yaml:"total_size"`
	TotalSizeFormatted string         `json:"total_size_formatted" yaml:"total_size_formatted"`
	Buckets            []BucketCount  `json:"buckets" yaml:"buckets"`
	OtherTypeCounts    map[string]int `json:"other_type_counts" yaml:"other_type_counts"`
	Actions            []plan.Action  `json:"actions" yaml:"actions"`
}

// NewPlanReport summarizes p
func NewPlanReport(p *plan.Plan, planPath string) PlanReport {
	counts := p.BucketCounts()
	buckets := make([]BucketCount, 0, len(counts))
	for _, bucket := range p.SortedBuckets() {
		buckets = append(buckets, BucketCount{Bucket: bucket, Files: counts[bucket]})
	}

	return PlanReport{
		PlanPath:           planPath,
		CreatedAt:          p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		TotalFiles:         len(p.Actions),
		TotalSize:          p.TotalSize(),
		TotalSizeFormatted: utils.FormatBytes(p.TotalSize()),
		Buckets:            buckets,
		OtherTypeCounts:    p.OtherTypeCounts,
		Actions:            p.Actions,
	}
}

// ReportPlan describes a freshly built or loaded plan
func (r *Reporter) ReportPlan(p *plan.Plan, planPath string) error {
	report := NewPlanReport(p, planPath)

	switch r.format {
	case FormatSummary:
		return r.planSummary(report)
	case FormatTable:
		return r.planTable(report)
	case FormatJSON:
		return r.encodeJSON(report)
	case FormatYAML:
		return r.encodeYAML(report)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// ReportApply describes the outcome of applying a plan
func (r *Reporter) ReportApply(result *mover.Result) error {
	switch r.format {
	case FormatSummary:
		return r.applySummary(result)
	case FormatTable:
		return r.applyTable(result)
	case FormatJSON:
		return r.encodeJSON(result)
	case FormatYAML:
		return r.encodeYAML(result)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) planSummary(report PlanReport) error {
	bold := color.New(color.Bold)

	bold.Fprintf(r.writer, "=== Sort Plan ===\n")
	if report.PlanPath != "" {
		fmt.Fprintf(r.writer, "Plan: %s\n", report.PlanPath)
	}
	fmt.Fprintf(r.writer, "Files: %d\n", report.TotalFiles)
	fmt.Fprintf(r.writer, "Total Size: %s\n", report.TotalSizeFormatted)

	if len(report.Buckets) > 0 {
		fmt.Fprintf(r.writer, "\nBreakdown by Folder:\n")
		for _, b := range report.Buckets {
			fmt.Fprintf(r.writer, "  %-14s %d\n", b.Bucket, b.Files)
		}
	}

	if len(report.OtherTypeCounts) > 0 {
		fmt.Fprintf(r.writer, "\nUnrecognized types (sent to Other):\n")
		for _, ext := range sortedByCount(report.OtherTypeCounts) {
			fmt.Fprintf(r.writer, "  %-14s %d\n", ext, report.OtherTypeCounts[ext])
		}
	}

	if report.TotalFiles == 0 {
		color.New(color.FgGreen).Fprintf(r.writer, "\nNothing to sort.\n")
	}
	return nil
}

func (r *Reporter) planTable(report PlanReport) error {
	fmt.Fprintf(r.writer, "%-50s | %-50s | %-12s | %s\n", "From", "To", "Size", "Folder")
	fmt.Fprintf(r.writer, "%s\n", strings.Repeat("-", 130))

	for _, a := range report.Actions {
		fmt.Fprintf(r.writer, "%-50s | %-50s | %-12s | %s\n",
			truncatePath(a.From, 50),
			truncatePath(a.To, 50),
			utils.FormatBytes(a.Size),
			a.Bucket())
	}

	fmt.Fprintf(r.writer, "%s\n", strings.Repeat("-", 130))
	fmt.Fprintf(r.writer, "Total: %d files, %s\n", report.TotalFiles, report.TotalSizeFormatted)
	return nil
}

func (r *Reporter) applySummary(result *mover.Result) error {
	bold := color.New(color.Bold)

	bold.Fprintf(r.writer, "=== Apply Summary ===\n")
	color.New(color.FgGreen).Fprintf(r.writer, "Moved: %d files, %s\n", result.Moved, utils.FormatBytes(result.MovedBytes))
	if result.Copied > 0 {
		fmt.Fprintf(r.writer, "  (%d copied across devices)\n", result.Copied)
	}
	if result.Skipped > 0 {
		color.New(color.FgYellow).Fprintf(r.writer, "Skipped: %d missing files\n", result.Skipped)
	}
	if failed := countStatus(result, mover.StatusFailed); failed > 0 {
		color.New(color.FgRed).Fprintf(r.writer, "Failed: %d\n", failed)
	}
	if remaining := result.Total - len(result.Outcomes); remaining > 0 {
		fmt.Fprintf(r.writer, "Not attempted: %d\n", remaining)
	}
	fmt.Fprintf(r.writer, "Duration: %s\n", result.Duration.Round(time.Millisecond))
	return nil
}

func (r *Reporter) applyTable(result *mover.Result) error {
	fmt.Fprintf(r.writer, "%-8s | %-50s | %s\n", "Status", "From", "To")
	fmt.Fprintf(r.writer, "%s\n", strings.Repeat("-", 120))

	for _, o := range result.Outcomes {
		status := string(o.Status)
		switch o.Status {
		case mover.StatusRenamed, mover.StatusCopied:
			status = color.GreenString("%-8s", status)
		case mover.StatusSkipped:
			status = color.YellowString("%-8s", status)
		case mover.StatusFailed:
			status = color.RedString("%-8s", status)
		}
		dest := o.Dest
		if o.Status == mover.StatusFailed {
			dest = o.Error
		}
		fmt.Fprintf(r.writer, "%-8s | %-50s | %s\n", status, truncatePath(o.Action.From, 50), dest)
	}

	fmt.Fprintf(r.writer, "%s\n", strings.Repeat("-", 120))
	fmt.Fprintf(r.writer, "Total: %d moved, %d skipped\n", result.Moved, result.Skipped)
	return nil
}

func (r *Reporter) encodeJSON(v interface{}) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (r *Reporter) encodeYAML(v interface{}) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(v)
}

func countStatus(result *mover.Result, status mover.Status) int {
	n := 0
	for _, o := range result.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// sortedByCount orders keys by descending count, then name
func sortedByCount(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func truncatePath(path string, width int) string {
	if len(path) <= width {
		return path
	}
	return "..." + path[len(path)-(width-3):]
}
