package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fenilsonani/inboxzero/internal/config"
	"github.com/fenilsonani/inboxzero/internal/plan"
	"github.com/fenilsonani/inboxzero/internal/reporter"
	"github.com/fenilsonani/inboxzero/internal/security"
	"github.com/fenilsonani/inboxzero/internal/ui"
)

type scanOptions struct {
	roots         []string
	out           string
	rulesPath     string
	includeHidden bool
	ignore        []string
	maxDepth      int
	output        string
	detailed      bool
}

func newScanCommand(a *app) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Write a plan of proposed moves without touching any file",
		Long: `Walks each root, classifies every file and writes the proposed moves
to a plan file. Nothing is moved until the plan is applied.

Use --detailed (-d) to see the destination folder tree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScan(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.roots, "root", nil, "folder to sort, repeatable (default: configured roots, else Downloads and Desktop)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "plan file path (default: <destination>/plan-<timestamp>.json)")
	cmd.Flags().StringVar(&opts.rulesPath, "rules", "", "rules file (default: configured rules_path)")
	cmd.Flags().BoolVar(&opts.includeHidden, "include-hidden", false, "include dot-files and dot-folders")
	cmd.Flags().StringSliceVar(&opts.ignore, "ignore", nil, "glob of root-relative paths to skip, repeatable")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", config.DefaultMaxDepth, "folder levels to descend below each root (0: top level only)")
	cmd.Flags().StringVar(&opts.output, "output", "summary", "output format (summary, table, json, yaml)")
	cmd.Flags().BoolVarP(&opts.detailed, "detailed", "d", false, "show the destination folder tree")

	return cmd
}

func (a *app) runScan(cmd *cobra.Command, opts *scanOptions) error {
	format, err := reporter.ParseFormat(opts.output)
	if err != nil {
		return err
	}

	scanOpts := a.cfg.Scan
	if cmd.Flags().Changed("include-hidden") {
		scanOpts.IncludeHidden = opts.includeHidden
	}
	if cmd.Flags().Changed("max-depth") {
		if opts.maxDepth < 0 {
			return fmt.Errorf("--max-depth must be >= 0")
		}
		scanOpts.MaxDepth = opts.maxDepth
	}
	for _, pattern := range opts.ignore {
		if err := security.ValidateGlobPattern(pattern); err != nil {
			return fmt.Errorf("invalid ignore pattern '%s': %w", pattern, err)
		}
		scanOpts.Ignore = append(scanOpts.Ignore, pattern)
	}

	roots, err := a.resolveRoots(opts.roots)
	if err != nil {
		return err
	}

	ruleSet, rulesPath, err := a.loadRules(opts.rulesPath)
	if err != nil {
		return err
	}

	destRoots := a.cfg.DestRootsFor(roots)

	a.logger.Info("scanning",
		zap.Strings("roots", roots),
		zap.String("rules", rulesPath),
		zap.Int("rule_count", len(ruleSet)),
		zap.Int("max_depth", scanOpts.MaxDepth))

	builder := plan.NewBuilder(plan.WithLogger(a.logger))
	p, err := builder.Build(a.ctx, roots, destRoots, ruleSet, scanOpts)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	planPath, err := a.planPath(p, opts.out)
	if err != nil {
		return err
	}
	if err := plan.Write(p, planPath); err != nil {
		return err
	}
	a.logger.Info("plan written", zap.String("path", planPath), zap.Int("actions", len(p.Actions)))

	out := cmd.OutOrStdout()
	if opts.detailed {
		ui.PrintPlanTree(out, p)
		fmt.Fprintf(out, "Plan: %s\n", planPath)
	} else if err := reporter.New(out, format).ReportPlan(p, planPath); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if format == reporter.FormatSummary && len(p.Actions) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Review with: %s\n", color.CyanString("inboxzero review %s", planPath))
		fmt.Fprintf(out, "Apply with:  %s\n", color.CyanString("inboxzero apply %s", planPath))
	}
	return nil
}

// planPath picks where the plan is written: --out, else plan_dir, else the
// first destination root
func (a *app) planPath(p *plan.Plan, out string) (string, error) {
	if out != "" {
		return a.absPath(out)
	}

	path := plan.DefaultPath(p, time.Now())
	if a.cfg.PlanDir != "" {
		path = filepath.Join(a.cfg.PlanDir, filepath.Base(path))
	}
	return path, nil
}
