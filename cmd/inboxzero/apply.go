package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fenilsonani/inboxzero/internal/mover"
	"github.com/fenilsonani/inboxzero/internal/plan"
	"github.com/fenilsonani/inboxzero/internal/reporter"
	"github.com/fenilsonani/inboxzero/internal/ui"
)

type applyOptions struct {
	force  bool
	output string
}

func newApplyCommand(a *app) *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply <plan>",
		Short: "Move files as described by a plan",
		Long: `Performs the moves recorded in a plan file, in order.

Files that vanished since the scan are skipped. An existing destination is
never overwritten: the file gets a " (n)" suffix instead. Apply stops at the
first move that fails and reports what was done.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runApply(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.force, "force", false, "skip the confirmation prompt")
	cmd.Flags().StringVar(&opts.output, "output", "summary", "output format (summary, table, json, yaml)")

	return cmd
}

func (a *app) runApply(cmd *cobra.Command, path string, opts *applyOptions) error {
	format, err := reporter.ParseFormat(opts.output)
	if err != nil {
		return err
	}

	planPath, err := a.absPath(path)
	if err != nil {
		return err
	}

	p, err := a.readPlan(planPath)
	if err != nil {
		return err
	}

	lock, err := plan.Lock(planPath)
	if err != nil {
		return err
	}
	defer lock.Unlock()

	out := cmd.OutOrStdout()
	humanOutput := format == reporter.FormatSummary || format == reporter.FormatTable
	if humanOutput {
		if err := reporter.New(out, reporter.FormatSummary).ReportPlan(p, planPath); err != nil {
			return err
		}
	}

	if len(p.Actions) == 0 {
		return nil
	}

	preflight := mover.New(mover.WithLogger(a.logger)).Preflight(p)
	if humanOutput {
		printPreflight(out, preflight)
	}

	if !opts.force {
		question := fmt.Sprintf("\n%s Move %d files? (y/N): ", color.YellowString("?"), len(p.Actions))
		if !confirm(cmd.InOrStdin(), out, question) {
			fmt.Fprintln(out, "Apply cancelled")
			return nil
		}
	}

	if humanOutput {
		fmt.Fprintln(out)
	}
	return a.applyPlan(cmd, p, format)
}

// maxListedProblems bounds how many blocked files are listed before apply
const maxListedProblems = 5

func printPreflight(out io.Writer, report *mover.PreflightReport) {
	if n := len(report.Missing); n > 0 {
		color.New(color.FgYellow).Fprintf(out, "\n%d files no longer exist and will be skipped\n", n)
	}
	if !report.HasProblems() {
		return
	}

	color.New(color.FgRed).Fprintf(out, "\n%d files cannot be moved; apply will stop at the first:\n", len(report.Blocked))
	for i, problem := range report.Blocked {
		if i == maxListedProblems {
			fmt.Fprintf(out, "  ... and %d more\n", len(report.Blocked)-maxListedProblems)
			break
		}
		fmt.Fprintf(out, "  %s: %s\n", problem.Action.From, problem.Reason)
	}
}

// readPlan loads and validates the plan at path
func (a *app) readPlan(path string) (*plan.Plan, error) {
	p, err := plan.Read(path)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("plan %s is not safe to apply: %w", path, err)
	}
	return p, nil
}

// applyPlan runs the mover over p and reports the result
func (a *app) applyPlan(cmd *cobra.Command, p *plan.Plan, format reporter.OutputFormat) error {
	progress := ui.NewApplyProgress(os.Stderr)
	m := mover.New(
		mover.WithLogger(a.logger),
		mover.WithProgress(progress.Update),
	)

	result, applyErr := m.Apply(a.ctx, p)
	progress.Finish()

	if err := reporter.New(cmd.OutOrStdout(), format).ReportApply(result); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if applyErr != nil {
		var moveErr *mover.MoveError
		if errors.As(applyErr, &moveErr) {
			fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("%s", moveErr.UserMessage()))
		}
		a.logger.Error("apply stopped", zap.Error(applyErr), zap.Int("completed", len(result.Outcomes)))
		return fmt.Errorf("apply stopped after %d of %d moves: %w", len(result.Outcomes), result.Total, applyErr)
	}

	a.logger.Info("plan applied",
		zap.Int("moved", result.Moved),
		zap.Int("skipped", result.Skipped),
		zap.Duration("duration", result.Duration))
	return nil
}
