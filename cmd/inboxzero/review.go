package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fenilsonani/inboxzero/internal/plan"
	"github.com/fenilsonani/inboxzero/internal/reporter"
	"github.com/fenilsonani/inboxzero/internal/ui"
)

// errNotInteractive is returned by review when stdout is not a terminal
var errNotInteractive = errors.New("review needs an interactive terminal; use 'inboxzero scan --output table' instead")

func newReviewCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "review <plan>",
		Short: "Browse a plan interactively and optionally apply it",
		Long: `Opens a plan in a full-screen table.

Keys:
  tab / shift+tab  filter by destination folder
  i                toggle details of the selected move
  a                apply the plan (asks for confirmation)
  q / esc          quit without changes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReview(cmd, args[0])
		},
	}
}

func (a *app) runReview(cmd *cobra.Command, path string) error {
	if !isTerminal(os.Stdout) {
		return errNotInteractive
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

	approved, err := ui.RunReview(p)
	if err != nil {
		return err
	}
	if !approved {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes made.")
		return nil
	}

	return a.applyPlan(cmd, p, reporter.FormatSummary)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
