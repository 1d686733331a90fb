package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fenilsonani/inboxzero/internal/classifier"
	"github.com/fenilsonani/inboxzero/internal/scanner"
)

func newClassifyCommand(a *app) *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "classify <file>...",
		Short: "Show which folder each file would be sorted into",
		Long: `Classifies the given paths the way scan would, without moving anything.
Paths inside a configured root are matched against rules relative to that
root; other paths are matched by file name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runClassify(cmd, args, rulesPath)
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "rules file (default: configured rules_path)")
	return cmd
}

func (a *app) runClassify(cmd *cobra.Command, paths []string, rulesPath string) error {
	ruleSet, _, err := a.loadRules(rulesPath)
	if err != nil {
		return err
	}

	roots, err := a.resolveRoots(nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	faint := color.New(color.Faint)
	for _, p := range paths {
		abs, err := a.absPath(p)
		if err != nil {
			return err
		}

		rel := filepath.Base(abs)
		if root, ok := a.rootFor(abs, roots); ok && root != abs {
			rel = scanner.RelativePath(root, abs)
		}

		result := classifier.Classify(abs, rel, ruleSet)
		fmt.Fprintf(out, "%s -> %s %s\n", p, color.CyanString(result.Target), faint.Sprintf("(%s)", result.Reason))
	}
	return nil
}
