package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fenilsonani/inboxzero/internal/classifier"
	"github.com/fenilsonani/inboxzero/internal/rules"
)

func newRulesCommand(a *app) *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the classification rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRules(cmd, rulesPath)
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "rules file (default: configured rules_path)")
	return cmd
}

func (a *app) runRules(cmd *cobra.Command, rulesPath string) error {
	ruleSet, path, err := a.loadRules(rulesPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)

	bold.Fprintf(out, "=== Rules ===\n")
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		fmt.Fprintf(out, "Rules file: %s (not found)\n", path)
	} else {
		fmt.Fprintf(out, "Rules file: %s\n", path)
	}

	if len(ruleSet) == 0 {
		fmt.Fprintln(out, "No rules defined; files are sorted by type only.")
	} else {
		fmt.Fprintln(out)
		for i, r := range rules.Sorted(ruleSet) {
			fmt.Fprintf(out, "%2d. %-20s %-30s -> %s", i+1, r.Name, r.Match, color.CyanString(r.Target))
			if r.Priority != 0 {
				fmt.Fprintf(out, " (priority %g)", r.Priority)
			}
			fmt.Fprintln(out)
		}
	}

	fmt.Fprintf(out, "\nBuilt-in folders: %s\n", strings.Join(classifier.Buckets(), ", "))
	return nil
}
