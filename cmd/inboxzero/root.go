package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fenilsonani/inboxzero/internal/config"
	"github.com/fenilsonani/inboxzero/internal/logging"
	"github.com/fenilsonani/inboxzero/internal/platform"
	"github.com/fenilsonani/inboxzero/internal/rules"
	"github.com/fenilsonani/inboxzero/internal/security"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	configPath string
	verbose    bool
	logFormat  string
}

// app is the state prepared once per invocation before a command runs
type app struct {
	opts    globalOptions
	cfgPath string
	cfg     *config.Config // ~ already expanded
	info    *platform.Info
	ctx     context.Context
	logger  *zap.Logger
}

// NewRootCommand builds the inboxzero command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "inboxzero",
		Short: "Sort Downloads and Desktop into tidy folders",
		Long: `InboxZero sorts the loose files in your Downloads and Desktop folders
into a _Sorted folder, grouped by type or by your own rules.

Sorting happens in two steps:
  inboxzero scan           writes a plan of proposed moves, touching nothing
  inboxzero apply <plan>   performs the moves in the plan

Files are never deleted or overwritten. Name clashes get a " (n)" suffix.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&a.opts.configPath, "config", "", "config file path (default: ~/.config/inboxzero/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&a.opts.verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&a.opts.logFormat, "log-format", "", "log format (console, json)")

	cmd.AddCommand(newScanCommand(a))
	cmd.AddCommand(newApplyCommand(a))
	cmd.AddCommand(newReviewCommand(a))
	cmd.AddCommand(newClassifyCommand(a))
	cmd.AddCommand(newRulesCommand(a))
	cmd.AddCommand(newConfigCommand(a))

	return cmd
}

// setup loads configuration, initializes logging and tags the run with an ID
func (a *app) setup(cmd *cobra.Command) error {
	info, err := platform.GetInfo()
	if err != nil {
		return fmt.Errorf("failed to get platform info: %w", err)
	}

	cfgPath := a.opts.configPath
	if cfgPath == "" {
		cfgPath, err = config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to locate config: %w", err)
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: config.ExpandPath(cfg.Log.Output, info.HomeDir),
	}
	if a.opts.verbose {
		logCfg.Level = "debug"
	}
	if a.opts.logFormat != "" {
		logCfg.Format = a.opts.logFormat
	}
	if err := logging.Init(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRunID(ctx, uuid.NewString())

	a.cfgPath = cfgPath
	a.cfg = cfg.Expand(info.HomeDir)
	a.info = info
	a.ctx = ctx
	a.logger = logging.WithContext(ctx)

	a.logger.Debug("starting",
		zap.String("command", cmd.CommandPath()),
		zap.String("version", Version),
		zap.String("config", cfgPath),
		zap.String("os", string(info.OS)))
	return nil
}

// resolveRoots returns absolute source roots: the given paths, else the
// configured roots, else the platform's Downloads and Desktop
func (a *app) resolveRoots(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = a.cfg.Roots
	}
	if len(paths) == 0 {
		paths = a.info.DefaultRoots()
	}

	roots := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := a.absPath(p)
		if err != nil {
			return nil, err
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		roots = append(roots, abs)
	}
	return roots, nil
}

// loadRules reads the rules file named by flag, or the configured one
func (a *app) loadRules(flag string) ([]rules.Rule, string, error) {
	path, err := rules.ResolvePath(config.ExpandPath(flag, a.info.HomeDir), a.cfg.RulesPath)
	if err != nil {
		return nil, "", fmt.Errorf("invalid rules path: %w", err)
	}

	ruleSet, err := rules.Load(path, a.logger)
	if err != nil {
		return nil, path, err
	}
	return ruleSet, path, nil
}

// rootFor returns the most specific root containing path
func (a *app) rootFor(path string, roots []string) (string, bool) {
	best := ""
	for _, root := range roots {
		if security.IsInside(path, root) && len(root) > len(best) {
			best = root
		}
	}
	return best, best != ""
}

func (a *app) absPath(p string) (string, error) {
	expanded := config.ExpandPath(p, a.info.HomeDir)
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("invalid path %s: %w", p, err)
	}
	return abs, nil
}

// confirm asks a y/N question and reports whether the answer was yes
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprint(out, question)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
