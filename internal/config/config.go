package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/inboxzero/internal/scanner"
	"github.com/fenilsonani/inboxzero/internal/security"
)

// Config represents the application configuration
type Config struct {
	Roots     []string          `yaml:"roots"`
	DestRoots map[string]string `yaml:"dest_roots"` // explicit root -> destination overrides
	RulesPath string            `yaml:"rules_path"`
	PlanDir   string            `yaml:"plan_dir"` // empty: first destination root
	Scan      scanner.Options   `yaml:"scan"`
	Log       LogConfig         `yaml:"log"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
	Output string `yaml:"output"` // stderr, stdout, or file path
}

// Load loads configuration from a file. Keys missing from the file keep
// their default values.
func Load(configPath string) (*Config, error) {
	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := GetDefault()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Scan.MaxDepth < 0 {
		return fmt.Errorf("scan max_depth must be >= 0")
	}

	// Validate ignore patterns (glob syntax)
	for _, pattern := range c.Scan.Ignore {
		if err := security.ValidateGlobPattern(pattern); err != nil {
			return fmt.Errorf("invalid ignore pattern '%s': %w", pattern, err)
		}
	}

	// Destination roots must be absolute once ~ is expanded
	for root, dest := range c.DestRoots {
		if !isAbsOrHome(root) {
			return fmt.Errorf("dest_roots key must be absolute: %s", root)
		}
		if !isAbsOrHome(dest) {
			return fmt.Errorf("destination root must be absolute: %s", dest)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("unknown log format: %s", c.Log.Format)
	}

	return nil
}

// Expand returns a copy of the configuration with every ~ path resolved
// against homeDir
func (c *Config) Expand(homeDir string) *Config {
	expanded := *c

	expanded.Roots = make([]string, 0, len(c.Roots))
	for _, root := range c.Roots {
		expanded.Roots = append(expanded.Roots, ExpandPath(root, homeDir))
	}

	expanded.DestRoots = make(map[string]string, len(c.DestRoots))
	for root, dest := range c.DestRoots {
		expanded.DestRoots[ExpandPath(root, homeDir)] = ExpandPath(dest, homeDir)
	}

	expanded.RulesPath = ExpandPath(c.RulesPath, homeDir)
	expanded.PlanDir = ExpandPath(c.PlanDir, homeDir)
	expanded.Scan.Ignore = append([]string{}, c.Scan.Ignore...)
	return &expanded
}

// DestRootsFor maps each root to its destination: the configured override
// when one exists, <root>/_Sorted otherwise
func (c *Config) DestRootsFor(roots []string) map[string]string {
	dests := make(map[string]string, len(roots))
	for _, root := range roots {
		if dest, ok := c.DestRoots[root]; ok && dest != "" {
			dests[root] = dest
			continue
		}
		dests[root] = filepath.Join(root, scanner.SortedFolderName)
	}
	return dests
}

// ExpandPath replaces a leading ~ with homeDir and cleans the result.
// Empty paths stay empty.
func ExpandPath(path, homeDir string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(homeDir, path[2:])
	}
	return filepath.Clean(path)
}

func isAbsOrHome(path string) bool {
	return filepath.IsAbs(path) || path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`)
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".config", "inboxzero")
	return filepath.Join(configDir, "config.yaml"), nil
}

// EnsureConfigExists creates a default config file at configPath if it
// doesn't exist
func EnsureConfigExists(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Save(GetDefault(), configPath)
	}
	return nil
}
