package config

import "github.com/fenilsonani/inboxzero/internal/scanner"

// DefaultRulesPath is where rules are read from unless configured otherwise
const DefaultRulesPath = "~/.inboxzero/rules.json"

// DefaultMaxDepth bounds recursion below each root
const DefaultMaxDepth = 10

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		Roots: []string{
			"~/Downloads",
			"~/Desktop",
		},
		DestRoots: map[string]string{},
		RulesPath: DefaultRulesPath,
		PlanDir:   "",
		Scan: scanner.Options{
			IncludeHidden: false,
			Ignore:        []string{},
			MaxDepth:      DefaultMaxDepth,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}
