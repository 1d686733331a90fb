// Package rules loads user-defined classification overrides.
//
// A rules document looks like
//
//	{"rules": [{"name": "Invoices", "match": "**/*invoice*.pdf", "target": "Finance/Invoices", "priority": 10}]}
//
// and may also be written as YAML when the file ends in .yaml or .yml.
package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned when a rules document exists but has no rules array
var ErrMalformed = errors.New("rules document is missing a rules array")

// Rule maps a glob pattern to a bucket
type Rule struct {
	Name     string  `json:"name" yaml:"name"`
	Match    string  `json:"match" yaml:"match"`
	Target   string  `json:"target" yaml:"target"`
	Priority float64 `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Document is the on-disk shape of a rules file
type Document struct {
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Load reads rules from path. A missing file yields an empty rule set.
// Entries without a string name, match or target are dropped.
func Load(path string, logger *zap.Logger) ([]Rule, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("rules file not found, using none", zap.String("path", path))
			return []Rule{}, nil
		}
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	return Parse(data, formatFor(path), logger)
}

// Parse decodes a rules document. format is "json" or "yaml".
func Parse(data []byte, format string, logger *zap.Logger) ([]Rule, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var raw map[string]interface{}
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse rules file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse rules file: %w", err)
		}
	}

	entries, ok := raw["rules"].([]interface{})
	if !ok {
		return nil, ErrMalformed
	}

	rules := make([]Rule, 0, len(entries))
	for i, entry := range entries {
		rule, ok := decodeRule(entry)
		if !ok {
			logger.Debug("dropping malformed rule", zap.Int("index", i))
			continue
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// Save writes rules as a JSON or YAML document depending on the extension
func Save(path string, rules []Rule) error {
	doc := Document{Rules: rules}

	var (
		data []byte
		err  error
	)
	if formatFor(path) == "yaml" {
		data, err = yaml.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create rules directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}
	return nil
}

// ResolvePath returns defaultPath when arg is empty, otherwise arg made absolute
func ResolvePath(arg, defaultPath string) (string, error) {
	if arg == "" {
		return defaultPath, nil
	}
	if filepath.IsAbs(arg) {
		return arg, nil
	}
	return filepath.Abs(arg)
}

// Sorted returns a copy of rules in evaluation order: descending priority,
// with equal priorities kept in their original order.
func Sorted(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return sorted
}

func decodeRule(entry interface{}) (Rule, bool) {
	fields, ok := entry.(map[string]interface{})
	if !ok {
		return Rule{}, false
	}

	name, ok1 := fields["name"].(string)
	match, ok2 := fields["match"].(string)
	target, ok3 := fields["target"].(string)
	if !ok1 || !ok2 || !ok3 {
		return Rule{}, false
	}

	return Rule{
		Name:     name,
		Match:    match,
		Target:   target,
		Priority: priorityOf(fields["priority"]),
	}, true
}

// priorityOf accepts JSON numbers and YAML numbers, fractions included;
// anything else is 0
func priorityOf(v interface{}) float64 {
	switch p := v.(type) {
	case float64:
		return p
	case int:
		return float64(p)
	case int64:
		return float64(p)
	case uint64:
		return float64(p)
	default:
		return 0
	}
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
