// Package classifier decides which bucket a file belongs in.
package classifier

import (
	"path/filepath"
	"strings"

	"github.com/fenilsonani/inboxzero/internal/rules"
	"github.com/fenilsonani/inboxzero/internal/security"
	"github.com/fenilsonani/inboxzero/pkg/utils"
)

// Reason prefixes recorded on every classification
const (
	ReasonRule     = "rule:"
	ReasonType     = "type:"
	ReasonFallback = "fallback:"
)

// Result is the outcome of classifying a single file
type Result struct {
	Target string
	Reason string
}

// IsFallback reports whether no rule or extension matched
func (r Result) IsFallback() bool {
	return strings.HasPrefix(r.Reason, ReasonFallback)
}

// Classify returns the bucket for filePath. relPath is the path relative
// to the scan root. Classify never fails: unmatched files land in Other.
func Classify(filePath, relPath string, ruleSet []rules.Rule) Result {
	normalized := ToSlash(relPath)

	if rule, ok := pickRule(filePath, normalized, ruleSet); ok {
		return Result{Target: rule.Target, Reason: ReasonRule + rule.Name}
	}

	if bucket, ok := bucketFor(filePath); ok {
		return Result{Target: bucket, Reason: ReasonType + bucket}
	}

	return Result{Target: BucketOther, Reason: ReasonFallback + BucketOther}
}

// ToSlash converts both Windows and native separators to forward slashes
func ToSlash(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), `\`, "/")
}

// pickRule returns the first rule, in priority order, whose pattern matches
// the relative path or the base name
func pickRule(filePath, relPath string, ruleSet []rules.Rule) (rules.Rule, bool) {
	if len(ruleSet) == 0 {
		return rules.Rule{}, false
	}

	base := baseName(filePath)
	for _, rule := range rules.Sorted(ruleSet) {
		if security.MatchGlob(rule.Match, relPath) || security.MatchGlob(rule.Match, base) {
			return rule, true
		}
	}
	return rules.Rule{}, false
}

// bucketFor looks up compound extensions like ".tar.gz" before the last one
func bucketFor(filePath string) (string, bool) {
	base := strings.ToLower(baseName(filePath))
	ext := utils.Ext(base)
	if ext == "" {
		return "", false
	}

	stem := strings.TrimSuffix(base, ext)
	if inner := utils.Ext(stem); inner != "" {
		if bucket, ok := BucketForExtension(inner + ext); ok {
			return bucket, true
		}
	}
	return BucketForExtension(ext)
}

func baseName(p string) string {
	return filepath.Base(ToSlash(p))
}
