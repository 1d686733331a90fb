package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		expected bool
	}{
		{"double star matches top level", "**/*invoice*.pdf", "invoice-2026.pdf", true},
		{"double star matches nested", "**/*invoice*.pdf", "bills/2026/invoice-march.pdf", true},
		{"case insensitive", "*.PDF", "scan.pdf", true},
		{"case insensitive name", "*.pdf", "SCAN.PDF", true},
		{"star does not cross directories", "*.pdf", "bills/scan.pdf", false},
		{"dot files matched by star", "*", ".env", true},
		{"dot files matched in subdirs", "**/*.txt", "notes/.todo.txt", true},
		{"question mark", "img_??.png", "img_01.png", true},
		{"character class", "report[0-9].csv", "report7.csv", true},
		{"character class miss", "report[0-9].csv", "reportx.csv", false},
		{"braces", "*.{jpg,png}", "cat.png", true},
		{"directory prefix", "tmp/**", "tmp/a/b/c.bin", true},
		{"malformed pattern never matches", "[abc", "a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchGlob(tt.pattern, tt.path))
		})
	}
}

func TestMatchAny(t *testing.T) {
	patterns := []string{"*.tmp", "cache/**"}

	assert.True(t, MatchAny(patterns, "x.TMP"))
	assert.True(t, MatchAny(patterns, "cache/a/b"))
	assert.False(t, MatchAny(patterns, "keep.txt"))
	assert.False(t, MatchAny(nil, "keep.txt"))
}

func TestValidateGlobPattern(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		shouldError bool
	}{
		{"simple wildcard", "*.txt", false},
		{"double wildcard", "**/*.log", false},
		{"character class", "[abc]*.txt", false},
		{"alternatives", "*.{txt,log}", false},
		{"question mark", "file?.txt", false},
		{"unmatched bracket", "[abc", true},
		{"unmatched brace", "{abc", true},
		{"pattern with traversal", "../*.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGlobPattern(tt.pattern)
			if tt.shouldError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
