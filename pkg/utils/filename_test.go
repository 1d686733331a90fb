package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "file.txt", ".txt"},
		{"upper case kept", "PHOTO.JPG", ".JPG"},
		{"double extension", "backup.tar.gz", ".gz"},
		{"no extension", "Makefile", ""},
		{"dotfile", ".bashrc", ""},
		{"dotfile with extension", ".index.md", ".md"},
		{"trailing dot", "weird.", "."},
		{"full path", "/tmp/dir.d/notes.md", ".md"},
		{"dotted directory", "/tmp/dir.d/README", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Ext(tt.input))
		})
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		input string
		stem  string
		ext   string
	}{
		{"file.txt", "file", ".txt"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{".env", ".env", ""},
		{"noext", "noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stem, ext := SplitExt(tt.input)
			assert.Equal(t, tt.stem, stem)
			assert.Equal(t, tt.ext, ext)
			assert.Equal(t, tt.input, stem+ext)
		})
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", FormatBytes(-5))
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.50 KB", FormatBytes(1536))
	assert.Equal(t, "2.00 MB", FormatBytes(2*MB))
	assert.Equal(t, "1.00 GB", FormatBytes(GB))
}
