package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/inboxzero/internal/ui/styles"
)

const (
	// MinTerminalWidth is the minimum recommended terminal width
	MinTerminalWidth = 80
	// MinTerminalHeight is the minimum recommended terminal height
	MinTerminalHeight = 24
)

// TruncatePath shortens path to maxWidth, keeping the file name and as much
// of the nearest directories as fit
func TruncatePath(path string, maxWidth int) string {
	if len(path) <= maxWidth {
		return path
	}
	if maxWidth < 10 {
		return "..."
	}

	dir, file := filepath.Split(path)
	if len(file) > maxWidth-4 {
		return "..." + file[len(file)-(maxWidth-4):]
	}

	sep := string(filepath.Separator)
	parts := strings.Split(filepath.Clean(dir), sep)
	kept := file
	for i := len(parts) - 1; i >= 0; i-- {
		candidate := parts[i] + sep + kept
		if len(candidate)+4 > maxWidth {
			break
		}
		kept = candidate
	}
	return "..." + sep + kept
}

// TableHeight returns how many plan rows fit below the header and above
// the status bar and detail panel
func TableHeight(terminalHeight int) int {
	const reservedLines = 14

	height := terminalHeight - reservedLines
	if height < 5 {
		height = 5
	}
	return height
}

// IsTerminalTooSmall checks if the terminal is below minimum recommended size
func IsTerminalTooSmall(width, height int) bool {
	return width < MinTerminalWidth || height < MinTerminalHeight
}

// GetSizeWarningBanner returns a warning banner if terminal is too small
func GetSizeWarningBanner(width, height int) string {
	if width == 0 || !IsTerminalTooSmall(width, height) {
		return ""
	}

	warning := fmt.Sprintf("⚠️  Terminal too small (%dx%d), recommended 80x24", width, height)
	return styles.WarningStyle.Render(warning) + "\n"
}
