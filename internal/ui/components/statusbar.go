package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fenilsonani/inboxzero/internal/ui/styles"
	"github.com/fenilsonani/inboxzero/pkg/utils"
)

// StatusBar represents a status bar component that displays at the bottom of views
type StatusBar struct {
	viewName  string
	position  int
	total     int
	size      int64
	shortcuts []Shortcut
}

// Shortcut is one key hint shown on the right of the status bar
type Shortcut struct {
	Key  string
	Desc string
}

// NewStatusBar creates a new status bar
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetView sets the current view name
func (s *StatusBar) SetView(viewName string) {
	s.viewName = viewName
}

// SetPosition sets the cursor row, row count and the size of the shown rows
func (s *StatusBar) SetPosition(position, total int, size int64) {
	s.position = position
	s.total = total
	s.size = size
}

// SetShortcuts sets the shortcuts to display, in order
func (s *StatusBar) SetShortcuts(shortcuts ...Shortcut) {
	s.shortcuts = shortcuts
}

// Render renders the status bar with the given width
func (s *StatusBar) Render(width int) string {
	if width <= 0 {
		width = 80
	}

	var parts []string
	if s.viewName != "" {
		parts = append(parts, styles.BoldStyle.Render(s.viewName))
	}
	if s.total > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", s.position, s.total))
	}
	if s.size > 0 {
		parts = append(parts, styles.FileSizeStyle.Render(utils.FormatBytes(s.size)))
	}
	leftSide := strings.Join(parts, " • ")

	shortcutParts := make([]string, 0, len(s.shortcuts))
	for _, sc := range s.shortcuts {
		shortcutParts = append(shortcutParts, fmt.Sprintf("%s:%s", styles.DimStyle.Render(sc.Key), sc.Desc))
	}
	rightSide := strings.Join(shortcutParts, " ")

	spacing := width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide) - 2 // -2 for padding
	if spacing < 1 {
		spacing = 1
	}

	statusBarStyle := lipgloss.NewStyle().
		Foreground(styles.Text).
		Background(styles.BgDark).
		Padding(0, 1).
		Width(width)

	return statusBarStyle.Render(leftSide + strings.Repeat(" ", spacing) + rightSide)
}
