package styles

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme colors
var (
	Primary     = lipgloss.Color("#7C3AED")
	Secondary   = lipgloss.Color("#A78BFA")
	Success     = lipgloss.Color("#10B981")
	Warning     = lipgloss.Color("#F59E0B")
	Danger      = lipgloss.Color("#EF4444")
	Info        = lipgloss.Color("#3B82F6")
	Text        = lipgloss.Color("#F3F4F6")
	TextDim     = lipgloss.Color("#9CA3AF")
	Border      = lipgloss.Color("#4B5563")
	FocusBorder = lipgloss.Color("#8B5CF6")
	BgDark      = lipgloss.Color("#1F2937")
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	FilePathStyle = lipgloss.NewStyle().
			Foreground(Info)

	FileSizeStyle = lipgloss.NewStyle().
			Foreground(Warning)

	BucketStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(TextDim)

	BoldStyle = lipgloss.NewStyle().
			Bold(true)
)

// TableStyles returns the plan table look
func TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Border).
		BorderBottom(true).
		Bold(true).
		Foreground(Secondary)
	s.Selected = s.Selected.
		Foreground(Text).
		Background(Primary).
		Bold(false)
	return s
}

// ProgressBar renders a fixed-width bar for current out of total
func ProgressBar(current, total int, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := current * width / total
	if filled > width {
		filled = width
	}

	return SuccessStyle.Render(strings.Repeat("█", filled)) +
		DimStyle.Render(strings.Repeat("░", width-filled))
}
