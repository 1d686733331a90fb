package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fenilsonani/inboxzero/internal/plan"
	"github.com/fenilsonani/inboxzero/internal/ui/styles"
	"github.com/fenilsonani/inboxzero/pkg/utils"
)

// InfoPanel shows the details of one item below a list
type InfoPanel struct {
	title   string
	content []InfoItem
	visible bool
	width   int
}

// InfoItem represents a single piece of information
type InfoItem struct {
	Label string
	Value string
}

// NewInfoPanel creates a new info panel
func NewInfoPanel(title string, width int) *InfoPanel {
	return &InfoPanel{
		title:   title,
		visible: true,
		width:   width,
	}
}

// AddItem adds an information item to the panel
func (p *InfoPanel) AddItem(label, value string) {
	p.content = append(p.content, InfoItem{Label: label, Value: value})
}

// Toggle toggles the visibility of the panel
func (p *InfoPanel) Toggle() {
	p.visible = !p.visible
}

// IsVisible returns whether the panel is visible
func (p *InfoPanel) IsVisible() bool {
	return p.visible
}

// SetWidth sets the width of the panel
func (p *InfoPanel) SetWidth(width int) {
	p.width = width
}

// Render renders the info panel
func (p *InfoPanel) Render() string {
	if !p.visible || len(p.content) == 0 {
		return ""
	}

	width := p.width - 4
	if width < 40 {
		width = 40
	}

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.FocusBorder).
		Padding(0, 1).
		Width(width)

	labelStyle := lipgloss.NewStyle().
		Foreground(styles.Secondary).
		Bold(true).
		Width(10)

	var content strings.Builder
	content.WriteString(styles.BoldStyle.Render(p.title))
	for _, item := range p.content {
		content.WriteString("\n")
		content.WriteString(labelStyle.Render(item.Label))
		content.WriteString(item.Value)
	}

	return panelStyle.Render(content.String())
}

// ActionInfoPanel describes a planned move
func ActionInfoPanel(action plan.Action, width int) *InfoPanel {
	panel := NewInfoPanel("Selected move", width)
	panel.AddItem("From", styles.FilePathStyle.Render(action.From))
	panel.AddItem("To", styles.FilePathStyle.Render(action.To))
	panel.AddItem("Reason", styles.BucketStyle.Render(action.Reason))
	panel.AddItem("Size", styles.FileSizeStyle.Render(utils.FormatBytes(action.Size)))
	if !action.MTime.IsZero() {
		panel.AddItem("Modified", action.MTime.Local().Format("2006-01-02 15:04"))
	}
	return panel
}
