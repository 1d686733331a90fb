package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/inboxzero/internal/plan"
	"github.com/fenilsonani/inboxzero/internal/ui/components"
	"github.com/fenilsonani/inboxzero/internal/ui/styles"
	"github.com/fenilsonani/inboxzero/internal/ui/utils"
	pkgutils "github.com/fenilsonani/inboxzero/pkg/utils"
)

const allBuckets = "All"

// ReviewModel lets the user browse a plan before deciding to apply it
type ReviewModel struct {
	plan       *plan.Plan
	table      table.Model
	statusBar  *components.StatusBar
	buckets    []string
	filter     int
	visible    []int // indexes into plan.Actions for the current filter
	showInfo   bool
	confirming bool
	approved   bool
	width      int
	height     int
}

// NewReviewModel creates a review model for p
func NewReviewModel(p *plan.Plan) *ReviewModel {
	m := &ReviewModel{
		plan:      p,
		statusBar: components.NewStatusBar(),
		buckets:   append([]string{allBuckets}, p.SortedBuckets()...),
		showInfo:  true,
		width:     100,
		height:    30,
	}

	m.table = table.New(
		table.WithFocused(true),
		table.WithStyles(styles.TableStyles()),
		table.WithHeight(utils.TableHeight(m.height)),
	)
	m.table.SetColumns(m.columns())
	m.applyFilter()
	return m
}

// Approved reports whether the user confirmed applying the plan
func (m *ReviewModel) Approved() bool {
	return m.approved
}

// Filter returns the bucket currently shown
func (m *ReviewModel) Filter() string {
	return m.buckets[m.filter]
}

// VisibleActions returns the actions shown under the current filter
func (m *ReviewModel) VisibleActions() []plan.Action {
	actions := make([]plan.Action, 0, len(m.visible))
	for _, i := range m.visible {
		actions = append(actions, m.plan.Actions[i])
	}
	return actions
}

// Init initializes the review view
func (m *ReviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(utils.TableHeight(msg.Height))
		m.table.SetColumns(m.columns())
		m.table.SetRows(m.rows())
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			switch msg.String() {
			case "y", "Y":
				m.approved = true
				return m, tea.Quit
			case "n", "N", "esc":
				m.confirming = false
			case "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "a":
			if len(m.plan.Actions) > 0 {
				m.confirming = true
			}
			return m, nil
		case "tab":
			m.filter = (m.filter + 1) % len(m.buckets)
			m.applyFilter()
			return m, nil
		case "shift+tab":
			m.filter = (m.filter + len(m.buckets) - 1) % len(m.buckets)
			m.applyFilter()
			return m, nil
		case "i":
			m.showInfo = !m.showInfo
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the review view
func (m *ReviewModel) View() string {
	var b strings.Builder

	b.WriteString(utils.GetSizeWarningBanner(m.width, m.height))
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("📥 Review plan: %d moves, %s",
		len(m.plan.Actions), pkgutils.FormatBytes(m.plan.TotalSize()))))
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n\n")

	if len(m.plan.Actions) == 0 {
		b.WriteString(styles.SuccessStyle.Render("Nothing to sort."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
		if action, ok := m.selected(); ok && m.showInfo {
			b.WriteString(components.ActionInfoPanel(action, m.width).Render())
			b.WriteString("\n")
		}
	}

	if m.confirming {
		b.WriteString(styles.WarningStyle.Render(fmt.Sprintf("Apply %d moves? (y/n)", len(m.plan.Actions))))
		b.WriteString("\n")
	}

	var size int64
	for _, action := range m.VisibleActions() {
		size += action.Size
	}
	m.statusBar.SetView("Review")
	m.statusBar.SetPosition(m.table.Cursor()+1, len(m.visible), size)
	m.statusBar.SetShortcuts(
		components.Shortcut{Key: "↑/↓", Desc: "move"},
		components.Shortcut{Key: "tab", Desc: "folder"},
		components.Shortcut{Key: "i", Desc: "details"},
		components.Shortcut{Key: "a", Desc: "apply"},
		components.Shortcut{Key: "q", Desc: "quit"},
	)
	b.WriteString(m.statusBar.Render(m.width))

	return b.String()
}

func (m *ReviewModel) filterLine() string {
	counts := m.plan.BucketCounts()
	parts := make([]string, 0, len(m.buckets))
	for i, bucket := range m.buckets {
		count := counts[bucket]
		if bucket == allBuckets {
			count = len(m.plan.Actions)
		}
		label := fmt.Sprintf("%s (%d)", bucket, count)
		if i == m.filter {
			parts = append(parts, styles.BoldStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, styles.DimStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m *ReviewModel) selected() (plan.Action, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return plan.Action{}, false
	}
	return m.plan.Actions[m.visible[cursor]], true
}

func (m *ReviewModel) applyFilter() {
	bucket := m.Filter()
	m.visible = m.visible[:0]
	for i, action := range m.plan.Actions {
		if bucket == allBuckets || action.Bucket() == bucket {
			m.visible = append(m.visible, i)
		}
	}
	m.table.SetRows(m.rows())
	m.table.SetCursor(0)
}

func (m *ReviewModel) columns() []table.Column {
	fileWidth, bucketWidth, sizeWidth := 30, 14, 10
	destWidth := m.width - fileWidth - bucketWidth - sizeWidth - 10
	if destWidth < 20 {
		destWidth = 20
	}

	return []table.Column{
		{Title: "File", Width: fileWidth},
		{Title: "Folder", Width: bucketWidth},
		{Title: "Size", Width: sizeWidth},
		{Title: "Destination", Width: destWidth},
	}
}

func (m *ReviewModel) rows() []table.Row {
	cols := m.columns()
	rows := make([]table.Row, 0, len(m.visible))
	for _, i := range m.visible {
		action := m.plan.Actions[i]
		rows = append(rows, table.Row{
			utils.TruncatePath(filepath.Base(action.From), cols[0].Width),
			action.Bucket(),
			pkgutils.FormatBytes(action.Size),
			utils.TruncatePath(action.To, cols[3].Width),
		})
	}
	return rows
}
