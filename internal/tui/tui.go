// internal/tui/tui.go

// Package tui provides an interactive table of benchmark summaries built on
// Bubble Tea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mwiater/benchlog/internal/report"
)

// grouping is the current row layout.
type grouping int

const (
	byBatch grouping = iota // byBatch shows one row per batch size.
	byFile                  // byFile shows one row per log file and batch size.
)

func (g grouping) String() string {
	if g == byFile {
		return "by file"
	}
	return "by batch size"
}

var (
	titleStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Faint(true)
	baseStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

// model is the Bubble Tea model behind the summary viewer.
type model struct {
	table    table.Model
	mode     grouping
	byBatch  []report.Group
	byFile   []report.Group
	width    int
	height   int
	quitting bool
}

// newModel snapshots the aggregator's groups and builds the table.
func newModel(agg *report.Aggregator) *model {
	m := &model{
		byBatch: agg.ByBatch(),
		byFile:  agg.ByFile(),
	}
	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	m.table = t
	m.table.SetRows(m.rows())
	return m
}

func columns() []table.Column {
	return []table.Column{
		{Title: "Group", Width: 28},
		{Title: "N", Width: 6},
		{Title: "Mean ex/s", Width: 12},
		{Title: "Std", Width: 9},
		{Title: "Min", Width: 10},
		{Title: "Median", Width: 10},
		{Title: "Max", Width: 10},
		{Title: "Hours", Width: 7},
	}
}

func (m *model) groups() []report.Group {
	if m.mode == byFile {
		return m.byFile
	}
	return m.byBatch
}

func (m *model) rows() []table.Row {
	groups := m.groups()
	rows := make([]table.Row, 0, len(groups))
	for _, g := range groups {
		row := table.Row{g.Label, "0", "-", "-", "-", "-", "-", fmt.Sprintf("%.2f", g.Hours)}
		if r := g.Rate; r != nil {
			row[1] = humanize.Comma(int64(r.N))
			row[2] = humanize.CommafWithDigits(r.Mean, 2)
			row[3] = fmt.Sprintf("%.2f", r.StdDev)
			row[4] = humanize.CommafWithDigits(r.Min, 2)
			row[5] = humanize.CommafWithDigits(r.Median, 2)
			row[6] = humanize.CommafWithDigits(r.Max, 2)
		}
		rows = append(rows, row)
	}
	return rows
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and window resizes. tab toggles the grouping,
// q and ctrl+c quit, everything else is forwarded to the table.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.mode == byBatch {
				m.mode = byFile
			} else {
				m.mode = byBatch
			}
			m.table.SetRows(m.rows())
			m.table.GotoTop()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if h := msg.Height - 6; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the title, the table and a help line.
func (m *model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("benchlog "+m.mode.String()) + "\n")
	if len(m.groups()) == 0 {
		b.WriteString("\n  no benchmark records found\n")
	} else {
		b.WriteString(baseStyle.Render(m.table.View()) + "\n")
	}
	b.WriteString(helpStyle.Render(" ↑/↓ move • tab toggle grouping • q quit"))
	return b.String()
}

// Run starts the viewer and blocks until the user quits.
func Run(agg *report.Aggregator) error {
	p := tea.NewProgram(newModel(agg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
