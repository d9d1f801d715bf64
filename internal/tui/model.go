// Package tui is the interactive view over a computed report. It only ever
// reads the document it was handed; collection stays in the pipeline.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/homelab-infra/portscope/pkg/model"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#585858")) // Dark Gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")). // White
			Background(lipgloss.Color("#7D56F4")). // Purple
			Padding(0, 1)

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#5f5fd7")). // Purple/Blue
				Bold(true).
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("#585858")). // Dark Gray
				Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676")) // Dimmed Gray

	conflictBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff5f5f")). // Soft red
			Bold(true)
)

type Model struct {
	doc      model.ReportDocument
	table    table.Model
	input    textinput.Model
	filter   string
	conflict bool // show conflicting records only
	width    int
	height   int
	quitting bool
}

func New(doc model.ReportDocument) Model {
	columns := []table.Column{
		{Title: "Port", Width: 6},
		{Title: "Proto", Width: 6},
		{Title: "Address", Width: 24},
		{Title: "Category", Width: 14},
		{Title: "PID", Width: 8},
		{Title: "Process", Width: 18},
		{Title: "Container", Width: 22},
		{Title: "Flags", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = tableHeaderStyle.BorderForeground(lipgloss.Color("#585858"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#ffffaf")). // Light Yellow
		Background(lipgloss.Color("#5f00d7")). // Purple
		Bold(false)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "Filter port, process, container..."
	ti.CharLimit = 64
	ti.Width = 40
	ti.Prompt = "> "

	m := Model{
		doc:   doc,
		table: t,
		input: ti,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(5, msg.Height-8))
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.input.Blur()
				m.filter = m.input.Value()
				m.refresh()
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.filter = m.input.Value()
			m.refresh()
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "/":
			m.input.Focus()
			return m, textinput.Blink
		case "c":
			m.conflict = !m.conflict
			m.refresh()
			return m, nil
		case "esc":
			if m.filter != "" {
				m.filter = ""
				m.input.SetValue("")
				m.refresh()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := titleStyle.Render(fmt.Sprintf(" portscope — %s ", m.doc.Host))

	status := fmt.Sprintf("%d/%d ports", len(m.table.Rows()), len(m.doc.Ports))
	if m.conflict {
		status += "  " + conflictBadge.Render("conflicts only")
	}
	if !m.doc.Docker.Available {
		status += "  docker unavailable"
	}

	var filterLine string
	if m.input.Focused() || m.filter != "" {
		filterLine = m.input.View() + "\n"
	}

	footer := footerStyle.Render("/: filter  c: conflicts  esc: clear  q: quit")

	return title + "  " + footerStyle.Render(status) + "\n" +
		filterLine +
		baseStyle.Render(m.table.View()) + "\n" +
		footer + "\n"
}

// Run opens the interactive table over a finished document.
func Run(doc model.ReportDocument) error {
	p := tea.NewProgram(New(doc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
