package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/diagramkit/diagramkit/pkg/archetype"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ArchetypeListModel - Interactive archetype selection
// =============================================================================

// ArchetypeListModel is the bubbletea model for interactive archetype selection.
type ArchetypeListModel struct {
	Rules    []archetype.Rules
	Cursor   int
	Selected *archetype.Rules
	Height   int
	Offset   int
}

// NewArchetypeListModel creates a new archetype list model.
func NewArchetypeListModel(rules []archetype.Rules) ArchetypeListModel {
	return ArchetypeListModel{
		Rules:  rules,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m ArchetypeListModel) Init() tea.Cmd {
	return nil
}

func (m ArchetypeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rules)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			rules := m.Rules[m.Cursor]
			m.Selected = &rules
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ArchetypeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Archetype"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rules) {
		end = len(m.Rules)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rules[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			r.ArchetypeID,
			string(r.Strategy),
			elementRange(r),
			string(r.Provenance),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Archetype", "Strategy", "Elements", "Source").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rules))))

	return b.String()
}

// =============================================================================
// Static Table
// =============================================================================

// renderArchetypeTable renders the non-interactive archetype table used by
// 'archetypes list' and 'archetypes search'.
func renderArchetypeTable(rules []archetype.Rules) string {
	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, []string{
			r.ArchetypeID,
			string(r.Strategy),
			elementRange(r),
			string(r.Provenance),
			r.Description,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Archetype", "Strategy", "Elements", "Source", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 4 {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// elementRange formats the min/max element bounds for display.
func elementRange(r archetype.Rules) string {
	if r.MinElements == r.MaxElements {
		return fmt.Sprintf("%d", r.MinElements)
	}
	return fmt.Sprintf("%d–%d", r.MinElements, r.MaxElements)
}
