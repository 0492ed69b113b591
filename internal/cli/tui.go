package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// HouseListModel - Interactive house browser
// =============================================================================

// HouseListModel is the bubbletea model for browsing houses. The list view
// shows one row per house; enter opens the members of the current house.
type HouseListModel struct {
	Houses []houseSummary
	Cursor int
	Height int
	Offset int

	// Open is true while the member view of the current house is shown.
	Open bool
}

// NewHouseListModel creates a new house list model.
func NewHouseListModel(houses []houseSummary) HouseListModel {
	return HouseListModel{
		Houses: houses,
		Height: 15,
	}
}

func (m HouseListModel) Init() tea.Cmd {
	return nil
}

func (m HouseListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace":
			if !m.Open {
				return m, tea.Quit
			}
			m.Open = false
		case "up", "k":
			if !m.Open && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Open && m.Cursor < len(m.Houses)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Houses) > 0 {
				m.Open = !m.Open
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m HouseListModel) View() string {
	if m.Open {
		return m.memberView()
	}

	var b strings.Builder

	b.WriteString(StyleTitle.Render("Houses"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ members  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Houses))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		h := m.Houses[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			h.Name,
			fmt.Sprintf("%d", len(h.Members)),
			fmt.Sprintf("%d", h.Generations()),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "House", "Members", "Generations").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Houses))))

	return b.String()
}

// memberView lists the members of the current house, one generation per
// block.
func (m HouseListModel) memberView() string {
	h := m.Houses[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render("House of " + h.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	level := 0
	for k, p := range h.Members {
		if k == 0 || p.Level != level {
			level = p.Level
			b.WriteString(listDimStyle.Render(fmt.Sprintf("Level %d", level)))
			b.WriteString("\n")
		}
		line := fmt.Sprintf("  %-28s %s", nameOrID(p.Name, p.ID), listDimStyle.Render(fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y)))
		if p.ID == h.Root {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func nameOrID(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
