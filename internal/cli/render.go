package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/giftgrid/internal/grid"
	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

const cellWidth = 24

var (
	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(cellWidth).
			Padding(0, 1)
	emptyStyle = cellStyle.Faint(true)
	labelStyle = lipgloss.NewStyle().Bold(true)
	indexStyle = lipgloss.NewStyle().Faint(true).Width(4)
)

// renderGrid draws the grid as rows of bordered boxes. A cell's border takes
// the edge colour of its backdrop.
func renderGrid(g *grid.Grid) string {
	rows := make([]string, 0, g.Rows())
	for r := 0; r < g.Rows(); r++ {
		boxes := []string{indexStyle.Render(fmt.Sprintf("%d", r))}
		for c := 0; c < grid.Columns; c++ {
			cell, _ := g.Cell(r, c)
			boxes = append(boxes, renderCell(grid.Index(r, c), cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(index int, c *types.Cell) string {
	if c == nil || c.Gift == "" {
		return emptyStyle.Render(fmt.Sprintf("#%d\nempty\n\n", index))
	}
	lines := []string{
		labelStyle.Render(fmt.Sprintf("#%d %s", index, c.Gift)),
		"model:    " + orDash(c.Model),
		"pattern:  " + orDash(c.Pattern),
		"backdrop: " + orDash(backdropName(c.Backdrop)),
	}
	style := cellStyle
	if c.Backdrop != nil && c.Backdrop.Hex.EdgeColor != "" {
		style = style.BorderForeground(lipgloss.Color(c.Backdrop.Hex.EdgeColor))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func backdropName(b *types.Backdrop) string {
	if b == nil {
		return ""
	}
	return b.Name
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
