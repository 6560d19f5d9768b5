package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/plus3/tetrad/display"
	"github.com/plus3/tetrad/engine"
	"github.com/plus3/tetrad/grid"
	"github.com/plus3/tetrad/piece"
)

const (
	blockCell  = "██"
	shadowCell = "░░"
	trailCell  = "··"
	emptyCell  = "  "
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	overStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func hex(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// cell renders one board cell as two terminal columns.
func cell(occ grid.Occupant) string {
	switch occ.Role {
	case grid.Block:
		return lipgloss.NewStyle().Foreground(hex(occ.Color)).Render(blockCell)
	case grid.Shadow:
		return lipgloss.NewStyle().Foreground(hex(piece.ShadowColor)).Render(shadowCell)
	case grid.Trail:
		return lipgloss.NewStyle().Foreground(hex(piece.TrailColor)).Render(trailCell)
	case grid.Wall:
		return lipgloss.NewStyle().Foreground(hex(piece.WallColor)).Render(blockCell)
	default:
		return emptyCell
	}
}

func board(s engine.Snapshot) string {
	var b strings.Builder
	for r := range grid.Rows {
		for c := range grid.Cols {
			b.WriteString(cell(s.Board[r][c]))
		}
		if r < grid.Rows-1 {
			b.WriteByte('\n')
		}
	}
	return borderStyle.Render(b.String())
}

func render(s engine.Snapshot, c *display.Controls) string {
	status := titleStyle.Render(s.Title())
	if s.Over {
		status = overStyle.Render(s.Title())
	}
	var flags []string
	if s.Muted {
		flags = append(flags, "muted")
	}
	if !s.Animations {
		flags = append(flags, "no anims")
	}
	if len(flags) > 0 {
		status += helpStyle.Render("  (" + strings.Join(flags, ", ") + ")")
	}
	help := helpStyle.Render(fmt.Sprintf("[%s] %s  Q quit", c.Scheme(), strings.Join(c.Help(), "  ")))
	return lipgloss.JoinVertical(lipgloss.Left, status, board(s), help)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
