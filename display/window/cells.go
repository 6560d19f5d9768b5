package window

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/plus3/tetrad/display"
	"github.com/plus3/tetrad/grid"
	"github.com/plus3/tetrad/piece"
)

// cellColor picks the draw color for a cell from its role. Only blocks carry
// their own color.
func cellColor(occ grid.Occupant) color.NRGBA {
	switch occ.Role {
	case grid.Block:
		return occ.Color
	case grid.Shadow:
		return piece.ShadowColor
	case grid.Trail:
		return piece.TrailColor
	case grid.Wall:
		return piece.WallColor
	default:
		return background
	}
}

func footer(c *display.Controls) string {
	return fmt.Sprintf("[%s] %s", c.Scheme(), strings.Join(c.Help(), "  "))
}
