// Package grid provides the bounded cell store shared by the falling pieces,
// the preview queue and the hold lane.
//
// The grid has no internal locking. Callers serialize writes through the
// owning piece's lock, and overlay cells (shadow and trail) may be
// overwritten by any piece's commit.
package grid

import (
	"image/color"
	"iter"
)

// Board dimensions and fixed layout.
const (
	Rows = 20
	Cols = 17

	// PlayfieldCols is the number of columns (0..9) that pieces fall through.
	PlayfieldCols = 10
	// WallCol is the permanent wall separating the playfield from the lanes.
	WallCol = 10
	// LaneWallRow is the partial wall dividing the preview lane from the hold lane.
	LaneWallRow = 13
	// LaneFirstCol is the first column of the preview/hold lanes.
	LaneFirstCol = 11
)

//go:generate go tool stringer -type=Role

// Role tags what a cell holds, independently of how it is drawn.
type Role uint8

const (
	Empty Role = iota
	Block
	Shadow
	Trail
	Wall
)

// Location is a (row, col) coordinate. Row 0 is the top of the board.
type Location struct {
	Row int
	Col int
}

// Add returns the location shifted by the given deltas.
func (l Location) Add(dRow, dCol int) Location {
	return Location{Row: l.Row + dRow, Col: l.Col + dCol}
}

// Occupant is the content of a single cell.
type Occupant struct {
	Role  Role
	Color color.NRGBA
	// Owner is the id of the live piece the cell belongs to, 0 for none.
	Owner uint32
}

// IsEmpty reports whether the cell holds nothing.
func (o Occupant) IsEmpty() bool {
	return o.Role == Empty
}

// IsOverlay reports whether the cell holds a shadow or trail.
func (o Occupant) IsOverlay() bool {
	return o.Role == Shadow || o.Role == Trail
}

// Overwritable reports whether a piece may move into the cell.
func (o Occupant) Overwritable() bool {
	return o.Role == Empty || o.IsOverlay()
}

// Board is a value copy of every cell, indexed [row][col].
type Board [Rows][Cols]Occupant

// At returns the occupant at loc, or the empty occupant if loc is out of bounds.
func (b *Board) At(loc Location) Occupant {
	if !inBounds(loc) {
		return Occupant{}
	}
	return b[loc.Row][loc.Col]
}

// Grid is a fixed Rows x Cols cell store holding at most one occupant per cell.
type Grid struct {
	cells Board
}

// New creates an empty grid.
func New() *Grid {
	return &Grid{}
}

// NewWithWalls creates a grid with the permanent wall column and the lane wall in place.
func NewWithWalls(wall color.NRGBA) *Grid {
	g := New()
	for r := 0; r < Rows; r++ {
		g.Put(Location{Row: r, Col: WallCol}, Occupant{Role: Wall, Color: wall})
	}
	for c := LaneFirstCol; c < Cols; c++ {
		g.Put(Location{Row: LaneWallRow, Col: c}, Occupant{Role: Wall, Color: wall})
	}
	return g
}

// NumRows returns the number of rows.
func (g *Grid) NumRows() int { return Rows }

// NumCols returns the number of columns.
func (g *Grid) NumCols() int { return Cols }

func inBounds(loc Location) bool {
	return loc.Row >= 0 && loc.Row < Rows && loc.Col >= 0 && loc.Col < Cols
}

// IsValid reports whether loc lies on the board.
func (g *Grid) IsValid(loc Location) bool {
	return inBounds(loc)
}

// Put stores occ at loc and returns the prior occupant.
// Out-of-bounds locations are ignored and report an empty prior occupant.
func (g *Grid) Put(loc Location, occ Occupant) Occupant {
	if !inBounds(loc) {
		return Occupant{}
	}
	prior := g.cells[loc.Row][loc.Col]
	g.cells[loc.Row][loc.Col] = occ
	return prior
}

// Remove empties loc and returns the prior occupant.
func (g *Grid) Remove(loc Location) Occupant {
	return g.Put(loc, Occupant{})
}

// Get returns the occupant at loc.
func (g *Grid) Get(loc Location) Occupant {
	if !inBounds(loc) {
		return Occupant{}
	}
	return g.cells[loc.Row][loc.Col]
}

// OccupiedLocations yields every non-empty location in row-major order.
func (g *Grid) OccupiedLocations() iter.Seq[Location] {
	return func(yield func(Location) bool) {
		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				if g.cells[r][c].IsEmpty() {
					continue
				}
				if !yield(Location{Row: r, Col: c}) {
					return
				}
			}
		}
	}
}

// Board returns a copy of every cell.
func (g *Grid) Board() Board {
	return g.cells
}

// RemoveRole empties every cell holding the given role and returns how many were removed.
func (g *Grid) RemoveRole(role Role) int {
	removed := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if g.cells[r][c].Role == role {
				g.cells[r][c] = Occupant{}
				removed++
			}
		}
	}
	return removed
}
