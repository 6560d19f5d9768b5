package grid_test

import (
	"image/color"
	"slices"
	"testing"

	"github.com/plus3/tetrad/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.NRGBA{R: 255, A: 180}

func block(owner uint32) grid.Occupant {
	return grid.Occupant{Role: grid.Block, Color: red, Owner: owner}
}

func TestPutGetRemove(t *testing.T) {
	g := grid.New()
	loc := grid.Location{Row: 3, Col: 4}

	prior := g.Put(loc, block(1))
	assert.True(t, prior.IsEmpty())
	assert.Equal(t, block(1), g.Get(loc))

	prior = g.Put(loc, block(2))
	assert.Equal(t, block(1), prior)

	removed := g.Remove(loc)
	assert.Equal(t, block(2), removed)
	assert.True(t, g.Get(loc).IsEmpty())
}

func TestInvalidLocationsAreNoOps(t *testing.T) {
	g := grid.New()
	invalid := []grid.Location{
		{Row: -1, Col: 0},
		{Row: 0, Col: -1},
		{Row: grid.Rows, Col: 0},
		{Row: 0, Col: grid.Cols},
	}

	for _, loc := range invalid {
		assert.False(t, g.IsValid(loc))
		assert.True(t, g.Put(loc, block(1)).IsEmpty())
		assert.True(t, g.Get(loc).IsEmpty())
		assert.True(t, g.Remove(loc).IsEmpty())
	}
	assert.Empty(t, slices.Collect(g.OccupiedLocations()))
}

func TestOccupiedLocationsRowMajor(t *testing.T) {
	g := grid.New()
	g.Put(grid.Location{Row: 5, Col: 1}, block(1))
	g.Put(grid.Location{Row: 0, Col: 9}, block(1))
	g.Put(grid.Location{Row: 5, Col: 0}, grid.Occupant{Role: grid.Shadow})

	locs := slices.Collect(g.OccupiedLocations())
	assert.Equal(t, []grid.Location{{Row: 0, Col: 9}, {Row: 5, Col: 0}, {Row: 5, Col: 1}}, locs)
}

func TestNewWithWalls(t *testing.T) {
	g := grid.NewWithWalls(color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	for r := 0; r < grid.Rows; r++ {
		assert.Equal(t, grid.Wall, g.Get(grid.Location{Row: r, Col: grid.WallCol}).Role)
	}
	for c := grid.LaneFirstCol; c < grid.Cols; c++ {
		assert.Equal(t, grid.Wall, g.Get(grid.Location{Row: grid.LaneWallRow, Col: c}).Role)
	}
	assert.Len(t, slices.Collect(g.OccupiedLocations()), grid.Rows+grid.Cols-grid.LaneFirstCol)
}

func TestCanOccupy(t *testing.T) {
	g := grid.New()
	g.Put(grid.Location{Row: 1, Col: 1}, block(7))
	g.Put(grid.Location{Row: 1, Col: 2}, grid.Occupant{Role: grid.Shadow})
	g.Put(grid.Location{Row: 1, Col: 3}, grid.Occupant{Role: grid.Trail})
	g.Put(grid.Location{Row: 1, Col: 4}, grid.Occupant{Role: grid.Wall})

	tests := []struct {
		name  string
		locs  []grid.Location
		owner uint32
		want  bool
	}{
		{"empty cells", []grid.Location{{Row: 0, Col: 0}}, 1, true},
		{"overlays are free", []grid.Location{{Row: 1, Col: 2}, {Row: 1, Col: 3}}, 1, true},
		{"own block is free", []grid.Location{{Row: 1, Col: 1}}, 7, true},
		{"foreign block", []grid.Location{{Row: 1, Col: 1}}, 8, false},
		{"unowned lookup sees block", []grid.Location{{Row: 1, Col: 1}}, 0, false},
		{"wall", []grid.Location{{Row: 1, Col: 4}}, 7, false},
		{"out of bounds", []grid.Location{{Row: grid.Rows, Col: 0}}, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.CanOccupy(tt.locs, tt.owner))
		})
	}
}

func TestRelocateOverlappingCells(t *testing.T) {
	g := grid.New()
	from := []grid.Location{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	to := []grid.Location{{Row: 0, Col: 1}, {Row: 0, Col: 2}}
	for _, loc := range from {
		g.Put(loc, block(3))
	}
	g.Put(grid.Location{Row: 0, Col: 2}, grid.Occupant{Role: grid.Shadow, Owner: 3})

	require.True(t, g.CanOccupy(to, 3))
	g.Relocate(3, from, to, block(3))

	assert.True(t, g.Get(grid.Location{Row: 0, Col: 0}).IsEmpty())
	assert.Equal(t, block(3), g.Get(grid.Location{Row: 0, Col: 1}))
	assert.Equal(t, block(3), g.Get(grid.Location{Row: 0, Col: 2}))
}

func TestRemoveRole(t *testing.T) {
	g := grid.New()
	g.Put(grid.Location{Row: 2, Col: 2}, grid.Occupant{Role: grid.Trail})
	g.Put(grid.Location{Row: 3, Col: 2}, grid.Occupant{Role: grid.Trail})
	g.Put(grid.Location{Row: 4, Col: 2}, block(1))

	assert.Equal(t, 2, g.RemoveRole(grid.Trail))
	assert.Equal(t, []grid.Location{{Row: 4, Col: 2}}, slices.Collect(g.OccupiedLocations()))
	assert.Equal(t, "Trail", grid.Trail.String())
}

func TestBoardIsACopy(t *testing.T) {
	g := grid.New()
	loc := grid.Location{Row: 19, Col: 0}
	g.Put(loc, block(1))

	board := g.Board()
	g.Remove(loc)

	assert.Equal(t, block(1), board.At(loc))
	assert.True(t, board.At(grid.Location{Row: -1, Col: 0}).IsEmpty())
}
