package piece_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/plus3/tetrad/grid"
	"github.com/plus3/tetrad/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(r, c int) grid.Location {
	return grid.Location{Row: r, Col: c}
}

var foreign = grid.Occupant{Role: grid.Block, Color: piece.WallColor}

func TestNewIPieceAtSpawn(t *testing.T) {
	g := grid.New()
	p := piece.New(g, piece.I, piece.SpawnCenter, piece.Playfield)

	assert.Equal(t, [4]grid.Location{loc(1, 4), loc(1, 3), loc(1, 5), loc(1, 6)}, p.Cells())
	assert.Equal(t, piece.North, p.Rotation())
	assert.Equal(t, piece.Playfield, p.Zone())
	for _, l := range p.Cells() {
		occ := g.Get(l)
		assert.Equal(t, grid.Block, occ.Role)
		assert.Equal(t, p.ID(), occ.Owner)
		assert.Equal(t, piece.ColorOf(piece.I), occ.Color)
	}
}

func TestTranslateToFloor(t *testing.T) {
	ctx := context.Background()
	g := grid.New()
	p := piece.New(g, piece.I, piece.SpawnCenter, piece.Playfield)

	for row := 2; row < grid.Rows; row++ {
		require.True(t, p.Translate(ctx, 1, 0), "row %d", row)
		assert.Equal(t, row, p.Center().Row)
	}
	before := g.Board()
	assert.False(t, p.Translate(ctx, 1, 0))
	assert.Equal(t, before, g.Board())
	assert.Equal(t, [4]grid.Location{loc(19, 4), loc(19, 3), loc(19, 5), loc(19, 6)}, p.Cells())
}

func TestRejectedTranslateLeavesGridUnchanged(t *testing.T) {
	ctx := context.Background()
	g := grid.New()
	g.Put(loc(6, 5), foreign)
	p := piece.New(g, piece.T, loc(5, 1), piece.Playfield)

	tests := []struct {
		name       string
		dRow, dCol int
	}{
		{"off the left edge", 0, -1},
		{"off the top", -5, 0},
		{"into a block", 1, 4},
		{"off the bottom", 15, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := g.Board()
			cells := p.Cells()
			assert.False(t, p.Translate(ctx, tt.dRow, tt.dCol))
			assert.Equal(t, before, g.Board())
			assert.Equal(t, cells, p.Cells())
		})
	}
}

func TestTranslateOverOverlays(t *testing.T) {
	ctx := context.Background()
	g := grid.New()
	g.Put(loc(2, 4), grid.Occupant{Role: grid.Trail, Color: piece.TrailColor})
	g.Put(loc(2, 5), grid.Occupant{Role: grid.Shadow, Color: piece.ShadowColor})
	p := piece.New(g, piece.I, piece.SpawnCenter, piece.Playfield)

	require.True(t, p.Translate(ctx, 1, 0))
	assert.Equal(t, grid.Block, g.Get(loc(2, 4)).Role)
	assert.Equal(t, grid.Block, g.Get(loc(2, 5)).Role)
	assert.True(t, g.Get(loc(1, 4)).IsEmpty())
}

func TestRotateInPlace(t *testing.T) {
	g := grid.New()
	p := piece.New(g, piece.T, loc(5, 5), piece.Playfield)

	require.True(t, p.Rotate(context.Background()))
	assert.Equal(t, [4]grid.Location{loc(5, 5), loc(4, 5), loc(6, 5), loc(5, 6)}, p.Cells())
	assert.Equal(t, piece.East, p.Rotation())
	assert.True(t, g.Get(loc(5, 4)).IsEmpty())
}

func TestFourRotationsRestoreCells(t *testing.T) {
	ctx := context.Background()
	for _, shape := range piece.Shapes {
		if shape == piece.O {
			continue
		}
		t.Run(shape.String(), func(t *testing.T) {
			g := grid.New()
			p := piece.New(g, shape, loc(8, 5), piece.Playfield)
			cells := p.Cells()
			for range 4 {
				require.True(t, p.Rotate(ctx))
			}
			assert.Equal(t, cells, p.Cells())
			assert.Equal(t, piece.North, p.Rotation())
		})
	}
}

func TestORotateNeverRotates(t *testing.T) {
	ctx := context.Background()
	boards := map[string]*grid.Grid{
		"empty":  grid.New(),
		"walled": grid.NewWithWalls(piece.WallColor),
	}
	for name, g := range boards {
		t.Run(name, func(t *testing.T) {
			p := piece.New(g, piece.O, loc(10, 5), piece.Playfield)
			before := g.Board()
			for range 5 {
				assert.False(t, p.Rotate(ctx))
			}
			assert.Equal(t, piece.North, p.Rotation())
			assert.Equal(t, before, g.Board())
		})
	}
}

func TestWallKickTable(t *testing.T) {
	assert.Equal(t, []grid.Location{
		loc(0, -1), loc(0, 1), loc(0, -2), loc(0, 2), loc(2, -1), loc(2, 1), loc(1, -1), loc(1, -1),
	}, piece.WallKicks[:])
}

// An I piece pivoting at (10,5) rotates into column 5, rows 9..12.
var rotatedI = [4]grid.Location{loc(10, 5), loc(9, 5), loc(11, 5), loc(12, 5)}

func shifted(cells [4]grid.Location, by grid.Location) [4]grid.Location {
	for i := range cells {
		cells[i] = cells[i].Add(by.Row, by.Col)
	}
	return cells
}

// fillExcept blocks every cell of g other than the given ones.
func fillExcept(g *grid.Grid, free ...[4]grid.Location) {
	open := map[grid.Location]bool{}
	for _, cells := range free {
		for _, l := range cells {
			open[l] = true
		}
	}
	for r := range grid.Rows {
		for c := range grid.Cols {
			if !open[loc(r, c)] {
				g.Put(loc(r, c), foreign)
			}
		}
	}
}

func TestWallKickOrder(t *testing.T) {
	ctx := context.Background()
	spawn := [4]grid.Location{loc(10, 5), loc(10, 4), loc(10, 6), loc(10, 7)}

	// The last entry duplicates the one before it and can never be reached.
	for i, kick := range piece.WallKicks[:len(piece.WallKicks)-1] {
		t.Run(fmt.Sprintf("kick %d %v", i, kick), func(t *testing.T) {
			want := shifted(rotatedI, kick)
			g := grid.New()
			fillExcept(g, spawn, want)
			p := piece.New(g, piece.I, loc(10, 5), piece.Playfield)

			require.True(t, p.Rotate(ctx))
			assert.Equal(t, want, p.Cells())
			assert.Equal(t, piece.East, p.Rotation())
		})
	}

	t.Run("no kick fits", func(t *testing.T) {
		g := grid.New()
		fillExcept(g, spawn)
		p := piece.New(g, piece.I, loc(10, 5), piece.Playfield)
		before := g.Board()

		assert.False(t, p.Rotate(ctx))
		assert.Equal(t, before, g.Board())
		assert.Equal(t, spawn, p.Cells())
		assert.Equal(t, piece.North, p.Rotation())
	})
}

func TestCanMoveDownIsAProbe(t *testing.T) {
	ctx := context.Background()
	g := grid.New()
	g.Put(loc(4, 4), foreign)
	p := piece.New(g, piece.I, piece.SpawnCenter, piece.Playfield)
	before := g.Board()

	assert.True(t, p.CanMoveDown(ctx, 1))
	assert.True(t, p.CanMoveDown(ctx, 2))
	assert.False(t, p.CanMoveDown(ctx, 3))
	assert.Equal(t, before, g.Board())
}

func TestMoveToBottom(t *testing.T) {
	ctx := context.Background()

	t.Run("empty board", func(t *testing.T) {
		g := grid.New()
		p := piece.New(g, piece.I, piece.SpawnCenter, piece.Playfield)

		d := p.MoveToBottom(ctx)
		assert.Equal(t, piece.Drop{Rows: 18, MinCol: 3, MaxCol: 6, TopRow: 19, BottomRow: 19}, d)
		assert.Equal(t, loc(19, 4), p.Center())
		assert.False(t, p.CanMoveDown(ctx, 1))
	})

	t.Run("lands on the highest obstruction", func(t *testing.T) {
		g := grid.New()
		g.Put(loc(15, 5), foreign)
		g.Put(loc(12, 9), foreign)
		p := piece.New(g, piece.T, piece.SpawnCenter, piece.Playfield)

		d := p.MoveToBottom(ctx)
		assert.Equal(t, 13, d.Rows)
		assert.Equal(t, loc(14, 4), p.Center())
		assert.Equal(t, 13, d.TopRow)
		assert.Equal(t, 14, d.BottomRow)
	})

	t.Run("already resting", func(t *testing.T) {
		g := grid.New()
		p := piece.New(g, piece.O, loc(19, 0), piece.Playfield)
		before := g.Board()

		assert.Equal(t, 0, p.MoveToBottom(ctx).Rows)
		assert.Equal(t, before, g.Board())
	})
}

func countRole(g *grid.Grid, role grid.Role) int {
	board := g.Board()
	n := 0
	for r := range grid.Rows {
		for c := range grid.Cols {
			if board[r][c].Role == role {
				n++
			}
		}
	}
	return n
}

func TestUpdateShadow(t *testing.T) {
	ctx := context.Background()
	g := grid.New()
	p := piece.New(g, piece.I, piece.SpawnCenter, piece.Playfield)

	require.True(t, p.UpdateShadow(ctx))
	assert.ElementsMatch(t, []grid.Location{loc(19, 3), loc(19, 4), loc(19, 5), loc(19, 6)}, p.ShadowCells())
	occ := g.Get(loc(19, 3))
	assert.Equal(t, grid.Shadow, occ.Role)
	assert.Equal(t, piece.ShadowColor, occ.Color)
	assert.Equal(t, p.ID(), occ.Owner)

	require.True(t, p.Translate(ctx, 0, 1))
	require.True(t, p.UpdateShadow(ctx))
	assert.Equal(t, 4, countRole(g, grid.Shadow))
	assert.True(t, g.Get(loc(19, 3)).IsEmpty())
	assert.Equal(t, grid.Shadow, g.Get(loc(19, 7)).Role)

	p.MoveToBottom(ctx)
	require.True(t, p.UpdateShadow(ctx))
	assert.Empty(t, p.ShadowCells())
	assert.Equal(t, 0, countRole(g, grid.Shadow))
	assert.Equal(t, 4, countRole(g, grid.Block))
}

func TestClearShadowKeepsForeignCells(t *testing.T) {
	ctx := context.Background()
	g := grid.New()
	p := piece.New(g, piece.I, piece.SpawnCenter, piece.Playfield)
	require.True(t, p.UpdateShadow(ctx))

	// Another piece has since landed on part of the shadow.
	g.Put(loc(19, 3), foreign)
	require.True(t, p.ClearShadow(ctx))

	assert.Equal(t, foreign, g.Get(loc(19, 3)))
	assert.Equal(t, 0, countRole(g, grid.Shadow))
}

func TestSwapWithHeld(t *testing.T) {
	ctx := context.Background()
	g := grid.NewWithWalls(piece.WallColor)
	falling := piece.New(g, piece.T, piece.SpawnCenter, piece.Playfield)
	require.True(t, falling.Translate(ctx, 4, 0))
	require.True(t, falling.Rotate(ctx))
	require.True(t, falling.UpdateShadow(ctx))

	held := piece.New(g, piece.I, piece.HoldAnchor, piece.Hold)
	require.True(t, held.Rotate(ctx))

	require.True(t, falling.SwapWithHeld(ctx, held))

	assert.Equal(t, piece.Playfield, held.Zone())
	assert.Equal(t, piece.North, held.Rotation())
	assert.Equal(t, piece.SpawnCenter, held.Center())

	assert.Equal(t, piece.Hold, falling.Zone())
	assert.Equal(t, piece.North, falling.Rotation())
	var want [4]grid.Location
	for i, off := range piece.Offsets(piece.T) {
		want[i] = piece.HoldAnchor.Add(off.Row, off.Col)
	}
	assert.Equal(t, want, falling.Cells())
	assert.Empty(t, falling.ShadowCells())

	assert.Equal(t, 0, countRole(g, grid.Shadow))
	assert.Equal(t, 8, countRole(g, grid.Block))
	for _, l := range falling.Cells() {
		assert.Equal(t, falling.ID(), g.Get(l).Owner)
	}
	for _, l := range held.Cells() {
		assert.Equal(t, held.ID(), g.Get(l).Owner)
	}
}

func TestSwapWithHeldBlockedSpawn(t *testing.T) {
	ctx := context.Background()
	g := grid.NewWithWalls(piece.WallColor)
	falling := piece.New(g, piece.T, piece.SpawnCenter, piece.Playfield)
	require.True(t, falling.Translate(ctx, 6, 0))
	held := piece.New(g, piece.I, piece.HoldAnchor, piece.Hold)
	g.Put(loc(1, 6), foreign)

	before := g.Board()
	fallingCells, heldCells := falling.Cells(), held.Cells()

	assert.False(t, falling.SwapWithHeld(ctx, held))
	assert.Equal(t, before, g.Board())
	assert.Equal(t, fallingCells, falling.Cells())
	assert.Equal(t, heldCells, held.Cells())
	assert.Equal(t, piece.Playfield, falling.Zone())
	assert.Equal(t, piece.Hold, held.Zone())
	assert.True(t, falling.Translate(ctx, 1, 0))
}

func TestSwapWithHeldRejectsSelf(t *testing.T) {
	g := grid.New()
	p := piece.New(g, piece.S, piece.SpawnCenter, piece.Playfield)
	assert.False(t, p.SwapWithHeld(context.Background(), p))
	assert.False(t, p.SwapWithHeld(context.Background(), nil))
}

func TestPark(t *testing.T) {
	ctx := context.Background()
	g := grid.NewWithWalls(piece.WallColor)
	p := piece.New(g, piece.L, piece.SpawnCenter, piece.Playfield)
	require.True(t, p.Translate(ctx, 5, 0))
	require.True(t, p.Rotate(ctx))
	require.True(t, p.Rotate(ctx))

	require.True(t, p.Park(ctx, piece.HoldAnchor))
	assert.Equal(t, piece.Hold, p.Zone())
	assert.Equal(t, piece.North, p.Rotation())
	assert.Equal(t, piece.HoldAnchor, p.Center())
	assert.Equal(t, 4, countRole(g, grid.Block))
}

func TestSettle(t *testing.T) {
	ctx := context.Background()
	g := grid.New()
	p := piece.New(g, piece.Z, piece.SpawnCenter, piece.Playfield)
	p.MoveToBottom(ctx)
	require.True(t, p.Flash(ctx))

	require.True(t, p.Settle(ctx))
	assert.True(t, p.Settled())
	for _, l := range p.Cells() {
		occ := g.Get(l)
		assert.Equal(t, grid.Block, occ.Role)
		assert.Zero(t, occ.Owner)
		assert.Equal(t, piece.ColorOf(piece.Z), occ.Color)
	}

	before := g.Board()
	assert.False(t, p.Translate(ctx, 0, 1))
	assert.False(t, p.Rotate(ctx))
	assert.False(t, p.RestoreColor(ctx))
	assert.Equal(t, before, g.Board())
}

func TestFlashAndRestore(t *testing.T) {
	ctx := context.Background()
	g := grid.New()
	p := piece.New(g, piece.J, piece.SpawnCenter, piece.Playfield)

	require.True(t, p.Flash(ctx))
	assert.Equal(t, piece.FlashColor, g.Get(p.Center()).Color)
	require.True(t, p.Translate(ctx, 1, 0))
	assert.Equal(t, piece.FlashColor, g.Get(p.Center()).Color)

	require.True(t, p.RestoreColor(ctx))
	for _, l := range p.Cells() {
		assert.Equal(t, piece.ColorOf(piece.J), g.Get(l).Color)
	}
}

func TestShapeStrings(t *testing.T) {
	assert.Equal(t, "O", piece.O.String())
	assert.Equal(t, "Hold", piece.Hold.String())
	assert.Equal(t, "Shape(9)", piece.Shape(9).String())
}

func ExampleNew() {
	g := grid.New()
	p := piece.New(g, piece.I, piece.SpawnCenter, piece.Playfield)
	fmt.Println(p.Shape(), p.Cells())

	ctx := context.Background()
	fmt.Println(p.MoveToBottom(ctx).Rows, p.Center())
	// Output:
	// I [{1 4} {1 3} {1 5} {1 6}]
	// 18 {19 4}
}
