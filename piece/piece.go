// Package piece implements tetromino instances that move, rotate and drop
// against a shared grid.
//
// Every structural mutation runs under the piece's own binary lock and is a
// single compute, validate, commit transaction over the grid: candidate cells
// are checked with the piece's current cells treated as free, so the piece is
// never absent from the grid. A context that is done while waiting for the
// lock means the operation is not applied.
package piece

import (
	"context"
	"image/color"
	"math"
	"sync/atomic"

	"github.com/plus3/tetrad/grid"
	"golang.org/x/sync/semaphore"
)

var lastID atomic.Uint32

// Drop describes a committed drop to the bottom.
type Drop struct {
	// Rows is how far the piece moved.
	Rows int
	// MinCol and MaxCol bound the landed piece's columns.
	MinCol, MaxCol int
	// TopRow and BottomRow are the highest and lowest rows the landed piece
	// occupies.
	TopRow, BottomRow int
}

// Piece is a single tetromino placed on a grid.
type Piece struct {
	id    uint32
	shape Shape
	color color.NRGBA
	grid  *grid.Grid
	lock  *semaphore.Weighted

	cells    [4]grid.Location
	shadow   []grid.Location
	rotation Rotation
	zone     Zone
	flashed  bool
	settled  bool
	lifted   bool
}

// New creates a piece of the given shape with its pivot at center and writes
// its cells to g, superseding whatever occupied them.
func New(g *grid.Grid, shape Shape, center grid.Location, zone Zone) *Piece {
	p := &Piece{
		id:    lastID.Add(1),
		shape: shape,
		color: baseColors[shape],
		grid:  g,
		lock:  semaphore.NewWeighted(1),
		zone:  zone,
	}
	p.cells = layout(shape, center)
	for _, loc := range p.cells {
		g.Put(loc, p.occupant())
	}
	return p
}

func layout(shape Shape, center grid.Location) [4]grid.Location {
	var cells [4]grid.Location
	for i, off := range offsets[shape] {
		cells[i] = center.Add(off.Row, off.Col)
	}
	return cells
}

func shift(cells [4]grid.Location, dRow, dCol int) [4]grid.Location {
	for i := range cells {
		cells[i] = cells[i].Add(dRow, dCol)
	}
	return cells
}

// rotateCW turns cells a quarter turn clockwise about cells[0].
func rotateCW(cells [4]grid.Location) [4]grid.Location {
	pivot := cells[0]
	var out [4]grid.Location
	for i, c := range cells {
		out[i] = grid.Location{
			Row: pivot.Row - pivot.Col + c.Col,
			Col: pivot.Row + pivot.Col - c.Row,
		}
	}
	return out
}

func (p *Piece) acquire(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	return p.lock.Acquire(ctx, 1) == nil
}

// acquireWait takes the lock with no way to give up, for the read-only
// accessors.
func (p *Piece) acquireWait() {
	_ = p.lock.Acquire(context.Background(), 1)
}

func (p *Piece) release() {
	p.lock.Release(1)
}

func (p *Piece) occupant() grid.Occupant {
	c := p.color
	if p.flashed {
		c = FlashColor
	}
	return grid.Occupant{Role: grid.Block, Color: c, Owner: p.id}
}

func (p *Piece) fits(cells [4]grid.Location) bool {
	return p.grid.CanOccupy(cells[:], p.id)
}

func (p *Piece) commit(cells [4]grid.Location) {
	p.grid.Relocate(p.id, p.cells[:], cells[:], p.occupant())
	p.cells = cells
}

func (p *Piece) live() bool {
	return !p.settled && !p.lifted
}

// ID returns the owner tag written into the piece's grid cells.
func (p *Piece) ID() uint32 { return p.id }

// Shape returns the piece's shape.
func (p *Piece) Shape() Shape { return p.shape }

// Color returns the piece's base color.
func (p *Piece) Color() color.NRGBA { return p.color }

// Cells returns the piece's current cells; index 0 is the pivot.
func (p *Piece) Cells() [4]grid.Location {
	p.acquireWait()
	defer p.release()
	return p.cells
}

// Center returns the pivot cell.
func (p *Piece) Center() grid.Location {
	return p.Cells()[0]
}

// Rotation returns the current orientation.
func (p *Piece) Rotation() Rotation {
	p.acquireWait()
	defer p.release()
	return p.rotation
}

// Zone returns the region the piece is in.
func (p *Piece) Zone() Zone {
	p.acquireWait()
	defer p.release()
	return p.zone
}

// Settled reports whether the piece has been locked into the playfield.
func (p *Piece) Settled() bool {
	p.acquireWait()
	defer p.release()
	return p.settled
}

// ShadowCells returns the cells currently holding this piece's shadow.
func (p *Piece) ShadowCells() []grid.Location {
	p.acquireWait()
	defer p.release()
	return append([]grid.Location(nil), p.shadow...)
}

// Translate moves the piece by (dRow, dCol). It returns false and leaves the
// grid untouched if any target cell is out of bounds or blocked.
func (p *Piece) Translate(ctx context.Context, dRow, dCol int) bool {
	if !p.acquire(ctx) {
		return false
	}
	defer p.release()
	if !p.live() {
		return false
	}

	to := shift(p.cells, dRow, dCol)
	if !p.fits(to) {
		return false
	}
	p.commit(to)
	return true
}

// Rotate turns the piece a quarter turn clockwise, trying WallKicks in order
// when the in-place rotation is blocked. The O shape never rotates.
func (p *Piece) Rotate(ctx context.Context) bool {
	if p.shape == O {
		return false
	}
	if !p.acquire(ctx) {
		return false
	}
	defer p.release()
	if !p.live() {
		return false
	}

	rotated := rotateCW(p.cells)
	if p.fits(rotated) {
		p.commit(rotated)
		p.rotation = p.rotation.Next()
		return true
	}
	for _, kick := range WallKicks {
		kicked := shift(rotated, kick.Row, kick.Col)
		if p.fits(kicked) {
			p.commit(kicked)
			p.rotation = p.rotation.Next()
			return true
		}
	}
	return false
}

// CanMoveDown reports whether the piece could move delta rows down.
func (p *Piece) CanMoveDown(ctx context.Context, delta int) bool {
	if !p.acquire(ctx) {
		return false
	}
	defer p.release()
	if !p.live() {
		return false
	}
	return p.fits(shift(p.cells, delta, 0))
}

// dropDistance is the number of rows the piece can fall: the smallest
// per-cell run of free cells, less one.
func (p *Piece) dropDistance() int {
	minRun := math.MaxInt
	step := make([]grid.Location, 1)
	for _, c := range p.cells {
		run := 0
		for {
			step[0] = c.Add(run, 0)
			if !p.grid.CanOccupy(step, p.id) {
				break
			}
			run++
		}
		minRun = min(minRun, run)
	}
	return max(minRun-1, 0)
}

// MoveToBottom drops the piece as far as it can go and reports the move.
func (p *Piece) MoveToBottom(ctx context.Context) Drop {
	if !p.acquire(ctx) {
		return Drop{}
	}
	defer p.release()
	if !p.live() {
		return Drop{}
	}

	rows := p.dropDistance()
	p.commit(shift(p.cells, rows, 0))

	d := Drop{Rows: rows, MinCol: math.MaxInt, MaxCol: math.MinInt, TopRow: math.MaxInt, BottomRow: math.MinInt}
	for _, c := range p.cells {
		d.MinCol = min(d.MinCol, c.Col)
		d.MaxCol = max(d.MaxCol, c.Col)
		d.TopRow = min(d.TopRow, c.Row)
		d.BottomRow = max(d.BottomRow, c.Row)
	}
	return d
}

func (p *Piece) clearShadowLocked() {
	for _, loc := range p.shadow {
		occ := p.grid.Get(loc)
		if occ.Role == grid.Shadow && occ.Owner == p.id {
			p.grid.Remove(loc)
		}
	}
	p.shadow = p.shadow[:0]
}

// UpdateShadow projects the piece's landing position as shadow cells,
// replacing the previous projection. Cells the piece itself occupies, or that
// hold anything other than empty space or an overlay, are left alone.
func (p *Piece) UpdateShadow(ctx context.Context) bool {
	if !p.acquire(ctx) {
		return false
	}
	defer p.release()
	if !p.live() {
		return false
	}

	p.clearShadowLocked()
	rows := p.dropDistance()
	for _, c := range p.cells {
		loc := c.Add(rows, 0)
		if !p.grid.Get(loc).Overwritable() {
			continue
		}
		p.grid.Put(loc, grid.Occupant{Role: grid.Shadow, Color: ShadowColor, Owner: p.id})
		p.shadow = append(p.shadow, loc)
	}
	return true
}

// ClearShadow removes the piece's shadow cells.
func (p *Piece) ClearShadow(ctx context.Context) bool {
	if !p.acquire(ctx) {
		return false
	}
	defer p.release()
	p.clearShadowLocked()
	return true
}

// northCells returns the piece's cells turned back to North about the pivot
// without touching the grid.
func (p *Piece) northCells() [4]grid.Location {
	return toNorth(p.cells, p.rotation)
}

func toNorth(cells [4]grid.Location, from Rotation) [4]grid.Location {
	for r := from; r != North; r = r.Next() {
		cells = rotateCW(cells)
	}
	return cells
}

// MoveTo translates the piece so its pivot sits at center and records the
// new zone. The move is validated like Translate.
func (p *Piece) MoveTo(ctx context.Context, center grid.Location, zone Zone) bool {
	if !p.acquire(ctx) {
		return false
	}
	defer p.release()
	if !p.live() {
		return false
	}

	pivot := p.cells[0]
	to := shift(p.cells, center.Row-pivot.Row, center.Col-pivot.Col)
	if !p.fits(to) {
		return false
	}
	p.commit(to)
	p.zone = zone
	return true
}

// Park turns the piece to North without consulting the grid and moves it to
// anchor in the hold zone.
func (p *Piece) Park(ctx context.Context, anchor grid.Location) bool {
	if !p.acquire(ctx) {
		return false
	}
	defer p.release()
	if !p.live() {
		return false
	}

	north := p.northCells()
	to := shift(north, anchor.Row-north[0].Row, anchor.Col-north[0].Col)
	if !p.fits(to) {
		return false
	}
	p.clearShadowLocked()
	p.commit(to)
	p.rotation = North
	p.zone = Hold
	return true
}

// lift takes the piece off the grid, leaving it unplaced until land.
func (p *Piece) lift(ctx context.Context) bool {
	if !p.acquire(ctx) {
		return false
	}
	defer p.release()
	if !p.live() {
		return false
	}
	p.clearShadowLocked()
	p.grid.Relocate(p.id, p.cells[:], nil, grid.Occupant{})
	p.lifted = true
	return true
}

// land writes a lifted piece back at cells.
func (p *Piece) land(ctx context.Context, cells [4]grid.Location, rotation Rotation, zone Zone) {
	_ = p.lock.Acquire(ctx, 1)
	defer p.release()
	p.cells = cells
	p.rotation = rotation
	p.zone = zone
	p.lifted = false
	for _, loc := range cells {
		p.grid.Put(loc, p.occupant())
	}
}

// SwapWithHeld exchanges the piece with held: held is turned to North and
// moved to the spawn point in the playfield, and this piece is turned to
// North and parked at the hold anchor. On failure both pieces are back where
// they started.
func (p *Piece) SwapWithHeld(ctx context.Context, held *Piece) bool {
	if held == nil || held == p {
		return false
	}
	for i := 0; i < 4 && held.Rotation() != North; i++ {
		held.Rotate(ctx)
	}
	if held.Rotation() != North {
		return false
	}

	from, rotation, zone := p.Cells(), p.Rotation(), p.Zone()
	if !p.lift(ctx) {
		return false
	}
	// Put the piece back even if ctx ends mid-swap.
	cleanup := context.WithoutCancel(ctx)
	if !held.MoveTo(ctx, SpawnCenter, Playfield) {
		p.land(cleanup, from, rotation, zone)
		return false
	}

	north := toNorth(from, rotation)
	p.land(cleanup, shift(north, HoldAnchor.Row-north[0].Row, HoldAnchor.Col-north[0].Col), North, Hold)
	return true
}

// Settle locks the piece into the playfield. Its cells lose their owner tag
// and keep the base color; the shadow is removed. A settled piece rejects
// all further moves.
func (p *Piece) Settle(ctx context.Context) bool {
	if !p.acquire(ctx) {
		return false
	}
	defer p.release()
	if !p.live() {
		return false
	}

	p.clearShadowLocked()
	p.flashed = false
	occ := grid.Occupant{Role: grid.Block, Color: p.color}
	for _, loc := range p.cells {
		if p.grid.Get(loc).Owner == p.id {
			p.grid.Put(loc, occ)
		}
	}
	p.settled = true
	return true
}

// Flash repaints the piece's cells in FlashColor.
func (p *Piece) Flash(ctx context.Context) bool {
	return p.repaint(ctx, true)
}

// RestoreColor undoes Flash.
func (p *Piece) RestoreColor(ctx context.Context) bool {
	return p.repaint(ctx, false)
}

func (p *Piece) repaint(ctx context.Context, flashed bool) bool {
	if !p.acquire(ctx) {
		return false
	}
	defer p.release()
	if !p.live() {
		return false
	}
	p.flashed = flashed
	occ := p.occupant()
	for _, loc := range p.cells {
		if p.grid.Get(loc).Owner == p.id {
			p.grid.Put(loc, occ)
		}
	}
	return true
}
