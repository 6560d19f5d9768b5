package engine

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/plus3/tetrad/grid"
	"github.com/plus3/tetrad/piece"
	"github.com/plus3/tetrad/queue"
	"github.com/sirupsen/logrus"
)

// WaitTime is the number of ticks between gravity steps at level.
func WaitTime(level int) int {
	if level >= 16 {
		return 3
	}
	return int(math.Round(60 * math.Exp(0.2*float64(1-level)) / 2))
}

// Run ticks the engine every interval until the game ends or ctx is done.
func (e *Engine) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := e.Tick(); err != nil {
				return err
			}
		}
	}
}

// Tick advances the game by one step.
func (e *Engine) Tick() error {
	start := time.Now()
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.over {
		e.mu.Unlock()
		return ErrGameOver
	}

	err := e.step()

	e.ticks.record(time.Since(start))
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
	return err
}

func (e *Engine) step() error {
	e.tick++
	e.later.run(e.tick)

	e.level = Level(e.score)
	e.waitTime = WaitTime(e.level)
	e.grid.RemoveRole(grid.Shadow)
	e.reconcileZones()

	e.dropTimer++
	// A hard drop stays pending until the piece rests, so sliding it off a
	// ledge still locks it on the first tick it lands.
	if e.hardDropPending && !e.falling.CanMoveDown(e.ctx, 1) {
		e.hardDropPending = false
		e.dropTimer = e.waitTime
	}

	if e.dropTimer >= e.waitTime {
		e.dropTimer = 0
		if !e.falling.Translate(e.ctx, 1, 0) {
			if err := e.lockFalling(); err != nil {
				return err
			}
		}
	}

	e.falling.UpdateShadow(e.ctx)
	return nil
}

// reconcileZones swaps the falling and held roles if the pieces have
// traded zones, and turns the new held piece back to North.
func (e *Engine) reconcileZones() {
	if e.held == nil {
		return
	}
	if e.falling.Zone() != piece.Hold && e.held.Zone() != piece.Playfield {
		return
	}
	e.falling, e.held = e.held, e.falling
	for i := 0; i < 4 && e.held.Rotation() != piece.North; i++ {
		e.held.Rotate(e.ctx)
	}
	e.log.WithField("falling", e.falling.Shape()).Warn("falling and held pieces swapped zones")
}

// lockFalling fixes the falling piece in place, checks for game over,
// clears rows and spawns the next piece.
func (e *Engine) lockFalling() error {
	e.canShift = false
	p := e.falling
	if !p.Settle(e.ctx) {
		return ErrClosed
	}
	e.piecesLocked++
	e.log.WithFields(logrus.Fields{"shape": p.Shape(), "at": p.Center()}).Debug("piece locked")

	if e.spawnBlocked() {
		return e.endGame()
	}

	e.grid.RemoveRole(grid.Trail)
	if rows := e.clearRows(); rows > 0 {
		gained := lineScores[min(rows, len(lineScores)-1)] * e.level
		e.score += gained
		e.rowsCleared += rows
		e.log.WithFields(logrus.Fields{"rows": rows, "gained": gained, "score": e.score}).Info("rows cleared")
	}

	next, ok := e.advance()
	if next != nil {
		e.falling = next
	}
	if !ok {
		return e.endGame()
	}
	e.canHold = true
	e.canShift = true
	e.log.WithField("shape", next.Shape()).Debug("piece spawned")
	return nil
}

// advance brings the next queued piece to the spawn point. A piece is
// returned whenever one reached the spawn point; ok is false when play
// cannot continue.
func (e *Engine) advance() (next *piece.Piece, ok bool) {
	next, err := e.queue.Advance(e.ctx)
	switch {
	case err == nil:
		return next, true
	case errors.Is(err, queue.ErrSpawnBlocked):
		return nil, false
	default:
		e.log.WithError(err).Error("preview lane out of order")
		return next, false
	}
}

// spawnBlocked reports whether anything solid sits in the spawn footprint.
func (e *Engine) spawnBlocked() bool {
	for r := 0; r <= 1; r++ {
		for c := 3; c <= 6; c++ {
			occ := e.grid.Get(grid.Location{Row: r, Col: c})
			if !occ.IsEmpty() && !occ.IsOverlay() {
				return true
			}
		}
	}
	return false
}

func (e *Engine) rowComplete(row int) bool {
	for c := 0; c < grid.PlayfieldCols; c++ {
		if e.grid.Get(grid.Location{Row: row, Col: c}).Role != grid.Block {
			return false
		}
	}
	return true
}

// collapseRow removes row from the playfield and drops everything above it
// by one row.
func (e *Engine) collapseRow(row int) {
	for r := row; r > 0; r-- {
		for c := 0; c < grid.PlayfieldCols; c++ {
			e.grid.Put(grid.Location{Row: r, Col: c}, e.grid.Get(grid.Location{Row: r - 1, Col: c}))
		}
	}
	for c := 0; c < grid.PlayfieldCols; c++ {
		e.grid.Remove(grid.Location{Row: 0, Col: c})
	}
}

// clearRows scans the playfield top to bottom, collapsing every complete row
// and checking the same index again after each collapse.
func (e *Engine) clearRows() int {
	cleared := 0
	for r := 0; r < grid.Rows; r++ {
		if !e.rowComplete(r) {
			continue
		}
		e.collapseRow(r)
		cleared++
		e.playSound(SoundClear)
		r--
	}
	return cleared
}

// dropEffect paints trails into the empty cells of the piece's column span
// down to its bottom row and flashes it, then schedules both to be undone.
func (e *Engine) dropEffect(p *piece.Piece, d piece.Drop) {
	for c := d.MinCol; c <= d.MaxCol; c++ {
		for r := 0; r < d.BottomRow; r++ {
			loc := grid.Location{Row: r, Col: c}
			if e.grid.Get(loc).IsEmpty() {
				e.grid.Put(loc, grid.Occupant{Role: grid.Trail, Color: piece.TrailColor})
			}
		}
	}
	p.Flash(e.ctx)
	e.later.at(e.tick+2, func() {
		p.RestoreColor(e.ctx)
		e.grid.RemoveRole(grid.Trail)
	})
}
