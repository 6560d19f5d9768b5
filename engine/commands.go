package engine

import (
	"github.com/plus3/tetrad/grid"
	"github.com/plus3/tetrad/piece"
	"github.com/sirupsen/logrus"
)

// Input commands. Each is safe to call from any goroutine and returns
// nothing; a command that cannot apply is dropped.

// MoveLeft shifts the falling piece one column left.
func (e *Engine) MoveLeft() { e.shift(0, -1) }

// MoveRight shifts the falling piece one column right.
func (e *Engine) MoveRight() { e.shift(0, 1) }

// MoveDown soft-drops the falling piece one row, scoring a point if it moved.
func (e *Engine) MoveDown() {
	e.update(func() bool {
		if !e.canShift || !e.falling.Translate(e.ctx, 1, 0) {
			return false
		}
		e.score++
		e.falling.UpdateShadow(e.ctx)
		return true
	})
}

func (e *Engine) shift(dRow, dCol int) {
	e.update(func() bool {
		if !e.canShift || !e.falling.Translate(e.ctx, dRow, dCol) {
			return false
		}
		e.falling.UpdateShadow(e.ctx)
		return true
	})
}

// RotateCW turns the falling piece clockwise.
func (e *Engine) RotateCW() {
	e.update(func() bool {
		if !e.canShift || !e.falling.Rotate(e.ctx) {
			return false
		}
		e.falling.UpdateShadow(e.ctx)
		return true
	})
}

// RotateCCW turns the falling piece counter-clockwise as three clockwise
// turns, each of which may kick or fail on its own.
func (e *Engine) RotateCCW() {
	e.update(func() bool {
		if !e.canShift {
			return false
		}
		turned := false
		for range 3 {
			if e.falling.Rotate(e.ctx) {
				turned = true
			}
		}
		if turned {
			e.falling.UpdateShadow(e.ctx)
		}
		return turned
	})
}

// HardDrop drops the falling piece to the bottom and locks it on the next
// tick. It scores two points per row and disables hold until the lock.
func (e *Engine) HardDrop() {
	e.update(func() bool {
		if !e.canShift || e.falling.Zone() != piece.Playfield {
			return false
		}
		p := e.falling
		d := p.MoveToBottom(e.ctx)
		e.score += 2 * d.Rows
		e.canHold = false
		e.hardDropPending = true
		e.hardDrops++
		if e.animations {
			e.dropEffect(p, d)
		}
		e.playSound(SoundDrop)
		return true
	})
}

// Hold parks the falling piece in the hold lane. With nothing held the next
// queued piece starts falling; otherwise the held piece takes its place.
// Hold works once per piece.
func (e *Engine) Hold() {
	e.update(func() bool {
		if !e.canHold || !e.canShift {
			return false
		}
		prev := e.falling
		if e.held == nil {
			if !prev.Park(e.ctx, piece.HoldAnchor) {
				e.log.WithField("shape", prev.Shape()).Warn("hold failed to park piece")
				return false
			}
			next, ok := e.advance()
			if next == nil {
				e.log.Warn("hold failed to spawn next piece")
				return false
			}
			e.held, e.falling = prev, next
			if !ok {
				_ = e.endGame()
			}
		} else {
			if !prev.SwapWithHeld(e.ctx, e.held) {
				e.log.WithField("shape", prev.Shape()).Warn("hold swap failed")
				return false
			}
			e.falling, e.held = e.held, prev
		}
		e.canHold = false
		e.holds++
		e.falling.UpdateShadow(e.ctx)
		e.log.WithFields(logrus.Fields{
			"held":    e.held.Shape(),
			"falling": e.falling.Shape(),
		}).Info("piece held")
		return true
	})
}

// MuteSFX toggles sound effects.
func (e *Engine) MuteSFX() {
	e.update(func() bool {
		e.muted = !e.muted
		return true
	})
}

// HaltAnims toggles the hard drop effect. Switching it off removes any
// effect still on the board.
func (e *Engine) HaltAnims() {
	e.update(func() bool {
		e.animations = !e.animations
		if !e.animations {
			e.grid.RemoveRole(grid.Trail)
			e.falling.RestoreColor(e.ctx)
		}
		return true
	})
}
