package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/plus3/tetrad/grid"
	"github.com/plus3/tetrad/piece"
	"github.com/plus3/tetrad/queue"
)

// Snapshot is a consistent copy of the engine state handed to displays.
type Snapshot struct {
	ID uuid.UUID
	// Version increases with every snapshot taken; displays can drop
	// snapshots older than the one they already hold.
	Version uint64
	Tick    uint64

	Board grid.Board

	Score       int
	Level       int
	WaitTime    int
	RowsCleared int

	Falling  piece.Shape
	Held     piece.Shape
	HasHeld  bool
	Upcoming [queue.Size]piece.Shape

	CanHold    bool
	Muted      bool
	Animations bool
	Over       bool
}

// Title is the window title for the snapshot.
func (s Snapshot) Title() string {
	if s.Over {
		return fmt.Sprintf("Game Over - Score: %d Level: %d", s.Score, s.Level)
	}
	return fmt.Sprintf("Score: %d Level: %d", s.Score, s.Level)
}

func (e *Engine) snapshotLocked() Snapshot {
	e.version++
	s := Snapshot{
		ID:          e.id,
		Version:     e.version,
		Tick:        e.tick,
		Board:       e.grid.Board(),
		Score:       e.score,
		Level:       e.level,
		WaitTime:    e.waitTime,
		RowsCleared: e.rowsCleared,
		Falling:     e.falling.Shape(),
		Upcoming:    e.queue.Shapes(),
		CanHold:     e.canHold,
		Muted:       e.muted,
		Animations:  e.animations,
		Over:        e.over,
	}
	if e.held != nil {
		s.Held = e.held.Shape()
		s.HasHeld = true
	}
	return s
}
