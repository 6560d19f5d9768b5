package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/plus3/tetrad/grid"
	"github.com/plus3/tetrad/piece"
)

// Size is the number of pieces waiting in the preview lane.
const Size = 4

// Slots are the pivot positions of the preview pieces, front first.
var Slots = [Size]grid.Location{
	{Row: 2, Col: 13},
	{Row: 5, Col: 13},
	{Row: 8, Col: 13},
	{Row: 11, Col: 13},
}

// Queue is the ordered lookahead of upcoming pieces.
type Queue struct {
	grid   *grid.Grid
	bag    *Bag
	pieces [Size]*piece.Piece
}

// New fills the preview lane of g with Size pieces drawn from bag.
func New(g *grid.Grid, bag *Bag) *Queue {
	q := &Queue{grid: g, bag: bag}
	for i, slot := range Slots {
		q.pieces[i] = piece.New(g, bag.Draw(), slot, piece.Preview)
	}
	return q
}

// Pieces returns the waiting pieces, front first.
func (q *Queue) Pieces() [Size]*piece.Piece {
	return q.pieces
}

// Shapes returns the shapes of the waiting pieces, front first.
func (q *Queue) Shapes() [Size]piece.Shape {
	var shapes [Size]piece.Shape
	for i, p := range q.pieces {
		shapes[i] = p.Shape()
	}
	return shapes
}

var (
	// ErrSpawnBlocked means the front piece could not reach the spawn point.
	ErrSpawnBlocked = errors.New("queue: spawn point blocked")
	// ErrLaneBlocked means a preview piece could not move up its lane.
	ErrLaneBlocked = errors.New("queue: preview lane blocked")
)

// Advance moves the front piece to the spawn point and returns it, shifts
// the others forward one slot and appends a freshly drawn piece.
//
// If the spawn point is blocked it returns ErrSpawnBlocked and leaves the
// queue unchanged. If a preview piece cannot move up, the front piece is
// still returned with ErrLaneBlocked; the pieces behind it stay where they
// are and no new piece is drawn.
func (q *Queue) Advance(ctx context.Context) (*piece.Piece, error) {
	front := q.pieces[0]
	if !front.MoveTo(ctx, piece.SpawnCenter, piece.Playfield) {
		return nil, ErrSpawnBlocked
	}

	// The front has left; the rest of the shuffle must complete.
	ctx = context.WithoutCancel(ctx)
	for i := 1; i < Size; i++ {
		if !q.pieces[i].MoveTo(ctx, Slots[i-1], piece.Preview) {
			copy(q.pieces[i-1:], q.pieces[i:])
			return front, fmt.Errorf("%w: %s cannot reach slot %d", ErrLaneBlocked, q.pieces[i-1].Shape(), i-1)
		}
		q.pieces[i-1] = q.pieces[i]
	}
	q.pieces[Size-1] = piece.New(q.grid, q.bag.Draw(), Slots[Size-1], piece.Preview)
	return front, nil
}
