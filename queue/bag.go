// Package queue provides the shape randomizer and the preview queue of
// upcoming pieces.
package queue

import (
	"math/rand/v2"

	"github.com/plus3/tetrad/piece"
)

// Bag deals shapes without replacement from a shuffled set of all seven,
// refilling once every shape has been dealt.
type Bag struct {
	rng  *rand.Rand
	next []piece.Shape
}

// NewBag creates a bag seeded with seed. Equal seeds deal equal sequences.
func NewBag(seed uint64) *Bag {
	return &Bag{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Draw removes and returns the next shape.
func (b *Bag) Draw() piece.Shape {
	if len(b.next) == 0 {
		b.next = append(b.next[:0], piece.Shapes[:]...)
		b.rng.Shuffle(len(b.next), func(i, j int) {
			b.next[i], b.next[j] = b.next[j], b.next[i]
		})
	}
	s := b.next[0]
	b.next = b.next[1:]
	return s
}

// Remaining returns how many shapes are left before the next refill.
func (b *Bag) Remaining() int {
	return len(b.next)
}
