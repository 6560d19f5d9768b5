package engine

import "github.com/kamstrup/intmap"

// deferred holds actions scheduled for a later tick. Actions run at the start
// of their tick while the engine is locked, in the order they were added.
type deferred struct {
	byTick *intmap.Map[uint64, []func()]
	// pending counts queued actions across all ticks.
	pending int
}

func newDeferred() *deferred {
	return &deferred{byTick: intmap.New[uint64, []func()](8)}
}

// at queues fn to run at tick.
func (d *deferred) at(tick uint64, fn func()) {
	fns, _ := d.byTick.Get(tick)
	d.byTick.Put(tick, append(fns, fn))
	d.pending++
}

// run executes and drops every action due at tick and returns how many ran.
func (d *deferred) run(tick uint64) int {
	fns, ok := d.byTick.Get(tick)
	if !ok {
		return 0
	}
	d.byTick.Del(tick)
	d.pending -= len(fns)
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}
