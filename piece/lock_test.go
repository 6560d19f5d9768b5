package piece

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/tetrad/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterruptedLockWaitIsNotApplied(t *testing.T) {
	g := grid.New()
	p := New(g, T, SpawnCenter, Playfield)
	before := g.Board()

	require.NoError(t, p.lock.Acquire(context.Background(), 1))
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	assert.False(t, p.Translate(ctx, 1, 0))
	p.lock.Release(1)

	assert.Equal(t, before, g.Board())
	assert.True(t, p.Translate(context.Background(), 1, 0))
}

func TestCancelledContextIsNotApplied(t *testing.T) {
	g := grid.New()
	p := New(g, I, SpawnCenter, Playfield)
	before := g.Board()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, p.Translate(ctx, 1, 0))
	assert.False(t, p.Rotate(ctx))
	assert.False(t, p.CanMoveDown(ctx, 1))
	assert.Equal(t, Drop{}, p.MoveToBottom(ctx))
	assert.False(t, p.UpdateShadow(ctx))
	assert.Equal(t, before, g.Board())

	assert.True(t, p.lock.TryAcquire(1), "lock must be free after rejected calls")
	p.lock.Release(1)
}

func TestNorthCells(t *testing.T) {
	g := grid.New()
	p := New(g, J, grid.Location{Row: 8, Col: 5}, Playfield)
	want := p.cells
	for range 3 {
		require.True(t, p.Rotate(context.Background()))
	}
	assert.Equal(t, West, p.rotation)
	assert.Equal(t, want, p.northCells())
}

func TestAccessorsWaitForLock(t *testing.T) {
	g := grid.New()
	p := New(g, S, SpawnCenter, Playfield)

	accessors := map[string]func(){
		"Cells":       func() { p.Cells() },
		"Center":      func() { p.Center() },
		"Rotation":    func() { p.Rotation() },
		"Zone":        func() { p.Zone() },
		"Settled":     func() { p.Settled() },
		"ShadowCells": func() { p.ShadowCells() },
	}
	for name, read := range accessors {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, p.lock.Acquire(context.Background(), 1))
			done := make(chan struct{})
			go func() {
				read()
				close(done)
			}()

			select {
			case <-done:
				t.Fatal("read while the lock was held")
			case <-time.After(10 * time.Millisecond):
			}
			p.lock.Release(1)
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("read never completed")
			}
			assert.True(t, p.lock.TryAcquire(1), "lock released after the read")
			p.lock.Release(1)
		})
	}
}
