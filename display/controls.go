// Package display holds what the front-ends share: the control schemes that
// turn key presses into engine commands, and the latest-snapshot holder.
package display

import (
	"sync"
	"sync/atomic"

	"github.com/plus3/tetrad/engine"
)

// Controller is the engine's input command surface.
type Controller interface {
	MoveLeft()
	MoveRight()
	MoveDown()
	RotateCW()
	RotateCCW()
	HardDrop()
	Hold()
	MuteSFX()
	HaltAnims()
}

var _ Controller = (*engine.Engine)(nil)

// Scheme selects a key layout.
type Scheme uint8

const (
	Default Scheme = iota
	Alternate
)

func (s Scheme) String() string {
	if s == Alternate {
		return "alternate"
	}
	return "default"
}

// Key names shared by the front-ends.
const (
	KeyUp    = "up"
	KeyDown  = "down"
	KeyLeft  = "left"
	KeyRight = "right"
	KeySpace = "space"
	KeyC     = "c"
	KeyX     = "x"
	KeyZ     = "z"
	KeyE     = "e"
	KeyM     = "m"
	KeyA     = "a"
)

// Keys lists every key any scheme reacts to.
var Keys = []string{KeyUp, KeyDown, KeyLeft, KeyRight, KeySpace, KeyC, KeyX, KeyZ, KeyE, KeyM, KeyA}

type binding func(Controller)

var common = map[string]binding{
	KeyLeft:  Controller.MoveLeft,
	KeyRight: Controller.MoveRight,
	KeyDown:  Controller.MoveDown,
	KeyZ:     Controller.RotateCCW,
	KeyM:     Controller.MuteSFX,
	KeyA:     Controller.HaltAnims,
}

var schemes = [...]map[string]binding{
	Default: {
		KeyUp:    Controller.RotateCW,
		KeySpace: Controller.HardDrop,
		KeyC:     Controller.Hold,
	},
	Alternate: {
		KeyX:     Controller.RotateCW,
		KeyUp:    Controller.HardDrop,
		KeySpace: Controller.Hold,
	},
}

// Controls maps key presses to commands. E switches between schemes.
type Controls struct {
	scheme atomic.Uint32
}

// Scheme returns the active scheme.
func (c *Controls) Scheme() Scheme {
	return Scheme(c.scheme.Load())
}

// Press applies the command bound to key and reports whether one was.
func (c *Controls) Press(ctl Controller, key string) bool {
	if key == KeyE {
		c.scheme.Store(uint32(1 - c.Scheme()))
		return true
	}
	if b, ok := schemes[c.Scheme()][key]; ok {
		b(ctl)
		return true
	}
	if b, ok := common[key]; ok {
		b(ctl)
		return true
	}
	return false
}

// Help returns one line per binding of the active scheme.
func (c *Controls) Help() []string {
	if c.Scheme() == Alternate {
		return []string{"X rotate", "Z rotate back", "Up drop", "Space hold", "E controls", "M mute", "A anims"}
	}
	return []string{"Up rotate", "Z rotate back", "Space drop", "C hold", "E controls", "M mute", "A anims"}
}

// Latest keeps the newest snapshot handed to a display.
type Latest struct {
	mu    sync.Mutex
	snap  engine.Snapshot
	title string
	ready chan struct{}
}

// NewLatest returns an empty holder.
func NewLatest() *Latest {
	return &Latest{ready: make(chan struct{}, 1)}
}

// Redraw stores s unless a newer snapshot is already held.
func (l *Latest) Redraw(s engine.Snapshot) {
	l.mu.Lock()
	if s.Version <= l.snap.Version {
		l.mu.Unlock()
		return
	}
	l.snap = s
	l.mu.Unlock()
	select {
	case l.ready <- struct{}{}:
	default:
	}
}

// SetTitle stores the title.
func (l *Latest) SetTitle(title string) {
	l.mu.Lock()
	l.title = title
	l.mu.Unlock()
}

// Get returns the newest snapshot and title.
func (l *Latest) Get() (engine.Snapshot, string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap, l.title
}

// Ready receives a value after each accepted Redraw; bursts coalesce.
func (l *Latest) Ready() <-chan struct{} {
	return l.ready
}
