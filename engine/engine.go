// Package engine runs a single game: gravity, locking, line clears, scoring,
// hold and game over, driven by a fixed-rate tick and by input commands that
// may arrive from any goroutine.
//
// All engine state is guarded by one mutex; piece locks are only taken while
// it is held. Collaborators receive a Snapshot after every change and are
// never called with the engine locked.
package engine

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/tetrad/grid"
	"github.com/plus3/tetrad/piece"
	"github.com/plus3/tetrad/queue"
	"github.com/sirupsen/logrus"
)

var (
	// ErrGameOver is returned once a lock leaves blocks in the spawn area.
	ErrGameOver = errors.New("engine: game over")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("engine: closed")
)

// Config holds the collaborators and starting options for an Engine.
type Config struct {
	// Seed for the shape randomizer; 0 picks one from the clock.
	Seed uint64
	// Logger defaults to a logger that discards everything.
	Logger logrus.FieldLogger
	// Display defaults to NopDisplay.
	Display Display
	// Audio defaults to NopAudio.
	Audio Audio

	Muted      bool
	Animations bool
}

// Engine is one game in progress.
type Engine struct {
	mu     sync.Mutex
	id     uuid.UUID
	log    logrus.FieldLogger
	ctx    context.Context
	cancel context.CancelFunc

	grid    *grid.Grid
	queue   *queue.Queue
	falling *piece.Piece
	held    *piece.Piece

	score     int
	level     int
	waitTime  int
	dropTimer int
	tick      uint64
	version   uint64

	canHold         bool
	canShift        bool
	hardDropPending bool
	muted           bool
	animations      bool
	over            bool
	closed          bool

	later *deferred
	ticks tickStats

	piecesLocked int
	rowsCleared  int
	holds        int
	hardDrops    int

	display Display
	audio   Audio
}

// New creates an engine with the first piece already falling.
func New(cfg Config) *Engine {
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = l
	}
	if cfg.Display == nil {
		cfg.Display = NopDisplay{}
	}
	if cfg.Audio == nil {
		cfg.Audio = NopAudio{}
	}

	id := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	g := grid.NewWithWalls(piece.WallColor)
	e := &Engine{
		id:         id,
		log:        cfg.Logger.WithField("game", id.String()),
		ctx:        ctx,
		cancel:     cancel,
		grid:       g,
		queue:      queue.New(g, queue.NewBag(cfg.Seed)),
		level:      1,
		waitTime:   WaitTime(1),
		canHold:    true,
		canShift:   true,
		muted:      cfg.Muted,
		animations: cfg.Animations,
		later:      newDeferred(),
		display:    cfg.Display,
		audio:      cfg.Audio,
	}
	// A fresh board always has room for the first piece.
	e.falling, _ = e.advance()
	e.falling.UpdateShadow(ctx)
	e.log.WithFields(logrus.Fields{"seed": cfg.Seed, "shape": e.falling.Shape()}).Debug("game started")
	return e
}

// ID returns the game's session id.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Close stops the engine. Pending and later commands are not applied and
// Tick returns ErrClosed.
func (e *Engine) Close() {
	e.cancel()
	e.mu.Lock()
	e.closed = true
	e.canShift = false
	e.mu.Unlock()
}

// Level returns the level reached at score.
func Level(score int) int {
	return score/3000 + 1
}

// lineScores is the base award for clearing n rows in one lock.
var lineScores = [...]int{0, 100, 300, 500, 1000}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// update runs fn with the engine locked and then notifies the display.
func (e *Engine) update(fn func() bool) {
	e.mu.Lock()
	if e.over || e.closed {
		e.mu.Unlock()
		return
	}
	if !fn() {
		e.mu.Unlock()
		return
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

func (e *Engine) notify(snap Snapshot) {
	e.display.Redraw(snap)
	e.display.SetTitle(snap.Title())
}

// playSound hands s to the audio collaborator on its own goroutine. Must be
// called with the engine locked.
func (e *Engine) playSound(s Sound) {
	if e.muted {
		return
	}
	log := e.log.WithField("sound", s)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Debug("audio playback panicked")
			}
		}()
		if err := e.audio.Play(s); err != nil {
			log.WithError(err).Debug("audio playback failed")
		}
	}()
}

func (e *Engine) endGame() error {
	e.over = true
	e.canShift = false
	e.log.WithFields(logrus.Fields{
		"score":  e.score,
		"level":  e.level,
		"pieces": e.piecesLocked,
		"rows":   e.rowsCleared,
	}).Info("game over")
	return ErrGameOver
}
