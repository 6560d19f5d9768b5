package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plus3/tetrad/audio"
	"github.com/plus3/tetrad/config"
	"github.com/plus3/tetrad/display/debugui"
	"github.com/plus3/tetrad/display/tui"
	"github.com/plus3/tetrad/display/window"
	"github.com/plus3/tetrad/engine"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// frontEnd is a display that also takes input and must own the main
// goroutine while it runs.
type frontEnd interface {
	engine.Display
	run(ctx context.Context, eng *engine.Engine) error
}

type windowFrontEnd struct{ *window.Game }

func (w windowFrontEnd) run(ctx context.Context, eng *engine.Engine) error {
	w.Bind(eng)
	return window.Run(ctx, w.Game)
}

type tuiFrontEnd struct{ *tui.Model }

func (t tuiFrontEnd) run(ctx context.Context, eng *engine.Engine) error {
	t.Bind(eng)
	return tui.Run(ctx, t.Model)
}

func newFrontEnd(cfg config.Config) frontEnd {
	if cfg.Display.Mode == config.ModeTUI {
		return tuiFrontEnd{tui.New()}
	}
	var overlay window.Overlay
	if cfg.Display.DebugUI {
		w, h := window.New(cfg.Display.Scale, nil).Size()
		overlay = debugui.New("tetrad", w+window.OverlayWidth, h)
	}
	return windowFrontEnd{window.New(cfg.Display.Scale, overlay)}
}

// newAudio opens the sound player and starts the background music, falling
// back to silence when no device is available.
func newAudio(cfg config.Config, log logrus.FieldLogger) (engine.Audio, func()) {
	p, err := audio.NewPlayer(cfg.Audio.SampleRate, cfg.Audio.Volume)
	if err != nil {
		log.WithError(err).Warn("audio unavailable, continuing without sound")
		return engine.NopAudio{}, func() {}
	}
	if cfg.Audio.Music {
		if err := p.StartMusic(); err != nil {
			log.WithError(err).Debug("background music unavailable")
		}
	}
	return p, func() {
		if err := p.Close(); err != nil {
			log.WithError(err).Debug("closing audio")
		}
	}
}

func play(cfg config.Config) error {
	root, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sound, closeAudio := newAudio(cfg, root)
	defer closeAudio()

	ui := newFrontEnd(cfg)
	eng := engine.New(engine.Config{
		Seed:       cfg.Seed,
		Logger:     root,
		Display:    ui,
		Audio:      sound,
		Muted:      cfg.Audio.Muted,
		Animations: cfg.Display.Animations,
	})
	defer eng.Close()

	log := root.WithField("game", eng.ID())
	log.WithFields(logrus.Fields{
		"mode":      cfg.Display.Mode,
		"tick_rate": cfg.TickRate,
	}).Info("starting")

	return runGame(ctx, eng, cfg.Interval(), ui.run, log)
}

// runGame ticks eng in the background while ui runs on the calling
// goroutine. Closing the UI stops the engine; the UI stays up after a game
// over so the final board remains visible.
func runGame(ctx context.Context, eng *engine.Engine, interval time.Duration,
	ui func(context.Context, *engine.Engine) error, log logrus.FieldLogger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := eng.Run(gctx, interval)
		switch {
		case errors.Is(err, engine.ErrGameOver):
			log.WithField("score", eng.Snapshot().Score).Debug("engine loop finished")
			return nil
		case errors.Is(err, context.Canceled):
			return nil
		}
		return err
	})

	uiErr := ui(gctx, eng)
	cancel()
	if err := g.Wait(); err != nil {
		return err
	}
	return uiErr
}
