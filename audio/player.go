package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/plus3/tetrad/engine"
)

// ErrClosed is returned by Play after Close.
var ErrClosed = errors.New("audio: player closed")

// Player plays pre-rendered effects. It implements engine.Audio.
type Player struct {
	ctx    *audio.Context
	volume float64

	mu     sync.Mutex
	clips  map[engine.Sound][]byte
	live   map[voice]struct{}
	music  *audio.Player
	closed bool
}

// voice is a playing effect as Close sees it. Play owns closing it.
type voice interface {
	Pause()
}

// NewPlayer renders every effect at sampleRate. Ebitengine allows a single
// audio context per process, so an existing one is reused if its rate matches.
func NewPlayer(sampleRate int, volume float64) (*Player, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	} else if ctx.SampleRate() != sampleRate {
		return nil, fmt.Errorf("audio: context already running at %d Hz", ctx.SampleRate())
	}

	p := &Player{
		ctx:    ctx,
		volume: clamp01(volume),
		clips:  map[engine.Sound][]byte{},
		live:   map[voice]struct{}{},
	}
	for _, s := range []engine.Sound{engine.SoundDrop, engine.SoundClear} {
		p.clips[s] = render(tonesFor(s), sampleRate, 1)
	}
	return p, nil
}

// Play starts s and blocks until it finishes.
func (p *Player) Play(s engine.Sound) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	clip, ok := p.clips[s]
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("audio: no clip for %s", s)
	}
	if !p.ctx.IsReady() {
		p.mu.Unlock()
		return errors.New("audio: device not ready")
	}
	ap := p.ctx.NewPlayerFromBytes(clip)
	ap.SetVolume(p.volume)
	p.live[ap] = struct{}{}
	p.mu.Unlock()

	ap.Play()
	for ap.IsPlaying() {
		time.Sleep(5 * time.Millisecond)
	}

	p.mu.Lock()
	delete(p.live, ap)
	p.mu.Unlock()
	return ap.Close()
}

// Close stops the music and every effect still playing. Each effect's Play
// call returns once its voice is paused and closes it there.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for v := range p.live {
		v.Pause()
	}
	clear(p.live)
	return p.stopMusicLocked()
}
