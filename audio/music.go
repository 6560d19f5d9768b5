package audio

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Note frequencies in Hz.
const (
	noteA4 = 440.00
	noteB4 = 493.88
	noteC5 = 523.25
	noteD5 = 587.33
	noteE5 = 659.25
)

const (
	beat      = 180 * time.Millisecond
	musicGain = 0.12
)

func note(freq float64, beats float64) tone {
	return tone{freq: freq, duration: time.Duration(beats * float64(beat)), gain: musicGain}
}

// theme is the opening phrase of Korobeiniki, looped as background music.
var theme = []tone{
	note(noteE5, 2), note(noteB4, 1), note(noteC5, 1), note(noteD5, 2), note(noteC5, 1), note(noteB4, 1),
	note(noteA4, 2), note(noteA4, 1), note(noteC5, 1), note(noteE5, 2), note(noteD5, 1), note(noteC5, 1),
	note(noteB4, 3), note(noteC5, 1), note(noteD5, 2), note(noteE5, 2),
	note(noteC5, 2), note(noteA4, 2), note(noteA4, 4),
}

// StartMusic loops the theme until StopMusic or Close. It does nothing if
// the music is already playing.
func (p *Player) StartMusic() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if p.music != nil {
		return nil
	}

	pcm := render(theme, p.ctx.SampleRate(), 1)
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	ap, err := p.ctx.NewPlayer(loop)
	if err != nil {
		return fmt.Errorf("audio: music: %w", err)
	}
	ap.SetVolume(p.volume)
	ap.Play()
	p.music = ap
	return nil
}

// StopMusic stops the background music.
func (p *Player) StopMusic() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopMusicLocked()
}

func (p *Player) stopMusicLocked() error {
	if p.music == nil {
		return nil
	}
	m := p.music
	p.music = nil
	m.Pause()
	return m.Close()
}
