// Package audio synthesises the engine's sound effects and plays them through
// Ebitengine's audio context.
package audio

import (
	"math"
	"time"

	"github.com/plus3/tetrad/engine"
)

type tone struct {
	freq     float64
	duration time.Duration
	gain     float64
}

// toneGap is the silence between consecutive tones of one effect.
const toneGap = 10 * time.Millisecond

func tonesFor(s engine.Sound) []tone {
	switch s {
	case engine.SoundDrop:
		return []tone{
			{freq: 240, duration: 45 * time.Millisecond, gain: 0.25},
			{freq: 160, duration: 60 * time.Millisecond, gain: 0.2},
		}
	case engine.SoundClear:
		return []tone{
			{freq: 440, duration: 70 * time.Millisecond, gain: 0.3},
			{freq: 660, duration: 90 * time.Millisecond, gain: 0.3},
		}
	default:
		return nil
	}
}

func samplesIn(d time.Duration, sampleRate int) int {
	return int(float64(sampleRate) * d.Seconds())
}

// render returns 16-bit little-endian stereo PCM for the tones.
func render(tones []tone, sampleRate int, volume float64) []byte {
	const frame = 4
	gap := samplesIn(toneGap, sampleRate)

	total := 0
	for i, t := range tones {
		total += samplesIn(t.duration, sampleRate)
		if i < len(tones)-1 {
			total += gap
		}
	}

	buf := make([]byte, total*frame)
	at := 0
	for _, t := range tones {
		n := samplesIn(t.duration, sampleRate)
		writeTone(buf[at:at+n*frame], t, sampleRate, t.gain*clamp01(volume))
		at += (n + gap) * frame
	}
	return buf
}

// writeTone fills dst with a sine wave faded in and out over 3ms.
func writeTone(dst []byte, t tone, sampleRate int, gain float64) {
	n := len(dst) / 4
	fade := samplesIn(3*time.Millisecond, sampleRate)
	for i := range n {
		env := 1.0
		switch {
		case i < fade:
			env = float64(i) / float64(fade)
		case i > n-fade:
			env = float64(n-i) / float64(fade)
		}
		v := int16(math.Sin(2*math.Pi*t.freq*float64(i)/float64(sampleRate)) * gain * max(env, 0) * math.MaxInt16)
		dst[i*4] = byte(v)
		dst[i*4+1] = byte(v >> 8)
		dst[i*4+2] = byte(v)
		dst[i*4+3] = byte(v >> 8)
	}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
