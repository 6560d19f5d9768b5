package engine

//go:generate go tool stringer -type=Sound

// Sound names an effect the engine asks the audio collaborator to play.
type Sound uint8

const (
	SoundDrop Sound = iota
	SoundClear
)

// Audio plays sound effects. Play may fail or panic; the engine logs and
// discards either outcome.
type Audio interface {
	Play(Sound) error
}

// Display renders engine state. Both methods are called from whichever
// goroutine changed the state, never while the engine is locked.
type Display interface {
	Redraw(Snapshot)
	SetTitle(string)
}

// NopAudio discards every request.
type NopAudio struct{}

func (NopAudio) Play(Sound) error { return nil }

// NopDisplay ignores every update.
type NopDisplay struct{}

func (NopDisplay) Redraw(Snapshot) {}
func (NopDisplay) SetTitle(string) {}

// Displays fans updates out to several displays in order.
type Displays []Display

func (ds Displays) Redraw(s Snapshot) {
	for _, d := range ds {
		d.Redraw(s)
	}
}

func (ds Displays) SetTitle(title string) {
	for _, d := range ds {
		d.SetTitle(title)
	}
}
