// Package window is the desktop front-end: it draws engine snapshots in an
// ebiten window and turns key presses into engine commands.
package window

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tetrad/display"
	"github.com/plus3/tetrad/engine"
	"github.com/plus3/tetrad/grid"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/basicfont"
)

const (
	footerHeight = 48
	flashSeconds = 0.35
	// OverlayWidth is the extra width given to the debug overlay.
	OverlayWidth = 280
)

var background = color.NRGBA{R: 20, G: 20, B: 28, A: 255}

// Overlay is drawn over the board each frame, such as the ImGui debug view.
type Overlay interface {
	// Frame builds the overlay for one update.
	Frame(engine.Snapshot, engine.Stats)
	Render(screen *ebiten.Image)
	Resize(width, height int)
	WantsKeyboard() bool
}

// Engine is what the window drives.
type Engine interface {
	display.Controller
	Stats() engine.Stats
}

var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    display.KeyUp,
	ebiten.KeyArrowDown:  display.KeyDown,
	ebiten.KeyArrowLeft:  display.KeyLeft,
	ebiten.KeyArrowRight: display.KeyRight,
	ebiten.KeySpace:      display.KeySpace,
	ebiten.KeyC:          display.KeyC,
	ebiten.KeyX:          display.KeyX,
	ebiten.KeyZ:          display.KeyZ,
	ebiten.KeyE:          display.KeyE,
	ebiten.KeyM:          display.KeyM,
	ebiten.KeyA:          display.KeyA,
}

// repeating keys fire again while held.
var repeating = map[ebiten.Key]bool{
	ebiten.KeyArrowDown:  true,
	ebiten.KeyArrowLeft:  true,
	ebiten.KeyArrowRight: true,
}

// Game implements ebiten.Game and engine.Display.
type Game struct {
	*display.Latest
	eng      Engine
	controls display.Controls
	scale    int
	overlay  Overlay
	face     text.Face

	done        <-chan struct{}
	title       string
	seenCleared int
	flash       *gween.Tween
	flashAlpha  float32
}

// New creates a window drawing cells scale pixels wide. overlay may be nil.
func New(scale int, overlay Overlay) *Game {
	return &Game{
		Latest:  display.NewLatest(),
		scale:   scale,
		overlay: overlay,
		face:    text.NewGoXFace(basicfont.Face7x13),
	}
}

// Bind attaches the engine that receives commands.
func (g *Game) Bind(eng Engine) {
	g.eng = eng
}

// Size returns the logical screen size.
func (g *Game) Size() (int, int) {
	w, h := grid.Cols*g.scale, grid.Rows*g.scale+footerHeight
	if g.overlay != nil {
		w += OverlayWidth
	}
	return w, h
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, g *Game) error {
	g.done = ctx.Done()
	w, h := g.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("tetrad")
	return ebiten.RunGame(g)
}

func (g *Game) stopped() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}

func (g *Game) Update() error {
	if g.stopped() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	snap, title := g.Get()
	if title != "" && title != g.title {
		ebiten.SetWindowTitle(title)
		g.title = title
	}
	if snap.RowsCleared > g.seenCleared {
		g.seenCleared = snap.RowsCleared
		if snap.Animations {
			g.flash = gween.New(0.6, 0, flashSeconds, ease.OutQuad)
		}
	}
	if g.flash != nil {
		alpha, done := g.flash.Update(1 / float32(ebiten.TPS()))
		g.flashAlpha = alpha
		if done {
			g.flash, g.flashAlpha = nil, 0
		}
	}

	if g.overlay != nil && g.eng != nil {
		g.overlay.Frame(snap, g.eng.Stats())
	}

	if g.eng == nil || (g.overlay != nil && g.overlay.WantsKeyboard()) {
		return nil
	}
	for key, name := range keyNames {
		if pressed(key) {
			g.controls.Press(g.eng, name)
		}
	}
	return nil
}

func pressed(key ebiten.Key) bool {
	if inpututil.IsKeyJustPressed(key) {
		return true
	}
	if !repeating[key] {
		return false
	}
	d := inpututil.KeyPressDuration(key)
	return d >= 15 && d%4 == 0
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap, _ := g.Get()
	screen.Fill(background)

	s := float32(g.scale)
	for r := range grid.Rows {
		for c := range grid.Cols {
			occ := snap.Board[r][c]
			if occ.IsEmpty() {
				continue
			}
			vector.DrawFilledRect(screen, float32(c)*s+1, float32(r)*s+1, s-2, s-2, cellColor(occ), false)
		}
	}
	if g.flashAlpha > 0 {
		vector.DrawFilledRect(screen, 0, 0, grid.PlayfieldCols*s, grid.Rows*s,
			color.NRGBA{R: 255, G: 255, B: 255, A: uint8(g.flashAlpha * 255)}, false)
	}

	g.drawText(screen, snap.Title(), 8, grid.Rows*s+6)
	g.drawText(screen, footer(&g.controls), 8, grid.Rows*s+26)
	if snap.Over {
		g.drawText(screen, "GAME OVER", grid.PlayfieldCols*s/2-30, grid.Rows*s/2)
	}

	if g.overlay != nil {
		g.overlay.Render(screen)
	}
}

func (g *Game) drawText(screen *ebiten.Image, str string, x, y float32) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, str, g.face, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.Size()
	if g.overlay != nil {
		g.overlay.Resize(w, h)
	}
	return w, h
}
