// Package debugui draws a Dear ImGui overlay with live engine state and tick
// timings on top of the ebiten window.
package debugui

import (
	"fmt"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tetrad/engine"
	"github.com/plus3/tetrad/grid"
)

// Overlay wraps the Ebiten ImGui backend and renders the debug windows.
type Overlay struct {
	*ebitenbackend.EbitenBackend
	history *tickHistory
}

// New creates the ImGui backend and the ebiten window it renders into.
func New(title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &Overlay{
		EbitenBackend: backend,
		history:       newTickHistory(120),
	}
}

// WantsKeyboard reports whether ImGui is consuming keyboard input.
func (o *Overlay) WantsKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}

// Frame builds the overlay windows for one update.
func (o *Overlay) Frame(s engine.Snapshot, stats engine.Stats) {
	o.BeginFrame()
	o.history.push(stats)
	renderGame(s)
	renderTicks(stats, o.history)
	o.EndFrame()
}

// Render draws the last built frame on top of screen.
func (o *Overlay) Render(screen *ebiten.Image) {
	o.Draw(screen)
}

// Resize tells ImGui the logical screen size.
func (o *Overlay) Resize(width, height int) {
	o.Layout(width, height)
}

func renderGame(s engine.Snapshot) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(260, 300), imgui.CondOnce)
	if !imgui.BeginV("Game", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Session: %s", s.ID))
	imgui.Text(fmt.Sprintf("Tick: %d", s.Tick))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Score: %d", s.Score))
	imgui.Text(fmt.Sprintf("Level: %d (gravity every %d ticks)", s.Level, s.WaitTime))
	imgui.Text(fmt.Sprintf("Rows cleared: %d", s.RowsCleared))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Falling: %s", s.Falling))
	if s.HasHeld {
		imgui.Text(fmt.Sprintf("Held: %s", s.Held))
	} else {
		imgui.Text("Held: -")
	}
	imgui.Text(fmt.Sprintf("Next: %v", s.Upcoming))
	imgui.Separator()
	flag("Can hold", s.CanHold)
	flag("Muted", s.Muted)
	flag("Animations", s.Animations)
	flag("Game over", s.Over)

	if imgui.TreeNodeStr("Cells by role") {
		counts := map[grid.Role]int{}
		for r := range grid.Rows {
			for c := range grid.Cols {
				counts[s.Board[r][c].Role]++
			}
		}
		for _, role := range []grid.Role{grid.Block, grid.Shadow, grid.Trail, grid.Wall} {
			imgui.BulletText(fmt.Sprintf("%s: %d", role, counts[role]))
		}
		imgui.TreePop()
	}
	imgui.End()
}

func flag(name string, on bool) {
	if on {
		imgui.TextColored(imgui.NewVec4(0.4, 1, 0.4, 1), name)
		return
	}
	imgui.TextColored(imgui.NewVec4(0.6, 0.6, 0.6, 1), name)
}
