// Package tui is the terminal front-end: a bubbletea program that renders
// engine snapshots with lipgloss and forwards key presses as commands.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/plus3/tetrad/display"
)

// snapshotMsg tells the model a new snapshot is waiting in Latest.
type snapshotMsg struct{}

// keyNames maps bubbletea key strings to shared key names.
var keyNames = map[string]string{
	"up":    display.KeyUp,
	"down":  display.KeyDown,
	"left":  display.KeyLeft,
	"right": display.KeyRight,
	" ":     display.KeySpace,
	"c":     display.KeyC,
	"x":     display.KeyX,
	"z":     display.KeyZ,
	"e":     display.KeyE,
	"m":     display.KeyM,
	"a":     display.KeyA,
}

// Model implements tea.Model and engine.Display.
type Model struct {
	*display.Latest
	eng      display.Controller
	controls *display.Controls
	width    int
	height   int
}

// New returns a model with no engine bound yet.
func New() *Model {
	return &Model{
		Latest:   display.NewLatest(),
		controls: &display.Controls{},
	}
}

// Bind attaches the engine that receives commands.
func (m *Model) Bind(eng display.Controller) {
	m.eng = eng
}

// Run starts the terminal program and blocks until the player quits or ctx
// is cancelled.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(*m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) waitForSnapshot() tea.Cmd {
	ready := m.Ready()
	return func() tea.Msg {
		<-ready
		return snapshotMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForSnapshot()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case snapshotMsg:
		return m, m.waitForSnapshot()
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		if name, ok := keyNames[key]; ok && m.eng != nil {
			m.controls.Press(m.eng, name)
		}
	}
	return m, nil
}

func (m Model) View() string {
	snap, _ := m.Get()
	return center(m.width, m.height, render(snap, m.controls))
}
