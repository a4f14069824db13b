package live

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// Runner interprets a finished drawing and returns the lines to show the user.
type Runner func(img image.Image) ([]string, error)

// Cell is the pixel footprint of one terminal cell. Cells are about twice as
// tall as they are wide, so drawings keep their proportions.
var Cell = image.Pt(8, 16)

const (
	statusRows = 5
	helpLine   = "drag: draw  r: run  c: clear  e: eraser  1-4: colour  q: quit"
)

// Board is a terminal drawing surface. Mouse drags become strokes on a canvas
// of Cell-sized pixels per terminal cell; the bottom rows show help and the
// output of the last run. Runs happen on the event loop, so a new run is never
// started before the previous one returned.
type Board struct {
	screen tcell.Screen
	run    Runner
	state  EditorState
	status []string
}

func NewBoard(screen tcell.Screen, run Runner) *Board {
	screen.EnableMouse()
	return &Board{screen: screen, run: run, state: NewEditorState()}
}

func (b *Board) State() EditorState {
	return b.state
}

// CanvasSize is the drawing area in pixels for the current terminal size.
func (b *Board) CanvasSize() image.Point {
	w, h := b.screen.Size()
	return image.Pt(w*Cell.X, max(1, h-statusRows)*Cell.Y)
}

// Canvas renders the current drawing.
func (b *Board) Canvas() *image.RGBA {
	return Render(b.state, b.CanvasSize())
}

// Loop processes events until the user quits or the screen is finalised.
func (b *Board) Loop() {
	b.draw()
	for {
		ev := b.screen.PollEvent()
		if ev == nil || !b.Handle(ev) {
			return
		}
	}
}

// Handle applies one terminal event and redraws. It reports false on quit.
func (b *Board) Handle(ev tcell.Event) bool {
	var action Action
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		b.state, action = Step(b.state, Event{Kind: KeyPress, Key: ev.Rune()})

	case *tcell.EventMouse:
		x, y := ev.Position()
		pos := image.Pt(x*Cell.X+Cell.X/2, y*Cell.Y+Cell.Y/2)
		kind := MouseMove
		switch pressed := ev.Buttons()&tcell.Button1 != 0; {
		case pressed && !b.state.Drawing:
			kind = MouseDown
		case !pressed && b.state.Drawing:
			kind = MouseUp
		case !pressed:
			return true
		}
		b.state, action = Step(b.state, Event{Kind: kind, Pos: pos})

	case *tcell.EventResize:
		b.screen.Sync()
	}

	switch action {
	case ActionQuit:
		return false
	case ActionClear:
		b.status = nil
	case ActionRun:
		b.status = b.execute()
	}
	b.draw()
	return true
}

func (b *Board) execute() []string {
	if b.run == nil {
		return nil
	}
	lines, err := b.run(b.Canvas())
	if err != nil {
		lines = append(lines, fmt.Sprintf("error: %v", err))
	}
	return lines
}

func (b *Board) draw() {
	b.screen.Clear()
	canvas := b.Canvas()
	cols, rows := canvas.Bounds().Dx()/Cell.X, canvas.Bounds().Dy()/Cell.Y
	for y := range rows {
		for x := range cols {
			c := canvas.RGBAAt(x*Cell.X+Cell.X/2, y*Cell.Y+Cell.Y/2)
			if c == paper {
				continue
			}
			style := tcell.StyleDefault.Foreground(cellColor(c))
			b.screen.SetContent(x, y, '█', nil, style)
		}
	}

	_, h := b.screen.Size()
	top := max(0, h-statusRows)
	b.text(0, top, helpLine, tcell.StyleDefault.Reverse(true))
	lines := b.status
	if n := statusRows - 1; len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for i, line := range lines {
		b.text(0, top+1+i, line, tcell.StyleDefault)
	}
	b.screen.Show()
}

func (b *Board) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		b.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func cellColor(c color.RGBA) tcell.Color {
	if c == (color.RGBA{0, 0, 0, 255}) {
		// pure black disappears on dark terminals
		return tcell.ColorGray
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
