// Package live is an interactive drawing surface for the ordered interpreter.
//
// Editing is modelled as a value: Step takes the current EditorState and one
// input Event and returns the next state plus the Action the caller should
// perform. Nothing in the recognition pipeline reads the state; a run only ever
// sees the image produced by Render.
package live

import (
	"image"
	"image/color"
	"slices"
)

// Brush colours selectable with the keys 1 to 4.
var Brushes = []color.RGBA{
	{0, 0, 0, 255},
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{0, 0, 255, 255},
}

var paper = color.RGBA{255, 255, 255, 255}

const DefaultBrushSize = 3

// Stroke is one press-drag-release of the pointer.
type Stroke struct {
	Points []image.Point
	Color  color.RGBA
	Size   int
}

type EditorState struct {
	Strokes []Stroke
	// Drawing is set between a pointer press and its release.
	Drawing bool
	Last    image.Point
	Brush   color.RGBA
	Eraser  bool
	// BrushSize is the side of the square stamp in pixels.
	BrushSize int
}

func NewEditorState() EditorState {
	return EditorState{Brush: Brushes[0], BrushSize: DefaultBrushSize}
}

// Ink is the colour new strokes are drawn with.
func (s EditorState) Ink() color.RGBA {
	if s.Eraser {
		return paper
	}
	return s.Brush
}

type EventKind int

const (
	MouseDown EventKind = iota
	MouseMove
	MouseUp
	KeyPress
)

// Event is a pointer event at Pos (canvas pixels) or a key press.
type Event struct {
	Kind EventKind
	Pos  image.Point
	Key  rune
}

type Action int

const (
	ActionNone Action = iota
	ActionRun
	ActionClear
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionRun:
		return "run"
	case ActionClear:
		return "clear"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// Step applies ev to s. The input state is never modified; slices shared with
// it are copied before they grow.
func Step(s EditorState, ev Event) (EditorState, Action) {
	switch ev.Kind {
	case MouseDown:
		s.Drawing = true
		s.Last = ev.Pos
		s.Strokes = append(slices.Clip(s.Strokes), Stroke{
			Points: []image.Point{ev.Pos},
			Color:  s.Ink(),
			Size:   max(1, s.BrushSize),
		})
	case MouseMove, MouseUp:
		if !s.Drawing {
			return s, ActionNone
		}
		if ev.Pos != s.Last && len(s.Strokes) > 0 {
			s.Strokes = slices.Clone(s.Strokes)
			cur := &s.Strokes[len(s.Strokes)-1]
			cur.Points = append(slices.Clip(cur.Points), ev.Pos)
			s.Last = ev.Pos
		}
		if ev.Kind == MouseUp {
			s.Drawing = false
		}
	case KeyPress:
		return stepKey(s, ev.Key)
	}
	return s, ActionNone
}

func stepKey(s EditorState, key rune) (EditorState, Action) {
	switch key {
	case 'r':
		s.Drawing = false
		return s, ActionRun
	case 'c':
		s.Strokes = nil
		s.Drawing = false
		return s, ActionClear
	case 'q':
		return s, ActionQuit
	case 'e':
		s.Eraser = !s.Eraser
	case '1', '2', '3', '4':
		s.Brush = Brushes[key-'1']
		s.Eraser = false
	}
	return s, ActionNone
}
