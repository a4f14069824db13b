// Package drawgram turns a drawing of coloured shapes into a short program and
// runs it.
//
// Two interpreters are provided. The ordered interpreter extracts closed
// shapes, orders them top to bottom, matches each (shape, colour) pair exactly
// against a small table and executes the resulting statements against one
// variable environment. The indexed interpreter samples the image on a grid,
// resolves every sample to its nearest entry of a large hue palette and lists
// the vocabulary commands those entries select under the detected mode.
package drawgram

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"strings"

	"github.com/setanarut/drawgram/command"
	"github.com/setanarut/drawgram/engine"
	"github.com/setanarut/drawgram/palette"
	"github.com/setanarut/drawgram/shape"
	"github.com/setanarut/drawgram/utils"
)

// ErrUnreadableImage indicates an input file that is missing or cannot be decoded.
var ErrUnreadableImage = errors.New("drawgram: unreadable image")

type Options struct {
	Preprocess PreprocessOptions
	Shape      shape.Options
	Mode       ModeOptions
	// Grid resolution of the indexed interpreter: the image is sampled every
	// W/GridDivisions columns and H/GridDivisions rows.
	GridDivisions int
	// Variables reported after a run when they were bound.
	Tracked []string
	// Console trace destination; os.Stdout when nil.
	Out io.Writer
	// Diagnostics; log.Default() when nil.
	Logger *log.Logger
}

func DefaultOptions() Options {
	return Options{
		Preprocess:    DefaultPreprocessOptions(),
		Shape:         shape.DefaultOptions(),
		Mode:          DefaultModeOptions(),
		GridDivisions: 50,
		Tracked:       []string{"x"},
	}
}

// OptionsFromSize adapts the defaults to an image size: very large scans are
// downscaled and the noise floor for contours grows with the image.
func OptionsFromSize(size image.Point) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 {
		return opt
	}
	side := max(size.X, size.Y)
	if side > 3200 {
		opt.Preprocess.MaxSide = 1600
		side = 1600
	}
	opt.Shape.MinPixels = max(opt.Shape.MinPixels, side/64)
	return opt
}

// Result is everything one run produced.
type Result struct {
	Mode command.Mode
	// Shapes recognised by the ordered interpreter, top to bottom.
	Shapes []shape.Shape
	// Trace is the command sequence in the order it was run or listed.
	Trace []string
	// Output holds the lines printed by executed commands.
	Output []string
	// Variables is the final environment; empty for indexed runs.
	Variables map[string]engine.Value
}

type variant int

const (
	ordered variant = iota
	indexed
)

// Interpreter runs the recognition pipeline. It keeps no state between runs
// and may be shared; only its palette is reused, read-only.
type Interpreter struct {
	variant variant
	opt     Options
	out     io.Writer
	log     *log.Logger

	table   command.ShapeTable
	exact   *palette.Exact
	nearest *palette.Nearest
	engine  *engine.Engine
}

func newInterpreter(v variant, opt Options) *Interpreter {
	in := &Interpreter{variant: v, opt: opt, out: opt.Out, log: opt.Logger}
	if in.out == nil {
		in.out = os.Stdout
	}
	if in.log == nil {
		in.log = log.Default()
	}
	in.engine = engine.New(in.out, opt.Tracked...)
	return in
}

// NewOrdered builds the shape interpreter: colours are matched exactly against
// colors and (kind, colour name) pairs looked up in table.
func NewOrdered(table command.ShapeTable, colors palette.Direct, opt Options) *Interpreter {
	in := newInterpreter(ordered, opt)
	in.table = table
	in.exact = palette.NewExact(colors)
	return in
}

// NewIndexed builds the grid interpreter over a generated or loaded palette.
func NewIndexed(p palette.Palette, opt Options) (*Interpreter, error) {
	nearest, err := palette.NewNearest(p)
	if err != nil {
		return nil, err
	}
	in := newInterpreter(indexed, opt)
	in.nearest = nearest
	return in, nil
}

// RunFile loads path and runs it. A missing or undecodable file yields
// ErrUnreadableImage and nothing is run.
func (in *Interpreter) RunFile(path string) (*Result, error) {
	img, err := utils.ReadImage(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableImage, path, err)
	}
	return in.Run(img)
}

// Run executes the whole pipeline on img. An execution error aborts the run;
// the partial result is returned together with the error.
func (in *Interpreter) Run(img image.Image) (*Result, error) {
	if in.variant == indexed {
		return in.runIndexed(img)
	}
	return in.runOrdered(img)
}

func (in *Interpreter) runOrdered(img image.Image) (*Result, error) {
	frame := Preprocess(img, in.opt.Preprocess)
	mode := DetectMode(fullResolution(img, frame.Color), in.opt.Mode)
	shapes := SortByCentroid(shape.Extract(frame.Edges, frame.Color, in.opt.Shape))
	in.log.Printf("drawgram: %d shapes, mode %s", len(shapes), mode)

	var commands []string
	for _, s := range shapes {
		m, ok := in.exact.Classify(palette.FromColor(s.Color))
		if !ok {
			continue
		}
		if cmd, ok := in.table.Map(s.Kind, m.Name); ok {
			commands = append(commands, cmd)
		}
	}

	rep, err := in.engine.Execute(commands)
	res := &Result{
		Mode:      mode,
		Shapes:    shapes,
		Trace:     rep.Trace,
		Output:    rep.Output,
		Variables: rep.Variables,
	}
	if err != nil {
		return res, fmt.Errorf("drawgram: %w", err)
	}
	return res, nil
}

// fullResolution is the composited input at its own size. The mode threshold
// is an absolute pixel count, so markers are never counted on a downscaled
// frame.
func fullResolution(img image.Image, frame *image.RGBA) *image.RGBA {
	if frame.Bounds().Size() == img.Bounds().Size() {
		return frame
	}
	return normalize(img, 0)
}

const (
	listingHeader = "=== DrawGram Interpreter Output ==="
	listingFooter = "=================================="
)

func (in *Interpreter) runIndexed(img image.Image) (*Result, error) {
	// sampling is cheap, so the grid and the marker counts see every pixel
	rgba := normalize(img, 0)
	mode := DetectMode(rgba, in.opt.Mode)
	mapper, err := command.NewIndexMapper(mode)
	if err != nil {
		return nil, err
	}

	samples := SampleGrid(rgba, in.opt.GridDivisions)
	commands := make([]string, 0, len(samples))
	for _, c := range samples {
		if m, ok := in.nearest.Classify(c); ok {
			commands = append(commands, mapper.Map(m.Index))
		}
	}
	listing := UniqueSorted(commands)
	in.log.Printf("drawgram: %d samples, %d commands, mode %s", len(samples), len(listing), mode)

	fmt.Fprintln(in.out, "\n"+listingHeader)
	fmt.Fprintf(in.out, "Mode: %s\n", strings.ToUpper(mode.String()))
	for _, cmd := range listing {
		fmt.Fprintln(in.out, "-", cmd)
	}
	fmt.Fprintln(in.out, listingFooter+"\n")
	return &Result{
		Mode:      mode,
		Trace:     listing,
		Variables: map[string]engine.Value{},
	}, nil
}
