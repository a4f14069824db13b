package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/setanarut/drawgram"
	"github.com/setanarut/drawgram/command"
	"github.com/setanarut/drawgram/live"
	"github.com/setanarut/drawgram/palette"
	"github.com/setanarut/drawgram/utils"
)

const defaultColorsDir = "colorsdrawgram"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}
	switch args[0] {
	case "run":
		return runOrdered(args[1:], stdout, stderr)
	case "indexed":
		return runIndexed(args[1:], stdout, stderr)
	case "live":
		return runLive(args[1:], stderr)
	case "palette":
		return runPalette(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: drawgram <command> [flags] [image ...]")
	fmt.Fprintln(w, "  run      recognise shapes and execute the drawn program")
	fmt.Fprintln(w, "  indexed  list the vocabulary commands selected by the image colours")
	fmt.Fprintln(w, "  live     draw in the terminal and run with r")
	fmt.Fprintln(w, "  palette  build a palette cache from an image")
}

func newLogger(stderr io.Writer, verbose bool) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(stderr, "", log.LstdFlags)
}

func runOrdered(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var debugDir string
	var verbose, sound bool
	fs.StringVar(&debugDir, "debug", "", "write the edge map of each image into this directory")
	fs.BoolVar(&verbose, "v", false, "log pipeline diagnostics")
	fs.BoolVar(&sound, "sound", false, "play a tone when a run finishes")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "run requires at least one image")
		return 2
	}

	cue := newCue(sound)
	defer cue.Close()

	code := 0
	for _, path := range fs.Args() {
		img, err := utils.ReadImage(path)
		if err != nil {
			fmt.Fprintf(stderr, "%v: %s: %v\n", drawgram.ErrUnreadableImage, path, err)
			code = 1
			continue
		}
		opt := drawgram.OptionsFromSize(img.Bounds().Size())
		opt.Out = stdout
		opt.Logger = newLogger(stderr, verbose)

		if debugDir != "" {
			if err := writeEdges(debugDir, path, img, opt.Preprocess); err != nil {
				fmt.Fprintf(stderr, "debug output failed: %v\n", err)
			}
		}

		in := drawgram.NewOrdered(command.ScriptShapes, palette.ScriptColors, opt)
		if _, err := in.Run(img); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
			cue.Fail()
			code = 1
			continue
		}
		cue.Done()
	}
	return code
}

func writeEdges(dir, path string, img image.Image, opt drawgram.PreprocessOptions) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "_edges.png"
	return utils.SaveImage(drawgram.Preprocess(img, opt).EdgePreview(), filepath.Join(dir, name))
}

func runIndexed(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("indexed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var colorsDir string
	var size, divisions int
	var swatches, verbose bool
	fs.StringVar(&colorsDir, "colors", defaultColorsDir, "palette cache directory")
	fs.IntVar(&size, "n", palette.DefaultSize, "palette size when the cache has to be generated")
	fs.IntVar(&divisions, "grid", 50, "sampling grid divisions per side")
	fs.BoolVar(&swatches, "swatches", false, "write one swatch PNG per generated colour")
	fs.BoolVar(&verbose, "v", false, "log pipeline diagnostics")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "indexed requires at least one image")
		return 2
	}

	logger := newLogger(stderr, verbose)
	p, _, err := palette.LoadOrGenerate(colorsDir, size, swatches, logger)
	if err != nil {
		fmt.Fprintf(stderr, "palette failed: %v\n", err)
		return 1
	}

	opt := drawgram.DefaultOptions()
	opt.GridDivisions = divisions
	opt.Out = stdout
	opt.Logger = logger
	in, err := drawgram.NewIndexed(p, opt)
	if err != nil {
		fmt.Fprintf(stderr, "indexed failed: %v\n", err)
		return 1
	}

	code := 0
	for _, path := range fs.Args() {
		if _, err := in.RunFile(path); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			code = 1
		}
	}
	return code
}

func runLive(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("live", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var sound bool
	fs.BoolVar(&sound, "sound", true, "play a tone after each run")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cue := newCue(sound)
	defer cue.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(stderr, "live failed: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(stderr, "live failed: %v\n", err)
		return 1
	}
	defer screen.Fini()

	opt := drawgram.DefaultOptions()
	opt.Logger = log.New(io.Discard, "", 0)
	board := live.NewBoard(screen, func(img image.Image) ([]string, error) {
		var out bytes.Buffer
		opt.Out = &out
		in := drawgram.NewOrdered(command.LiveShapes, palette.LiveColors, opt)
		_, err := in.Run(img)
		if err != nil {
			cue.Fail()
		} else {
			cue.Done()
		}
		lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
		if len(lines) == 1 && lines[0] == "" {
			lines = []string{"no shapes recognised"}
		}
		return lines, err
	})
	board.Loop()
	return 0
}

func runPalette(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var from, dir, method string
	var k int
	fs.StringVar(&from, "from", "", "source image")
	fs.StringVar(&dir, "dir", defaultColorsDir, "palette cache directory to write")
	fs.StringVar(&method, "method", utils.PaletteMethodDominantColor.String(), "extraction method: dominant or kmeans")
	fs.IntVar(&k, "k", 8, "number of colours")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if from == "" {
		fmt.Fprintln(stderr, "palette requires -from")
		return 2
	}
	m, ok := utils.ParsePaletteMethod(method)
	if !ok {
		fmt.Fprintf(stderr, "unknown method %q\n", method)
		return 2
	}
	if k <= 0 {
		fmt.Fprintln(stderr, "-k must be positive")
		return 2
	}

	img, err := utils.ReadImage(from)
	if err != nil {
		fmt.Fprintf(stderr, "%v: %s: %v\n", drawgram.ErrUnreadableImage, from, err)
		return 1
	}
	p := palette.FromImage(img, k, m)
	if err := palette.Save(dir, p); err != nil {
		fmt.Fprintf(stderr, "palette save failed: %v\n", err)
		return 1
	}
	if err := palette.Swatch(p, 64, filepath.Join(dir, "palette.png")); err != nil {
		fmt.Fprintf(stderr, "swatch failed: %v\n", err)
		return 1
	}
	for i, c := range p {
		fmt.Fprintf(stdout, "%d %s\n", i, c)
	}
	return 0
}
