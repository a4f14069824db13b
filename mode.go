package drawgram

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/drawgram/command"
)

type ModeOptions struct {
	// Marker pixel count a hue range must strictly exceed to select its mode.
	// Absolute, not a fraction of the image area: a marker is a drawn symbol of
	// roughly fixed size whatever the canvas.
	Threshold int
}

func DefaultModeOptions() ModeOptions {
	return ModeOptions{Threshold: 500}
}

// hsvRange is a box on the 8-bit HSV scale: hue 0-180, saturation and value 0-255.
type hsvRange struct {
	hLo, hHi float64
	sLo, vLo float64
}

func (r hsvRange) contains(h, s, v float64) bool {
	return h >= r.hLo && h <= r.hHi && s >= r.sLo && v >= r.vLo
}

var (
	redLow  = hsvRange{0, 10, 70, 50}
	redHigh = hsvRange{170, 180, 70, 50}
	green   = hsvRange{40, 80, 40, 40}
	blue    = hsvRange{90, 130, 50, 50}
)

// MarkerCounts holds the number of pixels inside each marker hue range.
type MarkerCounts struct {
	Red, Green, Blue int
}

// CountMarkers classifies every pixel of img into the red, green and blue
// marker ranges.
func CountMarkers(img image.Image) MarkerCounts {
	var mc MarkerCounts
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			hue, sat, val := c.Hsv()
			h := math.Round(hue / 2)
			s := math.Round(sat * 255)
			v := math.Round(val * 255)
			switch {
			case redLow.contains(h, s, v), redHigh.contains(h, s, v):
				mc.Red++
			case green.contains(h, s, v):
				mc.Green++
			case blue.contains(h, s, v):
				mc.Blue++
			}
		}
	}
	return mc
}

// Select picks the first of red, green, blue whose count exceeds threshold.
func (mc MarkerCounts) Select(threshold int) command.Mode {
	switch {
	case mc.Red > threshold:
		return command.ModePython
	case mc.Green > threshold:
		return command.ModeJava
	case mc.Blue > threshold:
		return command.ModeLinux
	default:
		return command.ModeDefault
	}
}

// DetectMode selects the command vocabulary of img from its marker colours.
func DetectMode(img image.Image, opt ModeOptions) command.Mode {
	return CountMarkers(img).Select(opt.Threshold)
}
