package palette

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/drawgram/utils"
)

var (
	// ErrEmptyPalette indicates a classifier was built over zero colours.
	ErrEmptyPalette = errors.New("palette: palette has no colours")
	// ErrCorruptCache indicates a cache file that does not hold RGB triples.
	ErrCorruptCache = errors.New("palette: corrupt palette cache")
)

// DefaultSize is the number of entries of a generated palette.
const DefaultSize = 1200

// RGB is an 8-bit colour without alpha.
type RGB struct {
	R, G, B uint8
}

var (
	White = RGB{255, 255, 255}
	Black = RGB{0, 0, 0}
	Red   = RGB{255, 0, 0}
)

// FromColor drops alpha and reduces c to 8 bits per channel.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// MarshalJSON encodes the colour as a [r, g, b] triple.
func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{int(c.R), int(c.G), int(c.B)})
}

func (c *RGB) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	if len(v) != 3 {
		return fmt.Errorf("%w: want 3 components, got %d", ErrCorruptCache, len(v))
	}
	for _, x := range v {
		if x < 0 || x > 255 {
			return fmt.Errorf("%w: component %d out of range", ErrCorruptCache, x)
		}
	}
	*c = RGB{uint8(v[0]), uint8(v[1]), uint8(v[2])}
	return nil
}

// Palette is an index-stable list of colours; an entry's index is its position.
type Palette []RGB

// Generate walks the hue circle at full saturation and value. Entry i takes
// hue floor(i*360/n) quantised to even degrees, the resolution of an 8-bit
// half-degree hue channel, so large palettes repeat colours.
func Generate(n int) Palette {
	p := make(Palette, n)
	for i := range n {
		h := i * 360 / n
		r, g, b := colorful.Hsv(float64(h/2*2), 1, 1).RGB255()
		p[i] = RGB{r, g, b}
	}
	return p
}

// FromColorful converts clamped colorful colours into a palette.
func FromColorful(colors []colorful.Color) Palette {
	p := make(Palette, len(colors))
	for i, c := range colors {
		r, g, b := c.Clamped().RGB255()
		p[i] = RGB{r, g, b}
	}
	return p
}

func (p Palette) Colorful() []colorful.Color {
	out := make([]colorful.Color, len(p))
	for i, c := range p {
		out[i] = c.Colorful()
	}
	return out
}

// FromImage extracts k representative colours of img, darkest first.
func FromImage(img image.Image, k int, method utils.PaletteMethod) Palette {
	colors := utils.ExtractPalette(img, k, method)
	utils.SortPaletteByBrightness(colors)
	return FromColorful(colors)
}

// Named is a direct-mode palette entry.
type Named struct {
	Name string
	RGB  RGB
}

// Direct is a small fixed palette matched by exact equality.
type Direct []Named

var (
	// ScriptColors is the direct palette of drawings loaded from files.
	ScriptColors = Direct{{"white", White}, {"red", Red}}
	// LiveColors is the direct palette of the live drawing surface.
	LiveColors = Direct{{"black", Black}}
)

func (d Direct) Contains(c RGB) bool {
	for _, n := range d {
		if n.RGB == c {
			return true
		}
	}
	return false
}
