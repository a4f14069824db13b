package drawgram

import (
	"image"
	"slices"

	"github.com/setanarut/drawgram/palette"
	"github.com/setanarut/drawgram/shape"
)

// SortByCentroid returns shapes ordered top to bottom by centroid. Shapes on
// the same row keep their extraction order.
func SortByCentroid(shapes []shape.Shape) []shape.Shape {
	out := slices.Clone(shapes)
	slices.SortStableFunc(out, func(a, b shape.Shape) int {
		return a.Centroid.Y - b.Centroid.Y
	})
	return out
}

// UniqueSorted returns the distinct commands in lexicographic order.
func UniqueSorted(commands []string) []string {
	out := slices.Clone(commands)
	slices.Sort(out)
	return slices.Compact(out)
}

// SampleGrid reads img every max(1, W/divisions) columns and
// max(1, H/divisions) rows and returns the samples that are not pure white,
// in raster order.
func SampleGrid(img image.Image, divisions int) []palette.RGB {
	b := img.Bounds()
	if divisions <= 0 {
		divisions = 1
	}
	stepX := max(1, b.Dx()/divisions)
	stepY := max(1, b.Dy()/divisions)

	var out []palette.RGB
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			c := palette.FromColor(img.At(x, y))
			if c == palette.White {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}
