package shape_test

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/drawgram/shape"
)

type mask func(x, y int) bool

func rect(x0, y0, x1, y1 int) mask {
	return func(x, y int) bool { return x >= x0 && x < x1 && y >= y0 && y < y1 }
}

func disc(cx, cy, r int) mask {
	return func(x, y int) bool {
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= r*r
	}
}

func diamond(cx, cy, r int) mask {
	return func(x, y int) bool {
		return abs(x-cx)+abs(y-cy) <= r
	}
}

func triangle(a, b, c image.Point) mask {
	sign := func(p, q, r image.Point) int {
		return (p.X-r.X)*(q.Y-r.Y) - (q.X-r.X)*(p.Y-r.Y)
	}
	return func(x, y int) bool {
		p := image.Pt(x, y)
		d1, d2, d3 := sign(p, a, b), sign(p, b, c), sign(p, c, a)
		neg := d1 < 0 || d2 < 0 || d3 < 0
		pos := d1 > 0 || d2 > 0 || d3 > 0
		return !(neg && pos)
	}
}

// polygon fills pts with the even-odd rule.
func polygon(pts ...image.Point) mask {
	return func(x, y int) bool {
		px, py := float64(x)+0.5, float64(y)+0.5
		in := false
		for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
			a, b := pts[i], pts[j]
			ay, by := float64(a.Y), float64(b.Y)
			if (ay > py) == (by > py) {
				continue
			}
			cx := float64(a.X) + (py-ay)/(by-ay)*float64(b.X-a.X)
			if px < cx {
				in = !in
			}
		}
		return in
	}
}

func minus(outer, inner mask) mask {
	return func(x, y int) bool { return outer(x, y) && !inner(x, y) }
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// outline marks every mask pixel that has a 4-neighbour outside the mask.
func outline(w, h int, masks ...mask) *image.Gray {
	in := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		for _, m := range masks {
			if m(x, y) {
				return true
			}
		}
		return false
	}
	edges := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			if in(x, y) && (!in(x-1, y) || !in(x+1, y) || !in(x, y-1) || !in(x, y+1)) {
				edges.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return edges
}

func paint(w, h int, fill color.RGBA, masks ...mask) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			for _, m := range masks {
				if m(x, y) {
					img.SetRGBA(x, y, fill)
				}
			}
		}
	}
	return img
}

var red = color.RGBA{255, 0, 0, 255}

func TestKindOf(t *testing.T) {
	cases := map[int]shape.Kind{
		0: shape.Unknown, 1: shape.Unknown, 2: shape.Unknown,
		3: shape.Triangle, 4: shape.Square,
		5: shape.Circle, 8: shape.Circle, 40: shape.Circle,
	}
	for n, want := range cases {
		assert.Equal(t, want, shape.KindOf(n), "vertices=%d", n)
	}
}

func TestExtract_Kinds(t *testing.T) {
	const w, h = 200, 200
	cases := []struct {
		name string
		m    mask
		want shape.Kind
	}{
		{"Square", rect(40, 40, 100, 100), shape.Square},
		{"Rectangle", rect(20, 60, 180, 120), shape.Square},
		{"Diamond", diamond(100, 100, 50), shape.Square},
		{"Circle", disc(100, 100, 50), shape.Circle},
		{"LargeCircle", disc(100, 100, 70), shape.Circle},
		{"Triangle", triangle(image.Pt(100, 20), image.Pt(40, 140), image.Pt(160, 140)), shape.Triangle},
		{"RotatedTriangle", triangle(image.Pt(30, 40), image.Pt(170, 80), image.Pt(60, 170)), shape.Triangle},
		// concave: the notch is a vertex of its own
		{"Dart", polygon(image.Pt(100, 20), image.Pt(180, 180), image.Pt(100, 120), image.Pt(20, 180)), shape.Square},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shapes := shape.Extract(outline(w, h, tc.m), paint(w, h, red, tc.m), shape.DefaultOptions())
			require.Len(t, shapes, 1)
			assert.Equal(t, tc.want, shapes[0].Kind, "vertices=%d", shapes[0].Vertices)
		})
	}
}

func TestExtract_CentroidAndColour(t *testing.T) {
	m := rect(40, 40, 100, 100)
	shapes := shape.Extract(outline(200, 200, m), paint(200, 200, red, m), shape.DefaultOptions())
	require.Len(t, shapes, 1)
	assert.Equal(t, image.Pt(70, 70), shapes[0].Centroid)
	assert.Equal(t, red, shapes[0].Color)
	assert.Equal(t, image.Rect(40, 40, 100, 100), shapes[0].Bounds)
}

func TestExtract_OnlyOuterContour(t *testing.T) {
	ring := minus(disc(100, 100, 50), disc(100, 100, 42))
	shapes := shape.Extract(outline(200, 200, ring), paint(200, 200, red, ring), shape.DefaultOptions())
	require.Len(t, shapes, 1)
	assert.Equal(t, shape.Circle, shapes[0].Kind)
	assert.Equal(t, image.Pt(100, 100), shapes[0].Centroid)
	// the centre of a ring is background
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, shapes[0].Color)
}

func TestExtract_DegenerateDropped(t *testing.T) {
	line := rect(20, 50, 180, 51)
	shapes := shape.Extract(outline(200, 100, line), paint(200, 100, red, line), shape.DefaultOptions())
	assert.Empty(t, shapes)
}

func TestExtract_NoiseDropped(t *testing.T) {
	dot := rect(10, 10, 12, 12)
	shapes := shape.Extract(outline(50, 50, dot), paint(50, 50, red, dot), shape.DefaultOptions())
	assert.Empty(t, shapes)
}

func TestExtract_Empty(t *testing.T) {
	edges := image.NewGray(image.Rect(0, 0, 64, 64))
	assert.Empty(t, shape.Extract(edges, paint(64, 64, red), shape.DefaultOptions()))
}

func TestExtract_RasterOrder(t *testing.T) {
	low := rect(20, 120, 70, 170)
	high := disc(140, 60, 50)
	shapes := shape.Extract(outline(200, 200, low, high), paint(200, 200, red, low, high), shape.DefaultOptions())
	require.Len(t, shapes, 2)
	assert.Equal(t, shape.Circle, shapes[0].Kind)
	assert.Equal(t, shape.Square, shapes[1].Kind)
}

func TestExtract_OffsetSource(t *testing.T) {
	m := rect(10, 10, 50, 50)
	src := image.NewRGBA(image.Rect(100, 100, 160, 160))
	draw.Draw(src, src.Bounds(), paint(60, 60, red, m), image.Point{}, draw.Src)
	shapes := shape.Extract(outline(60, 60, m), src, shape.DefaultOptions())
	require.Len(t, shapes, 1)
	assert.Equal(t, red, shapes[0].Color)
}

func TestExtract_ScaleInvariant(t *testing.T) {
	for _, r := range []int{50, 70, 90} {
		size := 2*r + 40
		c := size / 2
		m := disc(c, c, r)
		shapes := shape.Extract(outline(size, size, m), paint(size, size, red, m), shape.DefaultOptions())
		require.Len(t, shapes, 1, "r=%d", r)
		assert.Equal(t, shape.Circle, shapes[0].Kind, "r=%d vertices=%d", r, shapes[0].Vertices)
		assert.LessOrEqual(t, math.Abs(float64(shapes[0].Centroid.X-c)), 1.0)
	}
}
