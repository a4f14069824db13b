package drawgram_test

import (
	"image"
	"image/color"
	"io"
	"log"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}

	nearRed = color.RGBA{254, 0, 0, 255}
)

// canvas is a white drawing surface for building test images.
type canvas struct {
	*image.RGBA
}

func newCanvas(w, h int) canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:i+4], []uint8{255, 255, 255, 255})
	}
	return canvas{img}
}

func (c canvas) fill(in func(x, y int) bool, col color.RGBA) canvas {
	b := c.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if in(x, y) {
				c.SetRGBA(x, y, col)
			}
		}
	}
	return c
}

func (c canvas) rect(x0, y0, x1, y1 int, col color.RGBA) canvas {
	return c.fill(func(x, y int) bool { return x >= x0 && x < x1 && y >= y0 && y < y1 }, col)
}

func (c canvas) disc(cx, cy, r int, col color.RGBA) canvas {
	return c.fill(func(x, y int) bool {
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= r*r
	}, col)
}

// ring draws a circle outline of the given thickness with an untouched interior.
func (c canvas) ring(cx, cy, r, thickness int, col color.RGBA) canvas {
	inner := r - thickness
	return c.fill(func(x, y int) bool {
		d := (x-cx)*(x-cx) + (y-cy)*(y-cy)
		return d <= r*r && d > inner*inner
	}, col)
}

func (c canvas) triangle(a, b, p image.Point, col color.RGBA) canvas {
	sign := func(p1, p2, p3 image.Point) int {
		return (p1.X-p3.X)*(p2.Y-p3.Y) - (p2.X-p3.X)*(p1.Y-p3.Y)
	}
	return c.fill(func(x, y int) bool {
		q := image.Pt(x, y)
		d1, d2, d3 := sign(q, a, b), sign(q, b, p), sign(q, p, a)
		neg := d1 < 0 || d2 < 0 || d3 < 0
		pos := d1 > 0 || d2 > 0 || d3 > 0
		return !(neg && pos)
	}, col)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
