package live

import (
	"image"
	"image/draw"
)

// Render rasterises the strokes of s onto a white canvas of the given size.
// Each segment is traced with a square stamp of the stroke size.
func Render(s EditorState, size image.Point) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)
	for _, st := range s.Strokes {
		if len(st.Points) == 0 {
			continue
		}
		ink := image.NewUniform(st.Color)
		stamp(img, st.Points[0], st.Size, ink)
		for i := 1; i < len(st.Points); i++ {
			line(img, st.Points[i-1], st.Points[i], st.Size, ink)
		}
	}
	return img
}

func stamp(img *image.RGBA, p image.Point, size int, ink *image.Uniform) {
	half := size / 2
	r := image.Rect(p.X-half, p.Y-half, p.X-half+size, p.Y-half+size)
	draw.Draw(img, r.Intersect(img.Bounds()), ink, image.Point{}, draw.Src)
}

// line stamps every point of the Bresenham line from a to b.
func line(img *image.RGBA, a, b image.Point, size int, ink *image.Uniform) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	e := dx + dy
	p := a
	for {
		stamp(img, p, size, ink)
		if p == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += sx
		}
		if e2 <= dx {
			e += dx
			p.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
