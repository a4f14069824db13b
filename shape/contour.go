package shape

import (
	"image"
	"math"
	"slices"
)

// component is one 8-connected group of edge pixels.
type component struct {
	points []image.Point
	bounds image.Rectangle // inclusive min, exclusive max
}

// components labels the non-zero pixels of edges into 8-connected groups.
// Groups are returned in raster order of their first pixel.
func components(edges *image.Gray, minPixels int) []component {
	b := edges.Bounds()
	w, h := b.Dx(), b.Dy()
	seen := make([]bool, w*h)
	var out []component

	for y := range h {
		for x := range w {
			i0 := y*w + x
			if seen[i0] || edges.Pix[y*edges.Stride+x] == 0 {
				continue
			}
			seen[i0] = true
			queue := []int{i0}
			comp := component{bounds: image.Rect(x, y, x+1, y+1)}
			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				ux, uy := u%w, u/w
				p := image.Pt(ux, uy)
				comp.points = append(comp.points, p)
				comp.bounds = comp.bounds.Union(image.Rect(ux, uy, ux+1, uy+1))
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						vx, vy := ux+dx, uy+dy
						if vx < 0 || vy < 0 || vx >= w || vy >= h {
							continue
						}
						vi := vy*w + vx
						if seen[vi] || edges.Pix[vy*edges.Stride+vx] == 0 {
							continue
						}
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			if len(comp.points) >= minPixels {
				out = append(out, comp)
			}
		}
	}
	return out
}

// exterior marks the background pixels of edges that are 4-connected to the
// image border.
func exterior(edges *image.Gray) []bool {
	b := edges.Bounds()
	w, h := b.Dx(), b.Dy()
	ext := make([]bool, w*h)
	var stack []int
	push := func(x, y int) {
		i := y*w + x
		if ext[i] || edges.Pix[y*edges.Stride+x] != 0 {
			return
		}
		ext[i] = true
		stack = append(stack, i)
	}
	for x := range w {
		push(x, 0)
		push(x, h-1)
	}
	for y := range h {
		push(0, y)
		push(w-1, y)
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		if x > 0 {
			push(x-1, y)
		}
		if x < w-1 {
			push(x+1, y)
		}
		if y > 0 {
			push(x, y-1)
		}
		if y < h-1 {
			push(x, y+1)
		}
	}
	return ext
}

// outermost keeps the components that border the exterior background, i.e.
// the external contours. Components enclosed by another contour are dropped.
func outermost(edges *image.Gray, comps []component) []component {
	if len(comps) == 0 {
		return nil
	}
	b := edges.Bounds()
	w, h := b.Dx(), b.Dy()
	ext := exterior(edges)
	out := comps[:0:0]
	for _, c := range comps {
		for _, p := range c.points {
			if p.X == 0 || p.Y == 0 || p.X == w-1 || p.Y == h-1 {
				out = append(out, c)
				break
			}
			i := p.Y*w + p.X
			if ext[i-1] || ext[i+1] || ext[i-w] || ext[i+w] {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// moore lists the 8 neighbour offsets clockwise, starting east.
var moore = [8]image.Point{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

// traceBoundary follows the outer boundary of c clockwise by Moore-neighbour
// tracing. It starts at the first pixel of c in raster order and stops when it
// leaves that pixel a second time in the same direction.
func traceBoundary(c component) []image.Point {
	b := c.bounds
	w := b.Dx()
	in := make([]bool, w*b.Dy())
	for _, p := range c.points {
		in[(p.Y-b.Min.Y)*w+p.X-b.Min.X] = true
	}
	has := func(p image.Point) bool {
		return p.In(b) && in[(p.Y-b.Min.Y)*w+p.X-b.Min.X]
	}

	start := c.points[0]
	contour := []image.Point{start}
	// west of the raster-first pixel is background, so the search starts there
	cur, prev, first := start, 7, -1
	for range 8*len(c.points) + 8 {
		d, found := 0, false
		for k := range 8 {
			d = (prev + 5 + k) % 8
			if has(cur.Add(moore[d])) {
				found = true
				break
			}
		}
		if !found || (cur == start && d == first) {
			break
		}
		if first < 0 {
			first = d
		}
		cur = cur.Add(moore[d])
		prev = d
		contour = append(contour, cur)
	}
	if n := len(contour); n > 1 && contour[n-1] == start {
		contour = contour[:n-1]
	}
	return contour
}

func distance(a, b image.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// arcLength is the perimeter of pts, closing the polygon when closed is set.
func arcLength(pts []image.Point, closed bool) float64 {
	if len(pts) < 2 {
		return 0
	}
	length := 0.0
	for i := 1; i < len(pts); i++ {
		length += distance(pts[i-1], pts[i])
	}
	if closed {
		length += distance(pts[len(pts)-1], pts[0])
	}
	return length
}

// approxPolygon simplifies the closed polygon pts with Ramer-Douglas-Peucker.
// The chain is split at pts[0] and the vertex farthest from it.
func approxPolygon(pts []image.Point, epsilon float64) []image.Point {
	n := len(pts)
	if n < 3 {
		return slices.Clone(pts)
	}
	far, farDist := 0, 0.0
	for i := 1; i < n; i++ {
		if d := distance(pts[0], pts[i]); d > farDist {
			far, farDist = i, d
		}
	}
	if far == 0 {
		return []image.Point{pts[0]}
	}

	first := simplify(pts[:far+1], epsilon)
	ring := append(slices.Clone(pts[far:]), pts[0])
	second := simplify(ring, epsilon)

	out := make([]image.Point, 0, len(first)+len(second))
	out = append(out, first[:len(first)-1]...)
	out = append(out, second[:len(second)-1]...)
	return out
}

// simplify runs Ramer-Douglas-Peucker on an open chain, keeping both ends.
func simplify(pts []image.Point, epsilon float64) []image.Point {
	if len(pts) <= 2 {
		return slices.Clone(pts)
	}
	start, end := pts[0], pts[len(pts)-1]
	idx, dmax := 0, 0.0
	for i := 1; i < len(pts)-1; i++ {
		if d := lineDistance(pts[i], start, end); d > dmax {
			idx, dmax = i, d
		}
	}
	if dmax <= epsilon {
		return []image.Point{start, end}
	}
	left := simplify(pts[:idx+1], epsilon)
	right := simplify(pts[idx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// lineDistance is the distance from p to the line through a and b.
func lineDistance(p, a, b image.Point) float64 {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	norm := math.Hypot(dx, dy)
	if norm < 1e-10 {
		return distance(p, a)
	}
	return math.Abs(dy*float64(p.X-a.X)-dx*float64(p.Y-a.Y)) / norm
}
