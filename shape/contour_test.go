package shape

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// edgeMap builds an edge image from pixel predicates.
func edgeMap(w, h int, on ...func(x, y int) bool) *image.Gray {
	edges := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			for _, f := range on {
				if f(x, y) {
					edges.Pix[y*edges.Stride+x] = 255
				}
			}
		}
	}
	return edges
}

func squareOutline(x0, y0, x1, y1 int) func(x, y int) bool {
	return func(x, y int) bool {
		inside := x >= x0 && x <= x1 && y >= y0 && y <= y1
		return inside && (x == x0 || x == x1 || y == y0 || y == y1)
	}
}

func diamondOutline(cx, cy, r int) func(x, y int) bool {
	return func(x, y int) bool {
		dx, dy := x-cx, y-cy
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		return dx+dy == r
	}
}

func TestTraceBoundary_Block(t *testing.T) {
	comps := components(edgeMap(6, 6, func(x, y int) bool { return x >= 2 && x < 4 && y >= 2 && y < 4 }), 1)
	require.Len(t, comps, 1)
	assert.Equal(t, []image.Point{{2, 2}, {3, 2}, {3, 3}, {2, 3}}, traceBoundary(comps[0]))
}

func TestTraceBoundary_Line(t *testing.T) {
	comps := components(edgeMap(6, 3, func(x, y int) bool { return y == 1 && x < 3 }), 1)
	require.Len(t, comps, 1)
	assert.Equal(t, []image.Point{{0, 1}, {1, 1}, {2, 1}, {1, 1}}, traceBoundary(comps[0]))
}

func TestTraceBoundary_SquareOutlineClockwise(t *testing.T) {
	comps := components(edgeMap(20, 20, squareOutline(2, 3, 12, 9)), 1)
	require.Len(t, comps, 1)
	contour := traceBoundary(comps[0])
	// every outline pixel once, clockwise from the top-left corner
	assert.Len(t, contour, 2*(10+6))
	assert.Equal(t, image.Point{2, 3}, contour[0])
	assert.Equal(t, image.Point{3, 3}, contour[1])
	assert.Equal(t, image.Point{2, 4}, contour[len(contour)-1])
}

func TestTraceBoundary_Concave(t *testing.T) {
	// an L shape: the notch must survive in the traced boundary
	l := func(x, y int) bool {
		in := func(x, y int) bool {
			return (x >= 0 && x < 40 && y >= 0 && y < 10) || (x >= 0 && x < 10 && y >= 0 && y < 40)
		}
		return in(x, y) && (!in(x-1, y) || !in(x+1, y) || !in(x, y-1) || !in(x, y+1))
	}
	comps := components(edgeMap(50, 50, l), 1)
	require.Len(t, comps, 1)
	contour := traceBoundary(comps[0])
	assert.Contains(t, contour, image.Point{10, 9})
	assert.Contains(t, contour, image.Point{9, 10})
	poly := approxPolygon(contour, 0.04*arcLength(contour, true))
	assert.Len(t, poly, 6)
}

func TestArcLength(t *testing.T) {
	square := []image.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	assert.InDelta(t, 40.0, arcLength(square, true), 1e-9)
	assert.InDelta(t, 30.0, arcLength(square, false), 1e-9)
	assert.Zero(t, arcLength(square[:1], true))
}

func TestApproxPolygon_Circle(t *testing.T) {
	var pts []image.Point
	for i := range 72 {
		a := float64(i) * 2 * math.Pi / 72
		pts = append(pts, image.Pt(int(math.Round(100+50*math.Cos(a))), int(math.Round(100+50*math.Sin(a)))))
	}
	poly := approxPolygon(pts, 0.04*arcLength(pts, true))
	assert.Greater(t, len(poly), 4)
}

func TestApproxPolygon_WobblySquare(t *testing.T) {
	// a hand-drawn square: corners plus mid-edge points off the line by 2px
	pts := []image.Point{
		{0, 0}, {25, 2}, {50, -1}, {75, 1}, {100, 0},
		{98, 25}, {101, 50}, {99, 75}, {100, 100},
		{75, 102}, {50, 98}, {25, 101}, {0, 100},
		{2, 75}, {-1, 50}, {1, 25},
	}
	poly := approxPolygon(pts, 0.04*arcLength(pts, true))
	require.Len(t, poly, 4)
	assert.Equal(t, image.Point{0, 0}, poly[0])
	assert.Contains(t, poly, image.Point{100, 100})
}

func TestApproxPolygon_Short(t *testing.T) {
	assert.Len(t, approxPolygon([]image.Point{{0, 0}, {5, 5}}, 1), 2)
	assert.Len(t, approxPolygon([]image.Point{{3, 3}, {3, 3}, {3, 3}}, 1), 1)
}

func TestComponents_EightConnected(t *testing.T) {
	edges := image.NewGray(image.Rect(0, 0, 10, 10))
	// a diagonal run is one component under 8-connectivity
	for i := range 5 {
		edges.Pix[i*edges.Stride+i] = 255
	}
	edges.Pix[8*edges.Stride+8] = 255
	comps := components(edges, 1)
	require.Len(t, comps, 2)
	assert.Len(t, comps[0].points, 5)
	assert.Equal(t, image.Rect(0, 0, 5, 5), comps[0].bounds)
	assert.Len(t, components(edges, 2), 1)
}

func TestOutermost_DropsEnclosed(t *testing.T) {
	edges := edgeMap(120, 100,
		diamondOutline(60, 50, 40),
		// inside the diamond
		squareOutline(55, 45, 65, 55),
		// inside the diamond's bounding box but outside the diamond
		squareOutline(24, 14, 32, 22),
	)
	comps := components(edges, 1)
	require.Len(t, comps, 3)

	out := outermost(edges, comps)
	require.Len(t, out, 2)
	var boxes []image.Rectangle
	for _, c := range out {
		boxes = append(boxes, c.bounds)
	}
	assert.Contains(t, boxes, image.Rect(24, 14, 33, 23))
	assert.Contains(t, boxes, image.Rect(20, 10, 101, 91))
}

func TestOutermost_BorderTouching(t *testing.T) {
	edges := edgeMap(30, 30, squareOutline(0, 0, 29, 29), squareOutline(10, 10, 20, 20))
	out := outermost(edges, components(edges, 1))
	require.Len(t, out, 1)
	assert.Equal(t, image.Rect(0, 0, 30, 30), out[0].bounds)
	assert.Empty(t, outermost(edges, nil))
}
