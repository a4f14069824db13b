package shape

import (
	"image"
	"image/color"
)

type Options struct {
	// Polygon approximation tolerance as a fraction of the contour perimeter.
	// 0.04 tolerates hand-drawn wobble without collapsing distinct corners.
	// Higher values merge corners (squares turn into triangles), lower values
	// let wobble add vertices (squares turn into circles).
	Epsilon float64
	// Edge groups with fewer pixels are noise and never become contours.
	MinPixels int
}

func DefaultOptions() Options {
	return Options{
		Epsilon:   0.04,
		MinPixels: 12,
	}
}

// Extract traces the outer contours of the non-zero pixels in edges, classifies
// each by the vertex count of its approximated polygon and samples src at the
// centre of its bounding box. Coordinates are relative to the image origins.
// Contours approximating to fewer than three vertices are dropped.
// The result follows raster order of each contour's first pixel.
func Extract(edges *image.Gray, src image.Image, opt Options) []Shape {
	if opt.Epsilon <= 0 {
		opt.Epsilon = DefaultOptions().Epsilon
	}
	origin := src.Bounds().Min

	var shapes []Shape
	for _, c := range outermost(edges, components(edges, opt.MinPixels)) {
		contour := traceBoundary(c)
		poly := approxPolygon(contour, opt.Epsilon*arcLength(contour, true))
		if len(poly) < 3 {
			continue
		}
		w, h := c.bounds.Dx(), c.bounds.Dy()
		centre := image.Pt(c.bounds.Min.X+w/2, c.bounds.Min.Y+h/2)
		shapes = append(shapes, Shape{
			Kind:     KindOf(len(poly)),
			Centroid: centre,
			Color:    color.RGBAModel.Convert(src.At(origin.X+centre.X, origin.Y+centre.Y)).(color.RGBA),
			Bounds:   c.bounds,
			Vertices: len(poly),
		})
	}
	return shapes
}
