package shape

import (
	"image"
	"image/color"
)

// Kind is the geometric class of a detected contour.
type Kind int

const (
	Unknown Kind = iota
	Triangle
	Square
	Circle
)

func (k Kind) String() string {
	switch k {
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	case Circle:
		return "circle"
	default:
		return "unknown"
	}
}

// KindOf classifies a polygon by its vertex count alone.
func KindOf(vertices int) Kind {
	switch {
	case vertices == 3:
		return Triangle
	case vertices == 4:
		return Square
	case vertices > 4:
		return Circle
	default:
		return Unknown
	}
}

// Shape is one classified contour. Centroid is the centre of the contour's
// bounding box and Color the source pixel sampled there.
type Shape struct {
	Kind     Kind
	Centroid image.Point
	Color    color.RGBA
	Bounds   image.Rectangle
	Vertices int
}
