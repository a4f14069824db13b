package drawgram

import (
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/gift"
	"github.com/nfnt/resize"
)

type PreprocessOptions struct {
	// Longest image side after downscaling; 0 keeps the input size.
	// Nearest-neighbour sampling is used so pure colours stay pure for exact matching.
	MaxSide int
	// Gaussian blur applied to the grayscale image before gradients are taken.
	// 1.1 is the sigma implied by a 5x5 kernel. Higher values suppress pen
	// texture but round off corners of small shapes.
	BlurSigma float32
	// Hysteresis thresholds on the Sobel gradient magnitude. Pixels above
	// HighThreshold seed edges, pixels above LowThreshold extend them.
	LowThreshold  float64
	HighThreshold float64
}

func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		MaxSide:       0,
		BlurSigma:     1.1,
		LowThreshold:  50,
		HighThreshold: 150,
	}
}

// Frame is an image prepared for geometry extraction. All three images share
// the rectangle (0, 0, W, H).
type Frame struct {
	Color *image.RGBA // opaque input, composited over white
	Gray  *image.Gray // blurred luminance
	Edges *image.Gray // 255 on edges, 0 elsewhere
}

// Preprocess normalises img and derives its blurred grayscale and edge map.
func Preprocess(img image.Image, opt PreprocessOptions) *Frame {
	rgba := normalize(img, opt.MaxSide)

	filters := []gift.Filter{gift.Grayscale()}
	if opt.BlurSigma > 0 {
		filters = append(filters, gift.GaussianBlur(opt.BlurSigma))
	}
	g := gift.New(filters...)
	gray := image.NewGray(g.Bounds(rgba.Bounds()))
	g.Draw(gray, rgba)

	return &Frame{
		Color: rgba,
		Gray:  gray,
		Edges: detectEdges(gray, opt.LowThreshold, opt.HighThreshold),
	}
}

// normalize copies img onto an opaque white canvas at the origin, downscaling
// first when its longest side exceeds maxSide.
func normalize(img image.Image, maxSide int) *image.RGBA {
	b := img.Bounds()
	if w, h := b.Dx(), b.Dy(); maxSide > 0 && max(w, h) > maxSide {
		scale := float64(maxSide) / float64(max(w, h))
		nw := max(1, int(math.Round(float64(w)*scale)))
		nh := max(1, int(math.Round(float64(h)*scale)))
		img = resize.Resize(uint(nw), uint(nh), img, resize.NearestNeighbor)
		b = img.Bounds()
	}
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

// detectEdges thresholds the Sobel gradient magnitude of gray with hysteresis.
func detectEdges(gray *image.Gray, low, high float64) *image.Gray {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	edges := image.NewGray(image.Rect(0, 0, w, h))
	if w < 3 || h < 3 {
		return edges
	}

	at := func(x, y int) float64 { return float64(gray.Pix[y*gray.Stride+x]) }
	mag := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1)
			gy := at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1)
			mag[y*w+x] = math.Hypot(gx, gy)
		}
	}

	var stack []int
	for i, m := range mag {
		if m >= high {
			edges.Pix[(i/w)*edges.Stride+i%w] = 255
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				off := ny*edges.Stride + nx
				if edges.Pix[off] == 0 && mag[j] >= low {
					edges.Pix[off] = 255
					stack = append(stack, j)
				}
			}
		}
	}
	return edges
}

// EdgePreview renders the edge map dark-on-white for debugging.
func (f *Frame) EdgePreview() *image.Gray {
	out := image.NewGray(f.Edges.Bounds())
	for i, v := range f.Edges.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}
