package palette

import (
	"gonum.org/v1/gonum/floats"
)

// Match is the symbol a sampled colour resolved to.
type Match struct {
	Index int
	Name  string // set by the exact strategy
	RGB   RGB
}

// Classifier resolves a sampled colour to a palette symbol. ok is false when
// the sample is background or, for strict strategies, matches nothing.
type Classifier interface {
	Classify(c RGB) (m Match, ok bool)
}

// Exact matches only on component equality with a direct palette entry.
// Pure white is background unless the palette lists it.
type Exact struct {
	colors    Direct
	skipWhite bool
}

func NewExact(d Direct) *Exact {
	return &Exact{colors: d, skipWhite: !d.Contains(White)}
}

func (e *Exact) Classify(c RGB) (Match, bool) {
	if e.skipWhite && c == White {
		return Match{}, false
	}
	for i, n := range e.colors {
		if n.RGB == c {
			return Match{Index: i, Name: n.Name, RGB: n.RGB}, true
		}
	}
	return Match{}, false
}

// Nearest returns the palette entry at the smallest Euclidean RGB distance.
// Equal distances resolve to the lowest index. Pure white is background.
type Nearest struct {
	palette Palette
	rows    [][]float64
}

func NewNearest(p Palette) (*Nearest, error) {
	if len(p) == 0 {
		return nil, ErrEmptyPalette
	}
	rows := make([][]float64, len(p))
	for i, c := range p {
		rows[i] = vec(c)
	}
	return &Nearest{palette: p, rows: rows}, nil
}

func (n *Nearest) Palette() Palette { return n.palette }

func (n *Nearest) Classify(c RGB) (Match, bool) {
	if c == White {
		return Match{}, false
	}
	i := n.Index(c)
	return Match{Index: i, RGB: n.palette[i]}, true
}

// Index is the argmin of the distance from c to every entry. It never fails.
func (n *Nearest) Index(c RGB) int {
	sample := vec(c)
	best, bestDist := 0, floats.Distance(n.rows[0], sample, 2)
	for i := 1; i < len(n.rows); i++ {
		if d := floats.Distance(n.rows[i], sample, 2); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func vec(c RGB) []float64 {
	return []float64{float64(c.R), float64(c.G), float64(c.B)}
}
