package mesh

// Bounds is an axis-aligned box in 2 or 3 dimensions.
type Bounds struct {
	Min, Max []float64
}

// Dim reports the dimensionality of b (2 or 3).
func (b Bounds) Dim() int { return len(b.Min) }

// Center returns the midpoint of b.
func (b Bounds) Center() []float64 {
	c := make([]float64, b.Dim())
	for i := range c {
		c[i] = (b.Min[i] + b.Max[i]) / 2
	}
	return c
}

// Extent returns the full side length along each axis.
func (b Bounds) Extent() []float64 {
	e := make([]float64, b.Dim())
	for i := range e {
		e[i] = b.Max[i] - b.Min[i]
	}
	return e
}

// Clamp restricts p to lie within b, componentwise.
func (b Bounds) Clamp(p []float64) []float64 {
	out := make([]float64, b.Dim())
	for i, v := range p {
		switch {
		case v < b.Min[i]:
			out[i] = b.Min[i]
		case v > b.Max[i]:
			out[i] = b.Max[i]
		default:
			out[i] = v
		}
	}
	return out
}

// Corner returns the i-th of 2^Dim corners, in lexicographic order (x
// fastest, then y, then z): bit 0 of i selects X (0 → Min.X, 1 → Max.X),
// bit 1 selects Y, bit 2 selects Z.
func (b Bounds) Corner(i int) []float64 {
	p := make([]float64, b.Dim())
	for axis := range p {
		if i&(1<<uint(axis)) != 0 {
			p[axis] = b.Max[axis]
		} else {
			p[axis] = b.Min[axis]
		}
	}
	return p
}

// Subdivide splits b into 2^Dim equal sub-boxes, in the same lexicographic
// corner order as Corner.
func (b Bounds) Subdivide() []Bounds {
	dim := b.Dim()
	c := b.Center()
	n := 1 << uint(dim)
	out := make([]Bounds, n)
	for i := 0; i < n; i++ {
		min := make([]float64, dim)
		max := make([]float64, dim)
		for axis := 0; axis < dim; axis++ {
			if i&(1<<uint(axis)) != 0 {
				min[axis], max[axis] = c[axis], b.Max[axis]
			} else {
				min[axis], max[axis] = b.Min[axis], c[axis]
			}
		}
		out[i] = Bounds{Min: min, Max: max}
	}
	return out
}
