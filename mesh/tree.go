package mesh

// CellType classifies a leaf cell relative to the zero set of DISTANCE.
type CellType int

const (
	Empty CellType = iota
	Full
	Contour
)

// Tree is either a leaf (Type set, Children nil) or a root of 2^Dim
// sub-trees in lexicographic order (Children set, matching Bounds.Corner's
// ordering).
type Tree struct {
	Bounds Bounds
	Type CellType
	Children []*Tree
}

func (t *Tree) isLeaf() bool { return t.Children == nil }

// New recursively subdivides bounds 2^Dim-ways, level times; every leaf
// starts as Contour.
func New(bounds Bounds, level int) *Tree {
	if level <= 0 {
		return &Tree{Bounds: bounds, Type: Contour}
	}
	subs := bounds.Subdivide()
	children := make([]*Tree, len(subs))
	for i, s := range subs {
		children[i] = New(s, level-1)
	}
	return &Tree{Bounds: bounds, Children: children}
}

// cornerSamples returns DISTANCE sampled at each of t.Bounds's 2^Dim
// corners, in the same lexicographic order as Bounds.Corner.
func cornerSamples(f Field, b Bounds) ([]float64, error) {
	n := 1 << uint(b.Dim())
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		d, err := f.Distance(b.Corner(i))
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// interpCorners multilinearly interpolates corner samples (2 for 1D edges,
// 4 for a 2D face/cell, 8 for a 3D cell) at the fractional point u ∈
// [0,1]^Dim within the cell, using the same lexicographic corner order.
func interpCorners(samples []float64, u []float64) float64 {
	dim := len(u)
	n := len(samples)
	sum := 0.0
	for i := 0; i < n; i++ {
		weight := 1.0
		for axis := 0; axis < dim; axis++ {
			if i&(1<<uint(axis)) != 0 {
				weight *= u[axis]
			} else {
				weight *= 1 - u[axis]
			}
		}
		sum += weight * samples[i]
	}
	return sum
}

// Merge bottom-up collapses a Root whose children are all leaves into a
// single Contour leaf when the multilinear interpolant of its corner
// samples agrees with the evaluator, within eps, at the cell center and
// every face center. Returns whether t itself collapsed (or already was
// a leaf).
func (t *Tree) Merge(f Field, eps float64) (bool, error) {
	if t.isLeaf() {
		return true, nil
	}
	allLeaves := true
	for _, c := range t.Children {
		collapsed, err := c.Merge(f, eps)
		if err != nil {
			return false, err
		}
		if !collapsed {
			allLeaves = false
		}
	}
	if !allLeaves {
		return false, nil
	}

	samples, err := cornerSamples(f, t.Bounds)
	if err != nil {
		return false, err
	}
	probes := mergeProbePoints(t.Bounds)
	for _, p := range probes {
		u := fractional(t.Bounds, p)
		interp := interpCorners(samples, u)
		actual, err := f.Distance(p)
		if err != nil {
			return false, err
		}
		if abs(interp-actual) >= eps {
			return false, nil
		}
	}

	t.Children = nil
	t.Type = Contour
	return true, nil
}

// mergeProbePoints returns the cell center and every face center.
func mergeProbePoints(b Bounds) [][]float64 {
	dim := b.Dim()
	c := b.Center()
	points := [][]float64{c}
	for axis := 0; axis < dim; axis++ {
		lo := append([]float64(nil), c...)
		lo[axis] = b.Min[axis]
		hi := append([]float64(nil), c...)
		hi[axis] = b.Max[axis]
		points = append(points, lo, hi)
	}
	return points
}

func fractional(b Bounds, p []float64) []float64 {
	u := make([]float64, b.Dim())
	for i := range u {
		span := b.Max[i] - b.Min[i]
		if span == 0 {
			u[i] = 0
			continue
		}
		u[i] = (p[i] - b.Min[i]) / span
	}
	return u
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Collapse bottom-up folds a Contour leaf whose corner samples are all
// same-signed into Empty/Full, then folds a Root whose children are all
// the same non-Contour type into a single leaf of that type.
func (t *Tree) Collapse(f Field) error {
	if t.isLeaf() {
		if t.Type != Contour {
			return nil
		}
		samples, err := cornerSamples(f, t.Bounds)
		if err != nil {
			return err
		}
		allNonPositive, allPositive := true, true
		for _, s := range samples {
			if s > 0 {
				allNonPositive = false
			} else {
				allPositive = false
			}
		}
		switch {
		case allNonPositive:
			t.Type = Full
		case allPositive:
			t.Type = Empty
		}
		return nil
	}

	for _, c := range t.Children {
		if err := c.Collapse(f); err != nil {
			return err
		}
	}

	first := t.Children[0]
	if !first.isLeaf() || (first.Type != Empty && first.Type != Full) {
		return nil
	}
	for _, c := range t.Children[1:] {
		if !c.isLeaf() || c.Type != first.Type {
			return nil
		}
	}
	t.Children = nil
	t.Type = first.Type
	return nil
}

// Leaves appends every leaf cell in t to out, depth-first.
func (t *Tree) Leaves(out []*Tree) []*Tree {
	if t.isLeaf() {
		return append(out, t)
	}
	for _, c := range t.Children {
		out = c.Leaves(out)
	}
	return out
}
