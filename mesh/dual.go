package mesh

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// face identifies one of a cell's positive-direction neighbor axes: R/U/F
// for +X/+Y/+Z.
type face int

const (
	faceR face = iota
	faceU
	faceF
)

// Pair is one edge of the dual graph: two contour leaves adjacent across
// the given axis.
type Pair struct {
	A, B *Tree
	Axis face
}

// Pairs walks t's leaves and returns every adjacent Contour/Contour pair
// across the +X, +Y (and, in 3D, +Z) axes whose shared interface actually
// crosses zero, sampled at the interface's corners. Non-contour neighbors
// (Empty or Full on both sides) never produce a surface and are skipped.
func Pairs(f Field, t *Tree) ([]Pair, error) {
	leaves := t.Leaves(nil)
	var pairs []Pair
	dim := t.Bounds.Dim()
	for i, a := range leaves {
		if a.Type != Contour {
			continue
		}
		for axis := 0; axis < dim; axis++ {
			for j, b := range leaves {
				if i == j || b.Type != Contour {
					continue
				}
				if !adjacentAcross(a.Bounds, b.Bounds, axis) {
					continue
				}
				crosses, err := interfaceCrosses(f, a.Bounds, b.Bounds, axis)
				if err != nil {
					return nil, err
				}
				if crosses {
					pairs = append(pairs, Pair{A: a, B: b, Axis: face(axis)})
				}
			}
		}
	}
	return pairs, nil
}

// interfaceCrosses samples DISTANCE at every corner of the (possibly
// T-junction-narrowed) rectangle shared by a and b across axis, and
// reports whether any two corners disagree in sign.
func interfaceCrosses(f Field, a, b Bounds, axis int) (bool, error) {
	dim := a.Dim()
	min := make([]float64, dim)
	max := make([]float64, dim)
	for i := 0; i < dim; i++ {
		if i == axis {
			min[i], max[i] = a.Max[axis], a.Max[axis]
			continue
		}
		min[i] = math.Max(a.Min[i], b.Min[i])
		max[i] = math.Min(a.Max[i], b.Max[i])
	}
	shared := Bounds{Min: min, Max: max}

	n := 1 << uint(dim)
	var firstSign int
	for i := 0; i < n; i++ {
		d, err := f.Distance(shared.Corner(i))
		if err != nil {
			return false, err
		}
		sign := 1
		if d <= 0 {
			sign = -1
		}
		if i == 0 {
			firstSign = sign
		} else if sign != firstSign {
			return true, nil
		}
	}
	return false, nil
}

// adjacentAcross reports whether b sits immediately in the +axis direction
// from a: touching on that axis and overlapping on every other.
func adjacentAcross(a, b Bounds, axis int) bool {
	if a.Max[axis] != b.Min[axis] {
		return false
	}
	for i := 0; i < a.Dim(); i++ {
		if i == axis {
			continue
		}
		if b.Min[i] >= a.Max[i] || a.Min[i] >= b.Max[i] {
			return false
		}
	}
	return true
}

// crossing is one zero-crossing point sampled on a contour leaf's boundary,
// with its gradient (surface normal direction).
type crossing struct {
	p, n []float64
}

// leafCrossings gathers zero-crossings along t's cell edges (2D: the 4
// square edges via March2D; 3D: the marching-tetrahedra edges via
// March3D), each paired with the field gradient at that point.
func leafCrossings(f Field, t *Tree) ([]crossing, error) {
	var pts [][]float64
	if f.Dim == 3 {
		tris, err := March3D(t.Bounds, f)
		if err != nil {
			return nil, err
		}
		for _, tri := range tris {
			pts = append(pts, tri[0], tri[1], tri[2])
		}
	} else {
		segs, err := March2D(t.Bounds, f)
		if err != nil {
			return nil, err
		}
		for _, s := range segs {
			pts = append(pts, s[0], s[1])
		}
	}

	out := make([]crossing, 0, len(pts))
	for _, p := range pts {
		_, grad, err := f.Sample(p)
		if err != nil {
			return nil, err
		}
		if grad == nil {
			grad = make([]float64, f.Dim)
		}
		out = append(out, crossing{p: p, n: grad})
	}
	return out, nil
}

// DualVertex solves the quadratic error function placing a single vertex
// for a contour leaf: the point minimizing sum((x - pᵢ)·nᵢ)² over its
// zero-crossings, via an SVD least-squares solve anchored at the
// crossings' centroid, clamped to the cell.
func DualVertex(f Field, t *Tree) ([]float64, error) {
	crossings, err := leafCrossings(f, t)
	if err != nil {
		return nil, err
	}
	if len(crossings) == 0 {
		return t.Bounds.Center(), nil
	}

	dim := f.Dim
	centroid := make([]float64, dim)
	for _, c := range crossings {
		for i := 0; i < dim; i++ {
			centroid[i] += c.p[i]
		}
	}
	for i := range centroid {
		centroid[i] /= float64(len(crossings))
	}

	rows := len(crossings)
	a := mat.NewDense(rows, dim, nil)
	b := mat.NewVecDense(rows, nil)
	for r, c := range crossings {
		for i := 0; i < dim; i++ {
			a.Set(r, i, c.n[i])
		}
		delta := 0.0
		for i := 0; i < dim; i++ {
			delta += c.n[i] * (c.p[i] - centroid[i])
		}
		b.SetVec(r, delta)
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return t.Bounds.Clamp(centroid), nil
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	singular := svd.Values(nil)

	var y mat.VecDense
	y.MulVec(u.T(), b)
	const singularThreshold = 1.0
	for i := 0; i < len(singular); i++ {
		if singular[i] > singularThreshold {
			y.SetVec(i, y.AtVec(i)/singular[i])
		} else {
			y.SetVec(i, 0)
		}
	}

	var x mat.VecDense
	x.MulVec(&v, &y)

	out := make([]float64, dim)
	for i := 0; i < dim; i++ {
		out[i] = centroid[i] + x.AtVec(i)
	}
	return t.Bounds.Clamp(out), nil
}
