package mesh

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Mesh is the polygon soup extracted from a field: line segments in 2D,
// triangles in 3D.
type Mesh struct {
	Dim int
	Segments [][2][]float64
	Triangles [][3][]float64
}

// Extract walks every Contour leaf of root and marches it, evaluating leaves concurrently since Field/Evaluator carry
// no shared mutable state. Build root with New, then Merge and Collapse it
// first; Extract does not subdivide or simplify on its own.
func Extract(ctx context.Context, f Field, root *Tree) (*Mesh, error) {
	leaves := root.Leaves(nil)
	contours := leaves[:0:0]
	for _, l := range leaves {
		if l.Type == Contour {
			contours = append(contours, l)
		}
	}

	if f.Dim == 3 {
		triByLeaf := make([][][3][]float64, len(contours))
		g, gctx := errgroup.WithContext(ctx)
		for i, leaf := range contours {
			i, leaf := i, leaf
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				tris, err := March3D(leaf.Bounds, f)
				if err != nil {
					return err
				}
				triByLeaf[i] = tris
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		m := &Mesh{Dim: 3}
		for _, tris := range triByLeaf {
			m.Triangles = append(m.Triangles, tris...)
		}
		return m, nil
	}

	segByLeaf := make([][][2][]float64, len(contours))
	g, gctx := errgroup.WithContext(ctx)
	for i, leaf := range contours {
		i, leaf := i, leaf
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			segs, err := March2D(leaf.Bounds, f)
			if err != nil {
				return err
			}
			segByLeaf[i] = segs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	m := &Mesh{Dim: 2}
	for _, segs := range segByLeaf {
		m.Segments = append(m.Segments, segs...)
	}
	return m, nil
}

// DualVertices solves DualVertex for every Contour leaf of root, keyed by
// leaf pointer, concurrently. Exposed alongside Pairs for callers building
// a dual-graph representation directly rather than the primal mesh Extract
// produces.
func DualVertices(ctx context.Context, f Field, root *Tree) (map[*Tree][]float64, error) {
	leaves := root.Leaves(nil)
	contours := leaves[:0:0]
	for _, l := range leaves {
		if l.Type == Contour {
			contours = append(contours, l)
		}
	}

	verts := make([][]float64, len(contours))
	g, gctx := errgroup.WithContext(ctx)
	for i, leaf := range contours {
		i, leaf := i, leaf
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := DualVertex(f, leaf)
			if err != nil {
				return err
			}
			verts[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[*Tree][]float64, len(contours))
	for i, leaf := range contours {
		out[leaf] = verts[i]
	}
	return out, nil
}
