package mesh

import (
	"context"
	"testing"
)

func TestDualVertex_StaysWithinCellBounds(t *testing.T) {
	f := circleField2D(t, 2)
	leaf := New(Bounds{Min: []float64{1.5, -0.5}, Max: []float64{2.5, 0.5}}, 0)
	v, err := DualVertex(f, leaf)
	if err != nil {
		t.Fatal(err)
	}
	if v[0] < leaf.Bounds.Min[0] || v[0] > leaf.Bounds.Max[0] {
		t.Errorf("expected the dual vertex to stay within the cell on X, got %v", v)
	}
	if v[1] < leaf.Bounds.Min[1] || v[1] > leaf.Bounds.Max[1] {
		t.Errorf("expected the dual vertex to stay within the cell on Y, got %v", v)
	}
}

func TestDualVertex_FallsBackToCenterWithoutCrossings(t *testing.T) {
	f := circleField2D(t, 1)
	leaf := New(Bounds{Min: []float64{10, 10}, Max: []float64{11, 11}}, 0)
	v, err := DualVertex(f, leaf)
	if err != nil {
		t.Fatal(err)
	}
	c := leaf.Bounds.Center()
	if v[0] != c[0] || v[1] != c[1] {
		t.Errorf("expected the cell center when there are no zero-crossings, got %v want %v", v, c)
	}
}

func TestPairs_FindsAdjacentContourLeaves(t *testing.T) {
	f := circleField2D(t, 2)
	root := New(Bounds{Min: []float64{-3, -3}, Max: []float64{3, 3}}, 3)
	if err := root.Collapse(f); err != nil {
		t.Fatal(err)
	}
	pairs, err := Pairs(f, root)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) == 0 {
		t.Error("expected adjacent contour leaves along the circle boundary")
	}
}

func TestDualVertices_CoversEveryContourLeaf(t *testing.T) {
	f := circleField2D(t, 2)
	root := New(Bounds{Min: []float64{-3, -3}, Max: []float64{3, 3}}, 3)
	if err := root.Collapse(f); err != nil {
		t.Fatal(err)
	}
	verts, err := DualVertices(context.Background(), f, root)
	if err != nil {
		t.Fatal(err)
	}
	contourCount := 0
	for _, l := range root.Leaves(nil) {
		if l.Type == Contour {
			contourCount++
		}
	}
	if len(verts) != contourCount {
		t.Errorf("expected one vertex per contour leaf (%d), got %d", contourCount, len(verts))
	}
}
