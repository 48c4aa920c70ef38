package mesh

import "testing"

func TestTree_LeavesDepthFirst(t *testing.T) {
	b := Bounds{Min: []float64{-2, -2}, Max: []float64{2, 2}}
	tr := New(b, 1)
	leaves := tr.Leaves(nil)
	if len(leaves) != 4 {
		t.Fatalf("expected 4 leaves after one level of 2D subdivision, got %d", len(leaves))
	}
}

func TestTree_CollapseMarksFullAndEmpty(t *testing.T) {
	f := circleField2D(t, 1)
	root := New(Bounds{Min: []float64{10, 10}, Max: []float64{12, 12}}, 0)
	if err := root.Collapse(f); err != nil {
		t.Fatal(err)
	}
	if root.Type != Empty {
		t.Errorf("expected a cell entirely outside the circle to collapse to Empty, got %v", root.Type)
	}

	inside := New(Bounds{Min: []float64{-0.2, -0.2}, Max: []float64{0.2, 0.2}}, 0)
	if err := inside.Collapse(f); err != nil {
		t.Fatal(err)
	}
	if inside.Type != Full {
		t.Errorf("expected a cell entirely inside the circle to collapse to Full, got %v", inside.Type)
	}
}

func TestTree_CollapseLeavesContourNearBoundary(t *testing.T) {
	f := circleField2D(t, 2)
	straddling := New(Bounds{Min: []float64{1.5, -0.5}, Max: []float64{2.5, 0.5}}, 0)
	if err := straddling.Collapse(f); err != nil {
		t.Fatal(err)
	}
	if straddling.Type != Contour {
		t.Errorf("expected a cell straddling the boundary to remain Contour, got %v", straddling.Type)
	}
}

func TestTree_MergeCollapsesUniformChildren(t *testing.T) {
	f := circleField2D(t, 1)
	root := New(Bounds{Min: []float64{10, 10}, Max: []float64{12, 12}}, 2)
	collapsed, err := root.Merge(f, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if !collapsed {
		t.Error("expected a far-from-boundary subtree to merge into a single leaf")
	}
	if !root.isLeaf() {
		t.Error("expected Merge to clear Children on a fully-collapsed root")
	}
}
