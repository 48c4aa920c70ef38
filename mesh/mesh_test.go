package mesh

import (
	"context"
	"testing"
)

func TestExtract_Produces2DSegmentsNearBoundary(t *testing.T) {
	f := circleField2D(t, 2)
	root := New(Bounds{Min: []float64{-3, -3}, Max: []float64{3, 3}}, 3)
	if err := root.Collapse(f); err != nil {
		t.Fatal(err)
	}

	m, err := Extract(context.Background(), f, root)
	if err != nil {
		t.Fatal(err)
	}
	if m.Dim != 2 {
		t.Errorf("expected a 2D mesh, got Dim %d", m.Dim)
	}
	if len(m.Segments) == 0 {
		t.Error("expected at least one segment along the circle's boundary")
	}
}

func TestExtract_NoSegmentsWhenFieldNeverCrosses(t *testing.T) {
	f := circleField2D(t, 1)
	root := New(Bounds{Min: []float64{10, 10}, Max: []float64{12, 12}}, 2)
	if err := root.Collapse(f); err != nil {
		t.Fatal(err)
	}
	m, err := Extract(context.Background(), f, root)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Segments) != 0 {
		t.Errorf("expected no segments far from the boundary, got %d", len(m.Segments))
	}
}
