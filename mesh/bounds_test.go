package mesh

import "testing"

func TestBounds_CenterAndExtent(t *testing.T) {
	b := Bounds{Min: []float64{0, 0}, Max: []float64{4, 2}}
	c := b.Center()
	if c[0] != 2 || c[1] != 1 {
		t.Errorf("expected center (2,1), got %v", c)
	}
	e := b.Extent()
	if e[0] != 4 || e[1] != 2 {
		t.Errorf("expected extent (4,2), got %v", e)
	}
}

func TestBounds_CornerLexicographicOrder(t *testing.T) {
	b := Bounds{Min: []float64{0, 0}, Max: []float64{1, 1}}
	tests := []struct {
		i int
		want []float64
	}{
		{0, []float64{0, 0}},
		{1, []float64{1, 0}},
		{2, []float64{0, 1}},
		{3, []float64{1, 1}},
	}
	for _, tc := range tests {
		got := b.Corner(tc.i)
		if got[0] != tc.want[0] || got[1] != tc.want[1] {
			t.Errorf("corner %d: expected %v, got %v", tc.i, tc.want, got)
		}
	}
}

func TestBounds_Clamp(t *testing.T) {
	b := Bounds{Min: []float64{0, 0}, Max: []float64{1, 1}}
	got := b.Clamp([]float64{-1, 5})
	if got[0] != 0 || got[1] != 1 {
		t.Errorf("expected (0,1), got %v", got)
	}
}

func TestBounds_SubdivideCoversParent(t *testing.T) {
	b := Bounds{Min: []float64{0, 0}, Max: []float64{2, 2}}
	subs := b.Subdivide()
	if len(subs) != 4 {
		t.Fatalf("expected 4 sub-boxes for a 2D bounds, got %d", len(subs))
	}
	for _, s := range subs {
		if s.Extent()[0] != 1 || s.Extent()[1] != 1 {
			t.Errorf("expected each sub-box to be half-sized, got extent %v", s.Extent())
		}
	}
}

func TestBounds_Dim3D(t *testing.T) {
	b := Bounds{Min: []float64{0, 0, 0}, Max: []float64{1, 1, 1}}
	if b.Dim() != 3 {
		t.Errorf("expected Dim 3, got %d", b.Dim())
	}
	if len(b.Subdivide()) != 8 {
		t.Errorf("expected 8 sub-boxes for a 3D bounds, got %d", len(b.Subdivide()))
	}
}
