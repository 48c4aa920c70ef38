package mesh

import "testing"

func TestMarch2D_ExtractsSegmentAcrossCircleBoundary(t *testing.T) {
	f := circleField2D(t, 2)
	b := Bounds{Min: []float64{1.5, -0.5}, Max: []float64{2.5, 0.5}}
	segs, err := March2D(b, f)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) == 0 {
		t.Fatal("expected at least one crossing segment near the circle boundary")
	}
}

func TestMarch2D_NoCrossingInsideCircle(t *testing.T) {
	f := circleField2D(t, 5)
	b := Bounds{Min: []float64{-0.5, -0.5}, Max: []float64{0.5, 0.5}}
	segs, err := March2D(b, f)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 0 {
		t.Errorf("expected no crossing entirely inside the circle, got %d segments", len(segs))
	}
}

func TestMarch2D_NoCrossingOutsideCircle(t *testing.T) {
	f := circleField2D(t, 1)
	b := Bounds{Min: []float64{10, 10}, Max: []float64{11, 11}}
	segs, err := March2D(b, f)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 0 {
		t.Errorf("expected no crossing entirely outside the circle, got %d segments", len(segs))
	}
}
