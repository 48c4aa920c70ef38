package mesh

import (
	"testing"

	"github.com/elysian-sdf/elysian/interp"
	"github.com/elysian-sdf/elysian/ir"
	"github.com/elysian-sdf/elysian/shape"
)

// circleField2D compiles a 2D circle of the given radius into a Field
// sampling DISTANCE and GRADIENT_2D, backed by the reference interpreter.
func circleField2D(t *testing.T, radius float64) Field {
	t.Helper()
	spec := ir.NewSpecializationData(ir.PropDistance, ir.PropGradient2D)
	c := shape.NewCircle2D(radius)
	m, err := shape.Module(c, spec)
	if err != nil {
		t.Fatalf("Module: %v", err)
	}
	return Field{Dim: 2, Module: m, Evaluator: interp.Interpreter{}}
}

func TestField_DistanceMatchesCircle(t *testing.T) {
	f := circleField2D(t, 2)
	d, err := f.Distance([]float64{2, 0})
	if err != nil {
		t.Fatal(err)
	}
	if d != 0 {
		t.Errorf("expected 0 on the boundary, got %v", d)
	}
	d, err = f.Distance([]float64{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if d != -2 {
		t.Errorf("expected -2 at the center, got %v", d)
	}
}

func TestField_SampleReturnsGradient(t *testing.T) {
	f := circleField2D(t, 2)
	d, g, err := f.Sample([]float64{4, 0})
	if err != nil {
		t.Fatal(err)
	}
	if d != 2 {
		t.Errorf("expected distance 2, got %v", d)
	}
	if len(g) != 2 || g[0] <= 0 {
		t.Errorf("expected a gradient pointing outward along +X, got %v", g)
	}
}
