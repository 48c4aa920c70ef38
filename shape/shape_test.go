package shape

import (
	"testing"

	"github.com/elysian-sdf/elysian/interp"
	"github.com/elysian-sdf/elysian/ir"
)

// evalDistance compiles s against the given spec and evaluates DISTANCE at
// position p (2D or 3D, matching len(p)).
func evalDistance(t *testing.T, s Shape, spec ir.SpecializationData, p []float64) float64 {
	t.Helper()
	m, err := Module(s, spec)
	if err != nil {
		t.Fatalf("Module: %v", err)
	}
	members := ir.NewPropertyValueMap()
	if len(p) == 3 {
		members.Set(ir.PropPosition3D, ir.NewVector3(p[0], p[1], p[2]))
	} else {
		members.Set(ir.PropPosition2D, ir.NewVector2(p[0], p[1]))
	}
	members.Set(ir.PropTime, ir.Float(0))
	ctxVal := ir.StructValue{ID: ir.StructContext, Members: members}

	out, err := (interp.Interpreter{}).Evaluate(m, ctxVal)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	sv, ok := out.(ir.StructValue)
	if !ok {
		t.Fatalf("expected a struct output, got %#v", out)
	}
	d, ok := sv.Members.Get(ir.PropDistance)
	if !ok {
		t.Fatal("expected DISTANCE in output context")
	}
	f, err := ir.AsFloat(d)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

var distanceOnly2D = ir.NewSpecializationData(ir.PropDistance)

func TestCircle_DistanceAtOrigin(t *testing.T) {
	c := NewCircle2D(2)
	got := evalDistance(t, c, distanceOnly2D, []float64{0, 0})
	if got != -2 {
		t.Errorf("expected -2 at origin, got %v", got)
	}
}

func TestCircle_DistanceOnBoundary(t *testing.T) {
	c := NewCircle2D(2)
	got := evalDistance(t, c, distanceOnly2D, []float64{2, 0})
	if got != 0 {
		t.Errorf("expected 0 on the boundary, got %v", got)
	}
}

func TestQuad_DistanceOutsideCorner(t *testing.T) {
	q := NewQuad2D(1, 1)
	got := evalDistance(t, q, distanceOnly2D, []float64{2, 2})
	want := 1.4142135623730951 // length((1,1))
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestQuad_DistanceInside(t *testing.T) {
	q := NewQuad2D(1, 1)
	got := evalDistance(t, q, distanceOnly2D, []float64{0, 0})
	if got != -1 {
		t.Errorf("expected -1 at center, got %v", got)
	}
}

func TestRing_DistanceAtRadius(t *testing.T) {
	r := NewRing2D(2, 0.5)
	got := evalDistance(t, r, distanceOnly2D, []float64{2, 0})
	if diff := got - (-0.5); diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected -0.5 at the annulus center, got %v", got)
	}
}

func TestInfinity_AlwaysPositive(t *testing.T) {
	i := NewInfinity2D()
	got := evalDistance(t, i, distanceOnly2D, []float64{0, 0})
	if got <= 0 {
		t.Errorf("expected +Inf distance, got %v", got)
	}
}

func TestUnion_PicksNearer(t *testing.T) {
	a := NewTranslate2D(NewCircle2D(1), -5, 0)
	b := NewTranslate2D(NewCircle2D(1), 5, 0)
	u := NewUnion(a, b)
	got := evalDistance(t, u, distanceOnly2D, []float64{5, 0})
	if got != -1 {
		t.Errorf("expected -1 (inside the near circle), got %v", got)
	}
}

func TestIntersection_PicksFarther(t *testing.T) {
	a := NewCircle2D(3)
	b := NewTranslate2D(NewCircle2D(3), 4, 0)
	inter := NewIntersection(a, b)
	got := evalDistance(t, inter, distanceOnly2D, []float64{0, 0})
	if got <= 0 {
		t.Errorf("expected the origin to be outside the intersection, got %v", got)
	}
}

func TestSubtraction_CarvesHole(t *testing.T) {
	base := NewCircle2D(5)
	hole := NewCircle2D(1)
	sub := NewSubtraction(base, hole)
	got := evalDistance(t, sub, distanceOnly2D, []float64{0, 0})
	if got <= 0 {
		t.Errorf("expected the origin to be carved out, got %v", got)
	}
}

func TestSmoothUnion_MatchesUnionFarFromSeam(t *testing.T) {
	a := NewTranslate2D(NewCircle2D(1), -5, 0)
	b := NewTranslate2D(NewCircle2D(1), 5, 0)
	props := []ir.PropertyIdentifier{ir.PropDistance}
	su := NewSmoothUnion(0.1, props, a, b)
	got := evalDistance(t, su, distanceOnly2D, []float64{5, 0})
	if diff := got - (-1); diff > 1e-6 || diff < -1e-6 {
		t.Errorf("expected smooth union to match plain union away from the seam, got %v", got)
	}
}

func TestTranslate_ShiftsDistanceField(t *testing.T) {
	c := NewTranslate2D(NewCircle2D(1), 3, 0)
	got := evalDistance(t, c, distanceOnly2D, []float64{3, 0})
	if got != -1 {
		t.Errorf("expected the translated circle's center to read -1, got %v", got)
	}
}

func TestScale_ScalesDistanceField(t *testing.T) {
	c := NewScale2D(NewCircle2D(1), 2)
	got := evalDistance(t, c, distanceOnly2D, []float64{4, 0})
	if diff := got - 2; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected a 2x scaled unit circle to read 2 at x=4, got %v", got)
	}
}

func TestRotate_PreservesRadialDistance(t *testing.T) {
	q := NewRotate(NewCircle2D(1), 0.7)
	got := evalDistance(t, q, distanceOnly2D, []float64{1, 0})
	if got != 0 {
		t.Errorf("rotation shouldn't change a circle's distance field, got %v", got)
	}
}

func TestRepeatInfinite_TilesTheField(t *testing.T) {
	c := NewRepeatInfinite2D(NewCircle2D(1), 4, 4)
	got := evalDistance(t, c, distanceOnly2D, []float64{8, 0})
	if got != -1 {
		t.Errorf("expected the tiled circle to recur at x=8, got %v", got)
	}
}

func TestMirrorAxis_ReflectsAcrossPlane(t *testing.T) {
	c := NewMirrorAxis2D(NewTranslate2D(NewCircle2D(1), 3, 0), 1, 0)
	got := evalDistance(t, c, distanceOnly2D, []float64{-3, 0})
	if got != -1 {
		t.Errorf("expected the mirrored shape to read -1 at x=-3, got %v", got)
	}
}

func TestSelect_PicksBranchByCondition(t *testing.T) {
	left := NewCircle2D(1)
	right := NewTranslate2D(NewCircle2D(1), 10, 0)
	s := NewSelect(left, SelectCase{
		Label: "right",
		Cond: func() ir.Expr { return ir.Gt(ir.Read(ir.PropContext, ir.PropPosition2D, ir.PropX), ir.Lit(ir.Float(5))) },
		Shape: right,
	})
	gotLeft := evalDistance(t, s, distanceOnly2D, []float64{0, 0})
	if gotLeft != -1 {
		t.Errorf("expected the default branch at the origin, got %v", gotLeft)
	}
	gotRight := evalDistance(t, s, distanceOnly2D, []float64{10, 0})
	if gotRight != -1 {
		t.Errorf("expected the right branch at x=10, got %v", gotRight)
	}
}

func TestSphere3D_DistanceAtOrigin(t *testing.T) {
	c := NewCircle3D(3)
	got := evalDistance(t, c, distanceOnly2D, []float64{0, 0, 0})
	if got != -3 {
		t.Errorf("expected -3 at the origin, got %v", got)
	}
}

func TestBuilder_FluentChainCompiles(t *testing.T) {
	b := Build(NewCircle2D(1)).Translate2D(1, 1).Scale2D(2).Shape
	if _, err := Module(b, distanceOnly2D); err != nil {
		t.Fatalf("expected a fluent builder chain to compile, got %v", err)
	}
}

func TestShape_HashIsDeterministic(t *testing.T) {
	a := NewCircle2D(1.5)
	b := NewCircle2D(1.5)
	if a.Hash() != b.Hash() {
		t.Error("expected two structurally identical shapes to hash equal")
	}
	c := NewCircle2D(2.5)
	if a.Hash() == c.Hash() {
		t.Error("expected shapes with different parameters to hash differently")
	}
}

func TestShape_DomainsReflectRequestedProperties(t *testing.T) {
	c := NewCircle2D(1)
	d := c.Domains()
	if !d.Has(ir.PropDistance) || !d.Has(ir.PropGradient2D) || !d.Has(ir.PropUV) {
		t.Errorf("expected Circle's domain to include distance/gradient/uv, got %v", d.Sorted())
	}
}
