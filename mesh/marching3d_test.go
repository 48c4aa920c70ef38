package mesh

import (
	"testing"

	"github.com/elysian-sdf/elysian/interp"
	"github.com/elysian-sdf/elysian/ir"
	"github.com/elysian-sdf/elysian/shape"
)

func sphereField3D(t *testing.T, radius float64) Field {
	t.Helper()
	spec := ir.NewSpecializationData(ir.PropDistance)
	c := shape.NewCircle3D(radius)
	m, err := shape.Module(c, spec)
	if err != nil {
		t.Fatalf("Module: %v", err)
	}
	return Field{Dim: 3, Module: m, Evaluator: interp.Interpreter{}}
}

func TestMarch3D_ExtractsTrianglesAcrossSphereBoundary(t *testing.T) {
	f := sphereField3D(t, 2)
	b := Bounds{Min: []float64{1.5, -0.5, -0.5}, Max: []float64{2.5, 0.5, 0.5}}
	tris, err := March3D(b, f)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) == 0 {
		t.Fatal("expected triangles crossing the sphere boundary")
	}
}

func TestMarch3D_NoTrianglesEntirelyInside(t *testing.T) {
	f := sphereField3D(t, 5)
	b := Bounds{Min: []float64{-0.5, -0.5, -0.5}, Max: []float64{0.5, 0.5, 0.5}}
	tris, err := March3D(b, f)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != 0 {
		t.Errorf("expected no triangles entirely inside the sphere, got %d", len(tris))
	}
}

func TestOrientOutward_NormalPointsTowardPositiveDistance(t *testing.T) {
	f := sphereField3D(t, 2)
	b := Bounds{Min: []float64{1.5, -0.5, -0.5}, Max: []float64{2.5, 0.5, 0.5}}
	tris, err := March3D(b, f)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) == 0 {
		t.Fatal("expected at least one triangle to check orientation on")
	}
	tri := tris[0]
	u := sub(tri[1], tri[0])
	v := sub(tri[2], tri[0])
	n := cross(u, v)
	nl := norm(n)
	if nl == 0 {
		t.Skip("degenerate triangle, cannot check orientation")
	}
	centroid := []float64{
		(tri[0][0] + tri[1][0] + tri[2][0]) / 3,
		(tri[0][1] + tri[1][1] + tri[2][1]) / 3,
		(tri[0][2] + tri[1][2] + tri[2][2]) / 3,
	}
	const eps = 1e-4
	probe := []float64{centroid[0] + n[0]/nl*eps, centroid[1] + n[1]/nl*eps, centroid[2] + n[2]/nl*eps}
	d, err := f.Distance(probe)
	if err != nil {
		t.Fatal(err)
	}
	if d < 0 {
		t.Errorf("expected the triangle normal to point toward positive distance, probe read %v", d)
	}
}
