package mesh

import (
	"github.com/elysian-sdf/elysian/interp"
	"github.com/elysian-sdf/elysian/ir"
)

// Field is the scalar field the mesher samples: a compiled Module plus the
// Evaluator that runs it. The mesher only ever reads DISTANCE and,
// for dual contouring, the matching GRADIENT_2D/3D.
type Field struct {
	Dim int
	Module ir.Module
	Evaluator interp.Evaluator
}

// context builds the seed Context value for position p: the Position
// property the mesher's dimension implies, plus TIME = 0.
func (f Field) context(p []float64) ir.Value {
	m := ir.NewPropertyValueMap()
	if f.Dim == 3 {
		m.Set(ir.PropPosition3D, ir.NewVector3(p[0], p[1], p[2]))
	} else {
		m.Set(ir.PropPosition2D, ir.NewVector2(p[0], p[1]))
	}
	m.Set(ir.PropTime, ir.Float(0))
	return ir.StructValue{ID: ir.StructContext, Members: m}
}

// Distance samples DISTANCE at p.
func (f Field) Distance(p []float64) (float64, error) {
	out, err := f.Evaluator.Evaluate(f.Module, f.context(p))
	if err != nil {
		return 0, err
	}
	s, ok := out.(ir.StructValue)
	if !ok {
		return 0, typeMismatch("context", out)
	}
	d, ok := s.Members.Get(ir.PropDistance)
	if !ok {
		return 0, missingField(ir.PropDistance)
	}
	return ir.AsFloat(d)
}

// Sample returns both DISTANCE and GRADIENT_2D/3D (as a float64 slice) at
// p, used by the dual-contour QEF solve.
func (f Field) Sample(p []float64) (distance float64, gradient []float64, err error) {
	out, err := f.Evaluator.Evaluate(f.Module, f.context(p))
	if err != nil {
		return 0, nil, err
	}
	s, ok := out.(ir.StructValue)
	if !ok {
		return 0, nil, typeMismatch("context", out)
	}
	d, ok := s.Members.Get(ir.PropDistance)
	if !ok {
		return 0, nil, missingField(ir.PropDistance)
	}
	distance, err = ir.AsFloat(d)
	if err != nil {
		return 0, nil, err
	}
	gradProp := ir.PropGradient2D
	if f.Dim == 3 {
		gradProp = ir.PropGradient3D
	}
	g, ok := s.Members.Get(gradProp)
	if !ok {
		return distance, nil, nil
	}
	gradient, err = ir.VectorComponents(g)
	if err != nil {
		return 0, nil, err
	}
	return distance, gradient, nil
}
