package shape

import "github.com/elysian-sdf/elysian/ir"

// B is the author-facing fluent builder surface : every chain method
// wraps the receiver in the corresponding modifier and returns a new B, so
// a shape tree reads as a pipeline (`Build(p).Translate2D(1,0).Scale2D(2)`)
// rather than nested constructor calls.
type B struct{ Shape }

// Build lifts any Shape into the fluent surface.
func Build(s Shape) B { return B{s} }

func (b B) Translate2D(dx, dy float64) B { return B{NewTranslate2D(b.Shape, dx, dy)} }
func (b B) Translate3D(dx, dy, dz float64) B { return B{NewTranslate3D(b.Shape, dx, dy, dz)} }

func (b B) ElongateDir2D(dx, dy float64) B { return B{NewElongateDir2D(b.Shape, dx, dy)} }
func (b B) ElongateBasis2D(dx, dy float64) B { return B{NewElongateBasis2D(b.Shape, dx, dy)} }

func (b B) Isosurface(d float64) B { return B{NewIsosurface(b.Shape, d)} }

func (b B) Manifold2D() B { return B{NewManifold2D(b.Shape)} }
func (b B) Manifold3D() B { return B{NewManifold3D(b.Shape)} }

func (b B) MirrorBasis2D(mx, my bool) B { return B{NewMirrorBasis2D(b.Shape, mx, my)} }
func (b B) MirrorBasis3D(mx, my, mz bool) B { return B{NewMirrorBasis3D(b.Shape, mx, my, mz)} }

func (b B) MirrorAxis2D(nx, ny float64) B { return B{NewMirrorAxis2D(b.Shape, nx, ny)} }
func (b B) MirrorAxis3D(nx, ny, nz float64) B { return B{NewMirrorAxis3D(b.Shape, nx, ny, nz)} }

func (b B) RepeatInfinite2D(px, py float64) B { return B{NewRepeatInfinite2D(b.Shape, px, py)} }
func (b B) RepeatInfinite3D(px, py, pz float64) B { return B{NewRepeatInfinite3D(b.Shape, px, py, pz)} }

func (b B) RepeatClamped2D(px, py, minX, minY, maxX, maxY float64) B {
	return B{NewRepeatClamped2D(b.Shape, px, py, minX, minY, maxX, maxY)}
}

func (b B) Rotate(angle float64) B { return B{NewRotate(b.Shape, angle)} }

func (b B) Scale2D(s float64) B { return B{NewScale2D(b.Shape, s)} }
func (b B) Scale3D(s float64) B { return B{NewScale3D(b.Shape, s)} }

func (b B) Aspect(ratio float64) B { return B{NewAspect(b.Shape, ratio)} }

func (b B) UvMap() B { return B{NewUvMap(b.Shape)} }

func (b B) Filter(prop ir.PropertyIdentifier) B { return B{NewFilter(b.Shape, prop)} }

func (b B) Prepass() B { return B{NewPrepass(b.Shape)} }

func (b B) Set(prop ir.PropertyIdentifier, expr func() ir.Expr) B {
	return B{NewSet(b.Shape, prop, expr)}
}
func (b B) SetPost(prop ir.PropertyIdentifier, expr func() ir.Expr) B {
	return B{NewSetPost(b.Shape, prop, expr)}
}

func (b B) GradientNormals3D() B { return B{NewGradientNormals3D(b.Shape)} }

func (b B) FlipBasis2D() B { return B{NewFlipBasis2D(b.Shape)} }

// Combinator chain entry points: these consume b as the first operand.

func (b B) Union(others...Shape) B {
	return B{NewUnion(append([]Shape{b.Shape}, others...)...)}
}
func (b B) Intersection(others...Shape) B {
	return B{NewIntersection(append([]Shape{b.Shape}, others...)...)}
}
func (b B) Subtraction(others...Shape) B {
	return B{NewSubtraction(append([]Shape{b.Shape}, others...)...)}
}
func (b B) Overlay(others...Shape) B {
	return B{NewOverlay(append([]Shape{b.Shape}, others...)...)}
}
func (b B) SmoothUnion(k float64, props []ir.PropertyIdentifier, others...Shape) B {
	return B{NewSmoothUnion(k, props, append([]Shape{b.Shape}, others...)...)}
}
func (b B) SmoothIntersection(k float64, props []ir.PropertyIdentifier, others...Shape) B {
	return B{NewSmoothIntersection(k, props, append([]Shape{b.Shape}, others...)...)}
}
func (b B) SmoothSubtraction(k float64, props []ir.PropertyIdentifier, others...Shape) B {
	return B{NewSmoothSubtraction(k, props, append([]Shape{b.Shape}, others...)...)}
}

// Select dispatches to the first case whose Cond holds, else b.
func (b B) Select(cases...SelectCase) B { return B{NewSelect(b.Shape, cases...)} }
