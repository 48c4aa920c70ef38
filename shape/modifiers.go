package shape

import (
	"math"

	"github.com/elysian-sdf/elysian/ir"
)

// wrapModifier builds the common modifier function shape : pre,
// then an entire-CONTEXT overwrite with the child's call result, then
// post. Returns this shape's own function plus every function the child
// contributes, so the caller's Functions can return both in one slice.
func wrapModifier(entry ir.FunctionIdentifier, pre ir.Block, child Shape, spec ir.SpecializationData, post ir.Block) []ir.FunctionDefinition {
	m := mustModule(child, spec)
	body := append(ir.Block{}, pre...)
	body = append(body, writeCtx(m.Call(ctx())))
	body = append(body, post...)
	body = append(body, output())
	funcs := make([]ir.FunctionDefinition, 0, len(m.FunctionDefinitions)+1)
	funcs = append(funcs, entryFunction(entry, body))
	funcs = append(funcs, m.FunctionDefinitions...)
	return funcs
}

// Translate shifts the inner shape's position by delta.
type Translate struct {
	Inner Shape
	Dim int
	Delta []float64
}

func NewTranslate2D(inner Shape, dx, dy float64) *Translate {
	return &Translate{Inner: inner, Dim: 2, Delta: []float64{dx, dy}}
}
func NewTranslate3D(inner Shape, dx, dy, dz float64) *Translate {
	return &Translate{Inner: inner, Dim: 3, Delta: []float64{dx, dy, dz}}
}

func (t *Translate) Hash() uint64 {
	return hashCombine(hashString("Translate"), uint64(t.Dim), hashFloats(t.Delta...), t.Inner.Hash())
}
func (t *Translate) Domains() ir.SpecializationData { return t.Inner.Domains() }
func (t *Translate) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("translate", t.Hash()) }
func (t *Translate) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (t *Translate) Structs() []ir.StructDefinition { return nil }
func (t *Translate) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	position, _ := dimProps(t.Dim)
	delta := vectorLit(t.Dim, t.Delta)
	pre := ir.Block{writeCtx(Wrap(ctx(position)).Sub(Wrap(delta)).Expr, position)}
	return wrapModifier(entry, pre, t.Inner, spec, nil)
}

// Elongate stretches the field by clamping the position's projection onto
// dir before subtracting it. Mode "dir" clamps the scalar
// projection onto dir's own length; mode "basis" clamps each axis
// independently against dir's matching component (an axis-aligned
// elongation, the source's two documented variants).
type Elongate struct {
	Inner Shape
	Dim int
	Dir []float64
	Basis bool
}

func NewElongateDir2D(inner Shape, dx, dy float64) *Elongate {
	return &Elongate{Inner: inner, Dim: 2, Dir: []float64{dx, dy}}
}
func NewElongateBasis2D(inner Shape, dx, dy float64) *Elongate {
	return &Elongate{Inner: inner, Dim: 2, Dir: []float64{dx, dy}, Basis: true}
}

func (e *Elongate) Hash() uint64 {
	return hashCombine(hashString("Elongate"), uint64(e.Dim), hashFloats(e.Dir...), boolHash(e.Basis), e.Inner.Hash())
}
func (e *Elongate) Domains() ir.SpecializationData { return e.Inner.Domains() }
func (e *Elongate) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("elongate", e.Hash()) }
func (e *Elongate) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (e *Elongate) Structs() []ir.StructDefinition { return nil }
func (e *Elongate) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	position, _ := dimProps(e.Dim)
	dirLit := vectorLit(e.Dim, e.Dir)
	pos := Wrap(ctx(position))
	var newPos E
	if e.Basis {
		fields := ir.NewPropertyExprMap()
		axes := []ir.PropertyIdentifier{ir.PropX, ir.PropY, ir.PropZ}[:e.Dim]
		for i, axis := range axes {
			comp := Wrap(ctx(position, axis)).Clamp(Num(-e.Dir[i]), Num(e.Dir[i]))
			fields.Set(axis, comp.Expr)
		}
		id := ir.StructVector2
		if e.Dim == 3 {
			id = ir.StructVector3
		}
		clamp := Wrap(ir.ExprStructLit{ID: id, Fields: fields})
		newPos = pos.Sub(clamp)
	} else {
		half := Wrap(dirLit).Length()
		proj := pos.Dot(Wrap(dirLit).Normalize()).Clamp(half.Neg(), half)
		newPos = pos.Sub(Wrap(dirLit).Normalize().Mul(proj))
	}
	pre := ir.Block{writeCtx(newPos.Expr, position)}
	return wrapModifier(entry, pre, e.Inner, spec, nil)
}

// Isosurface offsets the field by a constant : distance -= d.
type Isosurface struct {
	Inner Shape
	Offset float64
}

func NewIsosurface(inner Shape, offset float64) *Isosurface {
	return &Isosurface{Inner: inner, Offset: offset}
}

func (i *Isosurface) Hash() uint64 {
	return hashCombine(hashString("Isosurface"), hashFloat(i.Offset), i.Inner.Hash())
}
func (i *Isosurface) Domains() ir.SpecializationData { return i.Inner.Domains() }
func (i *Isosurface) EntryPoint() ir.FunctionIdentifier {
	return entryIdentifier("isosurface", i.Hash())
}
func (i *Isosurface) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (i *Isosurface) Structs() []ir.StructDefinition { return nil }
func (i *Isosurface) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	var post ir.Block
	if spec.Has(ir.PropDistance) {
		post = ir.Block{writeCtx(Wrap(ctx(ir.PropDistance)).Sub(Num(i.Offset)).Expr, ir.PropDistance)}
	}
	return wrapModifier(entry, nil, i.Inner, spec, post)
}

// Manifold folds the signed field into its absolute value, doubling the
// surface : num <- distance; distance <- |num|; gradient <- gradient
// * sign(num).
type Manifold struct {
	Inner Shape
	Dim int
}

func NewManifold2D(inner Shape) *Manifold { return &Manifold{Inner: inner, Dim: 2} }
func NewManifold3D(inner Shape) *Manifold { return &Manifold{Inner: inner, Dim: 3} }

func (m *Manifold) Hash() uint64 {
	return hashCombine(hashString("Manifold"), uint64(m.Dim), m.Inner.Hash())
}
func (m *Manifold) Domains() ir.SpecializationData {
	return m.Inner.Domains().Union(ir.NewSpecializationData(ir.PropNum))
}
func (m *Manifold) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("manifold", m.Hash()) }
func (m *Manifold) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (m *Manifold) Structs() []ir.StructDefinition { return nil }
func (m *Manifold) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	_, grad := dimProps(m.Dim)
	var post ir.Block
	if spec.Has(ir.PropDistance) {
		post = append(post, writeCtx(ctx(ir.PropDistance), ir.PropNum))
		post = append(post, writeCtx(Wrap(ctx(ir.PropNum)).Abs().Expr, ir.PropDistance))
	}
	if spec.Has(grad) {
		post = append(post, writeCtx(Wrap(ctx(grad)).Mul(Wrap(ir.Sign(ctx(ir.PropNum)))).Expr, grad))
	}
	return wrapModifier(entry, nil, m.Inner, spec, post)
}

// MirrorBasis reflects position across the axes flagged in mask ;
// the gradient is folded by the same per-axis sign flip, computed once
// from the pre-transform position so the post-pass can reuse it.
type MirrorBasis struct {
	Inner Shape
	Dim int
	Mask []bool
}

func NewMirrorBasis2D(inner Shape, mx, my bool) *MirrorBasis {
	return &MirrorBasis{Inner: inner, Dim: 2, Mask: []bool{mx, my}}
}
func NewMirrorBasis3D(inner Shape, mx, my, mz bool) *MirrorBasis {
	return &MirrorBasis{Inner: inner, Dim: 3, Mask: []bool{mx, my, mz}}
}

func (mb *MirrorBasis) Hash() uint64 {
	var bits uint64
	for i, b := range mb.Mask {
		if b {
			bits |= 1 << uint(i)
		}
	}
	return hashCombine(hashString("MirrorBasis"), uint64(mb.Dim), bits, mb.Inner.Hash())
}
func (mb *MirrorBasis) Domains() ir.SpecializationData { return mb.Inner.Domains() }
func (mb *MirrorBasis) EntryPoint() ir.FunctionIdentifier {
	return entryIdentifier("mirror_basis", mb.Hash())
}
func (mb *MirrorBasis) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (mb *MirrorBasis) Structs() []ir.StructDefinition { return nil }
func (mb *MirrorBasis) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	position, grad := dimProps(mb.Dim)
	flipLocal := ir.NewLocalProperty("mirror_flip")
	offset := make([]float64, mb.Dim)
	for i, b := range mb.Mask {
		if b {
			offset[i] = 0
		} else {
			offset[i] = 2
		}
	}
	flipExpr := Wrap(ctx(position)).Sign().Add(Wrap(vectorLit(mb.Dim, offset))).Sign()
	pre := ir.Block{
		ir.StmtBind{Prop: flipLocal, Expr: flipExpr.Expr},
		writeCtx(Wrap(ctx(position)).Mul(Wrap(ir.Read(flipLocal))).Expr, position),
	}
	var post ir.Block
	if spec.Has(grad) {
		post = ir.Block{writeCtx(Wrap(ctx(grad)).Mul(Wrap(ir.Read(flipLocal))).Expr, grad)}
	}
	return wrapModifier(entry, pre, mb.Inner, spec, post)
}

// reflectAcross builds v - 2*(v.n)*n, the reflection of v across the plane
// through the origin with unit normal n.
func reflectAcross(v, n ir.Expr) ir.Expr {
	vv, nn := Wrap(v), Wrap(n)
	dot := vv.Dot(nn)
	return vv.Sub(nn.Mul(dot).Mul(Num(2))).Expr
}

// MirrorAxis reflects position across the plane through the origin with
// normal n whenever position.n < 0.
type MirrorAxis struct {
	Inner Shape
	Dim int
	Axis []float64
}

func NewMirrorAxis2D(inner Shape, nx, ny float64) *MirrorAxis {
	return &MirrorAxis{Inner: inner, Dim: 2, Axis: []float64{nx, ny}}
}
func NewMirrorAxis3D(inner Shape, nx, ny, nz float64) *MirrorAxis {
	return &MirrorAxis{Inner: inner, Dim: 3, Axis: []float64{nx, ny, nz}}
}

func (ma *MirrorAxis) Hash() uint64 {
	return hashCombine(hashString("MirrorAxis"), uint64(ma.Dim), hashFloats(ma.Axis...), ma.Inner.Hash())
}
func (ma *MirrorAxis) Domains() ir.SpecializationData { return ma.Inner.Domains() }
func (ma *MirrorAxis) EntryPoint() ir.FunctionIdentifier {
	return entryIdentifier("mirror_axis", ma.Hash())
}
func (ma *MirrorAxis) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (ma *MirrorAxis) Structs() []ir.StructDefinition { return nil }
func (ma *MirrorAxis) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	position, grad := dimProps(ma.Dim)
	nLit := Wrap(vectorLit(ma.Dim, ma.Axis)).Normalize().Expr
	condLocal := ir.NewLocalProperty("mirror_axis_cond")
	pre := ir.Block{
		ir.StmtBind{Prop: condLocal, Expr: Wrap(ctx(position)).Dot(Wrap(nLit)).Lt(Num(0)).Expr},
		ir.StmtIf{
			Cond: ir.Read(condLocal),
			Then: ir.Block{writeCtx(reflectAcross(ctx(position), nLit), position)},
		},
	}
	var post ir.Block
	if spec.Has(grad) {
		post = ir.Block{
			ir.StmtIf{
				Cond: ir.Read(condLocal),
				Then: ir.Block{writeCtx(reflectAcross(ctx(grad), nLit), grad)},
			},
		}
	}
	return wrapModifier(entry, pre, ma.Inner, spec, post)
}

// RepeatInfinite tiles the inner shape across an unbounded grid :
// repeat_id <- round(position/period); position <- mod(position+period/2,
// period) - period/2.
type RepeatInfinite struct {
	Inner Shape
	Dim int
	Period []float64
}

func NewRepeatInfinite2D(inner Shape, px, py float64) *RepeatInfinite {
	return &RepeatInfinite{Inner: inner, Dim: 2, Period: []float64{px, py}}
}
func NewRepeatInfinite3D(inner Shape, px, py, pz float64) *RepeatInfinite {
	return &RepeatInfinite{Inner: inner, Dim: 3, Period: []float64{px, py, pz}}
}

func (r *RepeatInfinite) repeatIDProp() ir.PropertyIdentifier {
	if r.Dim == 3 {
		return ir.PropRepeatID3D
	}
	return ir.PropRepeatID2D
}

func (r *RepeatInfinite) Hash() uint64 {
	return hashCombine(hashString("RepeatInfinite"), uint64(r.Dim), hashFloats(r.Period...), r.Inner.Hash())
}
func (r *RepeatInfinite) Domains() ir.SpecializationData {
	return r.Inner.Domains().Union(ir.NewSpecializationData(r.repeatIDProp()))
}
func (r *RepeatInfinite) EntryPoint() ir.FunctionIdentifier {
	return entryIdentifier("repeat_infinite", r.Hash())
}
func (r *RepeatInfinite) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (r *RepeatInfinite) Structs() []ir.StructDefinition { return nil }
func (r *RepeatInfinite) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	position, _ := dimProps(r.Dim)
	period := Wrap(vectorLit(r.Dim, r.Period))
	pos := Wrap(ctx(position))
	var pre ir.Block
	if spec.Has(r.repeatIDProp()) {
		pre = append(pre, writeCtx(pos.Div(period).Round().Expr, r.repeatIDProp()))
	}
	half := period.Div(Num(2))
	newPos := pos.Add(half).Mod(period).Sub(half)
	pre = append(pre, writeCtx(newPos.Expr, position))
	return wrapModifier(entry, pre, r.Inner, spec, nil)
}

// RepeatClamped is RepeatInfinite with repeat_id clamped to [min, max] per
// axis, producing a bounded tiling.
type RepeatClamped struct {
	Inner Shape
	Dim int
	Period []float64
	Min, Max []float64
}

func NewRepeatClamped2D(inner Shape, px, py, minX, minY, maxX, maxY float64) *RepeatClamped {
	return &RepeatClamped{
		Inner: inner, Dim: 2,
		Period: []float64{px, py},
		Min: []float64{minX, minY},
		Max: []float64{maxX, maxY},
	}
}

func (r *RepeatClamped) repeatIDProp() ir.PropertyIdentifier {
	if r.Dim == 3 {
		return ir.PropRepeatID3D
	}
	return ir.PropRepeatID2D
}

func (r *RepeatClamped) Hash() uint64 {
	return hashCombine(hashString("RepeatClamped"), uint64(r.Dim), hashFloats(r.Period...), hashFloats(r.Min...), hashFloats(r.Max...), r.Inner.Hash())
}
func (r *RepeatClamped) Domains() ir.SpecializationData {
	return r.Inner.Domains().Union(ir.NewSpecializationData(r.repeatIDProp()))
}
func (r *RepeatClamped) EntryPoint() ir.FunctionIdentifier {
	return entryIdentifier("repeat_clamped", r.Hash())
}
func (r *RepeatClamped) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (r *RepeatClamped) Structs() []ir.StructDefinition { return nil }
func (r *RepeatClamped) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	position, _ := dimProps(r.Dim)
	period := Wrap(vectorLit(r.Dim, r.Period))
	pos := Wrap(ctx(position))
	idLocal := ir.NewLocalProperty("repeat_id_raw")
	clampedLocal := ir.NewLocalProperty("repeat_id_clamped")

	axes := []ir.PropertyIdentifier{ir.PropX, ir.PropY, ir.PropZ}[:r.Dim]
	fields := ir.NewPropertyExprMap()
	for i, axis := range axes {
		comp := Wrap(ir.Read(idLocal, axis)).Clamp(Num(r.Min[i]), Num(r.Max[i]))
		fields.Set(axis, comp.Expr)
	}
	structID := ir.StructVector2
	if r.Dim == 3 {
		structID = ir.StructVector3
	}

	pre := ir.Block{
		ir.StmtBind{Prop: idLocal, Expr: pos.Div(period).Round().Expr},
		ir.StmtBind{Prop: clampedLocal, Expr: ir.ExprStructLit{ID: structID, Fields: fields}},
	}
	if spec.Has(r.repeatIDProp()) {
		pre = append(pre, writeCtx(ir.Read(clampedLocal), r.repeatIDProp()))
	}
	newPos := pos.Sub(Wrap(ir.Read(clampedLocal)).Mul(period))
	pre = append(pre, writeCtx(newPos.Expr, position))
	return wrapModifier(entry, pre, r.Inner, spec, nil)
}

// Rotate rotates 2D position by -angle before the inner call and its
// gradient by +angle after.
type Rotate struct {
	Inner Shape
	Angle float64
}

func NewRotate(inner Shape, angle float64) *Rotate { return &Rotate{Inner: inner, Angle: angle} }

func (r *Rotate) Hash() uint64 {
	return hashCombine(hashString("Rotate"), hashFloat(r.Angle), r.Inner.Hash())
}
func (r *Rotate) Domains() ir.SpecializationData { return r.Inner.Domains() }
func (r *Rotate) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("rotate", r.Hash()) }
func (r *Rotate) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (r *Rotate) Structs() []ir.StructDefinition { return nil }

// rotateLocal builds the block rotating the Vector2 bound at local by angle
// (radians) and writing the result into prop.
func rotateLocal(local ir.PropertyIdentifier, angle float64, prop ir.PropertyIdentifier) ir.Stmt {
	cosA, sinA := Num(math.Cos(angle)), Num(math.Sin(angle))
	x := Wrap(ir.Read(local, ir.PropX))
	y := Wrap(ir.Read(local, ir.PropY))
	nx := x.Mul(cosA).Sub(y.Mul(sinA))
	ny := x.Mul(sinA).Add(y.Mul(cosA))
	fields := ir.NewPropertyExprMap()
	fields.Set(ir.PropX, nx.Expr)
	fields.Set(ir.PropY, ny.Expr)
	return writeCtx(ir.ExprStructLit{ID: ir.StructVector2, Fields: fields}, prop)
}

func (r *Rotate) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	posLocal := ir.NewLocalProperty("rotate_pos")
	pre := ir.Block{
		ir.StmtBind{Prop: posLocal, Expr: ctx(ir.PropPosition2D)},
		rotateLocal(posLocal, -r.Angle, ir.PropPosition2D),
	}
	var post ir.Block
	if spec.Has(ir.PropGradient2D) {
		gradLocal := ir.NewLocalProperty("rotate_grad")
		post = ir.Block{
			ir.StmtBind{Prop: gradLocal, Expr: ctx(ir.PropGradient2D)},
			rotateLocal(gradLocal, r.Angle, ir.PropGradient2D),
		}
	}
	return wrapModifier(entry, pre, r.Inner, spec, post)
}

// Scale uniformly scales position down (and distance back up) by s.
type Scale struct {
	Inner Shape
	Dim int
	S float64
}

func NewScale2D(inner Shape, s float64) *Scale { return &Scale{Inner: inner, Dim: 2, S: s} }
func NewScale3D(inner Shape, s float64) *Scale { return &Scale{Inner: inner, Dim: 3, S: s} }

func (s *Scale) Hash() uint64 {
	return hashCombine(hashString("Scale"), uint64(s.Dim), hashFloat(s.S), s.Inner.Hash())
}
func (s *Scale) Domains() ir.SpecializationData { return s.Inner.Domains() }
func (s *Scale) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("scale", s.Hash()) }
func (s *Scale) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (s *Scale) Structs() []ir.StructDefinition { return nil }
func (s *Scale) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	position, _ := dimProps(s.Dim)
	pre := ir.Block{writeCtx(Wrap(ctx(position)).Div(Num(s.S)).Expr, position)}
	var post ir.Block
	if spec.Has(ir.PropDistance) {
		post = ir.Block{writeCtx(Wrap(ctx(ir.PropDistance)).Mul(Num(s.S)).Expr, ir.PropDistance)}
	}
	return wrapModifier(entry, pre, s.Inner, spec, post)
}

// Aspect stretches position.x by ratio, correcting for non-square
// viewports.
type Aspect struct {
	Inner Shape
	Ratio float64
}

func NewAspect(inner Shape, ratio float64) *Aspect { return &Aspect{Inner: inner, Ratio: ratio} }

func (a *Aspect) Hash() uint64 {
	return hashCombine(hashString("Aspect"), hashFloat(a.Ratio), a.Inner.Hash())
}
func (a *Aspect) Domains() ir.SpecializationData { return a.Inner.Domains() }
func (a *Aspect) EntryPoint() ir.FunctionIdentifier {
	return entryIdentifier("aspect", a.Hash())
}
func (a *Aspect) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (a *Aspect) Structs() []ir.StructDefinition { return nil }
func (a *Aspect) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	x := Wrap(ctx(ir.PropPosition2D, ir.PropX)).Mul(Num(a.Ratio))
	fields := ir.NewPropertyExprMap()
	fields.Set(ir.PropX, x.Expr)
	fields.Set(ir.PropY, ctx(ir.PropPosition2D, ir.PropY))
	pre := ir.Block{writeCtx(ir.ExprStructLit{ID: ir.StructVector2, Fields: fields}, ir.PropPosition2D)}
	return wrapModifier(entry, pre, a.Inner, spec, nil)
}

// UvMap recolors the outer CONTEXT by evaluating inner at position <- UV,
// copying its COLOR back : a generic recolor-by-UV.
type UvMap struct {
	Inner Shape
}

func NewUvMap(inner Shape) *UvMap { return &UvMap{Inner: inner} }

func (u *UvMap) Hash() uint64 { return hashCombine(hashString("UvMap"), u.Inner.Hash()) }
func (u *UvMap) Domains() ir.SpecializationData {
	return ir.NewSpecializationData(ir.PropColor)
}
func (u *UvMap) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("uv_map", u.Hash()) }
func (u *UvMap) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (u *UvMap) Structs() []ir.StructDefinition { return nil }
func (u *UvMap) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	childSpec := ir.NewSpecializationData(ir.PropColor)
	m := mustModule(u.Inner, childSpec)
	remapped := ir.NewLocalProperty("uvmap_ctx")
	resultLocal := ir.NewLocalProperty("uvmap_result")

	body := ir.Block{
		ir.StmtBind{Prop: remapped, Expr: ctx()},
		ir.StmtWrite{Path: []ir.PropertyIdentifier{remapped, ir.PropPosition2D}, Expr: ctx(ir.PropUV)},
		ir.StmtBind{Prop: resultLocal, Expr: m.Call(ir.Read(remapped))},
	}
	if spec.Has(ir.PropColor) {
		body = append(body, writeCtx(ir.Read(resultLocal, ir.PropColor), ir.PropColor))
	}
	body = append(body, output())
	funcs := []ir.FunctionDefinition{entryFunction(entry, body)}
	funcs = append(funcs, m.FunctionDefinitions...)
	return funcs
}

// Filter runs the inner shape then discards every output property except
// prop.
type Filter struct {
	Inner Shape
	Prop ir.PropertyIdentifier
}

func NewFilter(inner Shape, prop ir.PropertyIdentifier) *Filter { return &Filter{Inner: inner, Prop: prop} }

func (f *Filter) Hash() uint64 {
	return hashCombine(hashString("Filter"), hashString(f.Prop.Name), f.Inner.Hash())
}
func (f *Filter) Domains() ir.SpecializationData { return ir.NewSpecializationData(f.Prop) }
func (f *Filter) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("filter", f.Hash()) }
func (f *Filter) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (f *Filter) Structs() []ir.StructDefinition { return nil }
func (f *Filter) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	childSpec := ir.NewSpecializationData(f.Prop).Intersect(f.Inner.Domains())
	m := mustModule(f.Inner, childSpec)
	resultLocal := ir.NewLocalProperty("filter_result")
	body := ir.Block{ir.StmtBind{Prop: resultLocal, Expr: m.Call(ctx())}}
	if spec.Has(f.Prop) {
		body = append(body, writeCtx(ir.Read(resultLocal, f.Prop), f.Prop))
	}
	body = append(body, output())
	funcs := []ir.FunctionDefinition{entryFunction(entry, body)}
	funcs = append(funcs, m.FunctionDefinitions...)
	return funcs
}

// Prepass runs inner first and adopts its entire resulting CONTEXT,
// making every property it populated available to a subsequent Select or
// sibling shape.
type Prepass struct {
	Inner Shape
}

func NewPrepass(inner Shape) *Prepass { return &Prepass{Inner: inner} }

func (p *Prepass) Hash() uint64 { return hashCombine(hashString("Prepass"), p.Inner.Hash()) }
func (p *Prepass) Domains() ir.SpecializationData { return p.Inner.Domains() }
func (p *Prepass) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("prepass", p.Hash()) }
func (p *Prepass) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (p *Prepass) Structs() []ir.StructDefinition { return nil }
func (p *Prepass) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	return wrapModifier(entry, nil, p.Inner, spec, nil)
}

// Set/SetPost assign CONTEXT.prop <- expr before/after the inner call
//. expr is built against the outer CONTEXT environment by the
// caller (a shape.E-valued closure), not baked in at construction, since
// it may reference properties the inner call only populates post-pass.
type Set struct {
	Inner Shape
	Prop ir.PropertyIdentifier
	Expr func() ir.Expr
	Post bool
}

func NewSet(inner Shape, prop ir.PropertyIdentifier, expr func() ir.Expr) *Set {
	return &Set{Inner: inner, Prop: prop, Expr: expr}
}
func NewSetPost(inner Shape, prop ir.PropertyIdentifier, expr func() ir.Expr) *Set {
	return &Set{Inner: inner, Prop: prop, Expr: expr, Post: true}
}

func (s *Set) Hash() uint64 {
	kind := "Set"
	if s.Post {
		kind = "SetPost"
	}
	return hashCombine(hashString(kind), hashString(s.Prop.Name), s.Inner.Hash())
}
func (s *Set) Domains() ir.SpecializationData {
	return s.Inner.Domains().Union(ir.NewSpecializationData(s.Prop))
}
func (s *Set) EntryPoint() ir.FunctionIdentifier {
	if s.Post {
		return entryIdentifier("set_post", s.Hash())
	}
	return entryIdentifier("set", s.Hash())
}
func (s *Set) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (s *Set) Structs() []ir.StructDefinition { return nil }
func (s *Set) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	if !spec.Has(s.Prop) {
		return wrapModifier(entry, nil, s.Inner, spec, nil)
	}
	assign := writeCtx(s.Expr(), s.Prop)
	if s.Post {
		return wrapModifier(entry, nil, s.Inner, spec, ir.Block{assign})
	}
	return wrapModifier(entry, ir.Block{assign}, s.Inner, spec, nil)
}

// GradientNormals estimates NORMAL by finite differences of DISTANCE along
// each axis.
type GradientNormals struct {
	Inner Shape
	Dim int
	Eps float64
}

func NewGradientNormals3D(inner Shape) *GradientNormals {
	return &GradientNormals{Inner: inner, Dim: 3, Eps: 1e-4}
}

func (g *GradientNormals) Hash() uint64 {
	return hashCombine(hashString("GradientNormals"), uint64(g.Dim), hashFloat(g.Eps), g.Inner.Hash())
}
func (g *GradientNormals) Domains() ir.SpecializationData {
	return g.Inner.Domains().Union(ir.NewSpecializationData(ir.PropNormal))
}
func (g *GradientNormals) EntryPoint() ir.FunctionIdentifier {
	return entryIdentifier("gradient_normals", g.Hash())
}
func (g *GradientNormals) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (g *GradientNormals) Structs() []ir.StructDefinition { return nil }
func (g *GradientNormals) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	if !spec.Has(ir.PropNormal) {
		return wrapModifier(entry, nil, g.Inner, spec, nil)
	}
	position, _ := dimProps(g.Dim)
	childSpec := ir.NewSpecializationData(ir.PropDistance).Intersect(g.Inner.Domains())
	m := mustModule(g.Inner, childSpec)

	axes := []ir.PropertyIdentifier{ir.PropX, ir.PropY, ir.PropZ}[:g.Dim]
	fields := ir.NewPropertyExprMap()
	body := ir.Block{}
	for _, axis := range axes {
		plusCtx := ir.NewLocalProperty("normal_plus_ctx_" + axis.Name)
		minusCtx := ir.NewLocalProperty("normal_minus_ctx_" + axis.Name)
		plusPos := ir.NewPropertyExprMap()
		minusPos := ir.NewPropertyExprMap()
		for _, a := range axes {
			v := ctx(position, a)
			if a == axis {
				plusPos.Set(a, ir.Add(v, ir.Lit(ir.Float(g.Eps))))
				minusPos.Set(a, ir.Sub(v, ir.Lit(ir.Float(g.Eps))))
			} else {
				plusPos.Set(a, v)
				minusPos.Set(a, v)
			}
		}
		structID := ir.StructVector2
		if g.Dim == 3 {
			structID = ir.StructVector3
		}
		body = append(body,
			ir.StmtBind{Prop: plusCtx, Expr: ctx()},
			ir.StmtWrite{Path: []ir.PropertyIdentifier{plusCtx, position}, Expr: ir.ExprStructLit{ID: structID, Fields: plusPos}},
			ir.StmtBind{Prop: plusCtx, Expr: m.Call(ir.Read(plusCtx))},
			ir.StmtBind{Prop: minusCtx, Expr: ctx()},
			ir.StmtWrite{Path: []ir.PropertyIdentifier{minusCtx, position}, Expr: ir.ExprStructLit{ID: structID, Fields: minusPos}},
			ir.StmtBind{Prop: minusCtx, Expr: m.Call(ir.Read(minusCtx))},
		)
		diff := Wrap(ir.Read(plusCtx, ir.PropDistance)).Sub(Wrap(ir.Read(minusCtx, ir.PropDistance)))
		fields.Set(axis, diff.Expr)
	}
	structID := ir.StructVector2
	if g.Dim == 3 {
		structID = ir.StructVector3
	}
	normalLocal := ir.NewLocalProperty("normal_raw")
	body = append(body, ir.StmtBind{Prop: normalLocal, Expr: ir.ExprStructLit{ID: structID, Fields: fields}})

	post := ir.Block{writeCtx(Wrap(ir.Read(normalLocal)).Normalize().Expr, ir.PropNormal)}
	pre := body
	return wrapModifier(entry, pre, g.Inner, spec, post)
}

// FlipBasis swaps the X and Y axes of both position and gradient ;
// the general per-axis permutation the source's "mask" allows collapses,
// for the 2D case this port targets, to a single X/Y swap toggle.
type FlipBasis struct {
	Inner Shape
	Dim int
	SwapXY bool
}

func NewFlipBasis2D(inner Shape) *FlipBasis { return &FlipBasis{Inner: inner, Dim: 2, SwapXY: true} }

func (fb *FlipBasis) Hash() uint64 {
	return hashCombine(hashString("FlipBasis"), uint64(fb.Dim), boolHash(fb.SwapXY), fb.Inner.Hash())
}
func (fb *FlipBasis) Domains() ir.SpecializationData { return fb.Inner.Domains() }
func (fb *FlipBasis) EntryPoint() ir.FunctionIdentifier {
	return entryIdentifier("flip_basis", fb.Hash())
}
func (fb *FlipBasis) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (fb *FlipBasis) Structs() []ir.StructDefinition { return nil }
func (fb *FlipBasis) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	position, grad := dimProps(fb.Dim)
	swap := func(prop ir.PropertyIdentifier) ir.Expr {
		fields := ir.NewPropertyExprMap()
		fields.Set(ir.PropX, ctx(prop, ir.PropY))
		fields.Set(ir.PropY, ctx(prop, ir.PropX))
		if fb.Dim == 3 {
			fields.Set(ir.PropZ, ctx(prop, ir.PropZ))
			return ir.ExprStructLit{ID: ir.StructVector3, Fields: fields}
		}
		return ir.ExprStructLit{ID: ir.StructVector2, Fields: fields}
	}
	if !fb.SwapXY {
		return wrapModifier(entry, nil, fb.Inner, spec, nil)
	}
	pre := ir.Block{writeCtx(swap(position), position)}
	var post ir.Block
	if spec.Has(grad) {
		post = ir.Block{writeCtx(swap(grad), grad)}
	}
	return wrapModifier(entry, pre, fb.Inner, spec, post)
}

func boolHash(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
