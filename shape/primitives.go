package shape

import (
	"math"

	"github.com/elysian-sdf/elysian/ir"
)

// dimProps returns the canonical position/gradient property pair for a
// primitive's dimensionality (2 or 3), per "gradient denotes
// GRADIENT_2D or GRADIENT_3D according to the requested position property".
func dimProps(dim int) (position, gradient ir.PropertyIdentifier) {
	if dim == 3 {
		return ir.PropPosition3D, ir.PropGradient3D
	}
	return ir.PropPosition2D, ir.PropGradient2D
}

// vectorLit builds a Vector2/Vector3 literal expression from components.
func vectorLit(dim int, c []float64) ir.Expr {
	if dim == 3 {
		return ir.Lit(ir.NewVector3(c[0], c[1], c[2]))
	}
	return ir.Lit(ir.NewVector2(c[0], c[1]))
}

// projectXY builds a Vector2 expression from the X,Y fields of a (2D or
// 3D) CONTEXT position property, used as the default UV projection.
func projectXY(position ir.PropertyIdentifier) ir.Expr {
	fields := ir.NewPropertyExprMap()
	fields.Set(ir.PropX, ctx(position, ir.PropX))
	fields.Set(ir.PropY, ctx(position, ir.PropY))
	return ir.ExprStructLit{ID: ir.StructVector2, Fields: fields}
}

// scalarUV wraps a scalar curve-parameter value as a Vector2 (X: value,
// Y: 0). 's UV column is silent on how a 1D projection (Line,
// Capsule, Arc) packs into the Vector2-typed UV property; this port picks
// the X-channel encoding and documents it here rather than in spec prose.
func scalarUV(value ir.Expr) ir.Expr {
	fields := ir.NewPropertyExprMap()
	fields.Set(ir.PropX, value)
	fields.Set(ir.PropY, ir.Lit(ir.Float(0)))
	return ir.ExprStructLit{ID: ir.StructVector2, Fields: fields}
}

// Point is the distance-to-origin primitive.
type Point struct{ Dim int }

func NewPoint2D() *Point { return &Point{Dim: 2} }
func NewPoint3D() *Point { return &Point{Dim: 3} }

func (p *Point) Hash() uint64 { return hashCombine(hashString("Point"), uint64(p.Dim)) }
func (p *Point) Domains() ir.SpecializationData {
	_, grad := dimProps(p.Dim)
	return ir.NewSpecializationData(ir.PropDistance, grad, ir.PropUV)
}
func (p *Point) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("point", p.Hash()) }
func (p *Point) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (p *Point) Structs() []ir.StructDefinition { return nil }
func (p *Point) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	position, grad := dimProps(p.Dim)
	pos := Wrap(ctx(position))
	var body ir.Block
	if spec.Has(ir.PropDistance) {
		body = append(body, writeCtx(pos.Length().Expr, ir.PropDistance))
	}
	if spec.Has(grad) {
		body = append(body, writeCtx(pos.Normalize().Expr, grad))
	}
	if spec.Has(ir.PropUV) {
		body = append(body, writeCtx(projectXY(position), ir.PropUV))
	}
	body = append(body, output())
	return []ir.FunctionDefinition{entryFunction(entry, body)}
}

// Circle is a Point offset by a fixed radius.
type Circle struct {
	Dim int
	Radius float64
}

func NewCircle2D(r float64) *Circle { return &Circle{Dim: 2, Radius: r} }
func NewCircle3D(r float64) *Circle { return &Circle{Dim: 3, Radius: r} }

func (c *Circle) Hash() uint64 {
	return hashCombine(hashString("Circle"), uint64(c.Dim), hashFloat(c.Radius))
}
func (c *Circle) Domains() ir.SpecializationData {
	_, grad := dimProps(c.Dim)
	return ir.NewSpecializationData(ir.PropDistance, grad, ir.PropUV)
}
func (c *Circle) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("circle", c.Hash()) }
func (c *Circle) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (c *Circle) Structs() []ir.StructDefinition { return nil }
func (c *Circle) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	position, grad := dimProps(c.Dim)
	pos := Wrap(ctx(position))
	var body ir.Block
	if spec.Has(ir.PropDistance) {
		body = append(body, writeCtx(pos.Length().Sub(Num(c.Radius)).Expr, ir.PropDistance))
	}
	if spec.Has(grad) {
		body = append(body, writeCtx(pos.Normalize().Expr, grad))
	}
	if spec.Has(ir.PropUV) {
		body = append(body, writeCtx(projectXY(position), ir.PropUV))
	}
	body = append(body, output())
	return []ir.FunctionDefinition{entryFunction(entry, body)}
}

// lineGeometry builds the shared distance-to-segment locals for Line and
// Capsule: a segment through the origin with half-vector dir.
type lineGeometry struct {
	position ir.PropertyIdentifier
	dirLit ir.Expr
	halfLocal ir.PropertyIdentifier
	dHatLocal ir.PropertyIdentifier
	diffLocal ir.PropertyIdentifier
}

func newLineGeometry(dim int, dirLit ir.Expr, suffix string) lineGeometry {
	position, _ := dimProps(dim)
	return lineGeometry{
		position: position,
		dirLit: dirLit,
		halfLocal: ir.NewLocalProperty("line_half_" + suffix),
		dHatLocal: ir.NewLocalProperty("line_dhat_" + suffix),
		diffLocal: ir.NewLocalProperty("line_diff_" + suffix),
	}
}

// bind returns the statements that bind half, dHat and diff, plus a Read
// expression for the nearest-point-to-segment difference vector.
func (g lineGeometry) bind() (ir.Block, ir.Expr) {
	pos := Wrap(ctx(g.position))
	half := Wrap(g.dirLit).Length()
	dHat := Wrap(g.dirLit).Normalize()
	proj := pos.Dot(Wrap(ir.Read(g.dHatLocal))).Clamp(half.Neg(), half)
	scaled := Wrap(ir.Read(g.dHatLocal)).Mul(proj)
	diff := pos.Sub(scaled)
	block := ir.Block{
		ir.StmtBind{Prop: g.halfLocal, Expr: half.Expr},
		ir.StmtBind{Prop: g.dHatLocal, Expr: dHat.Expr},
		ir.StmtBind{Prop: g.diffLocal, Expr: diff.Expr},
	}
	return block, ir.Read(g.diffLocal)
}

// Line is the distance-to-segment primitive.
type Line struct {
	Dim int
	Dir []float64 // length 2 or 3
}

func NewLine2D(dx, dy float64) *Line { return &Line{Dim: 2, Dir: []float64{dx, dy}} }
func NewLine3D(dx, dy, dz float64) *Line { return &Line{Dim: 3, Dir: []float64{dx, dy, dz}} }

func (l *Line) Hash() uint64 {
	return hashCombine(hashString("Line"), uint64(l.Dim), hashFloats(l.Dir...))
}
func (l *Line) Domains() ir.SpecializationData {
	_, grad := dimProps(l.Dim)
	return ir.NewSpecializationData(ir.PropDistance, grad, ir.PropUV)
}
func (l *Line) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("line", l.Hash()) }
func (l *Line) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (l *Line) Structs() []ir.StructDefinition { return nil }
func (l *Line) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	_, grad := dimProps(l.Dim)
	g := newLineGeometry(l.Dim, vectorLit(l.Dim, l.Dir), "line")
	body, diff := g.bind()
	if spec.Has(ir.PropDistance) {
		body = append(body, writeCtx(Wrap(diff).Length().Expr, ir.PropDistance))
	}
	if spec.Has(grad) {
		body = append(body, writeCtx(Wrap(diff).Normalize().Expr, grad))
	}
	if spec.Has(ir.PropUV) {
		proj := Wrap(ctx(g.position)).Dot(Wrap(ir.Read(g.dHatLocal)))
		body = append(body, writeCtx(scalarUV(proj.Expr), ir.PropUV))
	}
	body = append(body, output())
	return []ir.FunctionDefinition{entryFunction(entry, body)}
}

// Capsule is Line offset by a radius.
type Capsule struct {
	Dim int
	Dir []float64
	Radius float64
}

func NewCapsule2D(dx, dy, r float64) *Capsule {
	return &Capsule{Dim: 2, Dir: []float64{dx, dy}, Radius: r}
}
func NewCapsule3D(dx, dy, dz, r float64) *Capsule {
	return &Capsule{Dim: 3, Dir: []float64{dx, dy, dz}, Radius: r}
}

func (c *Capsule) Hash() uint64 {
	return hashCombine(hashString("Capsule"), uint64(c.Dim), hashFloats(c.Dir...), hashFloat(c.Radius))
}
func (c *Capsule) Domains() ir.SpecializationData {
	_, grad := dimProps(c.Dim)
	return ir.NewSpecializationData(ir.PropDistance, grad, ir.PropUV)
}
func (c *Capsule) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("capsule", c.Hash()) }
func (c *Capsule) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (c *Capsule) Structs() []ir.StructDefinition { return nil }
func (c *Capsule) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	_, grad := dimProps(c.Dim)
	g := newLineGeometry(c.Dim, vectorLit(c.Dim, c.Dir), "capsule")
	body, diff := g.bind()
	if spec.Has(ir.PropDistance) {
		body = append(body, writeCtx(Wrap(diff).Length().Sub(Num(c.Radius)).Expr, ir.PropDistance))
	}
	if spec.Has(grad) {
		body = append(body, writeCtx(Wrap(diff).Normalize().Expr, grad))
	}
	if spec.Has(ir.PropUV) {
		proj := Wrap(ctx(g.position)).Dot(Wrap(ir.Read(g.dHatLocal)))
		body = append(body, writeCtx(scalarUV(proj.Expr), ir.PropUV))
	}
	body = append(body, output())
	return []ir.FunctionDefinition{entryFunction(entry, body)}
}

// Arc is the signed-distance-to-circular-arc primitive : a circle of
// radius r restricted to the angular wedge [-theta, theta] measured from
// the +Y axis, grounded on original_source's arc.rs symmetric-wedge
// formula (supplemented, ).
type Arc struct {
	HalfAngle float64
	Radius float64
}

func NewArc(halfAngle, radius float64) *Arc { return &Arc{HalfAngle: halfAngle, Radius: radius} }

func (a *Arc) Hash() uint64 {
	return hashCombine(hashString("Arc"), hashFloat(a.HalfAngle), hashFloat(a.Radius))
}
func (a *Arc) Domains() ir.SpecializationData {
	return ir.NewSpecializationData(ir.PropDistance, ir.PropGradient2D, ir.PropUV)
}
func (a *Arc) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("arc", a.Hash()) }
func (a *Arc) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (a *Arc) Structs() []ir.StructDefinition { return nil }
func (a *Arc) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	pos := Wrap(ctx(ir.PropPosition2D))
	thetaLocal := ir.NewLocalProperty("arc_theta")
	nearestLocal := ir.NewLocalProperty("arc_nearest")
	diffLocal := ir.NewLocalProperty("arc_diff")

	theta := Atan2(Wrap(ctx(ir.PropPosition2D, ir.PropX)), Wrap(ctx(ir.PropPosition2D, ir.PropY)))
	clampedTheta := theta.Clamp(Num(-a.HalfAngle), Num(a.HalfAngle))

	body := ir.Block{
		ir.StmtBind{Prop: thetaLocal, Expr: clampedTheta.Expr},
	}
	sinT := Wrap(ir.Read(thetaLocal)).Sin()
	cosT := Wrap(ir.Read(thetaLocal)).Cos()
	nearest := ir.ExprStructLit{
		ID: ir.StructVector2,
		Fields: ir.NewPropertyExprMap().
			Set(ir.PropX, sinT.Mul(Num(a.Radius)).Expr).
			Set(ir.PropY, cosT.Mul(Num(a.Radius)).Expr),
	}
	body = append(body, ir.StmtBind{Prop: nearestLocal, Expr: nearest})
	diff := pos.Sub(Wrap(ir.Read(nearestLocal)))
	body = append(body, ir.StmtBind{Prop: diffLocal, Expr: diff.Expr})

	if spec.Has(ir.PropDistance) {
		body = append(body, writeCtx(Wrap(ir.Read(diffLocal)).Length().Expr, ir.PropDistance))
	}
	if spec.Has(ir.PropGradient2D) {
		body = append(body, writeCtx(Wrap(ir.Read(diffLocal)).Normalize().Expr, ir.PropGradient2D))
	}
	if spec.Has(ir.PropUV) {
		body = append(body, writeCtx(scalarUV(ir.Read(thetaLocal)), ir.PropUV))
	}
	body = append(body, output())
	return []ir.FunctionDefinition{entryFunction(entry, body)}
}

// Quad is the axis-aligned box SDF : exact box distance, with a
// sign-based gradient approximation.
type Quad struct {
	HalfExtents []float64 // length 2 or 3
}

func NewQuad2D(hx, hy float64) *Quad { return &Quad{HalfExtents: []float64{hx, hy}} }
func NewQuad3D(hx, hy, hz float64) *Quad { return &Quad{HalfExtents: []float64{hx, hy, hz}} }

func (q *Quad) dim() int { return len(q.HalfExtents) }

func (q *Quad) Hash() uint64 { return hashCombine(hashString("Quad"), hashFloats(q.HalfExtents...)) }
func (q *Quad) Domains() ir.SpecializationData {
	_, grad := dimProps(q.dim())
	return ir.NewSpecializationData(ir.PropDistance, grad, ir.PropUV)
}
func (q *Quad) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("quad", q.Hash()) }
func (q *Quad) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (q *Quad) Structs() []ir.StructDefinition { return nil }
func (q *Quad) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	position, grad := dimProps(q.dim())
	dim := q.dim()
	pos := Wrap(ctx(position))
	extents := vectorLit(dim, q.HalfExtents)
	zero := vectorLit(dim, make([]float64, dim))

	dLocal := ir.NewLocalProperty("quad_d")
	d := pos.Abs().Sub(Wrap(extents))
	body := ir.Block{ir.StmtBind{Prop: dLocal, Expr: d.Expr}}

	if spec.Has(ir.PropDistance) {
		outside := Wrap(ir.Read(dLocal)).Max(Wrap(zero)).Length()
		mc := Wrap(ir.Read(dLocal, ir.PropX)).Max(Wrap(ir.Read(dLocal, ir.PropY)))
		if dim == 3 {
			mc = mc.Max(Wrap(ir.Read(dLocal, ir.PropZ)))
		}
		inside := mc.Min(Num(0))
		distance := outside.Add(inside)
		body = append(body, writeCtx(distance.Expr, ir.PropDistance))
	}
	if spec.Has(grad) {
		body = append(body, writeCtx(pos.Sign().Expr, grad))
	}
	if spec.Has(ir.PropUV) {
		body = append(body, writeCtx(projectXY(position), ir.PropUV))
	}
	body = append(body, output())
	return []ir.FunctionDefinition{entryFunction(entry, body)}
}

// Ring is the annulus SDF |‖position‖ - r| - width.
type Ring struct {
	Dim int
	Radius float64
	Width float64
}

func NewRing2D(r, width float64) *Ring { return &Ring{Dim: 2, Radius: r, Width: width} }

func (r *Ring) Hash() uint64 {
	return hashCombine(hashString("Ring"), uint64(r.Dim), hashFloat(r.Radius), hashFloat(r.Width))
}
func (r *Ring) Domains() ir.SpecializationData {
	_, grad := dimProps(r.Dim)
	return ir.NewSpecializationData(ir.PropDistance, grad, ir.PropUV)
}
func (r *Ring) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("ring", r.Hash()) }
func (r *Ring) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (r *Ring) Structs() []ir.StructDefinition { return nil }
func (r *Ring) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	position, grad := dimProps(r.Dim)
	pos := Wrap(ctx(position))
	radial := pos.Length()
	var body ir.Block
	if spec.Has(ir.PropDistance) {
		d := radial.Sub(Num(r.Radius)).Abs().Sub(Num(r.Width))
		body = append(body, writeCtx(d.Expr, ir.PropDistance))
	}
	if spec.Has(grad) {
		body = append(body, writeCtx(pos.Normalize().Expr, grad))
	}
	if spec.Has(ir.PropUV) {
		body = append(body, writeCtx(projectXY(position), ir.PropUV))
	}
	body = append(body, output())
	return []ir.FunctionDefinition{entryFunction(entry, body)}
}

// Chebyshev is the max-norm (Chebyshev distance) primitive. Ties in
// the dominant axis are broken toward the highest tied axis index.
type Chebyshev struct{ Dim int }

func NewChebyshev2D() *Chebyshev { return &Chebyshev{Dim: 2} }
func NewChebyshev3D() *Chebyshev { return &Chebyshev{Dim: 3} }

func (c *Chebyshev) Hash() uint64 { return hashCombine(hashString("Chebyshev"), uint64(c.Dim)) }
func (c *Chebyshev) Domains() ir.SpecializationData {
	_, grad := dimProps(c.Dim)
	return ir.NewSpecializationData(ir.PropDistance, grad)
}
func (c *Chebyshev) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("chebyshev", c.Hash()) }
func (c *Chebyshev) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (c *Chebyshev) Structs() []ir.StructDefinition { return nil }
func (c *Chebyshev) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	position, grad := dimProps(c.Dim)
	var body ir.Block
	if spec.Has(ir.PropDistance) {
		ax := Wrap(ir.Abs(ctx(position, ir.PropX)))
		ay := Wrap(ir.Abs(ctx(position, ir.PropY)))
		m := ax.Max(ay)
		if c.Dim == 3 {
			az := Wrap(ir.Abs(ctx(position, ir.PropZ)))
			m = m.Max(az)
		}
		body = append(body, writeCtx(m.Expr, ir.PropDistance))
	}
	if spec.Has(grad) {
		body = append(body, chebyshevGradient(c.Dim, position, grad)...)
	}
	body = append(body, output())
	return []ir.FunctionDefinition{entryFunction(entry, body)}
}

// chebyshevGradient picks the dominant axis by nested if/else on strict
// comparisons (the highest tied index wins ties) and writes a signed unit
// vector along it.
func chebyshevGradient(dim int, position, grad ir.PropertyIdentifier) ir.Block {
	gradLocal := ir.NewLocalProperty("cheby_grad")
	axisVec := func(axis ir.PropertyIdentifier) ir.Expr {
		fields := ir.NewPropertyExprMap()
		sign := ir.Sign(ctx(position, axis))
		for _, f := range []ir.PropertyIdentifier{ir.PropX, ir.PropY, ir.PropZ}[:dim] {
			if f == axis {
				fields.Set(f, sign)
			} else {
				fields.Set(f, ir.Lit(ir.Float(0)))
			}
		}
		id := ir.StructVector2
		if dim == 3 {
			id = ir.StructVector3
		}
		return ir.ExprStructLit{ID: id, Fields: fields}
	}
	ax, ay := ir.Abs(ctx(position, ir.PropX)), ir.Abs(ctx(position, ir.PropY))
	if dim == 2 {
		return ir.Block{
			ir.StmtIf{
				Cond: ir.Gt(ax, ay),
				Then: ir.Block{ir.StmtBind{Prop: gradLocal, Expr: axisVec(ir.PropX)}},
				Else: ir.Block{ir.StmtBind{Prop: gradLocal, Expr: axisVec(ir.PropY)}},
			},
			writeCtx(ir.Read(gradLocal), grad),
		}
	}
	az := ir.Abs(ctx(position, ir.PropZ))
	return ir.Block{
		ir.StmtIf{
			Cond: ir.And(ir.Gt(ax, ay), ir.Gt(ax, az)),
			Then: ir.Block{ir.StmtBind{Prop: gradLocal, Expr: axisVec(ir.PropX)}},
			Else: ir.Block{
				ir.StmtIf{
					Cond: ir.Gt(ay, az),
					Then: ir.Block{ir.StmtBind{Prop: gradLocal, Expr: axisVec(ir.PropY)}},
					Else: ir.Block{ir.StmtBind{Prop: gradLocal, Expr: axisVec(ir.PropZ)}},
				},
			},
		},
		writeCtx(ir.Read(gradLocal), grad),
	}
}

// Infinity is the identity-under-union sentinel : +Inf distance,
// zero gradient.
type Infinity struct{ Dim int }

func NewInfinity2D() *Infinity { return &Infinity{Dim: 2} }
func NewInfinity3D() *Infinity { return &Infinity{Dim: 3} }

func (i *Infinity) Hash() uint64 { return hashCombine(hashString("Infinity"), uint64(i.Dim)) }
func (i *Infinity) Domains() ir.SpecializationData {
	_, grad := dimProps(i.Dim)
	return ir.NewSpecializationData(ir.PropDistance, grad)
}
func (i *Infinity) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("infinity", i.Hash()) }
func (i *Infinity) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (i *Infinity) Structs() []ir.StructDefinition { return nil }
func (i *Infinity) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	_, grad := dimProps(i.Dim)
	var body ir.Block
	if spec.Has(ir.PropDistance) {
		body = append(body, writeCtx(ir.Lit(ir.Float(math.Inf(1))), ir.PropDistance))
	}
	if spec.Has(grad) {
		zero := vectorLit(i.Dim, make([]float64, i.Dim))
		body = append(body, writeCtx(zero, grad))
	}
	body = append(body, output())
	return []ir.FunctionDefinition{entryFunction(entry, body)}
}
