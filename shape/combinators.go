package shape

import "github.com/elysian-sdf/elysian/ir"

// combinatorStep is one function in a combinator's stack : reads
// COMBINE_CONTEXT.LEFT/RIGHT and writes COMBINE_CONTEXT.OUT. k is nil for
// the boolean steps (Union/Intersection/Subtraction/Overlay), which take no
// smoothing factor.
type combinatorStep struct {
	id ir.FunctionIdentifier
	def ir.FunctionDefinition
	k *float64
}

func (s combinatorStep) callArgs(ccExpr ir.Expr) []ir.Expr {
	if s.k != nil {
		return []ir.Expr{ir.Lit(ir.Float(*s.k)), ccExpr}
	}
	return []ir.Expr{ccExpr}
}

// unionStep picks the nearer of left/right by copying its entire Context
// into out.
func unionStep() combinatorStep {
	id := entryIdentifier("union_step", hashString("union"))
	body := ir.Block{
		ir.StmtIf{
			Cond: ir.Lt(cc(ir.PropLeft, ir.PropDistance), cc(ir.PropRight, ir.PropDistance)),
			Then: ir.Block{writeCC(cc(ir.PropLeft), ir.PropOut)},
			Else: ir.Block{writeCC(cc(ir.PropRight), ir.PropOut)},
		},
		ccOutput(),
	}
	return combinatorStep{id: id, def: combineFunction(id, body)}
}

// intersectionStep is unionStep with the comparison flipped: picks the
// farther of left/right.
func intersectionStep() combinatorStep {
	id := entryIdentifier("intersection_step", hashString("intersection"))
	body := ir.Block{
		ir.StmtIf{
			Cond: ir.Gt(cc(ir.PropLeft, ir.PropDistance), cc(ir.PropRight, ir.PropDistance)),
			Then: ir.Block{writeCC(cc(ir.PropLeft), ir.PropOut)},
			Else: ir.Block{writeCC(cc(ir.PropRight), ir.PropOut)},
		},
		ccOutput(),
	}
	return combinatorStep{id: id, def: combineFunction(id, body)}
}

// subtractionStep carves right out of left: negate right's distance, then
// keep left wherever it's farther out than the negated right.
func subtractionStep() combinatorStep {
	id := entryIdentifier("subtraction_step", hashString("subtraction"))
	body := ir.Block{
		writeCC(cc(ir.PropRight), ir.PropOut),
		writeCC(Wrap(cc(ir.PropOut, ir.PropDistance)).Neg().Expr, ir.PropOut, ir.PropDistance),
		ir.StmtIf{
			Cond: ir.Gt(cc(ir.PropLeft, ir.PropDistance), cc(ir.PropOut, ir.PropDistance)),
			Then: ir.Block{writeCC(cc(ir.PropLeft), ir.PropOut)},
		},
		ccOutput(),
	}
	return combinatorStep{id: id, def: combineFunction(id, body)}
}

// overColor alpha-composites top over bottom (source-over), where topPath
// and bottomPath each name a COLOR-typed (Vector4 RGBA) field.
func overColor(topPath, bottomPath []ir.PropertyIdentifier) ir.Expr {
	top := func(p ir.PropertyIdentifier) ir.Expr {
		return ir.Read(append(append([]ir.PropertyIdentifier{}, topPath...), p)...)
	}
	bottom := func(p ir.PropertyIdentifier) ir.Expr {
		return ir.Read(append(append([]ir.PropertyIdentifier{}, bottomPath...), p)...)
	}
	alpha := Wrap(top(ir.PropW))
	oneMinusAlpha := Num(1).Sub(alpha)
	comp := func(p ir.PropertyIdentifier) ir.Expr {
		return Wrap(top(p)).Mul(alpha).Add(Wrap(bottom(p)).Mul(oneMinusAlpha)).Expr
	}
	fields := ir.NewPropertyExprMap()
	fields.Set(ir.PropX, comp(ir.PropX))
	fields.Set(ir.PropY, comp(ir.PropY))
	fields.Set(ir.PropZ, comp(ir.PropZ))
	fields.Set(ir.PropW, Wrap(top(ir.PropW)).Add(Wrap(bottom(ir.PropW)).Mul(oneMinusAlpha)).Expr)
	return ir.ExprStructLit{ID: ir.StructVector4, Fields: fields}
}

// overlayStep takes every property from left except COLOR, which is
// composited with left on top of right.
func overlayStep() combinatorStep {
	id := entryIdentifier("overlay_step", hashString("overlay"))
	leftColor := []ir.PropertyIdentifier{ir.PropCombineContext, ir.PropLeft, ir.PropColor}
	rightColor := []ir.PropertyIdentifier{ir.PropCombineContext, ir.PropRight, ir.PropColor}
	body := ir.Block{
		writeCC(cc(ir.PropLeft), ir.PropOut),
		writeCC(overColor(leftColor, rightColor), ir.PropOut, ir.PropColor),
		ccOutput(),
	}
	return combinatorStep{id: id, def: combineFunction(id, body)}
}

// smoothKind selects which of the three smooth blend formulas a smoothStep
// builds.
type smoothKind int

const (
	smoothUnion smoothKind = iota
	smoothIntersection
	smoothSubtraction
)

// smoothStep builds a SmoothUnion/SmoothIntersection/SmoothSubtraction
// step for one property, parameterized by a smoothing factor k threaded in
// as a function argument rather than baked into the body. The step's
// identifier still hashes k, so each distinct k gets its own function.
func smoothStep(kind smoothKind, prop ir.PropertyIdentifier, k float64) combinatorStep {
	name := map[smoothKind]string{smoothUnion: "smooth_union", smoothIntersection: "smooth_intersection", smoothSubtraction: "smooth_subtraction"}[kind]
	id := entryIdentifier(name+"_"+prop.Name, hashCombine(hashString(name), hashString(prop.Name), hashFloat(k)))
	numLocal := ir.NewLocalProperty("smooth_num_" + prop.Name)
	kE := Wrap(ir.Read(ir.PropK))
	leftDist := Wrap(cc(ir.PropLeft, ir.PropDistance))
	rightDist := Wrap(cc(ir.PropRight, ir.PropDistance))

	var numExpr E
	var mixExpr ir.Expr
	var distSign E // sign applied to k*num*(1-num) in the distance touch-up
	switch kind {
	case smoothUnion:
		numExpr = Num(0.5).Add(Num(0.5).Mul(rightDist.Sub(leftDist)).Div(kE)).Clamp(Num(0), Num(1))
		mixExpr = Wrap(cc(ir.PropRight, prop)).Mix(Wrap(cc(ir.PropLeft, prop)), Wrap(ir.Read(numLocal))).Expr
		distSign = Num(-1)
	case smoothIntersection:
		numExpr = Num(0.5).Sub(Num(0.5).Mul(rightDist.Sub(leftDist)).Div(kE)).Clamp(Num(0), Num(1))
		mixExpr = Wrap(cc(ir.PropRight, prop)).Mix(Wrap(cc(ir.PropLeft, prop)), Wrap(ir.Read(numLocal))).Expr
		distSign = Num(1)
	case smoothSubtraction:
		numExpr = Num(0.5).Sub(Num(0.5).Mul(rightDist.Add(leftDist)).Div(kE)).Clamp(Num(0), Num(1))
		mixExpr = Wrap(cc(ir.PropLeft, prop)).Mix(Wrap(cc(ir.PropRight, prop)).Neg(), Wrap(ir.Read(numLocal))).Expr
		distSign = Num(1)
	}

	body := ir.Block{
		ir.StmtBind{Prop: numLocal, Expr: numExpr.Expr},
		writeCC(mixExpr, ir.PropOut, prop),
	}
	if prop == ir.PropDistance {
		touchUp := distSign.Mul(kE).Mul(Wrap(ir.Read(numLocal))).Mul(Num(1).Sub(Wrap(ir.Read(numLocal))))
		body = append(body, writeCC(Wrap(cc(ir.PropOut, ir.PropDistance)).Add(touchUp).Expr, ir.PropOut, ir.PropDistance))
	}
	body = append(body, ccOutput())
	return combinatorStep{id: id, def: combineFunctionK(id, body), k: &k}
}

// NAry folds a list of shapes pairwise through a stack of combinator steps
//. Exactly one of the canonical constructors below (NewUnion,
// NewSmoothUnion,...) should be used to build one; NAry itself is the
// shared machinery.
type NAry struct {
	Shapes []Shape
	Steps []combinatorStep
	kind string // identifies the combinator for Hash/EntryPoint
}

func newNAry(kind string, shapes []Shape, steps []combinatorStep) *NAry {
	if len(shapes) == 0 {
		panic("shape: combinator with no shapes")
	}
	return &NAry{Shapes: shapes, Steps: steps, kind: kind}
}

// NewUnion builds the boolean union of shapes (nearest wins).
func NewUnion(shapes...Shape) *NAry {
	return newNAry("union", shapes, []combinatorStep{unionStep()})
}

// NewIntersection builds the boolean intersection of shapes (farthest wins).
func NewIntersection(shapes...Shape) *NAry {
	return newNAry("intersection", shapes, []combinatorStep{intersectionStep()})
}

// NewSubtraction carves every shape after the first out of the first.
func NewSubtraction(shapes...Shape) *NAry {
	return newNAry("subtraction", shapes, []combinatorStep{subtractionStep()})
}

// NewOverlay alpha-composites COLOR across shapes, left-to-right, keeping
// every other property from the first (left) operand.
func NewOverlay(shapes...Shape) *NAry {
	return newNAry("overlay", shapes, []combinatorStep{overlayStep()})
}

// NewSmoothUnion blends DISTANCE/GRADIENT_2D/UV (or whichever props are
// given) with smoothing factor k, stacking one smooth_union step per prop
// so scalar and vector attributes share the same blend fraction.
func NewSmoothUnion(k float64, props []ir.PropertyIdentifier, shapes...Shape) *NAry {
	return newNAry("smooth_union", shapes, smoothSteps(smoothUnion, k, props))
}

func NewSmoothIntersection(k float64, props []ir.PropertyIdentifier, shapes...Shape) *NAry {
	return newNAry("smooth_intersection", shapes, smoothSteps(smoothIntersection, k, props))
}

func NewSmoothSubtraction(k float64, props []ir.PropertyIdentifier, shapes...Shape) *NAry {
	return newNAry("smooth_subtraction", shapes, smoothSteps(smoothSubtraction, k, props))
}

func smoothSteps(kind smoothKind, k float64, props []ir.PropertyIdentifier) []combinatorStep {
	steps := make([]combinatorStep, len(props))
	for i, p := range props {
		steps[i] = smoothStep(kind, p, k)
	}
	return steps
}

func (n *NAry) Hash() uint64 {
	parts := []uint64{hashString("NAry"), hashString(n.kind)}
	for _, step := range n.Steps {
		parts = append(parts, hashString(step.id.Name))
	}
	for _, s := range n.Shapes {
		parts = append(parts, s.Hash())
	}
	return hashCombine(parts...)
}

func (n *NAry) Domains() ir.SpecializationData {
	d := ir.NewSpecializationData()
	for _, s := range n.Shapes {
		d = d.Union(s.Domains())
	}
	return d
}

func (n *NAry) EntryPoint() ir.FunctionIdentifier { return entryIdentifier(n.kind, n.Hash()) }
func (n *NAry) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (n *NAry) Structs() []ir.StructDefinition { return nil }

func (n *NAry) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	modules := make([]ir.Module, len(n.Shapes))
	for i, s := range n.Shapes {
		modules[i] = mustModule(s, spec)
	}

	var funcs []ir.FunctionDefinition
	for _, step := range n.Steps {
		funcs = append(funcs, step.def)
	}
	for _, m := range modules {
		funcs = append(funcs, m.FunctionDefinitions...)
	}

	accLocal := ir.NewLocalProperty("combine_acc")
	body := ir.Block{ir.StmtBind{Prop: accLocal, Expr: modules[0].Call(ctx())}}

	if len(modules) > 1 {
		ccLocal := ir.NewLocalProperty("combine_cc")
		for i := 1; i < len(modules); i++ {
			fields := ir.NewPropertyExprMap()
			fields.Set(ir.PropLeft, ir.Read(accLocal))
			fields.Set(ir.PropRight, modules[i].Call(ctx()))
			fields.Set(ir.PropOut, ir.Read(accLocal))
			body = append(body, ir.StmtBind{Prop: ccLocal, Expr: ir.ExprStructLit{ID: ir.StructCombineContext, Fields: fields}})
			for _, step := range n.Steps {
				body = append(body, ir.StmtBind{Prop: ccLocal, Expr: ir.ExprCall{Function: step.id, Args: step.callArgs(ir.Read(ccLocal))}})
			}
			body = append(body, ir.StmtBind{Prop: accLocal, Expr: ir.Read(ccLocal, ir.PropOut)})
		}
	}

	body = append(body, ir.StmtOutput{Expr: ir.Read(accLocal)})
	funcs = append(funcs, entryFunction(entry, body))
	return funcs
}
