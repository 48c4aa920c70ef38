package shape

import "github.com/elysian-sdf/elysian/ir"

// Shape is the polymorphic node contract every primitive, modifier and
// combinator implements. Kept flat: no inheritance, no shared base
// struct beyond what Go's embedding gives for free.
type Shape interface {
	// Hash returns a stable structural hash of this shape's kind,
	// parameters and children, used for value-identity deduplication.
	Hash() uint64
	// Domains returns the set of properties this shape can populate.
	Domains() ir.SpecializationData
	// EntryPoint returns a stable base identifier, suffixed by
	// specialization at Module-build time.
	EntryPoint() ir.FunctionIdentifier
	// Arguments returns the expressions passed at a call site of this
	// shape's entry point, with input always first.
	Arguments(input ir.Expr) []ir.Expr
	// Functions returns the FunctionDefinitions this shape contributes,
	// including those of any children, for the already-specialized
	// entry identifier.
	Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition
	// Structs returns any additional struct definitions this shape
	// requires beyond the builtins Finalize always prepends.
	Structs() []ir.StructDefinition
}

// Module compiles s against spec: filters spec to s's domain, specializes
// the entry identifier, collects functions/structs (including children's),
// and finalizes + validates the result.
func Module(s Shape, spec ir.SpecializationData) (ir.Module, error) {
	filtered := spec.Intersect(s.Domains())
	entry := ir.Specialize(s.EntryPoint(), filtered)
	funcs := s.Functions(filtered, entry)
	structs := s.Structs()

	allArgs := s.Arguments(ir.Read(ir.PropContext))
	var extra []ir.Expr
	if len(allArgs) > 1 {
		extra = allArgs[1:]
	}

	m := ir.NewModule(entry, funcs, structs, extra)
	final, err := ir.Finalize(m)
	if err != nil {
		return ir.Module{}, err
	}
	if err := ir.Validate(final); err != nil {
		return ir.Module{}, err
	}
	return final, nil
}

// entryFunction builds the common FunctionDefinition shape: a single
// mutable CONTEXT parameter, output CONTEXT, given body.
func entryFunction(id ir.FunctionIdentifier, body ir.Block) ir.FunctionDefinition {
	return ir.FunctionDefinition{
		ID: id,
		Public: true,
		Inputs: []ir.FunctionInput{{Prop: ir.PropContext, Mutable: true}},
		Output: ir.PropContext,
		Block: body,
	}
}

// combineFunction builds the FunctionDefinition shape for one combinator
// step: a single mutable COMBINE_CONTEXT parameter, output COMBINE_CONTEXT.
func combineFunction(id ir.FunctionIdentifier, body ir.Block) ir.FunctionDefinition {
	return ir.FunctionDefinition{
		ID: id,
		Public: true,
		Inputs: []ir.FunctionInput{{Prop: ir.PropCombineContext, Mutable: true}},
		Output: ir.PropCombineContext,
		Block: body,
	}
}

// ctx builds a path expression rooted at CONTEXT.
func ctx(props...ir.PropertyIdentifier) ir.Expr {
	path := append([]ir.PropertyIdentifier{ir.PropContext}, props...)
	return ir.ExprRead{Path: path}
}

// writeCtx builds a StmtWrite into a CONTEXT sub-path.
func writeCtx(expr ir.Expr, props...ir.PropertyIdentifier) ir.Stmt {
	path := append([]ir.PropertyIdentifier{ir.PropContext}, props...)
	return ir.StmtWrite{Path: path, Expr: expr}
}

// output returns an Output statement returning the whole CONTEXT.
func output() ir.Stmt {
	return ir.StmtOutput{Expr: ctx()}
}

// cc builds a path expression rooted at COMBINE_CONTEXT.
func cc(props...ir.PropertyIdentifier) ir.Expr {
	path := append([]ir.PropertyIdentifier{ir.PropCombineContext}, props...)
	return ir.ExprRead{Path: path}
}

// writeCC builds a StmtWrite into a COMBINE_CONTEXT sub-path.
func writeCC(expr ir.Expr, props...ir.PropertyIdentifier) ir.Stmt {
	path := append([]ir.PropertyIdentifier{ir.PropCombineContext}, props...)
	return ir.StmtWrite{Path: path, Expr: expr}
}

// ccOutput returns an Output statement returning the whole COMBINE_CONTEXT.
func ccOutput() ir.Stmt {
	return ir.StmtOutput{Expr: cc()}
}

// combineFunctionK builds a combinator step's FunctionDefinition shape: an
// immutable K parameter followed by a mutable COMBINE_CONTEXT parameter,
// output COMBINE_CONTEXT.
func combineFunctionK(id ir.FunctionIdentifier, body ir.Block) ir.FunctionDefinition {
	return ir.FunctionDefinition{
		ID: id,
		Public: false,
		Inputs: []ir.FunctionInput{
			{Prop: ir.PropK, Mutable: false},
			{Prop: ir.PropCombineContext, Mutable: true},
		},
		Output: ir.PropCombineContext,
		Block: body,
	}
}

// mustModule compiles a child shape's module and panics on failure. A
// modifier/combinator only ever calls this with a spec already filtered to
// its own domain, so failure here means the shape tree itself is malformed
// (e.g. a child declares a domain its own functions don't honor) - a
// programmer error, not a runtime condition callers should recover from.
func mustModule(s Shape, spec ir.SpecializationData) ir.Module {
	m, err := Module(s, spec)
	if err != nil {
		panic(err)
	}
	return m
}

// hasAny reports whether spec requests any of props.
func hasAny(spec ir.SpecializationData, props...ir.PropertyIdentifier) bool {
	for _, p := range props {
		if spec.Has(p) {
			return true
		}
	}
	return false
}
