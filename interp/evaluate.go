package interp

import "github.com/elysian-sdf/elysian/ir"

// Evaluator consumes a finalized Module and an initial Context value and
// produces the entry function's output.
// Dispatch composes several; Interpreter is the universal reference one.
type Evaluator interface {
	Evaluate(module ir.Module, context ir.Value) (ir.Value, error)
}

// Interpreter is the reference tree-walking Evaluator. It never
// reports UnsupportedFeatureError: the IR's operator set is closed, so
// every well-formed Module is executable.
type Interpreter struct{}

func (Interpreter) Evaluate(module ir.Module, context ir.Value) (ir.Value, error) {
	return evaluateModule(module, context)
}

func evaluateModule(m ir.Module, initial ir.Value) (ir.Value, error) {
	funcs := indexFunctions(m.FunctionDefinitions)
	entry, ok := funcs[m.EntryPoint.Name]
	if !ok {
		return nil, unknownFunction(m.EntryPoint)
	}
	args := append([]ir.Value{initial}, literalArgs(m.Arguments)...)
	return callFunction(funcs, entry, args)
}

// literalArgs evaluates a Module's fixed extra call arguments (e.g. a
// combinator's smoothing factor) against an empty frame; these are always
// literal or closed expressions, never referencing CONTEXT.
func literalArgs(args []ir.Expr) []ir.Value {
	if len(args) == 0 {
		return nil
	}
	out := make([]ir.Value, len(args))
	empty := newFrame()
	for i, a := range args {
		v, err := evaluateExpr(nil, empty, a)
		if err != nil {
			// Module.Arguments are always literals supplied at shape
			// construction time; a failure here means the shape tree
			// itself is malformed, mirroring mustModule's panic policy.
			panic(err)
		}
		out[i] = v
	}
	return out
}

func indexFunctions(defs []ir.FunctionDefinition) map[string]ir.FunctionDefinition {
	out := make(map[string]ir.FunctionDefinition, len(defs))
	for _, d := range defs {
		out[d.ID.Name] = d
	}
	return out
}

func callFunction(funcs map[string]ir.FunctionDefinition, fn ir.FunctionDefinition, args []ir.Value) (ir.Value, error) {
	if len(args) != len(fn.Inputs) {
		return nil, arityMismatch(fn.ID, len(fn.Inputs), len(args))
	}
	f := newFrame()
	for i, in := range fn.Inputs {
		f.bind(in.Prop, args[i], in.Mutable)
	}
	if err := evaluateBlock(funcs, f, fn.Block); err != nil {
		return nil, err
	}
	if !f.done {
		return nil, noOutput(fn.ID.Name)
	}
	return f.output, nil
}

// evaluateBlock runs stmts in order, stopping early once the frame records
// an Output (f.done) or a Break (f.broke) bubbling out of a nested block.
func evaluateBlock(funcs map[string]ir.FunctionDefinition, f *frame, block ir.Block) error {
	for _, stmt := range block {
		if err := evaluateStmt(funcs, f, stmt); err != nil {
			return err
		}
		if f.done || f.broke {
			return nil
		}
	}
	return nil
}

func evaluateStmt(funcs map[string]ir.FunctionDefinition, f *frame, stmt ir.Stmt) error {
	switch t := stmt.(type) {
	case ir.StmtBlock:
		return evaluateBlock(funcs, f, t.Block)

	case ir.StmtBind:
		v, err := evaluateExpr(funcs, f, t.Expr)
		if err != nil {
			return err
		}
		f.bind(t.Prop, v, true)
		return nil

	case ir.StmtWrite:
		v, err := evaluateExpr(funcs, f, t.Expr)
		if err != nil {
			return err
		}
		return f.write(t.Path, v)

	case ir.StmtIf:
		cond, err := evaluateExpr(funcs, f, t.Cond)
		if err != nil {
			return err
		}
		b, err := ir.AsBool(cond)
		if err != nil {
			return typeMismatch("if condition")
		}
		if b {
			return evaluateBlock(funcs, f, t.Then)
		}
		if t.Else != nil {
			return evaluateBlock(funcs, f, t.Else)
		}
		return nil

	case ir.StmtLoop:
		for {
			if err := evaluateBlock(funcs, f, t.Body); err != nil {
				return err
			}
			if f.done {
				return nil
			}
			if f.broke {
				f.broke = false
				return nil
			}
		}

	case ir.StmtBreak:
		f.broke = true
		return nil

	case ir.StmtOutput:
		v, err := evaluateExpr(funcs, f, t.Expr)
		if err != nil {
			return err
		}
		f.output = v
		f.done = true
		return nil
	}
	return typeMismatch("unknown statement")
}

func evaluateExpr(funcs map[string]ir.FunctionDefinition, f *frame, expr ir.Expr) (ir.Value, error) {
	switch t := expr.(type) {
	case ir.ExprLiteral:
		return t.Value, nil

	case ir.ExprRead:
		return f.read(t.Path)

	case ir.ExprStructLit:
		members := ir.NewPropertyValueMap()
		for _, k := range t.Fields.Keys() {
			e, _ := t.Fields.Get(k)
			v, err := evaluateExpr(funcs, f, e)
			if err != nil {
				return nil, err
			}
			members.Set(k, v)
		}
		return ir.StructValue{ID: t.ID, Members: members}, nil

	case ir.ExprCall:
		callee, ok := funcs[t.Function.Name]
		if !ok {
			return nil, unknownFunction(t.Function)
		}
		args := make([]ir.Value, len(t.Args))
		for i, a := range t.Args {
			v, err := evaluateExpr(funcs, f, a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return callFunction(funcs, callee, args)

	case ir.ExprUnary:
		return evaluateUnary(funcs, f, t)

	case ir.ExprBinary:
		return evaluateBinary(funcs, f, t)

	case ir.ExprMix:
		a, err := evaluateExpr(funcs, f, t.A)
		if err != nil {
			return nil, err
		}
		b, err := evaluateExpr(funcs, f, t.B)
		if err != nil {
			return nil, err
		}
		tv, err := evaluateExpr(funcs, f, t.T)
		if err != nil {
			return nil, err
		}
		return ir.MixV(a, b, tv)

	case ir.ExprMathCall:
		return evaluateMath(funcs, f, t)
	}
	return nil, typeMismatch("unknown expression")
}

func evaluateUnary(funcs map[string]ir.FunctionDefinition, f *frame, t ir.ExprUnary) (ir.Value, error) {
	x, err := evaluateExpr(funcs, f, t.X)
	if err != nil {
		return nil, err
	}
	switch t.Op {
	case ir.OpNeg:
		return ir.NegV(x)
	case ir.OpAbs:
		return ir.AbsV(x)
	case ir.OpSign:
		return ir.SignV(x)
	case ir.OpLength:
		return ir.LengthV(x)
	case ir.OpNormalize:
		return ir.NormalizeV(x)
	}
	return nil, typeMismatch("unary")
}

func evaluateBinary(funcs map[string]ir.FunctionDefinition, f *frame, t ir.ExprBinary) (ir.Value, error) {
	a, err := evaluateExpr(funcs, f, t.A)
	if err != nil {
		return nil, err
	}
	b, err := evaluateExpr(funcs, f, t.B)
	if err != nil {
		return nil, err
	}
	switch t.Op {
	case ir.OpAdd:
		return ir.AddV(a, b)
	case ir.OpSub:
		return ir.SubV(a, b)
	case ir.OpMul:
		return ir.MulV(a, b)
	case ir.OpDiv:
		return ir.DivV(a, b)
	case ir.OpLt:
		return ir.LtV(a, b)
	case ir.OpGt:
		return ir.GtV(a, b)
	case ir.OpMin:
		return ir.MinV(a, b)
	case ir.OpMax:
		return ir.MaxV(a, b)
	case ir.OpDot:
		return ir.DotV(a, b)
	case ir.OpEq:
		return ir.EqV(a, b)
	case ir.OpNeq:
		return ir.NeqV(a, b)
	case ir.OpAnd:
		return ir.AndV(a, b)
	case ir.OpOr:
		return ir.OrV(a, b)
	}
	return nil, typeMismatch("binary")
}

func evaluateMath(funcs map[string]ir.FunctionDefinition, f *frame, t ir.ExprMathCall) (ir.Value, error) {
	args := make([]ir.Value, len(t.Args))
	for i, a := range t.Args {
		v, err := evaluateExpr(funcs, f, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	switch t.Fn {
	case ir.MathClamp:
		if len(args) != 3 {
			return nil, typeMismatch("clamp")
		}
		return ir.ClampV(args[0], args[1], args[2])
	case ir.MathMod:
		if len(args) != 2 {
			return nil, typeMismatch("mod")
		}
		return ir.ModV(args[0], args[1])
	case ir.MathRound:
		if len(args) != 1 {
			return nil, typeMismatch("round")
		}
		return ir.RoundV(args[0])
	case ir.MathSin:
		return ir.SinV(args[0])
	case ir.MathCos:
		return ir.CosV(args[0])
	case ir.MathTan:
		return ir.TanV(args[0])
	case ir.MathAsin:
		return ir.AsinV(args[0])
	case ir.MathAcos:
		return ir.AcosV(args[0])
	case ir.MathAtan:
		return ir.AtanV(args[0])
	case ir.MathAtan2:
		if len(args) != 2 {
			return nil, typeMismatch("atan2")
		}
		return ir.Atan2V(args[0], args[1])
	}
	return nil, typeMismatch("math")
}
