package ir

// FuncTable indexes FunctionDefinitions by identifier key for type
// resolution and call dispatch.
type FuncTable map[string]FunctionDefinition

// NewFuncTable builds a FuncTable from a Module's function definitions.
func NewFuncTable(m Module) FuncTable {
	t := make(FuncTable, len(m.FunctionDefinitions))
	for _, f := range m.FunctionDefinitions {
		t[f.ID.key()] = f
	}
	return t
}

// Locals maps a PropertyIdentifier key to the Type of a local binding
// introduced by StmtBind, used while resolving the type of a function body.
type Locals map[string]Type

// ResolveExprType computes the Type of e against funcs (for Call
// resolution) and locals (for bindings introduced earlier in the same
// block). Every leaf property read resolves its type from the global
// registry: a property's type is the same wherever it appears, so
// a Read's type is simply the registered type of its final path segment,
// falling back to locals only for a bare single-segment path that names a
// binding rather than a registered property.
func ResolveExprType(funcs FuncTable, locals Locals, e Expr) (Type, error) {
	switch t := e.(type) {
	case ExprLiteral:
		return TypeOf(t.Value), nil

	case ExprRead:
		if len(t.Path) == 0 {
			return nil, missingField(t.Path)
		}
		last := t.Path[len(t.Path)-1]
		if p, ok := LookupProperty(last); ok {
			return p.Type, nil
		}
		if len(t.Path) == 1 {
			if ty, ok := locals[last.key()]; ok {
				return ty, nil
			}
		}
		return nil, missingField(t.Path)

	case ExprStructLit:
		return StructTypeRef{Struct: t.ID}, nil

	case ExprCall:
		fn, ok := funcs[t.Function.key()]
		if !ok {
			return nil, unknownFunction(t.Function)
		}
		if len(fn.Inputs) != len(t.Args) {
			return nil, arityMismatch(t.Function, len(fn.Inputs), len(t.Args))
		}
		p, ok := LookupProperty(fn.Output)
		if !ok {
			return nil, missingField([]PropertyIdentifier{fn.Output})
		}
		return p.Type, nil

	case ExprUnary:
		xt, err := ResolveExprType(funcs, locals, t.X)
		if err != nil {
			return nil, err
		}
		if t.Op == OpLength {
			return NumberType{Kind: NumberFloat}, nil
		}
		return xt, nil

	case ExprBinary:
		at, err := ResolveExprType(funcs, locals, t.A)
		if err != nil {
			return nil, err
		}
		bt, err := ResolveExprType(funcs, locals, t.B)
		if err != nil {
			return nil, err
		}
		switch t.Op {
		case OpLt, OpGt, OpEq, OpNeq, OpAnd, OpOr:
			return BooleanType{}, nil
		case OpDot:
			return NumberType{Kind: NumberFloat}, nil
		default:
			// Mixed Number/Struct arithmetic broadcasts the number across
			// the struct's members; the struct type wins.
			if _, ok := at.(StructTypeRef); ok {
				return at, nil
			}
			if _, ok := bt.(StructTypeRef); ok {
				return bt, nil
			}
			return at, nil
		}

	case ExprMix:
		return ResolveExprType(funcs, locals, t.A)

	case ExprMathCall:
		switch t.Fn {
		case MathSin, MathCos, MathTan, MathAsin, MathAcos, MathAtan, MathAtan2:
			return NumberType{Kind: NumberFloat}, nil
		default:
			if len(t.Args) == 0 {
				return nil, invalidSpec("math call with no arguments")
			}
			return ResolveExprType(funcs, locals, t.Args[0])
		}

	default:
		return nil, invalidSpec("unresolvable expression")
	}
}
