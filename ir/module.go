package ir

import (
	"hash/fnv"
	"sort"
)

// FunctionInput is one (property, mutable) parameter of a FunctionDefinition.
type FunctionInput struct {
	Prop PropertyIdentifier
	Mutable bool
}

// FunctionDefinition is a compiled function: a named, typed parameter list,
// an output property (whose registered Type names the return type) and a
// Block body.
type FunctionDefinition struct {
	ID FunctionIdentifier
	Public bool
	Inputs []FunctionInput
	Output PropertyIdentifier
	Block Block
}

// FieldDefinition is one field of a StructDefinition.
type FieldDefinition struct {
	ID PropertyIdentifier
	Public bool
}

// StructDefinition is a named, ordered set of fields. Field order is
// significant for iteration and for any eventual codegen.
type StructDefinition struct {
	ID StructIdentifier
	Public bool
	Fields []FieldDefinition
}

// Module is a closed set of function/struct definitions plus an entry
// point. Modules are values: built by composing shape sub-modules,
// then finalized.
type Module struct {
	StructDefinitions []StructDefinition
	FunctionDefinitions []FunctionDefinition
	EntryPoint FunctionIdentifier
	// Arguments are extra fixed expressions appended after the input
	// Context expression at call sites (e.g. a combinator's smoothing
	// factor k). Default nil means "pass only the input".
	Arguments []Expr
	Hash uint64
}

// Call builds the ExprCall expression for invoking this module's entry
// point with input as the first (Context) argument: default behavior
// passes [input]; Arguments supplies any extra fixed parameters a
// combinator threads alongside it.
func (m Module) Call(input Expr) Expr {
	args := make([]Expr, 0, 1+len(m.Arguments))
	args = append(args, input)
	args = append(args, m.Arguments...)
	return ExprCall{Function: m.EntryPoint, Args: args}
}

// Concat merges m with other: struct/function definitions are unioned
// (deduplicated by identifier), and other's entry point and arguments win.
// Neither operand is mutated.
func (m Module) Concat(other Module) Module {
	out := Module{
		EntryPoint: other.EntryPoint,
		Arguments: other.Arguments,
	}
	seenStructs := make(map[string]bool)
	for _, s := range m.StructDefinitions {
		if !seenStructs[s.ID.key()] {
			seenStructs[s.ID.key()] = true
			out.StructDefinitions = append(out.StructDefinitions, s)
		}
	}
	for _, s := range other.StructDefinitions {
		if !seenStructs[s.ID.key()] {
			seenStructs[s.ID.key()] = true
			out.StructDefinitions = append(out.StructDefinitions, s)
		}
	}
	seenFuncs := make(map[string]bool)
	for _, f := range m.FunctionDefinitions {
		if !seenFuncs[f.ID.key()] {
			seenFuncs[f.ID.key()] = true
			out.FunctionDefinitions = append(out.FunctionDefinitions, f)
		}
	}
	for _, f := range other.FunctionDefinitions {
		if !seenFuncs[f.ID.key()] {
			seenFuncs[f.ID.key()] = true
			out.FunctionDefinitions = append(out.FunctionDefinitions, f)
		}
	}
	out.Hash = hashModule(out)
	return out
}

// NewModule builds an unfinalized Module from its parts.
func NewModule(entryPoint FunctionIdentifier, funcs []FunctionDefinition, structs []StructDefinition, args []Expr) Module {
	m := Module{
		StructDefinitions: structs,
		FunctionDefinitions: funcs,
		EntryPoint: entryPoint,
		Arguments: args,
	}
	m.Hash = hashModule(m)
	return m
}

func hashModule(m Module) uint64 {
	h := fnv.New64a()
	write := func(s string) { _, _ = h.Write([]byte(s)) }
	write(m.EntryPoint.key())
	ids := make([]string, 0, len(m.FunctionDefinitions)+len(m.StructDefinitions))
	for _, f := range m.FunctionDefinitions {
		ids = append(ids, "f:"+f.ID.key())
	}
	for _, s := range m.StructDefinitions {
		ids = append(ids, "s:"+s.ID.key())
	}
	sort.Strings(ids)
	for _, id := range ids {
		write(id)
	}
	return h.Sum64()
}

// Finalize deduplicates definitions, synthesizes the Context struct
// definition from every property referenced in the module's function
// bodies (ordered by first appearance), prepends the builtin
// Vector2/3/4 / Matrix2/3/4 structs, and checks module closure: every
// referenced FunctionIdentifier/StructIdentifier must resolve to a
// definition.
func Finalize(m Module) (Module, error) {
	funcByID := make(map[string]FunctionDefinition, len(m.FunctionDefinitions))
	var funcs []FunctionDefinition
	for _, f := range m.FunctionDefinitions {
		k := f.ID.key()
		if _, ok := funcByID[k]; ok {
			continue
		}
		funcByID[k] = f
		funcs = append(funcs, f)
	}

	structByID := make(map[string]StructDefinition, len(m.StructDefinitions))
	var structs []StructDefinition
	for _, s := range m.StructDefinitions {
		k := s.ID.key()
		if _, ok := structByID[k]; ok {
			continue
		}
		structByID[k] = s
		structs = append(structs, s)
	}

	ctxFields, ctxOrder := collectContextFields(funcs)
	ctxStruct := StructDefinition{ID: StructContext, Public: true}
	for _, id := range ctxOrder {
		ctxStruct.Fields = append(ctxStruct.Fields, FieldDefinition{ID: id, Public: true})
	}
	_ = ctxFields
	if existing, ok := structByID[StructContext.key()]; ok {
		// A shape may have already contributed a partial Context struct
		// (e.g. from a nested module.Concat); the synthesized one, which
		// observed every reference, wins.
		_ = existing
	}
	structByID[StructContext.key()] = ctxStruct

	builtins := BuiltinStructs()
	final := make([]StructDefinition, 0, len(builtins)+len(structs)+1)
	seen := make(map[string]bool)
	for _, s := range builtins {
		final = append(final, s)
		seen[s.ID.key()] = true
	}
	final = append(final, ctxStruct)
	seen[ctxStruct.ID.key()] = true
	for _, s := range structs {
		if s.ID.Equal(StructContext) || seen[s.ID.key()] {
			continue
		}
		final = append(final, s)
		seen[s.ID.key()] = true
	}

	out := Module{
		StructDefinitions: final,
		FunctionDefinitions: funcs,
		EntryPoint: m.EntryPoint,
		Arguments: m.Arguments,
	}
	out.Hash = hashModule(out)

	if err := validateClosure(out); err != nil {
		return Module{}, err
	}
	return out, nil
}

// collectContextFields walks every function body for ExprRead/StmtWrite
// paths rooted at CONTEXT, returning the set and first-appearance order of
// referenced property identifiers.
func collectContextFields(funcs []FunctionDefinition) (map[string]PropertyIdentifier, []PropertyIdentifier) {
	seen := make(map[string]PropertyIdentifier)
	var order []PropertyIdentifier
	add := func(p PropertyIdentifier) {
		if _, ok := seen[p.key()]; !ok {
			seen[p.key()] = p
			order = append(order, p)
		}
	}
	var walkExpr func(Expr)
	var walkBlock func(Block)
	walkExpr = func(e Expr) {
		switch t := e.(type) {
		case ExprRead:
			if len(t.Path) >= 2 && t.Path[0].Equal(PropContext) {
				add(t.Path[1])
			}
		case ExprStructLit:
			for _, k := range t.Fields.Keys() {
				v, _ := t.Fields.Get(k)
				walkExpr(v)
			}
		case ExprCall:
			for _, a := range t.Args {
				walkExpr(a)
			}
		case ExprUnary:
			walkExpr(t.X)
		case ExprBinary:
			walkExpr(t.A)
			walkExpr(t.B)
		case ExprMix:
			walkExpr(t.A)
			walkExpr(t.B)
			walkExpr(t.T)
		case ExprMathCall:
			for _, a := range t.Args {
				walkExpr(a)
			}
		}
	}
	walkBlock = func(b Block) {
		for _, s := range b {
			switch t := s.(type) {
			case StmtBlock:
				walkBlock(t.Block)
			case StmtBind:
				walkExpr(t.Expr)
			case StmtWrite:
				if len(t.Path) >= 2 && t.Path[0].Equal(PropContext) {
					add(t.Path[1])
				}
				walkExpr(t.Expr)
			case StmtIf:
				walkExpr(t.Cond)
				walkBlock(t.Then)
				walkBlock(t.Else)
			case StmtLoop:
				walkBlock(t.Body)
			case StmtOutput:
				walkExpr(t.Expr)
			}
		}
	}
	for _, f := range funcs {
		for _, in := range f.Inputs {
			if in.Prop.Equal(PropContext) {
				continue
			}
		}
		walkBlock(f.Block)
	}
	return seen, order
}

// validateClosure implements invariant 2 (module closure): every
// FunctionIdentifier/StructIdentifier reachable from the entry point
// resolves to a definition.
func validateClosure(m Module) error {
	funcByID := make(map[string]FunctionDefinition, len(m.FunctionDefinitions))
	for _, f := range m.FunctionDefinitions {
		funcByID[f.ID.key()] = f
	}
	structByID := make(map[string]StructDefinition, len(m.StructDefinitions))
	for _, s := range m.StructDefinitions {
		structByID[s.ID.key()] = s
	}
	if _, ok := funcByID[m.EntryPoint.key()]; !ok {
		return unknownFunction(m.EntryPoint)
	}

	var walkExpr func(Expr) error
	var walkBlock func(Block) error
	walkExpr = func(e Expr) error {
		switch t := e.(type) {
		case ExprCall:
			if _, ok := funcByID[t.Function.key()]; !ok {
				return unknownFunction(t.Function)
			}
			for _, a := range t.Args {
				if err := walkExpr(a); err != nil {
					return err
				}
			}
		case ExprStructLit:
			if _, ok := structByID[t.ID.key()]; !ok {
				return invalidSpec("struct " + t.ID.Name + " has no definition")
			}
			for _, k := range t.Fields.Keys() {
				v, _ := t.Fields.Get(k)
				if err := walkExpr(v); err != nil {
					return err
				}
			}
		case ExprUnary:
			return walkExpr(t.X)
		case ExprBinary:
			if err := walkExpr(t.A); err != nil {
				return err
			}
			return walkExpr(t.B)
		case ExprMix:
			if err := walkExpr(t.A); err != nil {
				return err
			}
			if err := walkExpr(t.B); err != nil {
				return err
			}
			return walkExpr(t.T)
		case ExprMathCall:
			for _, a := range t.Args {
				if err := walkExpr(a); err != nil {
					return err
				}
			}
		}
		return nil
	}
	walkBlock = func(b Block) error {
		for _, s := range b {
			switch t := s.(type) {
			case StmtBlock:
				if err := walkBlock(t.Block); err != nil {
					return err
				}
			case StmtBind:
				if err := walkExpr(t.Expr); err != nil {
					return err
				}
			case StmtWrite:
				if err := walkExpr(t.Expr); err != nil {
					return err
				}
			case StmtIf:
				if err := walkExpr(t.Cond); err != nil {
					return err
				}
				if err := walkBlock(t.Then); err != nil {
					return err
				}
				if err := walkBlock(t.Else); err != nil {
					return err
				}
			case StmtLoop:
				if err := walkBlock(t.Body); err != nil {
					return err
				}
			case StmtOutput:
				if err := walkExpr(t.Expr); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, f := range m.FunctionDefinitions {
		if err := walkBlock(f.Block); err != nil {
			return err
		}
	}
	return nil
}
