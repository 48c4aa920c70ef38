package ir

// Validate type-checks every function body in m: every StmtIf condition is
// Boolean, every StmtWrite target is mutable and type-compatible with its
// expression, every StmtOutput's expression matches the function's declared
// output type, and every function reaches at least one StmtOutput. Call
// after Finalize, which already checks closure; Validate assumes every
// FunctionIdentifier/StructIdentifier it walks resolves.
func Validate(m Module) error {
	funcs := NewFuncTable(m)
	for _, f := range m.FunctionDefinitions {
		if err := validateFunction(funcs, f); err != nil {
			return err
		}
	}
	return nil
}

func validateFunction(funcs FuncTable, f FunctionDefinition) error {
	locals := Locals{}
	mutable := map[string]bool{}
	for _, in := range f.Inputs {
		if p, ok := LookupProperty(in.Prop); ok {
			locals[in.Prop.key()] = p.Type
		}
		mutable[in.Prop.key()] = in.Mutable
	}

	outputSeen := false
	var walkBlock func(Block) error
	walkBlock = func(b Block) error {
		for _, s := range b {
			switch t := s.(type) {
			case StmtBlock:
				if err := walkBlock(t.Block); err != nil {
					return err
				}

			case StmtBind:
				ty, err := ResolveExprType(funcs, locals, t.Expr)
				if err != nil {
					return err
				}
				locals[t.Prop.key()] = ty
				mutable[t.Prop.key()] = true

			case StmtWrite:
				if len(t.Path) == 0 {
					return missingField(t.Path)
				}
				head := t.Path[0]
				if !mutable[head.key()] {
					return immutable(t.Path)
				}
				exprType, err := ResolveExprType(funcs, locals, t.Expr)
				if err != nil {
					return err
				}
				last := t.Path[len(t.Path)-1]
				if p, ok := LookupProperty(last); ok {
					if !SameType(p.Type, exprType) && !broadcastCompatible(p.Type, exprType) {
						return typeMismatch("write "+last.Name, p.Type, exprType)
					}
				}

			case StmtIf:
				condType, err := ResolveExprType(funcs, locals, t.Cond)
				if err != nil {
					return err
				}
				if _, ok := condType.(BooleanType); !ok {
					return typeMismatch("if condition", BooleanType{}, condType)
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
				exprType, err := ResolveExprType(funcs, locals, t.Expr)
				if err != nil {
					return err
				}
				if p, ok := LookupProperty(f.Output); ok {
					if !SameType(p.Type, exprType) && !broadcastCompatible(p.Type, exprType) {
						return typeMismatch("output "+f.ID.Name, p.Type, exprType)
					}
				}
				outputSeen = true
			}
		}
		return nil
	}

	if err := walkBlock(f.Block); err != nil {
		return err
	}
	if !outputSeen {
		return noOutput(f.ID.Name)
	}
	return nil
}

// broadcastCompatible reports whether assigning a value of got into a
// target of type want is legal via Number-across-Struct broadcast:
// a bare Number may be written into any Struct field-by-field.
func broadcastCompatible(want, got Type) bool {
	if _, ok := want.(StructTypeRef); ok {
		if _, ok := got.(NumberType); ok {
			return true
		}
	}
	return false
}
