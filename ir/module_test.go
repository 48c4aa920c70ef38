package ir

import "testing"

func TestModule_CallBuildsContextPlusArguments(t *testing.T) {
	entry := NewFunctionIdentifier("smoothUnion")
	m := Module{EntryPoint: entry, Arguments: []Expr{Read(PropK)}}
	call := m.Call(Read(PropContext)).(ExprCall)
	if !call.Function.Equal(entry) {
		t.Errorf("expected call to target the entry point")
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected [input, k], got %d args", len(call.Args))
	}
}

func TestModule_FinalizeSynthesizesContextStruct(t *testing.T) {
	entry := NewFunctionIdentifier("useDistance")
	fn := FunctionDefinition{
		ID: entry,
		Output: PropDistance,
		Block: Block{
			StmtOutput{Expr: Read(PropContext, PropDistance)},
		},
	}
	m := NewModule(entry, []FunctionDefinition{fn}, nil, nil)
	out, err := Finalize(m)
	if err != nil {
		t.Fatal(err)
	}
	var ctx *StructDefinition
	for i := range out.StructDefinitions {
		if out.StructDefinitions[i].ID.Equal(StructContext) {
			ctx = &out.StructDefinitions[i]
		}
	}
	if ctx == nil {
		t.Fatal("expected a synthesized Context struct")
	}
	found := false
	for _, f := range ctx.Fields {
		if f.ID.Equal(PropDistance) {
			found = true
		}
	}
	if !found {
		t.Error("expected Context struct to include DISTANCE, the only referenced field")
	}
}

func TestModule_FinalizePrependsBuiltinStructs(t *testing.T) {
	entry := NewFunctionIdentifier("trivial")
	fn := FunctionDefinition{ID: entry, Output: PropDistance, Block: Block{StmtOutput{Expr: Lit(Float(1))}}}
	out, err := Finalize(NewModule(entry, []FunctionDefinition{fn}, nil, nil))
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, s := range out.StructDefinitions {
		names[s.ID.Name] = true
	}
	for _, want := range []string{"Vector2", "Vector3", "Vector4", "Matrix2", "Matrix3", "Matrix4"} {
		if !names[want] {
			t.Errorf("expected builtin struct %s to be present", want)
		}
	}
}

func TestModule_FinalizeFailsOnUnresolvedCall(t *testing.T) {
	entry := NewFunctionIdentifier("callsGhost")
	ghost := NewFunctionIdentifier("ghost")
	fn := FunctionDefinition{
		ID: entry,
		Output: PropDistance,
		Block: Block{
			StmtOutput{Expr: ExprCall{Function: ghost, Args: []Expr{Lit(Float(1))}}},
		},
	}
	_, err := Finalize(NewModule(entry, []FunctionDefinition{fn}, nil, nil))
	if err == nil {
		t.Fatal("expected closure validation to reject a call to an undefined function")
	}
}

func TestModule_ConcatDedupesDefinitions(t *testing.T) {
	shared := FunctionDefinition{ID: NewFunctionIdentifier("shared"), Output: PropDistance, Block: Block{StmtOutput{Expr: Lit(Float(0))}}}
	onlyA := FunctionDefinition{ID: NewFunctionIdentifier("onlyA"), Output: PropDistance, Block: Block{StmtOutput{Expr: Lit(Float(0))}}}
	onlyB := FunctionDefinition{ID: NewFunctionIdentifier("onlyB"), Output: PropDistance, Block: Block{StmtOutput{Expr: Lit(Float(0))}}}

	a := NewModule(shared.ID, []FunctionDefinition{shared, onlyA}, nil, nil)
	b := NewModule(onlyB.ID, []FunctionDefinition{shared, onlyB}, nil, nil)

	out := a.Concat(b)
	if !out.EntryPoint.Equal(onlyB.ID) {
		t.Error("expected Concat's entry point to come from the right-hand operand")
	}
	if len(out.FunctionDefinitions) != 3 {
		t.Errorf("expected 3 deduplicated functions, got %d", len(out.FunctionDefinitions))
	}
}
