package ir

import "testing"

func simpleModule(fn FunctionDefinition) Module {
	return Module{
		FunctionDefinitions: []FunctionDefinition{fn},
		EntryPoint: fn.ID,
	}
}

func TestValidate_SimpleOutputOK(t *testing.T) {
	fn := FunctionDefinition{
		ID: NewFunctionIdentifier("ok"),
		Output: PropDistance,
		Block: Block{StmtOutput{Expr: Lit(Float(1))}},
	}
	if err := Validate(simpleModule(fn)); err != nil {
		t.Fatal(err)
	}
}

func TestValidate_OutputTypeMismatch(t *testing.T) {
	fn := FunctionDefinition{
		ID: NewFunctionIdentifier("mismatch"),
		Output: PropDistance,
		Block: Block{StmtOutput{Expr: Lit(Bool(true))}},
	}
	if err := Validate(simpleModule(fn)); err == nil {
		t.Fatal("expected a type mismatch error")
	}
}

func TestValidate_MissingOutput(t *testing.T) {
	fn := FunctionDefinition{
		ID: NewFunctionIdentifier("noout"),
		Output: PropDistance,
		Block: Block{StmtBind{Prop: PropK, Expr: Lit(Float(1))}},
	}
	if err := Validate(simpleModule(fn)); err == nil {
		t.Fatal("expected a missing-output error")
	}
}

func TestValidate_WriteToImmutableContextFails(t *testing.T) {
	fn := FunctionDefinition{
		ID: NewFunctionIdentifier("writeimmutable"),
		Inputs: []FunctionInput{{Prop: PropContext, Mutable: false}},
		Output: PropDistance,
		Block: Block{
			StmtWrite{Path: []PropertyIdentifier{PropContext, PropDistance}, Expr: Lit(Float(1))},
			StmtOutput{Expr: Lit(Float(1))},
		},
	}
	if err := Validate(simpleModule(fn)); err == nil {
		t.Fatal("expected an immutable-write error")
	}
}

func TestValidate_WriteToMutableContextOK(t *testing.T) {
	fn := FunctionDefinition{
		ID: NewFunctionIdentifier("writemutable"),
		Inputs: []FunctionInput{{Prop: PropContext, Mutable: true}},
		Output: PropDistance,
		Block: Block{
			StmtWrite{Path: []PropertyIdentifier{PropContext, PropDistance}, Expr: Lit(Float(1))},
			StmtOutput{Expr: Lit(Float(1))},
		},
	}
	if err := Validate(simpleModule(fn)); err != nil {
		t.Fatal(err)
	}
}

func TestValidate_IfConditionMustBeBoolean(t *testing.T) {
	fn := FunctionDefinition{
		ID: NewFunctionIdentifier("badif"),
		Output: PropDistance,
		Block: Block{
			StmtIf{
				Cond: Lit(Float(1)),
				Then: Block{StmtOutput{Expr: Lit(Float(1))}},
			},
		},
	}
	if err := Validate(simpleModule(fn)); err == nil {
		t.Fatal("expected a non-boolean if-condition error")
	}
}

func TestValidate_IfConditionBooleanOK(t *testing.T) {
	fn := FunctionDefinition{
		ID: NewFunctionIdentifier("goodif"),
		Output: PropDistance,
		Block: Block{
			StmtIf{
				Cond: Lt(Lit(Float(1)), Lit(Float(2))),
				Then: Block{StmtOutput{Expr: Lit(Float(1))}},
				Else: Block{StmtOutput{Expr: Lit(Float(2))}},
			},
		},
	}
	if err := Validate(simpleModule(fn)); err != nil {
		t.Fatal(err)
	}
}

func TestValidate_BindThenReadLocal(t *testing.T) {
	k := newPropertyIdentifier("VALIDATE_LOCAL_K")
	fn := FunctionDefinition{
		ID: NewFunctionIdentifier("bindread"),
		Output: PropDistance,
		Block: Block{
			StmtBind{Prop: k, Expr: Lit(Float(5))},
			StmtOutput{Expr: Read(k)},
		},
	}
	if err := Validate(simpleModule(fn)); err != nil {
		t.Fatal(err)
	}
}
