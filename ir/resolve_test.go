package ir

import "testing"

func TestResolveExprType_Literal(t *testing.T) {
	ty, err := ResolveExprType(nil, nil, Lit(Float(1)))
	if err != nil {
		t.Fatal(err)
	}
	if nt, ok := ty.(NumberType); !ok || nt.Kind != NumberFloat {
		t.Errorf("got %#v", ty)
	}
}

func TestResolveExprType_ReadBuiltinProperty(t *testing.T) {
	ty, err := ResolveExprType(nil, nil, Read(PropContext, PropDistance))
	if err != nil {
		t.Fatal(err)
	}
	if nt, ok := ty.(NumberType); !ok || nt.Kind != NumberFloat {
		t.Errorf("expected DISTANCE to resolve to Float, got %#v", ty)
	}
}

func TestResolveExprType_ReadLocalBinding(t *testing.T) {
	custom := newPropertyIdentifier("TESTLOCAL_NOT_REGISTERED")
	locals := Locals{custom.key(): BooleanType{}}
	ty, err := ResolveExprType(nil, locals, Read(custom))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ty.(BooleanType); !ok {
		t.Errorf("expected local binding type to win, got %#v", ty)
	}
}

func TestResolveExprType_ReadUnknown(t *testing.T) {
	unknown := newPropertyIdentifier("COMPLETELY_UNKNOWN")
	if _, err := ResolveExprType(nil, nil, Read(unknown)); err == nil {
		t.Fatal("expected an error for an unresolvable path")
	}
}

func TestResolveExprType_BinaryComparisonIsBoolean(t *testing.T) {
	ty, err := ResolveExprType(nil, nil, Lt(Lit(Float(1)), Lit(Float(2))))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ty.(BooleanType); !ok {
		t.Errorf("expected Boolean, got %#v", ty)
	}
}

func TestResolveExprType_DotIsFloat(t *testing.T) {
	ty, err := ResolveExprType(nil, nil, Dot(Lit(NewVector2(1, 0)), Lit(NewVector2(0, 1))))
	if err != nil {
		t.Fatal(err)
	}
	if nt, ok := ty.(NumberType); !ok || nt.Kind != NumberFloat {
		t.Errorf("expected Float, got %#v", ty)
	}
}

func TestResolveExprType_MixedArithmeticBroadcastsToStruct(t *testing.T) {
	ty, err := ResolveExprType(nil, nil, Mul(Lit(NewVector2(1, 2)), Lit(Float(3))))
	if err != nil {
		t.Fatal(err)
	}
	st, ok := ty.(StructTypeRef)
	if !ok || st.Struct.Name != "Vector2" {
		t.Errorf("expected Vector2, got %#v", ty)
	}
}

func TestResolveExprType_LengthIsFloat(t *testing.T) {
	ty, err := ResolveExprType(nil, nil, Length(Lit(NewVector3(3, 4, 0))))
	if err != nil {
		t.Fatal(err)
	}
	if nt, ok := ty.(NumberType); !ok || nt.Kind != NumberFloat {
		t.Errorf("expected Float, got %#v", ty)
	}
}

func TestResolveExprType_NormalizePreservesStructType(t *testing.T) {
	ty, err := ResolveExprType(nil, nil, Normalize(Lit(NewVector3(3, 4, 0))))
	if err != nil {
		t.Fatal(err)
	}
	if st, ok := ty.(StructTypeRef); !ok || st.Struct.Name != "Vector3" {
		t.Errorf("expected Vector3, got %#v", ty)
	}
}

func TestResolveExprType_MathTrigIsFloat(t *testing.T) {
	ty, err := ResolveExprType(nil, nil, Math(MathSin, Lit(Float(0))))
	if err != nil {
		t.Fatal(err)
	}
	if nt, ok := ty.(NumberType); !ok || nt.Kind != NumberFloat {
		t.Errorf("expected Float, got %#v", ty)
	}
}

func TestResolveExprType_MathClampPreservesArgType(t *testing.T) {
	ty, err := ResolveExprType(nil, nil, Math(MathClamp, Lit(NewVector2(1, 2)), Lit(Float(0)), Lit(Float(1))))
	if err != nil {
		t.Fatal(err)
	}
	if st, ok := ty.(StructTypeRef); !ok || st.Struct.Name != "Vector2" {
		t.Errorf("expected Vector2, got %#v", ty)
	}
}

func TestResolveExprType_CallOutputType(t *testing.T) {
	fn := FunctionIdentifier(NewIdentifier("function", "double"))
	funcs := FuncTable{fn.key(): {
		ID: fn,
		Inputs: []FunctionInput{{Prop: PropX}},
		Output: PropDistance,
	}}
	ty, err := ResolveExprType(funcs, nil, ExprCall{Function: fn, Args: []Expr{Lit(Float(1))}})
	if err != nil {
		t.Fatal(err)
	}
	if nt, ok := ty.(NumberType); !ok || nt.Kind != NumberFloat {
		t.Errorf("expected Float, got %#v", ty)
	}
}

func TestResolveExprType_CallArityMismatch(t *testing.T) {
	fn := FunctionIdentifier(NewIdentifier("function", "needsOneArg"))
	funcs := FuncTable{fn.key(): {
		ID: fn,
		Inputs: []FunctionInput{{Prop: PropX}},
		Output: PropDistance,
	}}
	_, err := ResolveExprType(funcs, nil, ExprCall{Function: fn})
	if err == nil {
		t.Fatal("expected an arity mismatch error")
	}
}

func TestResolveExprType_CallUnknownFunction(t *testing.T) {
	fn := FunctionIdentifier(NewIdentifier("function", "doesNotExist"))
	_, err := ResolveExprType(FuncTable{}, nil, ExprCall{Function: fn})
	if err == nil {
		t.Fatal("expected an unknown-function error")
	}
}
