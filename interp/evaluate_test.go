package interp

import (
	"testing"

	"github.com/elysian-sdf/elysian/ir"
)

func contextOf(fields map[ir.PropertyIdentifier]ir.Value) ir.Value {
	m := ir.NewPropertyValueMap()
	for k, v := range fields {
		m.Set(k, v)
	}
	return ir.StructValue{ID: ir.StructContext, Members: m}
}

func simpleModule(t *testing.T, body ir.Block) ir.Module {
	t.Helper()
	entry := ir.NewFunctionIdentifier("entry")
	fn := ir.FunctionDefinition{
		ID: entry,
		Public: true,
		Inputs: []ir.FunctionInput{{Prop: ir.PropContext, Mutable: true}},
		Output: ir.PropContext,
		Block: body,
	}
	m, err := ir.Finalize(ir.NewModule(entry, []ir.FunctionDefinition{fn}, nil, nil))
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return m
}

func TestInterpreter_WriteThenOutput(t *testing.T) {
	body := ir.Block{
		ir.StmtWrite{Path: []ir.PropertyIdentifier{ir.PropContext, ir.PropDistance}, Expr: ir.Lit(ir.Float(42))},
		ir.StmtOutput{Expr: ir.Read(ir.PropContext)},
	}
	m := simpleModule(t, body)
	out, err := (Interpreter{}).Evaluate(m, contextOf(map[ir.PropertyIdentifier]ir.Value{ir.PropDistance: ir.Float(0)}))
	if err != nil {
		t.Fatal(err)
	}
	sv := out.(ir.StructValue)
	d, ok := sv.Members.Get(ir.PropDistance)
	if !ok {
		t.Fatal("expected DISTANCE to be present")
	}
	f, _ := ir.AsFloat(d)
	if f != 42 {
		t.Errorf("expected 42, got %v", f)
	}
}

func TestInterpreter_BindIntroducesLocal(t *testing.T) {
	local := ir.NewLocalProperty("doubled")
	body := ir.Block{
		ir.StmtBind{Prop: local, Expr: ir.Mul(ir.Read(ir.PropContext, ir.PropDistance), ir.Lit(ir.Float(2)))},
		ir.StmtWrite{Path: []ir.PropertyIdentifier{ir.PropContext, ir.PropDistance}, Expr: ir.Read(local)},
		ir.StmtOutput{Expr: ir.Read(ir.PropContext)},
	}
	m := simpleModule(t, body)
	out, err := (Interpreter{}).Evaluate(m, contextOf(map[ir.PropertyIdentifier]ir.Value{ir.PropDistance: ir.Float(3)}))
	if err != nil {
		t.Fatal(err)
	}
	sv := out.(ir.StructValue)
	d, _ := sv.Members.Get(ir.PropDistance)
	f, _ := ir.AsFloat(d)
	if f != 6 {
		t.Errorf("expected 6, got %v", f)
	}
}

func TestInterpreter_IfTakesThenBranch(t *testing.T) {
	body := ir.Block{
		ir.StmtIf{
			Cond: ir.Gt(ir.Read(ir.PropContext, ir.PropDistance), ir.Lit(ir.Float(0))),
			Then: ir.Block{ir.StmtWrite{Path: []ir.PropertyIdentifier{ir.PropContext, ir.PropDistance}, Expr: ir.Lit(ir.Float(1))}},
			Else: ir.Block{ir.StmtWrite{Path: []ir.PropertyIdentifier{ir.PropContext, ir.PropDistance}, Expr: ir.Lit(ir.Float(-1))}},
		},
		ir.StmtOutput{Expr: ir.Read(ir.PropContext)},
	}
	m := simpleModule(t, body)
	out, err := (Interpreter{}).Evaluate(m, contextOf(map[ir.PropertyIdentifier]ir.Value{ir.PropDistance: ir.Float(5)}))
	if err != nil {
		t.Fatal(err)
	}
	sv := out.(ir.StructValue)
	d, _ := sv.Members.Get(ir.PropDistance)
	f, _ := ir.AsFloat(d)
	if f != 1 {
		t.Errorf("expected the then-branch to run, got %v", f)
	}
}

func TestInterpreter_LoopBreaksOnSignal(t *testing.T) {
	counter := ir.NewLocalProperty("i")
	body := ir.Block{
		ir.StmtBind{Prop: counter, Expr: ir.Lit(ir.Float(0))},
		ir.StmtLoop{Body: ir.Block{
			ir.StmtBind{Prop: counter, Expr: ir.Add(ir.Read(counter), ir.Lit(ir.Float(1)))},
			ir.StmtIf{
				Cond: ir.Gt(ir.Read(counter), ir.Lit(ir.Float(2))),
				Then: ir.Block{ir.StmtBreak{}},
			},
		}},
		ir.StmtWrite{Path: []ir.PropertyIdentifier{ir.PropContext, ir.PropDistance}, Expr: ir.Read(counter)},
		ir.StmtOutput{Expr: ir.Read(ir.PropContext)},
	}
	m := simpleModule(t, body)
	out, err := (Interpreter{}).Evaluate(m, contextOf(map[ir.PropertyIdentifier]ir.Value{ir.PropDistance: ir.Float(0)}))
	if err != nil {
		t.Fatal(err)
	}
	sv := out.(ir.StructValue)
	d, _ := sv.Members.Get(ir.PropDistance)
	f, _ := ir.AsFloat(d)
	if f != 3 {
		t.Errorf("expected the loop to break after 3 iterations, got %v", f)
	}
}

func TestInterpreter_WriteToImmutableFails(t *testing.T) {
	entry := ir.NewFunctionIdentifier("writesImmutable")
	fn := ir.FunctionDefinition{
		ID: entry,
		Inputs: []ir.FunctionInput{{Prop: ir.PropContext, Mutable: false}},
		Output: ir.PropContext,
		Block: ir.Block{
			ir.StmtWrite{Path: []ir.PropertyIdentifier{ir.PropContext, ir.PropDistance}, Expr: ir.Lit(ir.Float(1))},
			ir.StmtOutput{Expr: ir.Read(ir.PropContext)},
		},
	}
	m, err := ir.Finalize(ir.NewModule(entry, []ir.FunctionDefinition{fn}, nil, nil))
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	_, err = (Interpreter{}).Evaluate(m, contextOf(map[ir.PropertyIdentifier]ir.Value{ir.PropDistance: ir.Float(0)}))
	if err == nil {
		t.Fatal("expected a write to an immutable binding to fail")
	}
}

func TestInterpreter_MathCallDispatch(t *testing.T) {
	body := ir.Block{
		ir.StmtWrite{
			Path: []ir.PropertyIdentifier{ir.PropContext, ir.PropDistance},
			Expr: ir.Math(ir.MathClamp, ir.Lit(ir.Float(15)), ir.Lit(ir.Float(0)), ir.Lit(ir.Float(10))),
		},
		ir.StmtOutput{Expr: ir.Read(ir.PropContext)},
	}
	m := simpleModule(t, body)
	out, err := (Interpreter{}).Evaluate(m, contextOf(map[ir.PropertyIdentifier]ir.Value{ir.PropDistance: ir.Float(0)}))
	if err != nil {
		t.Fatal(err)
	}
	sv := out.(ir.StructValue)
	d, _ := sv.Members.Get(ir.PropDistance)
	f, _ := ir.AsFloat(d)
	if f != 10 {
		t.Errorf("expected clamp to cap at 10, got %v", f)
	}
}
