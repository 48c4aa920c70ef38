package interp

import (
	"testing"

	"github.com/elysian-sdf/elysian/ir"
)

type stubEvaluator struct {
	result ir.Value
	err error
}

func (s stubEvaluator) Evaluate(ir.Module, ir.Value) (ir.Value, error) {
	return s.result, s.err
}

func TestDispatch_FirstEvaluatorWins(t *testing.T) {
	want := ir.Bool(true)
	d := NewDispatch(stubEvaluator{result: want}, stubEvaluator{err: &UnsupportedFeatureError{Feature: "never reached"}})
	got, err := d.Evaluate(ir.Module{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("expected the first evaluator's result to win")
	}
}

func TestDispatch_FallsBackOnUnsupportedFeature(t *testing.T) {
	want := ir.Bool(false)
	d := NewDispatch(
		stubEvaluator{err: &UnsupportedFeatureError{Feature: "fast path"}},
		stubEvaluator{result: want},
	)
	got, err := d.Evaluate(ir.Module{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("expected Dispatch to fall back to the second evaluator")
	}
}

func TestDispatch_PropagatesNonUnsupportedError(t *testing.T) {
	boom := &ir.EvaluateError{Kind: ir.ErrTypeMismatch, Reason: "boom"}
	d := NewDispatch(stubEvaluator{err: boom}, stubEvaluator{result: ir.Bool(true)})
	_, err := d.Evaluate(ir.Module{}, nil)
	if err != boom {
		t.Errorf("expected a non-UnsupportedFeatureError to propagate immediately, got %v", err)
	}
}

func TestDispatch_EmptyListIsUnsupported(t *testing.T) {
	d := NewDispatch()
	_, err := d.Evaluate(ir.Module{}, nil)
	if err == nil {
		t.Fatal("expected an error when no evaluators are configured")
	}
}

func TestInterpreter_NeverReportsUnsupportedFeature(t *testing.T) {
	var eval Evaluator = Interpreter{}
	_, err := eval.Evaluate(ir.Module{EntryPoint: ir.NewFunctionIdentifier("missing")}, contextOf(nil))
	if err == nil {
		t.Fatal("expected an error for an unresolvable entry point")
	}
	if _, ok := err.(*UnsupportedFeatureError); ok {
		t.Error("Interpreter should never report UnsupportedFeatureError")
	}
}
