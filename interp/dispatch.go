package interp

import (
	"errors"

	"github.com/elysian-sdf/elysian/ir"
)

// Dispatch tries each Evaluator in order, falling back to the next only
// when the current one reports UnsupportedFeatureError. This is
// how a precompiled or native kernel can coexist with the reference
// Interpreter: list the fast path first, Interpreter last.
type Dispatch struct {
	evaluators []Evaluator
}

// NewDispatch builds a Dispatch trying evaluators in the given order.
func NewDispatch(evaluators...Evaluator) Dispatch {
	return Dispatch{evaluators: evaluators}
}

func (d Dispatch) Evaluate(module ir.Module, context ir.Value) (ir.Value, error) {
	var unsupported *UnsupportedFeatureError
	var lastErr error = &UnsupportedFeatureError{Feature: "no evaluators configured"}
	for _, e := range d.evaluators {
		v, err := e.Evaluate(module, context)
		if err == nil {
			return v, nil
		}
		if !errors.As(err, &unsupported) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}
