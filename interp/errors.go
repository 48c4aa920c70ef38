package interp

import (
	"fmt"

	"github.com/elysian-sdf/elysian/ir"
)

// UnsupportedFeatureError is raised by an Evaluator that recognizes a
// Module it cannot execute (e.g. a native kernel missing an intrinsic).
// Dispatch treats this, and only this, as a signal to try the next
// Evaluator in its list.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return "unsupported feature: " + e.Feature
}

func missingField(path []ir.PropertyIdentifier) error {
	return &ir.EvaluateError{Kind: ir.ErrMissingField, Path: path, Reason: "field not present in environment"}
}

func immutable(path []ir.PropertyIdentifier) error {
	return &ir.EvaluateError{Kind: ir.ErrImmutable, Path: path, Reason: "write target is not mutable"}
}

func unknownFunction(id ir.FunctionIdentifier) error {
	return &ir.EvaluateError{Kind: ir.ErrUnknownFunction, Reason: "no definition for " + id.Name}
}

func arityMismatch(id ir.FunctionIdentifier, expected, got int) error {
	return &ir.EvaluateError{Kind: ir.ErrArityMismatch, Reason: fmt.Sprintf("%s expects %d arguments, got %d", id.Name, expected, got)}
}

func noOutput(name string) error {
	return &ir.EvaluateError{Kind: ir.ErrNoOutput, Reason: "function " + name + " returned without an Output statement"}
}

func typeMismatch(op string) error {
	return &ir.EvaluateError{Kind: ir.ErrTypeMismatch, Reason: "operand type incompatible with " + op}
}
