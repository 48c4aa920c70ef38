package mesh

import "github.com/elysian-sdf/elysian/ir"

func missingField(prop ir.PropertyIdentifier) error {
	return &ir.EvaluateError{Kind: ir.ErrMissingField, Path: []ir.PropertyIdentifier{prop}, Reason: "field not present in sampled context"}
}

func typeMismatch(op string, got ir.Value) error {
	return &ir.EvaluateError{Kind: ir.ErrTypeMismatch, Reason: "expected a struct context from " + op}
}
