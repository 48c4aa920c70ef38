package ir

import "fmt"

// EvaluateErrorKind discriminates the EvaluateError variants.
type EvaluateErrorKind uint8

const (
	ErrMissingField EvaluateErrorKind = iota
	ErrTypeMismatch
	ErrUnknownFunction
	ErrArityMismatch
	ErrNoOutput
	ErrImmutable
	ErrInvalidSpec
)

func (k EvaluateErrorKind) String() string {
	switch k {
	case ErrMissingField:
		return "MissingField"
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrUnknownFunction:
		return "UnknownFunction"
	case ErrArityMismatch:
		return "ArityMismatch"
	case ErrNoOutput:
		return "NoOutput"
	case ErrImmutable:
		return "Immutable"
	case ErrInvalidSpec:
		return "InvalidSpec"
	default:
		return "Unknown"
	}
}

// EvaluateError is the single synchronous error type produced by module
// finalization and interpretation. Propagation is first-error-wins:
// nothing retries and nothing recovers.
type EvaluateError struct {
	Kind EvaluateErrorKind
	Path []PropertyIdentifier
	Reason string
}

func (e *EvaluateError) Error() string {
	if len(e.Path) > 0 {
		names := make([]string, len(e.Path))
		for i, p := range e.Path {
			names[i] = p.Name
		}
		return fmt.Sprintf("%s: %v: %s", e.Kind, names, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func missingField(path []PropertyIdentifier) *EvaluateError {
	return &EvaluateError{Kind: ErrMissingField, Path: path, Reason: "field not present"}
}

func immutable(path []PropertyIdentifier) *EvaluateError {
	return &EvaluateError{Kind: ErrImmutable, Path: path, Reason: "binding is read-only"}
}

func unknownFunction(id FunctionIdentifier) *EvaluateError {
	return &EvaluateError{Kind: ErrUnknownFunction, Reason: "no definition for " + id.Name}
}

func arityMismatch(id FunctionIdentifier, expected, got int) *EvaluateError {
	return &EvaluateError{Kind: ErrArityMismatch, Reason: fmt.Sprintf("%s expects %d arguments, got %d", id.Name, expected, got)}
}

func noOutput(fn string) *EvaluateError {
	return &EvaluateError{Kind: ErrNoOutput, Reason: "function " + fn + " returned without an Output statement"}
}

func typeMismatch(op string, expected, got Type) *EvaluateError {
	return &EvaluateError{Kind: ErrTypeMismatch, Reason: fmt.Sprintf("%s: expected %T, got %T", op, expected, got)}
}

func invalidSpec(reason string) *EvaluateError {
	return &EvaluateError{Kind: ErrInvalidSpec, Reason: reason}
}
